package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/block"
)

func TestMemStore_InsertAndGet(t *testing.T) {
	s := NewMemStore()
	var hash [32]byte
	hash[0] = 7

	_, ok := s.Get(hash)
	require.False(t, ok)

	fb := &block.FilteredBlock{}
	require.NoError(t, s.Insert(hash, fb))

	got, ok := s.Get(hash)
	require.True(t, ok)
	require.Same(t, fb, got)
}

func TestMemStore_InsertOverwrites(t *testing.T) {
	s := NewMemStore()
	var hash [32]byte
	hash[0] = 1

	first := &block.FilteredBlock{}
	second := &block.FilteredBlock{}
	require.NoError(t, s.Insert(hash, first))
	require.NoError(t, s.Insert(hash, second))

	got, ok := s.Get(hash)
	require.True(t, ok)
	require.Same(t, second, got)
}
