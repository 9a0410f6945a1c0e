// Package store supplies an optional slot store for the outer rollup: a
// simple key/value sink keyed by the 32-byte block hash, exposed as an
// interface plus an in-memory implementation. The verification core
// itself never needs this, only callers that want to cache assembled
// blocks across calls.
package store

import (
	"sync"

	"github.com/sovereign-labs/celestia-da-verifier/types/block"
)

// SlotStore is a key/value sink from block hash to the FilteredBlock
// assembled for it. Callers mutate it exclusively through Insert;
// concurrent access across multiple callers is the implementation's
// responsibility.
type SlotStore interface {
	Insert(hash [32]byte, fb *block.FilteredBlock) error
	Get(hash [32]byte) (*block.FilteredBlock, bool)
}

// MemStore is a SlotStore backed by an in-memory map guarded by a mutex.
type MemStore struct {
	mu     sync.RWMutex
	blocks map[[32]byte]*block.FilteredBlock
}

// NewMemStore returns an empty in-memory slot store.
func NewMemStore() *MemStore {
	return &MemStore{blocks: make(map[[32]byte]*block.FilteredBlock)}
}

// Insert records the FilteredBlock assembled for hash, overwriting any
// previous entry.
func (s *MemStore) Insert(hash [32]byte, fb *block.FilteredBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[hash] = fb
	return nil
}

// Get looks up the FilteredBlock assembled for hash, if any.
func (s *MemStore) Get(hash [32]byte) (*block.FilteredBlock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fb, ok := s.blocks[hash]
	return fb, ok
}
