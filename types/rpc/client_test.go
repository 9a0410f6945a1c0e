package rpc

import (
	"encoding/base64"
	"errors"
	"testing"

	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/header"
)

func fakeRoot(fill byte) string {
	b := make([]byte, 48)
	for i := range b {
		b[i] = fill
	}
	return base64.StdEncoding.EncodeToString(b)
}

func TestHeaderResponse_ParseHeader(t *testing.T) {
	resp := &HeaderResponse{
		Header:   []byte("raw-cometbft-header-bytes"),
		RowRoots: []string{fakeRoot(1), fakeRoot(2)},
		ColRoots: []string{fakeRoot(3), fakeRoot(4)},
	}

	decode := func(b []byte) (*header.BlockHeader, error) {
		return &header.BlockHeader{Raw: &cmttypes.Header{DataHash: b}}, nil
	}

	eh, err := resp.ParseHeader(decode)
	require.NoError(t, err)
	require.Equal(t, 2, eh.SquareSize())
	require.Equal(t, []byte("raw-cometbft-header-bytes"), eh.Header.DataHash())
}

func TestHeaderResponse_ParseHeader_PropagatesDecodeError(t *testing.T) {
	resp := &HeaderResponse{RowRoots: []string{fakeRoot(1)}, ColRoots: []string{fakeRoot(2)}}
	wantErr := errors.New("boom")
	decode := func(b []byte) (*header.BlockHeader, error) { return nil, wantErr }

	_, err := resp.ParseHeader(decode)
	require.Error(t, err)
}

func TestHeaderResponse_ParseHeader_RejectsMismatchedRootCounts(t *testing.T) {
	resp := &HeaderResponse{
		RowRoots: []string{fakeRoot(1), fakeRoot(2)},
		ColRoots: []string{fakeRoot(3)},
	}
	decode := func(b []byte) (*header.BlockHeader, error) {
		return &header.BlockHeader{Raw: &cmttypes.Header{}}, nil
	}

	_, err := resp.ParseHeader(decode)
	require.Error(t, err)
}
