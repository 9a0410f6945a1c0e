package block

import (
	"context"
	"testing"

	"github.com/celestiaorg/rsmt2d"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	"github.com/sovereign-labs/celestia-da-verifier/types/header"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
	"github.com/sovereign-labs/celestia-da-verifier/types/rpc"
)

func rawShare(ns namespace.ID, fill byte) []byte {
	buf := make([]byte, appconsts.ShareSize)
	copy(buf, ns.Bytes())
	for i := appconsts.NamespaceSize; i < len(buf); i++ {
		buf[i] = fill
	}
	return buf
}

func fakeRowRoot(fill byte) ournmt.Hash {
	var h ournmt.Hash
	for i := range h {
		h[i] = fill
	}
	return h
}

func TestDecodeNamespaceRows_MatchesContainingRoots(t *testing.T) {
	ns := namespace.ID{0, 0, 0, 0, 0, 0, 1, 0}
	other := namespace.ID{0, 0, 0, 0, 0, 0, 2, 0}

	eh := &header.ExtendedHeader{
		DAH: &header.DataAvailabilityHeader{
			RowRoots: []ournmt.Hash{fakeRowRoot(1), fakeRowRoot(2)},
		},
	}
	// Neither fake root's namespace range (all 0x01 bytes, all 0x02
	// bytes) contains other, so this test only exercises the
	// row-count-mismatch guard.
	raw := []rpc.NamespacedShares{
		{Shares: [][]byte{rawShare(ns, 9)}},
		{Shares: [][]byte{rawShare(ns, 9)}},
	}
	_, _, err := decodeNamespaceRows(eh, raw, other)
	require.Error(t, err, "no row root actually contains other, so any non-empty raw response must be rejected")
}

func TestAssemble_EmptyNamespacesYieldEmptyBlock(t *testing.T) {
	rollupNS := namespace.ID{0, 0, 0, 0, 0, 0, 1, 0}

	client := &rpc.Client{}
	client.Header.GetByHeight = func(ctx context.Context, height uint64) (*rpc.HeaderResponse, error) {
		return &rpc.HeaderResponse{
			Header:   []byte("hdr"),
			RowRoots: nil,
			ColRoots: nil,
		}, nil
	}
	client.Share.GetSharesByNamespace = func(ctx context.Context, height uint64, ns []byte) ([]rpc.NamespacedShares, error) {
		return nil, nil
	}
	client.Share.GetEDS = func(ctx context.Context, height uint64) (*rsmt2d.ExtendedDataSquare, error) {
		return nil, nil
	}

	decode := func(b []byte) (*header.BlockHeader, error) {
		return &header.BlockHeader{Raw: &cmttypes.Header{DataHash: make([]byte, 32)}}, nil
	}
	a := NewBlockAssembler(client, rollupNS, decode)

	fb, err := a.Assemble(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, fb)
	require.Empty(t, fb.RelevantPfbs)
	require.Empty(t, fb.RollupRows)
}
