package block

import (
	"context"
	"fmt"

	"github.com/celestiaorg/rsmt2d"
	"golang.org/x/sync/errgroup"

	"github.com/sovereign-labs/celestia-da-verifier/types/header"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/pfb"
	"github.com/sovereign-labs/celestia-da-verifier/types/rpc"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// BlockAssembler builds a FilteredBlock for a height from a DA node's
// RPC responses.
type BlockAssembler struct {
	Client          *rpc.Client
	RollupNamespace namespace.ID
	DecodeCmtHeader func([]byte) (*header.BlockHeader, error)
}

// NewBlockAssembler returns an assembler scoped to a single rollup
// namespace, talking to client for its RPC calls.
func NewBlockAssembler(client *rpc.Client, rollupNamespace namespace.ID, decodeCmtHeader func([]byte) (*header.BlockHeader, error)) *BlockAssembler {
	return &BlockAssembler{Client: client, RollupNamespace: rollupNamespace, DecodeCmtHeader: decodeCmtHeader}
}

// Assemble fetches a height's header, both namespaces' shares, and the
// full extended data square concurrently, then constructs the
// FilteredBlock. Cancelling ctx aborts all in-flight fetches; the
// caller receives a single error.
func (a *BlockAssembler) Assemble(ctx context.Context, height uint64) (*FilteredBlock, error) {
	var (
		headerResp *rpc.HeaderResponse
		rollupRaw  []rpc.NamespacedShares
		pfbRaw     []rpc.NamespacedShares
		eds        *rsmt2d.ExtendedDataSquare
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		headerResp, err = a.Client.Header.GetByHeight(gctx, height)
		return err
	})
	g.Go(func() error {
		var err error
		rollupRaw, err = a.Client.Share.GetSharesByNamespace(gctx, height, a.RollupNamespace.Bytes())
		return err
	})
	g.Go(func() error {
		var err error
		pfbRaw, err = a.Client.Share.GetSharesByNamespace(gctx, height, namespace.PfbNamespace.Bytes())
		return err
	})
	g.Go(func() error {
		var err error
		eds, err = a.Client.Share.GetEDS(gctx, height)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("block: assemble height %d: %w", height, err)
	}

	eh, err := headerResp.ParseHeader(a.DecodeCmtHeader)
	if err != nil {
		return nil, err
	}

	rollupRows, rollupShares, err := decodeNamespaceRows(eh, rollupRaw, a.RollupNamespace)
	if err != nil {
		return nil, fmt.Errorf("block: decode rollup namespace rows: %w", err)
	}
	pfbRows, pfbShares, err := decodeNamespaceRows(eh, pfbRaw, namespace.PfbNamespace)
	if err != nil {
		return nil, fmt.Errorf("block: decode PFB namespace rows: %w", err)
	}

	rollupData, err := share.NewGroup(rollupShares)
	if err != nil {
		log.Infow("no rollup data in block", "height", height)
	}

	relevantPfbs := make(map[string]pfb.Entry)
	if len(pfbShares) > 0 {
		pfbGroup, err := share.NewGroup(pfbShares)
		if err != nil {
			return nil, fmt.Errorf("block: group PFB shares: %w", err)
		}
		entries, err := pfb.Parse(pfbGroup)
		if err != nil {
			return nil, fmt.Errorf("block: parse PFB namespace: %w", err)
		}
		for _, entry := range entries {
			for idx, nsBytes := range entry.Msg.NamespaceIds {
				nsID, err := namespace.FromBytes(nsBytes)
				if err != nil {
					return nil, fmt.Errorf("block: invalid namespace id in PFB: %w", err)
				}
				if !nsID.Equal(a.RollupNamespace) {
					continue
				}
				if idx >= len(entry.Msg.ShareCommitments) {
					continue
				}
				key := string(entry.Msg.ShareCommitments[idx])
				if _, exists := relevantPfbs[key]; exists {
					continue // first PFB claiming a commitment wins; later duplicates are ignored.
				}
				relevantPfbs[key] = entry
			}
		}
	}

	return &FilteredBlock{
		Header:       eh,
		RollupData:   rollupData,
		RelevantPfbs: relevantPfbs,
		RollupRows:   rollupRows,
		PfbRows:      pfbRows,
		EDS:          eds,
	}, nil
}

// decodeNamespaceRows decodes a GetSharesByNamespace response into Row
// values (paired against the DAH's row roots that actually contain ns,
// in order) and the flattened share list across all of them.
func decodeNamespaceRows(eh *header.ExtendedHeader, raw []rpc.NamespacedShares, ns namespace.ID) ([]Row, []share.Share, error) {
	var containingRoots []int
	for i, root := range eh.DAH.RowRoots {
		if root.Contains(ns) {
			containingRoots = append(containingRoots, i)
		}
	}
	if len(raw) != len(containingRoots) {
		return nil, nil, fmt.Errorf("expected %d rows for namespace, got %d", len(containingRoots), len(raw))
	}

	rows := make([]Row, len(raw))
	var flat []share.Share
	for i, nr := range raw {
		shares := make([]share.Share, len(nr.Shares))
		for j, buf := range nr.Shares {
			s, err := share.Decode(buf)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d share %d: %w", i, j, err)
			}
			shares[j] = s
		}
		rows[i] = Row{Shares: shares, Root: eh.DAH.RowRoots[containingRoots[i]], Index: containingRoots[i]}
		flat = append(flat, shares...)
	}
	return rows, flat, nil
}
