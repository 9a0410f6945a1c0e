// Package rpc implements the JSON-RPC surface BlockAssembler consumes
// from a DA full node: header.GetByHeight, share.GetSharesByNamespace,
// share.GetEDS, bound through go-jsonrpc's reflection-based client.
package rpc

import (
	"context"
	"fmt"

	"github.com/celestiaorg/rsmt2d"
	jsonrpc "github.com/filecoin-project/go-jsonrpc"

	"github.com/sovereign-labs/celestia-da-verifier/types/header"
)

// HeaderResponse is the raw JSON-RPC response from header.GetByHeight:
// a cometbft header plus its DAH roots, still base64-encoded.
type HeaderResponse struct {
	Header     rawHeaderBytes `json:"header"`
	RowRoots   []string       `json:"dah_row_roots"`
	ColRoots   []string       `json:"dah_column_roots"`
}

// rawHeaderBytes defers cometbft header decoding to the caller; this
// package only needs to pass the bytes through to types/header.
type rawHeaderBytes = []byte

// NamespacedShares is one row's worth of shares returned for a
// namespace query, alongside the inclusion proof the full node computed
// for it.
type NamespacedShares struct {
	Shares [][]byte `json:"shares"`
	Proof  struct {
		Start int      `json:"start"`
		End   int      `json:"end"`
		Nodes [][]byte `json:"nodes"`
	} `json:"proof"`
}

// headerAPI is a set of perm-tagged function fields go-jsonrpc fills in
// via reflection.
type headerAPI struct {
	GetByHeight func(ctx context.Context, height uint64) (*HeaderResponse, error) `perm:"read"`
}

type shareAPI struct {
	GetSharesByNamespace func(ctx context.Context, height uint64, namespace []byte) ([]NamespacedShares, error) `perm:"read"`
	GetEDS               func(ctx context.Context, height uint64) (*rsmt2d.ExtendedDataSquare, error)           `perm:"read"`
}

// Client is a thin JSON-RPC client for the three DA-node endpoints
// BlockAssembler needs. It owns no retry or timeout policy of its own;
// that is the RPC layer's responsibility, supplied by context deadlines
// the caller sets.
type Client struct {
	Header headerAPI
	Share  shareAPI

	closer jsonrpc.ClientCloser
}

// Dial opens a JSON-RPC client against a DA full node's RPC address,
// binding the Header and Share namespaces.
func Dial(ctx context.Context, addr, authToken string) (*Client, error) {
	var authHeader map[string][]string
	if authToken != "" {
		authHeader = map[string][]string{"Authorization": {"Bearer " + authToken}}
	}

	c := &Client{}
	closer, err := jsonrpc.NewClient(ctx, addr, "header", &c.Header, authHeader)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial header namespace: %w", err)
	}
	c.closer = closer

	shareCloser, err := jsonrpc.NewClient(ctx, addr, "share", &c.Share, authHeader)
	if err != nil {
		closer()
		return nil, fmt.Errorf("rpc: dial share namespace: %w", err)
	}
	c.closer = func() { closer(); shareCloser() }

	return c, nil
}

// Close releases the underlying JSON-RPC connections.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// ParseHeader decodes the raw header.GetByHeight response into an
// ExtendedHeader, parsing its base64 DAH roots along the way.
func (r *HeaderResponse) ParseHeader(decodeCmtHeader func([]byte) (*header.BlockHeader, error)) (*header.ExtendedHeader, error) {
	bh, err := decodeCmtHeader(r.Header)
	if err != nil {
		return nil, fmt.Errorf("rpc: decode block header: %w", err)
	}
	dah, err := header.ParseDAH(r.RowRoots, r.ColRoots)
	if err != nil {
		return nil, fmt.Errorf("rpc: parse DAH: %w", err)
	}
	return &header.ExtendedHeader{Header: bh, DAH: dah}, nil
}
