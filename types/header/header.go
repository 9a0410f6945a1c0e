// Package header models the DA layer's block header and Data
// Availability Header (DAH), pairing them into an ExtendedHeader shaped
// after the usual sync/store header contract: New/IsZero/Hash/Height/
// Time/LastHeader/Validate.
package header

import (
	"encoding/base64"
	"fmt"
	"time"

	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/sovereign-labs/celestia-da-verifier/types/merkle"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
)

// DataAvailabilityHeader holds the EDS's row and column namespaced
// roots. The square size is the row count, which must equal the column
// count and be a power of two.
type DataAvailabilityHeader struct {
	RowRoots    []ournmt.Hash
	ColumnRoots []ournmt.Hash
}

// SquareSize returns the DAH's square width S.
func (dah *DataAvailabilityHeader) SquareSize() int {
	return len(dah.RowRoots)
}

// ParseDAH decodes a JSON-RPC DAH response, whose roots arrive as
// standard-base64 strings, into namespaced hashes, rejecting any root
// that doesn't decode to exactly 48 bytes.
func ParseDAH(rowRootsB64, columnRootsB64 []string) (*DataAvailabilityHeader, error) {
	rowRoots, err := decodeRoots(rowRootsB64)
	if err != nil {
		return nil, fmt.Errorf("header: decode row roots: %w", err)
	}
	colRoots, err := decodeRoots(columnRootsB64)
	if err != nil {
		return nil, fmt.Errorf("header: decode column roots: %w", err)
	}
	if len(rowRoots) != len(colRoots) {
		return nil, fmt.Errorf("header: row/column root count mismatch: %d vs %d", len(rowRoots), len(colRoots))
	}
	return &DataAvailabilityHeader{RowRoots: rowRoots, ColumnRoots: colRoots}, nil
}

func decodeRoots(in []string) ([]ournmt.Hash, error) {
	out := make([]ournmt.Hash, len(in))
	for i, s := range in {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		h, err := ournmt.HashFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		out[i] = h
	}
	return out, nil
}

// Hash recomputes the Tendermint simple-Merkle root of row_roots ||
// column_roots, the value that must equal the header's declared data
// hash for the DAH to be well-formed.
func (dah *DataAvailabilityHeader) Hash() []byte {
	leaves := make([][]byte, 0, len(dah.RowRoots)+len(dah.ColumnRoots))
	for _, r := range dah.RowRoots {
		leaves = append(leaves, r.Bytes())
	}
	for _, c := range dah.ColumnRoots {
		leaves = append(leaves, c.Bytes())
	}
	return merkle.Root(leaves)
}

// BlockHeader wraps cometbft's block header, the slot identifier's
// source of truth, for its Hash()/LastBlockID/DataHash fields.
type BlockHeader struct {
	Raw *cmttypes.Header
}

// DataHash returns the header's declared data hash (must equal the
// DAH's recomputed root).
func (h *BlockHeader) DataHash() []byte {
	return h.Raw.DataHash
}

// Hash returns the header's own hash, used as the slot identifier.
func (h *BlockHeader) Hash() []byte {
	return h.Raw.Hash()
}

// Height returns the header's block height.
func (h *BlockHeader) Height() uint64 {
	return uint64(h.Raw.Height)
}

// Time returns the header's block time.
func (h *BlockHeader) Time() time.Time {
	return h.Raw.Time
}

// LastHeaderHash returns the hash of the previous block in the chain,
// or nil for a genesis header.
func (h *BlockHeader) LastHeaderHash() []byte {
	return h.Raw.LastBlockID.Hash
}

// ExtendedHeader pairs a BlockHeader with its parsed DAH.
type ExtendedHeader struct {
	Header *BlockHeader
	DAH    *DataAvailabilityHeader
}

// New returns a blank ExtendedHeader, for callers that need to construct
// an empty instance before deserializing into it.
func (eh *ExtendedHeader) New() *ExtendedHeader {
	return &ExtendedHeader{}
}

// IsZero reports whether this header carries no data.
func (eh *ExtendedHeader) IsZero() bool {
	return eh == nil || eh.Header == nil || eh.Header.Raw == nil
}

// Hash returns the wrapped block header's hash.
func (eh *ExtendedHeader) Hash() []byte {
	return eh.Header.Hash()
}

// Height returns the wrapped block header's height.
func (eh *ExtendedHeader) Height() uint64 {
	return eh.Header.Height()
}

// Time returns the wrapped block header's timestamp.
func (eh *ExtendedHeader) Time() time.Time {
	return eh.Header.Time()
}

// LastHeader returns the hash of the chain's previous header.
func (eh *ExtendedHeader) LastHeader() []byte {
	return eh.Header.LastHeaderHash()
}

// SquareSize returns the DAH's square width.
func (eh *ExtendedHeader) SquareSize() int {
	return eh.DAH.SquareSize()
}

// Validate checks the header's internal well-formedness: the DAH must
// be square, and its recomputed data root must match the header's
// declared data hash. BlockVerifier calls this as its first check.
func (eh *ExtendedHeader) Validate() error {
	if eh.Header == nil || eh.Header.Raw == nil {
		return fmt.Errorf("header: missing block header")
	}
	if len(eh.Header.DataHash()) == 0 {
		return ErrMissingDataHash
	}
	if eh.DAH == nil || len(eh.DAH.RowRoots) == 0 {
		return fmt.Errorf("header: missing data availability header")
	}
	if len(eh.DAH.RowRoots) != len(eh.DAH.ColumnRoots) {
		return fmt.Errorf("header: DAH row/column count mismatch")
	}
	n := len(eh.DAH.RowRoots)
	if n&(n-1) != 0 {
		return fmt.Errorf("header: DAH square size %d is not a power of two", n)
	}
	got := eh.DAH.Hash()
	want := eh.Header.DataHash()
	if len(got) != len(want) || string(got) != string(want) {
		return ErrInvalidDataRoot
	}
	return nil
}

// ErrMissingDataHash and ErrInvalidDataRoot are the two header-level
// error sentinels; types/block re-exports registered, distinguishable
// versions of these for the verifier's public API.
var (
	ErrMissingDataHash = fmt.Errorf("header: block header missing data hash")
	ErrInvalidDataRoot = fmt.Errorf("header: DAH root does not match header data hash")
)
