// Package block ties the share codec, NMT proof layer, commitment
// builder, and PFB parser into the block assembler/verifier
// orchestration: BlockAssembler builds a block's derived data from RPC
// responses, and BlockVerifier checks it offline.
package block

import (
	"github.com/celestiaorg/rsmt2d"

	"github.com/sovereign-labs/celestia-da-verifier/types/header"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
	"github.com/sovereign-labs/celestia-da-verifier/types/pfb"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// TxPosition locates a PFB transaction within its compact share
// sequence: the half-open range of share indices it spans, and the byte
// offset into the first share's data region at which it begins.
type TxPosition = pfb.TxPosition

// Row is one namespace's contiguous share run on one square row, together
// with the namespaced root the DAH committed to for that row and the
// row's absolute index within the square (needed to rebuild the row's
// full NMT tree and to translate a flattened share position into a
// square-wide one).
type Row struct {
	Shares []share.Share
	Root   ournmt.Hash
	Index  int
}

// FilteredBlock is the per-block derived artifact BlockAssembler
// produces: the header, the rollup namespace's shares, a commitment ->
// PFB lookup, the rows backing both namespaces, and the extended data
// square a prover needs to rebuild full row trees for proof building.
type FilteredBlock struct {
	Header       *header.ExtendedHeader
	RollupData   share.NamespaceGroup
	RelevantPfbs map[string]pfb.Entry
	RollupRows   []Row
	PfbRows      []Row
	EDS          *rsmt2d.ExtendedDataSquare
}
