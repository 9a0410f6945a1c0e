package block

import (
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// RelevantRowProof is one element of a completeness proof: it asserts
// that Leaves is exactly the rollup namespace's leaf set on one row.
type RelevantRowProof struct {
	Leaves []share.Share
	Proof  ournmt.CompleteNamespaceProof
}

// CompletenessProof is the ordered list of per-row completeness proofs
// a prover returns alongside a blob set, one per row_root containing the
// rollup namespace.
type CompletenessProof struct {
	Rows []RelevantRowProof
}

// EtxRangeProof is one contiguous sub-range of a blob's PFB-namespace
// inclusion proof: the shares making up the range, the absolute share
// index the range starts at, and the NMT range proof covering it.
type EtxRangeProof struct {
	StartShareIdx int
	StartOffset   int
	Shares        []share.Share
	Proof         ournmt.RangeProof
}

// EtxProof proves one blob's linking PFB transaction is included at a
// known position, possibly spanning multiple rows.
type EtxProof struct {
	SubProofs []EtxRangeProof
}

// InclusionMultiproof pairs one EtxProof with each blob extracted from
// the rollup namespace, in blob order.
type InclusionMultiproof struct {
	Proofs []EtxProof
}
