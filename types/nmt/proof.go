package nmt

import (
	"crypto/sha256"

	libnmt "github.com/celestiaorg/nmt"

	ourns "github.com/sovereign-labs/celestia-da-verifier/types/namespace"
)

// CompleteNamespaceProof proves that a set of leaves is the entire,
// contiguous run of shares a row holds for one namespace, used for
// rollup-row completeness checks.
type CompleteNamespaceProof struct {
	ns    ourns.ID
	proof libnmt.Proof
}

// Start returns the proof's first leaf index within the row.
func (p CompleteNamespaceProof) Start() int { return p.proof.Start() }

// End returns the proof's leaf index, exclusive, within the row.
func (p CompleteNamespaceProof) End() int { return p.proof.End() }

// IsAbsence reports whether this is an absence proof (the namespace has
// no shares on this row; leaves must be empty when verifying it).
func (p CompleteNamespaceProof) IsAbsence() bool { return p.proof.IsOfAbsence() }

// Verify checks that leaves is exactly the namespace's leaf set for this
// row, against root. Leaves must be in the same namespaced form they
// were pushed in (namespace || share bytes).
func (p CompleteNamespaceProof) Verify(root Hash, leaves [][]byte) bool {
	return p.proof.VerifyNamespace(sha256.New(), toLibNamespace(p.ns), leaves, root.Bytes())
}

// NewCompleteNamespaceProofFromNodes reconstructs a CompleteNamespaceProof
// from its wire representation (a length-prefixed list of sibling
// nodes plus a start index) for the verifier side where no local tree
// was built.
func NewCompleteNamespaceProofFromNodes(ns ourns.ID, start, end int, nodes [][]byte) CompleteNamespaceProof {
	return CompleteNamespaceProof{
		ns:    ns,
		proof: libnmt.NewInclusionProof(start, end, nodes, true),
	}
}

// NewAbsenceProofFromNodes reconstructs a CompleteNamespaceProof
// asserting that a namespace is entirely absent from a row, carrying the
// leaf hash of wherever the namespace would have sorted.
func NewAbsenceProofFromNodes(ns ourns.ID, start, end int, nodes [][]byte, leafHash []byte) CompleteNamespaceProof {
	return CompleteNamespaceProof{
		ns:    ns,
		proof: libnmt.NewAbsenceProof(start, end, nodes, leafHash, true),
	}
}

// RangeProof proves inclusion of a contiguous leaf range [Start, End) at
// a known position within a row, used for PFB-share inclusion, where
// the range need not align to a single namespace.
type RangeProof struct {
	start, end int
	proof      libnmt.Proof
}

// Start returns the range's first leaf index.
func (p RangeProof) Start() int { return p.start }

// End returns the range's leaf index, exclusive.
func (p RangeProof) End() int { return p.end }

// Verify checks that leaves occupy [Start, End) of the row committed to
// by root. Unlike CompleteNamespaceProof.Verify, leaves are the raw
// share bytes without a namespace prefix; nID is the namespace every
// leaf in the range was pushed under, and is re-prefixed during
// verification.
func (p RangeProof) Verify(root Hash, nID ourns.ID, leaves [][]byte) bool {
	return p.proof.VerifyInclusion(sha256.New(), toLibNamespace(nID), leaves, root.Bytes())
}

// NewRangeProofFromNodes reconstructs a RangeProof from its wire
// representation for the verifier side where no local tree was built.
func NewRangeProofFromNodes(start, end int, nodes [][]byte) RangeProof {
	return RangeProof{
		start: start,
		end:   end,
		proof: libnmt.NewInclusionProof(start, end, nodes, true),
	}
}
