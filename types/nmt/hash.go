// Package nmt wraps celestiaorg/nmt, the namespaced-Merkle-tree library
// shared by Celestia's prover and verifier, to build and verify the two
// proof shapes this module needs over a single EDS row: complete-
// namespace proofs (rollup-row completeness) and range proofs
// (PFB-share correctness).
//
// A mismatch between the prover and verifier's tree construction would
// silently break verification, so both shapes are built on the same
// underlying celestiaorg/nmt tree and Proof type rather than two
// parallel hand-rolled implementations.
package nmt

import (
	"fmt"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	ourns "github.com/sovereign-labs/celestia-da-verifier/types/namespace"
)

// HashLen is the width, in bytes, of a namespaced hash: min namespace (8)
// + max namespace (8) + sha256 digest (32).
const HashLen = 2*appconsts.NamespaceSize + 32

// Hash is a 48-byte namespaced hash: (min_ns, max_ns, sha256).
type Hash [HashLen]byte

// HashFromBytes validates and wraps a 48-byte slice.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLen {
		return h, fmt.Errorf("nmt: expected %d-byte namespaced hash, got %d", HashLen, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// MinNamespace returns the hash's minimum namespace.
func (h Hash) MinNamespace() ourns.ID {
	var id ourns.ID
	copy(id[:], h[:appconsts.NamespaceSize])
	return id
}

// MaxNamespace returns the hash's maximum namespace.
func (h Hash) MaxNamespace() ourns.ID {
	var id ourns.ID
	copy(id[:], h[appconsts.NamespaceSize:2*appconsts.NamespaceSize])
	return id
}

// Contains reports whether ns falls within [MinNamespace, MaxNamespace].
func (h Hash) Contains(ns ourns.ID) bool {
	return !ns.Less(h.MinNamespace()) && !h.MaxNamespace().Less(ns)
}

// Bytes returns the 48-byte encoding.
func (h Hash) Bytes() []byte { return h[:] }
