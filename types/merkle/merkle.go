// Package merkle wraps celestiaorg/go-square's plain binary Merkle tree
// (Tendermint's "simple" Merkle rule: leaf prefix 0x00, internal prefix
// 0x01, raw SHA-256) for the two places this module needs it: combining
// blob commitment subtree roots, and hashing the DAH's row/column roots
// to check against a header's data hash.
package merkle

import (
	gsmerkle "github.com/celestiaorg/go-square/merkle"
)

// Root returns the simple-Merkle root of the given leaves.
func Root(leaves [][]byte) []byte {
	return gsmerkle.HashFromByteSlices(leaves)
}
