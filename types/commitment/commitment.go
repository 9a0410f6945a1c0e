// Package commitment reconstructs a blob's Celestia share commitment
// (the value a PFB transaction references) from the blob's shares alone,
// following Celestia's non-interactive default rules for blob placement.
// It builds on celestiaorg/nmt (via types/nmt) rather than a hand-rolled
// NMT, so the commitment builder and the row verifier stay a single
// source of truth.
package commitment

import (
	"fmt"

	"github.com/sovereign-labs/celestia-da-verifier/types/merkle"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
)

// ErrMessageTooLarge is returned when a blob has more shares than a
// square of the given size could ever hold.
var ErrMessageTooLarge = fmt.Errorf("commitment: message too large for square size")

// minSquareSize returns a square size for a message of the given share
// count: the share count itself rounded up to a power of two, doubled
// again if the message would fill that square's sq*sq-1 usable shares.
// It is not the smallest square that fits the message (5 shares give 8).
func minSquareSize(shareCount int) int {
	sq := nextPowerOf2(shareCount)
	if shareCount < sq*sq-1 {
		return sq
	}
	return sq << 1
}

// RecreateCommitment rebuilds the 32-byte commitment a PFB transaction
// references from a blob's raw shares (each a full appconsts.ShareSize
// buffer with its own namespace prefix), given the square size the blob
// was laid out against.
func RecreateCommitment(squareSize int, ns namespace.ID, shares [][]byte) ([]byte, error) {
	if len(shares) > squareSize*squareSize-1 {
		return nil, ErrMessageTooLarge
	}

	heights := mountainRangeHeights(len(shares), squareSize)
	subtreeRoots := make([][]byte, 0, len(heights))
	cursor := 0
	for _, h := range heights {
		leafSet := shares[cursor : cursor+h]
		cursor += h

		tree := ournmt.NewRowTree()
		for _, leaf := range leafSet {
			if err := tree.PushOriginal(ns, leaf); err != nil {
				return nil, fmt.Errorf("commitment: %w", err)
			}
		}
		root, err := tree.Root()
		if err != nil {
			return nil, fmt.Errorf("commitment: %w", err)
		}
		subtreeRoots = append(subtreeRoots, root.Bytes())
	}

	return merkle.Root(subtreeRoots), nil
}

// mountainRangeHeights returns the sizes of the power-of-two subtrees
// that tile len shares, each at most squareSize wide: full-width
// squareSize subtrees first, then the largest power-of-two remainder,
// repeated until len is exhausted.
func mountainRangeHeights(len, squareSize int) []int {
	var out []int
	for len != 0 {
		if len >= squareSize {
			out = append(out, squareSize)
			len -= squareSize
			continue
		}
		p := nextLowerPowerOf2(len)
		out = append(out, p)
		len -= p
	}
	return out
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// nextLowerPowerOf2 returns the largest power of two less than or equal
// to n: 2 -> 2, 3 -> 2, 7 -> 4, 8 -> 8.
func nextLowerPowerOf2(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return nextPowerOf2(n) >> 1
}
