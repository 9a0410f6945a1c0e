package share

import "fmt"

// Class distinguishes the two namespace-group shapes: the entire
// reserved-namespace group is one logical blob (Compact), while an
// application namespace group is scanned for sequence-start boundaries
// (Sparse).
type Class int

const (
	Sparse Class = iota
	Compact
)

// NamespaceGroup is a typed container of shares that all belong to a
// single namespace, classified at construction time from the first
// share's namespace.
type NamespaceGroup struct {
	class  Class
	shares []Share
}

// NewGroup classifies and wraps a slice of shares. An empty slice is
// rejected: callers that may have zero shares for a namespace should
// special-case that before constructing a group.
func NewGroup(shares []Share) (NamespaceGroup, error) {
	if len(shares) == 0 {
		return NamespaceGroup{}, errEmptyGroup
	}
	class := Sparse
	if shares[0].IsCompact() {
		class = Compact
	}
	return NamespaceGroup{class: class, shares: shares}, nil
}

var errEmptyGroup = fmt.Errorf("share: namespace group must have at least one share")

// Class reports whether this group is Compact or Sparse.
func (g NamespaceGroup) Class() Class { return g.class }

// Shares returns the group's underlying shares, in order.
func (g NamespaceGroup) Shares() []Share { return g.shares }

// Blob is a maximal sequence of shares making up one logical submission.
type Blob struct {
	shares    []Share
	baseIndex int // index of shares[0] within the owning group/row
}

// Shares returns this blob's shares, in order.
func (b Blob) Shares() []Share { return b.shares }

// BaseIndex returns the index, within the group it was produced from, of
// this blob's first share.
func (b Blob) BaseIndex() int { return b.baseIndex }

// Reader returns a BlobReader over this blob's data regions.
func (b Blob) Reader() (*BlobReader, error) {
	return NewBlobReader(b.shares, b.baseIndex)
}

// Blobs splits a namespace group into its constituent blobs. A Compact
// group yields exactly one blob spanning the whole group; a Sparse group
// yields one blob per sequence-start share, each running until the next
// start share or the end of the group. An empty group (which NewGroup
// disallows) would yield zero blobs.
func (g NamespaceGroup) Blobs() []Blob {
	if g.class == Compact {
		return []Blob{{shares: g.shares, baseIndex: 0}}
	}
	var blobs []Blob
	start := 0
	for i := 1; i <= len(g.shares); i++ {
		if i == len(g.shares) || g.shares[i].IsStart() {
			blobs = append(blobs, Blob{shares: g.shares[start:i], baseIndex: start})
			start = i
		}
	}
	return blobs
}
