package nmt

import (
	"crypto/sha256"
	"fmt"

	libnmt "github.com/celestiaorg/nmt"
	libns "github.com/celestiaorg/nmt/namespace"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	ourns "github.com/sovereign-labs/celestia-da-verifier/types/namespace"
)

// newTree returns a freshly configured celestiaorg/nmt tree using this
// module's namespace width and the parity-share rule: ignoring the
// library's own "max namespace" short-circuit, since this module forces
// parity shares into ParityNamespace explicitly rather than relying on
// the library to detect it.
func newTree() *libnmt.NamespacedMerkleTree {
	return libnmt.New(
		sha256.New(),
		libnmt.NamespaceIDSize(appconsts.NamespaceSize),
		libnmt.IgnoreMaxNamespace(true),
	)
}

func toLibNamespace(id ourns.ID) libns.ID {
	return libns.ID(id.Bytes())
}

// RowTree builds one EDS row's namespaced Merkle tree: the left half of
// leaves keep their own declared namespace, the right (parity) half is
// forced under ParityNamespace so it always sorts last, per Celestia's
// non-interactive default rules.
type RowTree struct {
	tree *libnmt.NamespacedMerkleTree
}

// NewRowTree returns an empty row tree.
func NewRowTree() *RowTree {
	return &RowTree{tree: newTree()}
}

// PushOriginal appends an original (non-parity) share leaf under
// namespace ns; the share bytes themselves are not inspected.
func (t *RowTree) PushOriginal(ns ourns.ID, shareBytes []byte) error {
	leaf := append(append([]byte{}, ns.Bytes()...), shareBytes...)
	if err := t.tree.Push(leaf); err != nil {
		return fmt.Errorf("nmt: push original share: %w", err)
	}
	return nil
}

// PushParity appends a parity share leaf, forcing its namespace to
// ParityNamespace regardless of the share's own contents.
func (t *RowTree) PushParity(shareBytes []byte) error {
	leaf := append(append([]byte{}, ourns.ParityNamespace.Bytes()...), shareBytes...)
	if err := t.tree.Push(leaf); err != nil {
		return fmt.Errorf("nmt: push parity share: %w", err)
	}
	return nil
}

// Root returns the row's namespaced root.
func (t *RowTree) Root() (Hash, error) {
	root, err := t.tree.Root()
	if err != nil {
		return Hash{}, fmt.Errorf("nmt: compute row root: %w", err)
	}
	return HashFromBytes(root)
}

// ProveNamespace builds a CompleteNamespaceProof: a proof that the given
// leaves are the complete, contiguous set of shares the row holds for
// ns, neither more nor fewer.
func (t *RowTree) ProveNamespace(ns ourns.ID) (CompleteNamespaceProof, error) {
	proof, err := t.tree.ProveNamespace(toLibNamespace(ns))
	if err != nil {
		return CompleteNamespaceProof{}, fmt.Errorf("nmt: prove namespace %s: %w", ns, err)
	}
	return CompleteNamespaceProof{ns: ns, proof: proof}, nil
}

// ProveRange builds a RangeProof over the half-open leaf index range
// [start, end).
func (t *RowTree) ProveRange(start, end int) (RangeProof, error) {
	proof, err := t.tree.ProveRange(start, end)
	if err != nil {
		return RangeProof{}, fmt.Errorf("nmt: prove range [%d,%d): %w", start, end, err)
	}
	return RangeProof{start: start, end: end, proof: proof}, nil
}
