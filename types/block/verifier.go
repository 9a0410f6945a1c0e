package block

import (
	"bytes"
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	logging "github.com/ipfs/go-log/v2"

	"github.com/sovereign-labs/celestia-da-verifier/types/commitment"
	"github.com/sovereign-labs/celestia-da-verifier/types/coretx"
	"github.com/sovereign-labs/celestia-da-verifier/types/header"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
	"github.com/sovereign-labs/celestia-da-verifier/types/varint"
)

var log = logging.Logger("da-block")

// BlobWithSender is a logical rollup submission whose sender has been
// linked via its PFB transaction.
type BlobWithSender struct {
	Blob   []share.Share
	Sender string
}

// BlockVerifier checks a block's extracted blob set against its header
// and accompanying proofs with no network access.
type BlockVerifier struct {
	RollupNamespace namespace.ID
}

// NewBlockVerifier returns a verifier scoped to a single rollup
// namespace.
func NewBlockVerifier(rollupNamespace namespace.ID) *BlockVerifier {
	return &BlockVerifier{RollupNamespace: rollupNamespace}
}

// VerifyRelevantTxList is the verifier's single public entry point. It
// performs no I/O: header, blobs, and both proofs are supplied in full
// by the caller.
func (v *BlockVerifier) VerifyRelevantTxList(
	h *header.ExtendedHeader,
	blobs []BlobWithSender,
	multiproof InclusionMultiproof,
	completeness CompletenessProof,
) error {
	if err := validateHeader(h); err != nil {
		return err
	}
	squareSize := h.SquareSize()

	rollupShares, err := verifyCompleteness(h, completeness, v.RollupNamespace)
	if err != nil {
		return err
	}

	if len(rollupShares) == 0 {
		if len(blobs) != 0 {
			return ErrMissingTx
		}
		return nil
	}

	group, err := share.NewGroup(rollupShares)
	if err != nil {
		return errorsmod.Wrap(ErrInvalidRowProof, err.Error())
	}
	blobGroups := group.Blobs()
	if len(blobGroups) != len(multiproof.Proofs) {
		return errorsmod.Wrapf(ErrMissingTx, "got %d blobs but %d inclusion proofs", len(blobGroups), len(multiproof.Proofs))
	}

	remaining := blobs
	for i, bg := range blobGroups {
		pfbMsg, err := verifyEtxProof(h, squareSize, namespace.PfbNamespace, multiproof.Proofs[i])
		if err != nil {
			return err
		}

		blobShares := bg.Shares()
		shareBytes := make([][]byte, len(blobShares))
		for j, s := range blobShares {
			shareBytes[j] = s.Bytes()
		}

		for idx, nsBytes := range pfbMsg.NamespaceIds {
			nsID, err := namespace.FromBytes(nsBytes)
			if err != nil {
				return errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
			}
			if !nsID.Equal(v.RollupNamespace) {
				continue
			}
			if len(remaining) == 0 {
				return ErrMissingTx
			}
			next := remaining[0]
			remaining = remaining[1:]

			if next.Sender != pfbMsg.Signer {
				return ErrInvalidSigner
			}
			if !blobBytesEqual(next.Blob, blobShares) {
				return errorsmod.Wrap(ErrInvalidEtxProof, "blob bytes do not match claimed blob")
			}
			commit, err := commitment.RecreateCommitment(squareSize, v.RollupNamespace, shareBytes)
			if err != nil {
				return errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
			}
			if idx >= len(pfbMsg.ShareCommitments) || !bytes.Equal(commit, pfbMsg.ShareCommitments[idx]) {
				return errorsmod.Wrap(ErrInvalidEtxProof, "recreated commitment does not match PFB")
			}
		}
	}

	if len(remaining) != 0 {
		return errorsmod.Wrapf(ErrMissingTx, "%d blob(s) left unconsumed", len(remaining))
	}
	return nil
}

func validateHeader(h *header.ExtendedHeader) error {
	err := h.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, header.ErrMissingDataHash):
		return ErrMissingDataHash
	case errors.Is(err, header.ErrInvalidDataRoot):
		return ErrInvalidDataRoot
	default:
		return errorsmod.Wrap(ErrInvalidDataRoot, err.Error())
	}
}

// verifyCompleteness consumes one RelevantRowProof per row whose root
// contains ns, verifying each as a complete-namespace proof and
// concatenating the resulting leaves in row order.
func verifyCompleteness(h *header.ExtendedHeader, proof CompletenessProof, ns namespace.ID) ([]share.Share, error) {
	var rollupShares []share.Share
	consumed := 0
	for rowIdx, root := range h.DAH.RowRoots {
		if !root.Contains(ns) {
			continue
		}
		if consumed >= len(proof.Rows) {
			return nil, errorsmod.Wrapf(ErrInvalidRowProof, "missing completeness proof for row %d", rowIdx)
		}
		rp := proof.Rows[consumed]
		consumed++

		leafBytes := make([][]byte, len(rp.Leaves))
		for j, s := range rp.Leaves {
			leafBytes[j] = nmtLeaf(ns, s)
		}
		if !rp.Proof.Verify(root, leafBytes) {
			return nil, errorsmod.Wrapf(ErrInvalidRowProof, "completeness proof failed for row %d", rowIdx)
		}
		rollupShares = append(rollupShares, rp.Leaves...)
	}
	if consumed != len(proof.Rows) {
		return nil, errorsmod.Wrap(ErrInvalidRowProof, "completeness proof has unconsumed rows")
	}
	return rollupShares, nil
}

// verifyEtxProof checks one blob's inclusion proof: a non-empty,
// contiguous ordered list of range sub-proofs over the PFB namespace,
// then decodes and returns the PFB transaction it resolves to.
func verifyEtxProof(h *header.ExtendedHeader, squareSize int, pfbNS namespace.ID, etx EtxProof) (*coretx.MsgPayForBlobs, error) {
	if len(etx.SubProofs) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, "empty sub-proof list")
	}

	var txShares []share.Share
	for i, sp := range etx.SubProofs {
		if i > 0 {
			prev := etx.SubProofs[i-1]
			if prev.StartShareIdx+len(prev.Shares) != sp.StartShareIdx {
				return nil, errorsmod.Wrap(ErrInvalidEtxProof, "non-contiguous sub-proofs")
			}
		}
		if squareSize == 0 {
			return nil, errorsmod.Wrap(ErrInvalidEtxProof, "zero square size")
		}
		row := sp.StartShareIdx / squareSize
		if row < 0 || row >= len(h.DAH.RowRoots) {
			return nil, errorsmod.Wrap(ErrInvalidEtxProof, "sub-proof row index out of range")
		}
		if sp.Proof.Start() != sp.StartShareIdx%squareSize {
			return nil, errorsmod.Wrap(ErrInvalidEtxProof, "sub-proof position disagrees with claimed share index")
		}
		leafBytes := make([][]byte, len(sp.Shares))
		for j, s := range sp.Shares {
			leafBytes[j] = s.Bytes()
		}
		if !sp.Proof.Verify(h.DAH.RowRoots[row], pfbNS, leafBytes) {
			return nil, errorsmod.Wrapf(ErrInvalidEtxProof, "range proof failed for row %d", row)
		}
		txShares = append(txShares, sp.Shares...)
	}

	first := etx.SubProofs[0]
	if len(txShares) == 0 || !txShares[0].IsValidTxStart(first.StartOffset) {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, "bad start offset")
	}

	txData, err := assembleTxData(txShares, first.StartOffset)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
	}

	length, n, err := varint.Decode(txData)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, fmt.Sprintf("length varint: %v", err))
	}
	if n+int(length) > len(txData) {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, "blob-tx body runs past assembled share data")
	}
	blobTx, err := coretx.DecodeBlobTx(txData[n : n+int(length)])
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
	}
	tx, err := coretx.DecodeTx(blobTx.Tx)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
	}
	pfbMsg, err := coretx.DecodeSinglePayForBlobs(tx)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidEtxProof, err.Error())
	}
	return pfbMsg, nil
}

// assembleTxData concatenates the data regions of tx_shares, starting
// at startOffset within the first share.
func assembleTxData(shares []share.Share, startOffset int) ([]byte, error) {
	firstData := shares[0].Data()
	if startOffset > len(firstData) {
		return nil, fmt.Errorf("start offset %d past end of first share's %d-byte data region", startOffset, len(firstData))
	}
	out := append([]byte{}, firstData[startOffset:]...)
	for _, s := range shares[1:] {
		out = append(out, s.Data()...)
	}
	return out, nil
}

// nmtLeaf builds the namespace(8) || share_bytes leaf this module's NMT
// hashes leaves with.
func nmtLeaf(ns namespace.ID, s share.Share) []byte {
	return append(append([]byte{}, ns.Bytes()...), s.Bytes()...)
}

// blobBytesEqual compares two share slices byte-for-byte.
func blobBytesEqual(a, b []share.Share) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i].Bytes(), b[i].Bytes()) {
			return false
		}
	}
	return true
}
