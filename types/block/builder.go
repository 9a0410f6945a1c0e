package block

import (
	"bytes"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	"github.com/sovereign-labs/celestia-da-verifier/types/commitment"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// ExtractRelevantTxs returns the block's rollup blobs paired with the
// senders their PFB transactions declare, without building any proofs.
// Full nodes that trust their own view use this; provers serving light
// clients use ExtractRelevantTxsWithProof instead.
func (v *BlockVerifier) ExtractRelevantTxs(fb *FilteredBlock) ([]BlobWithSender, error) {
	squareSize := fb.Header.SquareSize()

	var blobs []BlobWithSender
	for _, b := range fb.RollupData.Blobs() {
		blobShares := b.Shares()
		shareBytes := make([][]byte, len(blobShares))
		for i, s := range blobShares {
			shareBytes[i] = s.Bytes()
		}
		commit, err := commitment.RecreateCommitment(squareSize, v.RollupNamespace, shareBytes)
		if err != nil {
			return nil, fmt.Errorf("block: recreate commitment at share %d: %w", b.BaseIndex(), err)
		}
		entry, ok := fb.RelevantPfbs[string(commit)]
		if !ok {
			return nil, fmt.Errorf("block: no PFB claims commitment for blob at share %d", b.BaseIndex())
		}
		blobs = append(blobs, BlobWithSender{Blob: blobShares, Sender: entry.Msg.Signer})
	}
	return blobs, nil
}

// ExtractRelevantTxsWithProof is the prover-side counterpart to
// VerifyRelevantTxList: given a FilteredBlock whose extended data square
// was fetched alongside its namespace shares, it rebuilds every row tree
// the block's namespaces touch and emits the same three artifacts a
// verifier checks (the relevant blobs, their PFB inclusion multiproof,
// and the rollup namespace's completeness proof), built from the exact
// same row-tree and commitment logic the verifier checks against, so the
// two sides agree bit-exactly by construction.
func (v *BlockVerifier) ExtractRelevantTxsWithProof(fb *FilteredBlock) ([]BlobWithSender, InclusionMultiproof, CompletenessProof, error) {
	if fb.EDS == nil {
		return nil, InclusionMultiproof{}, CompletenessProof{}, fmt.Errorf("block: filtered block has no extended data square")
	}
	if err := fb.Header.Validate(); err != nil {
		return nil, InclusionMultiproof{}, CompletenessProof{}, fmt.Errorf("block: header invalid: %w", err)
	}
	squareSize := fb.Header.SquareSize()

	completeness, err := buildCompletenessProof(fb, v.RollupNamespace)
	if err != nil {
		return nil, InclusionMultiproof{}, CompletenessProof{}, err
	}

	var blobs []BlobWithSender
	var etxProofs []EtxProof
	for _, b := range fb.RollupData.Blobs() {
		blobShares := b.Shares()
		shareBytes := make([][]byte, len(blobShares))
		for i, s := range blobShares {
			shareBytes[i] = s.Bytes()
		}
		commit, err := commitment.RecreateCommitment(squareSize, v.RollupNamespace, shareBytes)
		if err != nil {
			return nil, InclusionMultiproof{}, CompletenessProof{}, fmt.Errorf("block: recreate commitment at share %d: %w", b.BaseIndex(), err)
		}
		entry, ok := fb.RelevantPfbs[string(commit)]
		if !ok {
			return nil, InclusionMultiproof{}, CompletenessProof{}, fmt.Errorf("block: no PFB claims commitment for blob at share %d", b.BaseIndex())
		}

		etxProof, err := buildEtxProof(fb, squareSize, namespace.PfbNamespace, entry.Position)
		if err != nil {
			return nil, InclusionMultiproof{}, CompletenessProof{}, err
		}
		etxProofs = append(etxProofs, etxProof)
		blobs = append(blobs, BlobWithSender{Blob: blobShares, Sender: entry.Msg.Signer})
	}

	return blobs, InclusionMultiproof{Proofs: etxProofs}, completeness, nil
}

// buildCompletenessProof proves, for every row containing ns, that the
// block's recorded shares for that row are the row's complete namespace
// leaf set: one RelevantRowProof per entry in fb.RollupRows, which
// VerifyRelevantTxList consumes in the same row order.
func buildCompletenessProof(fb *FilteredBlock, ns namespace.ID) (CompletenessProof, error) {
	rows := make([]RelevantRowProof, 0, len(fb.RollupRows))
	for _, row := range fb.RollupRows {
		tree, err := buildFullRowTree(fb.EDS.Row(uint(row.Index)))
		if err != nil {
			return CompletenessProof{}, fmt.Errorf("block: rebuild row %d: %w", row.Index, err)
		}
		root, err := tree.Root()
		if err != nil {
			return CompletenessProof{}, fmt.Errorf("block: root row %d: %w", row.Index, err)
		}
		if !bytes.Equal(root.Bytes(), row.Root.Bytes()) {
			return CompletenessProof{}, fmt.Errorf("block: rebuilt row %d root does not match DAH", row.Index)
		}
		proof, err := tree.ProveNamespace(ns)
		if err != nil {
			return CompletenessProof{}, fmt.Errorf("block: prove namespace on row %d: %w", row.Index, err)
		}
		rows = append(rows, RelevantRowProof{Leaves: row.Shares, Proof: proof})
	}
	return CompletenessProof{Rows: rows}, nil
}

// buildEtxProof builds one blob's PFB inclusion proof, splitting pos's
// flattened share range across as many rows as it spans.
func buildEtxProof(fb *FilteredBlock, squareSize int, pfbNS namespace.ID, pos TxPosition) (EtxProof, error) {
	var subProofs []EtxRangeProof
	cursor := pos.ShareStart
	startOffset := pos.StartOffset

	for cursor < pos.ShareEnd {
		row, localStart, err := locateFlatRow(fb.PfbRows, cursor)
		if err != nil {
			return EtxProof{}, err
		}
		localEnd := len(row.Shares)
		if want := pos.ShareEnd - cursor; localEnd-localStart > want {
			localEnd = localStart + want
		}

		fullRow := fb.EDS.Row(uint(row.Index))
		tree, err := buildFullRowTree(fullRow)
		if err != nil {
			return EtxProof{}, fmt.Errorf("block: rebuild row %d: %w", row.Index, err)
		}
		colStart, colEnd, err := findColumnRange(row.Shares[localStart:localEnd], fullRow)
		if err != nil {
			return EtxProof{}, fmt.Errorf("block: locate PFB run in row %d: %w", row.Index, err)
		}
		proof, err := tree.ProveRange(colStart, colEnd)
		if err != nil {
			return EtxProof{}, fmt.Errorf("block: prove range on row %d: %w", row.Index, err)
		}

		subProofs = append(subProofs, EtxRangeProof{
			StartShareIdx: row.Index*squareSize + colStart,
			StartOffset:   startOffset,
			Shares:        row.Shares[localStart:localEnd],
			Proof:         proof,
		})
		startOffset = 0
		cursor += localEnd - localStart
	}

	if len(subProofs) == 0 {
		return EtxProof{}, errorsmod.Wrap(ErrInvalidEtxProof, "PFB position spans no rows")
	}
	return EtxProof{SubProofs: subProofs}, nil
}

// locateFlatRow finds the Row (and the local offset within it) that
// flatIdx falls at, treating rows as concatenated in order the way
// BlobReader numbers a compact group's shares.
func locateFlatRow(rows []Row, flatIdx int) (Row, int, error) {
	cum := 0
	for _, row := range rows {
		if flatIdx < cum+len(row.Shares) {
			return row, flatIdx - cum, nil
		}
		cum += len(row.Shares)
	}
	return Row{}, 0, fmt.Errorf("block: flattened share index %d out of range", flatIdx)
}

// buildFullRowTree reconstructs one EDS row's namespaced Merkle tree
// from its raw shares: the first half keeps each share's own declared
// namespace, the second (parity) half is forced under ParityNamespace,
// mirroring exactly how the DAH's row roots were computed.
func buildFullRowTree(rawRow [][]byte) (*ournmt.RowTree, error) {
	if len(rawRow) == 0 || len(rawRow)%2 != 0 {
		return nil, fmt.Errorf("block: row has invalid width %d", len(rawRow))
	}
	half := len(rawRow) / 2
	tree := ournmt.NewRowTree()
	for i, raw := range rawRow {
		if i < half {
			ns, err := namespace.FromBytes(raw[:appconsts.NamespaceSize])
			if err != nil {
				return nil, fmt.Errorf("row share %d: %w", i, err)
			}
			if err := tree.PushOriginal(ns, raw); err != nil {
				return nil, err
			}
			continue
		}
		if err := tree.PushParity(raw); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// findColumnRange locates the contiguous run of want within a row's
// original (non-parity) half, returning its half-open column range.
func findColumnRange(want []share.Share, rawRow [][]byte) (start, end int, err error) {
	if len(want) == 0 {
		return 0, 0, fmt.Errorf("empty share range")
	}
	half := len(rawRow) / 2
	for start = 0; start+len(want) <= half; start++ {
		if !bytes.Equal(rawRow[start], want[0].Bytes()) {
			continue
		}
		match := true
		for j := 1; j < len(want); j++ {
			if !bytes.Equal(rawRow[start+j], want[j].Bytes()) {
				match = false
				break
			}
		}
		if match {
			return start, start + len(want), nil
		}
	}
	return 0, 0, fmt.Errorf("could not locate share run within row")
}
