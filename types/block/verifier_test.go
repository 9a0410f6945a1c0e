package block

import (
	"testing"

	cmttypes "github.com/cometbft/cometbft/types"
	gogoproto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/commitment"
	"github.com/sovereign-labs/celestia-da-verifier/types/coretx"
	ourheader "github.com/sovereign-labs/celestia-da-verifier/types/header"
	"github.com/sovereign-labs/celestia-da-verifier/types/merkle"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	ournmt "github.com/sovereign-labs/celestia-da-verifier/types/nmt"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// scenario builds a single-row, square-size-4 block containing exactly
// one PFB transaction and the one rollup blob it pays for, so
// VerifyRelevantTxList can be exercised end to end against hand-built
// proofs.
type scenario struct {
	rollupNS     namespace.ID
	squareSize   int
	eh           *ourheader.ExtendedHeader
	blobShare    share.Share
	pfbShare     share.Share
	commitment   []byte
	completeness CompletenessProof
	multiproof   InclusionMultiproof
	blobs        []BlobWithSender
}

func buildScenario(t *testing.T) scenario {
	t.Helper()

	rollupNS := namespace.ID{0, 0, 0, 0, 0, 0, 1, 0}
	const signer = "celestia1zfvrrfaq9ud6g9t4kzmslpf24ysaxqfnzee5w9"
	const squareSize = 4

	blobData := make([]byte, 300)
	for i := range blobData {
		blobData[i] = byte(i)
	}
	blobShares, err := share.NewSplitter(rollupNS).SplitSparse(blobData)
	require.NoError(t, err)
	require.Len(t, blobShares, 1)
	blobShare := blobShares[0]

	commit, err := commitment.RecreateCommitment(squareSize, rollupNS, [][]byte{blobShare.Bytes()})
	require.NoError(t, err)

	pfbMsg := &coretx.MsgPayForBlobs{
		Signer:           signer,
		NamespaceIds:     [][]byte{rollupNS.Bytes()},
		BlobSizes:        []uint32{uint32(len(blobData))},
		ShareCommitments: [][]byte{commit},
		ShareVersions:    []uint32{0},
	}
	pfbBytes, err := gogoproto.Marshal(pfbMsg)
	require.NoError(t, err)
	any := &coretx.Any{TypeUrl: coretx.MsgPayForBlobsTypeUrl, Value: pfbBytes}
	tx := &coretx.Tx{Body: &coretx.TxBody{Messages: []*coretx.Any{any}}}
	txBytes, err := gogoproto.Marshal(tx)
	require.NoError(t, err)
	blobTx := &coretx.BlobTx{Tx: txBytes, TypeId: "BLOB"}
	blobTxBytes, err := gogoproto.Marshal(blobTx)
	require.NoError(t, err)

	pfbShares, err := share.NewSplitter(namespace.PfbNamespace).SplitCompact([][]byte{blobTxBytes})
	require.NoError(t, err)
	require.Len(t, pfbShares, 1)
	pfbShare := pfbShares[0]
	startOffset, err := firstTxOffsetOf(t, pfbShare)
	require.NoError(t, err)

	filler := func(fill byte) []byte {
		b := make([]byte, 512)
		for i := range b {
			b[i] = fill
		}
		return b
	}

	row := ournmt.NewRowTree()
	require.NoError(t, row.PushOriginal(namespace.PfbNamespace, pfbShare.Bytes()))
	require.NoError(t, row.PushOriginal(rollupNS, blobShare.Bytes()))
	require.NoError(t, row.PushParity(filler(0xaa)))
	require.NoError(t, row.PushParity(filler(0xbb)))
	rowRoot, err := row.Root()
	require.NoError(t, err)

	completenessProof, err := row.ProveNamespace(rollupNS)
	require.NoError(t, err)
	rangeProof, err := row.ProveRange(0, 1)
	require.NoError(t, err)

	otherRows := make([]ournmt.Hash, 3)
	for i := range otherRows {
		r := ournmt.NewRowTree()
		require.NoError(t, r.PushParity(filler(byte(0xc0+i))))
		require.NoError(t, r.PushParity(filler(byte(0xd0+i))))
		require.NoError(t, r.PushParity(filler(byte(0xe0+i))))
		require.NoError(t, r.PushParity(filler(byte(0xf0+i))))
		root, err := r.Root()
		require.NoError(t, err)
		otherRows[i] = root
	}

	rowRoots := []ournmt.Hash{rowRoot, otherRows[0], otherRows[1], otherRows[2]}
	colRoots := []ournmt.Hash{rowRoot, otherRows[0], otherRows[1], otherRows[2]}
	leaves := make([][]byte, 0, 8)
	for _, r := range rowRoots {
		leaves = append(leaves, r.Bytes())
	}
	for _, c := range colRoots {
		leaves = append(leaves, c.Bytes())
	}
	dataHash := merkle.Root(leaves)

	eh := &ourheader.ExtendedHeader{
		Header: &ourheader.BlockHeader{Raw: &cmttypes.Header{DataHash: dataHash}},
		DAH:    &ourheader.DataAvailabilityHeader{RowRoots: rowRoots, ColumnRoots: colRoots},
	}

	return scenario{
		rollupNS:   rollupNS,
		squareSize: squareSize,
		eh:         eh,
		blobShare:  blobShare,
		pfbShare:   pfbShare,
		commitment: commit,
		completeness: CompletenessProof{Rows: []RelevantRowProof{
			{Leaves: []share.Share{blobShare}, Proof: completenessProof},
		}},
		multiproof: InclusionMultiproof{Proofs: []EtxProof{
			{SubProofs: []EtxRangeProof{
				{StartShareIdx: 0, StartOffset: startOffset, Shares: []share.Share{pfbShare}, Proof: rangeProof},
			}},
		}},
		blobs: []BlobWithSender{
			{Blob: []share.Share{blobShare}, Sender: signer},
		},
	}
}

func firstTxOffsetOf(t *testing.T, s share.Share) (int, error) {
	t.Helper()
	// IsValidTxStart(0) must hold for a share whose single transaction
	// starts at the very beginning of its data region.
	if s.IsValidTxStart(0) {
		return 0, nil
	}
	t.Fatalf("expected tx to start at offset 0 in the sole compact share")
	return 0, nil
}

func TestVerifyRelevantTxList_HappyPath(t *testing.T) {
	sc := buildScenario(t)
	v := NewBlockVerifier(sc.rollupNS)
	err := v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.NoError(t, err)
}

func TestVerifyRelevantTxList_RejectsWrongSigner(t *testing.T) {
	sc := buildScenario(t)
	sc.blobs[0].Sender = "celestia1wrongwrongwrongwrongwrongwrongwrongwrong"
	v := NewBlockVerifier(sc.rollupNS)
	err := v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.ErrorIs(t, err, ErrInvalidSigner)
}

func TestVerifyRelevantTxList_RejectsTamperedDataHash(t *testing.T) {
	sc := buildScenario(t)
	sc.eh.Header.Raw.DataHash[0] ^= 0xff
	v := NewBlockVerifier(sc.rollupNS)
	err := v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.ErrorIs(t, err, ErrInvalidDataRoot)
}

func TestVerifyRelevantTxList_RejectsTamperedCompletenessLeaves(t *testing.T) {
	sc := buildScenario(t)

	tamperedRaw := append([]byte{}, sc.blobShare.Bytes()...)
	tamperedRaw[100] ^= 0xff
	tampered, err := share.Decode(tamperedRaw)
	require.NoError(t, err)
	sc.completeness.Rows[0].Leaves[0] = tampered

	v := NewBlockVerifier(sc.rollupNS)
	err = v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.ErrorIs(t, err, ErrInvalidRowProof)
}

func TestVerifyRelevantTxList_RejectsMissingBlob(t *testing.T) {
	sc := buildScenario(t)
	v := NewBlockVerifier(sc.rollupNS)
	err := v.VerifyRelevantTxList(sc.eh, nil, sc.multiproof, sc.completeness)
	require.ErrorIs(t, err, ErrMissingTx)
}

func TestVerifyRelevantTxList_RejectsShiftedInclusionProof(t *testing.T) {
	sc := buildScenario(t)
	sc.multiproof.Proofs[0].SubProofs[0].StartShareIdx = 1
	v := NewBlockVerifier(sc.rollupNS)
	err := v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.ErrorIs(t, err, ErrInvalidEtxProof)
}

func TestVerifyRelevantTxList_EmptyRollupNamespaceRequiresNoBlobs(t *testing.T) {
	sc := buildScenario(t)
	other := namespace.ID{0, 0, 0, 0, 0, 0, 2, 0}
	v := NewBlockVerifier(other)
	err := v.VerifyRelevantTxList(sc.eh, nil, InclusionMultiproof{}, CompletenessProof{})
	require.NoError(t, err)

	err = v.VerifyRelevantTxList(sc.eh, sc.blobs, sc.multiproof, sc.completeness)
	require.Error(t, err)
}
