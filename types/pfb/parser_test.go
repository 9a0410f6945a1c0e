package pfb

import (
	"testing"

	gogoproto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/coretx"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

// encodeBlobTxRecord returns the raw BlobTx wire bytes. SplitCompact
// itself prepends the length varint; callers must not add a second one.
func encodeBlobTxRecord(t *testing.T) []byte {
	t.Helper()

	pfbMsg := &coretx.MsgPayForBlobs{
		Signer:           "celestia1zfvrrfaq9ud6g9t4kzmslpf24ysaxqfnzee5w9",
		NamespaceIds:     [][]byte{[]byte("sov-test")},
		BlobSizes:        []uint32{512},
		ShareCommitments: [][]byte{make([]byte, 32)},
		ShareVersions:    []uint32{0},
	}
	pfbBytes, err := gogoproto.Marshal(pfbMsg)
	require.NoError(t, err)

	any := &coretx.Any{TypeUrl: coretx.MsgPayForBlobsTypeUrl, Value: pfbBytes}
	body := &coretx.TxBody{Messages: []*coretx.Any{any}}
	tx := &coretx.Tx{Body: body}
	txBytes, err := gogoproto.Marshal(tx)
	require.NoError(t, err)

	blobTx := &coretx.BlobTx{Tx: txBytes, TypeId: "BLOB"}
	blobTxBytes, err := gogoproto.Marshal(blobTx)
	require.NoError(t, err)
	return blobTxBytes
}

func TestParse_SingleBlobTxRecord(t *testing.T) {
	record := encodeBlobTxRecord(t)

	splitter := share.NewSplitter(namespace.PfbNamespace)
	shares, err := splitter.SplitCompact([][]byte{record})
	require.NoError(t, err)

	group, err := share.NewGroup(shares)
	require.NoError(t, err)
	require.Equal(t, share.Compact, group.Class())

	entries, err := Parse(group)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.Equal(t, "celestia1zfvrrfaq9ud6g9t4kzmslpf24ysaxqfnzee5w9", entry.Msg.Signer)
	require.Equal(t, [][]byte{[]byte("sov-test")}, entry.Msg.NamespaceIds)
	require.Equal(t, 0, entry.Position.ShareStart)
}

func TestParse_RejectsSparseGroup(t *testing.T) {
	splitter := share.NewSplitter(namespace.ID{0, 0, 0, 0, 0, 0, 1, 0})
	shares, err := splitter.SplitSparse([]byte("not a pfb"))
	require.NoError(t, err)
	group, err := share.NewGroup(shares)
	require.NoError(t, err)

	_, err = Parse(group)
	require.Error(t, err)
}
