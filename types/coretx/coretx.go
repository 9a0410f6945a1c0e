// Package coretx decodes the Cosmos SDK and Celestia protobuf message
// types this module treats as opaque wire formats: BlobTx, the inner SDK
// Tx, and MsgPayForBlobs. These are not full generated stubs, just the
// fields the verifier reads, but they decode with the real
// gogo/protobuf wire codec rather than a hand-rolled parser, so field
// numbers and varint/length-delimited framing match the real wire
// format exactly.
package coretx

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
)

// BlobTx is celestia-core's wrapper around an SDK transaction, used to
// carry blob data alongside the PFB that pays for it. Its wire type URL
// is "/celestia.blob.v1.BlobTx" but this module only ever decodes it
// positionally out of the compact PFB namespace, so the type URL itself
// is never inspected.
type BlobTx struct {
	Tx     []byte  `protobuf:"bytes,1,opt,name=tx,proto3" json:"tx,omitempty"`
	Blobs  []*Blob `protobuf:"bytes,2,rep,name=blobs,proto3" json:"blobs,omitempty"`
	TypeId string  `protobuf:"bytes,3,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
}

func (m *BlobTx) Reset()         { *m = BlobTx{} }
func (m *BlobTx) String() string { return proto.CompactTextString(m) }
func (*BlobTx) ProtoMessage()    {}

// Blob is the share payload portion of a BlobTx; this module never reads
// it directly (blob bytes are recovered from shares instead), but it
// must be present on the struct so the wire decoder can skip over it
// correctly when walking BlobTx.Blobs.
type Blob struct {
	NamespaceId  []byte `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Data         []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
	ShareVersion uint32 `protobuf:"varint,3,opt,name=share_version,json=shareVersion,proto3" json:"share_version,omitempty"`
}

func (m *Blob) Reset()         { *m = Blob{} }
func (m *Blob) String() string { return proto.CompactTextString(m) }
func (*Blob) ProtoMessage()    {}

// DecodeBlobTx unmarshals one BlobTx record from the compact PFB
// namespace's transaction stream; b holds the record's bytes with the
// leading length varint already removed.
func DecodeBlobTx(b []byte) (*BlobTx, error) {
	var tx BlobTx
	if err := proto.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("coretx: decode BlobTx: %w", err)
	}
	return &tx, nil
}

// Any is the Cosmos SDK's google.protobuf.Any envelope, used to carry a
// TxBody message of unknown concrete type without the decoder needing
// the full type registry.
type Any struct {
	TypeUrl string `protobuf:"bytes,1,opt,name=type_url,json=typeUrl,proto3" json:"type_url,omitempty"`
	Value   []byte `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Any) Reset()         { *m = Any{} }
func (m *Any) String() string { return proto.CompactTextString(m) }
func (*Any) ProtoMessage()    {}

// TxBody is the Cosmos SDK's TxBody message: a list of Any-wrapped
// messages plus memo/timeout fields this module never reads.
type TxBody struct {
	Messages []*Any `protobuf:"bytes,1,rep,name=messages,proto3" json:"messages,omitempty"`
	Memo     string `protobuf:"bytes,2,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *TxBody) Reset()         { *m = TxBody{} }
func (m *TxBody) String() string { return proto.CompactTextString(m) }
func (*TxBody) ProtoMessage()    {}

// Tx is the Cosmos SDK's top-level transaction envelope. AuthInfo and
// Signatures are intentionally omitted: this module never authenticates
// a transaction itself, only compares its decoded sender against the
// PFB's declared signer.
type Tx struct {
	Body *TxBody `protobuf:"bytes,1,opt,name=body,proto3" json:"body,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// MsgPayForBlobsTypeUrl is the only message type DecodeSinglePayForBlobs
// accepts inside a Tx's body.
const MsgPayForBlobsTypeUrl = "/celestia.blob.v1.MsgPayForBlobs"

// MsgPayForBlobs is celestia-app's x/blob message: it commits a signer
// to one or more blobs, identified by parallel arrays of namespace,
// size, and share commitment.
type MsgPayForBlobs struct {
	Signer           string   `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer,omitempty"`
	NamespaceIds     [][]byte `protobuf:"bytes,2,rep,name=namespace_ids,json=namespaceIds,proto3" json:"namespace_ids,omitempty"`
	BlobSizes        []uint32 `protobuf:"varint,3,rep,packed,name=blob_sizes,json=blobSizes,proto3" json:"blob_sizes,omitempty"`
	ShareCommitments [][]byte `protobuf:"bytes,4,rep,name=share_commitments,json=shareCommitments,proto3" json:"share_commitments,omitempty"`
	ShareVersions    []uint32 `protobuf:"varint,5,rep,packed,name=share_versions,json=shareVersions,proto3" json:"share_versions,omitempty"`
}

func (m *MsgPayForBlobs) Reset()         { *m = MsgPayForBlobs{} }
func (m *MsgPayForBlobs) String() string { return proto.CompactTextString(m) }
func (*MsgPayForBlobs) ProtoMessage()    {}

// DecodeTx unmarshals an SDK Tx from bytes.
func DecodeTx(b []byte) (*Tx, error) {
	var tx Tx
	if err := proto.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("coretx: decode Tx: %w", err)
	}
	return &tx, nil
}

// DecodeSinglePayForBlobs requires tx.Body to hold exactly one message,
// of type MsgPayForBlobsTypeUrl, and decodes it.
func DecodeSinglePayForBlobs(tx *Tx) (*MsgPayForBlobs, error) {
	if tx.Body == nil || len(tx.Body.Messages) != 1 {
		return nil, fmt.Errorf("coretx: expected exactly one message in tx body, got %d", len(tx.Body.GetMessages()))
	}
	msg := tx.Body.Messages[0]
	if msg.TypeUrl != MsgPayForBlobsTypeUrl {
		return nil, fmt.Errorf("coretx: expected %s, got %s", MsgPayForBlobsTypeUrl, msg.TypeUrl)
	}
	var pfb MsgPayForBlobs
	if err := proto.Unmarshal(msg.Value, &pfb); err != nil {
		return nil, fmt.Errorf("coretx: decode MsgPayForBlobs: %w", err)
	}
	return &pfb, nil
}

// GetMessages is a nil-safe accessor, mirroring the generated-code
// convention gogoproto stubs always ship.
func (m *TxBody) GetMessages() []*Any {
	if m == nil {
		return nil
	}
	return m.Messages
}
