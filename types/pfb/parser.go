// Package pfb walks the compact PFB namespace's transaction stream and
// decodes each pay-for-blob transaction, over this module's own
// BlobReader rather than a borrowed-buffer iterator.
package pfb

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/sovereign-labs/celestia-da-verifier/types/coretx"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
	"github.com/sovereign-labs/celestia-da-verifier/types/varint"
)

var log = logging.Logger("da-pfb")

// TxPosition locates a PFB transaction within its compact share
// sequence: the half-open range of share indices it spans, and the byte
// offset into the first share's data region at which it begins.
type TxPosition struct {
	ShareStart  int
	ShareEnd    int
	StartOffset int
}

// Entry pairs a decoded PFB with the position of the transaction that
// carried it.
type Entry struct {
	Msg      *coretx.MsgPayForBlobs
	Position TxPosition
}

// Parse walks every blob in a compact PFB-namespace group (a compact
// group is always exactly one blob, but the loop is written generally)
// and decodes each wrapped MsgPayForBlobs in order.
func Parse(group share.NamespaceGroup) ([]Entry, error) {
	if group.Class() != share.Compact {
		return nil, fmt.Errorf("pfb: parser requires a compact namespace group")
	}
	if len(group.Shares()) == 0 {
		return nil, nil
	}

	var entries []Entry
	for _, blob := range group.Blobs() {
		reader, err := blob.Reader()
		if err != nil {
			return nil, fmt.Errorf("pfb: open blob reader: %w", err)
		}
		for reader.Remaining() > 0 {
			entry, err := nextEntry(reader)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				entries = append(entries, *entry)
			}
		}
	}
	return entries, nil
}

// nextEntry reads one (varint length, BlobTx) record from the reader's
// current cursor, decoding it into a PFB entry. It returns (nil, nil) if
// the bytes at the cursor don't decode as a BlobTx wrapping a single
// MsgPayForBlobs; any such record is simply not a PFB and is skipped.
func nextEntry(reader *share.BlobReader) (*Entry, error) {
	startShare, startOffset := reader.CurrentPosition()

	length, err := readVarint(reader)
	if err != nil {
		return nil, fmt.Errorf("pfb: invalid length varint: %w", err)
	}

	raw, err := readN(reader, int(length))
	if err != nil {
		return nil, fmt.Errorf("pfb: read blob-tx body: %w", err)
	}

	blobTx, err := coretx.DecodeBlobTx(raw)
	if err != nil {
		log.Debugw("skipping non-blob-tx record", "err", err)
		return nil, nil
	}
	tx, err := coretx.DecodeTx(blobTx.Tx)
	if err != nil {
		log.Debugw("skipping blob-tx with undecodable inner tx", "err", err)
		return nil, nil
	}
	msg, err := coretx.DecodeSinglePayForBlobs(tx)
	if err != nil {
		log.Debugw("skipping tx with no single MsgPayForBlobs", "err", err)
		return nil, nil
	}

	endShare, _ := reader.CurrentPosition()
	return &Entry{
		Msg: msg,
		Position: TxPosition{
			ShareStart:  startShare,
			ShareEnd:    endShare + 1,
			StartOffset: startOffset,
		},
	}, nil
}

// readVarint decodes a LEB128 varint starting at the reader's cursor,
// reading one byte at a time so the encoding may straddle a share
// boundary. A transaction crossing a row boundary mid-stream can just
// as easily split its own length varint across two shares.
func readVarint(reader *share.BlobReader) (uint64, error) {
	var buf []byte
	for {
		b, err := readN(reader, 1)
		if err != nil {
			return 0, err
		}
		buf = append(buf, b[0])
		value, _, err := varint.Decode(buf)
		switch {
		case err == nil:
			return value, nil
		case err == varint.ErrTruncated:
			continue
		default:
			return 0, err
		}
	}
}

// readN drains exactly n bytes from the reader into a contiguous
// buffer, crossing share boundaries as needed.
func readN(reader *share.BlobReader, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		chunk := reader.Chunk()
		if len(chunk) == 0 {
			return nil, fmt.Errorf("unexpected end of blob: wanted %d more bytes", n-len(out))
		}
		take := n - len(out)
		if take > len(chunk) {
			take = len(chunk)
		}
		out = append(out, chunk[:take]...)
		if err := reader.Advance(take); err != nil {
			return nil, err
		}
	}
	return out, nil
}
