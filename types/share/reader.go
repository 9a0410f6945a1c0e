package share

import "fmt"

// BlobReader is a byte cursor across an ordered list of share data
// regions, bounded by a blob's declared sequence length, that
// transparently advances into the next share's data region once the
// current one is exhausted. It owns no borrowed-buffer trait from any
// dependency, so it works directly against this package's own Share
// type.
type BlobReader struct {
	shares      []Share
	baseIndex   int
	sequenceLen int
	consumed    int
	shareIdx    int // index into shares
	byteOffset  int // offset within shares[shareIdx].Data()
}

// NewBlobReader builds a reader over a blob's shares. baseIndex is the
// index of shares[0] within whatever larger group or row the blob was
// sliced from, used only so CurrentPosition can report absolute
// coordinates.
func NewBlobReader(shares []Share, baseIndex int) (*BlobReader, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("share: blob must have at least one share")
	}
	if !shares[0].IsStart() {
		return nil, fmt.Errorf("share: blob must begin with a sequence-start share")
	}
	seqLen, err := shares[0].SequenceLength()
	if err != nil {
		return nil, err
	}
	return &BlobReader{
		shares:      shares,
		baseIndex:   baseIndex,
		sequenceLen: int(seqLen),
	}, nil
}

// Remaining returns the number of bytes left to read before the declared
// sequence length is exhausted.
func (r *BlobReader) Remaining() int {
	return r.sequenceLen - r.consumed
}

// Chunk returns a zero-copy slice into the current share's data region,
// truncated to Remaining() so that any tail padding on the blob's last
// share is never exposed. It returns an empty slice once Remaining() is
// zero or the shares are exhausted.
func (r *BlobReader) Chunk() []byte {
	remaining := r.Remaining()
	if remaining <= 0 || r.shareIdx >= len(r.shares) {
		return nil
	}
	data := r.shares[r.shareIdx].Data()[r.byteOffset:]
	if len(data) > remaining {
		data = data[:remaining]
	}
	return data
}

// Advance consumes n bytes from the reader, transparently crossing share
// boundaries as needed.
func (r *BlobReader) Advance(n int) error {
	for n > 0 {
		chunk := r.Chunk()
		if len(chunk) == 0 {
			return fmt.Errorf("share: advance past end of blob (wanted %d more bytes)", n)
		}
		take := n
		if take > len(chunk) {
			take = len(chunk)
		}
		r.consumed += take
		r.byteOffset += take
		n -= take
		if r.byteOffset >= len(r.shares[r.shareIdx].Data()) {
			r.shareIdx++
			r.byteOffset = 0
		}
	}
	return nil
}

// CurrentPosition reports the (share index, byte offset within that
// share's data region) the reader's cursor currently points at. The
// share index is absolute (baseIndex-adjusted) so callers assembling a
// TxPosition can record it directly.
func (r *BlobReader) CurrentPosition() (shareIndex, byteOffset int) {
	return r.baseIndex + r.shareIdx, r.byteOffset
}

// ReadAll drains the reader into a single contiguous buffer, exactly
// SequenceLength() bytes long, by concatenating data regions and
// truncating the last one to honor zero-padding.
func (r *BlobReader) ReadAll() ([]byte, error) {
	out := make([]byte, 0, r.Remaining())
	for r.Remaining() > 0 {
		chunk := r.Chunk()
		if len(chunk) == 0 {
			return nil, fmt.Errorf("share: blob truncated: %d bytes still expected", r.Remaining())
		}
		out = append(out, chunk...)
		if err := r.Advance(len(chunk)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
