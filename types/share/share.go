// Package share implements the fixed-size share codec described by the
// DA layer's wire format: namespace framing, sequence-start detection,
// sparse/compact data offsets, and the compact-share transaction-start
// walk used by the PFB parser.
//
package share

import (
	"encoding/binary"
	"fmt"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/varint"
)

// Share is an immutable 512-byte DA-layer share. The zero value is
// invalid; construct one with Decode.
type Share struct {
	raw []byte
}

// Decode validates and wraps a 512-byte buffer as a Share. The backing
// array is not copied: callers must not mutate buf afterwards.
func Decode(buf []byte) (Share, error) {
	if len(buf) != appconsts.ShareSize {
		return Share{}, fmt.Errorf("share: expected %d bytes, got %d", appconsts.ShareSize, len(buf))
	}
	info := buf[appconsts.NamespaceSize]
	if info&^0x01 != 0 {
		return Share{}, fmt.Errorf("share: unsupported info byte 0x%02x (version must be 0)", info)
	}
	s := Share{raw: buf}
	if _, err := s.dataOffset(); err != nil {
		return Share{}, err
	}
	return s, nil
}

// Bytes returns the raw 512-byte encoding.
func (s Share) Bytes() []byte { return s.raw }

// Namespace returns the namespace this share belongs to.
func (s Share) Namespace() namespace.ID {
	var id namespace.ID
	copy(id[:], s.raw[:appconsts.NamespaceSize])
	return id
}

// IsStart reports whether this share begins a new sequence.
func (s Share) IsStart() bool {
	return s.raw[appconsts.NamespaceSize]&0x01 == 1
}

// IsCompact reports whether this share belongs to a reserved namespace.
func (s Share) IsCompact() bool {
	return s.Namespace().IsReserved()
}

// ErrNotStart is returned by SequenceLength on a continuation share.
var ErrNotStart = fmt.Errorf("share: not a sequence-start share")

// SequenceLength returns the declared byte length of the logical data
// sequence this share begins. It is only defined for start shares. In a
// compact share the length varint is zero-padded to a fixed four-byte
// field; in a sparse share it occupies exactly its natural width.
func (s Share) SequenceLength() (uint64, error) {
	if !s.IsStart() {
		return 0, ErrNotStart
	}
	base := appconsts.NamespaceSize + appconsts.ShareInfoBytes
	buf := s.raw[base:]
	if s.IsCompact() {
		buf = s.raw[base : base+appconsts.SequenceLenBytes]
	}
	v, _, err := varint.Decode(buf)
	if err != nil {
		return 0, fmt.Errorf("share: invalid sequence length varint: %w", err)
	}
	return v, nil
}

// firstTxOffset returns the offset, relative to this share's data region
// (i.e. relative to Data(), not the start of the raw share), of the
// first full transaction boundary, as encoded in its two reserved bytes.
// Only meaningful for compact shares.
func (s Share) firstTxOffset() (int, error) {
	if !s.IsCompact() {
		return 0, fmt.Errorf("share: first-tx offset only defined for compact shares")
	}
	base := appconsts.NamespaceSize + appconsts.ShareInfoBytes
	if s.IsStart() {
		base += appconsts.SequenceLenBytes
	}
	end := base + appconsts.CompactShareReservedBytes
	if end > len(s.raw) {
		return 0, fmt.Errorf("share: too short to contain reserved bytes")
	}
	return int(binary.BigEndian.Uint16(s.raw[base:end])), nil
}

// dataOffset returns the byte offset at which this share's data region
// begins.
func (s Share) dataOffset() (int, error) {
	offset := appconsts.NamespaceSize + appconsts.ShareInfoBytes
	if s.IsCompact() {
		offset += appconsts.CompactShareReservedBytes
		if s.IsStart() {
			offset += appconsts.SequenceLenBytes
		}
		if offset > len(s.raw) {
			return 0, fmt.Errorf("share: too short for compact data offset")
		}
		return offset, nil
	}
	if s.IsStart() {
		_, n, err := varint.Decode(s.raw[offset:])
		if err != nil {
			return 0, fmt.Errorf("share: invalid sparse sequence-length varint: %w", err)
		}
		offset += n
	}
	if offset > len(s.raw) {
		return 0, fmt.Errorf("share: too short for sparse data offset")
	}
	return offset, nil
}

// DataOffset returns the byte offset at which this share's data region
// begins.
func (s Share) DataOffset() int {
	off, err := s.dataOffset()
	if err != nil {
		// dataOffset was already validated successfully in Decode.
		panic(err)
	}
	return off
}

// Data returns this share's data region (after namespace, info byte, and
// any length framing). The returned slice aliases the share's backing
// array.
func (s Share) Data() []byte {
	return s.raw[s.DataOffset():]
}

// IsValidTxStart walks this compact share's data region, starting from
// the declared first-tx offset, reading (varint length, skip length)
// pairs until it either lands exactly on offset (true) or overshoots or
// fails to decode (false). offset is a byte offset into the data region
// (i.e. relative to Data(), matching the reserved-bytes encoding). It is
// only meaningful for compact shares.
func (s Share) IsValidTxStart(offset int) bool {
	if !s.IsCompact() {
		return false
	}
	firstTx, err := s.firstTxOffset()
	if err != nil {
		return false
	}
	data := s.Data()
	cursor := firstTx
	if cursor == offset {
		return true
	}
	for cursor < offset {
		if cursor < 0 || cursor > len(data) {
			return false
		}
		length, n, err := varint.Decode(data[cursor:])
		if err != nil {
			return false
		}
		cursor += n + int(length)
		if cursor == offset {
			return true
		}
	}
	return false
}
