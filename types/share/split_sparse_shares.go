package share

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/varint"
)

// Splitter builds shares the way a full-node prover would, for use in
// fixtures and round-trip tests.
type Splitter struct {
	ns      namespace.ID
	compact bool
}

// NewSplitter returns a Splitter for the given namespace.
func NewSplitter(ns namespace.ID) *Splitter {
	return &Splitter{ns: ns, compact: ns.IsReserved()}
}

// SplitSparse splits one blob's worth of data into sparse shares under
// the splitter's namespace.
func (s *Splitter) SplitSparse(data []byte) ([]Share, error) {
	if s.compact {
		return nil, fmt.Errorf("share: SplitSparse called on a reserved namespace")
	}
	firstCap := appconsts.ShareSize - appconsts.NamespaceSize - appconsts.ShareInfoBytes - varintLen(uint64(len(data)))
	contCap := appconsts.ShareSize - appconsts.NamespaceSize - appconsts.ShareInfoBytes

	var shares []Share
	first := true
	for first || len(data) > 0 {
		capacity := contCap
		if first {
			capacity = firstCap
		}
		n := len(data)
		if n > capacity {
			n = capacity
		}
		chunk := data[:n]
		data = data[n:]

		buf := make([]byte, appconsts.ShareSize)
		copy(buf, s.ns[:])
		if first {
			buf[appconsts.NamespaceSize] = 0x01
			off := appconsts.NamespaceSize + appconsts.ShareInfoBytes
			head := varint.Encode(append([]byte{}, buf[:off]...), uint64(len(chunk))+uint64(len(data)))
			head = append(head, chunk...)
			copy(buf, head)
			for i := len(head); i < appconsts.ShareSize; i++ {
				buf[i] = 0
			}
		} else {
			buf[appconsts.NamespaceSize] = 0x00
			off := appconsts.NamespaceSize + appconsts.ShareInfoBytes
			copy(buf[off:], chunk)
		}
		sh, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		shares = append(shares, sh)
		first = false
	}
	return shares, nil
}

// SplitCompact splits a sequence of already-length-prefixed transaction
// blobs into one compact-share sequence, filling in the reserved
// first-tx-offset bytes on every share.
func (s *Splitter) SplitCompact(txs [][]byte) ([]Share, error) {
	if !s.compact {
		return nil, fmt.Errorf("share: SplitCompact called on a non-reserved namespace")
	}
	var data []byte
	for _, tx := range txs {
		data = varint.Encode(data, uint64(len(tx)))
		data = append(data, tx...)
	}
	total := len(data)
	boundaries := computeTxBoundaries(txs)

	firstCap := appconsts.FirstCompactShareContentSize
	contCap := appconsts.ContinuationCompactShareContentSize

	var shares []Share
	first := true
	shareStart := 0
	for first || len(data) > 0 {
		capacity := contCap
		if first {
			capacity = firstCap
		}
		n := len(data)
		if n > capacity {
			n = capacity
		}
		chunk := data[:n]
		data = data[n:]

		buf := make([]byte, appconsts.ShareSize)
		copy(buf, s.ns[:])
		off := appconsts.NamespaceSize + appconsts.ShareInfoBytes
		if first {
			buf[appconsts.NamespaceSize] = 0x01
			// The sequence-length varint is zero-padded to fill the
			// fixed four-byte field.
			lenVarint := varint.Encode(nil, uint64(total))
			if len(lenVarint) > appconsts.SequenceLenBytes {
				return nil, fmt.Errorf("share: sequence length %d does not fit the compact length field", total)
			}
			copy(buf[off:off+appconsts.SequenceLenBytes], lenVarint)
			off += appconsts.SequenceLenBytes
		} else {
			buf[appconsts.NamespaceSize] = 0x00
		}
		firstTxOffset := firstBoundaryAfter(boundaries, shareStart, shareStart+len(chunk))
		binary.BigEndian.PutUint16(buf[off:off+appconsts.CompactShareReservedBytes], uint16(firstTxOffset))
		off += appconsts.CompactShareReservedBytes
		copy(buf[off:], chunk)

		sh, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		shares = append(shares, sh)
		shareStart += len(chunk)
		first = false
	}
	return shares, nil
}

// computeTxBoundaries returns the data-region offset of each
// transaction record's start, i.e. the position of its length varint,
// the same boundary IsValidTxStart's walk lands on.
func computeTxBoundaries(txs [][]byte) []int {
	var offsets []int
	cursor := 0
	for _, tx := range txs {
		offsets = append(offsets, cursor)
		cursor += varintLen(uint64(len(tx))) + len(tx)
	}
	return offsets
}

// firstBoundaryAfter returns the first boundary offset within [start,
// end), relative to start, or end-start (signaling "no boundary here")
// if none falls in range. boundaries is sorted ascending by
// computeTxBoundaries, so the search below only needs to look at the
// first index at or past start.
func firstBoundaryAfter(boundaries []int, start, end int) int {
	i, _ := slices.BinarySearch(boundaries, start)
	if i < len(boundaries) && boundaries[i] < end {
		return boundaries[i] - start
	}
	return end - start
}

func varintLen(v uint64) int {
	return len(varint.Encode(nil, v))
}
