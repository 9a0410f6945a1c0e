// Package appconsts collects the protocol-wide size constants that the
// share codec, commitment builder, and block verifier all depend on.
package appconsts

// These constants describe the share layout of the DA layer this module
// targets: an 8-byte namespace (no separate version byte), as opposed to
// celestia-app's newer 29-byte namespace. See DESIGN.md for why
// celestiaorg/go-square's namespace type is not reused here.
const (
	// ShareSize is the size of a share in bytes.
	ShareSize = 512

	// NamespaceSize is the size of a namespace ID in bytes.
	NamespaceSize = 8

	// ShareInfoBytes is the number of bytes reserved for the info byte
	// (sequence-start flag plus version bits).
	ShareInfoBytes = 1

	// SequenceLenBytes is the number of bytes used to encode the sequence
	// length in a compact (reserved-namespace) start share. The length is
	// zero-padded to this width; application (sparse) shares instead use a
	// varint of variable width for the same field.
	SequenceLenBytes = 4

	// CompactShareReservedBytes is the width of the two reserved bytes
	// immediately before a compact share's data region, encoding the
	// offset of the first full transaction boundary in that share.
	CompactShareReservedBytes = 2

	// MaxReservedNamespace is the largest NamespaceID value (as a big
	// endian uint64) still considered part of a reserved namespace.
	MaxReservedNamespace = 255

	// ShareVersionZero is the only share version this module accepts.
	ShareVersionZero = uint8(0)

	// FirstCompactShareContentSize is the number of data bytes usable in
	// the first compact share of a sequence.
	FirstCompactShareContentSize = ShareSize - NamespaceSize - ShareInfoBytes - SequenceLenBytes - CompactShareReservedBytes

	// ContinuationCompactShareContentSize is the number of data bytes
	// usable in a continuation compact share.
	ContinuationCompactShareContentSize = ShareSize - NamespaceSize - ShareInfoBytes - CompactShareReservedBytes

	// MaxVarintSize bounds how many bytes a sparse-share sequence-length
	// varint may occupy; see types/varint for the exact rejection rule.
	MaxVarintSize = 10
)
