// Package namespace defines the 8-byte NamespaceID used to partition the
// DA layer and the reserved namespace constants the rest of the module
// keys off of.
package namespace

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/sovereign-labs/celestia-da-verifier/types/appconsts"
)

// ID is an 8-byte, big-endian namespace identifier.
type ID [appconsts.NamespaceSize]byte

var (
	// PfbNamespace is the reserved namespace holding pay-for-blob
	// transactions.
	PfbNamespace = ID{0, 0, 0, 0, 0, 0, 0, 4}

	// ParityNamespace is the namespace assigned to parity shares produced
	// by erasure coding; it always sorts last.
	ParityNamespace = ID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

// FromBytes copies an 8-byte slice into an ID, erroring on any other
// length.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != appconsts.NamespaceSize {
		return id, fmt.Errorf("namespace: expected %d bytes, got %d", appconsts.NamespaceSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Uint64 returns the namespace as a big-endian integer, used only to
// decide reservedness.
func (id ID) Uint64() uint64 {
	return binary.BigEndian.Uint64(id[:])
}

// IsReserved reports whether this namespace is one of the protocol's
// reserved (compact-share) namespaces.
func (id ID) IsReserved() bool {
	return id.Uint64() <= appconsts.MaxReservedNamespace
}

// Bytes returns the namespace as a freshly allocated byte slice.
func (id ID) Bytes() []byte {
	out := make([]byte, appconsts.NamespaceSize)
	copy(out, id[:])
	return out
}

// Equal reports whether two namespaces are identical.
func (id ID) Equal(other ID) bool {
	return id == other
}

// Less reports whether id sorts strictly before other, treating the
// namespace as a big-endian integer.
func (id ID) Less(other ID) bool {
	return id.Uint64() < other.Uint64()
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}
