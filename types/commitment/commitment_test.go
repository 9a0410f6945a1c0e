package commitment

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sovereign-labs/celestia-da-verifier/types/namespace"
	"github.com/sovereign-labs/celestia-da-verifier/types/share"
)

func TestMinSquareSize(t *testing.T) {
	cases := []struct {
		shares int
		want   int
	}{
		// A square of size sq holds sq*sq-1 usable shares, the last slot
		// reserved for the PFB transaction itself; minSquareSize doubles
		// whenever the blob would otherwise fill the square to capacity.
		{shares: 1, want: 2},
		{shares: 2, want: 2},
		{shares: 3, want: 4},
		{shares: 4, want: 4},
		{shares: 5, want: 8},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, minSquareSize(tc.shares), "shares=%d", tc.shares)
	}
}

func TestRecreateCommitment_Deterministic(t *testing.T) {
	ns := namespace.ID{0, 0, 0, 0, 0, 0, 0, 42}
	shares := fakeShares(ns, 3)

	c1, err := RecreateCommitment(4, ns, shares)
	require.NoError(t, err)
	c2, err := RecreateCommitment(4, ns, shares)
	require.NoError(t, err)
	require.Equal(t, c1, c2)
	require.Len(t, c1, 32)

	tampered := fakeShares(ns, 3)
	tampered[1][100] ^= 0xff
	c3, err := RecreateCommitment(4, ns, tampered)
	require.NoError(t, err)
	require.NotEqual(t, c1, c3)
}

func TestRecreateCommitment_MessageTooLarge(t *testing.T) {
	ns := namespace.ID{0, 0, 0, 0, 0, 0, 0, 42}
	shares := fakeShares(ns, 4)
	_, err := RecreateCommitment(2, ns, shares)
	require.ErrorIs(t, err, ErrMessageTooLarge)
}

// TestRecreateCommitment_MatchesFixture pins the commitment algorithm
// against a known-good Celestia blob: the namespace "sov-test" carrying
// a single JSON object, split into one sparse share, must recommit to
// the documented 32-byte digest at square size 2.
func TestRecreateCommitment_MatchesFixture(t *testing.T) {
	ns, err := namespace.FromBytes([]byte("sov-test"))
	require.NoError(t, err)

	data := []byte(`{"key": "testkey", "value": "testvalue"}`)
	shares, err := share.NewSplitter(ns).SplitSparse(data)
	require.NoError(t, err)
	require.Len(t, shares, 1)

	blobReader, err := share.NewBlobReader(shares, 0)
	require.NoError(t, err)
	got, err := blobReader.ReadAll()
	require.NoError(t, err)
	require.Equal(t, data, got)

	shareBytes := [][]byte{shares[0].Bytes()}
	commit, err := RecreateCommitment(2, ns, shareBytes)
	require.NoError(t, err)

	want, err := hex.DecodeString("81F05A1A52E38FAD7DB01416E5E0C9D6637A84EF6B67B3B21263CC721E742DAF")
	require.NoError(t, err)
	require.Equal(t, want, commit)
}

func fakeShares(ns namespace.ID, n int) [][]byte {
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		buf := make([]byte, 512)
		copy(buf, ns.Bytes())
		buf[8] = byte(i + 1)
		out[i] = buf
	}
	return out
}
