package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallIntRoundTrip(t *testing.T) {
	// P8: for every n in the small-int range, round trip is exact.
	samples := []int64{0, 1, -1, MinSmallInt, MaxSmallInt, 12345, -98765, 1 << 40, -(1 << 40)}
	for _, n := range samples {
		v := SmallInt(n)
		require.True(t, v.IsSmallInt())
		require.False(t, v.IsRef())
		require.Equal(t, n, v.Int())
	}
}

func TestSmallIntOutOfRangePanics(t *testing.T) {
	require.Panics(t, func() { SmallInt(MaxSmallInt + 1) })
	require.Panics(t, func() { SmallInt(MinSmallInt - 1) })
}

func TestRefRejectsNil(t *testing.T) {
	require.Panics(t, func() { Ref(nil) })
}

func TestSame(t *testing.T) {
	a := SmallInt(7)
	b := SmallInt(7)
	c := SmallInt(8)
	require.True(t, Same(a, b))
	require.False(t, Same(a, c))

	h1 := &Header{}
	h2 := &Header{}
	require.True(t, Same(Ref(h1), Ref(h1)))
	require.False(t, Same(Ref(h1), Ref(h2)))
	require.False(t, Same(a, Ref(h1)))
}
