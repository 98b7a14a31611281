package object

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubAllocator allocates every request as a plain *Header, with no space
// bookkeeping — enough for int.go's boxed-Int construction, which never
// inspects allocation hints.
type stubAllocator struct{}

func (stubAllocator) AllocSlots(typ *Header, n int, hint AllocHint) *Header {
	return &Header{Type: typ, Slots: make([]Value, n)}
}

func (stubAllocator) AllocExtendableSlots(typ *Header, n int, hint AllocHint) *Header {
	slots := make([]Value, n+1)
	slots[0] = SmallInt(int64(n + 1))
	return &Header{Type: typ, Slots: slots}
}

func (stubAllocator) AllocBytes(typ *Header, data []byte, hint AllocHint) *Header {
	buf := append([]byte(nil), data...)
	return &Header{Type: typ, Bytes: buf}
}

func (stubAllocator) AllocData(typ *Header, data any, hint AllocHint) *Header {
	return &Header{Type: typ, Data: data}
}

func (stubAllocator) WriteBarrier(obj *Header, val Value) {}

func testBuiltins() *Builtins {
	return &Builtins{IntType: &Header{Data: &TypeDescriptor{Name: "Int"}}}
}

func TestAddOverflowsPromotesAtBoundary(t *testing.T) {
	sum, overflow := AddOverflows(MaxSmallInt, 1)
	require.True(t, overflow)
	require.Zero(t, sum)

	sum, overflow = AddOverflows(MaxSmallInt-1, 1)
	require.False(t, overflow)
	require.Equal(t, MaxSmallInt, sum)
}

func TestSubOverflowsPromotesAtBoundary(t *testing.T) {
	diff, overflow := SubOverflows(MinSmallInt, 1)
	require.True(t, overflow)
	require.Zero(t, diff)

	diff, overflow = SubOverflows(MinSmallInt+1, 1)
	require.False(t, overflow)
	require.Equal(t, MinSmallInt, diff)
}

func TestMulIntFastPath(t *testing.T) {
	v := MulInt(stubAllocator{}, testBuiltins(), 6, 7)
	require.True(t, v.IsSmallInt())
	require.Equal(t, int64(42), v.Int())
}

func TestMulIntZero(t *testing.T) {
	v := MulInt(stubAllocator{}, testBuiltins(), 0, MaxSmallInt)
	require.True(t, v.IsSmallInt())
	require.Zero(t, v.Int())
}

func TestMulIntOverflowPromotesBeyondTwoLimbs(t *testing.T) {
	// Two maximal small ints multiply to a product wider than 64 bits of
	// magnitude, which a 2-limb boxed Int can't hold.
	v := MulInt(stubAllocator{}, testBuiltins(), MaxSmallInt, MaxSmallInt)
	require.True(t, v.IsRef())
	d := v.Header().Data.(*IntData)
	require.Equal(t, 1, d.Sign)
	require.Greater(t, len(d.Mag), 2)

	// Reconstruct the full magnitude from limbs and check it against the
	// expected product computed independently in big.Int-free arithmetic
	// (hi:lo 128-bit halves, matching MulInt's own construction).
	var lo, hi uint64
	for i, limb := range d.Mag {
		switch {
		case i < 2:
			lo |= uint64(limb) << (32 * i)
		default:
			hi |= uint64(limb) << (32 * (i - 2))
		}
	}
	wantHi, wantLo := bits.Mul64(uint64(MaxSmallInt), uint64(MaxSmallInt))
	require.Equal(t, wantHi, hi)
	require.Equal(t, wantLo, lo)
}

func TestMulIntOverflowSignsCorrectly(t *testing.T) {
	v := MulInt(stubAllocator{}, testBuiltins(), MinSmallInt, MaxSmallInt)
	require.True(t, v.IsRef())
	d := v.Header().Data.(*IntData)
	require.Equal(t, -1, d.Sign)
}

func TestMulIntSmallResultStaysInline(t *testing.T) {
	v := MulInt(stubAllocator{}, testBuiltins(), -3, 4)
	require.True(t, v.IsSmallInt())
	require.Equal(t, int64(-12), v.Int())
}
