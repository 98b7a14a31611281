package object

import "math/bits"

// NewBoxedInt allocates a boxed Int from a Go int64 that doesn't fit the
// small-int range (§3.4: "otherwise boxed big integers with cell count and
// sign"). Magnitude is stored as little-endian 32-bit limbs.
func NewBoxedInt(a Allocator, b *Builtins, n int64) *Header {
	sign := 1
	u := uint64(n)
	if n < 0 {
		sign = -1
		u = uint64(-n)
	}
	if n == 0 {
		sign = 0
	}
	mag := []uint32{uint32(u), uint32(u >> 32)}
	for len(mag) > 1 && mag[len(mag)-1] == 0 {
		mag = mag[:len(mag)-1]
	}
	return a.AllocData(b.IntType, &IntData{Sign: sign, Mag: mag}, HintAuto)
}

// MakeInt returns a Value for n, inlining it as a small int when in range
// and boxing otherwise — the construction rule used by MKINT and by
// arithmetic overflow promotion (§4.6 "Arithmetic and logic").
func MakeInt(a Allocator, b *Builtins, n int64) Value {
	if n >= MinSmallInt && n <= MaxSmallInt {
		return SmallInt(n)
	}
	return Ref(NewBoxedInt(a, b, n))
}

// MulInt computes x*y and returns a Value, promoting to a boxed Int when
// the mathematical product exceeds the small-int range (§4.6: MUL is
// grouped with the promoting ops, not the throwing ones). Two maximal
// small ints multiply to a product wider than a native word, so this
// widens through a 128-bit product rather than reusing MakeInt's int64
// entry point, and boxes straight into a 4-limb magnitude when needed.
func MulInt(a Allocator, b *Builtins, x, y int64) Value {
	if x == 0 || y == 0 {
		return SmallInt(0)
	}
	sign := 1
	if (x < 0) != (y < 0) {
		sign = -1
	}
	hi, lo := bits.Mul64(uint64(absI64(x)), uint64(absI64(y)))
	if hi == 0 {
		if sign > 0 && lo <= uint64(MaxSmallInt) {
			return SmallInt(int64(lo))
		}
		if sign < 0 && lo <= uint64(-MinSmallInt) {
			return SmallInt(-int64(lo))
		}
	}
	mag := []uint32{uint32(lo), uint32(lo >> 32), uint32(hi), uint32(hi >> 32)}
	for len(mag) > 1 && mag[len(mag)-1] == 0 {
		mag = mag[:len(mag)-1]
	}
	return Ref(a.AllocData(b.IntType, &IntData{Sign: sign, Mag: mag}, HintAuto))
}

// AddOverflows reports whether a+b overflows the small-int range, the
// ADD fast-path's overflow check before falling back to promotion.
func AddOverflows(a, b int64) (int64, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	_ = carry
	sum64 := int64(sum)
	if sum64 < MinSmallInt || sum64 > MaxSmallInt {
		return 0, true
	}
	return sum64, false
}

// SubOverflows reports whether a-b overflows the small-int range.
func SubOverflows(a, b int64) (int64, bool) {
	d := a - b
	if d < MinSmallInt || d > MaxSmallInt {
		return 0, true
	}
	return d, false
}

func absI64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
