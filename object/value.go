package object

import "math"

// SmallIntBits is the number of bits available to a small integer, one less
// than a native machine word (§3.1). We model a 64-bit host word.
const SmallIntBits = 63

// MinSmallInt and MaxSmallInt bound the representable small-integer range.
const (
	MinSmallInt = -(int64(1) << (SmallIntBits - 1))
	MaxSmallInt = (int64(1) << (SmallIntBits - 1)) - 1
)

// Value is one interpreter word: either a small integer or a reference to a
// heap object. The zero Value is the small integer 0, not a nil reference —
// callers that need "no value" use Nil (a reference to the Nil singleton).
type Value struct {
	si  int64
	ref *Header
}

// SmallInt constructs a small-integer Value. Panics if n is outside the
// representable range — callers (MKINT, arithmetic fast paths) must box
// out-of-range results as Int instead.
func SmallInt(n int64) Value {
	if n < MinSmallInt || n > MaxSmallInt {
		panic("object: small int out of range")
	}
	return Value{si: n}
}

// Ref wraps a heap object reference as a Value. Passing a nil header is a
// caller error — use the Builtins.Nil singleton instead.
func Ref(h *Header) Value {
	if h == nil {
		panic("object: Ref of nil header")
	}
	return Value{ref: h}
}

// IsSmallInt reports whether v holds an inline small integer.
func (v Value) IsSmallInt() bool { return v.ref == nil }

// IsRef reports whether v holds a heap object reference.
func (v Value) IsRef() bool { return v.ref != nil }

// Int returns the inline integer. Only valid when IsSmallInt is true.
func (v Value) Int() int64 { return v.si }

// Header returns the referenced object's header. Only valid when IsRef.
func (v Value) Header() *Header { return v.ref }

// Same reports pointer (or small-int value) identity, used by equals() for
// the pointer-equal fast path (§4.4).
func Same(a, b Value) bool {
	if a.IsSmallInt() != b.IsSmallInt() {
		return false
	}
	if a.IsSmallInt() {
		return a.si == b.si
	}
	return a.ref == b.ref
}

// Float64 converts an arithmetic value (small int or boxed Float/Int) to a
// float64 for mixed-type arithmetic; ok is false for non-numeric values.
func Float64(v Value) (f float64, ok bool) {
	if v.IsSmallInt() {
		return float64(v.Int()), true
	}
	switch t := v.ref.Data.(type) {
	case *FloatData:
		return t.V, true
	case *IntData:
		return t.Float64(), true
	}
	return 0, false
}

// ldexpFloat implements MKFLT's construction rule: ldexp(frac, exp).
func ldexpFloat(frac float64, exp int) float64 {
	return math.Ldexp(frac, exp)
}
