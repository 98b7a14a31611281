package object

import (
	"math"
	"reflect"

	"github.com/wippy-lang/corevm/errors"
)

// Invoker calls a resolved method value with args and returns its single
// result, or an error if the call raised. hash()/compare() use it to
// dispatch to a type's `hash`/`<=>` method (§4.4); the interpreter supplies
// the concrete implementation (Machine.invoker) to avoid object importing the
// interpreter packages.
type Invoker func(method Value, args []Value) (Value, error)

// Ordering is the result of compare() (§4.4).
type Ordering int

const (
	LT Ordering = iota - 1
	EQ
	GT
	IC // incomparable
)

// nanHashCanonical is the single canonical hash bucket for all NaN floats
// (§3.4 hash rule).
const nanHashCanonical uint64 = 0x7ff8000000000001

// Hash computes hash(x) (§4.4). For small ints it sign-extends the word;
// for Float it folds mantissa+exponent with NaN/zero special-cased; other
// types dispatch to their type's `hash` method via inv.
func Hash(v Value, inv Invoker) (uint64, error) {
	if v.IsSmallInt() {
		return uint64(v.Int()), nil
	}
	h := v.Header()
	switch d := h.Data.(type) {
	case nil, bool:
		// Nil/Bool singletons and other fixed-identity objects with no byte
		// payload and no `hash` method: hash by the pointer itself.
		if len(h.Bytes) == 0 && h.TypeData().Name != "String" {
			if _, ok := h.TypeData().ResolveMethod("hash"); !ok {
				return uintptr64(h), nil
			}
		}
	case *FloatData:
		if math.IsNaN(d.V) {
			return nanHashCanonical, nil
		}
		if d.V == 0 {
			return 0, nil
		}
		bits := math.Float64bits(d.V)
		return bits ^ (bits >> 32), nil
	case *IntData:
		var acc uint64
		for _, limb := range d.Mag {
			acc = acc*31 + uint64(limb)
		}
		if d.Sign < 0 {
			acc = ^acc
		}
		return acc, nil
	case *SymbolData:
		return d.Hash, nil
	}
	if len(h.Bytes) > 0 || h.TypeData().Name == "String" {
		return fnv1a(h.Bytes), nil
	}
	td := h.TypeData()
	method, ok := td.ResolveMethod("hash")
	if !ok || inv == nil {
		return 0, hashMissingErr(td.Name)
	}
	res, err := inv(method, []Value{v})
	if err != nil {
		return 0, err
	}
	if !res.IsSmallInt() {
		return 0, hashMissingErr(td.Name)
	}
	return uint64(res.Int()), nil
}

// HashBytes exposes the byte-sequence hash used for String/Symbol content
// (§3.4), so the symbol registry can hash candidate names the same way
// Hash hashes an already-interned Symbol's bytes.
func HashBytes(b []byte) uint64 { return fnv1a(b) }

func fnv1a(b []byte) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}

func uintptr64(h *Header) uint64 {
	// Stable for the object's lifetime; identity hash for singleton-like
	// built-ins that define no `hash` method.
	return uint64(reflect.ValueOf(h).Pointer())
}

func hashMissingErr(typeName string) error {
	return errors.Unsupported(errors.PhaseArith, "no hash method on type "+typeName)
}

// Compare implements compare(lhs, rhs) (§4.4): short-circuits on two small
// ints, else dispatches to lhs's `<=>` method. Returns IC on type mismatch
// without a usable method (callers raise accordingly).
func Compare(lhs, rhs Value, inv Invoker) (Ordering, error) {
	if lhs.IsSmallInt() && rhs.IsSmallInt() {
		return cmpInt64(lhs.Int(), rhs.Int()), nil
	}
	if isNumeric(lhs) && isNumeric(rhs) {
		a, _ := Float64(lhs)
		b, _ := Float64(rhs)
		switch {
		case a < b:
			return LT, nil
		case a > b:
			return GT, nil
		default:
			return EQ, nil
		}
	}
	if lhs.IsRef() {
		td := lhs.Header().TypeData()
		if method, ok := td.ResolveMethod("<=>"); ok && inv != nil {
			res, err := inv(method, []Value{lhs, rhs})
			if err != nil {
				return IC, err
			}
			if res.IsSmallInt() {
				return cmpInt64(res.Int(), 0), nil
			}
		}
	}
	return IC, nil
}

func isNumeric(v Value) bool {
	if v.IsSmallInt() {
		return true
	}
	switch v.Header().Data.(type) {
	case *IntData, *FloatData:
		return true
	}
	return false
}

func cmpInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return LT
	case a > b:
		return GT
	default:
		return EQ
	}
}

// Equals implements equals(lhs, rhs) (§4.4): pointer-equal short circuit,
// else EQ from Compare.
func Equals(lhs, rhs Value, inv Invoker) (bool, error) {
	if Same(lhs, rhs) {
		return true, nil
	}
	ord, err := Compare(lhs, rhs, inv)
	if err != nil {
		return false, err
	}
	return ord == EQ, nil
}
