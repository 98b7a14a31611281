package object

// NewTuple builds an immutable Tuple from elems (§3.4): "immutable slot
// vector with stored length (in slot[0])". Mirrors MKTUP's semantics.
func NewTuple(a Allocator, b *Builtins, elems []Value) *Header {
	h := a.AllocExtendableSlots(b.TupleType, len(elems), HintAuto)
	copy(h.Slots[1:], elems)
	return h
}

// TupleLen returns a Tuple's element count (total slot count minus the
// count slot itself, §3.2).
func TupleLen(h *Header) int { return h.SlotCount() - 1 }

// TupleAt returns element i (0-based, excluding the count slot).
func TupleAt(h *Header, i int) Value { return h.Slots[i+1] }

// TupleElems returns the Tuple's elements as a plain slice, used by CALLP
// packed-argument passing and the `(...)` format specifier.
func TupleElems(h *Header) []Value { return h.Slots[1:] }
