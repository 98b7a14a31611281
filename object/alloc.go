package object

// AllocHint selects the target space for a new allocation (§3.6, §4.3).
type AllocHint uint8

const (
	// HintAuto allocates in young space (promoted later by GC survival).
	HintAuto AllocHint = iota
	// HintSurvivor allocates directly in old space.
	HintSurvivor
	// HintHuge allocates directly in big space regardless of size.
	HintHuge
)

// Allocator is implemented by gcheap.Heap. Built-in type constructors in
// this package (Array, Map, Tuple, ...) take an Allocator so that object
// stays free of a dependency on gcheap while still being able to allocate
// the helper objects they need (MapNode chains, ArraySlots backing, boxed
// Int/Float cells).
type Allocator interface {
	// AllocSlots allocates an object of typ with a fixed slot region of
	// exactly n slots (typ must not be extendable-slots), following hint.
	AllocSlots(typ *Header, n int, hint AllocHint) *Header
	// AllocExtendableSlots allocates an extendable-slots object with n
	// usable element slots (n+1 total, slot 0 holds the count).
	AllocExtendableSlots(typ *Header, n int, hint AllocHint) *Header
	// AllocBytes allocates an object of typ with a fixed byte region.
	AllocBytes(typ *Header, data []byte, hint AllocHint) *Header
	// AllocData allocates an object of typ carrying an opaque Data payload
	// and no slots/bytes region (Int, Float, Map, Function, Module, ...).
	AllocData(typ *Header, data any, hint AllocHint) *Header
	// WriteBarrier must be called after storing val into a slot/field of
	// obj (§4.3 write barrier). Built-in mutators call it on every store.
	WriteBarrier(obj *Header, val Value)
}
