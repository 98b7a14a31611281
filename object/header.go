package object

// GCState is the two-bit GC state recorded in meta word 1 (§3.2).
type GCState uint8

const (
	// StateNew is a young object that has not yet survived a fast GC.
	StateNew GCState = iota
	// StateMid is a young object that has survived exactly one fast GC.
	StateMid
	// StateOld is an object living in old space.
	StateOld
	// StateBig is an object living in big space.
	StateBig
)

func (s GCState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateMid:
		return "MID"
	case StateOld:
		return "OLD"
	case StateBig:
		return "BIG"
	default:
		return "?"
	}
}

// Header is the two-word metadata block plus payload of every heap object
// (§3.2). It stands in for the original's packed meta-word-1/meta-word-2
// representation: State+Type mirror meta word 1 (GC state bits, type
// pointer); Mark+Forward+ChunkBit+ContainsYoung mirror meta word 2 (mark
// bit, and the state-dependent auxiliary pointer/flag).
type Header struct {
	// Type points to the Header of this object's type descriptor (itself an
	// object of the root Type, allocated in old space). Never nil: the
	// bootstrap Type-of-Type header points to itself.
	Type *Header

	// Slots is the value-slot region (§3.2). For extendable-slots types,
	// Slots[0] is SmallInt(len(Slots)) including that count slot.
	Slots []Value

	// Bytes is the raw non-value region (§3.2), used directly by String and
	// Symbol. Other built-ins that would otherwise hand-decode a byte
	// region (Int cells, Float bits, Map buckets, Function bytecode) use
	// Data instead — an idiomatic Go struct standing in for such payloads
	// rather than a raw byte blob.
	Bytes []byte

	// Data holds the structured payload for types whose region isn't a
	// plain byte/value vector (see Bytes comment above).
	Data any

	// Forward is the post-mark forwarding pointer (meta word 2 during
	// evacuation/compaction). Always nil outside of an active GC cycle —
	// that absence is what P3 asserts.
	Forward *Header

	// Next threads BIG space's singly linked list (meta word 2 successor).
	Next *Header

	// oldChunk is the OLD-space chunk this object lives in, used to find
	// its remembered-set bitmap; nil unless State == StateOld.
	OldChunk any

	State GCState
	Mark  bool
	// ContainsYoung is BIG space's meta-word-2 "contains young ref" flag.
	ContainsYoung bool
}

// TypeData returns h's type descriptor payload.
func (h *Header) TypeData() *TypeDescriptor {
	return h.Type.Data.(*TypeDescriptor)
}

// SlotCount returns the object's current slot count: for fixed-slot types
// this is len(Slots); for extendable-slots types, Slots[0] (§3.2, §3.5).
func (h *Header) SlotCount() int {
	td := h.TypeData()
	if td.ExtendableSlots {
		return int(h.Slots[0].Int())
	}
	return len(h.Slots)
}
