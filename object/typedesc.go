package object

// ExtendableMarker is the sentinel fixed-count value meaning "this type's
// slots (or bytes) are extendable rather than fixed" (§3.3, §9 design
// notes — represented as a tagged size descriptor rather than a sentinel
// (size_t)-1, but we keep a single bool flag per region since Go already
// distinguishes "unset" from "zero" cleanly at the struct level).
const ExtendableMarker = -1

// TypeDescriptor is the Data payload of a Type object (§3.3). A type
// descriptor is itself allocated as a Header (Type: rootType, Data: this),
// always in old space, so that it participates in GC like any other object
// and so that method/static values can reference young objects safely
// under the ordinary write barrier.
type TypeDescriptor struct {
	Name string

	// FixedSlots is the slot count for non-extendable types, or -1.
	FixedSlots int
	// FixedBytes is the byte-region size for non-extendable types, or -1.
	FixedBytes int
	// CachedSize is header+slots+bytes size in words; 0 if either region is
	// extendable (§3.3).
	CachedSize int

	ExtendableSlots bool
	ExtendableBytes bool

	// SurvivorHint requests old-space allocation for every instance of
	// this type (§3.6) — used for Type, Module, Symbol.
	SurvivorHint bool

	// FieldOrder/FieldIndex map field names to slot indices for
	// LDFLDY/STFLDY field objects.
	FieldOrder []string
	FieldIndex map[string]int

	Methods map[string]Value
	Statics map[string]Value
}

// NewTypeDescriptor returns a descriptor with empty field/method/static
// tables, ready for Fields/Method/Static to populate.
func NewTypeDescriptor(name string) *TypeDescriptor {
	return &TypeDescriptor{
		Name:       name,
		FixedSlots: 0,
		FixedBytes: 0,
		FieldIndex: make(map[string]int),
		Methods:    make(map[string]Value),
		Statics:    make(map[string]Value),
	}
}

// Field declares a fixed slot as an instance field.
func (t *TypeDescriptor) Field(name string, slot int) *TypeDescriptor {
	t.FieldOrder = append(t.FieldOrder, name)
	t.FieldIndex[name] = slot
	return t
}

// Method registers a method value (a Function or any callable) under name.
func (t *TypeDescriptor) Method(name string, fn Value) *TypeDescriptor {
	t.Methods[name] = fn
	return t
}

// Static registers a static (type-level) value under name.
func (t *TypeDescriptor) Static(name string, v Value) *TypeDescriptor {
	t.Statics[name] = v
	return t
}

// ResolveMethod looks up a method by name, following no inheritance chain —
// this runtime core has none; front-end-level mixins are a separate
// concern from object layout and method dispatch.
func (t *TypeDescriptor) ResolveMethod(name string) (Value, bool) {
	v, ok := t.Methods[name]
	return v, ok
}
