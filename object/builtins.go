package object

// Builtins holds the Header of every built-in type descriptor and the
// canonical singleton instances Nil/True/False (§3.4). A corevm Context
// owns exactly one Builtins, built once by gcheap.New.
type Builtins struct {
	TypeType       *Header
	NilType        *Header
	BoolType       *Header
	IntType        *Header
	FloatType      *Header
	StringType     *Header
	SymbolType     *Header
	TupleType      *Header
	ArraySlotsType *Header
	ArrayType      *Header
	MapNodeType    *Header
	MapType        *Header
	FunctionType   *Header
	ModuleType     *Header
	ExceptionType  *Header
	RangeType      *Header

	Nil   *Header
	True  *Header
	False *Header
}

// NewBootstrapTypeHeader builds the one self-referential Header in the
// system: the Type object describing Type itself (§3.3, "Types are
// themselves objects ... allocated in old space"). Every other type is
// then allocated normally via Allocator.AllocData(builtins.TypeType, ...).
func NewBootstrapTypeHeader() *Header {
	h := &Header{State: StateOld}
	h.Type = h
	h.Data = NewTypeDescriptor("Type").withSurvivor()
	return h
}

func (t *TypeDescriptor) withSurvivor() *TypeDescriptor {
	t.SurvivorHint = true
	return t
}

// NilValue and BoolValue are convenience wrappers over the registered
// singletons, used pervasively by opcode implementations.
func (b *Builtins) NilValue() Value   { return Ref(b.Nil) }
func (b *Builtins) True_() Value      { return Ref(b.True) }
func (b *Builtins) False_() Value     { return Ref(b.False) }
func (b *Builtins) BoolValue(x bool) Value {
	if x {
		return Ref(b.True)
	}
	return Ref(b.False)
}

// IsNil reports whether v is the canonical Nil singleton.
func (b *Builtins) IsNil(v Value) bool {
	return v.IsRef() && v.Header() == b.Nil
}

// IsBool reports whether v is one of the two Bool singletons.
func (b *Builtins) IsBool(v Value) bool {
	return v.IsRef() && (v.Header() == b.True || v.Header() == b.False)
}

// TypeNameOf returns a value's dynamic type name, used in error details
// and LDMTH/field lookups.
func (b *Builtins) TypeNameOf(v Value) string {
	if v.IsSmallInt() {
		return "Int"
	}
	return v.Header().TypeData().Name
}
