package object

// NewBytecodeFunction builds a Function backed by decoded bytecode (§3.4).
func NewBytecodeFunction(a Allocator, b *Builtins, name string, code []uint32, consts []Value, symbols []string, module *Header, ar Arity) *Header {
	fd := &FunctionData{
		Kind:     FuncBytecode,
		Bytecode: code,
		Consts:   consts,
		Symbols:  symbols,
		Module:   module,
		NA:       ar.NA,
		NO:       ar.NO,
		NR:       ar.NR,
		Name:     name,
	}
	return a.AllocData(b.FunctionType, fd, HintAuto)
}

// NewNativeFunction builds a Function wrapping a Go implementation.
func NewNativeFunction(a Allocator, b *Builtins, name string, ar Arity, fn NativeFunc) *Header {
	fd := &FunctionData{Kind: FuncNative, Native: fn, NA: ar.NA, NO: ar.NO, NR: ar.NR, Name: name}
	return a.AllocData(b.FunctionType, fd, HintAuto)
}

// FuncArity extracts a Function's Arity.
func FuncArity(h *Header) Arity {
	fd := h.Data.(*FunctionData)
	return Arity{NA: fd.NA, NO: fd.NO, NR: fd.NR}
}
