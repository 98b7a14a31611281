package object

// NewString builds an immutable UTF-8 String (§3.4). Length is cached as
// len(Bytes); Go's slice header already gives O(1) length, so no separate
// cached-length slot is needed (see DESIGN.md).
func NewString(a Allocator, b *Builtins, s []byte) *Header {
	cp := make([]byte, len(s))
	copy(cp, s)
	return a.AllocBytes(b.StringType, cp, HintAuto)
}

// StringBytes returns the String's raw UTF-8 bytes.
func StringBytes(h *Header) []byte { return h.Bytes }

// NewSymbolUnchecked allocates a Symbol object directly; callers outside
// the symbol package should use symbol.Registry.Intern instead so that
// Symbols remain process-unique (§4.4 P5).
func NewSymbolUnchecked(a Allocator, b *Builtins, s []byte, hash uint64) *Header {
	cp := make([]byte, len(s))
	copy(cp, s)
	h := a.AllocBytes(b.SymbolType, cp, HintSurvivor)
	h.Data = &SymbolData{Hash: hash}
	return h
}
