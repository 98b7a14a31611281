package object

// NewModule builds a Module with the given name, an empty global slot
// array, and parent modules searched on lookup miss (§3.4, §4.6 LDGLB).
func NewModule(a Allocator, b *Builtins, name string, parents []*Header) *Header {
	md := &ModuleData{Name: name, Index: make(map[string]int), Parents: parents}
	return a.AllocData(b.ModuleType, md, HintSurvivor)
}

func moduleData(h *Header) *ModuleData { return h.Data.(*ModuleData) }

// ModuleDefineGlobal adds a new named global, returning its slot index.
func ModuleDefineGlobal(h *Header, name string, v Value) int {
	md := moduleData(h)
	idx := len(md.Globals)
	md.Index[name] = idx
	md.Globals = append(md.Globals, v)
	return idx
}

// ModuleLookupIndex resolves name to a slot index in h, without following
// parents (used for the self-modifying LDGLB->LDGLBX rewrite, §4.6).
func ModuleLookupIndex(h *Header, name string) (int, bool) {
	idx, ok := moduleData(h).Index[name]
	return idx, ok
}

// ModuleGetGlobal reads a global by name, falling back to parent modules
// on miss (§4.6 LDGLB).
func ModuleGetGlobal(h *Header, name string) (Value, *Header, int, bool) {
	if idx, ok := ModuleLookupIndex(h, name); ok {
		return moduleData(h).Globals[idx], h, idx, true
	}
	for _, p := range moduleData(h).Parents {
		if v, owner, idx, ok := ModuleGetGlobal(p, name); ok {
			return v, owner, idx, true
		}
	}
	return Value{}, nil, 0, false
}

// ModuleGetIndexed reads global slot i directly (LDGLBX).
func ModuleGetIndexed(h *Header, i int) Value { return moduleData(h).Globals[i] }

// ModuleSetIndexed writes global slot i directly (STGLBX), applying the
// write barrier.
func ModuleSetIndexed(a Allocator, h *Header, i int, v Value) {
	moduleData(h).Globals[i] = v
	a.WriteBarrier(h, v)
}

// ModuleSetGlobal writes a global by name, defining it in h if absent from
// h; parents are not consulted (STGLB never writes through to a parent
// module).
func ModuleSetGlobal(a Allocator, h *Header, name string, v Value) int {
	if idx, ok := ModuleLookupIndex(h, name); ok {
		ModuleSetIndexed(a, h, idx, v)
		return idx
	}
	idx := ModuleDefineGlobal(h, name, v)
	a.WriteBarrier(h, v)
	return idx
}

// ModuleGlobalCount returns the number of global slots defined directly
// in h (excluding parents), used by LDGLBX/STGLBX bounds checks.
func ModuleGlobalCount(h *Header) int { return len(moduleData(h).Globals) }

// ModuleName returns the module's declared name.
func ModuleName(h *Header) string { return moduleData(h).Name }
