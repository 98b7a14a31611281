package gcheap

import "github.com/wippy-lang/corevm/object"

// bootstrap constructs the one self-referential Type header and every
// other built-in TypeDescriptor/singleton reachable from it (§3.3, §3.4).
// Every built-in type is allocated old/survivor so Method/Static tables
// participate in the ordinary write barrier from the moment user code can
// reach them.
func (h *Heap) bootstrap() *object.Builtins {
	root := object.NewBootstrapTypeHeader()
	words := objectWords(root)
	c := h.old.chunkWithRoom(words)
	idx := c.append(root)
	c.usedWords += words
	root.OldChunk = c
	_ = idx

	b := &object.Builtins{TypeType: root}

	newType := func(name string, configure func(*object.TypeDescriptor)) *object.Header {
		td := object.NewTypeDescriptor(name)
		if configure != nil {
			configure(td)
		}
		return h.AllocData(root, td, object.HintSurvivor)
	}

	b.NilType = newType("Nil", nil)
	b.BoolType = newType("Bool", nil)
	b.IntType = newType("Int", nil)
	b.FloatType = newType("Float", nil)
	b.StringType = newType("String", func(td *object.TypeDescriptor) {
		td.ExtendableBytes = true
		td.FixedBytes = object.ExtendableMarker
	})
	b.SymbolType = newType("Symbol", func(td *object.TypeDescriptor) {
		td.ExtendableBytes = true
		td.FixedBytes = object.ExtendableMarker
		td.SurvivorHint = true
	})
	b.TupleType = newType("Tuple", func(td *object.TypeDescriptor) {
		td.ExtendableSlots = true
		td.FixedSlots = object.ExtendableMarker
	})
	b.ArraySlotsType = newType("ArraySlots", func(td *object.TypeDescriptor) {
		td.ExtendableSlots = true
		td.FixedSlots = object.ExtendableMarker
	})
	b.ArrayType = newType("Array", func(td *object.TypeDescriptor) {
		td.FixedSlots = 2
		td.Field("backing", 0).Field("length", 1)
	})
	b.MapNodeType = newType("MapNode", func(td *object.TypeDescriptor) {
		td.FixedSlots = 0
	})
	b.MapType = newType("Map", nil)
	b.FunctionType = newType("Function", nil)
	b.ModuleType = newType("Module", func(td *object.TypeDescriptor) {
		td.SurvivorHint = true
	})
	b.ExceptionType = newType("Exception", nil)
	b.RangeType = newType("Range", nil)

	b.Nil = h.AllocData(b.NilType, nil, object.HintSurvivor)
	b.True = h.AllocData(b.BoolType, true, object.HintSurvivor)
	b.False = h.AllocData(b.BoolType, false, object.HintSurvivor)

	return b
}
