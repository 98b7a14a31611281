package interp

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

// execLDMTH implements LDMTH Ro, k (§4.6 "Field access"): looks up method
// symbol k in Ro's type and writes it to REG-0 (unknown method raises a
// key exception).
func (m *Machine) execLDMTH(setReg func(int, object.Value), reg func(int) object.Value, symNameAt func(int) string, in isa.Instruction) error {
	obj := reg(in.A)
	name := symNameAt(in.B)
	if !obj.IsRef() {
		return m.keyError("method lookup on a value with no type table: " + name)
	}
	method, ok := obj.Header().TypeData().ResolveMethod(name)
	if !ok {
		return m.keyError("unknown method " + name)
	}
	setReg(0, method)
	return nil
}

// execLDFLDY implements LDFLDY Rd, Ro, k: Module -> global, Type ->
// static, otherwise the type's field-name table.
func (m *Machine) execLDFLDY(setReg func(int, object.Value), reg func(int) object.Value, symNameAt func(int) string, in isa.Instruction) error {
	obj := reg(in.B)
	name := symNameAt(in.C)
	if !obj.IsRef() {
		return m.typeError("LDFLDY operand has no fields")
	}
	h := obj.Header()
	switch h.Type {
	case m.b.ModuleType:
		v, _, _, ok := object.ModuleGetGlobal(h, name)
		if !ok {
			return m.keyError("undefined global " + name)
		}
		setReg(in.A, v)
	case m.b.TypeType:
		td := h.Data.(*object.TypeDescriptor)
		v, ok := td.Statics[name]
		if !ok {
			return m.keyError("undefined static " + name)
		}
		setReg(in.A, v)
	default:
		td := h.TypeData()
		idx, ok := td.FieldIndex[name]
		if !ok {
			return m.keyError("undefined field " + name)
		}
		setReg(in.A, h.Slots[idx])
	}
	return nil
}

// execSTFLDY implements STFLDY Rv, Ro, k, the write-side counterpart of
// LDFLDY, applying the write barrier on every mutating path.
func (m *Machine) execSTFLDY(reg func(int) object.Value, symNameAt func(int) string, in isa.Instruction) error {
	val := reg(in.A)
	obj := reg(in.B)
	name := symNameAt(in.C)
	if !obj.IsRef() {
		return m.typeError("STFLDY operand has no fields")
	}
	h := obj.Header()
	switch h.Type {
	case m.b.ModuleType:
		object.ModuleSetGlobal(m.heap, h, name, val)
	case m.b.TypeType:
		td := h.Data.(*object.TypeDescriptor)
		td.Statics[name] = val
		m.heap.WriteBarrier(h, val)
	default:
		td := h.TypeData()
		idx, ok := td.FieldIndex[name]
		if !ok {
			return m.keyError("undefined field " + name)
		}
		h.Slots[idx] = val
		m.heap.WriteBarrier(h, val)
	}
	return nil
}

// execLDFLDX implements LDFLDX Rd, Ro, idx: a direct slot index, bounds
// checked against the object's actual slot count (§4.6 "Panic triggers").
func (m *Machine) execLDFLDX(setReg func(int, object.Value), reg func(int) object.Value, in isa.Instruction) {
	obj := reg(in.B)
	if !obj.IsRef() {
		panicIllegal(errors.PhaseField, "LDFLDX operand is not a reference")
	}
	h := obj.Header()
	if in.C < 0 || in.C >= h.SlotCount() {
		panicIllegal(errors.PhaseField, "slot index out of range")
	}
	setReg(in.A, h.Slots[in.C])
}

// execSTFLDX implements STFLDX Rv, Ro, idx.
func (m *Machine) execSTFLDX(reg func(int) object.Value, in isa.Instruction) {
	val := reg(in.A)
	obj := reg(in.B)
	if !obj.IsRef() {
		panicIllegal(errors.PhaseField, "STFLDX operand is not a reference")
	}
	h := obj.Header()
	if in.C < 0 || in.C >= h.SlotCount() {
		panicIllegal(errors.PhaseField, "slot index out of range")
	}
	h.Slots[in.C] = val
	m.heap.WriteBarrier(h, val)
}
