package interp

import (
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

// execLDELM implements LDELM Ro, Rk, Rv (§4.6 "Elements"): dispatches to
// the get_element method on Ro's type.
func (m *Machine) execLDELM(setReg func(int, object.Value), reg func(int) object.Value, in isa.Instruction) error {
	return m.loadElement(setReg, reg(in.A), reg(in.B), in.C)
}

// execLDELMI implements LDELMI Ro, immediate_key, Rv.
func (m *Machine) execLDELMI(setReg func(int, object.Value), reg func(int) object.Value, in isa.Instruction) error {
	return m.loadElement(setReg, reg(in.A), object.SmallInt(int64(in.B)), in.C)
}

func (m *Machine) loadElement(setReg func(int, object.Value), obj, key object.Value, dest int) error {
	if !obj.IsRef() {
		return m.typeError("element access on a non-reference value")
	}
	method, ok := obj.Header().TypeData().ResolveMethod("get_element")
	if !ok {
		return m.keyError("no get_element method on " + obj.Header().TypeData().Name)
	}
	v, err := m.invoker()(method, []object.Value{obj, key})
	if err != nil {
		return err
	}
	setReg(dest, v)
	return nil
}

// execSTELM implements STELM Ro, Rk, Rv.
func (m *Machine) execSTELM(reg func(int) object.Value, in isa.Instruction) error {
	return m.storeElement(reg(in.A), reg(in.B), reg(in.C))
}

// execSTELMI implements STELMI Ro, immediate_key, Rv.
func (m *Machine) execSTELMI(reg func(int) object.Value, in isa.Instruction) error {
	return m.storeElement(reg(in.A), object.SmallInt(int64(in.B)), reg(in.C))
}

func (m *Machine) storeElement(obj, key, val object.Value) error {
	if !obj.IsRef() {
		return m.typeError("element access on a non-reference value")
	}
	method, ok := obj.Header().TypeData().ResolveMethod("set_element")
	if !ok {
		return m.keyError("no set_element method on " + obj.Header().TypeData().Name)
	}
	_, err := m.invoker()(method, []object.Value{obj, key, val})
	return err
}
