package interp

import (
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/invoke"
	"github.com/wippy-lang/corevm/object"
)

func (m *Machine) execLDNIL(setReg func(int, object.Value), in isa.Instruction) {
	nv := m.b.NilValue()
	for i := 0; i < in.B; i++ {
		setReg(in.A+i, nv)
	}
}

func (m *Machine) execMKTUP(reg func(int) object.Value, in isa.Instruction) object.Value {
	elems := invoke.VectorArgs(m.stack, in.B, in.C)
	return object.Ref(object.NewTuple(m.heap, m.b, elems))
}

func (m *Machine) execMKARR(reg func(int) object.Value, in isa.Instruction) object.Value {
	elems := invoke.VectorArgs(m.stack, in.B, in.C)
	arr := object.NewArray(m.heap, m.b, len(elems))
	for _, e := range elems {
		object.ArrayAppend(m.heap, m.b, arr, e)
	}
	return object.Ref(arr)
}

func (m *Machine) eqFunc() func(a, b object.Value) (bool, error) {
	inv := m.invoker()
	return func(a, b object.Value) (bool, error) { return object.Equals(a, b, inv) }
}

func (m *Machine) execMKMAP(reg func(int) object.Value, in isa.Instruction) (object.Value, error) {
	n := in.C
	mh := object.NewMap(m.heap, m.b, 0)
	eq := m.eqFunc()
	inv := m.invoker()
	for i := 0; i < n; i++ {
		key := reg(in.B + 2*i)
		val := reg(in.B + 2*i + 1)
		hash, err := object.Hash(key, inv)
		if err != nil {
			return object.Value{}, m.wrapAsThrown(err)
		}
		if err := object.MapSet(m.heap, m.b, mh, key, val, hash, eq); err != nil {
			return object.Value{}, m.wrapAsThrown(err)
		}
	}
	return object.Ref(mh), nil
}
