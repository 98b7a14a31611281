package interp

import (
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/invoke"
	"github.com/wippy-lang/corevm/object"
)

// callValueAbs resolves callee, enters a new frame, and runs it to
// completion (recursing into runFrame for bytecode, or invoking the Go
// implementation directly for native), writing the result into the
// absolute register rdAbs — the single implementation CALL/CALLV/CALLP
// and method dispatch (LDMTH-resolved calls, hash/compare/equals) all
// share, mirroring invoke's LayoutArgs single-funnel design (P6) one
// level up.
func (m *Machine) callValueAbs(rdAbs int, callee object.Value, args []object.Value) (object.Value, error) {
	s := m.stack
	fn, frameBase, err := invoke.Enter(m.heap, m.b, s, callee, args, -1, rdAbs)
	if err != nil {
		return object.Value{}, m.wrapAsThrown(err)
	}
	fd := fn.Data.(*object.FunctionData)
	if fd.Kind == object.FuncNative {
		invoke.CallNative(s, frameBase, fn)
	} else if _, err := m.runFrame(fn, frameBase); err != nil {
		return object.Value{}, err
	}
	return s.GetAbs(rdAbs), nil
}

// callValue is callValueAbs addressed by a register of the currently
// active frame, captured before Enter changes s.Frame().
func (m *Machine) callValue(rd int, callee object.Value, args []object.Value) (object.Value, error) {
	rdAbs := m.stack.Frame() + rd
	return m.callValueAbs(rdAbs, callee, args)
}

// invoker builds an object.Invoker bound to this Machine, passed to
// object.Hash/Compare/Equals so they can dispatch to a type's hash/<=>
// method without the object package depending on interp.
func (m *Machine) invoker() object.Invoker {
	return func(method object.Value, args []object.Value) (object.Value, error) {
		abs := m.stack.AllocTemp(1)
		v, err := m.callValueAbs(abs, method, args)
		m.stack.FreeTemp(1)
		return v, err
	}
}

func (m *Machine) execCALL(reg func(int) object.Value, in isa.Instruction) error {
	argc := in.B
	args := make([]object.Value, argc)
	for i := 0; i < argc; i++ {
		args[i] = reg(1 + i)
	}
	_, err := m.callValue(in.A, reg(0), args)
	return err
}

func (m *Machine) execCALLV(reg func(int) object.Value, in isa.Instruction) error {
	args := invoke.VectorArgs(m.stack, in.B, in.C)
	_, err := m.callValue(in.A, reg(0), args)
	return err
}

func (m *Machine) execCALLP(reg func(int) object.Value, in isa.Instruction) error {
	packed := reg(in.B)
	if !packed.IsRef() {
		return m.typeError("CALLP operand is not a Tuple or Array")
	}
	args := invoke.PackedArgs(m.b, packed.Header())
	_, err := m.callValue(in.A, reg(0), args)
	return err
}
