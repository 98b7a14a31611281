package interp

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

// execTHR implements THR Rv (§4.6 "Control"): if Rv holds an Exception,
// append the current function/ip to its trace before it starts
// unwinding; any other value propagates as-is (the front end may throw
// non-Exception values, which the core treats opaquely).
func (m *Machine) execTHR(fn *object.Header, ip int, val object.Value) error {
	if val.IsRef() && val.Header().Type == m.b.ExceptionType {
		fd := fn.Data.(*object.FunctionData)
		object.ExceptionAppendFrame(val.Header(), fd.Name, uint32(ip))
	}
	return &thrown{val: val}
}

// execJMPCond implements JMPT/JMPF Rc, s: jump only on an exact match with
// the canonical boolean singleton the opcode names; any other value is a
// type exception (§4.6: "raise 'condition is not boolean'").
func (m *Machine) execJMPCond(op isa.Op, val object.Value) (bool, error) {
	if !val.IsRef() {
		return false, m.typeError("condition is not boolean")
	}
	h := val.Header()
	switch h {
	case m.b.True:
		return op == isa.OpJMPT, nil
	case m.b.False:
		return op == isa.OpJMPF, nil
	default:
		return false, m.typeError("condition is not boolean")
	}
}

// execJMPCompare implements the six comparison jumps: EQ/NE via the
// equals() contract (pointer-equal fast path, §4.4), the rest via
// compare() mapped to Ordering.
func (m *Machine) execJMPCompare(op isa.Op, a, b object.Value) (bool, error) {
	inv := m.invoker()
	if op == isa.OpJMPEQ || op == isa.OpJMPNE {
		eq, err := object.Equals(a, b, inv)
		if err != nil {
			return false, m.wrapAsThrown(err)
		}
		if op == isa.OpJMPEQ {
			return eq, nil
		}
		return !eq, nil
	}

	ord, err := object.Compare(a, b, inv)
	if err != nil {
		return false, m.wrapAsThrown(err)
	}
	if ord == object.IC {
		return false, m.wrapAsThrown(errors.Incomparable(m.b.TypeNameOf(a), m.b.TypeNameOf(b)))
	}
	switch op {
	case isa.OpJMPLT:
		return ord == object.LT, nil
	case isa.OpJMPLE:
		return ord == object.LT || ord == object.EQ, nil
	case isa.OpJMPGT:
		return ord == object.GT, nil
	case isa.OpJMPGE:
		return ord == object.GT || ord == object.EQ, nil
	}
	return false, nil
}
