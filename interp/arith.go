package interp

import (
	"math"

	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

// opMethodName names the operator method an arithmetic/logic opcode
// dispatches to when its fast small-int path doesn't apply (§4.6
// "Arithmetic and logic": "otherwise dispatch to the operator method on
// the left-hand type"). Method implementations themselves are out of
// scope for the core (§1) — the interpreter only knows how to look them
// up and call them.
var opMethodName = map[isa.Op]string{
	isa.OpADD: "+", isa.OpSUB: "-", isa.OpMUL: "*", isa.OpDIV: "/",
	isa.OpREM: "%", isa.OpPOW: "**", isa.OpSHL: "<<", isa.OpSHR: ">>",
	isa.OpBITAND: "&", isa.OpBITOR: "|", isa.OpBITXOR: "^",
}

// typeDataOf returns a's method table: the boxed/ref type's own
// descriptor, or the built-in Int descriptor for an inlined small int
// (which carries no methods unless a front end registers them — small
// ints falling through the fast path is expected to be rare).
func (m *Machine) typeDataOf(v object.Value) *object.TypeDescriptor {
	if v.IsSmallInt() {
		return m.b.IntType.Data.(*object.TypeDescriptor)
	}
	return v.Header().TypeData()
}

func (m *Machine) dispatchBinary(op isa.Op, a, b object.Value) (object.Value, error) {
	name := opMethodName[op]
	td := m.typeDataOf(a)
	method, ok := td.ResolveMethod(name)
	if !ok {
		return object.Value{}, m.typeError("unsupported operand type for " + name + ": " + td.Name)
	}
	return m.invoker()(method, []object.Value{a, b})
}

// execBinaryArith implements ADD/SUB/MUL/DIV/REM/POW/SHL/SHR/BITAND/
// BITOR/BITXOR. Small-int/small-int pairs take the documented fast path;
// everything else dispatches to the operator method.
func (m *Machine) execBinaryArith(op isa.Op, a, b object.Value) (object.Value, error) {
	if !a.IsSmallInt() || !b.IsSmallInt() {
		return m.dispatchBinary(op, a, b)
	}
	x, y := a.Int(), b.Int()

	switch op {
	case isa.OpADD:
		if sum, overflow := object.AddOverflows(x, y); !overflow {
			return object.SmallInt(sum), nil
		}
		return object.Ref(object.NewBoxedInt(m.heap, m.b, x+y)), nil
	case isa.OpSUB:
		if diff, overflow := object.SubOverflows(x, y); !overflow {
			return object.SmallInt(diff), nil
		}
		return object.Ref(object.NewBoxedInt(m.heap, m.b, x-y)), nil
	case isa.OpMUL:
		return object.MulInt(m.heap, m.b, x, y), nil
	case isa.OpDIV:
		if y == 0 {
			return object.Value{}, m.typeError("division by zero")
		}
		return object.Ref(object.NewFloat(m.heap, m.b, float64(x)/float64(y))), nil
	case isa.OpREM:
		if y == 0 {
			return object.Value{}, m.typeError("division by zero")
		}
		return object.MakeInt(m.heap, m.b, x%y), nil
	case isa.OpPOW:
		return object.Ref(object.NewFloat(m.heap, m.b, math.Pow(float64(x), float64(y)))), nil
	case isa.OpSHL:
		if y < 0 {
			return object.Value{}, m.typeError("negative shift count")
		}
		return object.MakeInt(m.heap, m.b, x<<uint(y)), nil
	case isa.OpSHR:
		if y < 0 {
			return object.Value{}, m.typeError("negative shift count")
		}
		return object.MakeInt(m.heap, m.b, x>>uint(y)), nil
	case isa.OpBITAND:
		if x < 0 || y < 0 {
			return m.dispatchBinary(op, a, b)
		}
		return object.MakeInt(m.heap, m.b, x&y), nil
	case isa.OpBITOR:
		if x < 0 || y < 0 {
			return m.dispatchBinary(op, a, b)
		}
		return object.MakeInt(m.heap, m.b, x|y), nil
	case isa.OpBITXOR:
		if x < 0 || y < 0 {
			return m.dispatchBinary(op, a, b)
		}
		return object.MakeInt(m.heap, m.b, x^y), nil
	}
	return object.Value{}, m.typeError("unreachable arithmetic opcode")
}

// execNOT implements NOT Rd, Rv: toggles the boolean singletons; any
// other input raises.
func (m *Machine) execNOT(v object.Value) (object.Value, error) {
	if !m.b.IsBool(v) {
		return object.Value{}, m.typeError("NOT operand is not boolean")
	}
	return m.b.BoolValue(v.Header() == m.b.False), nil
}

// execNEG implements NEG Rd, Rv: fast-paths small-int, guarding against
// the most-negative small-int (whose negation doesn't fit the range).
func (m *Machine) execNEG(v object.Value) (object.Value, error) {
	if v.IsSmallInt() {
		n := v.Int()
		if n == object.MinSmallInt {
			return object.Ref(object.NewBoxedInt(m.heap, m.b, -n)), nil
		}
		return object.SmallInt(-n), nil
	}
	td := v.Header().TypeData()
	method, ok := td.ResolveMethod("neg")
	if !ok {
		return object.Value{}, m.typeError("unsupported operand type for unary -: " + td.Name)
	}
	return m.invoker()(method, []object.Value{v})
}

// execBITNOT implements BITNOT Rd, Rv.
func (m *Machine) execBITNOT(v object.Value) (object.Value, error) {
	if v.IsSmallInt() {
		return object.MakeInt(m.heap, m.b, ^v.Int()), nil
	}
	td := v.Header().TypeData()
	method, ok := td.ResolveMethod("~")
	if !ok {
		return object.Value{}, m.typeError("unsupported operand type for ~: " + td.Name)
	}
	return m.invoker()(method, []object.Value{v})
}
