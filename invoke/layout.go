package invoke

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
)

// LayoutArgs writes args into the callee frame already entered at s
// according to fn's arity (§4.5's table), the single routine all three
// argument-passing entry points funnel through so they produce identical
// callee-frame contents (P6). REG-0 (the resolved Function) is assumed
// already written by the caller.
func LayoutArgs(a object.Allocator, b *object.Builtins, s *stack.Stack, fn *object.Header, args []object.Value) error {
	ar := object.FuncArity(fn)
	na := int(ar.NA)
	k := int(ar.FixedOptionals())

	if ar.Variadic() {
		ok, wantMin, _ := ar.Check(len(args))
		if !ok {
			return errors.Arity(len(args), wantMin, -1)
		}
	} else {
		ok, wantMin, wantMax := ar.Check(len(args))
		if !ok {
			return errors.Arity(len(args), wantMin, wantMax)
		}
	}

	for i := 0; i < na; i++ {
		s.Set(1+i, args[i])
	}
	given := len(args) - na
	for i := 0; i < k; i++ {
		if i < given {
			s.Set(1+na+i, args[na+i])
		} else {
			s.Set(1+na+i, b.NilValue())
		}
	}
	if !ar.Variadic() {
		return nil
	}

	restStart := na + k
	var rest []object.Value
	if given > k {
		rest = args[restStart:]
	}
	tup := object.NewTuple(a, b, rest)
	s.Set(1+restStart, object.Ref(tup))
	return nil
}

// VectorArgs reads n contiguous arguments starting at register regBase of
// the active frame (CALLV's "contiguous vector" entry point).
func VectorArgs(s *stack.Stack, regBase, n int) []object.Value {
	args := make([]object.Value, n)
	for i := 0; i < n; i++ {
		args[i] = s.Get(regBase + i)
	}
	return args
}

// PackedArgs extracts arguments from a packed Tuple or Array (CALLP's
// entry point); for Array, the backing ArraySlots is transparent to the
// caller — ArrayLen/ArrayAt already hide it.
func PackedArgs(b *object.Builtins, packed *object.Header) []object.Value {
	if packed.Type == b.TupleType {
		elems := object.TupleElems(packed)
		out := make([]object.Value, len(elems))
		copy(out, elems)
		return out
	}
	n := object.ArrayLen(packed)
	out := make([]object.Value, n)
	for i := 0; i < n; i++ {
		out[i], _ = object.ArrayAt(packed, i)
	}
	return out
}

// DiscreteArgs reads arguments from an explicit list of caller-frame
// register indices (the third canonical entry point, used when argument
// registers aren't contiguous).
func DiscreteArgs(s *stack.Stack, regs []int) []object.Value {
	args := make([]object.Value, len(regs))
	for i, r := range regs {
		args[i] = s.Get(r)
	}
	return args
}
