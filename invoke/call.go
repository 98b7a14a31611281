package invoke

import (
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
)

// Enter resolves callee (REG-0 of the caller frame, already read by the
// caller before switching frames) to a Function, pushes a new frame sized
// by its arity's register count, and lays out args (already gathered
// against the caller's frame by VectorArgs/PackedArgs/DiscreteArgs)
// according to §4.5's table. Returns the resolved Function and the new
// frame's base so the caller (interp, for bytecode functions) can resume
// dispatch, or invoke the native function directly.
func Enter(a object.Allocator, b *object.Builtins, s *stack.Stack, callee object.Value, args []object.Value, returnIP, retDest int) (fn *object.Header, frameBase int, err error) {
	fn, outer, err := ResolveCallable(b, callee)
	if err != nil {
		return nil, 0, err
	}

	full := args
	if len(outer) > 0 {
		full = make([]object.Value, 0, len(outer)+len(args))
		full = append(full, outer...)
		full = append(full, args...)
	}

	ar := object.FuncArity(fn)
	frameBase = s.Enter(int(ar.NR), returnIP, retDest)
	s.Set(0, object.Ref(fn))
	if err := LayoutArgs(a, b, s, fn, full); err != nil {
		s.Leave(b.NilValue())
		return nil, 0, err
	}
	return fn, frameBase, nil
}

// CallNative runs a native Function's Go implementation against the
// registers already laid out by Enter (REG-0 through the frame's last
// register), then leaves the frame with whatever CALL's destination
// register Enter recorded — mirroring bytecode RET's contract so native
// and bytecode functions are interchangeable callees.
func CallNative(s *stack.Stack, frameBase int, fn *object.Header) int {
	fd := fn.Data.(*object.FunctionData)
	regs := make([]object.Value, int(fd.NR))
	for i := range regs {
		regs[i] = s.GetAbs(frameBase + i)
	}
	err := fd.Native(regs)
	for i := range regs {
		s.SetAbs(frameBase+i, regs[i])
	}
	result := regs[0]
	if err != nil {
		if ee, ok := asExceptionValue(err); ok {
			result = ee
		}
	}
	return s.Leave(result)
}

// asExceptionValue extracts an object.Value payload from a native error,
// if the error carries one (see corectx's exception-wrapping contract).
func asExceptionValue(err error) (object.Value, bool) {
	type valueCarrier interface{ ExceptionValue() object.Value }
	if vc, ok := err.(valueCarrier); ok {
		return vc.ExceptionValue(), true
	}
	return object.Value{}, false
}
