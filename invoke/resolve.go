// Package invoke implements the invocation protocol (§4.5): callable
// resolution (Function, or a bounded-depth chain of `call`-method
// dispatch), the three argument-passing entry points, and frame
// entry/exit, using flat argument-slot layout and counting throughout.
package invoke

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
)

// maxCallableDepth bounds `call`-method resolution (§4.5: "recursively
// resolved up to a small bounded depth; cycles yield a type error").
const maxCallableDepth = 8

// ResolveCallable walks v's `call`-method chain until it reaches a
// Function object. Each non-Function callable encountered along the way
// is appended to outer, in resolution order — these become the "leading
// self-like arguments" §4.5 describes threading into the new frame.
func ResolveCallable(b *object.Builtins, v object.Value) (fn *object.Header, outer []object.Value, err error) {
	cur := v
	for depth := 0; depth < maxCallableDepth; depth++ {
		if !cur.IsRef() {
			return nil, nil, errors.NotCallable(b.TypeNameOf(cur))
		}
		h := cur.Header()
		if h.Type == b.FunctionType {
			return h, outer, nil
		}
		method, ok := h.TypeData().ResolveMethod("call")
		if !ok {
			return nil, nil, errors.NotCallable(h.TypeData().Name)
		}
		outer = append(outer, cur)
		cur = method
	}
	return nil, nil, errors.New(errors.PhaseInvoke, errors.KindTypeMismatch).
		Detail("call resolution exceeded depth %d", maxCallableDepth).Build()
}
