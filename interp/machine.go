// Package interp implements the bytecode interpreter (§4.6): instruction
// dispatch over a register-based call stack, the self-modifying LDGLB/STGLB
// cache, and the panic/exception split between illegal bytecode (which
// panics) and catchable language-level throws (which produce exception
// values).
package interp

import (
	"go.uber.org/zap"

	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/invoke"
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
	"github.com/wippy-lang/corevm/symbol"
)

// Loader resolves a top-level module by name for IMP (§4.6 "Module"). The
// core treats the module loader as an external collaborator (§1); corectx
// supplies the concrete implementation so interp stays free of filesystem
// or front-end dependencies.
type Loader interface {
	LoadModule(name string) (*object.Header, error)
}

type config struct {
	logger *zap.Logger
}

// Option configures a Machine at construction.
type Option func(*config)

// WithLogger installs the *zap.Logger the Machine stores; the dispatch
// loop writes no log entries.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Machine holds everything the dispatch loop needs across calls: the heap
// (as object.Allocator), the symbol registry LDSYM/LDGLB intern through,
// the register stack, and the module loader.
type Machine struct {
	heap    *gcheap.Heap
	b       *object.Builtins
	symbols *symbol.Registry
	stack   *stack.Stack
	loader  Loader
	log     *zap.Logger
}

// New builds a Machine sharing h's Builtins and syms' interning table.
func New(h *gcheap.Heap, syms *symbol.Registry, s *stack.Stack, loader Loader, opts ...Option) *Machine {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Machine{heap: h, b: h.Builtins(), symbols: syms, stack: s, loader: loader, log: cfg.logger}
}

// thrown carries a live exception Value up through Go's call stack during
// bytecode-level unwinding (§4.6 THR: "unwind frames ... propagate out of
// the top frame and signal the embedder"). Each runFrame level it passes
// through restores its own register-stack frame via Stack.Leave before
// re-propagating, so by the time Run returns, the Stack is back to the
// depth it had on entry.
type thrown struct {
	val object.Value
}

func (t *thrown) Error() string { return "uncaught exception" }

// illegal is raised via panic for out-of-range register/symbol/constant/
// field/module-index operands (§4.6 "Panic triggers") — unrecoverable,
// distinct from the catchable *thrown exceptions.
type illegal struct{ err *errors.Error }

func (i *illegal) Error() string { return i.err.Error() }

func panicIllegal(phase errors.Phase, detail string) {
	panic(&illegal{err: errors.New(phase, errors.KindIllegalBytecode).Detail(detail).Build()})
}

// PanicKind reports the *errors.Error Kind carried by a panic value this
// package raised for illegal bytecode, so a recover at the embedder
// boundary (corectx.Context.Invoke) can classify it as panic code ILL
// without depending on the unexported illegal type itself.
func PanicKind(r any) (errors.Kind, bool) {
	if il, ok := r.(*illegal); ok {
		return il.err.Kind, true
	}
	return "", false
}

// Run invokes fn (a Function built by NewBytecodeFunction or
// NewNativeFunction) with args as a fresh top-level call, running the
// dispatch loop until the outermost frame returns or an uncaught exception
// propagates past it. It is the sole entry point corectx's Invoke wraps.
func (m *Machine) Run(fn *object.Header, args []object.Value) (result object.Value, exc object.Value, hasExc bool) {
	s := m.stack
	frame := s.Enter(1, -1, -1)
	s.Set(0, object.Ref(fn))
	callee := s.Get(0)

	newFn, frameBase, err := invoke.Enter(m.heap, m.b, s, callee, args, -1, s.Frame())
	if err != nil {
		s.Leave(m.b.NilValue())
		return m.b.NilValue(), m.wrapError(err), true
	}

	var retVal object.Value
	fd := newFn.Data.(*object.FunctionData)
	if fd.Kind == object.FuncNative {
		invoke.CallNative(s, frameBase, newFn)
		retVal = s.GetAbs(frameBase)
	} else {
		v, rerr := m.runFrame(newFn, frameBase)
		if rerr != nil {
			s.Leave(m.b.NilValue())
			if th, ok := rerr.(*thrown); ok {
				return m.b.NilValue(), th.val, true
			}
			return m.b.NilValue(), m.wrapError(rerr), true
		}
		retVal = v
	}
	s.Leave(retVal)
	_ = frame
	return retVal, object.Value{}, false
}

// typeError builds a catchable type exception (the "raises a type
// exception" wording used throughout §4.6 for recoverable operand
// mismatches, as opposed to the unrecoverable panics of §4.6's last
// paragraph).
func (m *Machine) typeError(detail string) error {
	excType := m.symbols.Intern([]byte(object.ExcTypeType))
	what := object.NewString(m.heap, m.b, []byte(detail))
	return &thrown{val: object.Ref(object.NewException(m.heap, m.b, excType, what, m.b.NilValue()))}
}

// keyError builds a catchable key-exception (unknown method, missing
// global, missing map/field key).
func (m *Machine) keyError(detail string) error {
	excType := m.symbols.Intern([]byte(object.ExcKeyType))
	what := object.NewString(m.heap, m.b, []byte(detail))
	return &thrown{val: object.Ref(object.NewException(m.heap, m.b, excType, what, m.b.NilValue()))}
}

// wrapAsThrown normalizes any error into a *thrown so every runFrame exit
// path (dispatch.go's unwind, calls.go's callValueAbs) can propagate a
// single uniform error shape regardless of whether the failure originated
// as a *thrown already or as a plain *errors.Error from a helper.
func (m *Machine) wrapAsThrown(err error) error {
	if th, ok := err.(*thrown); ok {
		return th
	}
	return &thrown{val: m.wrapError(err)}
}

func (m *Machine) wrapError(err error) object.Value {
	if ee, ok := err.(*errors.Error); ok {
		excType := m.symbols.Intern([]byte(string(ee.Kind)))
		what := object.NewString(m.heap, m.b, []byte(ee.Error()))
		return object.Ref(object.NewException(m.heap, m.b, excType, what, m.b.NilValue()))
	}
	excType := m.symbols.Intern([]byte("sys"))
	what := object.NewString(m.heap, m.b, []byte(err.Error()))
	return object.Ref(object.NewException(m.heap, m.b, excType, what, m.b.NilValue()))
}
