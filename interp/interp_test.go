package interp

import (
	"testing"

	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
	"github.com/wippy-lang/corevm/symbol"
)

// stubLoader is a test-only Loader that serves a fixed set of modules by
// name, or errors on anything else.
type stubLoader struct {
	modules map[string]*object.Header
}

func (l *stubLoader) LoadModule(name string) (*object.Header, error) {
	if m, ok := l.modules[name]; ok {
		return m, nil
	}
	return nil, errNotFound(name)
}

type errNotFound string

func (e errNotFound) Error() string { return "module not found: " + string(e) }

// harness bundles everything a test needs to build and run bytecode
// functions against a fresh Machine.
type harness struct {
	t    *testing.T
	heap *gcheap.Heap
	b    *object.Builtins
	syms *symbol.Registry
	s    *stack.Stack
	m    *Machine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := gcheap.New()
	b := h.Builtins()
	syms := symbol.New(h, b)
	s := stack.New(256)
	loader := &stubLoader{modules: map[string]*object.Header{}}
	m := New(h, syms, s, loader)
	return &harness{t: t, heap: h, b: b, syms: syms, s: s, m: m}
}

func enc(op isa.Op, a, b, c int) uint32 { return isa.Encode(op, a, b, c) }

// fn builds a bytecode Function with nr registers, no owning module.
func (hn *harness) fn(name string, nr int, code []uint32, consts []object.Value, syms []string) *object.Header {
	ar := object.Arity{NA: 0, NO: 0, NR: int32(nr)}
	return object.NewBytecodeFunction(hn.heap, hn.b, name, code, consts, syms, nil, ar)
}

func (hn *harness) fnInModule(name string, nr int, code []uint32, consts []object.Value, syms []string, mod *object.Header) *object.Header {
	ar := object.Arity{NA: 0, NO: 0, NR: int32(nr)}
	return object.NewBytecodeFunction(hn.heap, hn.b, name, code, consts, syms, mod, ar)
}

// run invokes fn with no arguments and returns Machine.Run's three results.
func (hn *harness) run(fn *object.Header) (object.Value, object.Value, bool) {
	hn.t.Helper()
	return hn.m.Run(fn, nil)
}
