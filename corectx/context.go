package corectx

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/interp"
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
	"github.com/wippy-lang/corevm/symbol"
)

// Context bundles one runtime instance's heap, symbol registry, call
// stack, and interpreter Machine, and is the receiver for the
// register-indexed embedder surface (§6).
type Context struct {
	heap     *gcheap.Heap
	builtins *object.Builtins
	symbols  *symbol.Registry
	stack    *stack.Stack
	machine  *interp.Machine
	loader   Loader

	panicHandler func(*Panic)
}

// New constructs a Context ready to run. It roots the call stack so the
// GC traces every live register, exactly once per Context.
func New(opts ...Option) *Context {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	gcOpts := append([]gcheap.Option{gcheap.WithLogger(cfg.logger)}, cfg.gcOpts...)
	h := gcheap.New(gcOpts...)
	syms := symbol.New(h, h.Builtins())
	s := stack.New(cfg.stackCapacity)
	h.RegisterRoot(s, s.Visit)

	loader := cfg.loader
	if loader == nil {
		loader = NewMapLoader()
	}

	m := interp.New(h, syms, s, loader, interp.WithLogger(cfg.logger))

	return &Context{
		heap:     h,
		builtins: h.Builtins(),
		symbols:  syms,
		stack:    s,
		machine:  m,
		loader:   loader,
	}
}

// Destroy releases the Context's GC root registration. A destroyed
// Context must not be used again.
func (c *Context) Destroy() {
	c.heap.UnregisterRoot(c.stack)
}

// Loader returns the Context's module loader, so an embedder using the
// default MapLoader can type-assert it to Register modules before they're
// referenced by IMP.
func (c *Context) Loader() Loader { return c.loader }

// SetPanicHandler installs the callback Invoke delivers a recovered Panic
// to before re-panicking with it (§6/§7). NativeBlock does not call it: it
// turns a panic inside its block into an error status instead.
func (c *Context) SetPanicHandler(h func(*Panic)) { c.panicHandler = h }

// checkReg reports whether r addresses a valid slot in the active frame,
// returning a KindOutOfBounds error (status E_IDX) otherwise rather than
// panicking (§6's status-code contract).
func (c *Context) checkReg(r int) error {
	if !c.stack.InBounds(r) {
		return errors.New(errors.PhaseAPI, errors.KindOutOfBounds).
			Detail("register %d out of bounds", r).Build()
	}
	return nil
}

// Register reads reg's raw Value without the scalar type check a typed
// Read_T does, for callers (disassembly/inspection tooling, the image
// loader's constant realization) that need the value as constructed
// rather than coerced to a Go scalar.
func (c *Context) Register(reg int) (object.Value, Status) {
	if err := c.checkReg(reg); err != nil {
		return object.Value{}, StatusFor(err)
	}
	return c.stack.Get(reg), StatusOK
}

// Builtins exposes the shared built-in type/singleton table for tooling
// that needs to name a value's dynamic type (cmd/corevm's result
// renderer) without duplicating object.Builtins' type-descriptor fields.
func (c *Context) Builtins() *object.Builtins { return c.builtins }

// Heap exposes the Context's Heap for read-only introspection (occupancy
// stats) by cmd/corevm's inspector; it grants no allocation authority
// beyond what object.Allocator already exposes.
func (c *Context) Heap() *gcheap.Heap { return c.heap }

// StackDepth reports the call stack's current frame nesting, for the
// inspector's live-state panel.
func (c *Context) StackDepth() int { return c.stack.Depth() }
