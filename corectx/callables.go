package corectx

import (
	"fmt"
	"runtime/debug"

	"github.com/wippy-lang/corevm/invoke"
	"github.com/wippy-lang/corevm/object"
)

// This file implements §6's "Callables" surface (make_function, make_type,
// make_module, invoke) and the native-block barrier, including the
// frame bookkeeping native_block must restore on every exit path.

// PackedArgc is the sentinel argc value that switches Invoke into
// packed-argument mode, reading a single Tuple or Array out of
// regList[2] instead of argc discrete argument registers (§6 invoke:
// "a sentinel count instructs packed-argument mode").
const PackedArgc = -1

// FunctionDef describes a bytecode Function for MakeFunction, mirroring
// the fields object.NewBytecodeFunction takes directly.
type FunctionDef struct {
	Name    string
	Code    []uint32
	Consts  []object.Value
	Symbols []string
	Arity   object.Arity
}

// MakeFunction builds a bytecode Function from def, owned by the Module
// in reg module, and writes it into reg.
func (c *Context) MakeFunction(reg int, def FunctionDef, module int) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	if err := c.checkReg(module); err != nil {
		return StatusFor(err)
	}
	mv := c.stack.Get(module)
	if !mv.IsRef() || mv.Header().Type != c.builtins.ModuleType {
		return StatusEType
	}
	fn := object.NewBytecodeFunction(c.heap, c.builtins, def.Name, def.Code, def.Consts, def.Symbols, mv.Header(), def.Arity)
	c.stack.Set(reg, object.Ref(fn))
	return StatusOK
}

// MakeNativeFunction builds a Function wrapping a host-implemented body,
// the native counterpart to MakeFunction (§6 describes only def-driven
// make_function, but a bytecode-free embedder needs a way to expose
// native callables to the same callable surface without compiling
// bytecode for them).
func (c *Context) MakeNativeFunction(reg int, name string, ar object.Arity, fn object.NativeFunc) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	h := object.NewNativeFunction(c.heap, c.builtins, name, ar, fn)
	c.stack.Set(reg, object.Ref(h))
	return StatusOK
}

// TypeDef describes a user type for MakeType: field slots plus method
// and static tables, all pre-built as callable Values (native or
// bytecode Functions) by the caller.
type TypeDef struct {
	Name    string
	Fields  []string // slot index == position in this list
	Methods map[string]object.Value
	Statics map[string]object.Value
}

// MakeType allocates a Type object from def and writes it into reg.
func (c *Context) MakeType(reg int, def TypeDef) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	td := object.NewTypeDescriptor(def.Name)
	for i, f := range def.Fields {
		td.Field(f, i)
	}
	for name, v := range def.Methods {
		td.Method(name, v)
	}
	for name, v := range def.Statics {
		td.Static(name, v)
	}
	td.FixedSlots = len(def.Fields)
	h := c.heap.AllocData(c.builtins.TypeType, td, object.HintSurvivor)
	c.stack.Set(reg, object.Ref(h))
	return StatusOK
}

// ModuleDef names a Module and its parents (by register, already built).
type ModuleDef struct {
	Name    string
	Parents []int
}

// MakeModule builds a Module from def and writes it into reg.
func (c *Context) MakeModule(reg int, def ModuleDef) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	parents := make([]*object.Header, 0, len(def.Parents))
	for _, p := range def.Parents {
		if err := c.checkReg(p); err != nil {
			return StatusFor(err)
		}
		pv := c.stack.Get(p)
		if !pv.IsRef() || pv.Header().Type != c.builtins.ModuleType {
			return StatusEType
		}
		parents = append(parents, pv.Header())
	}
	h := object.NewModule(c.heap, c.builtins, def.Name, parents)
	c.stack.Set(reg, object.Ref(h))
	return StatusOK
}

// Invoke calls the callable in regList[1], writing its result into
// regList[0]. Discrete mode (argc >= 0) reads regList[2:2+argc] as
// argument registers; PackedArgc mode reads a single Tuple/Array out of
// regList[2] (§6 invoke). A recovered panic is classified and delivered
// to the installed PanicHandler, then re-raised as a Go panic so the
// embedder's own call stack unwinds too — corectx never swallows an
// unrecoverable condition silently.
func (c *Context) Invoke(regList []int, argc int) (status Status) {
	if len(regList) < 2 {
		return StatusEArg
	}
	dst, calleeReg := regList[0], regList[1]
	for _, r := range []int{dst, calleeReg} {
		if err := c.checkReg(r); err != nil {
			return StatusFor(err)
		}
	}

	var args []object.Value
	if argc == PackedArgc {
		if len(regList) < 3 {
			return StatusEArg
		}
		if err := c.checkReg(regList[2]); err != nil {
			return StatusFor(err)
		}
		pv := c.stack.Get(regList[2])
		if !pv.IsRef() {
			return StatusEType
		}
		h := pv.Header()
		if h.Type != c.builtins.TupleType && h.Type != c.builtins.ArrayType {
			return StatusEType
		}
		args = invoke.PackedArgs(c.builtins, h)
	} else {
		if len(regList) < 2+argc {
			return StatusEArg
		}
		for _, r := range regList[2 : 2+argc] {
			if err := c.checkReg(r); err != nil {
				return StatusFor(err)
			}
		}
		args = invoke.DiscreteArgs(c.stack, regList[2:2+argc])
	}

	callee := c.stack.Get(calleeReg)
	if !callee.IsRef() {
		return StatusEType
	}
	debugf("invoke: callee type=%s argc=%d", c.builtins.TypeNameOf(callee), len(args))

	defer func() {
		if r := recover(); r != nil {
			p := classifyPanic(r, string(debug.Stack()))
			if c.panicHandler != nil {
				c.panicHandler(p)
			}
			panic(p)
		}
	}()

	result, exc, hasExc := c.machine.Run(callee.Header(), args)
	if hasExc {
		c.stack.Set(dst, exc)
		return StatusExc
	}
	c.stack.Set(dst, result)
	return StatusOK
}

// NativeBlock enters a fresh frame of maxReg+1 registers, forwards REG-0
// (the block's own callable identity, per CALL's convention of taking
// REG-0 as the callee) into and out of the block, runs fn, and leaves
// the frame — the barrier a native Function body crosses to call back
// into interpreted-adjacent register space without touching the caller's
// own frame (§6 native_block).
func (c *Context) NativeBlock(maxReg int, fn func(regs *Context) error, arg object.Value) Status {
	if maxReg < 0 {
		return StatusEArg
	}
	c.stack.Enter(maxReg+1, -1, -1)
	c.stack.Set(0, arg)

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("native_block panic: %v", r)
			}
		}()
		callErr = fn(c)
	}()

	result := c.stack.Get(0)
	c.stack.Leave(result)
	if callErr != nil {
		return StatusFor(callErr)
	}
	return StatusOK
}
