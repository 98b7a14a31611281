package corectx

import (
	"github.com/wippy-lang/corevm/object"
)

// This file implements §6's "Variables" surface: move_local, element
// get/set/insert/remove dispatched by the container's dynamic type, and
// global get/set by name, all addressed through register-file slots
// rather than a wasm-style operand stack.

// MoveLocal copies the value in src to dst, both registers of the active
// frame (§6 move_local).
func (c *Context) MoveLocal(dst, src int) Status {
	if err := c.checkReg(dst); err != nil {
		return StatusFor(err)
	}
	if err := c.checkReg(src); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(dst, c.stack.Get(src))
	return StatusOK
}

// ElementGet reads container[key] into dst, dispatching on container's
// dynamic type (Array: small-int index; Map: any hashable key; Tuple:
// small-int index).
func (c *Context) ElementGet(dst, container, key int) Status {
	for _, r := range []int{dst, container, key} {
		if err := c.checkReg(r); err != nil {
			return StatusFor(err)
		}
	}
	cv := c.stack.Get(container)
	kv := c.stack.Get(key)
	if !cv.IsRef() {
		return StatusEType
	}
	h := cv.Header()
	switch h.Type {
	case c.builtins.ArrayType:
		idx, ok := indexOf(kv)
		if !ok {
			return StatusEType
		}
		v, ok := object.ArrayAt(h, idx)
		if !ok {
			return StatusEIdx
		}
		c.stack.Set(dst, v)
		return StatusOK
	case c.builtins.TupleType:
		idx, ok := indexOf(kv)
		if !ok {
			return StatusEType
		}
		if idx < 0 || idx >= object.TupleLen(h) {
			return StatusEIdx
		}
		c.stack.Set(dst, object.TupleAt(h, idx))
		return StatusOK
	case c.builtins.MapType:
		hash, err := object.Hash(kv, nil)
		if err != nil {
			return StatusEType
		}
		v, found, err := object.MapGet(h, kv, hash, c.equalsFn())
		if err != nil {
			return StatusEType
		}
		if !found {
			return StatusEIdx
		}
		c.stack.Set(dst, v)
		return StatusOK
	default:
		return StatusEType
	}
}

// ElementSet writes val into container[key]. On an Array it only
// overwrites an existing index (use ElementInsert to append); on a Map it
// inserts key if absent.
func (c *Context) ElementSet(container, key, val int) Status {
	for _, r := range []int{container, key, val} {
		if err := c.checkReg(r); err != nil {
			return StatusFor(err)
		}
	}
	cv := c.stack.Get(container)
	kv := c.stack.Get(key)
	vv := c.stack.Get(val)
	if !cv.IsRef() {
		return StatusEType
	}
	h := cv.Header()
	switch h.Type {
	case c.builtins.ArrayType:
		idx, ok := indexOf(kv)
		if !ok {
			return StatusEType
		}
		if !object.ArraySet(c.heap, h, idx, vv) {
			return StatusEIdx
		}
		return StatusOK
	case c.builtins.MapType:
		hash, err := object.Hash(kv, nil)
		if err != nil {
			return StatusEType
		}
		if err := object.MapSet(c.heap, c.builtins, h, kv, vv, hash, c.equalsFn()); err != nil {
			return StatusEType
		}
		return StatusOK
	default:
		return StatusEType
	}
}

// ElementInsert appends to an Array (key register is ignored) or inserts
// a new key into a Map.
func (c *Context) ElementInsert(container, key, val int) Status {
	for _, r := range []int{container, val} {
		if err := c.checkReg(r); err != nil {
			return StatusFor(err)
		}
	}
	cv := c.stack.Get(container)
	vv := c.stack.Get(val)
	if !cv.IsRef() {
		return StatusEType
	}
	h := cv.Header()
	switch h.Type {
	case c.builtins.ArrayType:
		object.ArrayAppend(c.heap, c.builtins, h, vv)
		return StatusOK
	case c.builtins.MapType:
		if err := c.checkReg(key); err != nil {
			return StatusFor(err)
		}
		kv := c.stack.Get(key)
		hash, err := object.Hash(kv, nil)
		if err != nil {
			return StatusEType
		}
		if err := object.MapSet(c.heap, c.builtins, h, kv, vv, hash, c.equalsFn()); err != nil {
			return StatusEType
		}
		return StatusOK
	default:
		return StatusEType
	}
}

// ElementRemove pops an Array's last element (key register is ignored,
// must address the container's current length - 1 by convention) or
// removes a Map key, writing the removed value into dst.
func (c *Context) ElementRemove(dst, container, key int) Status {
	for _, r := range []int{dst, container} {
		if err := c.checkReg(r); err != nil {
			return StatusFor(err)
		}
	}
	cv := c.stack.Get(container)
	if !cv.IsRef() {
		return StatusEType
	}
	h := cv.Header()
	switch h.Type {
	case c.builtins.ArrayType:
		v, ok := object.ArrayPop(c.heap, c.builtins, h)
		if !ok {
			return StatusEIdx
		}
		c.stack.Set(dst, v)
		return StatusOK
	case c.builtins.MapType:
		if err := c.checkReg(key); err != nil {
			return StatusFor(err)
		}
		kv := c.stack.Get(key)
		hash, err := object.Hash(kv, nil)
		if err != nil {
			return StatusEType
		}
		val, found, err := object.MapGet(h, kv, hash, c.equalsFn())
		if err != nil {
			return StatusEType
		}
		if !found {
			return StatusEIdx
		}
		if _, err := object.MapRemove(h, kv, hash, c.equalsFn()); err != nil {
			return StatusEType
		}
		c.stack.Set(dst, val)
		return StatusOK
	default:
		return StatusEType
	}
}

// GlobalGet reads a named global from module (a Module-typed register)
// into dst, following parent modules on miss.
func (c *Context) GlobalGet(dst, module int, name string) Status {
	if err := c.checkReg(dst); err != nil {
		return StatusFor(err)
	}
	if err := c.checkReg(module); err != nil {
		return StatusFor(err)
	}
	mv := c.stack.Get(module)
	if !mv.IsRef() || mv.Header().Type != c.builtins.ModuleType {
		return StatusEType
	}
	v, _, _, ok := object.ModuleGetGlobal(mv.Header(), name)
	if !ok {
		return StatusEIdx
	}
	c.stack.Set(dst, v)
	return StatusOK
}

// GlobalSet writes a named global on module, defining it if absent
// (STGLB semantics: never writes through to a parent module).
func (c *Context) GlobalSet(module int, name string, val int) Status {
	if err := c.checkReg(module); err != nil {
		return StatusFor(err)
	}
	if err := c.checkReg(val); err != nil {
		return StatusFor(err)
	}
	mv := c.stack.Get(module)
	if !mv.IsRef() || mv.Header().Type != c.builtins.ModuleType {
		return StatusEType
	}
	object.ModuleSetGlobal(c.heap, mv.Header(), name, c.stack.Get(val))
	return StatusOK
}

// equalsFn adapts object.Equals to the eq callback MapGet/MapSet/MapRemove
// expect, passing a nil Invoker — built-in key types (Int, Float, String,
// Symbol) never need method dispatch to compare, and custom key types are
// out of scope for this generic element API (an embedder driving a
// custom-keyed Map invokes its `<=>` method directly via Invoke instead).
func (c *Context) equalsFn() func(a, b object.Value) (bool, error) {
	return func(a, b object.Value) (bool, error) {
		return object.Equals(a, b, nil)
	}
}

// indexOf extracts a non-negative int index from a small-int Value.
func indexOf(v object.Value) (int, bool) {
	if !v.IsSmallInt() {
		return 0, false
	}
	n := v.Int()
	if n < 0 {
		return 0, false
	}
	return int(n), true
}
