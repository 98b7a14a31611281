package corectx

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
)

// This file implements the make_T/read_T pairs (§6) for every built-in
// scalar type: nil, bool, int, float, string, symbol, bytes. Each writes
// or reads register reg of the active frame.

// MakeNil writes Nil into reg.
func (c *Context) MakeNil(reg int) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(reg, c.builtins.NilValue())
	return StatusOK
}

// MakeBool writes a Bool into reg.
func (c *Context) MakeBool(reg int, v bool) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(reg, c.builtins.BoolValue(v))
	return StatusOK
}

// ReadBool reads a Bool from reg.
func (c *Context) ReadBool(reg int) (bool, Status) {
	if err := c.checkReg(reg); err != nil {
		return false, StatusFor(err)
	}
	v := c.stack.Get(reg)
	if !c.builtins.IsBool(v) {
		return false, StatusEType
	}
	return v.Header() == c.builtins.True, StatusOK
}

// MakeInt writes n into reg: as a small-int Value when it fits
// object.SmallInt's range, otherwise as a boxed Int.
func (c *Context) MakeInt(reg int, n int64) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	if n < object.MinSmallInt || n > object.MaxSmallInt {
		c.stack.Set(reg, object.Ref(object.NewBoxedInt(c.heap, c.builtins, n)))
		return StatusOK
	}
	c.stack.Set(reg, object.SmallInt(n))
	return StatusOK
}

// ReadInt reads an int-valued reg, reconstructing a boxed Int's exact
// int64 value from its limbs when it fits, and falling back to its
// float64 approximation only when it doesn't (callers needing exact
// values beyond int64 should inspect the Header's IntData directly).
func (c *Context) ReadInt(reg int) (int64, Status) {
	if err := c.checkReg(reg); err != nil {
		return 0, StatusFor(err)
	}
	v := c.stack.Get(reg)
	if v.IsSmallInt() {
		return v.Int(), StatusOK
	}
	if d, ok := v.Header().Data.(*object.IntData); ok {
		if n, exact := intDataInt64(d); exact {
			return n, StatusOK
		}
		return int64(d.Float64()), StatusOK
	}
	return 0, StatusEType
}

// MakeFloat writes a boxed Float into reg.
func (c *Context) MakeFloat(reg int, f float64) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(reg, object.Ref(object.NewFloat(c.heap, c.builtins, f)))
	return StatusOK
}

// ReadFloat reads a Float (or widens an Int/small-int) from reg.
func (c *Context) ReadFloat(reg int) (float64, Status) {
	if err := c.checkReg(reg); err != nil {
		return 0, StatusFor(err)
	}
	f, ok := object.Float64(c.stack.Get(reg))
	if !ok {
		return 0, StatusEType
	}
	return f, StatusOK
}

// MakeString writes a new String built from s into reg.
func (c *Context) MakeString(reg int, s []byte) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(reg, object.Ref(object.NewString(c.heap, c.builtins, s)))
	return StatusOK
}

// ReadString reads a String's raw UTF-8 bytes from reg. The returned
// slice aliases the object's storage; callers that retain it past the
// next GC cycle must copy it, since a moving collection may relocate the
// backing object — no Go-level pin exists for byte regions, so an
// embedding C API's pinning discipline is an external collaborator's
// concern, not this package's.
func (c *Context) ReadString(reg int) ([]byte, Status) {
	if err := c.checkReg(reg); err != nil {
		return nil, StatusFor(err)
	}
	v := c.stack.Get(reg)
	if !v.IsRef() || v.Header().Type != c.builtins.StringType {
		return nil, StatusEType
	}
	return object.StringBytes(v.Header()), StatusOK
}

// MakeBytes writes a raw byte buffer into reg. The core has no type
// distinct from String for an opaque byte region (§3.4 defines only
// String, whose storage is already a plain byte slice), so make_bytes
// reuses String's representation rather than inventing a parallel type
// the interpreter would never otherwise touch.
func (c *Context) MakeBytes(reg int, data []byte) Status {
	return c.MakeString(reg, data)
}

// ReadBytes reads reg's raw byte storage, valid for any String or Symbol.
func (c *Context) ReadBytes(reg int) ([]byte, Status) {
	if err := c.checkReg(reg); err != nil {
		return nil, StatusFor(err)
	}
	v := c.stack.Get(reg)
	if !v.IsRef() {
		return nil, StatusEType
	}
	h := v.Header()
	if h.Type != c.builtins.StringType && h.Type != c.builtins.SymbolType {
		return nil, StatusEType
	}
	return h.Bytes, StatusOK
}

// MakeSymbol interns name and writes the resulting Symbol into reg (§4.4
// symbol registry: process-unique by content).
func (c *Context) MakeSymbol(reg int, name []byte) Status {
	if err := c.checkReg(reg); err != nil {
		return StatusFor(err)
	}
	c.stack.Set(reg, object.Ref(c.symbols.Intern(name)))
	return StatusOK
}

// ReadSymbol reads an interned Symbol's name bytes from reg.
func (c *Context) ReadSymbol(reg int) ([]byte, Status) {
	if err := c.checkReg(reg); err != nil {
		return nil, StatusFor(err)
	}
	v := c.stack.Get(reg)
	if !v.IsRef() || v.Header().Type != c.builtins.SymbolType {
		return nil, StatusEType
	}
	return v.Header().Bytes, StatusOK
}

// intDataInt64 reconstructs a boxed Int's exact value from its
// little-endian uint32 limbs, reporting ok=false on overflow rather than
// silently wrapping (§3.4: boxed Ints exist precisely because small-int
// range was exceeded, so exactness here matters more than for Float64's
// arithmetic-widening use).
func intDataInt64(d *object.IntData) (n int64, ok bool) {
	var mag uint64
	for i := len(d.Mag) - 1; i >= 0; i-- {
		if mag>>32 != 0 {
			return 0, false // next shift would lose bits
		}
		mag = mag<<32 | uint64(d.Mag[i])
	}
	if d.Sign < 0 {
		if mag > 1<<63 {
			return 0, false
		}
		return -int64(mag), true
	}
	if mag > 1<<63-1 {
		return 0, false
	}
	return int64(mag), true
}

// typeMismatch is a small helper for format.go's richer per-specifier
// error details, kept here alongside the scalar accessors it wraps.
func typeMismatch(path string, got, want string) error {
	return errors.TypeMismatch(errors.PhaseAPI, []string{path}, got, want)
}
