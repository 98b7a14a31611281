package main

import (
	"fmt"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/object"
)

// renderValue formats a register's current value for the disassembler's
// result line and the inspector's result panel, dispatching on the
// built-in type and reading scalars back through the same corectx APIs
// an embedder would use rather than reaching into object internals.
func renderValue(c *corectx.Context, reg int) string {
	v, st := c.Register(reg)
	if st != corectx.StatusOK {
		return fmt.Sprintf("<%s>", st)
	}
	b := c.Builtins()
	if !v.IsRef() {
		return fmt.Sprintf("%d", v.Int())
	}
	h := v.Header()
	switch h.Type {
	case b.NilType:
		return "nil"
	case b.BoolType:
		x, _ := c.ReadBool(reg)
		return fmt.Sprintf("%t", x)
	case b.IntType:
		n, _ := c.ReadInt(reg)
		return fmt.Sprintf("%d", n)
	case b.FloatType:
		f, _ := c.ReadFloat(reg)
		return fmt.Sprintf("%g", f)
	case b.StringType:
		s, _ := c.ReadString(reg)
		return fmt.Sprintf("%q", s)
	case b.SymbolType:
		s, _ := c.ReadSymbol(reg)
		return ":" + string(s)
	case b.ExceptionType:
		return fmt.Sprintf("<exception %s: %s>", object.ExceptionTypeName(h), object.ExceptionWhat(h))
	default:
		return fmt.Sprintf("<%s>", b.TypeNameOf(v))
	}
}
