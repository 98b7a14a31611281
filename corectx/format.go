package corectx

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
)

// This file implements make_values/read_values (§6): a format-string
// mini-language where each top-level specifier writes one register
// (make_values) or reads one register and appends one Go value to the
// result (read_values); 'n' and '-' consume no Go argument, and '-'
// leaves its register untouched (read_values appends nil). Specifiers: '%'
// (already-built object.Value), 'n' (nil), 'x' (bool), 'i' (int), 'f'
// (float), 's' (string), 'y' (symbol), '(...)' (tuple), '[...]' (array),
// '{...}' (map), '-' (skip a register without reading/writing it), '?'
// (the following specifier accepts/produces Nil in place of its usual
// Go type), '*' (the following collection specifier is length-prefixed:
// make_values takes a Go slice directly rather than one arg per element;
// read_values returns one, too). A tuple/array's inner format is a single
// specifier describing every element uniformly, applied once per element
// of the Go []any slice (make_values) or per actual element (read_values);
// a map's inner format is exactly two specifiers, key then value, applied
// once per entry. Nested collections are restricted to a single level.
//
// This is an explicit format-driven walk rather than reflection-based
// marshaling, since the register ABI carries no static argument types of
// its own.

// MapEntry is one key/value pair consumed or produced by a '{...}'
// specifier.
type MapEntry struct {
	Key any
	Val any
}

// MakeValues walks consecutive registers starting at reg, one per
// top-level format specifier, writing each from args per fmt's
// mini-language ('-' skips its register).
func (c *Context) MakeValues(reg int, format string, args ...any) Status {
	p := &fmtParser{s: format}
	dst := reg
	ai := 0
	next := func() (any, error) {
		if ai >= len(args) {
			return nil, errors.InvalidInput(errors.PhaseAPI, "make_values: too few arguments for format")
		}
		v := args[ai]
		ai++
		return v, nil
	}
	for p.more() {
		if p.peek() == '-' {
			p.advance()
			dst++
			continue
		}
		if err := c.checkReg(dst); err != nil {
			return StatusFor(err)
		}
		v, err := c.makeOne(p, next)
		if err != nil {
			return StatusFor(err)
		}
		c.stack.Set(dst, v)
		dst++
	}
	return StatusOK
}

// ReadValues reads one top-level format specifier per register starting
// at reg, returning the decoded Go values in format order.
func (c *Context) ReadValues(reg int, format string) ([]any, Status) {
	p := &fmtParser{s: format}
	src := reg
	var out []any
	for p.more() {
		if err := c.checkReg(src); err != nil {
			return nil, StatusFor(err)
		}
		v, err := c.readOne(p, c.stack.Get(src))
		if err != nil {
			return nil, StatusFor(err)
		}
		out = append(out, v)
		src++
	}
	return out, StatusOK
}

// fmtParser walks a format string one rune at a time, tracking the
// '?'/'*' modifiers pending for the next specifier. '*' is accepted and
// tracked for format-string compatibility but otherwise a no-op here: Go
// slices and our []any/[]MapEntry argument shapes already self-describe
// their length, so there is no separate length value to read or write.
type fmtParser struct {
	s        string
	i        int
	optional bool
	prefixed bool
}

func (p *fmtParser) more() bool { return p.i < len(p.s) }

func (p *fmtParser) peek() byte { return p.s[p.i] }

func (p *fmtParser) advance() byte {
	c := p.s[p.i]
	p.i++
	return c
}

// consumeModifiers absorbs any leading '?'/'*' before the next real
// specifier, recording them for that one specifier only.
func (p *fmtParser) consumeModifiers() {
	for p.more() {
		switch p.peek() {
		case '?':
			p.optional = true
			p.advance()
		case '*':
			p.prefixed = true
			p.advance()
		default:
			return
		}
	}
}

func (p *fmtParser) resetModifiers() {
	p.optional = false
	p.prefixed = false
}

func (c *Context) makeOne(p *fmtParser, next func() (any, error)) (object.Value, error) {
	p.consumeModifiers()
	if !p.more() {
		return object.Value{}, errors.InvalidInput(errors.PhaseAPI, "make_values: dangling modifier")
	}
	optional := p.optional
	spec := p.advance()
	p.resetModifiers()

	if optional {
		v, err := next()
		if err != nil {
			return object.Value{}, err
		}
		if v == nil {
			return c.builtins.NilValue(), nil
		}
		return c.makeScalarOrCollection(p, spec, v)
	}

	switch spec {
	case 'n':
		return c.builtins.NilValue(), nil
	case '(', '[', '{':
		v, err := next()
		if err != nil {
			return object.Value{}, err
		}
		return c.makeCollection(p, spec, v)
	default:
		v, err := next()
		if err != nil {
			return object.Value{}, err
		}
		return c.makeScalar(spec, v)
	}
}

func (c *Context) makeScalarOrCollection(p *fmtParser, spec byte, v any) (object.Value, error) {
	switch spec {
	case '(', '[', '{':
		return c.makeCollection(p, spec, v)
	default:
		return c.makeScalar(spec, v)
	}
}

func (c *Context) makeScalar(spec byte, v any) (object.Value, error) {
	switch spec {
	case '%':
		vv, ok := v.(object.Value)
		if !ok {
			return object.Value{}, typeMismatch("%", goTypeName(v), "object.Value")
		}
		return vv, nil
	case 'x':
		b, ok := v.(bool)
		if !ok {
			return object.Value{}, typeMismatch("x", goTypeName(v), "bool")
		}
		return c.builtins.BoolValue(b), nil
	case 'i':
		n, ok := asInt64(v)
		if !ok {
			return object.Value{}, typeMismatch("i", goTypeName(v), "int")
		}
		if n < object.MinSmallInt || n > object.MaxSmallInt {
			return object.Ref(object.NewBoxedInt(c.heap, c.builtins, n)), nil
		}
		return object.SmallInt(n), nil
	case 'f':
		f, ok := asFloat64(v)
		if !ok {
			return object.Value{}, typeMismatch("f", goTypeName(v), "float64")
		}
		return object.Ref(object.NewFloat(c.heap, c.builtins, f)), nil
	case 's':
		b, ok := asBytes(v)
		if !ok {
			return object.Value{}, typeMismatch("s", goTypeName(v), "string")
		}
		return object.Ref(object.NewString(c.heap, c.builtins, b)), nil
	case 'y':
		b, ok := asBytes(v)
		if !ok {
			return object.Value{}, typeMismatch("y", goTypeName(v), "string")
		}
		return object.Ref(c.symbols.Intern(b)), nil
	default:
		return object.Value{}, errors.InvalidInput(errors.PhaseAPI, "make_values: unrecognized specifier "+string(spec))
	}
}

func (c *Context) makeCollection(p *fmtParser, open byte, v any) (object.Value, error) {
	close := map[byte]byte{'(': ')', '[': ']', '{': '}'}[open]
	sub := p.s[p.i:]
	end := findClose(sub, close)
	if end < 0 {
		return object.Value{}, errors.InvalidInput(errors.PhaseAPI, "make_values: unterminated collection")
	}
	inner := sub[:end]
	p.i += end + 1 // skip past inner and the closing bracket

	switch open {
	case '(':
		elems, ok := v.([]any)
		if !ok {
			return object.Value{}, typeMismatch("(", goTypeName(v), "[]any")
		}
		vals, err := c.makeEach(inner, elems)
		if err != nil {
			return object.Value{}, err
		}
		return object.Ref(object.NewTuple(c.heap, c.builtins, vals)), nil
	case '[':
		elems, ok := v.([]any)
		if !ok {
			return object.Value{}, typeMismatch("[", goTypeName(v), "[]any")
		}
		vals, err := c.makeEach(inner, elems)
		if err != nil {
			return object.Value{}, err
		}
		arr := object.NewArray(c.heap, c.builtins, len(vals)+1)
		for _, ev := range vals {
			object.ArrayAppend(c.heap, c.builtins, arr, ev)
		}
		return object.Ref(arr), nil
	case '{':
		entries, ok := v.([]MapEntry)
		if !ok {
			return object.Value{}, typeMismatch("{", goTypeName(v), "[]MapEntry")
		}
		m := object.NewMap(c.heap, c.builtins, len(entries)+1)
		for _, e := range entries {
			// inner holds exactly two specifiers, key then value, parsed
			// with one shared cursor so the second specifier isn't the
			// first one re-applied.
			ip := &fmtParser{s: inner}
			kv, err := c.makeOne(ip, oneShot(e.Key))
			if err != nil {
				return object.Value{}, err
			}
			vv, err := c.makeOne(ip, oneShot(e.Val))
			if err != nil {
				return object.Value{}, err
			}
			hash, err := object.Hash(kv, nil)
			if err != nil {
				return object.Value{}, err
			}
			if err := object.MapSet(c.heap, c.builtins, m, kv, vv, hash, c.equalsFn()); err != nil {
				return object.Value{}, err
			}
		}
		return object.Ref(m), nil
	}
	return object.Value{}, errors.InvalidInput(errors.PhaseAPI, "make_values: unreachable")
}

// makeEach applies the single-specifier inner format to each element of
// elems in turn (§4's single-level nesting restriction means inner never
// itself contains a collection specifier).
func (c *Context) makeEach(inner string, elems []any) ([]object.Value, error) {
	out := make([]object.Value, 0, len(elems))
	for _, e := range elems {
		p := &fmtParser{s: inner}
		v, err := c.makeOne(p, oneShot(e))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func oneShot(v any) func() (any, error) {
	used := false
	return func() (any, error) {
		if used {
			return nil, errors.InvalidInput(errors.PhaseAPI, "make_values: nested format consumed more than one value")
		}
		used = true
		return v, nil
	}
}

func findClose(s string, close byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == close {
			return i
		}
	}
	return -1
}

func (c *Context) readOne(p *fmtParser, v object.Value) (any, error) {
	p.consumeModifiers()
	if !p.more() {
		return nil, errors.InvalidInput(errors.PhaseAPI, "read_values: dangling modifier")
	}
	optional := p.optional
	spec := p.advance()
	p.resetModifiers()

	if optional && c.builtins.IsNil(v) {
		return nil, nil
	}

	switch spec {
	case 'n':
		return nil, nil
	case '-':
		return nil, nil
	case '(', '[', '{':
		return c.readCollection(p, spec, v)
	default:
		return c.readScalar(spec, v)
	}
}

func (c *Context) readScalar(spec byte, v object.Value) (any, error) {
	switch spec {
	case '%':
		return v, nil
	case 'x':
		if !c.builtins.IsBool(v) {
			return nil, typeMismatch("x", c.builtins.TypeNameOf(v), "bool")
		}
		return v.Header() == c.builtins.True, nil
	case 'i':
		if v.IsSmallInt() {
			return v.Int(), nil
		}
		if d, ok := v.Header().Data.(*object.IntData); ok {
			if n, exact := intDataInt64(d); exact {
				return n, nil
			}
			return int64(d.Float64()), nil
		}
		return nil, typeMismatch("i", c.builtins.TypeNameOf(v), "int")
	case 'f':
		f, ok := object.Float64(v)
		if !ok {
			return nil, typeMismatch("f", c.builtins.TypeNameOf(v), "float64")
		}
		return f, nil
	case 's':
		if !v.IsRef() || v.Header().Type != c.builtins.StringType {
			return nil, typeMismatch("s", c.builtins.TypeNameOf(v), "String")
		}
		return string(object.StringBytes(v.Header())), nil
	case 'y':
		if !v.IsRef() || v.Header().Type != c.builtins.SymbolType {
			return nil, typeMismatch("y", c.builtins.TypeNameOf(v), "Symbol")
		}
		return string(v.Header().Bytes), nil
	default:
		return nil, errors.InvalidInput(errors.PhaseAPI, "read_values: unrecognized specifier "+string(spec))
	}
}

func (c *Context) readCollection(p *fmtParser, open byte, v object.Value) (any, error) {
	close := map[byte]byte{'(': ')', '[': ']', '{': '}'}[open]
	sub := p.s[p.i:]
	end := findClose(sub, close)
	if end < 0 {
		return nil, errors.InvalidInput(errors.PhaseAPI, "read_values: unterminated collection")
	}
	inner := sub[:end]
	p.i += end + 1

	if !v.IsRef() {
		return nil, typeMismatch(string(open), "small-int", "collection")
	}
	h := v.Header()
	switch open {
	case '(':
		if h.Type != c.builtins.TupleType {
			return nil, typeMismatch("(", c.builtins.TypeNameOf(v), "Tuple")
		}
		out := make([]any, 0, object.TupleLen(h))
		for _, e := range object.TupleElems(h) {
			ip := &fmtParser{s: inner}
			rv, err := c.readOne(ip, e)
			if err != nil {
				return nil, err
			}
			out = append(out, rv)
		}
		return out, nil
	case '[':
		if h.Type != c.builtins.ArrayType {
			return nil, typeMismatch("[", c.builtins.TypeNameOf(v), "Array")
		}
		n := object.ArrayLen(h)
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			elem, _ := object.ArrayAt(h, i)
			ip := &fmtParser{s: inner}
			rv, err := c.readOne(ip, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, rv)
		}
		return out, nil
	case '{':
		if h.Type != c.builtins.MapType {
			return nil, typeMismatch("{", c.builtins.TypeNameOf(v), "Map")
		}
		var out []MapEntry
		err := object.MapForEach(h, func(k, val object.Value) error {
			// inner holds exactly two specifiers, key then value, parsed
			// with one shared cursor.
			ip := &fmtParser{s: inner}
			kr, err := c.readOne(ip, k)
			if err != nil {
				return err
			}
			vr, err := c.readOne(ip, val)
			if err != nil {
				return err
			}
			out = append(out, MapEntry{Key: kr, Val: vr})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, errors.InvalidInput(errors.PhaseAPI, "read_values: unreachable")
}

func goTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int, int64, int32:
		return "int"
	case float64, float32:
		return "float64"
	case string:
		return "string"
	case []byte:
		return "[]byte"
	case object.Value:
		return "object.Value"
	case []any:
		return "[]any"
	case []MapEntry:
		return "[]MapEntry"
	default:
		return "unknown"
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	}
	return 0, false
}

func asBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case string:
		return []byte(b), true
	case []byte:
		return b, true
	}
	return nil, false
}
