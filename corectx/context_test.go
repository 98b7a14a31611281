package corectx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippy-lang/corevm/object"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := New(WithStackCapacity(256))
	c.stack.Enter(32, -1, -1)
	t.Cleanup(c.Destroy)
	return c
}

func TestScalarRoundTrip(t *testing.T) {
	c := newTestContext(t)

	require.Equal(t, StatusOK, c.MakeNil(0))
	require.True(t, c.builtins.IsNil(c.stack.Get(0)))

	require.Equal(t, StatusOK, c.MakeBool(1, true))
	b, status := c.ReadBool(1)
	require.Equal(t, StatusOK, status)
	require.True(t, b)

	require.Equal(t, StatusOK, c.MakeInt(2, 13))
	n, status := c.ReadInt(2)
	require.Equal(t, StatusOK, status)
	require.Equal(t, int64(13), n)

	require.Equal(t, StatusOK, c.MakeInt(3, object.MaxSmallInt+1))
	n, status = c.ReadInt(3)
	require.Equal(t, StatusOK, status)
	require.Equal(t, object.MaxSmallInt+1, n)

	require.Equal(t, StatusOK, c.MakeFloat(4, 3.5))
	f, status := c.ReadFloat(4)
	require.Equal(t, StatusOK, status)
	require.Equal(t, 3.5, f)

	require.Equal(t, StatusOK, c.MakeString(5, []byte("Héllo")))
	s, status := c.ReadString(5)
	require.Equal(t, StatusOK, status)
	require.Equal(t, []byte("Héllo"), s)

	require.Equal(t, StatusOK, c.MakeSymbol(6, []byte("foo")))
	sym, status := c.ReadSymbol(6)
	require.Equal(t, StatusOK, status)
	require.Equal(t, []byte("foo"), sym)

	// Re-interning the same name yields the same Header (P5).
	require.Equal(t, StatusOK, c.MakeSymbol(7, []byte("foo")))
	require.True(t, object.Same(c.stack.Get(6), c.stack.Get(7)))
}

func TestReadWrongType(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, StatusOK, c.MakeInt(0, 5))
	_, status := c.ReadString(0)
	require.Equal(t, StatusEType, status)
}

func TestMakeValuesReadValuesScalars(t *testing.T) {
	c := newTestContext(t)

	// 'n' writes/reads Nil without consuming a Go argument.
	status := c.MakeValues(0, "nxifsy", true, int64(7), 2.5, "hi", "sym")
	require.Equal(t, StatusOK, status)

	out, status := c.ReadValues(0, "nxifsy")
	require.Equal(t, StatusOK, status)
	require.Equal(t, []any{nil, true, int64(7), 2.5, "hi", "sym"}, out)
}

func TestMakeValuesTupleAndArray(t *testing.T) {
	c := newTestContext(t)

	// Each collection's inner format is a single specifier describing a
	// uniform element type, applied once per element of the Go slice arg.
	status := c.MakeValues(0, "(i)[i]", []any{int64(1), int64(2)}, []any{int64(9)})
	require.Equal(t, StatusOK, status)

	out, status := c.ReadValues(0, "(i)[i]")
	require.Equal(t, StatusOK, status)
	require.Equal(t, []any{
		[]any{int64(1), int64(2)},
		[]any{int64(9)},
	}, out)
}

func TestMakeValuesOptional(t *testing.T) {
	c := newTestContext(t)
	status := c.MakeValues(0, "?i", nil)
	require.Equal(t, StatusOK, status)
	require.True(t, c.builtins.IsNil(c.stack.Get(0)))

	status = c.MakeValues(1, "?i", int64(5))
	require.Equal(t, StatusOK, status)
	n, status := c.ReadInt(1)
	require.Equal(t, StatusOK, status)
	require.Equal(t, int64(5), n)
}

func TestElementOpsArray(t *testing.T) {
	c := newTestContext(t)
	arr := object.NewArray(c.heap, c.builtins, 4)
	c.stack.Set(0, object.Ref(arr))
	c.stack.Set(1, object.SmallInt(0))
	c.stack.Set(2, object.SmallInt(100))

	require.Equal(t, StatusOK, c.ElementInsert(0, 1, 2))
	require.Equal(t, 1, object.ArrayLen(arr))

	require.Equal(t, StatusOK, c.ElementGet(3, 0, 1))
	n, status := c.ReadInt(3)
	require.Equal(t, StatusOK, status)
	require.Equal(t, int64(100), n)

	c.stack.Set(4, object.SmallInt(200))
	require.Equal(t, StatusOK, c.ElementSet(0, 1, 4))
	require.Equal(t, StatusOK, c.ElementGet(3, 0, 1))
	n, _ = c.ReadInt(3)
	require.Equal(t, int64(200), n)

	require.Equal(t, StatusOK, c.ElementRemove(5, 0, 1))
	n, _ = c.ReadInt(5)
	require.Equal(t, int64(200), n)
	require.Equal(t, 0, object.ArrayLen(arr))
}

func TestElementOpsMap(t *testing.T) {
	c := newTestContext(t)
	m := object.NewMap(c.heap, c.builtins, 4)
	c.stack.Set(0, object.Ref(m))
	c.stack.Set(1, object.SmallInt(7)) // key
	c.stack.Set(2, object.SmallInt(42))

	require.Equal(t, StatusOK, c.ElementInsert(0, 1, 2))
	require.Equal(t, StatusOK, c.ElementGet(3, 0, 1))
	n, _ := c.ReadInt(3)
	require.Equal(t, int64(42), n)

	require.Equal(t, StatusOK, c.ElementRemove(4, 0, 1))
	n, _ = c.ReadInt(4)
	require.Equal(t, int64(42), n)

	require.Equal(t, StatusEIdx, c.ElementGet(3, 0, 1))
}

func TestGlobals(t *testing.T) {
	c := newTestContext(t)
	mod := object.NewModule(c.heap, c.builtins, "m", nil)
	c.stack.Set(0, object.Ref(mod))
	c.stack.Set(1, object.SmallInt(9))

	require.Equal(t, StatusOK, c.GlobalSet(0, "x", 1))
	require.Equal(t, StatusOK, c.GlobalGet(2, 0, "x"))
	n, _ := c.ReadInt(2)
	require.Equal(t, int64(9), n)

	require.Equal(t, StatusEIdx, c.GlobalGet(2, 0, "missing"))
}

func TestInvokeNativeFunction(t *testing.T) {
	c := newTestContext(t)
	ar := object.Arity{NA: 2, NO: 0, NR: 3}
	fn := object.NewNativeFunction(c.heap, c.builtins, "add", ar, func(regs []object.Value) error {
		regs[0] = object.SmallInt(regs[1].Int() + regs[2].Int())
		return nil
	})
	c.stack.Set(0, object.Ref(fn))
	c.stack.Set(1, object.SmallInt(6))
	c.stack.Set(2, object.SmallInt(7))

	status := c.Invoke([]int{3, 0, 1, 2}, 2)
	require.Equal(t, StatusOK, status)
	n, _ := c.ReadInt(3)
	require.Equal(t, int64(13), n)
}

func TestInvokePacked(t *testing.T) {
	c := newTestContext(t)
	ar := object.Arity{NA: 2, NO: 0, NR: 3}
	fn := object.NewNativeFunction(c.heap, c.builtins, "add", ar, func(regs []object.Value) error {
		regs[0] = object.SmallInt(regs[1].Int() + regs[2].Int())
		return nil
	})
	c.stack.Set(0, object.Ref(fn))
	tup := object.NewTuple(c.heap, c.builtins, []object.Value{object.SmallInt(3), object.SmallInt(4)})
	c.stack.Set(1, object.Ref(tup))

	status := c.Invoke([]int{2, 0, 1}, PackedArgc)
	require.Equal(t, StatusOK, status)
	n, _ := c.ReadInt(2)
	require.Equal(t, int64(7), n)
}

func TestInvokeOOMPanicsWithPanicOOM(t *testing.T) {
	// A native function that keeps allocating old-space objects past a
	// tiny WithMaxHeapWords ceiling must surface at Invoke's boundary as
	// a recovered *Panic with Code == PanicOOM (§4.3/§7), not as a bare
	// Go panic or a silent allocation.
	c := New(WithStackCapacity(256), WithMaxHeapWords(1), WithMaxAllocRetries(1))
	c.stack.Enter(32, -1, -1)
	defer c.Destroy()

	ar := object.Arity{NA: 0, NO: 0, NR: 1}
	fn := object.NewNativeFunction(c.heap, c.builtins, "blow", ar, func(regs []object.Value) error {
		for i := 0; i < 1000; i++ {
			object.NewModule(c.heap, c.builtins, "m", nil)
		}
		regs[0] = c.builtins.NilValue()
		return nil
	})
	c.stack.Set(0, object.Ref(fn))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		c.Invoke([]int{1, 0}, 0)
	}()

	p, ok := recovered.(*Panic)
	require.True(t, ok, "expected a *Panic, got %#v", recovered)
	require.Equal(t, PanicOOM, p.Code)
}

func TestNativeBlock(t *testing.T) {
	c := newTestContext(t)
	status := c.NativeBlock(4, func(inner *Context) error {
		n, st := inner.ReadInt(0)
		require.Equal(t, StatusOK, st)
		inner.MakeInt(0, n*2)
		return nil
	}, object.SmallInt(21))
	require.Equal(t, StatusOK, status)
}
