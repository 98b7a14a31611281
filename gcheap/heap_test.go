package gcheap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wippy-lang/corevm/object"
)

func TestBootstrapBuiltins(t *testing.T) {
	h := New()
	b := h.Builtins()
	require.NotNil(t, b.TypeType)
	require.Same(t, b.TypeType, b.TypeType.Type)
	require.Equal(t, "Nil", b.NilType.TypeData().Name)
	require.True(t, b.IsNil(b.NilValue()))
	require.True(t, b.IsBool(b.True_()))
	require.False(t, b.IsBool(b.NilValue()))
}

func TestAllocSlotsAndExtendable(t *testing.T) {
	h := New()
	b := h.Builtins()

	arr := object.NewArray(h, b, 4)
	require.Equal(t, 0, object.ArrayLen(arr))
	object.ArrayAppend(h, b, arr, object.SmallInt(1))
	object.ArrayAppend(h, b, arr, object.SmallInt(2))
	v, ok := object.ArrayAt(arr, 1)
	require.True(t, ok)
	require.Equal(t, int64(2), v.Int())

	tup := object.NewTuple(h, b, []object.Value{object.SmallInt(1), object.SmallInt(2), object.SmallInt(3)})
	require.Equal(t, 3, object.TupleLen(tup))
	require.Equal(t, int64(2), object.TupleAt(tup, 1).Int())
}

func TestAllocHuge(t *testing.T) {
	h := New(WithBigObjectThreshold(4))
	b := h.Builtins()
	arr := object.NewArray(h, b, 64)
	backing := arr.Slots[0].Header()
	require.Equal(t, object.StateBig, backing.State)
}

func TestYoungAllocPanicsOOMAfterRetriesExhausted(t *testing.T) {
	// A semispace too small to ever hold this allocation can't be fixed by
	// any number of fast GCs (they don't grow capacity), so place() must
	// give up after maxAllocRetries instead of silently rerouting to old
	// space (§4.3/§7: "exceeding that bound panics with OOM").
	h := New(WithYoungSpaceSize(2), WithMaxAllocRetries(1))
	b := h.Builtins()

	require.Panics(t, func() { object.NewArray(h, b, 64) })
}

func TestOldSpaceAllocPanicsOOMWhenHeapWordsExceeded(t *testing.T) {
	h := New(WithMaxHeapWords(1), WithMaxAllocRetries(1))
	b := h.Builtins()

	require.Panics(t, func() { object.NewModule(h, b, "m", nil) })
}

func TestOldSpaceAllocUnboundedByDefault(t *testing.T) {
	// With no WithMaxHeapWords configured, old/big placement never fails
	// here regardless of how much is allocated.
	h := New()
	b := h.Builtins()

	require.NotPanics(t, func() {
		for i := 0; i < 50; i++ {
			object.NewModule(h, b, "m", nil)
		}
	})
}

func TestWriteBarrierMarksRememberedSet(t *testing.T) {
	h := New()
	b := h.Builtins()

	mod := object.NewModule(h, b, "m", nil)
	require.Equal(t, object.StateOld, mod.State)

	young := object.NewArray(h, b, 1)
	require.Equal(t, object.StateNew, young.State)

	object.ModuleDefineGlobal(mod, "x", object.Ref(young))
	h.WriteBarrier(mod, object.Ref(young))

	c, ok := mod.OldChunk.(*oldChunk)
	require.True(t, ok)
	found := false
	for i, o := range c.objs {
		if o == mod {
			found = c.remembered.Has(i)
		}
	}
	require.True(t, found)
}
