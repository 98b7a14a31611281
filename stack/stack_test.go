package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wippy-lang/corevm/object"
)

func TestEnterLeaveRestoresCaller(t *testing.T) {
	s := New(64)

	callerFrame := s.Enter(4, -1, -1)
	require.Equal(t, 0, callerFrame)
	s.Set(0, object.SmallInt(111))

	retDest := s.Frame() + 2 // caller's register 2 receives the call's result
	calleeFrame := s.Enter(3, 7, retDest)
	require.Equal(t, 4, calleeFrame)
	require.True(t, s.InBounds(0))
	require.True(t, s.InBounds(2))
	require.False(t, s.InBounds(3))

	ip := s.Leave(object.SmallInt(42))
	require.Equal(t, 7, ip)
	require.Equal(t, callerFrame, s.Frame())
	require.Equal(t, int64(42), s.Get(2).Int())
	require.Equal(t, int64(111), s.Get(0).Int())
}

func TestAllocFreeTempLIFO(t *testing.T) {
	s := New(16)
	s.Enter(2, -1, -1)
	require.Equal(t, 1, s.Top())

	base := s.AllocTemp(3)
	require.Equal(t, 2, base)
	require.Equal(t, 4, s.Top())

	s.FreeTemp(3)
	require.Equal(t, 1, s.Top())
}

func TestEnterOverflowPanics(t *testing.T) {
	s := New(4)
	require.Panics(t, func() { s.Enter(8, -1, -1) })
}

func TestVisitCoversLiveSlots(t *testing.T) {
	s := New(8)
	s.Enter(3, -1, -1)
	s.Set(0, object.SmallInt(5))
	s.Set(1, object.SmallInt(6))

	var seen []int64
	s.Visit(func(v *object.Value) {
		if v.IsSmallInt() {
			seen = append(seen, v.Int())
		}
	})
	require.Contains(t, seen, int64(5))
	require.Contains(t, seen, int64(6))
}
