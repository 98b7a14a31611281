package errors

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseArith,
				Kind:   KindTypeMismatch,
				Path:   []string{"frame", "R3"},
				Detail: "cannot compare",
			},
			contains: []string{"[arith]", "type_mismatch", "frame.R3", "cannot compare"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAlloc,
				Kind:   KindOOM,
				Detail: "young space exhausted",
				Cause:  stderrors.New("underlying error"),
			},
			contains: []string{"[alloc]", "out_of_memory", "young space exhausted", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				require.True(t, strings.Contains(msg, s), "error message %q does not contain %q", msg, s)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := &Error{Phase: PhaseDecode, Kind: KindInvalidInput, Cause: cause}

	require.ErrorIs(t, err.Unwrap(), cause)
	require.ErrorIs(t, stderrors.Unwrap(err), cause)
}

func TestError_Is(t *testing.T) {
	err := &Error{Phase: PhaseDecode, Kind: KindTypeMismatch, Path: []string{"foo"}}

	require.True(t, err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}))
	require.False(t, err.Is(&Error{Phase: PhaseGC, Kind: KindTypeMismatch}))
	require.False(t, err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}))

	target := &Error{Phase: PhaseDecode, Kind: KindTypeMismatch}
	require.True(t, stderrors.Is(err, target))
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("root")
	err := New(PhaseDecode, KindTypeMismatch).
		Path("frame", "R1").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "Int", "String").
		Build()

	require.Equal(t, PhaseDecode, err.Phase)
	require.Equal(t, KindTypeMismatch, err.Kind)
	require.Equal(t, []string{"frame", "R1"}, err.Path)
	require.Equal(t, 42, err.Value)
	require.ErrorIs(t, err.Cause, cause)
	require.Equal(t, "expected Int, got String", err.Detail)
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseArith, []string{"lhs"}, "Int", "String")
		require.Equal(t, KindTypeMismatch, err.Kind)
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, []string{"regs"}, 10, 5)
		require.Equal(t, KindOutOfBounds, err.Kind)
		require.Equal(t, 10, err.Value)
	})

	t.Run("Arity exact", func(t *testing.T) {
		err := Arity(3, 2, 2)
		require.Equal(t, KindArity, err.Kind)
		require.Contains(t, err.Detail, "want 2")
	})

	t.Run("Arity range", func(t *testing.T) {
		err := Arity(1, 2, 4)
		require.Contains(t, err.Detail, "want 2..4")
	})

	t.Run("Arity variadic", func(t *testing.T) {
		err := Arity(1, 2, -1)
		require.Contains(t, err.Detail, "at least 2")
	})

	t.Run("KeyNotFound", func(t *testing.T) {
		err := KeyNotFound(PhaseElement, 7)
		require.Equal(t, KindKeyNotFound, err.Kind)
		require.Equal(t, 7, err.Value)
	})

	t.Run("NotCallable", func(t *testing.T) {
		err := NotCallable("Int")
		require.Equal(t, KindNotCallable, err.Kind)
	})

	t.Run("Incomparable", func(t *testing.T) {
		err := Incomparable("Int", "String")
		require.Equal(t, KindIncomparable, err.Kind)
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseGlobal, "IMPSUB")
		require.Equal(t, KindUnsupported, err.Kind)
	})
}
