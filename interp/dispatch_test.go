package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

func TestRunReturnsConstant(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 42, 0),
		enc(isa.OpRET, 1, 0, 0),
	}
	fn := hn.fn("f", 2, code, nil, nil)

	result, exc, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Zero(t, exc)
	require.True(t, result.IsSmallInt())
	require.Equal(t, int64(42), result.Int())
}

func TestRunRetNil(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{enc(isa.OpRETNIL, 0, 0, 0)}
	fn := hn.fn("f", 1, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, hn.b.NilValue(), result)
}

func TestArithAddFastPath(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 10, 0),
		enc(isa.OpMKINT, 2, 32, 0),
		enc(isa.OpADD, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, int64(42), result.Int())
}

func TestArithMulFastPath(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 6, 0),
		enc(isa.OpMKINT, 2, 7, 0),
		enc(isa.OpMUL, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.True(t, result.IsSmallInt())
	require.Equal(t, int64(42), result.Int())
}

func TestArithMulOverflowPromotesToBoxedInt(t *testing.T) {
	hn := newHarness(t)
	consts := []object.Value{
		object.SmallInt(object.MaxSmallInt),
		object.SmallInt(object.MaxSmallInt),
	}
	code := []uint32{
		enc(isa.OpLDCON, 1, 0, 0),
		enc(isa.OpLDCON, 2, 1, 0),
		enc(isa.OpMUL, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, consts, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.True(t, result.IsRef())
	require.Equal(t, hn.b.IntType, result.Header().Type)

	d := result.Header().Data.(*object.IntData)
	require.Equal(t, 1, d.Sign)
	// MaxSmallInt^2 needs more than two 32-bit limbs (> 64 bits of
	// magnitude), the exact case the boxed-Int representation used to be
	// unable to hold.
	require.Greater(t, len(d.Mag), 2)
}

func TestArithMulNegativeOverflowPromotesSignCorrectly(t *testing.T) {
	hn := newHarness(t)
	consts := []object.Value{
		object.SmallInt(object.MinSmallInt),
		object.SmallInt(object.MaxSmallInt),
	}
	code := []uint32{
		enc(isa.OpLDCON, 1, 0, 0),
		enc(isa.OpLDCON, 2, 1, 0),
		enc(isa.OpMUL, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, consts, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.True(t, result.IsRef())
	d := result.Header().Data.(*object.IntData)
	require.Equal(t, -1, d.Sign)
}

func TestArithDivProducesFloat(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 7, 0),
		enc(isa.OpMKINT, 2, 2, 0),
		enc(isa.OpDIV, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.True(t, result.IsRef())
	require.Equal(t, hn.b.FloatType, result.Header().Type)
}

func TestArithDivByZeroRaisesException(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 1, 0),
		enc(isa.OpMKINT, 2, 0, 0),
		enc(isa.OpDIV, 3, 1, 2),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, nil, nil)

	_, exc, hasExc := hn.run(fn)
	require.True(t, hasExc)
	require.True(t, exc.IsRef())
	require.Equal(t, hn.b.ExceptionType, exc.Header().Type)
}

func TestJmpSkipsInstruction(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpJMP, 2, 0, 0), // skip the next instruction
		enc(isa.OpMKINT, 1, 999, 0),
		enc(isa.OpMKINT, 1, 7, 0),
		enc(isa.OpRET, 1, 0, 0),
	}
	fn := hn.fn("f", 2, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, int64(7), result.Int())
}

func TestJmpCompareLT(t *testing.T) {
	hn := newHarness(t)
	// if r1 < r2 jump +3, else fall through to the "false" branch.
	code := []uint32{
		enc(isa.OpMKINT, 1, 1, 0),
		enc(isa.OpMKINT, 2, 2, 0),
		enc(isa.OpJMPLT, 1, 2, 3),
		enc(isa.OpMKINT, 3, 0, 0),
		enc(isa.OpRET, 3, 0, 0),
		enc(isa.OpMKINT, 3, 1, 0),
		enc(isa.OpRET, 3, 0, 0),
	}
	fn := hn.fn("f", 4, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, int64(1), result.Int())
}

func TestThrPropagatesAsException(t *testing.T) {
	hn := newHarness(t)
	excTypeSym := hn.syms.Intern([]byte("custom"))
	excConst := object.Ref(object.NewException(hn.heap, hn.b, excTypeSym, object.NewString(hn.heap, hn.b, []byte("boom")), hn.b.NilValue()))
	code := []uint32{
		enc(isa.OpLDCON, 1, 0, 0),
		enc(isa.OpTHR, 1, 0, 0),
	}
	fn := hn.fn("f", 2, code, []object.Value{excConst}, nil)

	_, exc, hasExc := hn.run(fn)
	require.True(t, hasExc)
	require.True(t, exc.IsRef())
	require.Equal(t, hn.b.ExceptionType, exc.Header().Type)
	trace := object.ExceptionTrace(exc.Header())
	require.Len(t, trace, 1)
	require.Equal(t, "f", trace[0].FuncName)
}

func TestNotTogglesBoolean(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpLDBLN, 1, 1, 0),
		enc(isa.OpNOT, 2, 1, 0),
		enc(isa.OpRET, 2, 0, 0),
	}
	fn := hn.fn("f", 3, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, hn.b.False, result.Header())
}

func TestNotOnNonBooleanRaisesTypeException(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 5, 0),
		enc(isa.OpNOT, 2, 1, 0),
		enc(isa.OpRET, 2, 0, 0),
	}
	fn := hn.fn("f", 3, code, nil, nil)

	_, exc, hasExc := hn.run(fn)
	require.True(t, hasExc)
	require.Equal(t, hn.b.ExceptionType, exc.Header().Type)
}

func TestNegSmallInt(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpMKINT, 1, 5, 0),
		enc(isa.OpNEG, 2, 1, 0),
		enc(isa.OpRET, 2, 0, 0),
	}
	fn := hn.fn("f", 3, code, nil, nil)

	result, _, hasExc := hn.run(fn)
	require.False(t, hasExc)
	require.Equal(t, int64(-5), result.Int())
}

func TestIllegalOperandPanicsNotThrows(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{
		enc(isa.OpRET, 99, 0, 0), // register 99 doesn't exist in a 1-register frame
	}
	fn := hn.fn("f", 1, code, nil, nil)

	require.Panics(t, func() { hn.run(fn) })
}

func TestUndefinedOpcodePanics(t *testing.T) {
	hn := newHarness(t)
	code := []uint32{0x7f} // opcode 127, outside the defined set
	fn := hn.fn("f", 1, code, nil, nil)

	require.Panics(t, func() { hn.run(fn) })
}
