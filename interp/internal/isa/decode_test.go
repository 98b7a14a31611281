package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		op      Op
		a, b, c int
	}{
		{OpLDNIL, 3, 5, 0},
		{OpMKINT, 2, -17, 0},
		{OpADD, 1, 2, 3},
		{OpJMPLE, 4, 5, -9},
		{OpJMP, 0, 0, 0},
	}
	for _, c := range cases {
		word := Encode(c.op, c.a, c.b, c.c)
		in := Decode(word)
		require.Equal(t, c.op, in.Op)
		require.Equal(t, c.a, in.A)
		require.Equal(t, c.b, in.B)
		require.Equal(t, c.c, in.C)
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	in := Decode(0x7f) // opcode 127, never assigned a shape
	require.Equal(t, OpInvalid, in.Op)
}

func TestRewriteIndexedPreservesRegisterSlot(t *testing.T) {
	word := RewriteIndexed(OpLDGLBX, 6, 65535)
	in := Decode(word)
	require.Equal(t, OpLDGLBX, in.Op)
	require.Equal(t, 6, in.A)
	require.Equal(t, 65535, in.B)
}

func TestSignedShapeNegativeOffset(t *testing.T) {
	word := Encode(OpJMP, -100, 0, 0)
	in := Decode(word)
	require.Equal(t, -100, in.A)
}
