package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareSmallInts(t *testing.T) {
	ord, err := Compare(SmallInt(3), SmallInt(5), nil)
	require.NoError(t, err)
	require.Equal(t, LT, ord)

	ord, err = Compare(SmallInt(5), SmallInt(5), nil)
	require.NoError(t, err)
	require.Equal(t, EQ, ord)

	ord, err = Compare(SmallInt(9), SmallInt(5), nil)
	require.NoError(t, err)
	require.Equal(t, GT, ord)
}

func TestCompareNumericTotality(t *testing.T) {
	// P10: compare() over small-int/boxed-int/float never returns IC.
	lhs := SmallInt(3)
	rhs := Ref(&Header{Data: &FloatData{V: 3.5}})
	ord, err := Compare(lhs, rhs, nil)
	require.NoError(t, err)
	require.NotEqual(t, IC, ord)
	require.Equal(t, LT, ord)
}

func TestHashSmallInt(t *testing.T) {
	h, err := Hash(SmallInt(42), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(42), h)
}

func TestHashStability(t *testing.T) {
	// P9: hash(v) is invariant across repeated calls for a reachable value.
	v := Ref(&Header{Bytes: []byte("hello"), Type: &Header{Data: &TypeDescriptor{Name: "String"}}})
	h1, err := Hash(v, nil)
	require.NoError(t, err)
	h2, err := Hash(v, nil)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestHashNaNCanonical(t *testing.T) {
	a, err := Hash(Ref(&Header{Data: &FloatData{V: nan()}}), nil)
	require.NoError(t, err)
	b, err := Hash(Ref(&Header{Data: &FloatData{V: nan()}}), nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, nanHashCanonical, a)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEqualsPointerFastPath(t *testing.T) {
	h := &Header{}
	eq, err := Equals(Ref(h), Ref(h), nil)
	require.NoError(t, err)
	require.True(t, eq)
}
