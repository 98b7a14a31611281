package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/object"
)

func TestInternPointerEquality(t *testing.T) {
	// P5: intern(s) applied twice to equal byte sequences yields
	// pointer-equal Symbols.
	h := gcheap.New()
	r := New(h, h.Builtins())

	a := r.Intern([]byte("foo"))
	b := r.Intern([]byte("foo"))
	require.Same(t, a, b)

	c := r.Intern([]byte("bar"))
	require.NotSame(t, a, c)
	require.Equal(t, 2, r.Count())
}

func TestLookupMissing(t *testing.T) {
	h := gcheap.New()
	r := New(h, h.Builtins())

	_, ok := r.Lookup([]byte("nope"))
	require.False(t, ok)

	r.Intern([]byte("nope"))
	hdr, ok := r.Lookup([]byte("nope"))
	require.True(t, ok)
	require.Equal(t, "nope", string(object.StringBytes(hdr)))
}

func TestRehashPreservesLookup(t *testing.T) {
	h := gcheap.New()
	r := New(h, h.Builtins())

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r2"}
	for _, n := range names {
		r.Intern([]byte(n))
	}
	for _, n := range names {
		hdr, ok := r.Lookup([]byte(n))
		require.True(t, ok)
		require.Equal(t, n, string(object.StringBytes(hdr)))
	}
}

func TestFullGCReclaimsUnreferencedSymbol(t *testing.T) {
	h := gcheap.New()
	r := New(h, h.Builtins())

	r.Intern([]byte("transient"))
	require.Equal(t, 1, r.Count())

	h.FullGC()

	_, ok := r.Lookup([]byte("transient"))
	require.False(t, ok)
	require.Equal(t, 0, r.Count())
}
