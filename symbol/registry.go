// Package symbol implements the interned, weakly-held Symbol registry
// (§4.4): a process-wide name space with bucketed lookup, backed by a
// GC-aware weak-ref container rather than a static name list.
package symbol

import (
	"bytes"

	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/object"
)

const defaultBucketCount = 16
const loadFactor = 0.9

// Registry is a chained hash set of Symbol headers, reachable only
// weakly: the GC may reclaim a Symbol once nothing else references it,
// at which point the registry's entry is excised on the next cycle
// (§4.4 P5, "if no reference is retained, the Symbol is eventually
// reclaimed").
type Registry struct {
	heap     *gcheap.Heap
	builtins *object.Builtins
	buckets  [][]*object.Header
	count    int
}

// New builds an empty registry and registers it as a weak-ref container
// with h.
func New(h *gcheap.Heap, b *object.Builtins) *Registry {
	r := &Registry{
		heap:     h,
		builtins: b,
		buckets:  make([][]*object.Header, defaultBucketCount),
	}
	h.RegisterWeak(r, r.visit)
	return r
}

func (r *Registry) bucketIndex(hash uint64) int {
	return int(hash % uint64(len(r.buckets)))
}

// Intern returns the canonical Symbol for s, allocating and inserting a
// new one on first use. Equal byte sequences always yield the same
// Header pointer (P5), checked by content since a prior Symbol for these
// bytes may have been collected.
func (r *Registry) Intern(s []byte) *object.Header {
	hash := object.HashBytes(s)
	idx := r.bucketIndex(hash)
	for _, hdr := range r.buckets[idx] {
		if hdr.Data.(*object.SymbolData).Hash == hash && bytes.Equal(object.StringBytes(hdr), s) {
			return hdr
		}
	}

	hdr := object.NewSymbolUnchecked(r.heap, r.builtins, s, hash)
	r.buckets[idx] = append(r.buckets[idx], hdr)
	r.count++
	if float64(r.count) >= float64(len(r.buckets))*loadFactor {
		r.rehash(len(r.buckets) * 2)
	}
	return hdr
}

// Lookup finds an already-interned Symbol without allocating, for callers
// (e.g. bytecode symbol-table loading) that need to know whether a name
// was previously interned.
func (r *Registry) Lookup(s []byte) (*object.Header, bool) {
	hash := object.HashBytes(s)
	idx := r.bucketIndex(hash)
	for _, hdr := range r.buckets[idx] {
		if hdr.Data.(*object.SymbolData).Hash == hash && bytes.Equal(object.StringBytes(hdr), s) {
			return hdr, true
		}
	}
	return nil, false
}

// Count returns the number of currently interned symbols.
func (r *Registry) Count() int { return r.count }

func (r *Registry) rehash(newBucketCount int) {
	nb := make([][]*object.Header, newBucketCount)
	for _, bucket := range r.buckets {
		for _, hdr := range bucket {
			hash := hdr.Data.(*object.SymbolData).Hash
			idx := int(hash % uint64(newBucketCount))
			nb[idx] = append(nb[idx], hdr)
		}
	}
	r.buckets = nb
}

// visit implements gcheap.WeakVisitor. Symbols are always allocated
// old/survivor (never young), so a fast GC's WeakFinalizeYoung pass is a
// no-op for every entry; only a full GC's WeakFinalize/WeakMove can
// actually reclaim or relocate a Symbol.
func (r *Registry) visit(op gcheap.WeakOp, visit gcheap.WeakVisit) {
	switch op {
	case gcheap.WeakMove:
		for _, bucket := range r.buckets {
			for i, hdr := range bucket {
				if newHdr, alive := visit(hdr); alive {
					bucket[i] = newHdr
				}
			}
		}
	case gcheap.WeakFinalizeYoung:
		// no-op: see doc comment above.
	case gcheap.WeakFinalize:
		for bi, bucket := range r.buckets {
			kept := bucket[:0]
			for _, hdr := range bucket {
				if _, alive := visit(hdr); alive {
					kept = append(kept, hdr)
				} else {
					r.count--
				}
			}
			r.buckets[bi] = kept
		}
	}
}
