package gcheap

import "github.com/wippy-lang/corevm/object"

// WeakOp selects the operation a GC cycle asks a weak-ref container to
// perform (§4.3 weak references).
type WeakOp int

const (
	// WeakFinalize excises entries unreached by a full GC.
	WeakFinalize WeakOp = iota
	// WeakFinalizeYoung excises entries unreached by a fast GC, restricted
	// to young objects.
	WeakFinalizeYoung
	// WeakMove updates surviving entries to their post-GC address.
	WeakMove
)

// WeakVisit is the uniform "visit one weak ref" primitive (§4.3): given the
// currently-held object, it reports whether the object is still live, and
// if it moved, what its new Header is. Containers call this once per
// entry and act on the result (drop dead entries, rewrite moved ones).
type WeakVisit func(h *object.Header) (newHeader *object.Header, alive bool)

// WeakVisitor lets a weak-ref container iterate its own entries and ask
// the GC about each one via visit.
type WeakVisitor func(op WeakOp, visit WeakVisit)

type registeredWeak struct {
	owner any
	visit WeakVisitor
}

// RegisterWeak adds a weak-reference container (e.g. the symbol registry).
func (h *Heap) RegisterWeak(owner any, visit WeakVisitor) {
	h.weaks = append(h.weaks, registeredWeak{owner: owner, visit: visit})
}

// UnregisterWeak removes a previously registered weak container.
func (h *Heap) UnregisterWeak(owner any) {
	for i, w := range h.weaks {
		if w.owner == owner {
			h.weaks = append(h.weaks[:i], h.weaks[i+1:]...)
			return
		}
	}
}

// visitWeak implements the WeakVisit contract for a given op: alive
// reflects the object's mark bit (for Finalize/FinalizeYoung) and
// newHeader reflects its Forward pointer (for Move).
func (h *Heap) visitWeak(op WeakOp, obj *object.Header) (*object.Header, bool) {
	switch op {
	case WeakMove:
		if obj.Forward != nil {
			return obj.Forward, true
		}
		return obj, true
	default: // WeakFinalize, WeakFinalizeYoung
		return nil, obj.Mark
	}
}
