package gcheap

import "github.com/wippy-lang/corevm/object"

// RootVisitor walks a root's internal object references, calling visit
// once per reachable Value slot (§4.3 GC roots). The GC supplies visit;
// implementations (the call stack, a pinned handle table, ...) need not
// know whether a cycle is marking, mark-young, or moving.
type RootVisitor func(visit func(v *object.Value))

type registeredRoot struct {
	owner any
	visit RootVisitor
}

// RegisterRoot adds a GC root. owner is an opaque key used only by
// UnregisterRoot to find it again.
func (h *Heap) RegisterRoot(owner any, visit RootVisitor) {
	h.roots = append(h.roots, registeredRoot{owner: owner, visit: visit})
}

// UnregisterRoot removes a previously registered root.
func (h *Heap) UnregisterRoot(owner any) {
	for i, r := range h.roots {
		if r.owner == owner {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}
