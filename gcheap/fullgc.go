package gcheap

import "github.com/wippy-lang/corevm/object"

// FullGC runs a complete collection over all three spaces (§4.3): a mark
// phase traces every root and its transitive closure; big space sweeps in
// place; old space mark-compacts into a fresh chunk list; and young
// survivors follow the same promotion tier a fast GC would apply — a
// surviving NEW object moves to the other semispace and becomes MID, and
// only an already-MID survivor promotes to old/big (§4.3 full GC step 5,
// "the same rules" as the fast-GC reallocation step). A final
// reference-rewrite pass follows every Forward set during the cycle and
// then clears it, so no live header carries a stale forwarding pointer
// once FullGC returns (P3).
func (h *Heap) FullGC() {
	h.fullCycles++

	marked := make(map[*object.Header]bool)
	var worklist []*object.Header
	mark := func(hdr *object.Header) {
		if hdr == nil || marked[hdr] {
			return
		}
		marked[hdr] = true
		hdr.Mark = true
		worklist = append(worklist, hdr)
	}
	visit := func(v *object.Value) {
		if v == nil || !v.IsRef() {
			return
		}
		mark(v.Header())
	}
	for _, r := range h.roots {
		r.visit(visit)
	}
	for len(worklist) > 0 {
		o := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		object.WalkChildren(o, visit)
	}

	h.big.sweep()

	newOld := newOldSpace(h.cfg.oldChunkWords)
	for _, c := range h.old.chunks {
		for _, o := range c.objs {
			if !marked[o] {
				continue
			}
			words := objectWords(o)
			clone := shallowClone(o)
			clone.State = object.StateOld
			nc := newOld.chunkWithRoom(words)
			nc.append(clone)
			nc.usedWords += words
			clone.OldChunk = nc
			o.Forward = clone
		}
	}

	h.young.free.reset()
	for _, hdr := range h.young.working.objs {
		if !marked[hdr] || hdr.Forward != nil {
			continue
		}
		words := objectWords(hdr)
		clone := shallowClone(hdr)
		if hdr.State == object.StateMid {
			if words >= h.cfg.bigObjectThreshold {
				clone.State = object.StateBig
				h.big.prepend(clone)
			} else {
				clone.State = object.StateOld
				nc := newOld.chunkWithRoom(words)
				nc.append(clone)
				nc.usedWords += words
				clone.OldChunk = nc
			}
		} else {
			clone.State = object.StateMid
			h.young.free.bumpAlloc(clone, words)
		}
		hdr.Forward = clone
	}
	h.young.working.reset()
	h.young.swap()
	h.old = newOld

	rewrite := func(v *object.Value) {
		if v == nil || !v.IsRef() {
			return
		}
		if f := v.Header().Forward; f != nil {
			*v = object.Ref(f)
		}
	}
	for _, r := range h.roots {
		r.visit(rewrite)
	}
	for _, c := range h.old.chunks {
		for _, o := range c.objs {
			object.WalkChildren(o, rewrite)
		}
	}
	for _, o := range h.big.iterAll() {
		object.WalkChildren(o, rewrite)
	}
	for _, o := range h.young.working.objs {
		object.WalkChildren(o, rewrite)
	}

	// Weak containers must see the pre-cycle addresses' Forward pointers
	// to relocate their entries, so this runs before Forward is cleared.
	for _, w := range h.weaks {
		w.visit(WeakFinalize, h.visitWeak)
	}
	for _, w := range h.weaks {
		w.visit(WeakMove, h.visitWeak)
	}

	for hdr := range marked {
		hdr.Forward = nil
		hdr.Mark = false
	}

	h.rebuildRememberedSets()
}
