package gcheap

import "github.com/wippy-lang/corevm/object"

// objectWords approximates an already-allocated header's word cost from its
// payload shape, mirroring the accounting AllocSlots/AllocBytes/AllocData
// charged at creation time.
func objectWords(hdr *object.Header) int {
	switch {
	case hdr.Slots != nil:
		return headerWords + wordsForSlots(len(hdr.Slots))
	case hdr.Bytes != nil:
		return headerWords + wordsForBytes(len(hdr.Bytes))
	default:
		return headerWords + 1
	}
}

func shallowClone(hdr *object.Header) *object.Header {
	clone := &object.Header{Type: hdr.Type, Data: hdr.Data}
	if hdr.Slots != nil {
		clone.Slots = append([]object.Value(nil), hdr.Slots...)
	}
	if hdr.Bytes != nil {
		clone.Bytes = append([]byte(nil), hdr.Bytes...)
	}
	return clone
}

func isYoung(hdr *object.Header) bool {
	return hdr.State == object.StateNew || hdr.State == object.StateMid
}

// FastGC runs a young-only collection (§4.3): survivors of the working
// semispace are evacuated into the free semispace (NEW objects, becoming
// MID) or promoted directly into old/big space (objects already MID),
// after which the two semispaces swap roles. Roots and old/big remembered
// sets supply the initial reference set; WalkChildren propagates the scan
// transitively. P3 (no dangling Forward after a cycle completes) holds
// because every Forward set during the cycle is cleared in the final pass.
func (h *Heap) FastGC() {
	h.fastCycles++
	from := h.young.working
	to := h.young.free
	to.reset()

	var toScan []*object.Header
	var promotedScan []*object.Header

	forwardOne := func(hdr *object.Header) *object.Header {
		if hdr == nil || !isYoung(hdr) {
			return hdr
		}
		if hdr.Forward != nil {
			return hdr.Forward
		}
		words := objectWords(hdr)
		if hdr.State == object.StateMid {
			state := object.StateOld
			if words >= h.cfg.bigObjectThreshold {
				state = object.StateBig
			}
			clone := shallowClone(hdr)
			h.place(clone, words, state)
			hdr.Forward = clone
			promotedScan = append(promotedScan, clone)
			return clone
		}
		clone := shallowClone(hdr)
		clone.State = object.StateMid
		to.bumpAlloc(clone, words)
		hdr.Forward = clone
		toScan = append(toScan, clone)
		return clone
	}

	visit := func(v *object.Value) {
		if v == nil || !v.IsRef() {
			return
		}
		src := v.Header()
		if !isYoung(src) {
			return
		}
		*v = object.Ref(forwardOne(src))
	}

	for _, r := range h.roots {
		r.visit(visit)
	}
	for _, c := range h.old.chunks {
		c.remembered.Each(func(idx int) {
			if idx < len(c.objs) {
				object.WalkChildren(c.objs[idx], visit)
			}
		})
	}
	for _, obj := range h.big.iterAll() {
		if obj.ContainsYoung {
			object.WalkChildren(obj, visit)
		}
	}

	for i := 0; i < len(toScan); i++ {
		object.WalkChildren(toScan[i], visit)
	}
	for i := 0; i < len(promotedScan); i++ {
		object.WalkChildren(promotedScan[i], visit)
	}

	for _, w := range h.weaks {
		w.visit(WeakFinalizeYoung, h.visitWeak)
	}
	for _, w := range h.weaks {
		w.visit(WeakMove, h.visitWeak)
	}

	for _, hdr := range from.objs {
		hdr.Forward = nil
	}
	from.reset()
	h.young.swap()
	h.rebuildRememberedSets()
}

// rebuildRememberedSets clears and re-derives each old chunk's remembered
// bitmap after a fast GC, since young addresses it pointed at have moved
// or promoted (§4.3: the remembered set tracks OLD/BIG -> young edges,
// which must reflect the post-GC graph before the next write barrier
// relies on it).
func (h *Heap) rebuildRememberedSets() {
	for _, c := range h.old.chunks {
		c.remembered.Clear()
		for i, obj := range c.objs {
			containsYoung := false
			object.WalkChildren(obj, func(v *object.Value) {
				if v.IsRef() && isYoung(v.Header()) {
					containsYoung = true
				}
			})
			if containsYoung {
				c.remembered.Set(i)
			}
		}
	}
	for _, obj := range h.big.iterAll() {
		containsYoung := false
		object.WalkChildren(obj, func(v *object.Value) {
			if v.IsRef() && isYoung(v.Header()) {
				containsYoung = true
			}
		})
		obj.ContainsYoung = containsYoung
	}
}
