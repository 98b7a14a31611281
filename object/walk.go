package object

// WalkChildren calls visit once for every Value slot reachable directly
// from h: its generic Slots region plus any reference-bearing fields
// inside its Data payload. The GC mark/update passes use this as the
// uniform "visit one object" primitive (§4.3 GC roots/weak-refs).
//
// visit receives a pointer into the live storage so the caller may rewrite
// it in place during reference updates.
func WalkChildren(h *Header, visit func(*Value)) {
	for i := range h.Slots {
		visit(&h.Slots[i])
	}
	switch d := h.Data.(type) {
	case *MapData:
		for i := range d.Buckets {
			visit(&d.Buckets[i])
		}
	case *MapNode:
		visit(&d.Next)
		visit(&d.Key)
		visit(&d.Val)
	case *ArrayData:
		if d.Backing != nil {
			v := Ref(d.Backing)
			visit(&v)
			d.Backing = refOrNil(v)
		}
	case *FunctionData:
		for i := range d.Consts {
			visit(&d.Consts[i])
		}
		if d.Module != nil {
			v := Ref(d.Module)
			visit(&v)
			d.Module = refOrNil(v)
		}
	case *ModuleData:
		for i := range d.Globals {
			visit(&d.Globals[i])
		}
		for i, p := range d.Parents {
			if p == nil {
				continue
			}
			v := Ref(p)
			visit(&v)
			d.Parents[i] = refOrNil(v)
		}
	case *TypeDescriptor:
		for name, v := range d.Methods {
			visit(&v)
			d.Methods[name] = v
		}
		for name, v := range d.Statics {
			visit(&v)
			d.Statics[name] = v
		}
	case *RangeData:
		visit(&d.Lo)
		visit(&d.Hi)
	case *ExceptionData:
		if d.ExcType != nil {
			v := Ref(d.ExcType)
			visit(&v)
			d.ExcType = refOrNil(v)
		}
		if d.What != nil {
			v := Ref(d.What)
			visit(&v)
			d.What = refOrNil(v)
		}
		visit(&d.Payload)
	}
	// The Type field is an implicit extra child: it must survive moves of
	// the type descriptor object the same way ordinary slots do.
	if h.Type != nil && h.Type != h {
		v := Ref(h.Type)
		visit(&v)
		h.Type = refOrNil(v)
	}
}

func refOrNil(v Value) *Header {
	if v.IsRef() {
		return v.Header()
	}
	return nil
}
