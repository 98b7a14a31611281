package object

// Map is a hash map whose buckets are a Go slice of Values; each
// bucket holds Nil or the head of a singly linked MapNode chain (§3.4).
// Map's own Data payload (MapData) tracks the bucket vector directly
// rather than re-deriving it from a slots[0] field, since buckets need no
// additional Map-level slots beyond the node graph itself.

// NewMap builds an empty Map with bucketCount initial buckets.
func NewMap(a Allocator, b *Builtins, bucketCount int) *Header {
	if bucketCount < 1 {
		bucketCount = 8
	}
	buckets := make([]Value, bucketCount)
	fillNil(buckets, b)
	return a.AllocData(b.MapType, &MapData{Buckets: buckets, LoadFactor: DefaultMapLoadFactor}, HintAuto)
}

func mapData(h *Header) *MapData { return h.Data.(*MapData) }

// MapCount returns the number of entries.
func MapCount(h *Header) int { return mapData(h).Count }

// MapGet looks up key, dispatching equality via eq (from object.Equals).
func MapGet(h *Header, key Value, hash uint64, eq func(a, b Value) (bool, error)) (Value, bool, error) {
	d := mapData(h)
	idx := hash % uint64(len(d.Buckets))
	cur := d.Buckets[idx]
	for cur.IsRef() {
		node := cur.Header().Data.(*MapNode)
		if node.Hash == hash {
			ok, err := eq(node.Key, key)
			if err != nil {
				return Value{}, false, err
			}
			if ok {
				return node.Val, true, nil
			}
		}
		cur = node.Next
	}
	return Value{}, false, nil
}

// MapSet inserts or overwrites key->val, resizing when the load factor is
// exceeded and a collision occurs in the target bucket (§3.4). b must be
// the same Builtins used to allocate h.
func MapSet(a Allocator, b *Builtins, h *Header, key, val Value, hash uint64, eq func(a, b Value) (bool, error)) error {
	d := mapData(h)
	idx := hash % uint64(len(d.Buckets))
	cur := d.Buckets[idx]
	hadCollision := cur.IsRef()
	for cur.IsRef() {
		node := cur.Header().Data.(*MapNode)
		if node.Hash == hash {
			ok, err := eq(node.Key, key)
			if err != nil {
				return err
			}
			if ok {
				node.Val = val
				a.WriteBarrier(cur.Header(), val)
				return nil
			}
		}
		cur = node.Next
	}

	node := &MapNode{Next: d.Buckets[idx], Key: key, Val: val, Hash: hash}
	nh := a.AllocData(b.MapNodeType, node, HintAuto)
	d.Buckets[idx] = Ref(nh)
	a.WriteBarrier(h, Ref(nh))
	d.Count++

	if hadCollision && float64(d.Count) >= float64(len(d.Buckets))*d.LoadFactor {
		mapResize(a, b, h, len(d.Buckets)*2)
	}
	return nil
}

// MapRemove deletes key if present, returning whether it was found.
func MapRemove(h *Header, key Value, hash uint64, eq func(a, b Value) (bool, error)) (bool, error) {
	d := mapData(h)
	idx := hash % uint64(len(d.Buckets))
	var prev *MapNode
	cur := d.Buckets[idx]
	for cur.IsRef() {
		node := cur.Header().Data.(*MapNode)
		if node.Hash == hash {
			ok, err := eq(node.Key, key)
			if err != nil {
				return false, err
			}
			if ok {
				if prev == nil {
					d.Buckets[idx] = node.Next
				} else {
					prev.Next = node.Next
				}
				d.Count--
				return true, nil
			}
		}
		prev = node
		cur = node.Next
	}
	return false, nil
}

func mapResize(a Allocator, b *Builtins, h *Header, newBucketCount int) {
	d := mapData(h)
	nb := make([]Value, newBucketCount)
	fillNil(nb, b)
	for _, head := range d.Buckets {
		cur := head
		for cur.IsRef() {
			node := cur.Header().Data.(*MapNode)
			next := node.Next
			idx := node.Hash % uint64(newBucketCount)
			node.Next = nb[idx]
			nb[idx] = cur
			cur = next
		}
	}
	d.Buckets = nb
}

// MapForEach iterates entries in bucket-then-chain order. MapSet prepends
// new nodes and a resize re-threads the chains, so the order is not
// insertion order.
func MapForEach(h *Header, f func(key, val Value) error) error {
	d := mapData(h)
	for _, head := range d.Buckets {
		cur := head
		for cur.IsRef() {
			node := cur.Header().Data.(*MapNode)
			if err := f(node.Key, node.Val); err != nil {
				return err
			}
			cur = node.Next
		}
	}
	return nil
}
