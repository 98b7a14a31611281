package gcheap

import "github.com/wippy-lang/corevm/object"

// bigSpace is a singly linked list of individually allocated objects,
// threaded through Header.Next (§4.3's meta-word-2 successor pointer).
type bigSpace struct {
	head  *object.Header
	count int
}

// iterAll returns every live object currently in big space.
func (b *bigSpace) iterAll() []*object.Header {
	objs := make([]*object.Header, 0, b.count)
	for cur := b.head; cur != nil; cur = cur.Next {
		objs = append(objs, cur)
	}
	return objs
}

func (b *bigSpace) prepend(h *object.Header) {
	h.Next = b.head
	b.head = h
	b.count++
}

// totalWords sums the approximate word cost of every live big-space
// object, for the heap-wide occupancy check WithMaxHeapWords gates on.
func (b *bigSpace) totalWords() int {
	total := 0
	for cur := b.head; cur != nil; cur = cur.Next {
		total += objectWords(cur)
	}
	return total
}

// sweep walks the list, dropping unmarked objects and clearing marks and
// the contains-young flag on survivors (§4.3 full GC step 3).
func (b *bigSpace) sweep() {
	var head *object.Header
	var tail *object.Header
	count := 0
	for cur := b.head; cur != nil; {
		next := cur.Next
		if cur.Mark {
			cur.Mark = false
			cur.ContainsYoung = false
			cur.Next = nil
			if head == nil {
				head = cur
			} else {
				tail.Next = cur
			}
			tail = cur
			count++
		}
		cur = next
	}
	b.head = head
	b.count = count
}
