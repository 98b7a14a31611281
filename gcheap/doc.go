// Package gcheap implements the object memory manager (§4.3): a young
// space (two-semispace copying collector), an old space (chunked
// mark-compact arena with per-chunk remembered sets), a big space
// (mark-sweep over a linked list of individually allocated objects), GC
// orchestration (fast and full cycles), the write barrier, and the root
// and weak-reference registration protocols.
//
// Object storage here is ordinary Go-managed memory (see object.Header)
// rather than a raw byte arena: each "space" is a bookkeeping structure
// over *object.Header values, and a GC cycle moves objects by allocating
// a new Header, copying its payload across, and rewriting every live
// reference from the old Header to the new one — a mark / reallocate /
// copy / update pipeline expressed over safe Go pointers instead of
// masked machine words (see DESIGN.md).
package gcheap
