package gcheap

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
	"go.uber.org/zap"
)

// headerWords is the fixed word cost charged against space budgets for
// every object's two meta words (§3.2 meta word 1 / meta word 2).
const headerWords = 2

// Heap is the object memory manager (§4.3): young space (two semispaces),
// old space (chunked arena), big space (mark-sweep list), registered GC
// roots, registered weak-ref containers, and the shared built-in type
// table. It implements object.Allocator so the object package's built-in
// constructors can allocate without depending on gcheap.
type Heap struct {
	young *youngSpace
	old   *oldSpace
	big   *bigSpace

	roots []registeredRoot
	weaks []registeredWeak

	builtins *object.Builtins
	cfg      *config

	log *zap.Logger

	fastCycles int
	fullCycles int
}

// New builds a Heap and bootstraps the built-in type table. The
// WithMaxHeapWords ceiling is not applied while the built-ins are created;
// afterwards, an old/big allocation that still exceeds it once the GC
// retries are used up panics with an OOM *errors.Error.
func New(opts ...Option) *Heap {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	h := &Heap{
		young: newYoungSpace(cfg.youngSemispaceWords),
		old:   newOldSpace(cfg.oldChunkWords),
		big:   &bigSpace{},
		cfg:   cfg,
		log:   cfg.logger,
	}
	limit := cfg.maxHeapWords
	cfg.maxHeapWords = 0
	h.builtins = h.bootstrap()
	h.registerBuiltinsRoot()
	cfg.maxHeapWords = limit
	return h
}

// registerBuiltinsRoot roots every built-in TypeDescriptor header and the
// Nil/True/False singletons. Without this, a type with no live instance at
// GC time (e.g. Exception, before any error has been thrown) would have no
// other root keeping its descriptor reachable, and a full GC would discard
// it from old space out from under the Builtins table.
func (h *Heap) registerBuiltinsRoot() {
	b := h.builtins
	h.RegisterRoot(b, func(visit func(v *object.Value)) {
		fields := []**object.Header{
			&b.TypeType, &b.NilType, &b.BoolType, &b.IntType, &b.FloatType,
			&b.StringType, &b.SymbolType, &b.TupleType, &b.ArraySlotsType,
			&b.ArrayType, &b.MapNodeType, &b.MapType, &b.FunctionType,
			&b.ModuleType, &b.ExceptionType, &b.RangeType, &b.Nil, &b.True, &b.False,
		}
		for _, f := range fields {
			if *f == nil {
				continue
			}
			v := object.Ref(*f)
			visit(&v)
			*f = v.Header()
		}
	})
}

// Builtins returns the shared built-in type/singleton table.
func (h *Heap) Builtins() *object.Builtins { return h.builtins }

func wordsForSlots(n int) int { return n }

func wordsForBytes(n int) int { return (n + wordBytes - 1) / wordBytes }

// chooseState decides which space an allocation of the given word size
// and hint/survivor-preference lands in (§3.6 promotion policy, §4.3).
func (h *Heap) chooseState(words int, hint object.AllocHint, survivorHint bool) object.GCState {
	if hint == object.HintHuge || words >= h.cfg.bigObjectThreshold {
		return object.StateBig
	}
	if hint == object.HintSurvivor || survivorHint {
		return object.StateOld
	}
	return object.StateNew
}

// totalWords reports the heap's current occupancy across all three spaces,
// the figure WithMaxHeapWords's ceiling is checked against.
func (h *Heap) totalWords() int {
	return h.young.working.usedWords + h.old.totalWords() + h.big.totalWords()
}

// place allocates hdr's bookkeeping (space membership) according to state.
// Each bucket retries against the GC that can reclaim its space (fast for
// young, full for old/big) up to maxAllocRetries times before panicking
// OOM (§4.3 Allocation, §7): young space retries until it has room; old/big
// space only retries when a heap-wide word ceiling (WithMaxHeapWords) is
// configured and would otherwise be exceeded — left at its zero-value
// default, old/big placement never fails here, deferring to the host
// process's own memory limit instead.
func (h *Heap) place(hdr *object.Header, words int, state object.GCState) {
	switch state {
	case object.StateBig:
		h.placeOldOrBig(hdr, words, state)
	case object.StateOld:
		h.placeOldOrBig(hdr, words, state)
	default: // StateNew
		attempts := 0
		for !h.young.working.fits(words) {
			if attempts >= h.cfg.maxAllocRetries {
				panic(errOOM)
			}
			h.FastGC()
			attempts++
		}
		hdr.State = object.StateNew
		h.young.working.bumpAlloc(hdr, words)
	}
}

func (h *Heap) placeOldOrBig(hdr *object.Header, words int, state object.GCState) {
	attempts := 0
	for h.cfg.maxHeapWords > 0 && h.totalWords()+words > h.cfg.maxHeapWords {
		if attempts >= h.cfg.maxAllocRetries {
			panic(errOOM)
		}
		h.FullGC()
		attempts++
	}
	if state == object.StateBig {
		hdr.State = object.StateBig
		h.big.prepend(hdr)
		return
	}
	hdr.State = object.StateOld
	c := h.old.chunkWithRoom(words)
	c.append(hdr)
	hdr.OldChunk = c
	c.usedWords += words
}

func (h *Heap) AllocSlots(typ *object.Header, n int, hint object.AllocHint) *object.Header {
	words := headerWords + wordsForSlots(n)
	survivor := typ.Data.(*object.TypeDescriptor).SurvivorHint
	hdr := &object.Header{Type: typ, Slots: make([]object.Value, n)}
	h.place(hdr, words, h.chooseState(words, hint, survivor))
	return hdr
}

func (h *Heap) AllocExtendableSlots(typ *object.Header, n int, hint object.AllocHint) *object.Header {
	total := n + 1
	words := headerWords + wordsForSlots(total)
	survivor := typ.Data.(*object.TypeDescriptor).SurvivorHint
	slots := make([]object.Value, total)
	slots[0] = object.SmallInt(int64(total))
	hdr := &object.Header{Type: typ, Slots: slots}
	h.place(hdr, words, h.chooseState(words, hint, survivor))
	return hdr
}

func (h *Heap) AllocBytes(typ *object.Header, data []byte, hint object.AllocHint) *object.Header {
	words := headerWords + wordsForBytes(len(data))
	survivor := typ.Data.(*object.TypeDescriptor).SurvivorHint
	buf := make([]byte, len(data))
	copy(buf, data)
	hdr := &object.Header{Type: typ, Bytes: buf}
	h.place(hdr, words, h.chooseState(words, hint, survivor))
	return hdr
}

func (h *Heap) AllocData(typ *object.Header, data any, hint object.AllocHint) *object.Header {
	words := headerWords + 1
	survivor := typ.Data.(*object.TypeDescriptor).SurvivorHint
	hdr := &object.Header{Type: typ, Data: data}
	h.place(hdr, words, h.chooseState(words, hint, survivor))
	return hdr
}

// WriteBarrier records obj -> val in the appropriate remembered set when
// an old or big object comes to reference a young one (§4.3). It must be
// called after every mutating store into an existing object's slots.
func (h *Heap) WriteBarrier(obj *object.Header, val object.Value) {
	if obj == nil || !val.IsRef() {
		return
	}
	target := val.Header()
	if target.State != object.StateNew && target.State != object.StateMid {
		return
	}
	switch obj.State {
	case object.StateOld:
		c, ok := obj.OldChunk.(*oldChunk)
		if !ok {
			return
		}
		for i, o := range c.objs {
			if o == obj {
				c.remembered.Set(i)
				return
			}
		}
	case object.StateBig:
		obj.ContainsYoung = true
	}
}

// Stats is a point-in-time snapshot of heap occupancy, exposed for
// embedders that want to observe GC behavior (e.g. an interactive
// inspector). It takes no heap invariant into account beyond what's
// already tracked for allocation decisions, so reading it never perturbs
// GC state.
type Stats struct {
	YoungWorkingWords, YoungCapacityWords int
	OldChunks                             int
	OldUsedWords                          int
	BigObjects                            int
	FastCycles, FullCycles                int
}

// Stats reports current occupancy of every space plus cumulative GC cycle
// counts, drawn from the same counters `chooseState`/`place` consult.
func (h *Heap) Stats() Stats {
	return Stats{
		YoungWorkingWords:   h.young.working.usedWords,
		YoungCapacityWords:  h.young.working.capacityWords,
		OldChunks:           len(h.old.chunks),
		OldUsedWords:        h.old.totalWords(),
		BigObjects:          h.big.count,
		FastCycles:          h.fastCycles,
		FullCycles:          h.fullCycles,
	}
}

var errOOM = errors.New(errors.PhaseAlloc, errors.KindOOM).Detail("heap exhausted").Build()
