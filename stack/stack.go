// Package stack implements the interpreter's call stack (§4.2): a single
// contiguous slot array with a chain of active frames tracked by a side
// list of frame-info records.
package stack

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/object"
)

// FrameInfo records what Leave needs to restore and resume the caller:
// the caller's frame pointer, the bytecode instruction pointer to resume
// at (-1 meaning "return control to the embedder"), and the absolute
// slot index the returned value must land in.
type FrameInfo struct {
	CallerFrame int
	ReturnIP    int
	RetDest     int
}

// Stack is the register file every bytecode function executes against.
// frame is the first slot of the active frame (also REG-0, the callee
// object on entry); top is the last valid slot, inclusive.
type Stack struct {
	slots     []object.Value
	frame     int
	top       int
	infos     []FrameInfo
	sentinel  object.Value
	capacity  int
}

// New allocates a stack of the given slot capacity. sentinel fills newly
// entered frames' registers before they're written (§4.2: "fill new slots
// with a sentinel small-int").
func New(capacity int) *Stack {
	return &Stack{
		slots:    make([]object.Value, capacity),
		frame:    0,
		top:      -1,
		sentinel: object.SmallInt(0),
		capacity: capacity,
	}
}

func overflow() error {
	return errors.New(errors.PhaseInvoke, errors.KindStackOverflow).Detail("call stack exhausted").Build()
}

// Enter pushes a new frame of frameSize registers, recording returnIP and
// retDest (both caller-relative bookkeeping already resolved to absolute
// terms by the caller) so Leave can resume execution. Panics with a
// *errors.Error (Kind: stack_overflow) on overflow — the corectx layer
// recovers this into panic code SOV.
func (s *Stack) Enter(frameSize, returnIP, retDest int) int {
	newFrame := s.top + 1
	newTop := newFrame + frameSize - 1
	if newTop >= s.capacity {
		panic(overflow())
	}
	s.infos = append(s.infos, FrameInfo{CallerFrame: s.frame, ReturnIP: returnIP, RetDest: retDest})
	for i := newFrame; i <= newTop; i++ {
		s.slots[i] = s.sentinel
	}
	s.frame, s.top = newFrame, newTop
	return newFrame
}

// Leave pops the active frame, writes retVal into the popped frame's
// recorded destination slot (skipped if retDest < 0), restores the
// caller's frame/top, and returns the instruction pointer to resume at
// (-1 meaning control returns to the embedder).
func (s *Stack) Leave(retVal object.Value) int {
	n := len(s.infos) - 1
	info := s.infos[n]
	s.infos = s.infos[:n]

	if info.RetDest >= 0 {
		s.slots[info.RetDest] = retVal
	}
	s.top = s.frame - 1
	s.frame = info.CallerFrame
	return info.ReturnIP
}

// AllocTemp bumps top by n slots past the active frame's own registers,
// returning the absolute index of the first new slot. FreeTemp must
// release exactly the slots the matching AllocTemp granted, strictly
// LIFO (§4.2).
func (s *Stack) AllocTemp(n int) int {
	base := s.top + 1
	if base+n-1 >= s.capacity {
		panic(overflow())
	}
	for i := base; i < base+n; i++ {
		s.slots[i] = s.sentinel
	}
	s.top = base + n - 1
	return base
}

// FreeTemp releases n slots previously granted by AllocTemp.
func (s *Stack) FreeTemp(n int) {
	s.top -= n
}

// Frame returns the active frame's base slot index.
func (s *Stack) Frame() int { return s.frame }

// Top returns the last valid slot index, inclusive.
func (s *Stack) Top() int { return s.top }

// Depth returns the number of active frames.
func (s *Stack) Depth() int { return len(s.infos) }

// InBounds reports whether register r of the active frame addresses a
// valid slot (§4.6 "frame + r <= top"; P7).
func (s *Stack) InBounds(r int) bool {
	return r >= 0 && s.frame+r <= s.top
}

// Get reads register r of the active frame.
func (s *Stack) Get(r int) object.Value { return s.slots[s.frame+r] }

// Set writes register r of the active frame.
func (s *Stack) Set(r int, v object.Value) { s.slots[s.frame+r] = v }

// GetAbs reads an absolute slot index, used by the invocation protocol
// when laying out a callee's registers before entry.
func (s *Stack) GetAbs(i int) object.Value { return s.slots[i] }

// SetAbs writes an absolute slot index.
func (s *Stack) SetAbs(i int, v object.Value) { s.slots[i] = v }

// Visit implements the gcheap.RootVisitor signature structurally (the
// stack package does not import gcheap to avoid a dependency cycle):
// every slot from absolute 0 through top is live and must be traced.
func (s *Stack) Visit(visit func(v *object.Value)) {
	for i := 0; i <= s.top; i++ {
		visit(&s.slots[i])
	}
}
