package gcheap

import "github.com/wippy-lang/corevm/object"

// semispace is one of young space's two equal-size bump-allocated chunks
// (§4.3). objs records allocation order (used during reference-update
// sweeps); used tracks consumed word budget against capacityWords.
type semispace struct {
	objs          []*object.Header
	usedWords     int
	capacityWords int
}

func newSemispace(capacityWords int) *semispace {
	return &semispace{capacityWords: capacityWords}
}

func (s *semispace) fits(words int) bool {
	return s.usedWords+words <= s.capacityWords
}

func (s *semispace) bumpAlloc(h *object.Header, words int) {
	s.objs = append(s.objs, h)
	s.usedWords += words
}

func (s *semispace) reset() {
	s.objs = s.objs[:0]
	s.usedWords = 0
}

// youngSpace holds the working (currently allocating into) and free
// (target of the next fast GC) semispaces (§4.3).
type youngSpace struct {
	working *semispace
	free    *semispace
}

func newYoungSpace(capacityWords int) *youngSpace {
	return &youngSpace{
		working: newSemispace(capacityWords),
		free:    newSemispace(capacityWords),
	}
}

func (y *youngSpace) swap() {
	y.working, y.free = y.free, y.working
}
