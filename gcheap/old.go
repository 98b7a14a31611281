package gcheap

import (
	"github.com/wippy-lang/corevm/gcheap/internal/bitmap"
	"github.com/wippy-lang/corevm/object"
)

// oldChunk is one fixed-size arena chunk (§4.3): objects allocated into it
// in order, plus a lazily-allocated remembered-set bitmap keyed by each
// object's position within the chunk.
type oldChunk struct {
	objs          []*object.Header
	usedWords     int
	capacityWords int
	remembered    *bitmap.Set
	// reallocCursor is not read or written by any GC path: full-GC
	// compaction moves survivors into fresh chunks instead.
	reallocCursor int
}

func newOldChunk(capacityWords int) *oldChunk {
	return &oldChunk{capacityWords: capacityWords, remembered: bitmap.New()}
}

func (c *oldChunk) fits(words int) bool {
	return c.usedWords+words <= c.capacityWords
}

func (c *oldChunk) append(h *object.Header) int {
	idx := len(c.objs)
	c.objs = append(c.objs, h)
	return idx
}

// oldSpace is an ordered slice of chunks (§4.3).
type oldSpace struct {
	chunks      []*oldChunk
	chunkWords  int
}

func newOldSpace(chunkWords int) *oldSpace {
	return &oldSpace{chunkWords: chunkWords}
}

// chunkWithRoom returns the chunk to bump-allocate into, creating one if the
// last chunk is full or doesn't exist.
func (o *oldSpace) chunkWithRoom(words int) *oldChunk {
	if n := len(o.chunks); n > 0 {
		last := o.chunks[n-1]
		if last.fits(words) {
			return last
		}
	}
	c := newOldChunk(o.chunkWords)
	o.chunks = append(o.chunks, c)
	return c
}

func (o *oldSpace) totalWords() int {
	total := 0
	for _, c := range o.chunks {
		total += c.usedWords
	}
	return total
}
