package gcheap

import "go.uber.org/zap"

// config holds tunables applied by functional Options (§1.3 ambient
// config style).
type config struct {
	youngSemispaceWords int
	oldChunkWords       int
	bigObjectThreshold  int // words; objects at/above this size always go to big space (§4.3)
	maxAllocRetries     int
	maxHeapWords        int // 0 = unbounded; total young-working+old+big words beyond which old/big allocation panics OOM
	logger              *zap.Logger
}

const wordBytes = 8

func defaultConfig() *config {
	return &config{
		youngSemispaceWords: 1 << 16, // 64k words per semispace
		oldChunkWords:       1 << 14, // 16k words per chunk
		bigObjectThreshold:  1024,    // "word x 1024" per §4.3
		maxAllocRetries:     2,
		maxHeapWords:        0, // unbounded by default; an embedder opts into a ceiling
		logger:              zap.NewNop(),
	}
}

// Option configures a Heap at construction.
type Option func(*config)

// WithYoungSpaceSize sets the word capacity of each young semispace.
func WithYoungSpaceSize(words int) Option {
	return func(c *config) { c.youngSemispaceWords = words }
}

// WithOldChunkSize sets the word capacity of each old-space chunk.
func WithOldChunkSize(words int) Option {
	return func(c *config) { c.oldChunkWords = words }
}

// WithBigObjectThreshold sets the word-size threshold at or above which
// allocations always go to big space regardless of hint.
func WithBigObjectThreshold(words int) Option {
	return func(c *config) { c.bigObjectThreshold = words }
}

// WithMaxAllocRetries bounds how many GC-and-retry cycles an allocation
// attempts before panicking OOM.
func WithMaxAllocRetries(n int) Option {
	return func(c *config) { c.maxAllocRetries = n }
}

// WithMaxHeapWords bounds total heap occupancy (young working space, old
// and big); an old/big
// allocation that would exceed it triggers a full GC and retries up to
// WithMaxAllocRetries times before panicking OOM (§4.3/§7: "exceeding
// that bound panics with OOM"). Zero (the default) leaves old/big space
// unbounded, matching a host process's own memory limit instead.
func WithMaxHeapWords(words int) Option {
	return func(c *config) { c.maxHeapWords = words }
}

// WithLogger installs the *zap.Logger the Heap stores; the GC cycles
// themselves write no log entries.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}
