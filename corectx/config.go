package corectx

import (
	"go.uber.org/zap"

	"github.com/wippy-lang/corevm/gcheap"
)

// config holds Context construction tunables, applied by functional
// Options over hard-coded defaults (§1.3 ambient config style).
type config struct {
	stackCapacity int
	loader        Loader
	logger        *zap.Logger
	gcOpts        []gcheap.Option
}

func defaultConfig() *config {
	return &config{
		stackCapacity: 1 << 16, // 64k register slots
		logger:        Logger(),
	}
}

// Option configures a Context at construction.
type Option func(*config)

// WithStackCapacity sets the call stack's total register-slot capacity
// (§4.2). Exhausting it panics with a catchable-at-the-boundary (but not
// at bytecode level) stack-overflow condition — the register stack is the
// sole source of SOV panics, so there is no separate Go-call-depth knob.
func WithStackCapacity(n int) Option {
	return func(c *config) { c.stackCapacity = n }
}

// WithLoader installs the module loader IMP dispatches to (§4.6
// "Module"; the loader itself is an external collaborator supplied by
// the embedder). Defaults to an empty MapLoader.
func WithLoader(l Loader) Option {
	return func(c *config) { c.loader = l }
}

// WithLogger installs the *zap.Logger this Context hands to its Heap and
// Machine, overriding the package default.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithYoungSpaceSize, WithOldChunkSize, and WithBigObjectThreshold
// forward directly to gcheap.Heap's own options (§4.3), so an embedder
// can tune GC geometry without importing gcheap itself.
func WithYoungSpaceSize(words int) Option {
	return func(c *config) { c.gcOpts = append(c.gcOpts, gcheap.WithYoungSpaceSize(words)) }
}

func WithOldChunkSize(words int) Option {
	return func(c *config) { c.gcOpts = append(c.gcOpts, gcheap.WithOldChunkSize(words)) }
}

func WithBigObjectThreshold(words int) Option {
	return func(c *config) { c.gcOpts = append(c.gcOpts, gcheap.WithBigObjectThreshold(words)) }
}

// WithMaxHeapWords forwards to gcheap.WithMaxHeapWords, bounding total
// heap occupancy (young working, old and big) so that exceeding it panics
// OOM (§4.3/§7) instead of growing without limit.
func WithMaxHeapWords(words int) Option {
	return func(c *config) { c.gcOpts = append(c.gcOpts, gcheap.WithMaxHeapWords(words)) }
}

// WithMaxAllocRetries forwards to gcheap.WithMaxAllocRetries.
func WithMaxAllocRetries(n int) Option {
	return func(c *config) { c.gcOpts = append(c.gcOpts, gcheap.WithMaxAllocRetries(n)) }
}
