package corectx

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance. It uses a no-op logger by
// default (§1.2).
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger. Call before creating any
// Context that doesn't pass its own WithLogger option.
func SetLogger(l *zap.Logger) {
	logger = l
}

// debugEnabled gates Debug-level tracing of Invoke calls.
// Named apart from the stdlib runtime/debug package this file's package
// also imports elsewhere (callables.go's panic-trace capture).
var debugEnabled = false

func debugf(format string, args ...any) {
	if debugEnabled {
		Logger().Sugar().Debugf(format, args...)
	}
}
