// Package logctx carries zerolog loggers through context.Context so the
// parsing layers can emit per-record diagnostics without threading a
// logger argument through every call.
package logctx

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

var (
	fallback     zerolog.Logger
	fallbackOnce sync.Once
)

// Default returns the process-wide fallback logger: JSON to stderr with
// timestamps, used when a context carries no logger.
func Default() zerolog.Logger {
	fallbackOnce.Do(func() {
		fallback = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return fallback
}

// With returns a child context carrying the given logger.
func With(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From extracts the logger from ctx, falling back to Default.
func From(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return Default()
}
