package fan

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var (
	// loggerPtr stores the active logger. Accessed atomically so that
	// SetLogger can be called while other goroutines log.
	loggerPtr atomic.Pointer[slog.Logger]

	// loggerHooks are notified on every SetLogger call. Subpackages
	// register here to share the configuration without import cycles.
	loggerHooks atomic.Pointer[[]func(*slog.Logger)]
)

func init() {
	loggerPtr.Store(NopLogger())
	loggerHooks.Store(&[]func(*slog.Logger){})
}

// SetLogger configures the logger for fan and its subpackages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: buffer sizes, pipeline state, per-resize details
//   - [slog.LevelInfo]: lifecycle events (adapter selected, renderer ready)
//   - [slog.LevelWarn]: non-fatal issues (surface reacquired, missing input capability)
//
// Example:
//
//	fan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NopLogger()
	}
	loggerPtr.Store(l)
	for _, hook := range *loggerHooks.Load() {
		hook(l)
	}
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// OnSetLogger registers fn to be called with the new logger every time
// SetLogger runs. fn is called immediately with the current logger.
func OnSetLogger(fn func(*slog.Logger)) {
	for {
		old := loggerHooks.Load()
		hooks := make([]func(*slog.Logger), len(*old), len(*old)+1)
		copy(hooks, *old)
		hooks = append(hooks, fn)
		if loggerHooks.CompareAndSwap(old, &hooks) {
			break
		}
	}
	fn(Logger())
}
