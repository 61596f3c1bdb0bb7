package renderer

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/fan"
)

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(fan.NopLogger())
	fan.OnSetLogger(setLogger)
}

// slogger returns the current package logger.
// All logging in renderer goes through this function.
func slogger() *slog.Logger { return loggerPtr.Load() }

// setLogger updates the package-level logger.
// Called from fan.SetLogger.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = fan.NopLogger()
	}
	loggerPtr.Store(l)
}
