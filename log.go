package txkit

import (
	"context"
	"log/slog"
)

// Debugger emits diagnostic records only while debug mode is on.
type Debugger struct {
	logger *slog.Logger
}

// NewDebugger returns a Debugger writing to logger, or to slog.Default() if logger is nil.
func NewDebugger(logger *slog.Logger) *Debugger {
	return &Debugger{logger: logger}
}

// Log writes a single record with message and, if non-nil, data.
// Records are emitted at info level so they show with default handlers.
// When debugMode is false it does nothing.
func (d *Debugger) Log(message string, data any, debugMode bool) {
	if !debugMode {
		return
	}

	logger := d.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{}
	if data != nil {
		attrs = append(attrs, slog.Any("data", data))
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, message, attrs...)
}

var defaultDebugger = &Debugger{}

// Log writes message and data through slog.Default() when debugMode is true.
func Log(message string, data any, debugMode bool) {
	defaultDebugger.Log(message, data, debugMode)
}
