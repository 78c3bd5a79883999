package sptensor

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/sptensor/coord"
)

// Logger wraps slog.Logger with tensor-specific fields.
// This keeps field names consistent across operators and I/O.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithOrder adds an order field to the logger.
func (l *Logger) WithOrder(order int) *Logger {
	return &Logger{
		Logger: l.Logger.With("order", order),
	}
}

// WithShape adds a shape field to the logger.
func (l *Logger) WithShape(shape coord.Coords) *Logger {
	return &Logger{
		Logger: l.Logger.With("shape", shape.String()),
	}
}

// WithStore adds the store kind to the logger.
func (l *Logger) WithStore(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", kind),
	}
}

// LogTrace logs a trace run.
func (l *Logger) LogTrace(modeA, modeB int, stats Stats, duration time.Duration, err error) {
	if err != nil {
		l.Error("trace failed",
			"mode_a", modeA,
			"mode_b", modeB,
			"error", err,
		)
		return
	}
	l.Debug("trace completed",
		"mode_a", modeA,
		"mode_b", modeB,
		"gets", stats.Gets,
		"inserts", stats.Inserts,
		"duration", duration,
	)
}

// LogContract logs a contraction run.
func (l *Logger) LogContract(modeA, modeB int, stats Stats, duration time.Duration, err error) {
	if err != nil {
		l.Error("contract failed",
			"mode_a", modeA,
			"mode_b", modeB,
			"error", err,
		)
		return
	}
	l.Debug("contract completed",
		"mode_a", modeA,
		"mode_b", modeB,
		"gets", stats.Gets,
		"muls", stats.Muls,
		"inserts", stats.Inserts,
		"duration", duration,
	)
}

// LogRead logs loading a tensor.
func (l *Logger) LogRead(name string, nnz int, err error) {
	if err != nil {
		l.Error("read failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.Debug("read completed",
		"name", name,
		"nnz", nnz,
	)
}

// LogWrite logs saving a tensor.
func (l *Logger) LogWrite(name string, nnz int, err error) {
	if err != nil {
		l.Error("write failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.Info("tensor written",
		"name", name,
		"nnz", nnz,
	)
}
