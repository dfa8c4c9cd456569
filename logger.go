package llamavec

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific helpers so operations log
// with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(127),
	}))}
}

// LogAdd logs a single add operation.
func (l *Logger) LogAdd(id string, dimension int, err error) {
	if err != nil {
		l.Error("add failed", "id", id, "dimension", dimension, "error", err)
	} else {
		l.Debug("add completed", "id", id, "dimension", dimension)
	}
}

// LogBatchAdd logs a batch add operation.
func (l *Logger) LogBatchAdd(count int, err error) {
	if err != nil {
		l.Error("batch add failed", "count", count, "error", err)
	} else {
		l.Info("batch add completed", "count", count)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(k, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed", "k", k, "error", err)
	} else {
		l.Debug("search completed", "k", k, "results", resultsFound)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(id string, deleted bool) {
	l.Debug("delete completed", "id", id, "deleted", deleted)
}

// LogSave logs a snapshot save operation.
func (l *Logger) LogSave(name string, err error) {
	if err != nil {
		l.Error("save failed", "name", name, "error", err)
	} else {
		l.Info("snapshot saved", "name", name)
	}
}

// LogLoad logs a snapshot load operation.
func (l *Logger) LogLoad(name string, count int, err error) {
	if err != nil {
		l.Error("load failed", "name", name, "error", err)
	} else {
		l.Info("snapshot loaded", "name", name, "count", count)
	}
}
