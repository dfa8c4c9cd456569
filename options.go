package llamavec

import (
	"log/slog"

	"github.com/llamavec/llamavec/codec"
	"github.com/llamavec/llamavec/snapshot"
)

type options struct {
	codec       codec.Codec
	compression snapshot.Compression
	indexType   string
	logger      *Logger
	metrics     MetricsCollector
}

// Option configures store construction and load behavior.
type Option func(*options)

// WithCodec configures the codec used for snapshot payloads.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression applied to snapshot payloads.
// Snapshots record the compression in their header, so stores written with
// any setting can always be loaded.
func WithCompression(comp snapshot.Compression) Option {
	return func(o *options) {
		o.compression = comp
	}
}

// WithIndexType sets the index strategy label recorded on the store and in
// snapshots. The label is informational: search is always exact brute
// force, and a different label never silently changes query semantics.
func WithIndexType(label string) Option {
	return func(o *options) {
		if label != "" {
			o.indexType = label
		}
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: snapshot.CompressionNone,
		indexType:   "flat",
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
