package processor

import (
	"io"
	"log/slog"
)

// Option configures a Processor at construction time, following the
// functional-options convention used throughout core/queue
// (WorkerOption, SchedulerOption, EnqueuerOption).
type Option func(*options)

type options struct {
	id        string
	queueSize int
	logger    *slog.Logger
}

// WithID overrides the generated ProcessorId with a caller-supplied one.
// Useful when a processor must be addressable by a stable, externally
// meaningful name.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithQueueSize overrides the default bounded message queue capacity.
// Valid range is [1, 1_000_000]; out-of-range values are rejected by New,
// not silently clamped.
func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

// WithLogger attaches structured logging. The default is a silent logger,
// matching core/queue's WithWorkerLogger/WithSchedulerLogger convention.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() *options {
	return &options{
		queueSize: 10_000,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
