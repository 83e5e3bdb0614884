package delayq

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a Scheduler at construction time.
type Option func(*options)

type options struct {
	checkInterval   time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func defaultOptions() *options {
	return &options{
		checkInterval:   10 * time.Second,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCheckInterval overrides how often the scheduler polls the store for
// due deliveries. Defaults to 10s, matching core/queue's own default.
func WithCheckInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.checkInterval = d
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for an in-progress poll
// cycle to finish before giving up.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger attaches structured logging. Defaults to a silent logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
