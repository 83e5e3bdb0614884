package procbuilder

import (
	"log/slog"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
	"github.com/dmitrymomot/actormesh/core/processor"
)

// Builder accumulates a processor's dispatcher affinity, initial handler,
// and construction options, deferring the actual processor.New call to
// Build.
type Builder struct {
	dispatcherName dispatcher.Name
	handler        processor.Handler
	opts           []processor.Option
	defaultsFrom   *engine.Engine
}

// New starts a Builder for a processor pinned to dispatcherName.
func New(dispatcherName dispatcher.Name) *Builder {
	return &Builder{dispatcherName: dispatcherName}
}

// WithHandler sets the initial handler. Required: Build fails without one,
// exactly as processor.New does.
func (b *Builder) WithHandler(h processor.Handler) *Builder {
	b.handler = h
	return b
}

// WithID overrides the generated processor id.
func (b *Builder) WithID(id string) *Builder {
	b.opts = append(b.opts, processor.WithID(id))
	return b
}

// WithQueueSize overrides the default bounded message queue capacity.
func (b *Builder) WithQueueSize(n int) *Builder {
	b.opts = append(b.opts, processor.WithQueueSize(n))
	return b
}

// WithLogger attaches structured logging.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts = append(b.opts, processor.WithLogger(logger))
	return b
}

// WithEngineDefaults sources the built processor's default queue capacity
// from e.DefaultQueueSize, instead of core/processor's own hardcoded
// default. It is applied with the lowest precedence regardless of call
// order: an explicit WithQueueSize call, whether chained before or after
// this one, always wins.
func (b *Builder) WithEngineDefaults(e *engine.Engine) *Builder {
	b.defaultsFrom = e
	return b
}

// Build constructs the processor, deferring all validation to
// processor.New.
func (b *Builder) Build() (*processor.Processor, error) {
	opts := b.opts
	if b.defaultsFrom != nil {
		opts = append([]processor.Option{processor.WithQueueSize(b.defaultsFrom.DefaultQueueSize())}, opts...)
	}
	return processor.New(b.dispatcherName, b.handler, opts...)
}
