package processor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/pkg/logger"
)

// RejectReason explains why a Post was rejected.
type RejectReason int

const (
	// RejectNone is the zero value, meaningless on its own; check
	// PostResult.Accepted first.
	RejectNone RejectReason = iota
	RejectStopping
	RejectQueueFull
)

// PostResult is the outcome of a Post call. Post never blocks and never
// panics: callers always get a PostResult back, immediately.
type PostResult struct {
	Accepted bool
	Reason   RejectReason
}

// RunResult is the outcome of one RunOnce call.
type RunResult int

const (
	RunIdle RunResult = iota
	RunProcessed
)

// Processor is the actor-like unit described in §4.4: a private bounded
// message queue, a non-empty handler stack, a one-shot stopping flag, and a
// task lock serializing all handler execution and stack mutation.
type Processor struct {
	id         string
	dispatcher dispatcher.Name
	logger     *slog.Logger

	queue chan any

	stopping atomic.Bool

	taskLock     sync.Mutex
	handlerStack []Handler
}

// New constructs a Processor with the given dispatcher affinity and an
// eagerly-installed initial handler (installed here, during construction,
// never lazily — per §9's "Lazy/late-initialized handler stack" design
// note, this is the one point where the source's double-init race is
// closed off).
func New(dispatcherName dispatcher.Name, initial Handler, opts ...Option) (*Processor, error) {
	if initial == nil {
		return nil, ErrNoHandlers
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.queueSize < 1 {
		return nil, ErrQueueTooSmall
	}
	if o.queueSize > 1_000_000 {
		return nil, ErrQueueTooLarge
	}

	id := o.id
	if id == "" {
		id = uuid.NewString()
	}

	return &Processor{
		id:           id,
		dispatcher:   dispatcherName,
		logger:       o.logger,
		queue:        make(chan any, o.queueSize),
		handlerStack: []Handler{initial},
	}, nil
}

// ID returns this processor's opaque identifier.
func (p *Processor) ID() string { return p.id }

// DispatcherName returns the dispatcher this processor is pinned to.
func (p *Processor) DispatcherName() dispatcher.Name { return p.dispatcher }

// Stopping reports whether MarkStopping has been called.
func (p *Processor) Stopping() bool { return p.stopping.Load() }

// MarkStopping transitions stopping from false to true. Idempotent: calling
// it more than once has no additional effect. Visible to all goroutines
// immediately after the call returns (atomic.Bool's release-acquire
// semantics).
func (p *Processor) MarkStopping() {
	p.stopping.Store(true)
}

// CurrentQueueSize returns a snapshot of the number of pending messages.
func (p *Processor) CurrentQueueSize() int {
	return len(p.queue)
}

// Post enqueues msg without blocking. Never panics.
func (p *Processor) Post(msg any) PostResult {
	return p.enqueue(msg)
}

// RequestBecome posts a handler-stack change that takes effect the next
// time this processor runs through RunOnce, preserving FIFO order relative
// to messages posted before this call (it is implemented as an ordinary
// message in the same queue — see SPEC_FULL.md §9).
func (p *Processor) RequestBecome(h Handler, keepPrevious bool) PostResult {
	return p.enqueue(becomeRequest{handler: h, keepPrevious: keepPrevious})
}

// RequestUnbecome posts a pop-top-handler request, taking effect on the
// next RunOnce in FIFO order, exactly like RequestBecome.
func (p *Processor) RequestUnbecome() PostResult {
	return p.enqueue(unbecomeRequest{})
}

func (p *Processor) enqueue(msg any) PostResult {
	if p.stopping.Load() {
		return PostResult{Accepted: false, Reason: RejectStopping}
	}
	select {
	case p.queue <- msg:
		return PostResult{Accepted: true}
	default:
		return PostResult{Accepted: false, Reason: RejectQueueFull}
	}
}

// RunOnce dequeues and dispatches exactly one message under the task lock,
// per §4.4. Called by the worker loop, holding no dispatcher lock itself
// (the worker's dispatcher claimMu is a separate lock — see
// core/dispatcher.Dispatcher).
func (p *Processor) RunOnce(ctx context.Context) RunResult {
	p.taskLock.Lock()
	defer p.taskLock.Unlock()

	var msg any
	select {
	case msg = <-p.queue:
	default:
		return RunIdle
	}

	switch m := msg.(type) {
	case becomeRequest:
		p.applyBecome(m.handler, m.keepPrevious)
		return RunProcessed
	case unbecomeRequest:
		p.applyUnbecome()
		return RunProcessed
	}

	p.dispatch(ctx, msg)
	return RunProcessed
}

func (p *Processor) dispatch(ctx context.Context, msg any) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("handler panic recovered",
				logger.Component("processor"),
				logger.ProcessorID(p.id),
				slog.Any("panic", r),
			)
		}
	}()

	ctx = withCurrentProcessor(ctx, p.id)
	ctl := control{p: p}

	for i := len(p.handlerStack) - 1; i >= 0; i-- {
		if p.handlerStack[i].Handle(ctx, ctl, msg) {
			return
		}
	}
	p.logger.Debug("message unhandled by any stacked handler",
		logger.Component("processor"),
		logger.ProcessorID(p.id),
	)
}

func (p *Processor) applyBecome(h Handler, keepPrevious bool) {
	if keepPrevious {
		p.handlerStack = append(p.handlerStack, h)
		return
	}
	p.handlerStack[len(p.handlerStack)-1] = h
}

func (p *Processor) applyUnbecome() {
	if len(p.handlerStack) <= 1 {
		p.logger.Warn("unbecome on single-handler stack is a no-op",
			logger.Component("processor"),
			logger.ProcessorID(p.id),
		)
		return
	}
	p.handlerStack = p.handlerStack[:len(p.handlerStack)-1]
}

// control is the Control implementation handed to a running handler. It
// mutates the processor's handler stack directly: RunOnce already holds
// taskLock for the duration of dispatch, so no further locking is needed
// or correct here (taking taskLock again would deadlock — sync.Mutex is
// not reentrant).
type control struct{ p *Processor }

func (c control) Become(h Handler, keepPrevious bool) { c.p.applyBecome(h, keepPrevious) }
func (c control) Unbecome()                            { c.p.applyUnbecome() }
