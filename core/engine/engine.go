package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/processor"
	"github.com/dmitrymomot/actormesh/core/registrar"
	"github.com/dmitrymomot/actormesh/pkg/async"
	"github.com/dmitrymomot/actormesh/pkg/logger"
)

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Engine owns the dispatchers, the registrar, and the worker goroutines
// (§3's Engine). Created via New, started via Start, never restarted once
// shut down.
type Engine struct {
	config Config

	dispatchers map[dispatcher.Name]*dispatcher.Dispatcher
	registrar   *registrar.Registrar

	started   atomic.Bool
	keepGoing atomic.Bool
	done      chan struct{} // closed once, on Shutdown, to interrupt parked workers' backoff sleep
	workersWG sync.WaitGroup
}

// New constructs an Engine from a validated Config. The engine is not
// started: no worker goroutines exist until Start is called.
func New(cfg Config) *Engine {
	dispatchers := make(map[dispatcher.Name]*dispatcher.Dispatcher, len(cfg.validDispatcherNames))
	for name := range cfg.validDispatcherNames {
		dispatchers[name] = dispatcher.New(name)
	}
	return &Engine{
		config:      cfg,
		dispatchers: dispatchers,
		registrar:   registrar.New(),
		done:        make(chan struct{}),
	}
}

// Start spawns one worker goroutine per entry in
// thread_dispatcher_assignment. Returns ErrAlreadyStarted if called more
// than once.
func (e *Engine) Start(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	e.keepGoing.Store(true)

	for i, names := range e.config.threadDispatcherAssignment {
		assigned := make([]*dispatcher.Dispatcher, len(names))
		for j, n := range names {
			assigned[j] = e.dispatchers[n]
		}
		e.workersWG.Add(1)
		go e.runWorker(i, assigned)
	}

	e.config.logger.Info("engine started",
		logger.Component("engine"),
		logger.Count("worker_count", len(e.config.threadDispatcherAssignment)),
	)
	return nil
}

// Register validates proc's dispatcher affinity, publishes it through the
// registrar, and enqueues it onto its dispatcher's ready queue (§4.5.1).
func (e *Engine) Register(proc *processor.Processor) error {
	if !e.started.Load() {
		return ErrNotStarted
	}
	if !e.config.IsValidDispatcher(proc.DispatcherName()) {
		return ErrUnknownDispatcher
	}
	if err := e.registrar.Register(proc); err != nil {
		return err
	}
	d := e.dispatchers[proc.DispatcherName()]
	d.Enqueue(proc)
	return nil
}

// DefaultQueueSize returns this engine's configured default per-processor
// queue capacity. Processor-constructing collaborators (pkg/procbuilder,
// pkg/subscriptions) consume it explicitly at construction time, since a
// processor's queue capacity is fixed at New and Register only ever takes
// an already-built *processor.Processor.
func (e *Engine) DefaultQueueSize() int { return e.config.DefaultQueueSize() }

// Post delivers msg to the processor registered under id (§4.5.2). It never
// touches a dispatcher directly — readiness is maintained entirely by the
// worker loop's requeue step.
func (e *Engine) Post(id string, msg any) (processor.PostResult, error) {
	return e.registrar.PostByID(id, msg)
}

// DrainResult reports the outcome of a Stop call's drain phase.
type DrainResult struct {
	// Delivered is true if the queue reached zero before timeout elapsed.
	Delivered bool
	// Remaining is the queue size observed when the drain phase ended,
	// meaningful only when Delivered is false.
	Remaining int
}

// Stop implements §4.5.3: mark the processor stopping, drain its queue
// (bounded by timeout), remove it from its dispatcher, then unregister it.
// Idempotent: a second concurrent or subsequent call for the same id
// observes the id already gone and returns silently.
//
// Calling Stop for a processor's own id from within that processor's
// currently-running handler returns ErrSelfStopDeadlock instead of
// blocking forever on the drain phase (the handler holds the task lock
// that the drain, and the processor dispatching itself, would never
// release).
func (e *Engine) Stop(ctx context.Context, id string, timeout time.Duration) (DrainResult, error) {
	if current, ok := processor.CurrentProcessorID(ctx); ok && current == id {
		return DrainResult{}, processor.ErrSelfStopDeadlock
	}

	h, ok := e.registrar.Get(id)
	if !ok {
		return DrainResult{Delivered: true}, nil
	}
	p, ok := h.(*processor.Processor)
	if !ok {
		return DrainResult{}, ErrInternal
	}

	p.MarkStopping()

	result := e.drain(p, timeout)
	if !result.Delivered {
		e.config.logger.Error("stop drain timed out with messages remaining",
			logger.Component("engine"),
			logger.ProcessorID(id),
			logger.DrainRemaining(result.Remaining),
		)
	}

	e.remove(p)
	e.registrar.Unregister(id)
	return result, nil
}

func (e *Engine) drain(p *processor.Processor, timeout time.Duration) DrainResult {
	const pollInterval = 10 * time.Millisecond
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	if p.CurrentQueueSize() == 0 {
		return DrainResult{Delivered: true}
	}
	for range ticker.C {
		if p.CurrentQueueSize() == 0 {
			return DrainResult{Delivered: true}
		}
		if time.Now().After(deadline) {
			return DrainResult{Delivered: false, Remaining: p.CurrentQueueSize()}
		}
	}
	return DrainResult{Delivered: false, Remaining: p.CurrentQueueSize()}
}

// remove takes p off the ready queue of the dispatcher it is pinned to.
// MarkStopping was already called before remove is ever invoked (see
// Stop), so a worker that claims p never re-enqueues it: p will not
// reappear once a worker holds it. A worker holds the dispatcher's claim
// lock (TryLock) for its whole claim/run/requeue/signal cycle, so remove
// waits on processor-returned, re-checking on every wakeup, until it can
// take that claim lock itself. Holding it, no worker is mid-cycle on the
// dispatcher: p is either still queued, and is removed, or was already
// dropped by the worker that last ran it. If removalTimeout elapses first,
// remove returns without touching the queue.
// Only when p's declared dispatcher is not one of this engine's dispatchers
// does removal fall back to RemoveOnReturn on every dispatcher, in
// lexicographic DispatcherName order (§8 invariant 5), all sharing the one
// deadline.
func (e *Engine) remove(p *processor.Processor) {
	const removalTimeout = 5 * time.Second
	deadline := time.Now().Add(removalTimeout)
	id := p.ID()

	if d, ok := e.dispatchers[p.DispatcherName()]; ok {
		claimed := false
		d.WaitForReturn(func() bool {
			claimed = d.TryLock()
			return claimed
		}, deadline)
		if claimed {
			d.Remove(id)
			d.Unlock()
		}
		return
	}

	for _, name := range e.lexicographicDispatcherNames() {
		if e.dispatchers[name].RemoveOnReturn(id, deadline) {
			return
		}
	}
}

func (e *Engine) lexicographicDispatcherNames() []dispatcher.Name {
	names := make([]dispatcher.Name, 0, len(e.dispatchers))
	for n := range e.dispatchers {
		names = append(names, n)
	}
	sortNames(names)
	return names
}

// Shutdown implements §4.5.4: flips keep_going, wakes every parked worker,
// and waits for all of them to exit. Does not drain individual processors —
// callers are expected to Stop them first.
func (e *Engine) Shutdown(ctx context.Context) error {
	if !e.keepGoing.CompareAndSwap(true, false) {
		return nil // already shutting down or never started
	}
	close(e.done)
	for _, d := range e.dispatchers {
		d.BroadcastWorkAvailable()
	}

	joined := make(chan struct{})
	go func() {
		e.workersWG.Wait()
		close(joined)
	}()

	select {
	case <-joined:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShutdownAsync fires Shutdown without blocking the calling goroutine,
// returning a future the caller can Await or AwaitWithTimeout — built on
// pkg/async.Exec.
func (e *Engine) ShutdownAsync(ctx context.Context) *async.ExecFuture {
	return async.Exec(ctx, struct{}{}, func(ctx context.Context, _ struct{}) error {
		return e.Shutdown(ctx)
	})
}

// Healthcheck reports whether the engine is started and not shut down.
func (e *Engine) Healthcheck(context.Context) error {
	var errs []error
	if !e.started.Load() {
		errs = append(errs, ErrNotStarted)
	}
	if !e.keepGoing.Load() {
		errs = append(errs, errors.New("engine: shut down"))
	}
	return errors.Join(errs...)
}

// Stats is a snapshot of engine-wide operational counters, following
// core/queue.Worker.Stats()'s convention of a plain value struct.
type Stats struct {
	RegisteredProcessors int
	DispatcherQueueSizes map[dispatcher.Name]int
}

// Stats returns a point-in-time snapshot.
func (e *Engine) Stats() Stats {
	sizes := make(map[dispatcher.Name]int, len(e.dispatchers))
	for name, d := range e.dispatchers {
		sizes[name] = d.Len()
	}
	return Stats{
		RegisteredProcessors: e.registrar.Len(),
		DispatcherQueueSizes: sizes,
	}
}
