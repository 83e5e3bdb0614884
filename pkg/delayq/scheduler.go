package delayq

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Poster delivers a message to a processor by id. *core/engine.Engine does
// not satisfy it directly, since its Post returns (processor.PostResult,
// error); EnginePoster (engine_poster.go) adapts it, narrowing that to a
// plain error.
type Poster interface {
	Post(processorID string, msg any) error
}

// PosterFunc adapts a plain function to Poster.
type PosterFunc func(processorID string, msg any) error

func (f PosterFunc) Post(processorID string, msg any) error { return f(processorID, msg) }

// Stats is a snapshot of scheduler-wide operational counters, following
// core/queue.Scheduler.Stats()'s convention.
type Stats struct {
	DeliveriesPosted int64
	DeliveriesFailed int64
	IsRunning        bool
}

// Scheduler polls a Store for due deliveries and posts them through a
// Poster, following core/queue/scheduler.go's Start/Stop/Run shape.
type Scheduler struct {
	store  Store
	poster Poster
	logger *slog.Logger

	interval        time.Duration
	shutdownTimeout time.Duration

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running  atomic.Bool
	posted   atomic.Int64
	failed   atomic.Int64
}

// NewScheduler constructs a Scheduler over store, posting due deliveries
// through poster. poster must not be nil.
func NewScheduler(store Store, poster Poster, opts ...Option) (*Scheduler, error) {
	if store == nil {
		return nil, errors.New("delayq: store must not be nil")
	}
	if poster == nil {
		return nil, ErrNoHandlersSet
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Scheduler{
		store:           store,
		poster:          poster,
		logger:          o.logger,
		interval:        o.checkInterval,
		shutdownTimeout: o.shutdownTimeout,
	}, nil
}

// Schedule delegates to the underlying Store.
func (s *Scheduler) Schedule(ctx context.Context, d Delivery) error {
	return s.store.Schedule(ctx, d)
}

// Start begins polling for due deliveries. Blocking: runs until ctx is
// cancelled or Stop is called. Use Run for errgroup-style lifecycle
// management instead.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrSchedulerAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	ticker := time.NewTicker(s.interval)
	s.mu.Unlock()
	defer ticker.Stop()

	s.running.Store(true)
	s.logger.InfoContext(s.ctx, "delayq scheduler started",
		slog.Duration("check_interval", s.interval))

	s.pollWithWait()
	for {
		select {
		case <-s.ctx.Done():
			s.running.Store(false)
			s.logger.InfoContext(context.Background(), "delayq scheduler stopping")
			return s.ctx.Err()
		case <-ticker.C:
			s.pollWithWait()
		}
	}
}

// Stop gracefully shuts the scheduler down with a timeout, waiting for any
// in-progress poll cycle to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	s.running.Store(false)
	cancel()

	ctx, done := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer done()

	waited := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		s.logger.WarnContext(context.Background(), "delayq scheduler shutdown timeout exceeded")
		return ctx.Err()
	}
}

// Run returns an errgroup-compatible function: starts the scheduler,
// watches ctx, and stops gracefully on cancellation.
func (s *Scheduler) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() { errCh <- s.Start(ctx) }()

		select {
		case <-ctx.Done():
			_ = s.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (s *Scheduler) pollWithWait() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.poll(context.Background())
}

func (s *Scheduler) poll(ctx context.Context) {
	due, err := s.store.DueDeliveries(ctx, time.Now())
	if err != nil {
		s.logger.ErrorContext(ctx, "delayq: failed to query due deliveries", slog.String("error", err.Error()))
		return
	}

	for _, d := range due {
		if err := s.poster.Post(d.ProcessorID, d.Message); err != nil {
			s.failed.Add(1)
			s.logger.ErrorContext(ctx, "delayq: failed to post delivery",
				slog.String("delivery_id", d.ID.String()),
				slog.String("processor_id", d.ProcessorID),
				slog.String("error", err.Error()))
			continue
		}
		s.posted.Add(1)

		if d.IsRecurring() {
			next := d.DeliverAt.Add(*d.Recurring)
			if err := s.store.Reschedule(ctx, d.ID, next); err != nil {
				s.logger.ErrorContext(ctx, "delayq: failed to reschedule recurring delivery",
					slog.String("delivery_id", d.ID.String()), slog.String("error", err.Error()))
			}
			continue
		}
		if err := s.store.MarkDelivered(ctx, d.ID); err != nil {
			s.logger.ErrorContext(ctx, "delayq: failed to mark delivery delivered",
				slog.String("delivery_id", d.ID.String()), slog.String("error", err.Error()))
		}
	}
}

// Stats returns a point-in-time snapshot.
func (s *Scheduler) Stats() Stats {
	return Stats{
		DeliveriesPosted: s.posted.Load(),
		DeliveriesFailed: s.failed.Load(),
		IsRunning:        s.running.Load(),
	}
}

// Healthcheck reports whether the scheduler is currently running.
func (s *Scheduler) Healthcheck(context.Context) error {
	if !s.running.Load() {
		return errors.Join(ErrHealthcheckFailed, ErrSchedulerNotRunning)
	}
	return nil
}
