// Command actormeshdemo is a thin ambient-stack demonstration binary: it
// wires core/engine together with the domain-stack packages (core/config,
// pkg/delayq, pkg/subscriptions, pkg/procbuilder) the way a real service
// would, following core/queue/service.go's errgroup-based run-until-signal
// pattern. It is not part of the engine's interface surface.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/actormesh/core/config"
	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
	"github.com/dmitrymomot/actormesh/core/processor"
	"github.com/dmitrymomot/actormesh/pkg/delayq"
	"github.com/dmitrymomot/actormesh/pkg/logger"
	"github.com/dmitrymomot/actormesh/pkg/procbuilder"
	"github.com/dmitrymomot/actormesh/pkg/subscriptions"
)

// tickEvent is the payload broadcast over the "heartbeats" topic, bridged
// into the engine by pkg/subscriptions.
type tickEvent struct {
	Sequence int
}

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("actormeshdemo exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var env config.EngineEnv
	env.SchedulerPoolSize = 2
	env.DefaultQueueSize = 1000
	env.ThreadDispatcherAssignment = "subscriptions,orders;orders,subscriptions;"
	env.BackoffBaseDelayMicros = 50
	env.BackoffMultiplier = 2
	env.BackoffMaxDelayMicros = 20_000
	if err := config.Load(&env); err != nil {
		log.Warn("using built-in defaults, environment not fully populated", logger.Error(err))
	}

	cfg, err := env.ToEngineConfig(engine.WithLogger(log))
	if err != nil {
		return fmt.Errorf("actormeshdemo: building engine config: %w", err)
	}

	e := engine.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.Start(ctx); err != nil {
		return fmt.Errorf("actormeshdemo: starting engine: %w", err)
	}

	hub := subscriptions.NewHub[tickEvent](64)
	defer hub.Close()

	var heartbeatsSeen atomic.Int64
	if err := subscriptions.RegisterSubscriptionProcessor(ctx, e, "heartbeat-watcher", hub, "heartbeats", func(evt tickEvent) {
		n := heartbeatsSeen.Add(1)
		log.Info("heartbeat observed", logger.Count("total", int(n)), slog.Int("sequence", evt.Sequence))
	}); err != nil {
		return fmt.Errorf("actormeshdemo: registering subscription bridge: %w", err)
	}

	var ordersHandled atomic.Int64
	orderHandler := processor.HandlerFunc(func(_ context.Context, _ processor.Control, msg any) bool {
		ordersHandled.Add(1)
		log.Info("order processed", slog.Any("payload", msg))
		return true
	})
	orderProc, err := procbuilder.New(dispatcher.Name("orders")).
		WithID("orders-worker").
		WithEngineDefaults(e).
		WithHandler(orderHandler).
		Build()
	if err != nil {
		return fmt.Errorf("actormeshdemo: building order processor: %w", err)
	}
	if err := e.Register(orderProc); err != nil {
		return fmt.Errorf("actormeshdemo: registering order processor: %w", err)
	}

	store := delayq.NewMemoryStore()
	scheduler, err := delayq.NewScheduler(store, delayq.EnginePoster{Engine: e}, delayq.WithCheckInterval(200*time.Millisecond))
	if err != nil {
		return fmt.Errorf("actormeshdemo: building delayq scheduler: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(scheduler.Run(ctx))
	eg.Go(func() error {
		return seedDemoTraffic(ctx, e, scheduler, hub)
	})

	<-ctx.Done()
	log.Info("shutting down",
		logger.Count("orders_handled", int(ordersHandled.Load())),
		logger.Count("heartbeats_seen", int(heartbeatsSeen.Load())),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := e.Stop(shutdownCtx, orderProc.ID(), 3*time.Second); err != nil {
		log.Warn("order processor did not drain cleanly", logger.Error(err))
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("engine shutdown failed", logger.Error(err))
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// seedDemoTraffic posts a handful of orders directly and schedules a
// recurring heartbeat delivery, so the wiring above has something to do
// when run standalone.
func seedDemoTraffic(ctx context.Context, e *engine.Engine, scheduler *delayq.Scheduler, hub *subscriptions.Hub[tickEvent]) error {
	for i := 0; i < 5; i++ {
		if _, err := e.Post("orders-worker", fmt.Sprintf("order-%d", i)); err != nil {
			return fmt.Errorf("actormeshdemo: seeding order: %w", err)
		}
	}

	recurring := time.Second
	if err := scheduler.Schedule(ctx, delayq.Delivery{
		ID:          uuid.New(),
		ProcessorID: "orders-worker",
		Message:     "recurring-order",
		DeliverAt:   time.Now().Add(recurring),
		Recurring:   &recurring,
	}); err != nil {
		return fmt.Errorf("actormeshdemo: scheduling recurring order: %w", err)
	}

	seq := 0
	ticker := time.NewTicker(recurring)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			seq++
			hub.Publish(ctx, "heartbeats", tickEvent{Sequence: seq})
		}
	}
}
