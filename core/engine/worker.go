package engine

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/processor"
	"github.com/dmitrymomot/actormesh/pkg/logger"
)

func sortNames(names []dispatcher.Name) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}

// runWorker implements §4.5.5's worker loop over assigned, a non-empty,
// worker-local ordered list of dispatchers. Round-robin position is purely
// local to this goroutine — there is no cross-worker coordination, and
// fairness between dispatchers for a single worker is bounded only by
// round-robin order.
func (e *Engine) runWorker(index int, assigned []*dispatcher.Dispatcher) {
	defer e.workersWG.Done()

	rrIndex := 0
	consecutiveFailures := 0
	delay := e.config.backoffPolicy.Initial()
	ctx := context.Background()

	for e.keepGoing.Load() {
		d := assigned[rrIndex]

		if d.TryLock() {
			claimed := e.dispatchOne(ctx, d)
			d.Unlock()

			rrIndex = (rrIndex + 1) % len(assigned)
			if claimed {
				consecutiveFailures = 0
				delay = e.config.backoffPolicy.Initial()
			}
			continue
		}

		rrIndex = (rrIndex + 1) % len(assigned)
		consecutiveFailures++
		if consecutiveFailures >= len(assigned) {
			e.waitForWorkOnAny(assigned, delay)
			delay = e.config.backoffPolicy.Next(delay)
			consecutiveFailures = 0
		}
	}

	e.config.logger.Debug("worker exiting",
		logger.Component("engine"),
		logger.WorkerIndex(index),
	)
}

// dispatchOne claims at most one processor from d (already locked by the
// caller via TryLock) and runs it through exactly one message dispatch.
// Reports whether a processor was actually claimed.
func (e *Engine) dispatchOne(ctx context.Context, d *dispatcher.Dispatcher) bool {
	entry, ok := d.TryClaim()
	if !ok {
		return false
	}
	p := entry.(*processor.Processor)

	p.RunOnce(ctx)

	if !p.Stopping() && e.registrar.Has(p.ID()) {
		d.Enqueue(p)
	}
	// else: intentionally dropped — stopping or unregistered since claim.

	d.SignalReturned()
	return true
}

// waitForWorkOnAny parks on the first assigned dispatcher (assigned[0])
// until it reports work, delay elapses, or engine shutdown — whichever
// comes first. Work enqueued on the other assigned dispatchers does not end
// the wait early; the worker reaches it on its next round-robin pass. Each
// call starts one helper goroutine so that the wait can be abandoned on
// shutdown.
func (e *Engine) waitForWorkOnAny(assigned []*dispatcher.Dispatcher, delay time.Duration) {
	target := assigned[0]

	woken := make(chan struct{})
	go func() {
		target.WaitForWork(delay)
		close(woken)
	}()

	select {
	case <-woken:
	case <-e.done:
	}
}
