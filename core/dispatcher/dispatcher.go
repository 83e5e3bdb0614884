package dispatcher

import (
	"sync"
	"time"
)

// Entry is the narrow view a Dispatcher needs of whatever it queues. The
// engine's processors satisfy this with their ProcessorId.
type Entry interface {
	ID() string
}

// Dispatcher is a named, concurrency-safe FIFO of ready entries.
//
// Two distinct locks are involved, matching the two different concerns
// described across §4.2 and §4.5.5:
//
//   - mu (+ its two condition variables) guards only the ready-queue slice
//     itself. It is held briefly, strictly for append/pop/signal, per §4.2's
//     "lock held only briefly to enqueue/dequeue/signal".
//   - claimMu is a coarser, per-dispatcher exclusivity lock the worker loop
//     try-locks for the full claim → run_once → requeue → signal cycle
//     (§4.5.5's "try_lock(d)"). It guarantees that at most one worker is
//     ever mid-dispatch against a given dispatcher at a time, which keeps
//     round-robin rotation meaningful when more than one worker thread is
//     assigned the same dispatcher name.
type Dispatcher struct {
	name Name

	claimMu sync.Mutex

	mu              sync.Mutex
	readyQueue      []Entry
	workAvailable   *sync.Cond
	processorReturn *sync.Cond
}

// New constructs an empty, ready-to-use Dispatcher for the given name.
func New(name Name) *Dispatcher {
	d := &Dispatcher{name: name}
	d.workAvailable = sync.NewCond(&d.mu)
	d.processorReturn = sync.NewCond(&d.mu)
	return d
}

// Name returns this dispatcher's configured name.
func (d *Dispatcher) Name() Name { return d.name }

// Enqueue appends e to the back of the ready queue and wakes exactly one
// waiter on work-available. Ordinary operation never fails; there is no
// artificial capacity limit on the ready queue itself (only processor
// message queues are bounded).
func (d *Dispatcher) Enqueue(e Entry) {
	d.mu.Lock()
	d.readyQueue = append(d.readyQueue, e)
	d.mu.Unlock()
	d.workAvailable.Signal()
}

// TryClaim pops the head of the ready queue if one is present, returning
// (nil, false) otherwise. Non-blocking.
func (d *Dispatcher) TryClaim() (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.readyQueue) == 0 {
		return nil, false
	}
	e := d.readyQueue[0]
	d.readyQueue = d.readyQueue[1:]
	return e, true
}

// WaitForWork blocks until the ready queue is non-empty or maxWait elapses,
// whichever comes first. Spurious wakeups are permitted by this contract:
// callers must re-poll with TryClaim rather than assume work is present on
// return.
func (d *Dispatcher) WaitForWork(maxWait time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.readyQueue) == 0 {
		// The timer's broadcast takes d.mu, so it cannot land before Wait
		// has released the lock and registered as a waiter.
		timer := time.AfterFunc(maxWait, d.BroadcastWorkAvailable)
		defer timer.Stop()
		d.workAvailable.Wait()
	}
}

// BroadcastWorkAvailable wakes every goroutine parked in WaitForWork,
// regardless of queue state. Used by engine shutdown so workers observe the
// keep-going flag promptly instead of waiting out their current backoff.
func (d *Dispatcher) BroadcastWorkAvailable() {
	d.mu.Lock()
	d.workAvailable.Broadcast()
	d.mu.Unlock()
}

// Remove deletes the first entry matching id from the ready queue, reporting
// whether one was found.
func (d *Dispatcher) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeLocked(id)
}

// removeLocked is Remove's body, assuming d.mu is already held by the
// caller.
func (d *Dispatcher) removeLocked(id string) bool {
	for i, e := range d.readyQueue {
		if e.ID() == id {
			d.readyQueue = append(d.readyQueue[:i], d.readyQueue[i+1:]...)
			return true
		}
	}
	return false
}

// SignalReturned wakes every goroutine waiting in WaitForReturn. Called by
// the worker loop after every RunOnce cycle — whether or not the processor
// was re-queued — so that stop() observers can always make progress.
func (d *Dispatcher) SignalReturned() {
	d.mu.Lock()
	d.processorReturn.Broadcast()
	d.mu.Unlock()
}

// RemoveOnReturn removes id from the ready queue, reporting whether it was
// found. If id is not present — because a worker currently holds it for
// in-flight dispatch — it waits for that worker's next SignalReturned and
// re-checks, up to deadline, instead of giving up after one miss. The
// check and the wait happen as a single operation under d.mu the whole
// time, so a SignalReturned broadcast that lands between a check and a
// separate wait call can never be missed.
func (d *Dispatcher) RemoveOnReturn(id string, deadline time.Time) bool {
	var removed bool
	d.WaitForReturn(func() bool {
		removed = d.removeLocked(id)
		return removed
	}, deadline)
	return removed
}

// WaitForReturn blocks until predicate reports true or deadline passes,
// re-checking predicate each time processor-returned fires. predicate is
// called with d's lock held: it must be cheap and must not call any method
// of d that takes that lock (RemoveOnReturn's predicate uses removeLocked
// for this reason). The periodic timer below also re-broadcasts, through
// SignalReturned, so a WaitForReturn call never outlives its deadline even
// if no further SignalReturned call ever arrives.
func (d *Dispatcher) WaitForReturn(predicate func() bool, deadline time.Time) {
	const pollCeiling = 10 * time.Millisecond

	d.mu.Lock()
	defer d.mu.Unlock()
	for !predicate() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		wait := remaining
		if wait > pollCeiling {
			wait = pollCeiling
		}
		timer := time.AfterFunc(wait, d.SignalReturned)
		d.processorReturn.Wait()
		timer.Stop()
	}
}

// TryLock attempts to acquire this dispatcher's coarse per-dispatcher
// exclusivity lock (claimMu), used by the worker loop to bracket one full
// claim/run_once/requeue/signal cycle. Non-blocking.
func (d *Dispatcher) TryLock() bool { return d.claimMu.TryLock() }

// Unlock releases the lock acquired by a successful TryLock.
func (d *Dispatcher) Unlock() { d.claimMu.Unlock() }

// Len reports the current ready-queue length, for Stats/diagnostics only.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.readyQueue)
}
