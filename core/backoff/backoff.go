package backoff

import "time"

// Policy is a pure exponential-delay schedule: each call to Next grows the
// previous delay by Multiplier, capped at Max. It carries no mutable state of
// its own — callers thread the current delay value through themselves.
type Policy struct {
	Base       time.Duration
	Multiplier float64
	Max        time.Duration
}

// New validates and constructs a Policy from microsecond-granularity inputs,
// matching the units EngineConfig is specified in.
func New(baseDelayMicros int64, multiplier float64, maxDelayMicros int64) (Policy, error) {
	if baseDelayMicros < 1 {
		return Policy{}, ErrBaseDelayTooSmall
	}
	if multiplier <= 1.0 {
		return Policy{}, ErrMultiplierTooSmall
	}
	if maxDelayMicros < baseDelayMicros {
		return Policy{}, ErrMaxBelowBase
	}
	return Policy{
		Base:       time.Duration(baseDelayMicros) * time.Microsecond,
		Multiplier: multiplier,
		Max:        time.Duration(maxDelayMicros) * time.Microsecond,
	}, nil
}

// Initial returns the first delay a consumer of this policy should use.
func (p Policy) Initial() time.Duration {
	return p.Base
}

// Next returns the delay that follows current, grown by Multiplier and
// capped at Max. Next is pure: it never sleeps, never reads or writes shared
// state.
func (p Policy) Next(current time.Duration) time.Duration {
	grown := time.Duration(float64(current) * p.Multiplier)
	if grown > p.Max {
		return p.Max
	}
	if grown < p.Base {
		// Guards against a caller passing a current delay below Base, and
		// against float rounding collapsing a tiny delay to zero.
		return p.Base
	}
	return grown
}

// Clock abstracts the passage of time so that Sleep can be driven by a fake
// in tests without this package importing an external clock library. It
// mirrors the two methods core/queue/scheduler.go's own internal ticking
// seam relies on.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the production Clock, backed directly by the time package.
var RealClock Clock = realClock{}

// Sleep waits for d, or until done is closed, whichever happens first. It is
// the interruptible sleep primitive §4.1 requires: callers pass the engine's
// shutdown signal as done so that a parked worker wakes within d of the
// shutdown flag flipping, never later.
func Sleep(clock Clock, d time.Duration, done <-chan struct{}) {
	if clock == nil {
		clock = RealClock
	}
	select {
	case <-clock.After(d):
	case <-done:
	}
}
