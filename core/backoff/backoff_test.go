package backoff_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/actormesh/core/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := backoff.New(0, 1.5, 100)
	assert.ErrorIs(t, err, backoff.ErrBaseDelayTooSmall)

	_, err = backoff.New(10, 1.0, 100)
	assert.ErrorIs(t, err, backoff.ErrMultiplierTooSmall)

	_, err = backoff.New(100, 1.5, 10)
	assert.ErrorIs(t, err, backoff.ErrMaxBelowBase)

	p, err := backoff.New(10, 1.5, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Microsecond, p.Initial())
}

func TestNext_GrowsAndCaps(t *testing.T) {
	t.Parallel()

	p, err := backoff.New(10, 2.0, 100)
	require.NoError(t, err)

	d := p.Initial()
	assert.Equal(t, 10*time.Microsecond, d)

	d = p.Next(d)
	assert.Equal(t, 20*time.Microsecond, d)

	d = p.Next(d)
	assert.Equal(t, 40*time.Microsecond, d)

	d = p.Next(d)
	assert.Equal(t, 80*time.Microsecond, d)

	d = p.Next(d)
	assert.Equal(t, 100*time.Microsecond, d, "must cap at Max rather than overshoot")

	d = p.Next(d)
	assert.Equal(t, 100*time.Microsecond, d, "stays capped once at Max")
}

type fakeClock struct {
	after chan time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{after: make(chan time.Time, 1)} }

func (f *fakeClock) Now() time.Time                         { return time.Time{} }
func (f *fakeClock) After(time.Duration) <-chan time.Time { return f.after }

func TestSleep_InterruptedByDone(t *testing.T) {
	t.Parallel()

	clock := newFakeClock() // never fires After
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		backoff.Sleep(clock, time.Hour, done)
		close(finished)
	}()

	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Sleep did not return promptly after done was closed")
	}
}

func TestSleep_ReturnsOnClockFire(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		backoff.Sleep(clock, time.Hour, done)
		close(finished)
	}()

	clock.after <- time.Now()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Sleep did not return after clock fired")
	}
}
