package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/actormesh/pkg/broadcast"
)

func TestMemoryBroadcaster_DeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s1 := b.Subscribe(ctx)
	s2 := b.Subscribe(ctx)
	defer s1.Close()
	defer s2.Close()

	b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})

	for _, s := range []broadcast.Subscriber[string]{s1, s2} {
		select {
		case msg := <-s.Receive(ctx):
			assert.Equal(t, "hello", msg.Data)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive message")
		}
	}
}

func TestMemoryBroadcaster_SlowConsumerIsDroppedNotBlocked(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx := context.Background()
	s := b.Subscribe(ctx)
	defer s.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Broadcast(ctx, broadcast.Message[int]{Data: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow consumer")
	}
}

func TestMemoryBroadcaster_SubscriberClosedOnContextCancel(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		_, open := <-s.Receive(ctx)
		return !open
	}, time.Second, time.Millisecond)
}

func TestMemoryBroadcaster_CloseStopsDelivery(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](1)
	ctx := context.Background()
	s := b.Subscribe(ctx)

	b.Close()
	b.Broadcast(ctx, broadcast.Message[string]{Data: "after close"})

	_, open := <-s.Receive(ctx)
	assert.False(t, open)
}

func TestMemoryBroadcaster_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](1)
	b.Close()

	s := b.Subscribe(context.Background())
	_, open := <-s.Receive(context.Background())
	assert.False(t, open)
}
