package subscriptions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
	"github.com/dmitrymomot/actormesh/pkg/subscriptions"
)

func testEngineConfig(t *testing.T) engine.Config {
	t.Helper()
	cfg, err := engine.NewConfig(
		1,
		[][]dispatcher.Name{{dispatcher.DefaultName, dispatcher.SubscriptionsName}},
		100,
		engine.BackoffConfig{BaseDelayMicros: 1_000, Multiplier: 2, MaxDelayMicros: 50_000},
	)
	require.NoError(t, err)
	return cfg
}

func TestHub_PublishSubscribe(t *testing.T) {
	t.Parallel()

	hub := subscriptions.NewHub[string](4)
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := hub.Subscribe(ctx, "orders")
	hub.Publish(ctx, "orders", "created")

	select {
	case msg := <-sub.Receive(ctx):
		assert.Equal(t, "created", msg.Data)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received published message")
	}
}

func TestRegisterSubscriptionProcessor_BridgesPublishToHandler(t *testing.T) {
	t.Parallel()

	e := engine.New(testEngineConfig(t))
	require.NoError(t, e.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	})

	hub := subscriptions.NewHub[string](16)
	t.Cleanup(hub.Close)

	var mu sync.Mutex
	var got []string

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	err := subscriptions.RegisterSubscriptionProcessor(ctx, e, "bridge-1", hub, "orders", func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})
	require.NoError(t, err)

	hub.Publish(ctx, "orders", "order-created")
	hub.Publish(ctx, "orders", "order-shipped")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"order-created", "order-shipped"}, got)
	mu.Unlock()
}
