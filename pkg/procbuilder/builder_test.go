package procbuilder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
	"github.com/dmitrymomot/actormesh/core/processor"
	"github.com/dmitrymomot/actormesh/pkg/procbuilder"
)

func testEngine(t *testing.T, defaultQueueSize int) *engine.Engine {
	t.Helper()
	cfg, err := engine.NewConfig(
		1,
		[][]dispatcher.Name{{dispatcher.SubscriptionsName, dispatcher.Name("orders")}},
		defaultQueueSize,
		engine.BackoffConfig{BaseDelayMicros: 10, Multiplier: 1.5, MaxDelayMicros: 1000},
	)
	require.NoError(t, err)
	return engine.New(cfg)
}

func TestBuilder_BuildsConfiguredProcessor(t *testing.T) {
	t.Parallel()

	h := processor.HandlerFunc(func(context.Context, processor.Control, any) bool { return true })

	p, err := procbuilder.New(dispatcher.Name("orders")).
		WithID("order-proc-1").
		WithQueueSize(50).
		WithHandler(h).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "order-proc-1", p.ID())
	assert.Equal(t, dispatcher.Name("orders"), p.DispatcherName())
}

func TestBuilder_RequiresHandler(t *testing.T) {
	t.Parallel()

	_, err := procbuilder.New(dispatcher.DefaultName).Build()
	assert.ErrorIs(t, err, processor.ErrNoHandlers)
}

func TestBuilder_ValidatesQueueSize(t *testing.T) {
	t.Parallel()

	h := processor.HandlerFunc(func(context.Context, processor.Control, any) bool { return true })
	_, err := procbuilder.New(dispatcher.DefaultName).WithHandler(h).WithQueueSize(0).Build()
	assert.ErrorIs(t, err, processor.ErrQueueTooSmall)
}

func TestBuilder_WithEngineDefaults_AppliesEngineQueueSize(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 2)
	h := processor.HandlerFunc(func(context.Context, processor.Control, any) bool { return true })

	p, err := procbuilder.New(dispatcher.Name("orders")).
		WithHandler(h).
		WithEngineDefaults(e).
		Build()
	require.NoError(t, err)

	assert.True(t, p.Post("a").Accepted)
	assert.True(t, p.Post("b").Accepted)
	result := p.Post("c")
	assert.False(t, result.Accepted)
	assert.Equal(t, processor.RejectQueueFull, result.Reason)
}

func TestBuilder_WithEngineDefaults_ExplicitOverrideWins(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 2)
	h := processor.HandlerFunc(func(context.Context, processor.Control, any) bool { return true })

	p, err := procbuilder.New(dispatcher.Name("orders")).
		WithHandler(h).
		WithEngineDefaults(e).
		WithQueueSize(5).
		Build()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.True(t, p.Post(i).Accepted)
	}
	assert.False(t, p.Post("overflow").Accepted)
}
