package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/actormesh/core/config"
)

func TestParseThreadDispatcherAssignment(t *testing.T) {
	t.Parallel()

	assignment, err := config.ParseThreadDispatcherAssignment("subscriptions;orders,billing;")
	require.NoError(t, err)
	require.Len(t, assignment, 2)
	assert.Equal(t, "subscriptions", string(assignment[0][0]))
	assert.Equal(t, []string{"orders", "billing"}, namesToStrings(assignment[1]))
}

func TestParseThreadDispatcherAssignment_RejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := config.ParseThreadDispatcherAssignment("")
	assert.Error(t, err)
}

func TestParseThreadDispatcherAssignment_RejectsBlankDispatcherName(t *testing.T) {
	t.Parallel()

	_, err := config.ParseThreadDispatcherAssignment("orders,,billing")
	assert.Error(t, err)
}

func TestEngineEnv_ToEngineConfig(t *testing.T) {
	t.Parallel()

	env := config.EngineEnv{
		SchedulerPoolSize:          1,
		DefaultQueueSize:           1000,
		ThreadDispatcherAssignment: "subscriptions",
		BackoffBaseDelayMicros:     10,
		BackoffMultiplier:          1.5,
		BackoffMaxDelayMicros:      10000,
	}

	_, err := env.ToEngineConfig()
	require.NoError(t, err)
}

func TestEngineEnv_ToEngineConfig_PropagatesAssignmentError(t *testing.T) {
	t.Parallel()

	env := config.EngineEnv{
		SchedulerPoolSize:          1,
		DefaultQueueSize:           1000,
		ThreadDispatcherAssignment: "",
		BackoffBaseDelayMicros:     10,
		BackoffMultiplier:          1.5,
		BackoffMaxDelayMicros:      10000,
	}

	_, err := env.ToEngineConfig()
	assert.Error(t, err)
}

func namesToStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
