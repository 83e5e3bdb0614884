package config

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
)

// EngineEnv is the environment-variable-backed configuration surface for
// core/engine, loaded via Load/MustLoad and translated to an engine.Config
// by ToEngineConfig.
type EngineEnv struct {
	SchedulerPoolSize          int     `env:"ENGINE_SCHEDULER_POOL_SIZE,required"`
	DefaultQueueSize           int     `env:"ENGINE_DEFAULT_QUEUE_SIZE" envDefault:"10000"`
	ThreadDispatcherAssignment string  `env:"ENGINE_THREAD_DISPATCHER_ASSIGNMENT,required"`
	BackoffBaseDelayMicros     int64   `env:"ENGINE_BACKOFF_BASE_DELAY_MICROS" envDefault:"10"`
	BackoffMultiplier          float64 `env:"ENGINE_BACKOFF_MULTIPLIER" envDefault:"1.5"`
	BackoffMaxDelayMicros      int64   `env:"ENGINE_BACKOFF_MAX_DELAY_MICROS" envDefault:"10000"`
}

// ParseThreadDispatcherAssignment parses the ';'-separated-threads,
// ','-separated-dispatchers-per-thread format described in this engine's
// external interfaces: each thread's entry is a list of dispatcher names it
// services, in round-robin priority order.
func ParseThreadDispatcherAssignment(raw string) ([][]dispatcher.Name, error) {
	threads := strings.Split(raw, ";")
	assignment := make([][]dispatcher.Name, 0, len(threads))
	for i, thread := range threads {
		thread = strings.TrimSpace(thread)
		if thread == "" {
			continue // tolerate a trailing ';' as the example in the config surface shows
		}
		names := strings.Split(thread, ",")
		entry := make([]dispatcher.Name, 0, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				return nil, fmt.Errorf("config: thread %d: empty dispatcher name", i)
			}
			entry = append(entry, dispatcher.Name(n))
		}
		assignment = append(assignment, entry)
	}
	if len(assignment) == 0 {
		return nil, fmt.Errorf("config: ENGINE_THREAD_DISPATCHER_ASSIGNMENT has no thread entries")
	}
	return assignment, nil
}

// ToEngineConfig translates a loaded EngineEnv into a validated
// engine.Config. All of engine.NewConfig's own validation still applies —
// this only handles the env-specific string parsing, it does not duplicate
// the invariant checks engine.NewConfig already performs.
func (e EngineEnv) ToEngineConfig(opts ...engine.ConfigOption) (engine.Config, error) {
	assignment, err := ParseThreadDispatcherAssignment(e.ThreadDispatcherAssignment)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.NewConfig(
		e.SchedulerPoolSize,
		assignment,
		e.DefaultQueueSize,
		engine.BackoffConfig{
			BaseDelayMicros: e.BackoffBaseDelayMicros,
			Multiplier:      e.BackoffMultiplier,
			MaxDelayMicros:  e.BackoffMaxDelayMicros,
		},
		opts...,
	)
}
