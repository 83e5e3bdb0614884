package engine

import (
	"log/slog"

	"github.com/dmitrymomot/actormesh/core/backoff"
	"github.com/dmitrymomot/actormesh/core/dispatcher"
)

// BackoffConfig mirrors §3's EngineConfig.backoff fields.
type BackoffConfig struct {
	BaseDelayMicros int64
	Multiplier      float64
	MaxDelayMicros  int64
}

// Config is EngineConfig from §3: validated and immutable once NewConfig returns
// successfully. There is no setter on any field — replacing a config means
// constructing a new Engine.
type Config struct {
	schedulerPoolSize          int
	threadDispatcherAssignment [][]dispatcher.Name
	defaultQueueSize           int
	backoffPolicy              backoff.Policy
	validDispatcherNames       map[dispatcher.Name]struct{}
	logger                     *slog.Logger
}

// ConfigOption configures non-validated, ambient aspects of Config (at
// present, only logging) without growing NewConfig's positional argument
// list — the functional-options convention this module uses everywhere
// else.
type ConfigOption func(*Config)

// WithLogger attaches structured logging to the engine and everything it
// owns (dispatchers, worker loop). Defaults to a silent logger.
func WithLogger(l *slog.Logger) ConfigOption {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConfig validates and constructs a Config, per §3's EngineConfig
// invariants. schedulerPoolSize must equal len(threadDispatcherAssignment):
// the spec treats the pool size as the authoritative worker count and the
// assignment list as the one-entry-per-worker schedule, so a mismatch
// between the two can only mean a misconfiguration — cross-validating them
// here catches it at construction instead of silently using whichever is
// shorter.
func NewConfig(
	schedulerPoolSize int,
	threadDispatcherAssignment [][]dispatcher.Name,
	defaultQueueSize int,
	backoffCfg BackoffConfig,
	opts ...ConfigOption,
) (Config, error) {
	if schedulerPoolSize < 1 {
		return Config{}, ErrSchedulerPoolSizeInvalid
	}
	if len(threadDispatcherAssignment) == 0 {
		return Config{}, ErrThreadDispatcherAssignmentEmpty
	}
	if schedulerPoolSize != len(threadDispatcherAssignment) {
		return Config{}, ErrPoolSizeMismatch
	}
	valid := make(map[dispatcher.Name]struct{})
	for _, assignment := range threadDispatcherAssignment {
		if len(assignment) == 0 {
			return Config{}, ErrThreadAssignmentEmpty
		}
		for _, name := range assignment {
			valid[name] = struct{}{}
		}
	}
	if _, ok := valid[dispatcher.SubscriptionsName]; !ok {
		return Config{}, ErrSubscriptionsNotAssigned
	}
	if defaultQueueSize < 1 || defaultQueueSize > 1_000_000 {
		return Config{}, ErrDefaultQueueSizeInvalid
	}

	policy, err := backoff.New(backoffCfg.BaseDelayMicros, backoffCfg.Multiplier, backoffCfg.MaxDelayMicros)
	if err != nil {
		return Config{}, err
	}

	c := Config{
		schedulerPoolSize:          schedulerPoolSize,
		threadDispatcherAssignment: threadDispatcherAssignment,
		defaultQueueSize:           defaultQueueSize,
		backoffPolicy:              policy,
		validDispatcherNames:       valid,
	}
	c.logger = defaultLogger()
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// IsValidDispatcher reports whether name is one of the dispatchers declared
// in this config's thread_dispatcher_assignment.
func (c Config) IsValidDispatcher(name dispatcher.Name) bool {
	_, ok := c.validDispatcherNames[name]
	return ok
}

// DefaultQueueSize returns the configured default per-processor queue
// capacity. It is not applied automatically — core/processor.New has its
// own hardcoded default, since a bare processor has no Config to consult.
// Callers that build processors for this engine (pkg/procbuilder's
// WithEngineDefaults, pkg/subscriptions' bridge) fetch it through
// Engine.DefaultQueueSize and pass it explicitly as
// processor.WithQueueSize, so it still governs queue capacity everywhere
// a processor is constructed for this engine without an explicit
// per-processor override.
func (c Config) DefaultQueueSize() int { return c.defaultQueueSize }
