package engine

import "errors"

// Configuration errors, raised at New.
var (
	ErrSchedulerPoolSizeInvalid        = errors.New("engine: scheduler_pool_size must be >= 1")
	ErrThreadDispatcherAssignmentEmpty = errors.New("engine: thread_dispatcher_assignment must have at least one entry")
	ErrThreadAssignmentEmpty           = errors.New("engine: each thread's dispatcher assignment must be non-empty")
	ErrPoolSizeMismatch                = errors.New("engine: scheduler_pool_size must equal the number of thread_dispatcher_assignment entries")
	ErrDefaultQueueSizeInvalid         = errors.New("engine: default_queue_size must be in [1, 1000000]")
	ErrSubscriptionsNotAssigned        = errors.New("engine: reserved dispatcher \"subscriptions\" must be assigned to at least one thread")
)

// Lifecycle and operational errors.
var (
	ErrAlreadyStarted    = errors.New("engine: already started")
	ErrNotStarted        = errors.New("engine: not started")
	ErrUnknownDispatcher = errors.New("engine: processor names a dispatcher not present in config")
	ErrInternal          = errors.New("engine: internal invariant violation")
)
