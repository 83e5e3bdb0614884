package processor

import "errors"

// Construction errors.
var (
	ErrNoHandlers  = errors.New("processor: at least one handler must be installed at construction")
	ErrQueueTooSmall = errors.New("processor: queue size must be >= 1")
	ErrQueueTooLarge = errors.New("processor: queue size must be <= 1,000,000")
)

// ErrSelfStopDeadlock is returned by a Stop call made from within the
// target processor's own running handler, where blocking on drain would
// deadlock the task lock the handler is currently holding.
var ErrSelfStopDeadlock = errors.New("processor: cannot stop self from within own handler")
