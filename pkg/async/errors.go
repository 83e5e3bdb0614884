package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the duration elapses
	// before the underlying function completes.
	ErrTimeout = errors.New("async: timeout waiting for completion")

	// ErrNoFutures is returned by ExecAny when called with no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
