package delayq

import "errors"

var (
	ErrDeliveryNotFound = errors.New("delayq: delivery not found")
	ErrNoHandlersSet    = errors.New("delayq: scheduler has no poster configured")
)

// Scheduler lifecycle errors, mirroring core/queue's Scheduler/Worker
// wording for the same states.
var (
	ErrSchedulerAlreadyStarted = errors.New("delayq: scheduler already started")
	ErrSchedulerNotStarted     = errors.New("delayq: scheduler not started")
	ErrSchedulerNotRunning     = errors.New("delayq: scheduler not running")
	ErrHealthcheckFailed       = errors.New("delayq: healthcheck failed")
)
