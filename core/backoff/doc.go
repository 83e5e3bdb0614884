// Package backoff implements the pure exponential-delay policy used by worker
// loops to park for a growing delay after repeated failures to acquire their
// dispatchers' locks. A dispatcher whose lock was acquired but whose ready
// queue was empty does not count as a failure.
//
// The policy itself is a pure function: Next(current) returns
// min(current*multiplier, max). Sleeping is a separate, interruptible
// primitive (Sleep) so that callers can abort a wait promptly on shutdown.
package backoff
