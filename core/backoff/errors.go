package backoff

import "errors"

// Configuration errors, returned by New.
var (
	ErrBaseDelayTooSmall  = errors.New("backoff: base delay must be >= 1 microsecond")
	ErrMultiplierTooSmall = errors.New("backoff: multiplier must be > 1.0")
	ErrMaxBelowBase       = errors.New("backoff: max delay must be >= base delay")
)
