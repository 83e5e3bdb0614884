package dispatcher

import "errors"

// InternalError conditions, raised only on invariant violations — never in
// ordinary operation.
var (
	ErrNotFound = errors.New("dispatcher: entry not present in ready queue")
)
