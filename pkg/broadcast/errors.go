package broadcast

import "errors"

// Defined for custom Broadcaster/Subscriber implementations. The in-memory
// implementation in this package never returns either: it documents closed
// state through silent no-ops instead (see doc.go's "Error Handling").
var (
	ErrBroadcasterClosed = errors.New("broadcast: broadcaster is closed")
	ErrSubscriberClosed  = errors.New("broadcast: subscriber is closed")
)
