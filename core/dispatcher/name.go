package dispatcher

// Name is an opaque dispatcher identifier. A name is valid for an engine only
// if its configuration's thread_dispatcher_assignment lists it; the zero
// value "" is the default name and, like any other, must be assigned to a
// thread before processors can register on it.
type Name string

// SubscriptionsName is reserved for the pub/sub collaborator (pkg/subscriptions).
// The core never attaches special behavior to it; it only requires that
// configurations assign at least one worker thread to it.
const SubscriptionsName Name = "subscriptions"

// DefaultName is the empty-string dispatcher name for processors with no
// particular affinity. It is usable only in configurations that assign it.
const DefaultName Name = ""
