package delayq

import (
	"time"

	"github.com/google/uuid"
)

// Delivery is one scheduled message: deliver Message to ProcessorID at
// DeliverAt, once, unless Recurring names an interval to reschedule on.
type Delivery struct {
	ID          uuid.UUID
	ProcessorID string
	Message     any
	DeliverAt   time.Time
	Recurring   *time.Duration
}

// IsRecurring reports whether this delivery reschedules itself after
// firing, rather than being marked delivered once.
func (d Delivery) IsRecurring() bool { return d.Recurring != nil }
