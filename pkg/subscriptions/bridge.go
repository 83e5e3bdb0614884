package subscriptions

import (
	"context"

	"github.com/dmitrymomot/actormesh/core/dispatcher"
	"github.com/dmitrymomot/actormesh/core/engine"
	"github.com/dmitrymomot/actormesh/core/processor"
	"github.com/dmitrymomot/actormesh/pkg/broadcast"
)

// tick is the internal self-posted message that keeps a subscription
// bridge processor running: each delivery drains whatever is currently
// queued on the topic's broadcast channel, then re-posts tick to itself so
// the next worker cycle drains again.
type tick struct{}

// RegisterSubscriptionProcessor builds and registers a processor, pinned to
// the reserved "subscriptions" dispatcher name, that bridges topic's
// broadcast delivery (channel-based, outside the core) into onMessage
// calls driven by the core's own dispatch cycle. ctx bounds the
// underlying broadcast subscription's lifetime — when ctx is done the
// subscription's channel closes and the bridge simply stops draining
// anything further; the caller is still responsible for eventually
// stopping the processor itself via engine.Stop.
func RegisterSubscriptionProcessor[T any](
	ctx context.Context,
	e *engine.Engine,
	id string,
	hub *Hub[T],
	topic string,
	onMessage func(T),
) error {
	sub := hub.Subscribe(ctx, topic)

	var proc *processor.Processor
	handler := processor.HandlerFunc(func(_ context.Context, _ processor.Control, msg any) bool {
		if _, ok := msg.(tick); !ok {
			return false
		}
		drainTopic(sub, onMessage)
		proc.Post(tick{})
		return true
	})

	p, err := processor.New(dispatcher.SubscriptionsName, handler,
		processor.WithID(id),
		processor.WithQueueSize(e.DefaultQueueSize()),
	)
	if err != nil {
		return err
	}
	proc = p

	if err := e.Register(p); err != nil {
		return err
	}
	p.Post(tick{})
	return nil
}

// drainTopic delivers every message currently buffered on sub's channel,
// without blocking — exactly one RunOnce cycle's worth of draining.
func drainTopic[T any](sub broadcast.Subscriber[T], onMessage func(T)) {
	ch := sub.Receive(context.Background())
	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			onMessage(msg.Data)
		default:
			return
		}
	}
}
