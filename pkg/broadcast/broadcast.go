package broadcast

import "context"

// Message wraps a broadcast payload, allowing type-safe fan-out of any data
// type through a Broadcaster[T].
type Message[T any] struct {
	Data T
}

// Broadcaster sends messages to every currently-subscribed Subscriber.
type Broadcaster[T any] interface {
	// Subscribe registers a new Subscriber, automatically cleaned up when
	// ctx is done.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every active subscriber, non-blocking: a
	// subscriber whose buffer is full simply does not receive this message.
	Broadcast(ctx context.Context, msg Message[T])

	// Close releases all subscribers and stops accepting new ones.
	Close()
}

// Subscriber receives messages delivered by a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. The channel is closed
	// when the subscriber's context is done or Close is called.
	Receive(ctx context.Context) <-chan Message[T]

	// Close unsubscribes, releasing the underlying channel.
	Close()
}
