package subscriptions

import (
	"context"
	"sync"

	"github.com/dmitrymomot/actormesh/pkg/broadcast"
)

// Hub owns one broadcast.Broadcaster[T] per topic name, created lazily the
// first time a topic is published to or subscribed on.
type Hub[T any] struct {
	bufferSize int

	mu     sync.Mutex
	topics map[string]*broadcast.MemoryBroadcaster[T]
}

// NewHub constructs a Hub whose per-topic broadcasters buffer bufferSize
// messages per subscriber.
func NewHub[T any](bufferSize int) *Hub[T] {
	return &Hub[T]{
		bufferSize: bufferSize,
		topics:     make(map[string]*broadcast.MemoryBroadcaster[T]),
	}
}

func (h *Hub[T]) broadcaster(topic string) *broadcast.MemoryBroadcaster[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.topics[topic]
	if !ok {
		b = broadcast.NewMemoryBroadcaster[T](h.bufferSize)
		h.topics[topic] = b
	}
	return b
}

// Publish broadcasts data to every current subscriber of topic.
func (h *Hub[T]) Publish(ctx context.Context, topic string, data T) {
	h.broadcaster(topic).Broadcast(ctx, broadcast.Message[T]{Data: data})
}

// Subscribe returns a Subscriber for topic, torn down automatically when
// ctx is done.
func (h *Hub[T]) Subscribe(ctx context.Context, topic string) broadcast.Subscriber[T] {
	return h.broadcaster(topic).Subscribe(ctx)
}

// Close releases every topic's broadcaster.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, b := range h.topics {
		b.Close()
	}
	h.topics = make(map[string]*broadcast.MemoryBroadcaster[T])
}
