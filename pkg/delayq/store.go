package delayq

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists scheduled deliveries. NewMemoryStore is the default
// implementation, mirroring core/queue/memory_storage.go's role as the
// default Storage backend for tests and small deployments.
type Store interface {
	// Schedule persists a new delivery.
	Schedule(ctx context.Context, d Delivery) error

	// DueDeliveries returns every delivery whose DeliverAt is at or before
	// before, in no particular order.
	DueDeliveries(ctx context.Context, before time.Time) ([]Delivery, error)

	// MarkDelivered removes a one-time delivery once it has been posted.
	MarkDelivered(ctx context.Context, id uuid.UUID) error

	// Reschedule moves a recurring delivery's DeliverAt forward to next.
	Reschedule(ctx context.Context, id uuid.UUID, next time.Time) error
}

// MemoryStore is an in-process, mutex-guarded Store.
type MemoryStore struct {
	mu         sync.Mutex
	deliveries map[uuid.UUID]Delivery
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{deliveries: make(map[uuid.UUID]Delivery)}
}

func (s *MemoryStore) Schedule(_ context.Context, d Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries[d.ID] = d
	return nil
}

func (s *MemoryStore) DueDeliveries(_ context.Context, before time.Time) ([]Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]Delivery, 0)
	for _, d := range s.deliveries {
		if !d.DeliverAt.After(before) {
			due = append(due, d)
		}
	}
	return due, nil
}

func (s *MemoryStore) MarkDelivered(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deliveries[id]; !ok {
		return ErrDeliveryNotFound
	}
	delete(s.deliveries, id)
	return nil
}

func (s *MemoryStore) Reschedule(_ context.Context, id uuid.UUID, next time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deliveries[id]
	if !ok {
		return ErrDeliveryNotFound
	}
	d.DeliverAt = next
	s.deliveries[id] = d
	return nil
}
