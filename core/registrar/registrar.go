package registrar

import (
	"sync"

	"github.com/dmitrymomot/actormesh/core/processor"
)

// Handle is the narrow view the registrar needs of a registered processor.
// core/processor.Processor satisfies this directly.
type Handle interface {
	ID() string
	Post(msg any) processor.PostResult
}

// Registrar is a concurrent ProcessorId → Handle map. It is safe for
// concurrent use by any number of goroutines without a coarse engine lock,
// per §4.3.
type Registrar struct {
	mu    sync.RWMutex
	byID  map[string]Handle
}

// New constructs an empty Registrar.
func New() *Registrar {
	return &Registrar{byID: make(map[string]Handle)}
}

// Register inserts p under p.ID(), failing with ErrDuplicateID if an entry
// already exists for that id.
func (r *Registrar) Register(p Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[p.ID()]; exists {
		return ErrDuplicateID
	}
	r.byID[p.ID()] = p
	return nil
}

// Unregister removes id. Idempotent: removing an id not present is a no-op.
func (r *Registrar) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Get looks up id, reporting whether it is currently registered.
func (r *Registrar) Get(id string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byID[id]
	return h, ok
}

// Has reports whether id is currently registered, without exposing the
// handle. Used by the worker loop's guarded requeue check (§4.5.5).
func (r *Registrar) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// PostByID posts msg to the processor registered under id. Returns
// ErrUnknownID if no such processor is registered; otherwise delegates to
// the processor's own Post and returns its PostResult.
func (r *Registrar) PostByID(id string, msg any) (processor.PostResult, error) {
	r.mu.RLock()
	h, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return processor.PostResult{}, ErrUnknownID
	}
	return h.Post(msg), nil
}

// Len reports the number of currently registered processors, for Stats.
func (r *Registrar) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
