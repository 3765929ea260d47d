package picker

import (
	"context"
	"sync"
)

// MemoryHistory is a bounded FIFO of keys held in process memory. It is
// lost on restart.
type MemoryHistory struct {
	mu       sync.Mutex
	keys     []string
	capacity int
}

// NewMemoryHistory creates an empty history holding at most capacity keys.
// A capacity below 1 uses DefaultCapacity.
func NewMemoryHistory(capacity int) *MemoryHistory {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &MemoryHistory{
		keys:     make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Recent returns a copy of the stored keys, oldest first.
func (h *MemoryHistory) Recent(_ context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out, nil
}

// Push appends key, dropping the oldest key when over capacity.
func (h *MemoryHistory) Push(_ context.Context, key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.keys = append(h.keys, key)
	if excess := len(h.keys) - h.capacity; excess > 0 {
		h.keys = append(h.keys[:0], h.keys[excess:]...)
	}
	return nil
}

// Reset removes every key.
func (h *MemoryHistory) Reset(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.keys = h.keys[:0]
	return nil
}

// Len returns the number of stored keys.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.keys)
}
