package repository

import (
	"context"
	"sort"
	"sync"
)

type memorySlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepository creates a process-local SlotRepository. Contents are
// lost on restart.
func NewMemorySlotRepository() SlotRepository {
	return &memorySlotRepository{slots: make(map[string][]byte)}
}

func (r *memorySlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *memorySlotRepository) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *memorySlotRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[key]; !ok {
		return ErrSlotNotFound
	}
	delete(r.slots, key)
	return nil
}

func (r *memorySlotRepository) Keys(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.slots))
	for key := range r.slots {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
