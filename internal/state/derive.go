package state

import "sync"

// derivation is a lazily computed view of a state record, cached for the
// record version it was computed from
type derivation[S, T any] struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	value   T
	runs    int
	compute func(S) T
}

func derive[S, T any](compute func(S) T) *derivation[S, T] {
	return &derivation[S, T]{compute: compute}
}

func (d *derivation[S, T]) get(v *versioned[S]) T {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.valid || d.version != v.version {
		d.value = d.compute(v.state)
		d.version = v.version
		d.valid = true
		d.runs++
	}

	return d.value
}
