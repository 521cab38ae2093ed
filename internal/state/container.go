package state

import (
	"errors"
	"sync"
	"sync/atomic"
)

// errUnchanged is returned by an update function that leaves the state as is
var errUnchanged = errors.New("state unchanged")

type versioned[S any] struct {
	version uint64
	state   S
}

// container serializes read-modify-write cycles over a state record S and
// publishes each new record atomically
type container[S any] struct {
	name    string
	mu      sync.Mutex
	current atomic.Pointer[versioned[S]]
	persist func(S)
	metrics *Metrics
}

func newContainer[S any](name string, initial S, persist func(S), metrics *Metrics) *container[S] {
	c := &container[S]{
		name:    name,
		persist: persist,
		metrics: metrics,
	}
	c.current.Store(&versioned[S]{state: initial})
	return c
}

func (c *container[S]) load() *versioned[S] {
	return c.current.Load()
}

// update applies fn to the current record. The record fn receives must not be
// modified in place. Returning errUnchanged is a successful no-op; any other
// error rejects the mutation before anything is published.
func (c *container[S]) update(op string, fn func(S) (S, error)) (S, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.current.Load()
	next, err := fn(cur.state)
	if err != nil {
		if errors.Is(err, errUnchanged) {
			return cur.state, nil
		}
		return cur.state, err
	}

	c.current.Store(&versioned[S]{version: cur.version + 1, state: next})
	c.metrics.mutation(c.name, op)

	// slot writes happen under mu so they land in publish order. A slow
	// backend holds the next mutation for at most the slot timeout.
	if c.persist != nil {
		c.persist(next)
	}

	return next, nil
}
