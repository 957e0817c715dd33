package reactive

import "sync"

// Computed is a read-only cell derived from one or more dependencies.
// It recomputes eagerly whenever a dependency changes and notifies its own
// subscribers only when the derived value differs from the previous one.
type Computed[T any] struct {
	mu      sync.RWMutex
	value   T
	compute func() T
	equal   EqualFunc[T]
	subs    subscribers[T]
	unsubs  []func()
}

// NewComputed derives a cell from compute, recomputing when any dep changes.
func NewComputed[T any](compute func() T, deps ...Dependency) *Computed[T] {
	c := &Computed[T]{
		value:   compute(),
		compute: compute,
		equal:   DeepEqual[T],
	}
	for _, dep := range deps {
		c.unsubs = append(c.unsubs, dep.OnChange(c.recompute))
	}
	return c
}

func (c *Computed[T]) recompute() {
	next := c.compute()

	c.mu.Lock()
	changed := !c.equal(c.value, next)
	c.value = next
	c.mu.Unlock()

	if changed {
		c.subs.notify(next)
	}
}

// Get returns the last derived value.
func (c *Computed[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Subscribe implements Readable.
func (c *Computed[T]) Subscribe(fn func(T)) func() {
	return c.subs.add(fn)
}

// OnChange implements Dependency so computed cells can be chained.
func (c *Computed[T]) OnChange(fn func()) func() {
	return c.subs.add(func(T) { fn() })
}

// Close detaches the cell from its dependencies. The last value stays readable.
func (c *Computed[T]) Close() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}
