package reactive

import (
	"reflect"
	"sync"
)

// Readable is a cell that can be observed but not written.
type Readable[T any] interface {
	// Get returns the current value.
	Get() T
	// Subscribe registers fn to be called with each new value.
	// The returned function removes the subscription.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Cell is an observable value with get/set and change notification.
type Cell[T any] interface {
	Readable[T]
	// Set replaces the value and notifies subscribers if it changed.
	Set(v T)
}

// Dependency is anything a Computed can recompute from.
type Dependency interface {
	OnChange(fn func()) (unsubscribe func())
}

// EqualFunc reports whether two values are the same for notification purposes.
type EqualFunc[T any] func(a, b T) bool

// DeepEqual is the default EqualFunc.
func DeepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// Never treats every Set as a change.
func Never[T any](_, _ T) bool {
	return false
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// subscribers keeps callbacks in registration order.
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID int
	list   []subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.list = append(s.list, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.list {
				if sub.id == id {
					s.list = append(s.list[:i:i], s.list[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *subscribers[T]) snapshot() []subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]subscriber[T], len(s.list))
	copy(out, s.list)
	return out
}

func (s *subscribers[T]) notify(v T) {
	for _, sub := range s.snapshot() {
		sub.fn(v)
	}
}

// Ref is a mutable observable cell. It is safe for concurrent use.
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
	equal EqualFunc[T]
	subs  subscribers[T]
}

// NewRef creates a Ref holding initial, compared with DeepEqual.
func NewRef[T any](initial T) *Ref[T] {
	return NewRefWithEqual(initial, DeepEqual[T])
}

// NewRefWithEqual creates a Ref that uses equal to suppress no-op notifications.
func NewRefWithEqual[T any](initial T, equal EqualFunc[T]) *Ref[T] {
	if equal == nil {
		equal = DeepEqual[T]
	}
	return &Ref[T]{value: initial, equal: equal}
}

// Get returns the current value.
func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set stores v. Subscribers are notified only when v differs from the previous value.
func (r *Ref[T]) Set(v T) {
	r.mu.Lock()
	changed := !r.equal(r.value, v)
	r.value = v
	r.mu.Unlock()

	if changed {
		r.subs.notify(v)
	}
}

// Update applies fn to the current value and stores the result.
func (r *Ref[T]) Update(fn func(T) T) {
	r.Set(fn(r.Get()))
}

// Subscribe implements Readable.
func (r *Ref[T]) Subscribe(fn func(T)) func() {
	return r.subs.add(fn)
}

// OnChange implements Dependency.
func (r *Ref[T]) OnChange(fn func()) func() {
	return r.subs.add(func(T) { fn() })
}

// Watch subscribes fn to src. When immediate is true fn is also invoked once
// with the current value before Watch returns.
func Watch[T any](src Readable[T], fn func(T), immediate bool) (stop func()) {
	stop = src.Subscribe(fn)
	if immediate {
		fn(src.Get())
	}
	return stop
}
