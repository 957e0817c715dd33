// Package debounce delays a call until its trigger has been quiet for a while.
//
// A Debouncer collapses a burst of Trigger calls into a single invocation of
// the wrapped function, made with the arguments of the last Trigger once the
// wait duration has elapsed without a newer one. The function does not run on
// the caller's goroutine; with the real clock it runs on the timer goroutine,
// so invocations from separate windows may overlap.
package debounce

import (
	"sync"
	"time"
)

// Debouncer wraps fn so that only the latest arguments of a burst are used.
// The zero value is not usable; use New.
type Debouncer[A any] struct {
	wait  time.Duration
	clock Clock
	fn    func(A)

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	args    A
}

// New returns a Debouncer that calls fn wait after the last Trigger.
// A nil clock selects the real clock.
func New[A any](wait time.Duration, clock Clock, fn func(A)) *Debouncer[A] {
	if clock == nil {
		clock = RealClock()
	}
	if wait < 0 {
		wait = 0
	}
	return &Debouncer[A]{
		wait:  wait,
		clock: clock,
		fn:    fn,
	}
}

// Trigger restarts the quiet window and remembers args as the latest call.
// Any invocation scheduled by an earlier Trigger that has not started yet is discarded.
func (d *Debouncer[A]) Trigger(args A) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = true
	d.args = args

	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// fire runs fn unless the window it belongs to was superseded or cancelled.
func (d *Debouncer[A]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	args := d.take()
	d.mu.Unlock()

	d.fn(args)
}

// take clears the pending state. Must be called with mu held.
func (d *Debouncer[A]) take() A {
	args := d.args
	var zero A
	d.args = zero
	d.pending = false
	d.timer = nil
	return args
}

// Flush runs a pending invocation immediately on the caller's goroutine.
// It reports whether anything was pending.
func (d *Debouncer[A]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	args := d.take()
	d.mu.Unlock()

	d.fn(args)
	return true
}

// Stop cancels a pending invocation and reports whether there was one.
// Trigger may be called again afterwards.
func (d *Debouncer[A]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	pending := d.pending
	d.take()
	return pending
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Wait returns the configured quiet period.
func (d *Debouncer[A]) Wait() time.Duration {
	return d.wait
}
