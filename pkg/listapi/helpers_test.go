package listapi

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/pagekit/pkg/debounce"
)

const (
	testDebounce = DefaultDebounce
	waitTimeout  = time.Second
	tick         = time.Millisecond
)

type outcome[R any] struct {
	value R
	err   error
}

// promise is a fetch result the test settles explicitly.
type promise[R any] struct {
	ch chan outcome[R]
}

func newPromise[R any]() *promise[R] {
	return &promise[R]{ch: make(chan outcome[R], 1)}
}

func (p *promise[R]) resolve(v R) {
	p.ch <- outcome[R]{value: v}
}

func (p *promise[R]) reject(err error) {
	p.ch <- outcome[R]{err: err}
}

func (p *promise[R]) await() (R, error) {
	o := <-p.ch
	return o.value, o.err
}

// stub records fetch arguments. Queued promises answer calls in order;
// once the queue is empty the fallback answers.
type stub[A, R any] struct {
	mu       sync.Mutex
	calls    []A
	queued   []*promise[R]
	fallback func() (R, error)
}

func newStub[A, R any](fallback R) *stub[A, R] {
	return &stub[A, R]{fallback: func() (R, error) { return fallback, nil }}
}

func (s *stub[A, R]) once(p *promise[R]) *stub[A, R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, p)
	return s
}

func (s *stub[A, R]) thenReturn(v R) {
	p := newPromise[R]()
	p.resolve(v)
	s.once(p)
}

func (s *stub[A, R]) thenFail(err error) {
	p := newPromise[R]()
	p.reject(err)
	s.once(p)
}

func (s *stub[A, R]) fetch(args A) (R, error) {
	s.mu.Lock()
	s.calls = append(s.calls, args)
	var p *promise[R]
	if len(s.queued) > 0 {
		p = s.queued[0]
		s.queued = s.queued[1:]
	}
	s.mu.Unlock()

	if p != nil {
		return p.await()
	}
	return s.fallback()
}

func (s *stub[A, R]) Calls() []A {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]A(nil), s.calls...)
}

func (s *stub[A, R]) last() A {
	calls := s.Calls()
	if len(calls) == 0 {
		var zero A
		return zero
	}
	return calls[len(calls)-1]
}

func (s *stub[A, R]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// waitForCalls blocks until the fetcher has been entered n times.
func (s *stub[A, R]) waitForCalls(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(s.Calls()) >= n },
		waitTimeout, tick, "expected %d fetch calls", n)
}

func newTestClock() *debounce.ManualClock {
	return debounce.NewManualClock(time.Unix(0, 0))
}

// sequentialTokens returns a token func yielding "t1", "t2", ...
func sequentialTokens() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "t" + strconv.Itoa(n)
	}
}

func ptr[T any](v T) *T {
	return &v
}
