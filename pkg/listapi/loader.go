package listapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pagekit/pkg/reactive"
)

// loader tracks the Loading/Error cells and the fetches in flight.
// It is shared by all four helpers.
type loader struct {
	// Loading is true from the moment a load is triggered until a fetch settles.
	Loading *reactive.Ref[bool]

	// Error holds the last fetch failure. It is never cleared by a success.
	Error *reactive.Ref[error]

	log        zerolog.Logger
	staleGuard bool

	mu       sync.Mutex
	idle     *sync.Cond
	issued   uint64
	inflight int
}

// fetchFunc performs one fetch and returns how to publish its result.
type fetchFunc func() (publish func(), err error)

func newLoader(o options, kind string) *loader {
	l := &loader{
		Loading:    reactive.NewRef(false),
		Error:      reactive.NewRef[error](nil),
		log:        o.logger.With().Str("component", "listapi").Str("api", kind).Logger(),
		staleGuard: o.staleGuard,
	}
	l.idle = sync.NewCond(&l.mu)
	return l
}

// start registers a fetch as in flight and runs it on its own goroutine.
func (l *loader) start(fetch fetchFunc) {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.inflight++
	l.mu.Unlock()

	go l.run(seq, fetch)
}

func (l *loader) run(seq uint64, fetch fetchFunc) {
	started := time.Now()
	l.log.Debug().Uint64("seq", seq).Msg("fetch started")

	publish, err := safeFetch(fetch)

	l.mu.Lock()
	stale := l.staleGuard && seq < l.issued
	l.mu.Unlock()

	switch {
	case stale:
		l.log.Debug().Uint64("seq", seq).Msg("discarding stale result")
	case err != nil:
		l.log.Debug().Uint64("seq", seq).Err(err).Dur("duration", time.Since(started)).Msg("fetch failed")
		l.Error.Set(err)
		l.Loading.Set(false)
	default:
		l.log.Debug().Uint64("seq", seq).Dur("duration", time.Since(started)).Msg("fetch settled")
		publish()
		l.Loading.Set(false)
	}

	l.mu.Lock()
	l.inflight--
	if l.inflight == 0 {
		l.idle.Broadcast()
	}
	l.mu.Unlock()
}

// safeFetch turns a panicking fetcher into an error so it lands in Error.
//
//nolint:nonamedreturns // Named returns are required to set the error from recover.
func safeFetch(fetch fetchFunc) (publish func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			publish = nil
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	publish, err = fetch()
	if err == nil && publish == nil {
		publish = func() {}
	}
	return publish, err
}

// Wait blocks until no fetch is in flight. Pending debounce windows are not
// waited for; call Flush first to start them.
func (l *loader) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.inflight > 0 {
		l.idle.Wait()
	}
}

// InFlight returns the number of fetches that have started but not settled.
func (l *loader) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight
}

// cancelPending clears Loading after a debounce window was dropped. A fetch
// still in flight clears it itself when it settles.
func (l *loader) cancelPending() {
	l.mu.Lock()
	busy := l.inflight > 0
	l.mu.Unlock()

	if !busy {
		l.log.Debug().Msg("pending load cancelled")
		l.Loading.Set(false)
	}
}

func (l *loader) trigger(reason string) {
	l.log.Debug().Str("reason", reason).Msg("load triggered")
	l.Loading.Set(true)
}
