package listapi

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/pagination"
)

// DefaultDebounce is the quiet period before a triggered reload runs.
const DefaultDebounce = 500 * time.Millisecond

// DefaultRowsPerPageVariants are the page sizes offered by the page helpers.
//
//nolint:gochecknoglobals // Read-only defaults; copied before use.
var DefaultRowsPerPageVariants = []int{10, 25, 50}

// Option configures a helper.
type Option func(*options)

type options struct {
	debounce   time.Duration
	variants   []int
	clock      debounce.Clock
	newToken   pagination.TokenFunc
	logger     zerolog.Logger
	staleGuard bool
}

func newOptions(opts []Option) options {
	o := options{
		debounce: DefaultDebounce,
		variants: append([]int(nil), DefaultRowsPerPageVariants...),
		clock:    debounce.RealClock(),
		newToken: pagination.NewToken,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDebounce overrides the debounce window. Negative values mean no delay.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.debounce = d
	}
}

// WithDebounceMs overrides the debounce window in milliseconds.
func WithDebounceMs(ms int) Option {
	return WithDebounce(time.Duration(ms) * time.Millisecond)
}

// WithRowsPerPageVariants sets the allowed page sizes. The first one is the
// initial size; an empty list falls back to pagination.DefaultRowsPerPage.
func WithRowsPerPageVariants(variants ...int) Option {
	return func(o *options) {
		o.variants = append([]int(nil), variants...)
	}
}

// WithClock replaces the clock driving the debounce timer.
func WithClock(c debounce.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithTokenFunc replaces the freshness token generator.
func WithTokenFunc(f pagination.TokenFunc) Option {
	return func(o *options) {
		if f != nil {
			o.newToken = f
		}
	}
}

// WithLogger sets the logger used for load lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStaleGuard makes the helper ignore a completion when a newer fetch has
// been started since, so results always reflect the latest request.
func WithStaleGuard() Option {
	return func(o *options) {
		o.staleGuard = true
	}
}
