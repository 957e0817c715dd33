package listapi

import (
	"context"

	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

// ReadList fetches a complete list.
type ReadList[T any] func(ctx context.Context) ([]T, error)

// ReadFilteredList fetches the list matching filter.
type ReadFilteredList[T, F any] func(ctx context.Context, filter F) ([]T, error)

// ListAPI loads a list once on creation and again on every Update.
// It has no debounce: each Update fetches immediately.
type ListAPI[T any] struct {
	*loader

	// Items is the last successfully fetched list, replaced wholesale.
	Items *reactive.Ref[[]T]

	// ItemsID changes on every successful load. It is "" before the first one.
	ItemsID *reactive.Ref[string]

	ctx      context.Context
	read     ReadList[T]
	newToken pagination.TokenFunc
}

// NewListAPI creates the helper and starts the first load.
// The debounce and pagination options are ignored.
func NewListAPI[T any](ctx context.Context, read ReadList[T], opts ...Option) *ListAPI[T] {
	o := newOptions(opts)
	a := &ListAPI[T]{
		loader:   newLoader(o, "list"),
		Items:    reactive.NewRef([]T{}),
		ItemsID:  reactive.NewRef(""),
		ctx:      ctx,
		read:     read,
		newToken: o.newToken,
	}
	a.Update()
	return a
}

// Update sets Loading and fetches the list.
func (a *ListAPI[T]) Update() {
	a.trigger("update")
	a.start(func() (func(), error) {
		items, err := a.read(a.ctx)
		if err != nil {
			return nil, err
		}
		return func() {
			a.Items.Set(items)
			a.ItemsID.Set(a.newToken())
		}, nil
	})
}

// Close is a no-op kept for symmetry with the debounced helpers.
func (a *ListAPI[T]) Close() {}

// FilteredListAPI reloads a list whenever its filter changes, after a debounce.
// A nil filter means "not ready": nothing is loaded until it is set.
type FilteredListAPI[T, F any] struct {
	*loader

	// Items is the last successfully fetched list, replaced wholesale.
	Items *reactive.Ref[[]T]

	// ItemsID changes on every successful load. It is "" before the first one.
	ItemsID *reactive.Ref[string]

	ctx       context.Context
	read      ReadFilteredList[T, F]
	filter    reactive.Readable[*F]
	newToken  pagination.TokenFunc
	debouncer *debounce.Debouncer[F]
	stopWatch func()
}

// NewFilteredListAPI creates the helper. The current filter value, if set,
// schedules the first load.
func NewFilteredListAPI[T, F any](
	ctx context.Context,
	read ReadFilteredList[T, F],
	filter reactive.Readable[*F],
	opts ...Option,
) *FilteredListAPI[T, F] {
	o := newOptions(opts)
	a := &FilteredListAPI[T, F]{
		loader:   newLoader(o, "filtered_list"),
		Items:    reactive.NewRef([]T{}),
		ItemsID:  reactive.NewRef(""),
		ctx:      ctx,
		read:     read,
		filter:   filter,
		newToken: o.newToken,
	}
	a.debouncer = debounce.New(o.debounce, o.clock, a.load)
	a.stopWatch = reactive.Watch(filter, func(*F) { a.Update() }, true)
	return a
}

// Update schedules a debounced load with the current filter.
// It does nothing while the filter is nil.
func (a *FilteredListAPI[T, F]) Update() {
	f := a.filter.Get()
	if f == nil {
		return
	}
	a.trigger("update")
	a.debouncer.Trigger(*f)
}

func (a *FilteredListAPI[T, F]) load(filter F) {
	a.start(func() (func(), error) {
		items, err := a.read(a.ctx, filter)
		if err != nil {
			return nil, err
		}
		return func() {
			a.Items.Set(items)
			a.ItemsID.Set(a.newToken())
		}, nil
	})
}

// Flush starts a pending debounced load immediately.
func (a *FilteredListAPI[T, F]) Flush() bool {
	return a.debouncer.Flush()
}

// Close stops watching the filter and drops any pending load, clearing Loading
// unless a fetch is in flight. Fetches already in flight still settle.
func (a *FilteredListAPI[T, F]) Close() {
	a.stopWatch()
	if a.debouncer.Stop() {
		a.cancelPending()
	}
}
