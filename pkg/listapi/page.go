package listapi

import (
	"context"

	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

// ReadPage fetches the page described by p.
type ReadPage[T any] func(ctx context.Context, p pagination.Pagination) (pagination.Page[T], error)

// ReadFilteredPage fetches the page described by p among the rows matching filter.
type ReadFilteredPage[T, F any] func(
	ctx context.Context,
	filter F,
	p pagination.Pagination,
) (pagination.Page[T], error)

// PageAPI reloads a page whenever the page, size or sort changes, after a debounce.
//
// The embedded State exposes CurrentPage, RowsPerPage, Sort and Descriptor;
// the embedded Consumer exposes Content, ContentID, TotalItems and TotalPages.
type PageAPI[T any] struct {
	*loader
	*pagination.State
	*pagination.Consumer[T]

	ctx       context.Context
	read      ReadPage[T]
	debouncer *debounce.Debouncer[struct{}]
	stopWatch func()
}

// NewPageAPI creates the helper. The initial descriptor schedules the first load.
func NewPageAPI[T any](ctx context.Context, read ReadPage[T], opts ...Option) *PageAPI[T] {
	o := newOptions(opts)
	a := &PageAPI[T]{
		loader:   newLoader(o, "page"),
		State:    pagination.NewState(o.variants),
		Consumer: pagination.NewConsumer[T](o.newToken),
		ctx:      ctx,
		read:     read,
	}
	a.debouncer = debounce.New(o.debounce, o.clock, func(struct{}) { a.load() })
	a.stopWatch = reactive.Watch[pagination.Pagination](a.Descriptor, func(pagination.Pagination) {
		a.Update()
	}, true)
	return a
}

// Update schedules a debounced reload of the current page.
func (a *PageAPI[T]) Update() {
	a.trigger("update")
	a.debouncer.Trigger(struct{}{})
}

// load reads the descriptor when the window elapses, not when it opened.
func (a *PageAPI[T]) load() {
	p := a.Pagination()
	a.start(func() (func(), error) {
		page, err := a.read(a.ctx, p)
		if err != nil {
			return nil, err
		}
		return func() { a.Consume(page) }, nil
	})
}

// Flush starts a pending debounced load immediately.
func (a *PageAPI[T]) Flush() bool {
	return a.debouncer.Flush()
}

// Close stops watching the pagination state and drops any pending load,
// clearing Loading unless a fetch is in flight.
func (a *PageAPI[T]) Close() {
	a.stopWatch()
	if a.debouncer.Stop() {
		a.cancelPending()
	}
	a.State.Close()
}

// FilteredPageAPI combines a filter with pagination.
//
// A filter change while on a later page only resets the page to 1; the reload
// then comes from the descriptor change, so the transition fetches once.
// On page 1 a filter change reloads directly.
type FilteredPageAPI[T, F any] struct {
	*loader
	*pagination.State
	*pagination.Consumer[T]

	ctx        context.Context
	read       ReadFilteredPage[T, F]
	filter     reactive.Readable[*F]
	debouncer  *debounce.Debouncer[F]
	stopFilter func()
	stopDesc   func()
}

// NewFilteredPageAPI creates the helper. When the filter is already set the
// initial descriptor schedules the first load.
func NewFilteredPageAPI[T, F any](
	ctx context.Context,
	read ReadFilteredPage[T, F],
	filter reactive.Readable[*F],
	opts ...Option,
) *FilteredPageAPI[T, F] {
	o := newOptions(opts)
	a := &FilteredPageAPI[T, F]{
		loader:   newLoader(o, "filtered_page"),
		State:    pagination.NewState(o.variants),
		Consumer: pagination.NewConsumer[T](o.newToken),
		ctx:      ctx,
		read:     read,
		filter:   filter,
	}
	a.debouncer = debounce.New(o.debounce, o.clock, a.load)
	a.stopFilter = filter.Subscribe(a.onFilterChange)
	a.stopDesc = reactive.Watch[pagination.Pagination](a.Descriptor, func(pagination.Pagination) {
		a.Update()
	}, true)
	return a
}

func (a *FilteredPageAPI[T, F]) onFilterChange(*F) {
	if a.CurrentPage.Get() != pagination.DefaultPage {
		a.CurrentPage.Set(pagination.DefaultPage)
		return
	}
	a.Update()
}

// Update schedules a debounced reload with the current filter and page.
// It does nothing while the filter is nil.
func (a *FilteredPageAPI[T, F]) Update() {
	f := a.filter.Get()
	if f == nil {
		return
	}
	a.trigger("update")
	a.debouncer.Trigger(*f)
}

func (a *FilteredPageAPI[T, F]) load(filter F) {
	p := a.Pagination()
	a.start(func() (func(), error) {
		page, err := a.read(a.ctx, filter, p)
		if err != nil {
			return nil, err
		}
		return func() { a.Consume(page) }, nil
	})
}

// Flush starts a pending debounced load immediately.
func (a *FilteredPageAPI[T, F]) Flush() bool {
	return a.debouncer.Flush()
}

// Close stops watching the filter and pagination state and drops any pending
// load, clearing Loading unless a fetch is in flight.
func (a *FilteredPageAPI[T, F]) Close() {
	a.stopFilter()
	a.stopDesc()
	if a.debouncer.Stop() {
		a.cancelPending()
	}
	a.State.Close()
}
