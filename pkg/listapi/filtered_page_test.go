package listapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

type pageRequest struct {
	filter string
	p      pagination.Pagination
}

type filteredPageFixture struct {
	clock  *debounce.ManualClock
	filter *reactive.Ref[*string]
	stub   *stub[pageRequest, pagination.Page[string]]
	api    *FilteredPageAPI[string, string]
}

func newFilteredPageFixture(t *testing.T, initial *string, opts ...Option) *filteredPageFixture {
	t.Helper()
	f := &filteredPageFixture{
		clock:  newTestClock(),
		filter: reactive.NewRef(initial),
		stub:   newStub[pageRequest, pagination.Page[string]](pagination.EmptyPage[string]()),
	}
	opts = append([]Option{WithClock(f.clock)}, opts...)
	f.api = NewFilteredPageAPI(context.Background(),
		func(_ context.Context, filter string, p pagination.Pagination) (pagination.Page[string], error) {
			return f.stub.fetch(pageRequest{filter: filter, p: p})
		}, f.filter, opts...)
	t.Cleanup(f.api.Close)
	return f
}

func (f *filteredPageFixture) settle() {
	f.clock.Advance(testDebounce)
	f.api.Wait()
}

func TestFilteredPageAPI_InitialLoad(t *testing.T) {
	f := newFilteredPageFixture(t, ptr("filter"))
	p := newPromise[pagination.Page[string]]()
	f.stub.once(p)

	assert.Empty(t, f.stub.Calls())
	assert.True(t, f.api.Loading.Get())

	f.clock.Advance(testDebounce)
	f.stub.waitForCalls(t, 1)
	assert.Equal(t, pageRequest{filter: "filter", p: firstPage(10)}, f.stub.last())
	assert.True(t, f.api.Loading.Get())

	p.resolve(pagination.PageFromList([]string{"1", "2", "3"}))
	f.api.Wait()

	assert.False(t, f.api.Loading.Get())
	assert.Equal(t, []string{"1", "2", "3"}, f.api.Content.Get())
	assert.Equal(t, 3, f.api.TotalItems.Get())
	assert.Equal(t, 1, f.api.TotalPages.Get())
	assert.NotEmpty(t, f.api.ContentID.Get())
}

func TestFilteredPageAPI_AfterLoad(t *testing.T) {
	tests := []struct {
		name   string
		change func(f *filteredPageFixture)
		want   pageRequest
	}{
		{
			name:   "update call",
			change: func(f *filteredPageFixture) { f.api.Update() },
			want:   pageRequest{filter: "filter", p: firstPage(10)},
		},
		{
			name:   "page change",
			change: func(f *filteredPageFixture) { f.api.CurrentPage.Set(2) },
			want: pageRequest{filter: "filter", p: pagination.Pagination{
				Page: 2, RowsPerPage: 10, SortBy: []string{}, Descending: []bool{},
			}},
		},
		{
			name:   "rows per page change on first page",
			change: func(f *filteredPageFixture) { f.api.RowsPerPage.Set(25) },
			want:   pageRequest{filter: "filter", p: firstPage(25)},
		},
		{
			name: "rows per page change on later page",
			change: func(f *filteredPageFixture) {
				f.api.CurrentPage.Set(2)
				f.settle()
				f.stub.reset()
				f.api.RowsPerPage.Set(25)
			},
			want: pageRequest{filter: "filter", p: firstPage(25)},
		},
		{
			name: "sort change",
			change: func(f *filteredPageFixture) {
				f.api.Sort.Set(pagination.SortOptions{SortBy: []string{"id"}, SortDesc: []bool{false}})
			},
			want: pageRequest{filter: "filter", p: pagination.Pagination{
				Page: 1, RowsPerPage: 10, SortBy: []string{"id"}, Descending: []bool{false},
			}},
		},
		{
			name:   "filter change",
			change: func(f *filteredPageFixture) { f.filter.Set(ptr("filter2")) },
			want:   pageRequest{filter: "filter2", p: firstPage(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFilteredPageFixture(t, ptr("filter"), WithTokenFunc(sequentialTokens()))
			f.stub.thenReturn(pagination.PageFromList([]string{"1", "2", "3"}))
			f.settle()
			oldID := f.api.ContentID.Get()
			require.NotEmpty(t, oldID)

			tt.change(f)
			f.settle()

			assert.Equal(t, tt.want, f.stub.last())
			assert.NotEmpty(t, f.api.ContentID.Get())
			assert.NotEqual(t, oldID, f.api.ContentID.Get(), "content id refreshed after reload")
		})
	}
}

func TestFilteredPageAPI_FilterChangeOnLaterPageFetchesOnce(t *testing.T) {
	f := newFilteredPageFixture(t, ptr("filter"))
	f.settle()
	f.api.CurrentPage.Set(2)
	f.settle()
	f.stub.reset()

	f.filter.Set(ptr("other"))

	assert.Equal(t, 1, f.api.CurrentPage.Get(), "filter change resets page")
	assert.True(t, f.api.Loading.Get())
	f.settle()
	f.clock.Advance(testDebounce * 4)
	f.api.Wait()

	assert.Equal(t, []pageRequest{{filter: "other", p: firstPage(10)}}, f.stub.Calls())
}

func TestFilteredPageAPI_NilFilter(t *testing.T) {
	f := newFilteredPageFixture(t, nil)

	assert.False(t, f.api.Loading.Get(), "nothing scheduled without a filter")
	f.api.Update()
	f.api.CurrentPage.Set(3)
	assert.False(t, f.api.Loading.Get())
	f.clock.Advance(testDebounce)
	assert.Empty(t, f.stub.Calls())

	f.filter.Set(ptr("go"))
	f.settle()

	require.Len(t, f.stub.Calls(), 1)
	assert.Equal(t, "go", f.stub.last().filter)
	assert.Equal(t, 1, f.stub.last().p.Page, "page reset by the filter change")
}

func TestFilteredPageAPI_Failure(t *testing.T) {
	f := newFilteredPageFixture(t, ptr("filter"))
	f.stub.thenReturn(pagination.PageFromList([]string{"a"}))
	f.settle()

	boom := errors.New("backend down")
	f.stub.thenFail(boom)
	f.api.CurrentPage.Set(2)
	f.settle()

	assert.False(t, f.api.Loading.Get())
	assert.Same(t, boom, f.api.Error.Get())
	assert.Equal(t, []string{"a"}, f.api.Content.Get(), "prior content untouched on failure")
	assert.Equal(t, 1, f.api.TotalItems.Get())
}

func TestFilteredPageAPI_RapidPagingCoalesces(t *testing.T) {
	f := newFilteredPageFixture(t, ptr("filter"))
	f.settle()
	f.stub.reset()

	for page := 2; page <= 6; page++ {
		f.api.CurrentPage.Set(page)
		f.clock.Advance(50 * time.Millisecond)
	}
	f.settle()

	require.Len(t, f.stub.Calls(), 1)
	assert.Equal(t, 6, f.stub.last().p.Page)
}

func TestFilteredPageAPI_Close(t *testing.T) {
	f := newFilteredPageFixture(t, ptr("filter"))
	require.True(t, f.api.Loading.Get())
	f.api.Close()
	assert.False(t, f.api.Loading.Get())

	f.api.CurrentPage.Set(2)
	f.filter.Set(ptr("x"))
	f.clock.Advance(2 * testDebounce)

	assert.Empty(t, f.stub.Calls())
	assert.False(t, f.api.Loading.Get())
}
