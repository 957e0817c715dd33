package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Run("uses first variant", func(t *testing.T) {
		s := NewState([]int{25, 50})
		defer s.Close()

		assert.Equal(t, Pagination{
			Page:        1,
			RowsPerPage: 25,
			SortBy:      []string{},
			Descending:  []bool{},
		}, s.Pagination())
	})

	t.Run("falls back to default size", func(t *testing.T) {
		s := NewState(nil)
		defer s.Close()

		assert.Equal(t, DefaultRowsPerPage, s.RowsPerPage.Get())
		assert.Empty(t, s.Variants())
	})
}

func TestState_RowsPerPageResetsPage(t *testing.T) {
	s := NewState([]int{10, 25, 50})
	defer s.Close()

	var seen []Pagination
	s.Descriptor.Subscribe(func(p Pagination) { seen = append(seen, p) })

	s.CurrentPage.Set(2)
	s.RowsPerPage.Set(25)

	require.Len(t, seen, 2, "size change on page 2 must notify exactly once")
	assert.Equal(t, 2, seen[0].Page)
	assert.Equal(t, 1, seen[1].Page)
	assert.Equal(t, 25, seen[1].RowsPerPage)
	for _, p := range seen {
		assert.False(t, p.Page == 2 && p.RowsPerPage == 25, "old page never requested at new size")
	}
}

func TestState_RowsPerPageOnFirstPage(t *testing.T) {
	s := NewState([]int{10, 25})
	defer s.Close()

	calls := 0
	s.Descriptor.Subscribe(func(Pagination) { calls++ })

	s.RowsPerPage.Set(25)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.CurrentPage.Get())
}

func TestState_SortChange(t *testing.T) {
	s := NewState(nil)
	defer s.Close()

	s.CurrentPage.Set(3)
	s.Sort.Set(SortOptions{SortBy: []string{"id", "name"}, SortDesc: []bool{true}})

	p := s.Pagination()
	assert.Equal(t, 3, p.Page, "sort change keeps the page")
	assert.Equal(t, []string{"id", "name"}, p.SortBy)
	assert.Equal(t, []bool{true, false}, p.Descending)
}

func TestState_Navigation(t *testing.T) {
	s := NewState([]int{10, 25, 50})
	defer s.Close()

	assert.False(t, s.PrevPage())
	assert.True(t, s.NextPage(3))
	assert.True(t, s.NextPage(3))
	assert.False(t, s.NextPage(3))
	assert.Equal(t, 3, s.CurrentPage.Get())
	assert.True(t, s.PrevPage())
	assert.Equal(t, 2, s.CurrentPage.Get())

	assert.Equal(t, 25, s.CycleRowsPerPage())
	assert.Equal(t, 1, s.CurrentPage.Get())
	assert.Equal(t, 50, s.CycleRowsPerPage())
	assert.Equal(t, 10, s.CycleRowsPerPage())

	assert.ErrorIs(t, s.SetPage(0), ErrInvalidPage)
	assert.ErrorIs(t, s.SetRowsPerPage(0), ErrInvalidRowsPerPage)
	require.NoError(t, s.SetPage(4))
	require.NoError(t, s.SetRowsPerPage(50))
	assert.Equal(t, 1, s.CurrentPage.Get())
}

func TestState_ToggleSort(t *testing.T) {
	s := NewState(nil)
	defer s.Close()

	s.ToggleSort("name")
	assert.Equal(t, []bool{false}, s.Pagination().Descending)
	s.ToggleSort("name")
	assert.Equal(t, []bool{true}, s.Pagination().Descending)
	s.ToggleSort("id")
	assert.Equal(t, []string{"id"}, s.Pagination().SortBy)
	assert.Equal(t, []bool{false}, s.Pagination().Descending)
}

func TestState_DescriptorIsSnapshot(t *testing.T) {
	s := NewState(nil)
	defer s.Close()

	opts := SortOptions{SortBy: []string{"a"}, SortDesc: []bool{false}}
	s.Sort.Set(opts)
	opts.SortBy[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.Pagination().SortBy)
}

func TestState_Close(t *testing.T) {
	s := NewState(nil)
	s.CurrentPage.Set(2)
	s.Close()
	s.Close()

	s.RowsPerPage.Set(50)

	assert.Equal(t, 2, s.CurrentPage.Get(), "reset detached after Close")
}

func TestConsumer(t *testing.T) {
	n := 0
	c := NewConsumer[string](func() string {
		n++
		return "token-" + strconv.Itoa(n)
	})
	assert.Equal(t, "", c.ContentID.Get())
	assert.Empty(t, c.Content.Get())

	page := Page[string]{Content: []string{"x", "y"}, TotalElements: 12, TotalPages: 6}
	c.Consume(page)
	first := c.ContentID.Get()
	c.Consume(page)

	assert.Equal(t, []string{"x", "y"}, c.Content.Get())
	assert.Equal(t, 12, c.TotalItems.Get())
	assert.Equal(t, 6, c.TotalPages.Get())
	assert.NotEqual(t, first, c.ContentID.Get(), "identical page still gets a new token")

	c.Consume(EmptyPage[string]())
	assert.Empty(t, c.Content.Get(), "content is replaced, not merged")
	assert.Zero(t, c.TotalItems.Get())
}

func TestNewToken(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		tok := NewToken()
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
