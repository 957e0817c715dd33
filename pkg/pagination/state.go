package pagination

import (
	"sync"

	"github.com/rshade/pagekit/pkg/reactive"
)

// State holds the mutable page, size and sort inputs and derives the
// Pagination descriptor from them.
//
// Changing RowsPerPage resets CurrentPage to 1 before Descriptor recomputes,
// so a size change never produces a descriptor with the old page number.
type State struct {
	CurrentPage *reactive.Ref[int]
	RowsPerPage *reactive.Ref[int]
	Sort        *reactive.Ref[SortOptions]
	Descriptor  *reactive.Computed[Pagination]

	variants  []int
	closeOnce sync.Once
	stopReset func()
}

// NewState creates pagination state. The first entry of rowsPerPageVariants is
// the initial page size; DefaultRowsPerPage is used when none are given.
func NewState(rowsPerPageVariants []int) *State {
	initial := DefaultRowsPerPage
	if len(rowsPerPageVariants) > 0 {
		initial = rowsPerPageVariants[0]
	}

	s := &State{
		CurrentPage: reactive.NewRef(DefaultPage),
		RowsPerPage: reactive.NewRef(initial),
		Sort:        reactive.NewRef(SortOptions{}),
		variants:    append([]int(nil), rowsPerPageVariants...),
	}

	// Registered before the descriptor so the reset lands first.
	s.stopReset = s.RowsPerPage.Subscribe(func(int) {
		s.CurrentPage.Set(DefaultPage)
	})
	s.Descriptor = reactive.NewComputed(s.snapshot, s.CurrentPage, s.RowsPerPage, s.Sort)

	return s
}

func (s *State) snapshot() Pagination {
	by, desc := s.Sort.Get().normalized()
	return Pagination{
		Page:        s.CurrentPage.Get(),
		RowsPerPage: s.RowsPerPage.Get(),
		SortBy:      by,
		Descending:  desc,
	}
}

// Pagination returns the current descriptor.
func (s *State) Pagination() Pagination {
	return s.Descriptor.Get()
}

// Variants returns the allowed page sizes.
func (s *State) Variants() []int {
	return append([]int(nil), s.variants...)
}

// SetPage moves to page, which must be >= 1.
func (s *State) SetPage(page int) error {
	if page < MinPage {
		return ErrInvalidPage
	}
	s.CurrentPage.Set(page)
	return nil
}

// SetRowsPerPage changes the page size, which must be in range.
func (s *State) SetRowsPerPage(rows int) error {
	if rows < MinRowsPerPage || rows > MaxRowsPerPage {
		return ErrInvalidRowsPerPage
	}
	s.RowsPerPage.Set(rows)
	return nil
}

// NextPage advances one page unless totalPages says this is the last one.
// A non-positive totalPages means unknown and always advances.
func (s *State) NextPage(totalPages int) bool {
	page := s.CurrentPage.Get()
	if totalPages > 0 && page >= totalPages {
		return false
	}
	s.CurrentPage.Set(page + 1)
	return true
}

// PrevPage goes back one page unless already on the first.
func (s *State) PrevPage() bool {
	page := s.CurrentPage.Get()
	if page <= MinPage {
		return false
	}
	s.CurrentPage.Set(page - 1)
	return true
}

// CycleRowsPerPage switches to the next allowed page size and returns it.
// Without variants the size is left unchanged.
func (s *State) CycleRowsPerPage() int {
	current := s.RowsPerPage.Get()
	if len(s.variants) == 0 {
		return current
	}
	next := s.variants[0]
	for i, v := range s.variants {
		if v == current {
			next = s.variants[(i+1)%len(s.variants)]
			break
		}
	}
	s.RowsPerPage.Set(next)
	return next
}

// ToggleSort makes field the only sort key, flipping its direction when it
// already was the primary key.
func (s *State) ToggleSort(field string) {
	current := s.Sort.Get()
	desc := false
	if len(current.SortBy) > 0 && current.SortBy[0] == field {
		desc = len(current.SortDesc) == 0 || !current.SortDesc[0]
	}
	s.Sort.Set(SortOptions{SortBy: []string{field}, SortDesc: []bool{desc}})
}

// Close detaches the internal subscriptions.
func (s *State) Close() {
	s.closeOnce.Do(func() {
		s.stopReset()
		s.Descriptor.Close()
	})
}
