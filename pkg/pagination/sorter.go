package pagination

import (
	"fmt"
	"sort"
)

// CompareFunc orders two items on a single field: negative when a sorts first,
// positive when b does, zero when they tie.
type CompareFunc[T any] func(a, b T) int

// Sorter applies multi-field SortOptions to slices of T.
type Sorter[T any] struct {
	fields map[string]CompareFunc[T]
}

// NewSorter creates a Sorter that knows the given fields.
func NewSorter[T any](fields map[string]CompareFunc[T]) *Sorter[T] {
	return &Sorter[T]{fields: fields}
}

// IsValidField checks if the field is valid for sorting.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// GetValidFields returns all valid sort fields.
func (s *Sorter[T]) GetValidFields() []string {
	fields := make([]string, 0, len(s.fields))
	for field := range s.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields) // Return in consistent order
	return fields
}

// Validate reports the first unknown field in opts.
func (s *Sorter[T]) Validate(opts SortOptions) error {
	for _, field := range opts.SortBy {
		if !s.IsValidField(field) {
			return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, s.GetValidFields())
		}
	}
	return nil
}

// Sort returns a sorted copy of items. Earlier fields take priority and ties
// keep their original order. Unknown fields are skipped.
func (s *Sorter[T]) Sort(items []T, opts SortOptions) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	by, desc := opts.normalized()
	if len(by) == 0 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		for k, field := range by {
			cmp, ok := s.fields[field]
			if !ok {
				continue
			}
			c := cmp(sorted[i], sorted[j])
			if desc[k] {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	return sorted
}
