package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultRowsPerPage = 10
	MinRowsPerPage     = 1
	MaxRowsPerPage     = 1000
	DefaultPage        = 1
	MinPage            = 1
	SortOrderAsc       = "asc"
	SortOrderDesc      = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage        = errors.New("page must be >= 1")
	ErrInvalidRowsPerPage = errors.New("rows per page must be between 1 and 1000")
	ErrSortLengthMismatch = errors.New("sortBy and descending must have the same length")
	ErrInvalidSortFormat  = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrInvalidSortOrder   = errors.New("sort order must be 'asc' or 'desc'")
	ErrEmptySortField     = errors.New("sort field cannot be empty")
	ErrInvalidSortField   = errors.New("invalid sort field")
)

// sortPartsMax is the maximum number of parts in a sort term (field:order).
const sortPartsMax = 2

// Params holds page-based CLI flags.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page. Zero means use the configured default.
	PageSize int

	// Sort is a comma separated sort expression, e.g. "name:asc,id:desc".
	Sort string
}

// Validate checks the flag values. Page and PageSize zero are accepted as "unset".
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxRowsPerPage {
		return fmt.Errorf("%w: got %d", ErrInvalidRowsPerPage, p.PageSize)
	}
	if _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// ApplyTo pushes the flag values into s. Rows per page is applied before the
// page number because changing the size resets the page.
func (p Params) ApplyTo(s *State) error {
	if err := p.Validate(); err != nil {
		return err
	}
	opts, err := ParseSort(p.Sort)
	if err != nil {
		return err
	}
	if p.PageSize > 0 {
		s.RowsPerPage.Set(p.PageSize)
	}
	if !opts.IsEmpty() {
		s.Sort.Set(opts)
	}
	if p.Page > 0 {
		s.CurrentPage.Set(p.Page)
	}
	return nil
}

// ParseSort parses a comma separated list of "field" or "field:order" terms.
// Examples: "name", "name:desc", "category:asc,name:desc".
// An empty expression yields empty SortOptions.
func ParseSort(expr string) (SortOptions, error) {
	var opts SortOptions
	if strings.TrimSpace(expr) == "" {
		return opts, nil
	}

	for _, term := range strings.Split(expr, ",") {
		field, order, err := parseSortTerm(term)
		if err != nil {
			return SortOptions{}, err
		}
		opts.SortBy = append(opts.SortBy, field)
		opts.SortDesc = append(opts.SortDesc, order == SortOrderDesc)
	}
	return opts, nil
}

//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func parseSortTerm(term string) (field, order string, err error) {
	parts := strings.Split(term, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, term)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// FormatSort renders sort options back into ParseSort syntax.
func FormatSort(opts SortOptions) string {
	by, desc := opts.normalized()
	terms := make([]string, len(by))
	for i, field := range by {
		order := SortOrderAsc
		if desc[i] {
			order = SortOrderDesc
		}
		terms[i] = field + ":" + order
	}
	return strings.Join(terms, ",")
}

// Slice returns the rows of items that fall on page p.
// A page past the end yields an empty, non-nil slice.
func Slice[T any](items []T, p Pagination) []T {
	if p.RowsPerPage <= 0 {
		return items
	}
	offset := p.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := offset + p.RowsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// CalculateTotalPages returns the number of pages needed for totalItems rows.
func CalculateTotalPages(totalItems, rowsPerPage int) int {
	if totalItems <= 0 || rowsPerPage <= 0 {
		return 0
	}
	pages := totalItems / rowsPerPage
	if totalItems%rowsPerPage > 0 {
		pages++
	}
	return pages
}
