package pagination

// Pagination describes which page of results to fetch and how to order them.
// SortBy lists fields in priority order; Descending[i] applies to SortBy[i].
type Pagination struct {
	Page        int      `json:"page"        yaml:"page"`
	RowsPerPage int      `json:"rowsPerPage" yaml:"rows_per_page"`
	SortBy      []string `json:"sortBy"      yaml:"sort_by"`
	Descending  []bool   `json:"descending"  yaml:"descending"`
}

// Offset returns the zero-based index of the first row on the page.
func (p Pagination) Offset() int {
	if p.Page < MinPage || p.RowsPerPage <= 0 {
		return 0
	}
	return (p.Page - 1) * p.RowsPerPage
}

// Validate checks the descriptor invariants.
func (p Pagination) Validate() error {
	if p.Page < MinPage {
		return ErrInvalidPage
	}
	if p.RowsPerPage < MinRowsPerPage {
		return ErrInvalidRowsPerPage
	}
	if len(p.SortBy) != len(p.Descending) {
		return ErrSortLengthMismatch
	}
	return nil
}

// Page is one page of results as returned by a fetcher.
// The totals are taken as-is; nothing checks them against len(Content).
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// EmptyPage returns a page with no content and zero totals.
func EmptyPage[T any]() Page[T] {
	return Page[T]{Content: []T{}}
}

// PageFromList wraps a complete list as a single page.
func PageFromList[T any](list []T) Page[T] {
	return Page[T]{
		Content:       list,
		TotalElements: len(list),
		TotalPages:    1,
	}
}

// SortOptions is the mutable sort input. SortDesc may be shorter than SortBy;
// missing entries mean ascending.
type SortOptions struct {
	SortBy   []string `json:"sortBy"   yaml:"sort_by"`
	SortDesc []bool   `json:"sortDesc" yaml:"sort_desc"`
}

// IsEmpty reports whether no sort fields are set.
func (o SortOptions) IsEmpty() bool {
	return len(o.SortBy) == 0
}

// normalized returns copies with SortDesc padded or truncated to len(SortBy).
func (o SortOptions) normalized() ([]string, []bool) {
	by := make([]string, len(o.SortBy))
	copy(by, o.SortBy)
	desc := make([]bool, len(by))
	copy(desc, o.SortDesc)
	return by, desc
}
