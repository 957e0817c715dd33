package pagination

// Meta summarizes where a page sits in the full result set.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstItem   int  `json:"first_item"   yaml:"first_item"`
	LastItem    int  `json:"last_item"    yaml:"last_item"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds footer metadata from the descriptor that was fetched and the
// totals the fetcher reported.
func NewMeta(p Pagination, totalItems, totalPages int) Meta {
	meta := Meta{
		CurrentPage: p.Page,
		PageSize:    p.RowsPerPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: p.Page > MinPage,
		HasNext:     p.Page < totalPages,
	}

	if totalItems > 0 && p.Offset() < totalItems {
		meta.FirstItem = p.Offset() + 1
		meta.LastItem = p.Offset() + p.RowsPerPage
		if meta.LastItem > totalItems {
			meta.LastItem = totalItems
		}
	}

	return meta
}
