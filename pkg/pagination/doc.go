// Package pagination holds the page/size/sort state shared by the paged list helpers.
//
// This package contains:
//   - Pagination: the descriptor handed to page fetchers
//   - Page: the result shape a page fetcher returns
//   - State: observable current page, rows per page and sort, with page reset on size change
//   - Consumer: republishes a Page into observable content, totals and a freshness token
//   - Sorter, ParseSort, Slice: helpers for sources that page in memory
//   - Meta: footer metadata (has previous/next) for rendering
package pagination
