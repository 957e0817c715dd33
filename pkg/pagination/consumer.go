package pagination

import "github.com/rshade/pagekit/pkg/reactive"

// Consumer republishes fetched pages as flat observable fields.
type Consumer[T any] struct {
	Content    *reactive.Ref[[]T]
	ContentID  *reactive.Ref[string]
	TotalItems *reactive.Ref[int]
	TotalPages *reactive.Ref[int]

	newToken TokenFunc
}

// NewConsumer creates an empty consumer. ContentID stays "" until the first
// Consume. A nil newToken selects NewToken.
func NewConsumer[T any](newToken TokenFunc) *Consumer[T] {
	if newToken == nil {
		newToken = NewToken
	}
	return &Consumer[T]{
		Content:    reactive.NewRef([]T{}),
		ContentID:  reactive.NewRef(""),
		TotalItems: reactive.NewRef(0),
		TotalPages: reactive.NewRef(0),
		newToken:   newToken,
	}
}

// Consume replaces content and totals with page and issues a new ContentID.
// The token changes on every call, even for an identical page.
func (c *Consumer[T]) Consume(page Page[T]) {
	c.TotalItems.Set(page.TotalElements)
	c.TotalPages.Set(page.TotalPages)
	c.Content.Set(page.Content)
	c.ContentID.Set(c.newToken())
}
