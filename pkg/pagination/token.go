package pagination

import "github.com/oklog/ulid/v2"

// TokenFunc produces a new unique freshness token on every call.
type TokenFunc func() string

// NewToken returns a fresh ULID string. ULIDs from one process are
// monotonically increasing, so tokens also sort in issue order.
func NewToken() string {
	return ulid.Make().String()
}
