package repositories

import "time"

// FeedQuery describes one page of the public feed. The base visibility
// filter (public, not hidden, author not banned, created before the cursor)
// is always applied by the store; FeedQuery only carries the variable parts.
type FeedQuery struct {
	Before time.Time // exclusive upper bound on created_at
	Limit  int
	Offset int

	// OrderColumns are already-validated column names, each applied DESC in
	// the order given. Ignored when Random is set.
	OrderColumns []string
	Random       bool

	// WithAuthor joins author fields onto each row (elevated callers only).
	WithAuthor bool
}
