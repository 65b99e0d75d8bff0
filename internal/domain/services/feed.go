package services

import (
	"context"
	"time"

	"storyfeed/internal/domain/models"
)

// FeedParams carries the raw pagination and ordering inputs for a feed page.
// Zero values mean "use the default": Before defaults to the current time,
// Limit to the configured default page size.
type FeedParams struct {
	Before  time.Time
	Limit   int
	Offset  int
	OrderBy string // comma-separated field names, or "RAND()"
}

// FeedPage is the response envelope for a feed listing.
type FeedPage struct {
	Object  string           `json:"object"` // always "list"
	HasMore bool             `json:"has_more"`
	Count   int              `json:"count"`
	Data    []*models.StoryView `json:"data"`
	Before  time.Time        `json:"before_date"`
}

// FeedService composes filter, ordering and pagination into feed pages and
// single-story reads.
type FeedService interface {
	// ListFeed returns one page of the public feed projected for the caller
	ListFeed(ctx context.Context, params *FeedParams, caller models.Caller) (*FeedPage, error)

	// GetStory retrieves a single story by ID, incrementing its view counter
	// as a side effect of a successful fetch
	GetStory(ctx context.Context, id string, caller models.Caller) (*models.StoryView, error)
}
