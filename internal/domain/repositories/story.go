package repositories

import (
	"context"

	"storyfeed/internal/domain/models"
)

// StoryRepository defines data access operations for stories
type StoryRepository interface {
	// Create inserts a new story
	Create(ctx context.Context, story *models.Story) error

	// GetByID retrieves a story by ID, hidden or not
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// Update persists the mutable fields of a story
	Update(ctx context.Context, story *models.Story) error

	// SetPostcard records the rendered asset path for a story
	SetPostcard(ctx context.Context, id, asset string) error

	// IncrementViewCount bumps the view counter by one atomically
	IncrementViewCount(ctx context.Context, id string) error

	// SetLikeCount overwrites the denormalized like counter
	SetLikeCount(ctx context.Context, id string, count int) error

	// CountByAuthorContent counts the author's public stories with exactly
	// this content. Hidden rows still count: is_public stays true when a
	// story is soft-hidden.
	CountByAuthorContent(ctx context.Context, authorID, content string) (int, error)

	// ListFeed returns one page of feed-visible stories
	ListFeed(ctx context.Context, q *FeedQuery) ([]models.Story, error)

	// CountFeed counts all feed-visible stories under the same filter as
	// ListFeed, without ordering or pagination
	CountFeed(ctx context.Context, q *FeedQuery) (int, error)
}
