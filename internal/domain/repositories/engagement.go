package repositories

import (
	"context"

	"storyfeed/internal/domain/models"
)

// EngagementRepository defines data access operations for likes and
// violation reports
type EngagementRepository interface {
	// GetLike retrieves a like by its (author, story) pair
	GetLike(ctx context.Context, authorID, storyID string) (*models.Like, error)

	// CreateLike inserts a like. The store's unique index on
	// (author_id, story_id) is the real duplicate guard; callers get
	// domain.ErrConflict when it fires.
	CreateLike(ctx context.Context, like *models.Like) error

	// DeleteLike removes a like; domain.ErrNotFound when the pair is absent
	DeleteLike(ctx context.Context, authorID, storyID string) error

	// CountLikes counts active likes for a story
	CountLikes(ctx context.Context, storyID string) (int, error)

	// CreateReport appends a violation report
	CreateReport(ctx context.Context, report *models.ViolationReport) error
}
