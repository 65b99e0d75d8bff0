package services

import (
	"context"

	"storyfeed/internal/domain/models"
)

// EngagementService records likes and violation reports
type EngagementService interface {
	// Like records the caller's endorsement of a story.
	// Fails with domain.ErrConflict if the like already exists and
	// domain.ErrNotFound if the story or author is missing.
	Like(ctx context.Context, authorID, storyID string) error

	// Unlike removes a prior like; domain.ErrNotFound when there is none
	Unlike(ctx context.Context, authorID, storyID string) error

	// Report appends a violation report. AuthorID may be empty for an
	// anonymous report; only a missing story fails.
	Report(ctx context.Context, storyID, authorID string) (*models.ViolationReport, error)
}
