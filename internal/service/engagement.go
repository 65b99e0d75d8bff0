package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
	svc "storyfeed/internal/domain/services"
)

// engagementService implements the EngagementService interface
type engagementService struct {
	engagementRepo repositories.EngagementRepository
	storyRepo      repositories.StoryRepository
	authorRepo     repositories.AuthorRepository
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	engagementRepo repositories.EngagementRepository,
	storyRepo repositories.StoryRepository,
	authorRepo repositories.AuthorRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) svc.EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		storyRepo:      storyRepo,
		authorRepo:     authorRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Like records the caller's endorsement of a story. The existence pre-check
// gives a fast Conflict; the store's unique index on (author_id, story_id)
// is what actually rejects a racing duplicate. The denormalized counter is
// recomputed from the Like rows inside the same transaction.
func (s *engagementService) Like(ctx context.Context, authorID, storyID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.storyRepo.GetByID(txCtx, storyID); err != nil {
			return err
		}
		if _, err := s.authorRepo.GetByID(txCtx, authorID); err != nil {
			return err
		}

		_, err := s.engagementRepo.GetLike(txCtx, authorID, storyID)
		if err == nil {
			return &domain.ConflictError{
				Message:      "story already liked",
				ResourceType: "like",
				ResourceID:   storyID,
			}
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		like := &models.Like{
			AuthorID:  authorID,
			StoryID:   storyID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.engagementRepo.CreateLike(txCtx, like); err != nil {
			return err
		}

		return s.reconcileLikeCount(txCtx, storyID)
	})
}

// Unlike removes a prior like and recomputes the counter
func (s *engagementService) Unlike(ctx context.Context, authorID, storyID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.engagementRepo.DeleteLike(txCtx, authorID, storyID); err != nil {
			return err
		}
		return s.reconcileLikeCount(txCtx, storyID)
	})
}

// reconcileLikeCount makes the denormalized counter agree with the Like
// rows. The rows are authoritative; the counter is only ever derived.
func (s *engagementService) reconcileLikeCount(ctx context.Context, storyID string) error {
	count, err := s.engagementRepo.CountLikes(ctx, storyID)
	if err != nil {
		return err
	}
	if err := s.storyRepo.SetLikeCount(ctx, storyID, count); err != nil {
		return fmt.Errorf("reconcile like count: %w", err)
	}
	return nil
}

// Report appends a violation report. Reports are never deduplicated and the
// reporter may stay anonymous.
func (s *engagementService) Report(ctx context.Context, storyID, authorID string) (*models.ViolationReport, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		return nil, err
	}

	report := &models.ViolationReport{
		ID:        uuid.NewString(),
		StoryID:   storyID,
		CreatedAt: time.Now().UTC(),
	}
	if authorID != "" {
		report.AuthorID = &authorID
	}

	if err := s.engagementRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("violation reported", "story_id", storyID, "author_id", authorID)

	return report, nil
}
