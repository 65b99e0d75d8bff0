package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storyfeed/internal/config"
	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
	svc "storyfeed/internal/domain/services"
	"storyfeed/internal/feedorder"
)

// randomOrderToken requests an unordered random draw instead of a field order
const randomOrderToken = "RAND()"

// feedService implements the FeedService interface
type feedService struct {
	storyRepo  repositories.StoryRepository
	authorRepo repositories.AuthorRepository
	orders     *feedorder.Registry
	logger     *slog.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(
	storyRepo repositories.StoryRepository,
	authorRepo repositories.AuthorRepository,
	orders *feedorder.Registry,
	logger *slog.Logger,
) svc.FeedService {
	return &feedService{
		storyRepo:  storyRepo,
		authorRepo: authorRepo,
		orders:     orders,
		logger:     logger,
	}
}

// ListFeed returns one page of the public feed projected for the caller.
// The page query and the count query run as independent statements; totals
// may drift from the page under concurrent writes, which is acceptable for a
// mostly-fresh feed.
func (s *feedService) ListFeed(ctx context.Context, params *svc.FeedParams, caller models.Caller) (*svc.FeedPage, error) {
	before := params.Before
	if before.IsZero() {
		// Default cursor: items created after this fetch never leak into
		// later pages of the same session
		before = time.Now().UTC()
	}

	limit := params.Limit
	if limit < 1 {
		limit = config.FeedDefaultLimit
	} else if limit > config.FeedMaxLimit {
		limit = config.FeedMaxLimit
	}

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := &repositories.FeedQuery{
		Before:     before,
		Limit:      limit,
		Offset:     offset,
		WithAuthor: caller.Elevated,
	}
	if err := s.applyOrder(query, params.OrderBy); err != nil {
		return nil, err
	}

	stories, err := s.storyRepo.ListFeed(ctx, query)
	if err != nil {
		return nil, err
	}

	total, err := s.storyRepo.CountFeed(ctx, query)
	if err != nil {
		return nil, err
	}

	tier := TierFor(caller)
	data := make([]*models.StoryView, 0, len(stories))
	for i := range stories {
		data = append(data, ProjectStory(&stories[i], tier))
	}

	return &svc.FeedPage{
		Object:  "list",
		HasMore: total > offset+limit,
		Count:   total,
		Data:    data,
		Before:  before,
	}, nil
}

// applyOrder parses the caller's orderBy expression against the field
// registry. Each key sorts descending in the order given.
func (s *feedService) applyOrder(query *repositories.FeedQuery, orderBy string) error {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return nil // repository default: created_at DESC
	}

	if orderBy == randomOrderToken {
		query.Random = true
		return nil
	}

	for _, key := range strings.Split(orderBy, ",") {
		key = strings.TrimSpace(key)
		column, ok := s.orders.Resolve(key)
		if !ok {
			return fmt.Errorf("%w: unknown order field %q (allowed: %s)",
				domain.ErrValidation, key, strings.Join(s.orders.Names(), ", "))
		}
		query.OrderColumns = append(query.OrderColumns, column)
	}

	return nil
}

// GetStory retrieves a single story by ID and bumps its view counter. The
// increment is best-effort relative to the read; a lost bump only skews an
// approximate popularity number.
func (s *feedService) GetStory(ctx context.Context, id string, caller models.Caller) (*models.StoryView, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.storyRepo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("view count increment failed", "story_id", id, "error", err)
	} else {
		story.ViewCount++
	}

	tier := TierFor(caller)
	view := ProjectStory(story, tier)

	if tier == TierElevated && story.AuthorID != nil && view.Author == nil {
		author, err := s.authorRepo.GetByID(ctx, *story.AuthorID)
		if err == nil {
			view.Author = ProjectAuthor(author)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	return view, nil
}
