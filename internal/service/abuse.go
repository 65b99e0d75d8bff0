package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storyfeed/internal/config"
	"storyfeed/internal/domain"
	"storyfeed/internal/domain/repositories"
)

// Decision is the outcome of evaluating a submission against the duplicate
// heuristic. Anything other than DecisionAccept must stay invisible to the
// submitter: the creation flow shapes the response identically in all three
// cases.
type Decision int

const (
	// DecisionAccept persists the story visibly
	DecisionAccept Decision = iota
	// DecisionAcceptHidden persists the story with is_deleted set, so it is
	// returned like a normal acceptance but never listed
	DecisionAcceptHidden
	// DecisionRejectSilently skips persistence entirely while the caller
	// still receives a success-shaped response
	DecisionRejectSilently
)

// AbuseGuard detects repeated duplicate submissions by the same author and
// escalates to an account ban past the threshold.
type AbuseGuard struct {
	storyRepo  repositories.StoryRepository
	authorRepo repositories.AuthorRepository
	logger     *slog.Logger
}

// NewAbuseGuard creates a new abuse guard
func NewAbuseGuard(
	storyRepo repositories.StoryRepository,
	authorRepo repositories.AuthorRepository,
	logger *slog.Logger,
) *AbuseGuard {
	return &AbuseGuard{
		storyRepo:  storyRepo,
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// EvaluateSubmission decides what happens to a new submission. The count and
// the eventual save are separate store calls, so two racing duplicates can
// both land below the threshold; the heuristic is a safety valve, not a hard
// guarantee.
func (g *AbuseGuard) EvaluateSubmission(ctx context.Context, authorID, content string) (Decision, error) {
	// Heuristic applies to authenticated authors only
	if authorID == "" {
		return DecisionAccept, nil
	}

	author, err := g.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token subject without an author row; nothing to count against
			return DecisionAccept, nil
		}
		return DecisionAccept, fmt.Errorf("resolve author: %w", err)
	}

	if author.IsBanned {
		return DecisionRejectSilently, nil
	}

	duplicates, err := g.storyRepo.CountByAuthorContent(ctx, authorID, content)
	if err != nil {
		return DecisionAccept, fmt.Errorf("count duplicates: %w", err)
	}

	switch {
	case duplicates == 0:
		return DecisionAccept, nil
	case duplicates < config.BanThreshold:
		g.logger.Info("duplicate submission hidden",
			"author_id", authorID,
			"duplicates", duplicates,
		)
		return DecisionAcceptHidden, nil
	default:
		if err := g.authorRepo.SetBanned(ctx, authorID, true); err != nil {
			return DecisionAccept, fmt.Errorf("ban author: %w", err)
		}
		g.logger.Warn("author banned for repeated duplicates",
			"author_id", authorID,
			"duplicates", duplicates,
		)
		return DecisionRejectSilently, nil
	}
}
