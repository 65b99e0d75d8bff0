package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/config"
	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
	svc "storyfeed/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// patchableFields is the explicit allow-list for story edits. Patch keys
// outside this set are ignored rather than rejected.
var patchableFields = map[string]struct{}{
	"content":     {},
	"description": {},
	"is_public":   {},
}

// storyService implements the StoryService interface
type storyService struct {
	storyRepo  repositories.StoryRepository
	authorRepo repositories.AuthorRepository
	guard      *AbuseGuard
	renderer   svc.PostcardRenderer
	logger     *slog.Logger
}

// NewStoryService creates a new story service
func NewStoryService(
	storyRepo repositories.StoryRepository,
	authorRepo repositories.AuthorRepository,
	guard *AbuseGuard,
	renderer svc.PostcardRenderer,
	logger *slog.Logger,
) svc.StoryService {
	return &storyService{
		storyRepo:  storyRepo,
		authorRepo: authorRepo,
		guard:      guard,
		renderer:   renderer,
		logger:     logger,
	}
}

// CreateStory submits a story. The abuse decision is taken before
// validation, and every decision produces the same response shape: a caller
// can not tell an accepted story from a hidden or dropped one by payload.
func (s *storyService) CreateStory(ctx context.Context, req *svc.CreateStoryRequest, caller models.Caller) (*models.StoryView, error) {
	story := &models.Story{
		ID:          uuid.NewString(),
		Content:     req.Content,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		IsPublic:    true,
		EditToken:   uuid.NewString(),
	}
	if !caller.Anonymous() {
		authorID := caller.AuthorID
		story.AuthorID = &authorID
	}

	decision, err := s.guard.EvaluateSubmission(ctx, caller.AuthorID, req.Content)
	if err != nil {
		return nil, err
	}

	if decision == DecisionRejectSilently {
		// Success-shaped response, no save ever issued. The postcard is
		// still rendered so the payload shape matches an acceptance.
		if asset, rerr := s.renderer.Render(ctx, story); rerr == nil {
			story.Postcard = &asset
		}
		s.logger.Info("submission silently dropped", "author_id", caller.AuthorID)
		return s.createdView(story), nil
	}

	if decision == DecisionAcceptHidden {
		story.IsDeleted = true
	}

	if err := s.validateStory(story); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info("story created",
		"id", story.ID,
		"author_id", caller.AuthorID,
		"hidden", story.IsDeleted,
	)

	// Rendering runs only after the story exists; a failure here means
	// "created, postcard missing", never "not created".
	asset, err := s.renderer.Render(ctx, story)
	if err != nil {
		return nil, fmt.Errorf("%w: story %s: %v", domain.ErrPostcardRender, story.ID, err)
	}
	if err := s.storyRepo.SetPostcard(ctx, story.ID, asset); err != nil {
		return nil, fmt.Errorf("%w: story %s: %v", domain.ErrPostcardRender, story.ID, err)
	}
	story.Postcard = &asset

	return s.createdView(story), nil
}

// createdView projects a freshly submitted story, attaching the edit token
// so an anonymous author can edit later.
func (s *storyService) createdView(story *models.Story) *models.StoryView {
	view := ProjectStory(story, TierPublic)
	view.EditToken = story.EditToken
	return view
}

// UpdateStory applies an allow-listed patch to a story
func (s *storyService) UpdateStory(ctx context.Context, id string, req *svc.UpdateStoryRequest, caller models.Caller) (*models.StoryView, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canEdit(ctx, story, caller, req.EditToken)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("not the author of story %s: %w", id, domain.ErrForbidden)
	}

	applyPatch(story, req.Patch)

	if err := s.validateStory(story); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("persist edit of story %s: %w", id, domain.ErrConflict)
	}

	s.logger.Info("story edited", "id", id, "caller", caller.AuthorID)

	return ProjectStory(story, TierFor(caller)), nil
}

// canEdit permits an edit for the story's author, a caller presenting the
// story's edit token, or an elevated caller.
func (s *storyService) canEdit(ctx context.Context, story *models.Story, caller models.Caller, editToken string) (bool, error) {
	if caller.Elevated {
		return true, nil
	}

	if editToken != "" && editToken == story.EditToken {
		return true, nil
	}

	if caller.Anonymous() || story.AuthorID == nil {
		return false, nil
	}

	author, err := s.authorRepo.GetByID(ctx, caller.AuthorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return author.ID == *story.AuthorID, nil
}

// applyPatch copies allow-listed keys from the patch onto the story.
// Unknown keys and keys with the wrong type are ignored.
func applyPatch(story *models.Story, patch map[string]interface{}) {
	for key, value := range patch {
		if _, ok := patchableFields[key]; !ok {
			continue
		}
		switch key {
		case "content":
			if v, ok := value.(string); ok {
				story.Content = v
			}
		case "description":
			if v, ok := value.(string); ok {
				story.Description = v
			}
		case "is_public":
			if v, ok := value.(bool); ok {
				story.IsPublic = v
			}
		}
	}
}

// validateStory checks the content rules shared by creation and edit
func (s *storyService) validateStory(story *models.Story) error {
	return validation.ValidateStruct(story,
		validation.Field(&story.Content,
			validation.Required,
			validation.Length(1, config.MaxContentLength),
		),
		validation.Field(&story.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
}
