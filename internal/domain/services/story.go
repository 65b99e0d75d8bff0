package services

import (
	"context"

	"storyfeed/internal/domain/models"
)

// CreateStoryRequest represents a request to submit a story
type CreateStoryRequest struct {
	Content     string `json:"content"`
	Description string `json:"description"`
}

// UpdateStoryRequest represents a patch to an existing story. Only fields
// on the patch allow-list are applied; unknown keys are ignored.
type UpdateStoryRequest struct {
	Patch     map[string]interface{} `json:"-"`
	EditToken string                 `json:"-"` // from X-Edit-Token, permits anonymous edit
}

// StoryService defines business logic operations for story submission and
// editing
type StoryService interface {
	// CreateStory submits a story. The returned view is always shaped like a
	// success; whether a row was actually persisted depends on the abuse
	// heuristic and is deliberately not observable from the response.
	CreateStory(ctx context.Context, req *CreateStoryRequest, caller models.Caller) (*models.StoryView, error)

	// UpdateStory applies an allow-listed patch to a story. Permitted for
	// the story's author, a caller presenting the story's edit token, or an
	// elevated caller.
	UpdateStory(ctx context.Context, id string, req *UpdateStoryRequest, caller models.Caller) (*models.StoryView, error)
}
