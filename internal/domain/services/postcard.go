package services

import (
	"context"

	"storyfeed/internal/domain/models"
)

// PostcardRenderer produces the visual asset for a story after its first
// persistence. Render returns the asset reference to store on the story.
type PostcardRenderer interface {
	Render(ctx context.Context, story *models.Story) (string, error)
}
