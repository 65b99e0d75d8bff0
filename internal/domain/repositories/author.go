package repositories

import (
	"context"

	"storyfeed/internal/domain/models"
)

// AuthorRepository defines data access operations for authors
type AuthorRepository interface {
	// GetByID retrieves an author by ID
	GetByID(ctx context.Context, id string) (*models.Author, error)

	// SetBanned flips the banned flag on an author
	SetBanned(ctx context.Context, id string, banned bool) error
}
