package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
)

// PostgresEngagementRepository implements the EngagementRepository interface
type PostgresEngagementRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(config *RepositoryConfig) repositories.EngagementRepository {
	return &PostgresEngagementRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetLike retrieves a like by its (author, story) pair
func (r *PostgresEngagementRepository) GetLike(ctx context.Context, authorID, storyID string) (*models.Like, error) {
	query := fmt.Sprintf(`
		SELECT author_id, story_id, created_at
		FROM %s
		WHERE author_id = $1 AND story_id = $2
	`, r.tables.Likes)

	var like models.Like
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, authorID, storyID).Scan(
		&like.AuthorID,
		&like.StoryID,
		&like.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("like by %s on %s: %w", authorID, storyID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get like: %w", err)
	}

	return &like, nil
}

// CreateLike inserts a like. The unique index on (author_id, story_id) is
// the real duplicate guard; two racing inserts both pass the service-level
// pre-check and the second one lands here.
func (r *PostgresEngagementRepository) CreateLike(ctx context.Context, like *models.Like) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (author_id, story_id, created_at)
		VALUES ($1, $2, $3)
	`, r.tables.Likes)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, like.AuthorID, like.StoryID, like.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "story already liked",
				ResourceType: "like",
				ResourceID:   like.StoryID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("like references missing row: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create like: %w", err)
	}

	return nil
}

// DeleteLike removes a like; domain.ErrNotFound when the pair is absent
func (r *PostgresEngagementRepository) DeleteLike(ctx context.Context, authorID, storyID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE author_id = $1 AND story_id = $2
	`, r.tables.Likes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, authorID, storyID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("like by %s on %s: %w", authorID, storyID, domain.ErrNotFound)
	}

	return nil
}

// CountLikes counts active likes for a story
func (r *PostgresEngagementRepository) CountLikes(ctx context.Context, storyID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE story_id = $1`, r.tables.Likes)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, storyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}

	return count, nil
}

// CreateReport appends a violation report
func (r *PostgresEngagementRepository) CreateReport(ctx context.Context, report *models.ViolationReport) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, story_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, report.ID, report.StoryID, report.AuthorID, report.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("story %s: %w", report.StoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}
