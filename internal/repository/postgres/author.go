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

// PostgresAuthorRepository implements the AuthorRepository interface
type PostgresAuthorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(config *RepositoryConfig) repositories.AuthorRepository {
	return &PostgresAuthorRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves an author by ID
func (r *PostgresAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, photo_url, is_banned, is_admin
		FROM %s
		WHERE id = $1
	`, r.tables.Authors)

	var author models.Author
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Username,
		&author.Email,
		&author.PhotoURL,
		&author.IsBanned,
		&author.IsAdmin,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("author %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	return &author, nil
}

// SetBanned flips the banned flag on an author
func (r *PostgresAuthorRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	query := fmt.Sprintf(`UPDATE %s SET is_banned = $2 WHERE id = $1`, r.tables.Authors)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, banned)
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("author %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
