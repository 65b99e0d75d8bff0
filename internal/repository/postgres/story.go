package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
)

// PostgresStoryRepository implements the StoryRepository interface
type PostgresStoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(config *RepositoryConfig) repositories.StoryRepository {
	return &PostgresStoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new story
func (r *PostgresStoryRepository) Create(ctx context.Context, story *models.Story) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, author_id, content, description, created_at, view_count, like_count, is_public, is_deleted, postcard, edit_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Stories)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		story.ID,
		story.AuthorID,
		story.Content,
		story.Description,
		story.CreatedAt,
		story.ViewCount,
		story.LikeCount,
		story.IsPublic,
		story.IsDeleted,
		story.Postcard,
		story.EditToken,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("story %s already exists", story.ID),
				ResourceType: "story",
				ResourceID:   story.ID,
			}
		}
		return fmt.Errorf("create story: %w", err)
	}

	return nil
}

// GetByID retrieves a story by ID, hidden or not
func (r *PostgresStoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, content, description, created_at, view_count, like_count, is_public, is_deleted, postcard, edit_token
		FROM %s
		WHERE id = $1
	`, r.tables.Stories)

	var story models.Story
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&story.ID,
		&story.AuthorID,
		&story.Content,
		&story.Description,
		&story.CreatedAt,
		&story.ViewCount,
		&story.LikeCount,
		&story.IsPublic,
		&story.IsDeleted,
		&story.Postcard,
		&story.EditToken,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get story: %w", err)
	}

	return &story, nil
}

// Update persists the mutable fields of a story. The edit token and the
// counters are deliberately not part of this statement.
func (r *PostgresStoryRepository) Update(ctx context.Context, story *models.Story) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $2, description = $3, is_public = $4, is_deleted = $5
		WHERE id = $1
	`, r.tables.Stories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		story.ID,
		story.Content,
		story.Description,
		story.IsPublic,
		story.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", story.ID, domain.ErrNotFound)
	}

	return nil
}

// SetPostcard records the rendered asset path for a story
func (r *PostgresStoryRepository) SetPostcard(ctx context.Context, id, asset string) error {
	query := fmt.Sprintf(`UPDATE %s SET postcard = $2 WHERE id = $1`, r.tables.Stories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, asset)
	if err != nil {
		return fmt.Errorf("set postcard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementViewCount bumps the view counter by one atomically. The counter
// never decreases; concurrent readers each land their own increment.
func (r *PostgresStoryRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET view_count = view_count + 1 WHERE id = $1`, r.tables.Stories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetLikeCount overwrites the denormalized like counter
func (r *PostgresStoryRepository) SetLikeCount(ctx context.Context, id string, count int) error {
	query := fmt.Sprintf(`UPDATE %s SET like_count = $2 WHERE id = $1`, r.tables.Stories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, count)
	if err != nil {
		return fmt.Errorf("set like count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByAuthorContent counts the author's public stories with exactly this
// content. No is_deleted filter: hidden duplicates keep counting toward the
// ban threshold.
func (r *PostgresStoryRepository) CountByAuthorContent(ctx context.Context, authorID, content string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE author_id = $1 AND content = $2 AND is_public = true
	`, r.tables.Stories)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, authorID, content).Scan(&count); err != nil {
		return 0, fmt.Errorf("count duplicate stories: %w", err)
	}

	return count, nil
}

// feedFilter is the base visibility predicate shared by ListFeed and
// CountFeed. Anonymous stories have no author row, so the ban check only
// applies when the join matched.
func (r *PostgresStoryRepository) feedFilter() string {
	return `s.is_public = true AND s.is_deleted = false AND s.created_at < $1 AND (s.author_id IS NULL OR a.is_banned = false)`
}

// ListFeed returns one page of feed-visible stories
func (r *PostgresStoryRepository) ListFeed(ctx context.Context, q *repositories.FeedQuery) ([]models.Story, error) {
	columns := `s.id, s.author_id, s.content, s.description, s.created_at, s.view_count, s.like_count, s.postcard`
	if q.WithAuthor {
		columns += `, a.id, a.username, a.email, a.photo_url, a.is_banned`
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		LEFT JOIN %s a ON a.id = s.author_id
		WHERE %s
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, columns, r.tables.Stories, r.tables.Authors, r.feedFilter(), orderClause(q))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, q.Before, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var story models.Story
		dest := []interface{}{
			&story.ID,
			&story.AuthorID,
			&story.Content,
			&story.Description,
			&story.CreatedAt,
			&story.ViewCount,
			&story.LikeCount,
			&story.Postcard,
		}

		var authorID, username, email, photoURL *string
		var isBanned *bool
		if q.WithAuthor {
			dest = append(dest, &authorID, &username, &email, &photoURL, &isBanned)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan feed row: %w", err)
		}

		if q.WithAuthor && authorID != nil {
			story.Author = &models.Author{
				ID:       *authorID,
				Username: deref(username),
				Email:    deref(email),
				PhotoURL: deref(photoURL),
				IsBanned: isBanned != nil && *isBanned,
			}
		}

		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	return stories, nil
}

// CountFeed counts all feed-visible stories under the same filter as
// ListFeed. Issued as its own statement, outside any snapshot shared with the
// page query; the two can disagree under concurrent writes.
func (r *PostgresStoryRepository) CountFeed(ctx context.Context, q *repositories.FeedQuery) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s s
		LEFT JOIN %s a ON a.id = s.author_id
		WHERE %s
	`, r.tables.Stories, r.tables.Authors, r.feedFilter())

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, q.Before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count feed: %w", err)
	}

	return count, nil
}

// orderClause builds the ORDER BY expression from an already-validated
// FeedQuery. Columns reach this point only through the feedorder registry,
// never straight from caller input. The trailing id sort makes pagination
// stable when the leading keys tie.
func orderClause(q *repositories.FeedQuery) string {
	if q.Random {
		return "random()"
	}

	keys := make([]string, 0, len(q.OrderColumns)+1)
	for _, col := range q.OrderColumns {
		keys = append(keys, fmt.Sprintf("s.%s DESC", col))
	}
	if len(keys) == 0 {
		keys = append(keys, "s.created_at DESC")
	}
	keys = append(keys, "s.id DESC")

	return strings.Join(keys, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
