package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/domain/repositories"
)

// fakeAuthorRepo is an in-memory AuthorRepository
type fakeAuthorRepo struct {
	mu      sync.Mutex
	authors map[string]*models.Author
}

func newFakeAuthorRepo(authors ...*models.Author) *fakeAuthorRepo {
	repo := &fakeAuthorRepo{authors: make(map[string]*models.Author)}
	for _, a := range authors {
		copied := *a
		repo.authors[a.ID] = &copied
	}
	return repo
}

func (r *fakeAuthorRepo) GetByID(_ context.Context, id string) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	author, ok := r.authors[id]
	if !ok {
		return nil, fmt.Errorf("author %s: %w", id, domain.ErrNotFound)
	}
	copied := *author
	return &copied, nil
}

func (r *fakeAuthorRepo) SetBanned(_ context.Context, id string, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	author, ok := r.authors[id]
	if !ok {
		return fmt.Errorf("author %s: %w", id, domain.ErrNotFound)
	}
	author.IsBanned = banned
	return nil
}

// fakeStoryRepo is an in-memory StoryRepository. It shares the author map so
// the feed filter can apply the ban check the way the SQL join does.
type fakeStoryRepo struct {
	mu      sync.Mutex
	stories map[string]*models.Story
	authors *fakeAuthorRepo

	failIncrement bool
	failCreate    error
	failUpdate    error
}

func newFakeStoryRepo(authors *fakeAuthorRepo) *fakeStoryRepo {
	return &fakeStoryRepo{
		stories: make(map[string]*models.Story),
		authors: authors,
	}
}

func (r *fakeStoryRepo) put(story *models.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *story
	r.stories[story.ID] = &copied
}

func (r *fakeStoryRepo) Create(_ context.Context, story *models.Story) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stories[story.ID]; ok {
		return &domain.ConflictError{Message: "story exists", ResourceType: "story", ResourceID: story.ID}
	}
	copied := *story
	r.stories[story.ID] = &copied
	return nil
}

func (r *fakeStoryRepo) GetByID(_ context.Context, id string) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	copied := *story
	return &copied, nil
}

func (r *fakeStoryRepo) Update(_ context.Context, story *models.Story) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.stories[story.ID]
	if !ok {
		return fmt.Errorf("story %s: %w", story.ID, domain.ErrNotFound)
	}
	existing.Content = story.Content
	existing.Description = story.Description
	existing.IsPublic = story.IsPublic
	existing.IsDeleted = story.IsDeleted
	return nil
}

func (r *fakeStoryRepo) SetPostcard(_ context.Context, id, asset string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	story.Postcard = &asset
	return nil
}

func (r *fakeStoryRepo) IncrementViewCount(_ context.Context, id string) error {
	if r.failIncrement {
		return fmt.Errorf("increment view count: store unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	story.ViewCount++
	return nil
}

func (r *fakeStoryRepo) SetLikeCount(_ context.Context, id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	story.LikeCount = count
	return nil
}

func (r *fakeStoryRepo) CountByAuthorContent(_ context.Context, authorID, content string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, story := range r.stories {
		if story.AuthorID != nil && *story.AuthorID == authorID && story.Content == content && story.IsPublic {
			count++
		}
	}
	return count, nil
}

func (r *fakeStoryRepo) visible(q *repositories.FeedQuery) []models.Story {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Story
	for _, story := range r.stories {
		if !story.IsPublic || story.IsDeleted || !story.CreatedAt.Before(q.Before) {
			continue
		}
		if story.AuthorID != nil {
			if author, ok := r.authors.authors[*story.AuthorID]; ok && author.IsBanned {
				continue
			}
		}
		copied := *story
		if q.WithAuthor && story.AuthorID != nil {
			if author, ok := r.authors.authors[*story.AuthorID]; ok {
				authorCopy := *author
				copied.Author = &authorCopy
			}
		}
		out = append(out, copied)
	}
	return out
}

func (r *fakeStoryRepo) ListFeed(_ context.Context, q *repositories.FeedQuery) ([]models.Story, error) {
	out := r.visible(q)

	if !q.Random {
		columns := q.OrderColumns
		if len(columns) == 0 {
			columns = []string{"created_at"}
		}
		sort.Slice(out, func(i, j int) bool {
			for _, col := range columns {
				a, b := sortKey(&out[i], col), sortKey(&out[j], col)
				if a != b {
					return a > b // DESC
				}
			}
			return out[i].ID > out[j].ID // tiebreak
		})
	}

	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeStoryRepo) CountFeed(_ context.Context, q *repositories.FeedQuery) (int, error) {
	return len(r.visible(q)), nil
}

func sortKey(story *models.Story, column string) int64 {
	switch column {
	case "view_count":
		return int64(story.ViewCount)
	case "like_count":
		return int64(story.LikeCount)
	default:
		return story.CreatedAt.UnixNano()
	}
}

// fakeEngagementRepo is an in-memory EngagementRepository
type fakeEngagementRepo struct {
	mu      sync.Mutex
	likes   map[string]*models.Like
	reports []*models.ViolationReport
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{likes: make(map[string]*models.Like)}
}

func likeKey(authorID, storyID string) string {
	return authorID + "/" + storyID
}

func (r *fakeEngagementRepo) GetLike(_ context.Context, authorID, storyID string) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	like, ok := r.likes[likeKey(authorID, storyID)]
	if !ok {
		return nil, fmt.Errorf("like: %w", domain.ErrNotFound)
	}
	copied := *like
	return &copied, nil
}

func (r *fakeEngagementRepo) CreateLike(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey(like.AuthorID, like.StoryID)
	if _, ok := r.likes[key]; ok {
		return &domain.ConflictError{Message: "story already liked", ResourceType: "like", ResourceID: like.StoryID}
	}
	copied := *like
	r.likes[key] = &copied
	return nil
}

func (r *fakeEngagementRepo) DeleteLike(_ context.Context, authorID, storyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey(authorID, storyID)
	if _, ok := r.likes[key]; !ok {
		return fmt.Errorf("like: %w", domain.ErrNotFound)
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeEngagementRepo) CountLikes(_ context.Context, storyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, like := range r.likes {
		if like.StoryID == storyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEngagementRepo) CreateReport(_ context.Context, report *models.ViolationReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *report
	r.reports = append(r.reports, &copied)
	return nil
}

// fakeTxManager runs the function without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeRenderer returns a deterministic asset path without touching disk
type fakeRenderer struct {
	fail error
}

func (r *fakeRenderer) Render(_ context.Context, story *models.Story) (string, error) {
	if r.fail != nil {
		return "", r.fail
	}
	return "postcards/" + story.ID + ".jpg", nil
}
