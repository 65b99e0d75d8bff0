package service

import (
	"storyfeed/internal/domain/models"
)

// ProjectionTier selects which fields of a story (and its author) a caller
// may see. The tier depends only on the caller's capability, never on
// ownership of the particular story.
type ProjectionTier int

const (
	// TierPublic is the base field set with no author sub-fields
	TierPublic ProjectionTier = iota
	// TierElevated adds author identity, contact and ban-status fields
	TierElevated
)

// TierFor returns the projection tier for a caller
func TierFor(caller models.Caller) ProjectionTier {
	if caller.Elevated {
		return TierElevated
	}
	return TierPublic
}

// ProjectStory maps a story onto its API shape for the given tier. The
// projection is an explicit allow-list; fields like the edit token or the
// hidden flag never pass through it.
func ProjectStory(story *models.Story, tier ProjectionTier) *models.StoryView {
	view := &models.StoryView{
		ID:          story.ID,
		Content:     story.Content,
		Description: story.Description,
		CreatedAt:   story.CreatedAt,
		ViewCount:   story.ViewCount,
		LikeCount:   story.LikeCount,
		Postcard:    story.Postcard,
		AuthorID:    story.AuthorID,
	}

	if tier == TierElevated && story.Author != nil {
		view.Author = ProjectAuthor(story.Author)
	}

	return view
}

// ProjectAuthor maps an author onto its elevated-tier API shape
func ProjectAuthor(author *models.Author) *models.AuthorView {
	return &models.AuthorView{
		ID:       author.ID,
		Username: author.Username,
		Email:    author.Email,
		PhotoURL: author.PhotoURL,
		IsBanned: author.IsBanned,
	}
}
