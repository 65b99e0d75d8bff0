package models

import "time"

// StoryView is the projected shape of a story returned over the API. The
// base field set is the public tier; Author is attached only for elevated
// callers. The edit token travels only on freshly created stories so an
// anonymous author can hold on to it.
type StoryView struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	ViewCount   int         `json:"view_count"`
	LikeCount   int         `json:"like_count"`
	Postcard    *string     `json:"postcard"`
	AuthorID    *string     `json:"author_id"`
	Author      *AuthorView `json:"author,omitempty"` // elevated callers only
	EditToken   string      `json:"edit_token,omitempty"`
}

// AuthorView is the elevated-tier projection of an author.
type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
	IsBanned bool   `json:"is_banned"`
}
