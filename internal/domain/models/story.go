package models

import (
	"time"
)

// Story is a short text submission. AuthorID is nil for anonymous
// submissions. IsDeleted soft-hides a story from every listing without
// destroying the row; it is distinct from the (disabled) delete endpoint.
type Story struct {
	ID          string    `json:"id" db:"id"`
	AuthorID    *string   `json:"author_id" db:"author_id"` // NULL = anonymous
	Content     string    `json:"content" db:"content"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ViewCount   int       `json:"view_count" db:"view_count"`
	LikeCount   int       `json:"like_count" db:"like_count"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	IsDeleted   bool      `json:"is_deleted" db:"is_deleted"`
	Postcard    *string   `json:"postcard" db:"postcard"` // rendered asset path, NULL until ready
	EditToken   string    `json:"-" db:"edit_token"`      // immutable once assigned

	// Author is populated only by feed queries that join author data for
	// elevated callers. Never stored.
	Author *Author `json:"-"`
}
