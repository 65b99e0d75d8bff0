package models

import "time"

// Like records that an author currently endorses a story. The pair
// (AuthorID, StoryID) is unique; removal is a hard delete.
type Like struct {
	AuthorID  string    `json:"author_id" db:"author_id"`
	StoryID   string    `json:"story_id" db:"story_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ViolationReport flags a story for review. Append-only; the same author may
// report the same story more than once, and anonymous reports are allowed.
type ViolationReport struct {
	ID        string    `json:"id" db:"id"`
	StoryID   string    `json:"story_id" db:"story_id"`
	AuthorID  *string   `json:"author_id" db:"author_id"` // NULL = anonymous report
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
