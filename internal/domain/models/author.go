package models

// Author is a registered account. Banned authors keep their rows; their
// stories simply stop appearing in listings.
type Author struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	PhotoURL string `json:"photo_url" db:"photo_url"`
	IsBanned bool   `json:"is_banned" db:"is_banned"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin"`
}
