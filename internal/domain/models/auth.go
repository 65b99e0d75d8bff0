package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims structure issued by the identity
// provider. Only the subject and the admin flag are consumed here; identity
// verification itself is an upstream concern.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	IsAdmin              bool   `json:"is_admin"`
}

// GetAuthorID returns the author ID from the JWT subject claim.
func (c *AccessClaims) GetAuthorID() string {
	return c.Subject
}

// Caller identifies the requesting user for authorization decisions.
// A zero AuthorID means the request is anonymous.
type Caller struct {
	AuthorID string
	Elevated bool
}

// Anonymous reports whether the caller carries no identity.
func (c Caller) Anonymous() bool {
	return c.AuthorID == ""
}
