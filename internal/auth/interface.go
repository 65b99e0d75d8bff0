package auth

import "storyfeed/internal/domain/models"

// JWTVerifier validates bearer tokens and extracts the caller's claims.
// Identity issuance lives upstream; this service only verifies.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid
	// signature.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier (e.g. HTTP
	// connections for JWKS refresh).
	Close() error
}
