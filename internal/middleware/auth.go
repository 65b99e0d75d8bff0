package middleware

import (
	"net/http"
	"strings"

	"storyfeed/internal/auth"
	"storyfeed/internal/domain/models"
	"storyfeed/internal/httputil"
)

// Auth resolves the caller identity from an optional Bearer token. Requests
// without a token continue anonymously; requests presenting an invalid token
// are rejected rather than silently downgraded.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			caller := models.Caller{
				AuthorID: claims.GetAuthorID(),
				Elevated: claims.IsAdmin,
			}
			next.ServeHTTP(w, httputil.WithCaller(r, caller))
		})
	}
}
