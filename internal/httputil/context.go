package httputil

import (
	"context"
	"net/http"

	"storyfeed/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const callerKey contextKey = "caller"

// WithCaller adds the resolved caller identity to the request context
func WithCaller(r *http.Request, caller models.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), callerKey, caller)
	return r.WithContext(ctx)
}

// GetCaller retrieves the caller from context; the zero value means the
// request is anonymous
func GetCaller(r *http.Request) models.Caller {
	caller, _ := r.Context().Value(callerKey).(models.Caller)
	return caller
}
