package handler

import (
	"log/slog"
	"net/http"
	"time"

	svc "storyfeed/internal/domain/services"
	"storyfeed/internal/httputil"
)

// EngagementHandler handles likes and violation reports
type EngagementHandler struct {
	engagementService svc.EngagementService
	logger            *slog.Logger
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService svc.EngagementService, logger *slog.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		logger:            logger,
	}
}

// Like records a like for the calling author
// POST /{id}/like
func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Story ID")
	if !ok {
		return
	}

	caller := httputil.GetCaller(r)
	if caller.Anonymous() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.engagementService.Like(r.Context(), caller.AuthorID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"story_id": id,
		"liked":    true,
	})
}

// Unlike removes a prior like
// DELETE /{id}/like
func (h *EngagementHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Story ID")
	if !ok {
		return
	}

	caller := httputil.GetCaller(r)
	if caller.Anonymous() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.engagementService.Unlike(r.Context(), caller.AuthorID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Report appends a violation report; identity is optional
// POST /{id}/violation
func (h *EngagementHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Story ID")
	if !ok {
		return
	}

	caller := httputil.GetCaller(r)
	report, err := h.engagementService.Report(r.Context(), id, caller.AuthorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, report)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *EngagementHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
