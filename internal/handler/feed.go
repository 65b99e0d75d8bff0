package handler

import (
	"log/slog"
	"net/http"
	"time"

	svc "storyfeed/internal/domain/services"
	"storyfeed/internal/httputil"
)

// FeedHandler handles feed listing and single-story reads
type FeedHandler struct {
	feedService svc.FeedService
	logger      *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService svc.FeedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// ListFeed returns one page of the public feed
// GET /?beforeDate=...&limit=10&offset=0&orderBy=createdAt
func (h *FeedHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	params := &svc.FeedParams{
		Limit:   QueryInt(r, "limit", 0),
		Offset:  QueryInt(r, "offset", 0),
		OrderBy: r.URL.Query().Get("orderBy"),
	}

	if raw := r.URL.Query().Get("beforeDate"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "beforeDate must be an ISO-8601 timestamp")
			return
		}
		params.Before = before
	}

	page, err := h.feedService.ListFeed(r.Context(), params, httputil.GetCaller(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetStory retrieves a single story
// GET /{id}
func (h *FeedHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Story ID")
	if !ok {
		return
	}

	view, err := h.feedService.GetStory(r.Context(), id, httputil.GetCaller(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetPostcard is the same lookup as GetStory, view increment included.
// Reserved hook for an asset-specific response shape.
// GET /{id}/postcard
func (h *FeedHandler) GetPostcard(w http.ResponseWriter, r *http.Request) {
	h.GetStory(w, r)
}
