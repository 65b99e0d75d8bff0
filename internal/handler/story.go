package handler

import (
	"log/slog"
	"net/http"

	svc "storyfeed/internal/domain/services"
	"storyfeed/internal/httputil"
)

// StoryHandler handles story submission and editing
type StoryHandler struct {
	storyService svc.StoryService
	logger       *slog.Logger
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(storyService svc.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		logger:       logger,
	}
}

// CreateStory submits a story
// POST /
func (h *StoryHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req svc.CreateStoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.storyService.CreateStory(r.Context(), &req, httputil.GetCaller(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, view)
}

// UpdateStory applies a patch to a story. The body is an arbitrary key/value
// object; only allow-listed fields are applied.
// PATCH /{id}
func (h *StoryHandler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Story ID")
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := &svc.UpdateStoryRequest{
		Patch:     patch,
		EditToken: r.Header.Get("X-Edit-Token"),
	}

	view, err := h.storyService.UpdateStory(r.Context(), id, req, httputil.GetCaller(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}
