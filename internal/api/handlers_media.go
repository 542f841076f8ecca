package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avatimes/avatimes/internal/api/respond"
	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/services"
)

// MediaHandler serves reels and stories.
type MediaHandler struct {
	media *services.MediaService
}

func NewMediaHandler(m *services.MediaService) *MediaHandler { return &MediaHandler{media: m} }

func (h *MediaHandler) Reels(w http.ResponseWriter, r *http.Request) {
	reels, err := h.media.Reels(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, reels)
}

func (h *MediaHandler) CreateReel(w http.ResponseWriter, r *http.Request) {
	var reel model.Reel
	if err := json.NewDecoder(r.Body).Decode(&reel); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	created, err := h.media.CreateReel(r.Context(), &reel)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

func (h *MediaHandler) ToggleReelLike(w http.ResponseWriter, r *http.Request) {
	reel, err := h.media.ToggleReelLike(r.Context(), mux.Vars(r)["reelId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, reel)
}

func (h *MediaHandler) DeleteReel(w http.ResponseWriter, r *http.Request) {
	if err := h.media.DeleteReel(r.Context(), mux.Vars(r)["reelId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MediaHandler) Stories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.media.Stories(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, stories)
}

func (h *MediaHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var st model.Story
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	created, err := h.media.CreateStory(r.Context(), &st)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

func (h *MediaHandler) ViewStory(w http.ResponseWriter, r *http.Request) {
	st, err := h.media.ViewStory(r.Context(), mux.Vars(r)["storyId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}
