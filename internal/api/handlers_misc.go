package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avatimes/avatimes/internal/api/respond"
	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/store"
)

// NotificationHandler serves the inbox.
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(n *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: n}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.notifications.List(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, all)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.UnreadCount(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]int{"unread": n})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), mux.Vars(r)["notifId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context()); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProfileHandler serves profile pages.
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: p}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName *string `json:"displayName"`
		Bio         *string `json:"bio"`
		Avatar      *string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	p, err := h.profiles.Update(r.Context(), mux.Vars(r)["username"], func(p *model.Profile) {
		if req.DisplayName != nil {
			p.DisplayName = *req.DisplayName
		}
		if req.Bio != nil {
			p.Bio = *req.Bio
		}
		if req.Avatar != nil {
			p.Avatar = *req.Avatar
		}
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// SettingsHandler serves the app preferences object.
type SettingsHandler struct {
	store store.Store
}

func NewSettingsHandler(s store.Store) *SettingsHandler { return &SettingsHandler{store: s} }

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Settings().Get(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cfg)
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg model.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.store.Settings().Save(r.Context(), &cfg); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cfg)
}

// ExploreHandler serves search and category browsing.
type ExploreHandler struct {
	explore *services.ExploreService
}

func NewExploreHandler(e *services.ExploreService) *ExploreHandler {
	return &ExploreHandler{explore: e}
}

func (h *ExploreHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.explore.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func (h *ExploreHandler) Browse(w http.ResponseWriter, r *http.Request) {
	posts, err := h.explore.Browse(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, posts)
}

func (h *ExploreHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	recents, err := h.explore.RecentSearches(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, recents)
}

func (h *ExploreHandler) ClearSearches(w http.ResponseWriter, r *http.Request) {
	if err := h.explore.ClearSearches(r.Context()); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
