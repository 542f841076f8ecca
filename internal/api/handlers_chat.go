package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avatimes/avatimes/internal/api/respond"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/sim"
)

// ChatHandler serves conversations and messages. When a reply simulator is
// attached, sending a direct message schedules a canned reply.
type ChatHandler struct {
	chat    *services.ChatService
	replies *sim.Replies
}

func NewChatHandler(c *services.ChatService, replies *sim.Replies) *ChatHandler {
	return &ChatHandler{chat: c, replies: replies}
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	convs, err := h.chat.List(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, convs)
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.chat.Get(r.Context(), mux.Vars(r)["convId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, c)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	convID := mux.Vars(r)["convId"]
	m, err := h.chat.SendMessage(r.Context(), convID, req.Text)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if h.replies != nil {
		if conv, err := h.chat.Get(r.Context(), convID); err == nil {
			h.replies.MessageSent(r.Context(), conv)
		}
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.MarkRead(r.Context(), mux.Vars(r)["convId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	c, err := h.chat.CreateGroup(r.Context(), req.Name, req.Members)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, c)
}

func (h *ChatHandler) CreateDirect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}
	c, err := h.chat.CreateDirect(r.Context(), req.Username)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, c)
}
