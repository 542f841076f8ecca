package api

import (
	"context"
	"net/http"
	"time"

	"github.com/avatimes/avatimes/internal/api/respond"
	"github.com/avatimes/avatimes/internal/blob"
)

// Pinger is implemented by blob backends that can verify connectivity.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// HealthHandler serves liveness and storage health checks. healthy, when
// set, reflects the background storage monitor.
type HealthHandler struct {
	kv      blob.KV
	healthy func() bool
}

func NewHealthHandler(kv blob.KV, healthy func() bool) *HealthHandler {
	return &HealthHandler{kv: kv, healthy: healthy}
}

func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.healthy != nil && !h.healthy() {
		respond.WriteError(w, http.StatusServiceUnavailable, "storage unhealthy")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CheckStorageHealth pings the persistence backend. Backends without a ping
// (the in-memory KV) report healthy.
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	p, ok := h.kv.(Pinger)
	if !ok {
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "storage": "memory"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := p.HealthPing(ctx); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "storage unreachable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
