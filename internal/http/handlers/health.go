package handlers

import (
	"net/http"
	"time"

	"github.com/urraccon/contacts-api/internal/http/respond"
)

// HealthHandler reports process liveness.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler records the process start time.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started}
}

// Register attaches the health route to the mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
