package handlers

import (
	"net/http"
	"time"

	"github.com/veritab/veritab/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "veritab-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready (readiness probe).
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":         "ready",
		"sessions":       h.sessions.Count(),
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}
