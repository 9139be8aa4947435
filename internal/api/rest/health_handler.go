package rest

import (
	"net/http"
	"time"

	"carrental-backend/internal/logger"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	configured, err := s.settings.IsConfigured(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "error",
			"error":  "database unavailable",
		})
		return
	}

	status := "ok"
	if !configured {
		status = "needs_setup"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"configured": configured,
		"database":   "connected",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
