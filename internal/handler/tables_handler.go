package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"inkblog/internal/logger"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.Health(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, Envelope{
			"success":  false,
			"message":  "Database is unavailable.",
			"database": "down",
		})
		return
	}

	writeSuccess(w, "OK", http.StatusOK, Envelope{
		"database":    "up",
		"countTables": count,
	})
}
