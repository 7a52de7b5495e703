package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/logger"
)

const healthTimeout = 2 * time.Second

func (h *Handler) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Service: "openreview-store",
		Status:  "running",
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
