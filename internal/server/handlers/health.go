package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bigbang-server/internal/shared/response"
)

// StatusReporter reports "connected", "disconnected" or "disabled". Both the
// database and redis handles satisfy it, including as nil pointers.
type StatusReporter interface {
	Status(ctx context.Context) string
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type HealthHandler struct {
	db      StatusReporter
	redis   StatusReporter
	version string
}

func NewHealthHandler(db, redis StatusReporter, version string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, version: version}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := h.db.Status(ctx)
	redisStatus := h.redis.Status(ctx)
	if dbStatus == "disconnected" || redisStatus == "disconnected" {
		logger.Warn("Dependency unreachable", "database", dbStatus, "redis", redisStatus)
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
		Database:  dbStatus,
		Redis:     redisStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
