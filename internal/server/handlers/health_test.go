package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bigbang-server/internal/server/handlers"
	"bigbang-server/internal/shared/database"
	"bigbang-server/internal/shared/redis"
)

type fixedStatus string

func (s fixedStatus) Status(context.Context) string { return string(s) }

func TestHealthReportsDependencies(t *testing.T) {
	h := handlers.NewHealthHandler(fixedStatus("connected"), fixedStatus("disconnected"), "1.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "1.0.0", resp.Version)
	require.Equal(t, "connected", resp.Database)
	require.Equal(t, "disconnected", resp.Redis)
}

func TestHealthWithDisabledDependencies(t *testing.T) {
	var db *database.DB
	var rdb *redis.Client
	h := handlers.NewHealthHandler(db, rdb, "1.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "disabled", resp.Database)
	require.Equal(t, "disabled", resp.Redis)
}
