package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bigbang-server/internal/middleware"
	"bigbang-server/internal/shared/errors"
	"bigbang-server/internal/shared/response"
	"bigbang-server/internal/simulation"
)

const (
	serviceName       = "BigBang Quantum Simulator"
	defaultRunsLimit  = 20
	maxRunsLimit      = 100
	maxRequestBodyLen = 1 << 20 // 1 MB
)

// ServiceInfo is reported by the quantum health endpoint.
type ServiceInfo struct {
	Version       string
	SimulatorType string
	StartedAt     time.Time
}

type SimulationHandler struct {
	service *simulation.Service
	info    ServiceInfo
}

func NewSimulationHandler(service *simulation.Service, info ServiceInfo) *SimulationHandler {
	return &SimulationHandler{service: service, info: info}
}

func (h *SimulationHandler) BigBang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "bigbang")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	dto := defaultBigBangRequest()

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !stderrors.Is(err, io.EOF) {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	result, err := h.service.GenerateBigBang(ctx, dto.toRequest())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Debug("Big Bang response prepared",
		"simulation_id", result.Metadata.SimulationID,
		"particle_count", result.Metadata.TotalParticleCount)

	response.Success(w, http.StatusOK, toBigBangResponse(result))
}

func (h *SimulationHandler) UniverseConstants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "universe_constants")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	constants, err := h.service.GenerateUniverseConstants(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, toUniverseConstantsDTO(constants))
}

func (h *SimulationHandler) QuantumSeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "quantum_seed")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	seed, err := h.service.GenerateQuantumSeed(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, QuantumSeedResponse{
		Seed:        seed,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Type:        "Quantum",
	})
}

func (h *SimulationHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "quantum_health")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, QuantumHealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       h.info.Version,
		Service:       serviceName,
		Uptime:        time.Since(h.info.StartedAt).Round(time.Second).String(),
		SimulatorType: h.info.SimulatorType,
	})
}

func (h *SimulationHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_runs")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid limit format", err))
			return
		}
		if parsed <= 0 {
			response.Error(w, r, logger, errors.Validationf("limit must be positive, got %d", parsed))
			return
		}
		limit = min(parsed, maxRunsLimit)
	}

	runs, err := h.service.RecentRuns(ctx, limit)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if runs == nil {
		runs = []simulation.RunSummary{}
	}

	response.Success(w, http.StatusOK, runs)
}

func (h *SimulationHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "purge_cache")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var operator string
	if claims := middleware.GetOperatorFromContext(r); claims != nil {
		operator = claims.Subject
	}

	removed, err := h.service.PurgeCache(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Simulation cache purged by operator", "operator", operator, "removed", removed)
	response.Success(w, http.StatusOK, PurgeCacheResponse{Removed: removed, PurgedBy: operator})
}
