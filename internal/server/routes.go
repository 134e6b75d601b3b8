package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bigbang-server/internal/middleware"
	serverHandlers "bigbang-server/internal/server/handlers"
	"bigbang-server/internal/shared/config"
	"bigbang-server/internal/simulation"
	simulationHandlers "bigbang-server/internal/simulation/handlers"
)

type Routes struct {
	cfg       *config.Config
	db        serverHandlers.StatusReporter
	redis     serverHandlers.StatusReporter
	service   *simulation.Service
	startedAt time.Time
}

func NewRoutes(cfg *config.Config, db, redis serverHandlers.StatusReporter, service *simulation.Service, startedAt time.Time) *Routes {
	return &Routes{
		cfg:       cfg,
		db:        db,
		redis:     redis,
		service:   service,
		startedAt: startedAt,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis, r.cfg.Server.Version)
	simulationHandler := simulationHandlers.NewSimulationHandler(r.service, simulationHandlers.ServiceInfo{
		Version:       r.cfg.Server.Version,
		SimulatorType: r.cfg.Simulation.SimulatorType,
		StartedAt:     r.startedAt,
	})

	// Public endpoints
	mux.Handle("/api/health", healthHandler)
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("/api/quantum/bigbang", bigBangTimeout(http.HandlerFunc(simulationHandler.BigBang), r.cfg.Simulation.Timeout))
	mux.HandleFunc("/api/quantum/universe-constants", simulationHandler.UniverseConstants)
	mux.HandleFunc("/api/quantum/quantum-seed", simulationHandler.QuantumSeed)
	mux.HandleFunc("/api/quantum/health", simulationHandler.Health)
	mux.HandleFunc("/api/simulations", simulationHandler.ListRuns)

	publicEndpoints := []string{
		"/api/health", "/api/server/health", "/api/quantum/bigbang", "/api/quantum/universe-constants",
		"/api/quantum/quantum-seed", "/api/quantum/health", "/api/simulations",
	}
	var operatorEndpoints []string

	// Operator endpoints (bearer token with operator role)
	if r.cfg.OperatorEndpointsEnabled() {
		requireOperator := middleware.RequireOperator(r.cfg.Auth.JWTSecret)
		mux.Handle("/api/quantum/cache", requireOperator(http.HandlerFunc(simulationHandler.PurgeCache)))
		operatorEndpoints = append(operatorEndpoints, "/api/quantum/cache")
	} else {
		logger.Info("JWT_SECRET not set, operator endpoints disabled")
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", publicEndpoints,
		"operator_endpoints", operatorEndpoints,
		"simulation_timeout", r.cfg.Simulation.Timeout,
	)

	return mux
}

// bigBangTimeout answers 503 in the JSON error shape once timeout elapses.
func bigBangTimeout(h http.Handler, timeout time.Duration) http.Handler {
	body := fmt.Sprintf(`{"error":"timeout","message":"simulation exceeded %s","code":%d}`, timeout, http.StatusServiceUnavailable)
	return http.TimeoutHandler(h, timeout, body)
}
