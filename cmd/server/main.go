package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bigbang-server/internal/middleware"
	"bigbang-server/internal/server"
	"bigbang-server/internal/shared/config"
	"bigbang-server/internal/shared/database"
	"bigbang-server/internal/shared/logger"
	"bigbang-server/internal/shared/redis"
	"bigbang-server/internal/simulation"
)

func main() {
	startedAt := time.Now()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init()
	log := slog.With("component", "main")
	log.Info("Starting BigBang server",
		"version", cfg.Server.Version,
		"environment", cfg.Server.Environment,
		"random_mode", cfg.Simulation.RandomMode,
	)

	db, err := database.Connect()
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if db != nil {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	rdb, err := redis.Connect()
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close Redis", "error", err)
		}
	}()

	var cache simulation.Cache
	if rdb != nil {
		cache = simulation.NewRedisCache(rdb.Client)
	} else {
		memoryCache := simulation.NewMemoryCache(time.Minute)
		defer memoryCache.Close()
		cache = memoryCache
	}

	var history simulation.RunHistory
	if db != nil {
		history = simulation.NewRepository(db.DB, slog.With("component", "simulation_repository"))
	}

	service := simulation.NewService(simulation.Options{
		MaxParticleCount: cfg.Simulation.MaxParticleCount,
		EnableCaching:    cfg.Simulation.EnableCaching,
		CacheTTL:         cfg.Simulation.CacheTTL,
		ConstantJitter:   cfg.Simulation.ConstantJitter,
		Sources:          simulation.SourceFactoryFor(cfg.Simulation.RandomMode),
	}, cache, history, logger.Simulation(cfg.Simulation.EnableLogging))

	mux := server.NewRoutes(cfg, db, rdb, service, startedAt).Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()
	corsMiddleware := middleware.NewCORS(cfg.Frontend)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		return
	}
	log.Info("Server stopped")
}
