package simulation

import (
	"context"
	"log/slog"
	"time"

	"bigbang-server/internal/quantum"
	"bigbang-server/internal/shared/config"
	"bigbang-server/internal/shared/errors"

	"github.com/google/uuid"
)

// SourceFactory acquires the RandomSource for one generation call.
type SourceFactory func(seed int64) quantum.RandomSource

// SourceFactoryFor maps a configured random mode to its factory. In seeded
// mode the seed fully determines the draws; in entropy mode it is recorded
// but every draw reads the OS entropy pool.
func SourceFactoryFor(mode string) SourceFactory {
	if mode == config.RandomModeEntropy {
		return func(int64) quantum.RandomSource { return quantum.NewEntropySource() }
	}
	return func(seed int64) quantum.RandomSource { return quantum.NewSeededSource(seed) }
}

type Options struct {
	MaxParticleCount int
	EnableCaching    bool
	CacheTTL         time.Duration
	ConstantJitter   float64
	Sources          SourceFactory
}

type Service struct {
	opts      Options
	cache     Cache
	history   RunHistory
	constants *quantum.ConstantsGenerator
	particles *quantum.ParticleGenerator
	sources   SourceFactory
	entropy   func() quantum.RandomSource
	logger    *slog.Logger
}

// NewService wires the orchestrator. cache and history may be nil.
func NewService(opts Options, cache Cache, history RunHistory, logger *slog.Logger) *Service {
	sources := opts.Sources
	if sources == nil {
		sources = SourceFactoryFor(config.RandomModeSeeded)
	}

	return &Service{
		opts:      opts,
		cache:     cache,
		history:   history,
		constants: quantum.NewConstantsGenerator(opts.ConstantJitter),
		particles: quantum.NewParticleGenerator(),
		sources:   sources,
		entropy:   func() quantum.RandomSource { return quantum.NewEntropySource() },
		logger:    logger,
	}
}

// GenerateBigBang validates req, then either returns the cached result for
// its fingerprint or runs seed -> constants -> particles and assembles a new
// Result. Failures never return partial results.
func (s *Service) GenerateBigBang(ctx context.Context, req Request) (*Result, error) {
	logger := s.logger.With("operation", "generate_bigbang", "particle_count", req.ParticleCount)
	logger.Info("Big Bang simulation started",
		"time_scale", req.TimeScale,
		"energy_scale", req.EnergyScale,
		"temperature", req.Temperature,
		"random_seed", req.RandomSeed,
	)
	started := time.Now()

	if err := Validate(req, s.opts.MaxParticleCount); err != nil {
		logger.Warn("Simulation request rejected", "error", err)
		return nil, err
	}

	key := req.Fingerprint()
	if cached, ok := s.lookup(ctx, key); ok {
		logger.Info("Big Bang simulation served from cache",
			"simulation_id", cached.Metadata.SimulationID,
			"quantum_seed", cached.Metadata.QuantumSeed,
		)
		return cached, nil
	}

	seed, err := s.obtainSeed(req)
	if err != nil {
		return nil, s.fail(logger, errors.Generation("obtain_seed", err))
	}
	logger.Debug("Seed obtained", "quantum_seed", seed)

	src := s.sources(seed)
	defer src.Close()

	constants, err := s.constants.Generate(src)
	if err != nil {
		return nil, s.fail(logger, errors.Generation("generate_constants", err))
	}
	logger.Debug("Universe constants generated", "speed_of_light", constants.SpeedOfLight)

	particles, err := s.particles.Generate(src, quantum.GenerateParams{
		Count:       req.ParticleCount,
		TimeScale:   req.TimeScale,
		EnergyScale: req.EnergyScale,
	})
	if err != nil {
		return nil, s.fail(logger, errors.Generation("generate_particles", err))
	}
	logger.Debug("Particles generated", "count", len(particles))

	result, err := newResult(uuid.NewString(), req, seed, constants, particles, time.Now().UTC(), time.Since(started))
	if err != nil {
		return nil, s.fail(logger, errors.Generation("assemble_result", err))
	}

	s.store(ctx, key, result)
	s.record(ctx, req, result)

	logger.Info("Big Bang simulation completed",
		"simulation_id", result.Metadata.SimulationID,
		"quantum_seed", seed,
		"total_energy", result.Metadata.TotalEnergy,
		"duration_ms", result.Metadata.ExecutionDuration.Milliseconds(),
	)
	return result, nil
}

// GenerateUniverseConstants returns a freshly jittered constants table.
func (s *Service) GenerateUniverseConstants(ctx context.Context) (quantum.UniverseConstants, error) {
	logger := s.logger.With("operation", "generate_universe_constants")

	src := s.entropy()
	defer src.Close()

	constants, err := s.constants.Generate(src)
	if err != nil {
		return quantum.UniverseConstants{}, s.fail(logger, errors.Generation("generate_constants", err))
	}

	logger.Debug("Universe constants generated")
	return constants, nil
}

// GenerateQuantumSeed draws a seed from the entropy pool.
func (s *Service) GenerateQuantumSeed(ctx context.Context) (int64, error) {
	logger := s.logger.With("operation", "generate_quantum_seed")

	src := s.entropy()
	defer src.Close()

	seed, err := quantum.NewSeed(src)
	if err != nil {
		return 0, s.fail(logger, errors.Generation("generate_seed", err))
	}

	logger.Debug("Quantum seed generated", "seed", seed)
	return seed, nil
}

// RecentRuns lists recorded run summaries, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if s.history == nil {
		return nil, errors.External("run history is not enabled")
	}

	runs, err := s.history.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, errors.WrapExternal("list_runs", err)
	}
	return runs, nil
}

// PurgeCache drops every cached result and reports how many were removed.
func (s *Service) PurgeCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	removed, err := s.cache.Purge(ctx)
	if err != nil {
		return removed, errors.WrapExternal("cache_purge", err)
	}

	s.logger.Info("Simulation cache purged", "operation", "purge_cache", "removed", removed)
	return removed, nil
}

func (s *Service) obtainSeed(req Request) (int64, error) {
	if req.RandomSeed != 0 {
		return req.RandomSeed, nil
	}

	src := s.entropy()
	defer src.Close()

	return quantum.NewSeed(src)
}

func (s *Service) cachingEnabled() bool {
	return s.opts.EnableCaching && s.cache != nil
}

// lookup treats cache failures as misses.
func (s *Service) lookup(ctx context.Context, key string) (*Result, bool) {
	if !s.cachingEnabled() {
		return nil, false
	}

	result, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Cache read failed, treating as miss",
			"operation", "cache_get", "key", key, "error", err)
		return nil, false
	}
	return result, ok
}

func (s *Service) store(ctx context.Context, key string, result *Result) {
	if !s.cachingEnabled() {
		return
	}

	if err := s.cache.Set(ctx, key, result, s.opts.CacheTTL); err != nil {
		s.logger.Warn("Cache write failed, result not cached",
			"operation", "cache_set", "key", key, "error", err)
	}
}

func (s *Service) record(ctx context.Context, req Request, result *Result) {
	if s.history == nil {
		return
	}

	if err := s.history.RecordRun(ctx, result.summary(req)); err != nil {
		s.logger.Warn("Run history write failed",
			"operation", "record_run", "simulation_id", result.Metadata.SimulationID, "error", err)
	}
}

func (s *Service) fail(logger *slog.Logger, err error) error {
	logger.Error("Simulation failed", "failed_operation", errors.GetOp(err), "error", err)
	return err
}
