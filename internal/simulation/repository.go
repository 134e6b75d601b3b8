package simulation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// RunHistory records and lists run summaries.
type RunHistory interface {
	RecordRun(ctx context.Context, run RunSummary) error
	ListRecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ RunHistory = (*Repository)(nil)

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing simulation run repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) RecordRun(ctx context.Context, run RunSummary) error {
	logger := r.logger.With(
		"component", "simulation_repository",
		"operation", "record_run",
		"simulation_id", run.ID,
	)

	query := `
		INSERT INTO simulation_runs (id, quantum_seed, particle_count, total_energy, time_scale, energy_scale, temperature, execution_duration_ms, simulated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.QuantumSeed,
		run.ParticleCount,
		run.TotalEnergy,
		run.TimeScale,
		run.EnergyScale,
		run.Temperature,
		run.ExecutionDurationMs,
		run.SimulatedAt,
	)
	if err != nil {
		logger.Error("Failed to record simulation run", "error", err)
		return fmt.Errorf("failed to record simulation run: %w", err)
	}

	logger.Debug("Simulation run recorded")
	return nil
}

func (r *Repository) ListRecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	logger := r.logger.With("component", "simulation_repository", "operation", "list_recent_runs", "limit", limit)
	logger.Debug("Listing recent simulation runs")

	query := `
		SELECT id, quantum_seed, particle_count, total_energy, time_scale, energy_scale, temperature, execution_duration_ms, simulated_at
		FROM simulation_runs
		ORDER BY simulated_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to query simulation runs", "error", err)
		return nil, fmt.Errorf("failed to query simulation runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		err := rows.Scan(
			&run.ID,
			&run.QuantumSeed,
			&run.ParticleCount,
			&run.TotalEnergy,
			&run.TimeScale,
			&run.EnergyScale,
			&run.Temperature,
			&run.ExecutionDurationMs,
			&run.SimulatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan simulation run row", "error", err)
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating simulation runs: %w", err)
	}

	logger.Debug("Simulation runs retrieved", "count", len(runs))
	return runs, nil
}
