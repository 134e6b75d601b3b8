package simulation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"bigbang-server/internal/quantum"
)

// Request holds the parameters of one Big Bang generation. A zero RandomSeed
// asks the service to draw one.
type Request struct {
	ParticleCount int
	TimeScale     float64
	EnergyScale   float64
	Temperature   float64
	RandomSeed    int64
}

// Fingerprint is the cache key for the request. Equal requests always map to
// the same key.
func (r Request) Fingerprint() string {
	return fmt.Sprintf("bigbang_%d_%s_%s_%s_%d",
		r.ParticleCount,
		formatFloat(r.TimeScale),
		formatFloat(r.EnergyScale),
		formatFloat(r.Temperature),
		r.RandomSeed,
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type Metadata struct {
	SimulationTime           time.Time                    `json:"simulation_time"`
	ExecutionDuration        time.Duration                `json:"execution_duration"`
	TotalParticleCount       int                          `json:"total_particle_count"`
	TotalEnergy              float64                      `json:"total_energy"`
	QuantumSeed              int64                        `json:"quantum_seed"`
	SimulationID             string                       `json:"simulation_id"`
	ParticleTypeDistribution map[quantum.ParticleType]int `json:"particle_type_distribution"`
	AdditionalData           map[string]float64           `json:"additional_data"`
}

// Result is assembled once per generation and never mutated afterwards.
type Result struct {
	Particles         []quantum.Particle        `json:"particles"`
	UniverseConstants quantum.UniverseConstants `json:"universe_constants"`
	Metadata          Metadata                  `json:"metadata"`
}

// RunSummary is the persisted trace of a generation; particles are not stored.
type RunSummary struct {
	ID                  string    `json:"id"`
	QuantumSeed         int64     `json:"quantumSeed"`
	ParticleCount       int       `json:"particleCount"`
	TotalEnergy         float64   `json:"totalEnergy"`
	TimeScale           float64   `json:"timeScale"`
	EnergyScale         float64   `json:"energyScale"`
	Temperature         float64   `json:"temperature"`
	ExecutionDurationMs float64   `json:"executionDurationMs"`
	SimulatedAt         time.Time `json:"simulatedAt"`
}

// newResult assembles the Result. It fails when the energy total overflows,
// since such a result cannot be serialized or cached.
func newResult(id string, req Request, seed int64, constants quantum.UniverseConstants, particles []quantum.Particle, simulatedAt time.Time, elapsed time.Duration) (*Result, error) {
	totalEnergy := TotalEnergy(particles)
	if math.IsInf(totalEnergy, 0) || math.IsNaN(totalEnergy) {
		return nil, fmt.Errorf("total energy: %w", quantum.ErrNonFinite)
	}

	return &Result{
		Particles:         particles,
		UniverseConstants: constants,
		Metadata: Metadata{
			SimulationTime:           simulatedAt,
			ExecutionDuration:        elapsed,
			TotalParticleCount:       len(particles),
			TotalEnergy:              totalEnergy,
			QuantumSeed:              seed,
			SimulationID:             id,
			ParticleTypeDistribution: TypeDistribution(particles),
			AdditionalData: map[string]float64{
				"particleCount": float64(req.ParticleCount),
				"timeScale":     req.TimeScale,
				"energyScale":   req.EnergyScale,
				"temperature":   req.Temperature,
			},
		},
	}, nil
}

// TotalEnergy sums particle energies in generation order.
func TotalEnergy(particles []quantum.Particle) float64 {
	var total float64
	for _, p := range particles {
		total += p.Energy
	}
	return total
}

func TypeDistribution(particles []quantum.Particle) map[quantum.ParticleType]int {
	dist := map[quantum.ParticleType]int{
		quantum.ParticleTypeQuark:  0,
		quantum.ParticleTypeLepton: 0,
		quantum.ParticleTypeBoson:  0,
	}
	for _, p := range particles {
		dist[p.Type]++
	}
	return dist
}

func (r *Result) summary(req Request) RunSummary {
	return RunSummary{
		ID:                  r.Metadata.SimulationID,
		QuantumSeed:         r.Metadata.QuantumSeed,
		ParticleCount:       r.Metadata.TotalParticleCount,
		TotalEnergy:         r.Metadata.TotalEnergy,
		TimeScale:           req.TimeScale,
		EnergyScale:         req.EnergyScale,
		Temperature:         req.Temperature,
		ExecutionDurationMs: float64(r.Metadata.ExecutionDuration) / float64(time.Millisecond),
		SimulatedAt:         r.Metadata.SimulationTime,
	}
}
