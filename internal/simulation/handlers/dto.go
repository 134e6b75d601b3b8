package handlers

import (
	"time"

	"bigbang-server/internal/quantum"
	"bigbang-server/internal/simulation"
)

const (
	defaultParticleCount = 1000
	defaultTimeScale     = 1.0
	defaultEnergyScale   = 1.0
	defaultTemperature   = 1e6
)

// BigBangRequestDTO is decoded over a defaulted value, so omitted fields keep
// their defaults.
type BigBangRequestDTO struct {
	ParticleCount int     `json:"particleCount"`
	TimeScale     float64 `json:"timeScale"`
	EnergyScale   float64 `json:"energyScale"`
	Temperature   float64 `json:"temperature"`
	RandomSeed    int64   `json:"randomSeed"`
}

func defaultBigBangRequest() BigBangRequestDTO {
	return BigBangRequestDTO{
		ParticleCount: defaultParticleCount,
		TimeScale:     defaultTimeScale,
		EnergyScale:   defaultEnergyScale,
		Temperature:   defaultTemperature,
	}
}

func (d BigBangRequestDTO) toRequest() simulation.Request {
	return simulation.Request{
		ParticleCount: d.ParticleCount,
		TimeScale:     d.TimeScale,
		EnergyScale:   d.EnergyScale,
		Temperature:   d.Temperature,
		RandomSeed:    d.RandomSeed,
	}
}

type ParticleDTO struct {
	ID           string               `json:"id"`
	Type         quantum.ParticleType `json:"type"`
	Energy       float64              `json:"energy"`
	Mass         float64              `json:"mass"`
	Charge       float64              `json:"charge"`
	Position     quantum.Vector3      `json:"position"`
	Velocity     quantum.Vector3      `json:"velocity"`
	Color        string               `json:"color"`
	Size         float64              `json:"size"`
	CreationTime int64                `json:"creationTime"`
}

type UniverseConstantsDTO struct {
	SpeedOfLight          float64 `json:"speedOfLight"`
	PlanckConstant        float64 `json:"planckConstant"`
	GravitationalConstant float64 `json:"gravitationalConstant"`
	FineStructureConstant float64 `json:"fineStructureConstant"`
	ElectronMass          float64 `json:"electronMass"`
	ProtonMass            float64 `json:"protonMass"`
	ElementaryCharge      float64 `json:"elementaryCharge"`
	BoltzmannConstant     float64 `json:"boltzmannConstant"`
	AvogadroNumber        float64 `json:"avogadroNumber"`
	VacuumPermeability    float64 `json:"vacuumPermeability"`
}

type MetadataDTO struct {
	SimulationTime           string                       `json:"simulationTime"`
	ExecutionDuration        int64                        `json:"executionDuration"`
	ExecutionDurationMs      float64                      `json:"executionDurationMs"`
	TotalParticleCount       int                          `json:"totalParticleCount"`
	TotalEnergy              float64                      `json:"totalEnergy"`
	QuantumSeed              int64                        `json:"quantumSeed"`
	SimulationID             string                       `json:"simulationId"`
	ParticleTypeDistribution map[quantum.ParticleType]int `json:"particleTypeDistribution"`
	AdditionalData           map[string]float64           `json:"additionalData"`
}

type BigBangResponse struct {
	Particles         []ParticleDTO        `json:"particles"`
	UniverseConstants UniverseConstantsDTO `json:"universeConstants"`
	Metadata          MetadataDTO          `json:"metadata"`
}

type QuantumSeedResponse struct {
	Seed        int64  `json:"seed"`
	GeneratedAt string `json:"generatedAt"`
	Type        string `json:"type"`
}

type QuantumHealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version"`
	Service       string `json:"service"`
	Uptime        string `json:"uptime"`
	SimulatorType string `json:"simulatorType"`
}

type PurgeCacheResponse struct {
	Removed  int    `json:"removed"`
	PurgedBy string `json:"purgedBy,omitempty"`
}

func toParticleDTO(p quantum.Particle) ParticleDTO {
	return ParticleDTO{
		ID:           p.ID,
		Type:         p.Type,
		Energy:       p.Energy,
		Mass:         p.Mass,
		Charge:       p.Charge,
		Position:     p.Position,
		Velocity:     p.Velocity,
		Color:        p.Color.Hex(),
		Size:         p.Mass * 1000,
		CreationTime: p.CreatedAt.UnixNano(),
	}
}

func toUniverseConstantsDTO(c quantum.UniverseConstants) UniverseConstantsDTO {
	return UniverseConstantsDTO{
		SpeedOfLight:          c.SpeedOfLight,
		PlanckConstant:        c.PlanckConstant,
		GravitationalConstant: c.GravitationalConstant,
		FineStructureConstant: c.FineStructureConstant,
		ElectronMass:          c.ElectronMass,
		ProtonMass:            c.ProtonMass,
		ElementaryCharge:      c.ElementaryCharge,
		BoltzmannConstant:     c.BoltzmannConstant,
		AvogadroNumber:        c.AvogadroNumber,
		VacuumPermeability:    c.VacuumPermeability,
	}
}

func toBigBangResponse(result *simulation.Result) BigBangResponse {
	particles := make([]ParticleDTO, len(result.Particles))
	for i, p := range result.Particles {
		particles[i] = toParticleDTO(p)
	}

	md := result.Metadata
	return BigBangResponse{
		Particles:         particles,
		UniverseConstants: toUniverseConstantsDTO(result.UniverseConstants),
		Metadata: MetadataDTO{
			SimulationTime:           md.SimulationTime.Format(time.RFC3339Nano),
			ExecutionDuration:        md.ExecutionDuration.Nanoseconds(),
			ExecutionDurationMs:      float64(md.ExecutionDuration) / float64(time.Millisecond),
			TotalParticleCount:       md.TotalParticleCount,
			TotalEnergy:              md.TotalEnergy,
			QuantumSeed:              md.QuantumSeed,
			SimulationID:             md.SimulationID,
			ParticleTypeDistribution: md.ParticleTypeDistribution,
			AdditionalData:           md.AdditionalData,
		},
	}
}
