package quantum

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	degree = math.Pi / 180

	// A N(1, 0.3) draw is non-positive with probability ~4e-4, so this bound is
	// only reached by a broken source.
	maxEnergyDraws = 64
)

type GenerateParams struct {
	Count       int
	TimeScale   float64
	EnergyScale float64
}

type ParticleGenerator struct {
	now   func() time.Time
	newID func() string
}

func NewParticleGenerator() *ParticleGenerator {
	return &ParticleGenerator{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Generate draws params.Count particles in order from src. On any failure no
// particles are returned.
func (g *ParticleGenerator) Generate(src RandomSource, params GenerateParams) ([]Particle, error) {
	if params.Count <= 0 {
		return nil, fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidArgument, params.Count)
	}
	if params.TimeScale <= 0 || params.EnergyScale <= 0 {
		return nil, fmt.Errorf("%w: scales must be positive (time %g, energy %g)", ErrInvalidArgument, params.TimeScale, params.EnergyScale)
	}

	particles := make([]Particle, 0, params.Count)
	for i := 0; i < params.Count; i++ {
		p, err := g.generateOne(src, params)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		particles = append(particles, p)
	}
	return particles, nil
}

func (g *ParticleGenerator) generateOne(src RandomSource, params GenerateParams) (Particle, error) {
	typeIndex, err := src.NextUniformInt(len(particleTypes))
	if err != nil {
		return Particle{}, fmt.Errorf("type: %w", err)
	}
	particleType := particleTypes[typeIndex]

	// Radius is signed and folds into the projection.
	radius, err := src.NextGaussian(0, 0.1*params.TimeScale)
	if err != nil {
		return Particle{}, fmt.Errorf("radius: %w", err)
	}
	thetaDeg, err := src.NextUniformInt(360)
	if err != nil {
		return Particle{}, fmt.Errorf("theta: %w", err)
	}
	phiDeg, err := src.NextUniformInt(180)
	if err != nil {
		return Particle{}, fmt.Errorf("phi: %w", err)
	}
	direction := sphericalUnit(float64(thetaDeg)*degree, float64(phiDeg)*degree)

	speedFactor, err := src.NextGaussian(0.3, 0.1)
	if err != nil {
		return Particle{}, fmt.Errorf("speed: %w", err)
	}
	speed := speedFactor * params.TimeScale

	energy, err := drawEnergy(src, params.EnergyScale)
	if err != nil {
		return Particle{}, err
	}

	charge, err := drawCharge(src, particleType)
	if err != nil {
		return Particle{}, err
	}

	position := scale(direction, radius)
	velocity := scale(direction, speed)
	if !position.finite() {
		return Particle{}, fmt.Errorf("position: %w", ErrNonFinite)
	}
	if !velocity.finite() {
		return Particle{}, fmt.Errorf("velocity: %w", ErrNonFinite)
	}

	return Particle{
		ID:        g.newID(),
		Type:      particleType,
		Position:  position,
		Velocity:  velocity,
		Energy:    energy,
		Mass:      energy / (SpeedOfLight * SpeedOfLight),
		Charge:    charge,
		Color:     energyColor(energy, params.EnergyScale),
		CreatedAt: g.now().UTC(),
	}, nil
}

// drawEnergy resamples until the N(1, 0.3)·E draw is strictly positive.
func drawEnergy(src RandomSource, energyScale float64) (float64, error) {
	for attempt := 0; attempt < maxEnergyDraws; attempt++ {
		factor, err := src.NextGaussian(1.0, 0.3)
		if err != nil {
			return 0, fmt.Errorf("energy: %w", err)
		}
		energy := factor * energyScale
		if !isFinite(energy) {
			return 0, fmt.Errorf("energy: %w", ErrNonFinite)
		}
		if energy > 0 {
			return energy, nil
		}
	}
	return 0, fmt.Errorf("energy: no positive draw after %d attempts", maxEnergyDraws)
}

// drawCharge returns -e for leptons and one of {-e/3, 0, +e/3} otherwise.
func drawCharge(src RandomSource, particleType ParticleType) (float64, error) {
	if particleType == ParticleTypeLepton {
		return -ElementaryCharge, nil
	}

	n, err := src.NextUniformInt(3)
	if err != nil {
		return 0, fmt.Errorf("charge: %w", err)
	}
	return float64(n-1) * ElementaryCharge / 3, nil
}

// energyColor fades from cyan-ish at low energy to red at the reference energy.
func energyColor(energy, energyScale float64) Color {
	intensity := math.Max(0, math.Min(1, energy/energyScale))
	return Color{
		R: uint8(math.Round(255 * intensity)),
		G: uint8(math.Round(128 + 127*(1-intensity))),
		B: uint8(math.Round(255 * (1 - intensity))),
		A: 255,
	}
}

func sphericalUnit(theta, phi float64) Vector3 {
	return Vector3{
		X: math.Sin(phi) * math.Cos(theta),
		Y: math.Sin(phi) * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

func scale(v Vector3, s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}
