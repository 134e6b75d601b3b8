package quantum

import (
	"fmt"
	"math"
)

// Reference values, unperturbed.
const (
	SpeedOfLight          = 299792458.0
	PlanckConstant        = 6.62607015e-34
	GravitationalConstant = 6.67430e-11
	FineStructureConstant = 7.2973525693e-3
	BoltzmannConstant     = 1.380649e-23
	AvogadroNumber        = 6.02214076e23
	ElectronMass          = 9.1093837015e-31
	ProtonMass            = 1.67262192369e-27
	ElementaryCharge      = 1.602176634e-19
	VacuumPermeability    = 4 * math.Pi * 1e-7
)

// DefaultConstantJitter is the standard deviation of the multiplicative noise
// applied to the speed of light and the Planck constant.
const DefaultConstantJitter = 1e-4

type ConstantsGenerator struct {
	jitter float64
}

func NewConstantsGenerator(jitter float64) *ConstantsGenerator {
	return &ConstantsGenerator{jitter: jitter}
}

// Generate returns the constants table with independent N(1, jitter²) factors
// applied to c and h. Every other field is the reference literal.
func (g *ConstantsGenerator) Generate(src RandomSource) (UniverseConstants, error) {
	lightFactor, err := src.NextGaussian(1.0, g.jitter)
	if err != nil {
		return UniverseConstants{}, fmt.Errorf("speed of light variation: %w", err)
	}

	planckFactor, err := src.NextGaussian(1.0, g.jitter)
	if err != nil {
		return UniverseConstants{}, fmt.Errorf("planck constant variation: %w", err)
	}

	return UniverseConstants{
		SpeedOfLight:          SpeedOfLight * lightFactor,
		PlanckConstant:        PlanckConstant * planckFactor,
		GravitationalConstant: GravitationalConstant,
		FineStructureConstant: FineStructureConstant,
		ElectronMass:          ElectronMass,
		ProtonMass:            ProtonMass,
		ElementaryCharge:      ElementaryCharge,
		BoltzmannConstant:     BoltzmannConstant,
		AvogadroNumber:        AvogadroNumber,
		VacuumPermeability:    VacuumPermeability,
	}, nil
}
