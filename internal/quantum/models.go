package quantum

import (
	"fmt"
	"math"
	"time"
)

type ParticleType string

const (
	ParticleTypeQuark  ParticleType = "quark"
	ParticleTypeLepton ParticleType = "lepton"
	ParticleTypeBoson  ParticleType = "boson"
)

// particleTypes is indexed by the type draw, so its order is part of the output contract.
var particleTypes = [...]ParticleType{
	ParticleTypeQuark,
	ParticleTypeLepton,
	ParticleTypeBoson,
}

type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector3) finite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

type Particle struct {
	ID        string       `json:"id"`
	Type      ParticleType `json:"type"`
	Position  Vector3      `json:"position"`
	Velocity  Vector3      `json:"velocity"`
	Energy    float64      `json:"energy"`
	Mass      float64      `json:"mass"`
	Charge    float64      `json:"charge"`
	Color     Color        `json:"color"`
	CreatedAt time.Time    `json:"created_at"`
}

type UniverseConstants struct {
	SpeedOfLight          float64 `json:"speed_of_light"`
	PlanckConstant        float64 `json:"planck_constant"`
	GravitationalConstant float64 `json:"gravitational_constant"`
	FineStructureConstant float64 `json:"fine_structure_constant"`
	ElectronMass          float64 `json:"electron_mass"`
	ProtonMass            float64 `json:"proton_mass"`
	ElementaryCharge      float64 `json:"elementary_charge"`
	BoltzmannConstant     float64 `json:"boltzmann_constant"`
	AvogadroNumber        float64 `json:"avogadro_number"`
	VacuumPermeability    float64 `json:"vacuum_permeability"`
}
