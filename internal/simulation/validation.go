package simulation

import (
	"math"

	"bigbang-server/internal/shared/errors"
)

// Validate rejects requests the generators must never see.
func Validate(req Request, maxParticleCount int) error {
	if req.ParticleCount <= 0 {
		return errors.Validationf("particleCount must be positive, got %d", req.ParticleCount)
	}
	if req.ParticleCount > maxParticleCount {
		return errors.Validationf("particleCount must not exceed %d, got %d", maxParticleCount, req.ParticleCount)
	}
	if !isPositiveFinite(req.TimeScale) {
		return errors.Validationf("timeScale must be positive, got %g", req.TimeScale)
	}
	if !isPositiveFinite(req.EnergyScale) {
		return errors.Validationf("energyScale must be positive, got %g", req.EnergyScale)
	}
	if req.Temperature < 0 || math.IsNaN(req.Temperature) || math.IsInf(req.Temperature, 0) {
		return errors.Validationf("temperature must not be negative, got %g", req.Temperature)
	}
	return nil
}

func isPositiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
