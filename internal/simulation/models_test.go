package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bigbang-server/internal/quantum"
	"bigbang-server/internal/shared/errors"
	"bigbang-server/internal/simulation"
)

func TestFingerprint(t *testing.T) {
	req := simulation.Request{ParticleCount: 100, TimeScale: 1, EnergyScale: 2.5, Temperature: 1e6, RandomSeed: 42}

	require.Equal(t, "bigbang_100_1_2.5_1e+06_42", req.Fingerprint())
	require.Equal(t, req.Fingerprint(), req.Fingerprint())

	other := req
	other.RandomSeed = 43
	require.NotEqual(t, req.Fingerprint(), other.Fingerprint())

	other = req
	other.Temperature = 0
	require.NotEqual(t, req.Fingerprint(), other.Fingerprint())
}

func TestTotalEnergyAndDistribution(t *testing.T) {
	particles := []quantum.Particle{
		{Type: quantum.ParticleTypeQuark, Energy: 0.5},
		{Type: quantum.ParticleTypeQuark, Energy: 1.25},
		{Type: quantum.ParticleTypeBoson, Energy: 2},
	}

	require.Equal(t, 3.75, simulation.TotalEnergy(particles))
	require.Equal(t, map[quantum.ParticleType]int{
		quantum.ParticleTypeQuark:  2,
		quantum.ParticleTypeLepton: 0,
		quantum.ParticleTypeBoson:  1,
	}, simulation.TypeDistribution(particles))
	require.Zero(t, simulation.TotalEnergy(nil))
}

func TestValidate(t *testing.T) {
	valid := simulation.Request{ParticleCount: 100, TimeScale: 1, EnergyScale: 1, Temperature: 0}
	require.NoError(t, simulation.Validate(valid, 10000))

	cases := []struct {
		name   string
		mutate func(*simulation.Request)
		substr string
	}{
		{"zero count", func(r *simulation.Request) { r.ParticleCount = 0 }, "particleCount must be positive"},
		{"negative count", func(r *simulation.Request) { r.ParticleCount = -1 }, "particleCount must be positive"},
		{"above bound", func(r *simulation.Request) { r.ParticleCount = 10001 }, "must not exceed 10000"},
		{"zero time scale", func(r *simulation.Request) { r.TimeScale = 0 }, "timeScale"},
		{"negative energy scale", func(r *simulation.Request) { r.EnergyScale = -2 }, "energyScale"},
		{"negative temperature", func(r *simulation.Request) { r.Temperature = -1 }, "temperature"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := simulation.Validate(req, 10000)
			require.Error(t, err)
			require.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
			require.Contains(t, err.Error(), tc.substr)
		})
	}
}
