package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bigbang-server/internal/shared/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 10000, cfg.Simulation.MaxParticleCount)
	require.Equal(t, 300*time.Second, cfg.Simulation.Timeout)
	require.Equal(t, 30*time.Minute, cfg.Simulation.CacheTTL)
	require.True(t, cfg.Simulation.EnableCaching)
	require.True(t, cfg.Simulation.EnableLogging)
	require.Equal(t, config.RandomModeSeeded, cfg.Simulation.RandomMode)
	require.Equal(t, 1e-4, cfg.Simulation.ConstantJitter)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Frontend.URLs)
	require.False(t, cfg.Database.Enabled)
	require.False(t, cfg.Redis.Enabled)
	require.False(t, cfg.OperatorEndpointsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIMULATION_MAX_PARTICLE_COUNT", "500")
	t.Setenv("SIMULATION_RANDOM_MODE", "entropy")
	t.Setenv("SIMULATION_CONSTANT_JITTER", "0")
	t.Setenv("SIMULATION_ENABLE_CACHING", "false")
	t.Setenv("FRONTEND_URL", " https://viz.example.org , ")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 500, cfg.Simulation.MaxParticleCount)
	require.Equal(t, config.RandomModeEntropy, cfg.Simulation.RandomMode)
	require.Zero(t, cfg.Simulation.ConstantJitter)
	require.False(t, cfg.Simulation.EnableCaching)
	require.Equal(t, []string{"https://viz.example.org"}, cfg.Frontend.URLs)
	require.True(t, cfg.OperatorEndpointsEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"zero particle bound", "SIMULATION_MAX_PARTICLE_COUNT", "0"},
		{"zero timeout", "SIMULATION_TIMEOUT_SECONDS", "0"},
		{"zero cache ttl", "SIMULATION_CACHE_TTL_MINUTES", "0"},
		{"unknown random mode", "SIMULATION_RANDOM_MODE", "qubits"},
		{"negative jitter", "SIMULATION_CONSTANT_JITTER", "-0.1"},
		{"unparsable jitter", "SIMULATION_CONSTANT_JITTER", "lots"},
		{"nan jitter", "SIMULATION_CONSTANT_JITTER", "NaN"},
		{"infinite jitter", "SIMULATION_CONSTANT_JITTER", "+Inf"},
		{"short jwt secret", "JWT_SECRET", "too-short"},
		{"zero burst", "RATE_LIMIT_BURST_SIZE", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}
