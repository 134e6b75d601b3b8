package quantum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bigbang-server/internal/quantum"
)

func generate(t *testing.T, seed int64, params quantum.GenerateParams) []quantum.Particle {
	t.Helper()

	src := quantum.NewSeededSource(seed)
	defer src.Close()

	particles, err := quantum.NewParticleGenerator().Generate(src, params)
	require.NoError(t, err)
	return particles
}

func TestParticleInvariants(t *testing.T) {
	cases := []struct {
		name   string
		params quantum.GenerateParams
	}{
		{"unit scales", quantum.GenerateParams{Count: 500, TimeScale: 1, EnergyScale: 1}},
		{"large scales", quantum.GenerateParams{Count: 300, TimeScale: 100, EnergyScale: 100}},
		{"small scales", quantum.GenerateParams{Count: 300, TimeScale: 0.1, EnergyScale: 0.1}},
	}

	third := quantum.ElementaryCharge / 3
	allowedCharges := []float64{-third, 0, third}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			particles := generate(t, 42, tc.params)
			require.Len(t, particles, tc.params.Count)

			for i, p := range particles {
				require.Greater(t, p.Energy, 0.0, "particle %d energy", i)
				require.InEpsilon(t, p.Energy/(299792458.0*299792458.0), p.Mass, 1e-12, "particle %d mass", i)
				require.Equal(t, uint8(255), p.Color.A)
				require.NotEmpty(t, p.ID)
				require.False(t, p.CreatedAt.IsZero())

				switch p.Type {
				case quantum.ParticleTypeLepton:
					require.Equal(t, -1.602176634e-19, p.Charge, "particle %d lepton charge", i)
				case quantum.ParticleTypeQuark, quantum.ParticleTypeBoson:
					require.Contains(t, allowedCharges, p.Charge, "particle %d charge", i)
				default:
					t.Fatalf("particle %d has unknown type %q", i, p.Type)
				}
			}
		})
	}
}

func TestParticleVelocityIsRadial(t *testing.T) {
	particles := generate(t, 5, quantum.GenerateParams{Count: 200, TimeScale: 2, EnergyScale: 1})

	for i, p := range particles {
		pos, vel := p.Position, p.Velocity
		cross := quantum.Vector3{
			X: pos.Y*vel.Z - pos.Z*vel.Y,
			Y: pos.Z*vel.X - pos.X*vel.Z,
			Z: pos.X*vel.Y - pos.Y*vel.X,
		}
		scale := math.Hypot(math.Hypot(pos.X, pos.Y), pos.Z) * math.Hypot(math.Hypot(vel.X, vel.Y), vel.Z)
		magnitude := math.Hypot(math.Hypot(cross.X, cross.Y), cross.Z)
		require.LessOrEqual(t, magnitude, 1e-9*scale+1e-300, "particle %d velocity should share the position's direction line", i)
	}
}

func TestParticleTypesAllAppear(t *testing.T) {
	particles := generate(t, 11, quantum.GenerateParams{Count: 300, TimeScale: 1, EnergyScale: 1})

	seen := map[quantum.ParticleType]int{}
	for _, p := range particles {
		seen[p.Type]++
	}
	require.Len(t, seen, 3, "300 draws should produce every type")
}

func TestParticlesReproducibleFromSeed(t *testing.T) {
	params := quantum.GenerateParams{Count: 50, TimeScale: 1.5, EnergyScale: 3}
	first := generate(t, 2024, params)
	second := generate(t, 2024, params)

	require.Len(t, second, len(first))
	for i := range first {
		a, b := first[i], second[i]
		require.Equal(t, a.Type, b.Type)
		require.Equal(t, a.Position, b.Position)
		require.Equal(t, a.Velocity, b.Velocity)
		require.Equal(t, a.Energy, b.Energy)
		require.Equal(t, a.Mass, b.Mass)
		require.Equal(t, a.Charge, b.Charge)
		require.Equal(t, a.Color, b.Color)
		require.NotEqual(t, a.ID, b.ID, "ids are unique per generation")
	}
}

func TestParticleGeneratorRejectsBadParams(t *testing.T) {
	src := quantum.NewSeededSource(1)
	defer src.Close()
	gen := quantum.NewParticleGenerator()

	for _, params := range []quantum.GenerateParams{
		{Count: 0, TimeScale: 1, EnergyScale: 1},
		{Count: -5, TimeScale: 1, EnergyScale: 1},
		{Count: 1, TimeScale: 0, EnergyScale: 1},
		{Count: 1, TimeScale: 1, EnergyScale: -1},
	} {
		particles, err := gen.Generate(src, params)
		require.ErrorIs(t, err, quantum.ErrInvalidArgument, "%+v", params)
		require.Nil(t, particles)
	}
}

func TestParticleGeneratorReturnsNothingOnFailure(t *testing.T) {
	src := quantum.NewSeededSource(1)
	require.NoError(t, src.Close())

	particles, err := quantum.NewParticleGenerator().Generate(src, quantum.GenerateParams{Count: 10, TimeScale: 1, EnergyScale: 1})
	require.ErrorIs(t, err, quantum.ErrSourceClosed)
	require.Nil(t, particles, "partial results must not leak")
}
