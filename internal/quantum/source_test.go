package quantum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bigbang-server/internal/quantum"
)

type SourceSuite struct {
	suite.Suite
	sources map[string]quantum.RandomSource
}

func (s *SourceSuite) SetupTest() {
	s.sources = map[string]quantum.RandomSource{
		"entropy": quantum.NewEntropySource(),
		"seeded":  quantum.NewSeededSource(42),
	}
}

func (s *SourceSuite) TearDownTest() {
	for _, src := range s.sources {
		_ = src.Close()
	}
}

func (s *SourceSuite) TestUniformIntStaysInRange() {
	for name, src := range s.sources {
		for _, max := range []int{1, 2, 3, 180, 360, 1 << 20} {
			for i := 0; i < 500; i++ {
				n, err := src.NextUniformInt(max)
				require.NoError(s.T(), err, name)
				require.GreaterOrEqual(s.T(), n, 0, "%s: draw below zero", name)
				require.Less(s.T(), n, max, "%s: draw not below %d", name, max)
			}
		}
	}
}

func (s *SourceSuite) TestUniformIntRejectsNonPositiveMax() {
	for name, src := range s.sources {
		for _, max := range []int{0, -1, math.MinInt32} {
			_, err := src.NextUniformInt(max)
			require.ErrorIs(s.T(), err, quantum.ErrInvalidArgument, "%s max=%d", name, max)
		}
	}
}

func (s *SourceSuite) TestUniformDoubleInUnitInterval() {
	for name, src := range s.sources {
		for i := 0; i < 1000; i++ {
			u, err := src.NextUniformDouble()
			require.NoError(s.T(), err, name)
			require.GreaterOrEqual(s.T(), u, 0.0)
			require.Less(s.T(), u, 1.0)
		}
	}
}

func (s *SourceSuite) TestUniformRange() {
	for name, src := range s.sources {
		for i := 0; i < 500; i++ {
			v, err := src.NextUniformRange(-2.5, 7.5)
			require.NoError(s.T(), err, name)
			require.GreaterOrEqual(s.T(), v, -2.5)
			require.Less(s.T(), v, 7.5)
		}

		v, err := src.NextUniformRange(3, 3)
		require.NoError(s.T(), err, name)
		require.Equal(s.T(), 3.0, v, "degenerate range collapses to min")

		_, err = src.NextUniformRange(5, 1)
		require.ErrorIs(s.T(), err, quantum.ErrInvalidArgument, name)
	}
}

func (s *SourceSuite) TestGaussianZeroStdDevReturnsMean() {
	for name, src := range s.sources {
		for _, mean := range []float64{0, 1, -3.75, 299792458.0, 1e-300} {
			v, err := src.NextGaussian(mean, 0)
			require.NoError(s.T(), err, name)
			require.Equal(s.T(), mean, v, "%s: stdDev 0 must return mean exactly", name)
		}
	}
}

func (s *SourceSuite) TestGaussianRejectsNegativeStdDev() {
	for name, src := range s.sources {
		_, err := src.NextGaussian(0, -0.1)
		require.ErrorIs(s.T(), err, quantum.ErrInvalidArgument, name)

		_, err = src.NextGaussian(0, math.NaN())
		require.ErrorIs(s.T(), err, quantum.ErrInvalidArgument, name)
	}
}

func (s *SourceSuite) TestClosedSourceFails() {
	for name, src := range s.sources {
		require.NoError(s.T(), src.Close())

		_, err := src.NextUniformInt(10)
		require.ErrorIs(s.T(), err, quantum.ErrSourceClosed, name)
		_, err = src.NextGaussian(1, 1)
		require.ErrorIs(s.T(), err, quantum.ErrSourceClosed, name)
	}
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceSuite))
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := quantum.NewSeededSource(1234)
	b := quantum.NewSeededSource(1234)
	c := quantum.NewSeededSource(1235)
	defer a.Close()
	defer b.Close()
	defer c.Close()

	var diverged bool
	for i := 0; i < 200; i++ {
		va, err := a.NextGaussian(0, 1)
		require.NoError(t, err)
		vb, err := b.NextGaussian(0, 1)
		require.NoError(t, err)
		vc, err := c.NextGaussian(0, 1)
		require.NoError(t, err)

		require.Equal(t, va, vb, "same seed must give the same stream (draw %d)", i)
		if va != vc {
			diverged = true
		}
	}
	require.True(t, diverged, "different seeds should give different streams")
}

func TestGaussianMoments(t *testing.T) {
	src := quantum.NewSeededSource(7)
	defer src.Close()

	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v, err := src.NextGaussian(2.0, 0.5)
		require.NoError(t, err)
		sum += v
		sumSq += v * v
	}

	mean := sum / n
	variance := sumSq/n - mean*mean
	require.InDelta(t, 2.0, mean, 0.02)
	require.InDelta(t, 0.5, math.Sqrt(variance), 0.02)
}

func TestNewSeed(t *testing.T) {
	src := quantum.NewEntropySource()
	defer src.Close()

	for i := 0; i < 100; i++ {
		seed, err := quantum.NewSeed(src)
		require.NoError(t, err)
		require.GreaterOrEqual(t, seed, int64(1), "zero is reserved for generate-one")
		require.Less(t, seed, int64(math.MaxInt32))
	}

	_ = src.Close()
	_, err := quantum.NewSeed(src)
	require.ErrorIs(t, err, quantum.ErrSourceClosed)
}
