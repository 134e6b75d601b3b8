package quantum

import (
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

var (
	// ErrInvalidArgument is returned when a draw is requested with an impossible range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSourceClosed is returned by every draw made after Close.
	ErrSourceClosed = errors.New("random source closed")
	// ErrNonFinite is returned when a generated quantity overflows to Inf or NaN.
	ErrNonFinite = errors.New("non-finite value")
)

// RandomSource is the randomness contract the generators draw from.
// A quantum hardware backend can be substituted behind the same interface.
type RandomSource interface {
	NextUniformInt(maxExclusive int) (int, error)
	NextUniformDouble() (float64, error)
	NextUniformRange(min, max float64) (float64, error)
	NextGaussian(mean, stdDev float64) (float64, error)
	Close() error
}

const (
	doubleBits  = 53
	doubleScale = 1.0 / (1 << doubleBits)
)

// Source is a RandomSource backed by either the OS entropy pool or a
// ChaCha8 stream keyed from a seed. It is safe for concurrent use, but a
// single logical sequence should own its own Source.
type Source struct {
	mu     sync.Mutex
	rng    *rand.Rand
	closed bool
}

var _ RandomSource = (*Source)(nil)

// NewEntropySource returns a Source where every draw reads crypto/rand.
// Sequences are not reproducible.
func NewEntropySource() *Source {
	return &Source{rng: rand.New(entropy{})}
}

// NewSeededSource returns a Source whose sequence is fully determined by seed.
func NewSeededSource(seed int64) *Source {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	key := sha256.Sum256(buf[:])
	return &Source{rng: rand.New(rand.NewChaCha8(key))}
}

// entropy adapts crypto/rand to rand.Source.
type entropy struct{}

func (entropy) Uint64() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic("quantum: crypto/rand read failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// NextUniformInt returns an integer in [0, maxExclusive).
func (s *Source) NextUniformInt(maxExclusive int) (int, error) {
	if maxExclusive <= 0 {
		return 0, fmt.Errorf("%w: maxExclusive must be positive, got %d", ErrInvalidArgument, maxExclusive)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSourceClosed
	}
	return s.rng.IntN(maxExclusive), nil
}

// NextUniformDouble returns a real in [0, 1) scaled from a 53-bit integer draw.
func (s *Source) NextUniformDouble() (float64, error) {
	n, err := s.NextUniformInt(1 << doubleBits)
	if err != nil {
		return 0, err
	}
	return float64(n) * doubleScale, nil
}

func (s *Source) NextUniformRange(min, max float64) (float64, error) {
	if max < min {
		return 0, fmt.Errorf("%w: range max %g is below min %g", ErrInvalidArgument, max, min)
	}

	u, err := s.NextUniformDouble()
	if err != nil {
		return 0, err
	}
	return min + u*(max-min), nil
}

// NextGaussian draws from N(mean, stdDev²) with the Box-Muller transform.
// A zero stdDev returns mean exactly without consuming any draws.
func (s *Source) NextGaussian(mean, stdDev float64) (float64, error) {
	if stdDev < 0 || math.IsNaN(stdDev) {
		return 0, fmt.Errorf("%w: stdDev must be non-negative, got %g", ErrInvalidArgument, stdDev)
	}
	if stdDev == 0 {
		return mean, nil
	}

	var u1 float64
	for u1 == 0 {
		var err error
		if u1, err = s.NextUniformDouble(); err != nil {
			return 0, err
		}
	}

	u2, err := s.NextUniformDouble()
	if err != nil {
		return 0, err
	}

	standard := math.Sqrt(-2*math.Log(u1)) * math.Sin(2*math.Pi*u2)
	return mean + stdDev*standard, nil
}

// Close releases the underlying stream. Further draws fail with ErrSourceClosed.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.rng = nil
	return nil
}

// NewSeed draws a seed in [1, math.MaxInt32). Zero is reserved for "generate one".
func NewSeed(src RandomSource) (int64, error) {
	n, err := src.NextUniformInt(math.MaxInt32 - 1)
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}
