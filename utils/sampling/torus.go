package sampling

import (
	"fmt"
	"math"

	"github.com/tuneinsight/fhecore/core/npe"
	"github.com/tuneinsight/fhecore/core/torus"
)

// TorusSampler samples elements of Z_q, q = 2^32 or 2^64: uniform masks, Gaussian noises
// given as torus standard deviations, and secret key coefficients.
type TorusSampler[T torus.Unsigned] struct {
	source *Source
}

// NewTorusSampler returns a new TorusSampler reading from prng.
func NewTorusSampler[T torus.Unsigned](prng PRNG) *TorusSampler[T] {
	return &TorusSampler[T]{source: NewSource(prng)}
}

// Source returns the underlying source of the sampler.
func (s *TorusSampler[T]) Source() *Source {
	return s.source
}

// Uniform returns a uniform element of Z_q.
func (s *TorusSampler[T]) Uniform() T {
	return T(s.source.Uint64())
}

// ReadUniform fills out with uniform elements of Z_q.
func (s *TorusSampler[T]) ReadUniform(out []T) {
	for i := range out {
		out[i] = T(s.source.Uint64())
	}
}

// Gaussian returns the closest element of Z_q to a centered Gaussian torus value of
// standard deviation std.
func (s *TorusSampler[T]) Gaussian(std float64) T {
	return torus.FromFloat[T](NewGaussianSampler(s.source, std).Read())
}

// ReadGaussianThenAdd adds to out centered Gaussian noises of torus standard deviation std.
func (s *TorusSampler[T]) ReadGaussianThenAdd(out []T, std float64) {
	g := NewGaussianSampler(s.source, std)
	for i := range out {
		out[i] += torus.FromFloat[T](g.Read())
	}
}

// ReadKey fills out with secret key coefficients of the given kind.
func (s *TorusSampler[T]) ReadKey(out []T, kind npe.KeyKind) {
	switch kind {
	case npe.Binary:
		for i := range out {
			out[i] = T(s.source.Uint64() & 1)
		}
	case npe.Ternary:
		for i := range out {
			out[i] = torus.FromSigned[T](int64(s.source.Intn(3)) - 1)
		}
	case npe.Gaussian:
		g := NewGaussianSampler(s.source, npe.GaussianKeyStandardDev)
		for i := range out {
			out[i] = torus.FromSigned[T](int64(math.Round(g.Read())))
		}
	default:
		panic(fmt.Errorf("cannot ReadKey: invalid key kind %s", kind))
	}
}
