// Package sampling implements the deterministic sampling of bytes, integers and Gaussian
// reals used to generate prototypes.
package sampling

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
	"gonum.org/v1/gonum/stat/distuv"
)

// KeySize is the size in bytes of the keys returned by DeriveKey.
const KeySize = 32

// DeriveKey derives a PRNG key from a seed and a list of labels, so that every
// (seed, labels) tuple is given an independent stream.
func DeriveKey(seed []byte, labels ...string) []byte {
	hasher := blake3.New()
	hasher.Write(seed)
	var length [8]byte
	for _, label := range labels {
		binary.BigEndian.PutUint64(length[:], uint64(len(label)))
		hasher.Write(length[:])
		hasher.Write([]byte(label))
	}
	return hasher.Sum(nil)[:KeySize]
}

// Source adapts a PRNG to the Source interface of golang.org/x/exp/rand, which is
// the source of randomness of the gonum distributions.
type Source struct {
	prng PRNG
	buf  [8]byte
}

// NewSource returns a new Source reading from prng.
func NewSource(prng PRNG) *Source {
	return &Source{prng: prng}
}

// Uint64 returns the next 8 bytes of the underlying PRNG as an uint64.
func (s *Source) Uint64() uint64 {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Seed is a no-op: the stream of a Source is fully determined by its PRNG.
func (s *Source) Seed(seed uint64) {}

// Float64 returns a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Intn returns a uniform integer in [0, n).
func (s *Source) Intn(n uint64) uint64 {
	// rejection sampling to avoid the modulo bias
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		if x := s.Uint64(); x < limit {
			return x % n
		}
	}
}

// GaussianSampler samples reals from a centered normal distribution.
type GaussianSampler struct {
	normal distuv.Normal
}

// NewGaussianSampler returns a GaussianSampler of standard deviation std reading from source.
func NewGaussianSampler(source *Source, std float64) *GaussianSampler {
	return &GaussianSampler{normal: distuv.Normal{Mu: 0, Sigma: std, Src: source}}
}

// Read returns a new sample.
func (g *GaussianSampler) Read() float64 {
	if g.normal.Sigma == 0 {
		return 0
	}
	return g.normal.Rand()
}
