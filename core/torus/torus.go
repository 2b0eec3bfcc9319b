// Package torus implements the raw arithmetic over Z_q, q = 2^32 or 2^64, used to represent
// elements of the discretized torus, as well as the negacyclic polynomial arithmetic of
// Z_q[X]/(X^N+1) and the signed gadget decomposition.
package torus

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Unsigned is the constraint satisfied by the raw integer types holding torus elements.
type Unsigned interface {
	constraints.Unsigned
	uint32 | uint64
}

// Bits returns the bit-size of the raw type T, that is log2(q).
func Bits[T Unsigned]() int {
	var x T
	x--
	if uint64(x) == math.MaxUint32 {
		return 32
	}
	return 64
}

// Signed returns the centered lift of x in [-q/2, q/2).
func Signed[T Unsigned](x T) int64 {
	if Bits[T]() == 32 {
		return int64(int32(uint32(x)))
	}
	return int64(x)
}

// FromSigned returns v mod q.
func FromSigned[T Unsigned](v int64) T {
	return T(v)
}

// ToFloat returns the representative of x on the torus in [-1/2, 1/2).
func ToFloat[T Unsigned](x T) float64 {
	return float64(Signed(x)) * math.Exp2(-float64(Bits[T]()))
}

// FromFloat returns the closest element of Z_q to the torus value f, taken modulo 1.
func FromFloat[T Unsigned](f float64) T {
	f -= math.Round(f)
	r := math.Round(f * math.Exp2(float64(Bits[T]())))
	// f in [-1/2, 1/2] so only the upper end can overflow the signed range.
	if r >= math.Exp2(63) {
		r -= math.Exp2(64)
	}
	return T(int64(r))
}

// Distance returns the centered torus distance a - b in [-1/2, 1/2).
func Distance[T Unsigned](a, b T) float64 {
	return ToFloat(a - b)
}

// Distances returns the centered torus distances between the elements of a and b.
// It panics if the slices have different lengths.
func Distances[T Unsigned](a, b []T) (d []float64) {
	if len(a) != len(b) {
		panic("cannot Distances: len(a) != len(b)")
	}
	d = make([]float64, len(a))
	for i := range a {
		d[i] = Distance(a[i], b[i])
	}
	return
}

// Delta returns the integer scaling factor q/delta of a torus message space of size delta.
// It panics if delta is not a power of two in [2, q).
func Delta[T Unsigned](delta uint64) T {
	if delta == 0 || delta&(delta-1) != 0 {
		panic("cannot Delta: delta must be a power of two")
	}
	log := 63 - bits.LeadingZeros64(delta)
	if log == 0 || log >= Bits[T]() {
		panic("cannot Delta: delta must be in [2, q)")
	}
	return T(1) << (Bits[T]() - log)
}
