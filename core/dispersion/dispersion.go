// Package dispersion implements the dispersion parameters used to describe noise distributions on the torus.
//
// All values are expressed in torus units, that is, for a noise e over Z_q the dispersion of e/q.
// The modular accessors convert them back to Z_q units for a power-of-two modulus q = 2^bits.
package dispersion

import (
	"math"
)

// DispersionParameter is a common interface for the dispersion parameters.
type DispersionParameter interface {
	// GetStandardDev returns the standard deviation on the torus.
	GetStandardDev() float64
	// GetVariance returns the variance on the torus.
	GetVariance() float64
	// GetLogStandardDev returns the base 2 logarithm of the standard deviation on the torus.
	GetLogStandardDev() float64
	// GetModularStandardDev returns the standard deviation in Z_q units for q = 2^bits.
	GetModularStandardDev(bits int) float64
	// GetModularVariance returns the variance in Z_q units for q = 2^bits.
	GetModularVariance(bits int) float64
	// GetModularLogStandardDev returns the base 2 logarithm of the modular standard deviation.
	GetModularLogStandardDev(bits int) float64
}

// Variance is a dispersion parameter expressed as a variance on the torus.
type Variance float64

// StandardDev is a dispersion parameter expressed as a standard deviation on the torus.
type StandardDev float64

// LogStandardDev is a dispersion parameter expressed as the base 2 logarithm of a standard deviation on the torus.
type LogStandardDev float64

// VarianceFromModular returns the torus variance corresponding to a variance v in Z_q units, with q = 2^bits.
func VarianceFromModular(v float64, bits int) Variance {
	return Variance(v * math.Exp2(-2*float64(bits)))
}

func (v Variance) GetStandardDev() float64 {
	return math.Sqrt(float64(v))
}

func (v Variance) GetVariance() float64 {
	return float64(v)
}

func (v Variance) GetLogStandardDev() float64 {
	return math.Log2(v.GetStandardDev())
}

func (v Variance) GetModularStandardDev(bits int) float64 {
	return v.GetStandardDev() * math.Exp2(float64(bits))
}

func (v Variance) GetModularVariance(bits int) float64 {
	return float64(v) * math.Exp2(2*float64(bits))
}

func (v Variance) GetModularLogStandardDev(bits int) float64 {
	return v.GetLogStandardDev() + float64(bits)
}

func (s StandardDev) GetStandardDev() float64 {
	return float64(s)
}

func (s StandardDev) GetVariance() float64 {
	return float64(s) * float64(s)
}

func (s StandardDev) GetLogStandardDev() float64 {
	return math.Log2(float64(s))
}

func (s StandardDev) GetModularStandardDev(bits int) float64 {
	return float64(s) * math.Exp2(float64(bits))
}

func (s StandardDev) GetModularVariance(bits int) float64 {
	m := s.GetModularStandardDev(bits)
	return m * m
}

func (s StandardDev) GetModularLogStandardDev(bits int) float64 {
	return s.GetLogStandardDev() + float64(bits)
}

func (l LogStandardDev) GetStandardDev() float64 {
	return math.Exp2(float64(l))
}

func (l LogStandardDev) GetVariance() float64 {
	return math.Exp2(2 * float64(l))
}

func (l LogStandardDev) GetLogStandardDev() float64 {
	return float64(l)
}

func (l LogStandardDev) GetModularStandardDev(bits int) float64 {
	return math.Exp2(float64(l) + float64(bits))
}

func (l LogStandardDev) GetModularVariance(bits int) float64 {
	return math.Exp2(2 * (float64(l) + float64(bits)))
}

func (l LogStandardDev) GetModularLogStandardDev(bits int) float64 {
	return float64(l) + float64(bits)
}

// ToVariance converts any dispersion parameter to a Variance.
func ToVariance(d DispersionParameter) Variance {
	return Variance(d.GetVariance())
}
