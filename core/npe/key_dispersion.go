// Package npe implements the noise propagation estimator: pure functions predicting the
// variance of the noise of the output of an operation from the variances of its inputs
// and from the operation parameters.
//
// All variances are torus variances, that is the variance of e/q for a noise e over Z_q.
package npe

import (
	"fmt"
)

// KeyKind identifies the distribution of the coefficients of a secret key, and selects the
// moments used by the noise formulas.
type KeyKind int

const (
	// Binary keys have coefficients uniform in {0, 1}.
	Binary = KeyKind(iota + 1)
	// Ternary keys have coefficients uniform in {-1, 0, 1}.
	Ternary
	// Gaussian keys have coefficients sampled from a rounded centered normal
	// distribution of standard deviation GaussianKeyStandardDev.
	Gaussian
)

// GaussianKeyStandardDev is the standard deviation of the coefficients of Gaussian secret keys.
const GaussianKeyStandardDev = 3.2

func (k KeyKind) String() string {
	switch k {
	case Binary:
		return "Binary"
	case Ternary:
		return "Ternary"
	case Gaussian:
		return "Gaussian"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// VarianceKeyCoefficient returns the variance of a key coefficient.
func (k KeyKind) VarianceKeyCoefficient() float64 {
	switch k {
	case Binary:
		return 1.0 / 4.0
	case Ternary:
		return 2.0 / 3.0
	case Gaussian:
		return GaussianKeyStandardDev * GaussianKeyStandardDev
	default:
		panic(fmt.Errorf("cannot VarianceKeyCoefficient: invalid key kind %s", k))
	}
}

// ExpectationKeyCoefficient returns the expectation of a key coefficient.
func (k KeyKind) ExpectationKeyCoefficient() float64 {
	switch k {
	case Binary:
		return 1.0 / 2.0
	case Ternary, Gaussian:
		return 0
	default:
		panic(fmt.Errorf("cannot ExpectationKeyCoefficient: invalid key kind %s", k))
	}
}

// SquaredExpectationKeyCoefficient returns E[s^2] for s a key coefficient.
func (k KeyKind) SquaredExpectationKeyCoefficient() float64 {
	e := k.ExpectationKeyCoefficient()
	return k.VarianceKeyCoefficient() + e*e
}

// SquaredKeyProductMoment returns the second moment, averaged over the coefficient index,
// of a coefficient of the negacyclic product of two key polynomials of size n.
func (k KeyKind) SquaredKeyProductMoment(n int) float64 {
	nf := float64(n)
	s2 := k.SquaredExpectationKeyCoefficient()
	e := k.ExpectationKeyCoefficient()
	e4 := e * e * e * e
	// the signed sum of the n expectations averages to n^2/3 once squared
	return nf*(s2*s2-e4) + e4*nf*nf/3
}
