package npe

import (
	"math"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// EstimateEncryptionNoise returns the variance of the noise of a fresh encryption with noise d.
func EstimateEncryptionNoise(d dispersion.DispersionParameter) dispersion.Variance {
	return dispersion.Variance(d.GetVariance())
}

// EstimateNegationNoise returns the variance of the noise of the negation of a ciphertext of noise d.
func EstimateNegationNoise(d dispersion.DispersionParameter) dispersion.Variance {
	return dispersion.Variance(d.GetVariance())
}

// EstimateAdditionNoise returns the variance of the noise of the sum of two ciphertexts of
// independent noises d1 and d2.
func EstimateAdditionNoise(d1, d2 dispersion.DispersionParameter) dispersion.Variance {
	return dispersion.Variance(d1.GetVariance() + d2.GetVariance())
}

// EstimateCleartextMultiplicationNoise returns the variance of the noise of the product of a
// ciphertext of noise d with the cleartext c, taken as its centered lift.
func EstimateCleartextMultiplicationNoise[T torus.Unsigned](d dispersion.DispersionParameter, c T) dispersion.Variance {
	cf := float64(torus.Signed(c))
	return dispersion.Variance(cf * cf * d.GetVariance())
}

// EstimateKeyswitchNoise returns the variance of the noise of an LWE keyswitch of a ciphertext of
// noise dIn and dimension dimIn, encrypted under a key of kind kind, with a keyswitch key of noise
// dKsk and decomposition parameters baseLog and levels.
//
// The variance is the sum of the input noise, of the keyswitch key noises weighted by the
// squared signed digits, whose second moment is (B^2+2)/12, and of the decomposition rounding
// error weighted by the input key.
func EstimateKeyswitchNoise[T torus.Unsigned](
	dimIn parameters.LweDimension,
	kind KeyKind,
	dIn, dKsk dispersion.DispersionParameter,
	baseLog parameters.DecompositionBaseLog,
	levels parameters.DecompositionLevelCount) dispersion.Variance {

	n := float64(dimIn)
	l := float64(levels)
	b := math.Exp2(float64(baseLog))
	bits := float64(torus.Bits[T]())

	res1 := dIn.GetVariance()

	res2 := n * l * (b*b + 2) / 12 * dKsk.GetVariance()

	rounding := (math.Exp2(-2*float64(baseLog)*l) - math.Exp2(-2*bits)) / 12
	res3 := n * kind.SquaredExpectationKeyCoefficient() * rounding

	return dispersion.Variance(res1 + res2 + res3)
}

// EstimateTensorProductNoise returns the variance of the noise of the tensor product of two GLWE
// ciphertexts of dimension k and polynomial size n, encrypted under a key of kind kind, of noises
// d1 and d2, encoding messages bounded by bound1 and bound2 in message spaces of size delta1 and
// delta2, rescaled by scale/Delta with Delta = q/max(delta1, delta2).
//
// The variance gathers the message-noise and noise-noise products, the products of the
// noises with the integer polynomials K1 and K2 absorbed by the modular reduction of the
// inputs, whose second moment is (1 + k*n*E[s^2])/12 + (bound/delta)^2, and the rounding of
// the k(k+3)/2 output masks and of the output body.
func EstimateTensorProductNoise[T torus.Unsigned](
	n parameters.PolynomialSize,
	k parameters.GlweDimension,
	kind KeyKind,
	d1, d2 dispersion.DispersionParameter,
	delta1, delta2 uint64,
	bound1, bound2 uint64,
	scale float64) dispersion.Variance {
	norm := float64(k) * float64(n) * kind.SquaredExpectationKeyCoefficient()
	return EstimateTensorProductNoiseForKey[T](n, k, kind, norm, d1, d2, delta1, delta2, bound1, bound2, scale)
}

// EstimateTensorProductNoiseForKey is EstimateTensorProductNoise for a given key, whose squared
// norm, the sum of the squares of its k*n coefficients, replaces its expectation k*n*E[s^2].
func EstimateTensorProductNoiseForKey[T torus.Unsigned](
	n parameters.PolynomialSize,
	k parameters.GlweDimension,
	kind KeyKind,
	keySquaredNorm float64,
	d1, d2 dispersion.DispersionParameter,
	delta1, delta2 uint64,
	bound1, bound2 uint64,
	scale float64) dispersion.Variance {

	nf := float64(n)
	kf := float64(k)
	v1 := d1.GetVariance()
	v2 := d2.GetVariance()
	dl1 := float64(delta1)
	dl2 := float64(delta2)
	b1 := float64(bound1)
	b2 := float64(bound2)
	delta := math.Max(dl1, dl2)

	// message-noise and noise-noise products
	res1 := nf*(delta/dl1)*(delta/dl1)*b1*b1*v2 +
		nf*(delta/dl2)*(delta/dl2)*b2*b2*v1 +
		nf*delta*delta*v1*v2

	k1 := (1+keySquaredNorm)/12 + (b1/dl1)*(b1/dl1)
	k2 := (1+keySquaredNorm)/12 + (b2/dl2)*(b2/dl2)

	res2 := nf * delta * delta * (k1*v2 + k2*v1)

	// rounding of the output, weighted by the tensored key
	s2 := kind.SquaredExpectationKeyCoefficient()
	keyMoment := kf*s2 + (kf+kf*(kf-1)/2)*kind.SquaredKeyProductMoment(int(n))
	res3 := (1 + nf*keyMoment) / 12 * math.Exp2(-2*float64(torus.Bits[T]()))

	return dispersion.Variance(scale*scale*(res1+res2) + res3)
}
