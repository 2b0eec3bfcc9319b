package torus

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FourierLimbBits is the size of the balanced signed limbs into which lifted coefficients are
// split before being transformed.
const FourierLimbBits = 16

// MaxFourierPolynomialSize is the largest polynomial size for which products computed with a
// Fourier are exact.
const MaxFourierPolynomialSize = 1 << 11

// FourierPolynomial is the transform of a lifted polynomial: one negacyclic transform per limb,
// least significant limb first.
type FourierPolynomial [][]complex128

// FourierAccumulator holds sums of products of transforms, grouped by the sum of the indexes of
// the limbs of the factors.
type FourierAccumulator [][]complex128

// Fourier computes exact negacyclic products of lifted polynomials modulo 2^128 with a complex
// FFT of the size of the polynomials.
//
// Polynomials are split into limbs of FourierLimbBits bits and twisted by the 2N-th root of unity
// exp(i*pi/N), so that a cyclic convolution of the twisted limbs gives their negacyclic product.
// The products of two limbs are below N*2^30 and are recovered exactly by rounding.
//
// A Fourier is not safe for concurrent use.
type Fourier struct {
	n     int
	limbs int
	fft   *fourier.CmplxFFT
	twist []complex128
	buf   []complex128
}

// NewFourier returns a Fourier for polynomials of size n with coefficients lifted from Z_q, q = 2^bits.
// It panics if n is larger than MaxFourierPolynomialSize.
func NewFourier(n, bits int) *Fourier {
	if n < 1 || n > MaxFourierPolynomialSize {
		panic("cannot NewFourier: polynomial size must be in [1, MaxFourierPolynomialSize]")
	}
	f := &Fourier{
		n:     n,
		limbs: (bits + FourierLimbBits - 1) / FourierLimbBits,
		fft:   fourier.NewCmplxFFT(n),
		twist: make([]complex128, n),
		buf:   make([]complex128, n),
	}
	for j := range f.twist {
		f.twist[j] = cmplx.Rect(1, math.Pi*float64(j)/float64(n))
	}
	return f
}

// Transform returns the transform of the lifted polynomial p, whose coefficients must be the
// centered lifts of elements of Z_q. p is not modified.
func (f *Fourier) Transform(p []int64) FourierPolynomial {

	out := make(FourierPolynomial, f.limbs)
	for l := range out {
		out[l] = make([]complex128, f.n)
	}

	mask := int64(1)<<FourierLimbBits - 1
	half := int64(1) << (FourierLimbBits - 1)

	for j, c := range p {
		// balanced limbs: c = sum_l d_l 2^(16*l) with d_l in [-2^15, 2^15) but for the last one
		for l := 0; l < f.limbs-1; l++ {
			d := c & mask
			c >>= FourierLimbBits
			if d >= half {
				d -= mask + 1
				c++
			}
			out[l][j] = complex(float64(d), 0) * f.twist[j]
		}
		out[f.limbs-1][j] = complex(float64(c), 0) * f.twist[j]
	}

	for l := range out {
		f.fft.Coefficients(out[l], out[l])
	}

	return out
}

// NewAccumulator returns a zero accumulator.
func (f *Fourier) NewAccumulator() FourierAccumulator {
	acc := make(FourierAccumulator, 2*f.limbs-1)
	for g := range acc {
		acc[g] = make([]complex128, f.n)
	}
	return acc
}

// MulThenAdd adds the product of the transforms a and b to acc.
func (f *Fourier) MulThenAdd(a, b FourierPolynomial, acc FourierAccumulator) {
	for l := range a {
		for m := range b {
			al, bm, g := a[l], b[m], acc[l+m]
			for i := range g {
				g[i] += al[i] * bm[i]
			}
		}
	}
}

// Inverse writes in out the coefficients, modulo 2^128, of the sum of the products accumulated
// in acc, and resets acc.
func (f *Fourier) Inverse(acc FourierAccumulator, out []Int128) {

	for j := range out {
		out[j] = Int128{}
	}

	scale := 1 / float64(f.n)

	for g := range acc {
		f.fft.Sequence(f.buf, acc[g])
		for j := range out {
			c := int64(math.Round(real(f.buf[j]*cmplx.Conj(f.twist[j])) * scale))
			out[j] = out[j].Add(NewInt128(c).Shl(FourierLimbBits * g))
		}
		for i := range acc[g] {
			acc[g][i] = 0
		}
	}
}
