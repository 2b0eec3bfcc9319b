package torus

import (
	"math/bits"
)

// Add sets out[i] = a[i] + b[i] mod q.
func Add[T Unsigned](a, b, out []T) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
}

// Sub sets out[i] = a[i] - b[i] mod q.
func Sub[T Unsigned](a, b, out []T) {
	for i := range out {
		out[i] = a[i] - b[i]
	}
}

// Neg sets out[i] = -a[i] mod q.
func Neg[T Unsigned](a, out []T) {
	for i := range out {
		out[i] = -a[i]
	}
}

// MulScalar sets out[i] = c * a[i] mod q.
func MulScalar[T Unsigned](a []T, c T, out []T) {
	for i := range out {
		out[i] = c * a[i]
	}
}

// MulScalarThenAdd sets out[i] = out[i] + c * a[i] mod q.
func MulScalarThenAdd[T Unsigned](a []T, c T, out []T) {
	for i := range out {
		out[i] += c * a[i]
	}
}

// MulScalarThenSub sets out[i] = out[i] - c * a[i] mod q.
func MulScalarThenSub[T Unsigned](a []T, c T, out []T) {
	for i := range out {
		out[i] -= c * a[i]
	}
}

// Dot returns sum_i a[i] * b[i] mod q.
func Dot[T Unsigned](a, b []T) (r T) {
	for i := range a {
		r += a[i] * b[i]
	}
	return
}

// MulNegacyclicThenAdd sets out = out + a * b in Z_q[X]/(X^N+1).
// The three polynomials must have the same size and out must not alias a or b.
func MulNegacyclicThenAdd[T Unsigned](a, b, out []T) {
	n := len(out)
	for i := 0; i < n; i++ {
		ai := a[i]
		if ai == 0 {
			continue
		}
		for j := 0; j < n-i; j++ {
			out[i+j] += ai * b[j]
		}
		for j := n - i; j < n; j++ {
			out[i+j-n] -= ai * b[j]
		}
	}
}

// MulNegacyclicThenSub sets out = out - a * b in Z_q[X]/(X^N+1).
// The three polynomials must have the same size and out must not alias a or b.
func MulNegacyclicThenSub[T Unsigned](a, b, out []T) {
	n := len(out)
	for i := 0; i < n; i++ {
		ai := a[i]
		if ai == 0 {
			continue
		}
		for j := 0; j < n-i; j++ {
			out[i+j] -= ai * b[j]
		}
		for j := n - i; j < n; j++ {
			out[i+j-n] += ai * b[j]
		}
	}
}

// MulNegacyclic returns a * b in Z_q[X]/(X^N+1).
func MulNegacyclic[T Unsigned](a, b []T) (out []T) {
	out = make([]T, len(a))
	MulNegacyclicThenAdd(a, b, out)
	return
}

// MulNegacyclicCoefficient returns the coefficient of degree i of a * b in Z_q[X]/(X^N+1).
func MulNegacyclicCoefficient[T Unsigned](a, b []T, i int) (r T) {
	n := len(a)
	for j := 0; j <= i; j++ {
		r += a[j] * b[i-j]
	}
	for j := i + 1; j < n; j++ {
		r -= a[j] * b[n+i-j]
	}
	return
}

// MulNegacyclicInt64 returns a * b in Z[X]/(X^N+1) for polynomials with small integer coefficients.
// The caller must ensure that the result does not overflow.
func MulNegacyclicInt64(a, b []int64) (out []int64) {
	n := len(a)
	out = make([]int64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if k := i + j; k < n {
				out[k] += a[i] * b[j]
			} else {
				out[k-n] -= a[i] * b[j]
			}
		}
	}
	return
}

// Int128 is a signed 128-bit integer in two's complement, used to accumulate products
// of lifted torus elements without reduction.
type Int128 struct {
	Hi, Lo uint64
}

// NewInt128 returns v sign-extended to 128 bits.
func NewInt128(v int64) Int128 {
	return Int128{Hi: uint64(v >> 63), Lo: uint64(v)}
}

// MulInt64 returns the 128-bit product of a and b.
func MulInt64(a, b int64) (r Int128) {
	r.Hi, r.Lo = bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		r.Hi -= uint64(b)
	}
	if b < 0 {
		r.Hi -= uint64(a)
	}
	return
}

// Add returns x + y mod 2^128.
func (x Int128) Add(y Int128) (r Int128) {
	var carry uint64
	r.Lo, carry = bits.Add64(x.Lo, y.Lo, 0)
	r.Hi, _ = bits.Add64(x.Hi, y.Hi, carry)
	return
}

// Sub returns x - y mod 2^128.
func (x Int128) Sub(y Int128) (r Int128) {
	var borrow uint64
	r.Lo, borrow = bits.Sub64(x.Lo, y.Lo, 0)
	r.Hi, _ = bits.Sub64(x.Hi, y.Hi, borrow)
	return
}

// ScaleRound returns round(x * 2^logScale) mod q, rounding half up.
// logScale must be in [-64, 64]; any x in two's complement is valid since only the bits
// of x at positions [-logScale, -logScale + log2(q)) are read.
func ScaleRound[T Unsigned](x Int128, logScale int) T {
	switch {
	case logScale >= 64:
		return 0
	case logScale > 0:
		return T(x.Lo << logScale)
	case logScale == 0:
		return T(x.Lo)
	}

	d := -logScale
	x = x.Add(Int128{Lo: 1}.Shl(d - 1))
	if d == 64 {
		return T(x.Hi)
	}
	return T(x.Lo>>d | x.Hi<<(64-d))
}

// Shl returns x << s for s in [0, 127].
func (x Int128) Shl(s int) Int128 {
	switch {
	case s == 0:
		return x
	case s >= 64:
		return Int128{Hi: x.Lo << (s - 64)}
	default:
		return Int128{Hi: x.Hi<<s | x.Lo>>(64-s), Lo: x.Lo << s}
	}
}

// MulNegacyclicWideThenAdd sets acc = acc + a * b in Z[X]/(X^N+1), with the products
// computed exactly on 128 bits.
func MulNegacyclicWideThenAdd(a, b []int64, acc []Int128) {
	n := len(acc)
	for i := 0; i < n; i++ {
		ai := a[i]
		if ai == 0 {
			continue
		}
		for j := 0; j < n-i; j++ {
			acc[i+j] = acc[i+j].Add(MulInt64(ai, b[j]))
		}
		for j := n - i; j < n; j++ {
			acc[i+j-n] = acc[i+j-n].Sub(MulInt64(ai, b[j]))
		}
	}
}

// Lift returns the centered lift of the coefficients of p.
func Lift[T Unsigned](p []T) (out []int64) {
	out = make([]int64, len(p))
	for i := range p {
		out[i] = Signed(p[i])
	}
	return
}
