package torus

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTorus(t *testing.T) {
	testTorus[uint32](t)
	testTorus[uint64](t)

	t.Run("Int128", func(t *testing.T) {
		for _, pair := range [][2]int64{
			{3, 5},
			{-3, 5},
			{3, -5},
			{math.MinInt64, math.MinInt64},
			{math.MaxInt64, math.MinInt64},
			{-1, -1},
		} {
			r := MulInt64(pair[0], pair[1])
			want := new(big.Int).Mul(big.NewInt(pair[0]), big.NewInt(pair[1]))
			require.Equal(t, 0, want.Cmp(toBig(r)), pair)
		}

		x := MulInt64(-7, 1<<40)
		require.Equal(t, 0, big.NewInt(-7<<40).Cmp(toBig(x)))
		require.Equal(t, 0, big.NewInt(-7<<41).Cmp(toBig(x.Add(x))))
		require.Equal(t, 0, big.NewInt(0).Cmp(toBig(x.Sub(x))))
	})

	t.Run("ScaleRound", func(t *testing.T) {
		// round(-7 * 2^40 / 2^38) = -28
		x := MulInt64(-7, 1<<40)
		require.Equal(t, uint64(math.MaxUint64-27), ScaleRound[uint64](x, -38))
		// round(5 / 2) = 3, round(-5 / 2) = -2 (half up)
		require.Equal(t, uint32(3), ScaleRound[uint32](MulInt64(5, 1), -1))
		require.Equal(t, uint32(math.MaxUint32-1), ScaleRound[uint32](MulInt64(-5, 1), -1))
		// 2^70 / 2^64 = 64
		require.Equal(t, uint64(64), ScaleRound[uint64](MulInt64(1<<35, 1<<35), -64))
		require.Equal(t, uint64(12), ScaleRound[uint64](MulInt64(3, 1), 2))
	})
}

func toBig(x Int128) *big.Int {
	r := new(big.Int).SetUint64(x.Hi)
	r.Lsh(r, 64)
	r.Or(r, new(big.Int).SetUint64(x.Lo))
	if x.Hi>>63 == 1 {
		r.Sub(r, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return r
}

func testTorus[T Unsigned](t *testing.T) {

	bits := Bits[T]()
	name := func(op string) string {
		return op + "/" + map[int]string{32: "32", 64: "64"}[bits]
	}

	t.Run(name("Lift"), func(t *testing.T) {
		var top T
		top--
		require.Equal(t, int64(-1), Signed(top))
		require.Equal(t, top, FromSigned[T](-1))
		require.Equal(t, -0.5, ToFloat(T(1)<<(bits-1)))
		require.Equal(t, 0.25, ToFloat(T(1)<<(bits-2)))
		require.Equal(t, T(1)<<(bits-2), FromFloat[T](1.25))
		require.Equal(t, T(0)-T(1)<<(bits-3), FromFloat[T](-0.125))
		require.InDelta(t, -0.25, Distance(T(1)<<(bits-2), T(1)<<(bits-1)), 0)
		require.Equal(t, T(1)<<(bits-4), Delta[T](16))
		require.Panics(t, func() { Delta[T](3) })
		require.Panics(t, func() { Delta[T](1) })
	})

	t.Run(name("MulNegacyclic"), func(t *testing.T) {
		// (1 + X) * X^3 = X^3 + X^4 = -1 + X^3 mod X^4 + 1
		a := []T{1, 1, 0, 0}
		b := []T{0, 0, 0, 1}
		require.Equal(t, []T{FromSigned[T](-1), 0, 0, 1}, MulNegacyclic(a, b))

		ai := []int64{2, -1, 0, 3}
		bi := []int64{-1, 4, 5, 0}
		want := MulNegacyclicInt64(ai, bi)
		got := MulNegacyclic(
			[]T{FromSigned[T](2), FromSigned[T](-1), 0, 3},
			[]T{FromSigned[T](-1), 4, 5, 0})
		for i := range want {
			require.Equal(t, want[i], Signed(got[i]))
		}

		acc := make([]Int128, 4)
		MulNegacyclicWideThenAdd(ai, bi, acc)
		for i := range want {
			require.Equal(t, want[i], Signed(ScaleRound[T](acc[i], 0)))
		}

		out := make([]T, 4)
		MulNegacyclicThenAdd(a, b, out)
		MulNegacyclicThenSub(a, b, out)
		require.Equal(t, make([]T, 4), out)
	})

	t.Run(name("Fourier"), func(t *testing.T) {
		x := uint64(0x9e3779b97f4a7c15)
		random := func() int64 {
			x = x*6364136223846793005 + 1442695040888963407
			return Signed(T(x >> (64 - bits)))
		}
		top := Signed(T(1) << (bits - 1))
		edges := []int64{top, -top - 1, 0, 1, -1, 1<<15 - 1, -1 << 15, 1<<31 - 1, -1 << 31}
		if bits == 32 {
			edges = edges[:len(edges)-2]
		}

		for _, n := range []int{16, 256, MaxFourierPolynomialSize} {
			f := NewFourier(n, bits)
			acc := f.NewAccumulator()

			poly := func(extreme bool) []int64 {
				p := make([]int64, n)
				for i := range p {
					if extreme {
						p[i] = edges[i%len(edges)]
					} else {
						p[i] = random()
					}
				}
				return p
			}

			for _, extreme := range []bool{false, true} {
				a, b, c, d := poly(extreme), poly(false), poly(extreme), poly(extreme)

				want := make([]Int128, n)
				MulNegacyclicWideThenAdd(a, b, want)
				MulNegacyclicWideThenAdd(c, d, want)

				f.MulThenAdd(f.Transform(a), f.Transform(b), acc)
				f.MulThenAdd(f.Transform(c), f.Transform(d), acc)
				got := make([]Int128, n)
				f.Inverse(acc, got)
				require.Equal(t, want, got)

				// the accumulator is reset
				f.MulThenAdd(f.Transform(a), f.Transform(b), acc)
				f.Inverse(acc, got)
				want = make([]Int128, n)
				MulNegacyclicWideThenAdd(a, b, want)
				require.Equal(t, want, got)
			}
		}

		require.Panics(t, func() { NewFourier(2*MaxFourierPolynomialSize, bits) })
	})

	t.Run(name("DecomposeSigned"), func(t *testing.T) {
		for _, bl := range [][2]int{{4, 3}, {8, 4}, {1, bits}, {bits / 2, 2}} {
			baseLog, levels := bl[0], bl[1]
			digits := make([]int64, levels)
			for _, x := range []T{0, 1, T(0) - 1, T(1) << (bits - 1), 0x9e3779b9, T(0x7f4a7c15) << (bits - 32)} {
				DecomposeSigned(x, baseLog, levels, digits)
				var r T
				for j, d := range digits {
					require.GreaterOrEqual(t, d, -int64(1)<<(baseLog-1))
					require.Less(t, d, int64(1)<<(baseLog-1))
					r += GadgetValue(FromSigned[T](d), baseLog, j+1)
				}
				require.Equal(t, ClosestRepresentable(x, baseLog, levels), r)
			}
		}
	})
}
