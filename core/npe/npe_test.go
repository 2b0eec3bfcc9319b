package npe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/parameters"
)

func TestKeyKind(t *testing.T) {
	require.Equal(t, 0.25, Binary.VarianceKeyCoefficient())
	require.Equal(t, 0.5, Binary.ExpectationKeyCoefficient())
	require.Equal(t, 0.5, Binary.SquaredExpectationKeyCoefficient())
	require.InDelta(t, 2.0/3.0, Ternary.SquaredExpectationKeyCoefficient(), 1e-15)
	require.InDelta(t, 10.24, Gaussian.SquaredExpectationKeyCoefficient(), 1e-12)
	require.Equal(t, "Ternary", Ternary.String())
	require.Panics(t, func() { KeyKind(0).VarianceKeyCoefficient() })

	// for centered keys the product moment is n * E[s^2]^2
	require.InDelta(t, 4*(2.0/3.0)*(2.0/3.0), Ternary.SquaredKeyProductMoment(4), 1e-12)
	require.Greater(t, Binary.SquaredKeyProductMoment(256), 256*0.25)
}

func TestLinearOperators(t *testing.T) {
	v := dispersion.Variance(math.Exp2(-50))
	require.Equal(t, v, EstimateEncryptionNoise(dispersion.StandardDev(math.Exp2(-25))))
	require.Equal(t, v, EstimateNegationNoise(v))
	require.Equal(t, 2*v, EstimateAdditionNoise(v, v))
	require.Equal(t, 9*v, EstimateCleartextMultiplicationNoise[uint64](v, 3))
	require.Equal(t, 9*v, EstimateCleartextMultiplicationNoise[uint32](v, math.MaxUint32-2))
}

func TestKeyswitchNoise(t *testing.T) {

	vIn := dispersion.Variance(math.Exp2(-40))
	vKsk := dispersion.Variance(math.Exp2(-60))

	got := EstimateKeyswitchNoise[uint64](256, Binary, vIn, vKsk, 8, 3)

	want := math.Exp2(-40) +
		256*3*(65536.0+2)/12*math.Exp2(-60) +
		256*0.5*(math.Exp2(-48)-math.Exp2(-128))/12

	require.InDelta(t, want, float64(got), want*1e-12)

	// every term increases the output variance
	require.Greater(t, float64(EstimateKeyswitchNoise[uint64](512, Binary, vIn, vKsk, 8, 3)), float64(got))
	require.Greater(t, float64(EstimateKeyswitchNoise[uint64](256, Gaussian, vIn, vKsk, 8, 3)), float64(got))
	require.Greater(t, float64(EstimateKeyswitchNoise[uint64](256, Binary, vIn, 2*vKsk, 8, 3)), float64(got))
	// fewer levels leave a larger rounding error
	require.Greater(t, float64(EstimateKeyswitchNoise[uint64](256, Binary, vIn, vKsk, 8, 2)), float64(got))
}

func TestTensorProductNoise(t *testing.T) {

	v := dispersion.Variance(1e-8)

	estimate := func(n parameters.PolynomialSize, k parameters.GlweDimension, kind KeyKind) float64 {
		return float64(EstimateTensorProductNoise[uint64](n, k, kind, v, v, 16, 16, 4, 4, 1))
	}

	base := estimate(256, 1, Binary)

	t.Run("ClosedForm", func(t *testing.T) {
		n := 256.0
		res1 := 2*n*16*1e-8 + n*256*1e-16
		eK := (1+n*0.5)/12 + 1.0/16
		res2 := n * 256 * 2 * eK * 1e-8
		require.InDelta(t, res1+res2, base, base*1e-9)
	})

	t.Run("ExceedsInputs", func(t *testing.T) {
		require.Greater(t, base, float64(v))
	})

	t.Run("Monotonic", func(t *testing.T) {
		require.Greater(t, estimate(512, 1, Binary), base)
		require.Greater(t, estimate(256, 2, Binary), base)
		require.Greater(t, estimate(256, 200, Binary), estimate(256, 2, Binary))
		require.Greater(t, estimate(256, 1, Gaussian), estimate(256, 1, Ternary))
	})

	t.Run("Scale", func(t *testing.T) {
		scaled := float64(EstimateTensorProductNoise[uint64](256, 1, Binary, v, v, 16, 16, 4, 4, 2))
		require.InDelta(t, 4*base, scaled, base*1e-9)
	})

	t.Run("ForKey", func(t *testing.T) {
		// a key of the expected squared norm gives the expected estimate
		forKey := func(norm float64) float64 {
			return float64(EstimateTensorProductNoiseForKey[uint64](256, 1, Binary, norm, v, v, 16, 16, 4, 4, 1))
		}
		require.Equal(t, base, forKey(128))
		require.Greater(t, forKey(136), base)
		require.Less(t, forKey(120), base)
		// the squared norm enters through (1 + norm)/12
		require.InDelta(t, 256*256*2*(8.0/12)*1e-8, forKey(136)-base, 1e-12)
	})

	t.Run("Asymmetric", func(t *testing.T) {
		// swapping the two operands leaves the estimate unchanged
		a := EstimateTensorProductNoise[uint32](256, 1, Ternary, v, 2*v, 16, 32, 4, 2, 1)
		b := EstimateTensorProductNoise[uint32](256, 1, Ternary, 2*v, v, 32, 16, 2, 4, 1)
		require.InDelta(t, float64(a), float64(b), float64(a)*1e-12)
	})
}
