package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tuneinsight/fhecore/core/dispersion"
)

func wrappedNormalSamples(n int, sigma float64, seed uint64) (samples []float64) {
	normal := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewSource(seed)}
	samples = make([]float64, n)
	for i := range samples {
		x := normal.Rand()
		samples[i] = x - math.Round(x)
	}
	return
}

func TestWrappedVariance(t *testing.T) {

	t.Run("Small", func(t *testing.T) {
		require.Equal(t, 1e-10, WrappedVariance(1e-10))
		require.InDelta(t, 1e-3, WrappedVariance(1e-3), 1e-12)
	})

	t.Run("Continuity", func(t *testing.T) {
		// both sides of the small deviation cutoff agree
		v := 0.05 * 0.05
		require.InDelta(t, WrappedVariance(v*(1-1e-9)), WrappedVariance(v), 1e-9)
	})

	t.Run("Uniform", func(t *testing.T) {
		require.InDelta(t, 1.0/12, WrappedVariance(1), 1e-9)
		require.Equal(t, 1.0/12, WrappedVariance(100))
	})

	t.Run("Monotone", func(t *testing.T) {
		prev := 0.0
		for v := 1e-4; v < 2; v *= 1.5 {
			w := WrappedVariance(v)
			require.GreaterOrEqual(t, w, prev)
			require.LessOrEqual(t, w, v*(1+1e-9))
			prev = w
		}
	})
}

func TestWrappedNormalCDF(t *testing.T) {
	for _, sigma := range []float64{1e-3, 0.1, 0.3, 1, 5} {
		require.InDelta(t, 0.5, WrappedNormalCDF(0, sigma), 1e-9)
		require.InDelta(t, 0, WrappedNormalCDF(-0.5, sigma), 1e-9)
		require.Equal(t, 1.0, WrappedNormalCDF(0.5, sigma))
		require.InDelta(t, 1, WrappedNormalCDF(0.3, sigma)+WrappedNormalCDF(-0.3, sigma), 1e-9)
	}
	require.InDelta(t, distuv.UnitNormal.CDF(1), WrappedNormalCDF(1e-3, 1e-3), 1e-12)
}

func TestKolmogorovCritical(t *testing.T) {
	require.InDelta(t, 1.628, KolmogorovCritical(0.01, 1), 1e-3)
	require.InDelta(t, 1.358, KolmogorovCritical(0.05, 1), 1e-3)
	require.InDelta(t, 1.628/10, KolmogorovCritical(0.01, 100), 1e-3)
}

func TestAssertNoiseDistribution(t *testing.T) {

	opts := DefaultOptions()

	for _, sigma := range []float64{1e-9, 1e-4, 0.1, 0.4} {

		samples := wrappedNormalSamples(4096, sigma, 42)
		variance := dispersion.Variance(sigma * sigma)

		t.Run("Consistent", func(t *testing.T) {
			report, err := AssertNoiseDistribution(samples, variance, opts)
			require.NoError(t, err)
			require.True(t, report.Passed, report.String())
			require.True(t, report.MeanAccepted)
			require.True(t, report.VarianceAccepted)
			require.True(t, report.KSAccepted)
			require.Equal(t, len(samples), report.Samples)
			require.Less(t, report.VarianceLow, report.WrappedVariance)
			require.Greater(t, report.VarianceHigh, report.WrappedVariance)
		})

		if sigma >= 0.1 {
			// the wrapped distribution is too close to uniform to discriminate a thousandfold excess
			continue
		}

		t.Run("TooNoisy", func(t *testing.T) {
			report, err := AssertNoiseDistribution(samples, variance/1000, opts)
			require.NoError(t, err)
			require.False(t, report.Passed, report.String())
		})

		t.Run("TooQuiet", func(t *testing.T) {
			report, err := AssertNoiseDistribution(samples, variance*1000, opts)
			require.NoError(t, err)
			require.False(t, report.Passed, report.String())
		})
	}

	t.Run("Mispredicted", func(t *testing.T) {
		sigma := 1e-4
		samples := wrappedNormalSamples(4096, sigma, 43)
		for _, ratio := range []float64{50, 3.9, 1 / 3.9, 1.0 / 50} {
			report, err := AssertNoiseDistribution(samples, dispersion.Variance(sigma*sigma*ratio), opts)
			require.NoError(t, err)
			require.False(t, report.VarianceAccepted, report.String())
			require.False(t, report.Passed, report.String())
		}
	})

	t.Run("Biased", func(t *testing.T) {
		sigma := 1e-4
		samples := wrappedNormalSamples(4096, sigma, 44)
		for i := range samples {
			samples[i] += 1.5 * sigma
		}
		withBand := opts
		withBand.Band = true
		for _, o := range []Options{opts, withBand} {
			report, err := AssertNoiseDistribution(samples, dispersion.Variance(sigma*sigma), o)
			require.NoError(t, err)
			require.False(t, report.MeanAccepted, report.String())
			require.False(t, report.Passed, report.String())
		}
	})

	t.Run("Band", func(t *testing.T) {
		// uniform residuals have the right variance but the wrong shape
		sigma := 1e-3
		samples := make([]float64, 4096)
		src := rand.NewSource(7)
		half := sigma * math.Sqrt(3)
		for i := range samples {
			samples[i] = (2*float64(src.Uint64()>>11)/(1<<53) - 1) * half
		}

		report, err := AssertNoiseDistribution(samples, dispersion.Variance(sigma*sigma), opts)
		require.NoError(t, err)
		require.False(t, report.KSAccepted)
		require.True(t, report.BandAccepted)
		require.False(t, report.Passed)

		withBand := opts
		withBand.Band = true
		report, err = AssertNoiseDistribution(samples, dispersion.Variance(sigma*sigma), withBand)
		require.NoError(t, err)
		require.True(t, report.MeanAccepted)
		require.True(t, report.Passed)

		// the band still rejects standard deviations off by more than its bounds
		report, err = AssertNoiseDistribution(samples, dispersion.Variance(sigma*sigma*100), withBand)
		require.NoError(t, err)
		require.False(t, report.BandAccepted)
		require.False(t, report.Passed)
	})

	t.Run("Noiseless", func(t *testing.T) {
		report, err := AssertNoiseDistribution(make([]float64, 16), 0, opts)
		require.NoError(t, err)
		require.True(t, report.Passed)

		report, err = AssertNoiseDistribution([]float64{0, 0, 1e-9}, 0, opts)
		require.NoError(t, err)
		require.False(t, report.Passed)
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		_, err := AssertNoiseDistribution(nil, 1, opts)
		require.ErrorIs(t, err, ErrNoSamples)

		_, err = AssertNoiseDistribution([]float64{0}, -1, opts)
		require.Error(t, err)

		_, err = AssertNoiseDistribution([]float64{0}, 1, Options{Significance: 2})
		require.Error(t, err)
	})
}
