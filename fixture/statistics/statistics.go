// Package statistics implements the assertion deciding whether a sample of torus residuals is
// consistent with a centered normal distribution of predicted variance, wrapped around the torus.
//
// The assertion runs three tests, each at a third of the significance level: a test of the mean
// against zero, a chi-square test of the second moment against the wrapped variance, and a
// Kolmogorov-Smirnov test of the residuals against the wrapped normal distribution. The residuals
// are accepted if the three tests accept them.
//
// Noises that are not normal can opt in to a tolerance band on the observed standard deviation:
// residuals whose mean is accepted are then also accepted if log2 of their standard deviation lies
// within [-MaxDeficitBits, MaxExcessBits] of the predicted one.
package statistics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tuneinsight/fhecore/core/dispersion"
)

// Options parameterizes the assertion.
type Options struct {
	// Significance is the probability of rejecting residuals drawn from the predicted distribution.
	Significance float64
	// Band enables the tolerance band.
	Band bool
	// MaxExcessBits is the tolerated excess of log2 of the observed standard deviation.
	MaxExcessBits float64
	// MaxDeficitBits is the tolerated deficit of log2 of the observed standard deviation.
	MaxDeficitBits float64
}

// DefaultOptions returns the default options of the assertion. The default significance keeps
// the false rejection rate of a suite of a hundred assertions around one percent.
func DefaultOptions() Options {
	return Options{Significance: 0.0001, MaxExcessBits: 1, MaxDeficitBits: 3}
}

// Validate returns an error if the options are not usable.
func (o Options) Validate() error {
	if o.Significance <= 0 || o.Significance >= 1 {
		return fmt.Errorf("invalid significance %v: must be in (0, 1)", o.Significance)
	}
	if o.MaxExcessBits < 0 || o.MaxDeficitBits < 0 {
		return fmt.Errorf("invalid tolerance band [-%v, %v]: bounds must be non-negative", o.MaxDeficitBits, o.MaxExcessBits)
	}
	return nil
}

// Report is the outcome of the assertion on a sample of residuals.
type Report struct {
	Samples int

	// PredictedVariance is the variance of the normal distribution before wrapping.
	PredictedVariance float64
	// WrappedVariance is the variance of the predicted distribution once wrapped on [-1/2, 1/2).
	WrappedVariance float64
	// ObservedVariance is the second moment of the residuals about zero.
	ObservedVariance float64

	Mean         float64
	MaxAbs       float64
	Percentile99 float64

	// MeanBound is the largest absolute mean accepted.
	MeanBound    float64
	MeanAccepted bool

	// VarianceLow and VarianceHigh bound the accepted observed variances.
	VarianceLow      float64
	VarianceHigh     float64
	VarianceAccepted bool

	KSStatistic float64
	KSCritical  float64
	KSAccepted  bool

	// LogStdDiff is log2 of the observed standard deviation minus log2 of the wrapped one.
	LogStdDiff   float64
	BandAccepted bool

	Passed bool
}

// String returns a one-line summary of the report.
func (r Report) String() string {
	verdict := "FAIL"
	if r.Passed {
		verdict = "PASS"
	}
	return fmt.Sprintf("%s samples=%d predicted=%.4e wrapped=%.4e observed=%.4e in [%.4e, %.4e] mean=%.3e/%.3e max=%.3e p99=%.3e ks=%.4f/%.4f log2diff=%+.3f",
		verdict, r.Samples, r.PredictedVariance, r.WrappedVariance, r.ObservedVariance, r.VarianceLow, r.VarianceHigh,
		r.Mean, r.MeanBound, r.MaxAbs, r.Percentile99, r.KSStatistic, r.KSCritical, r.LogStdDiff)
}

// ErrNoSamples is returned when asserting on an empty sample.
var ErrNoSamples = errors.New("no residuals to assert on")

// AssertNoiseDistribution checks that the residuals, given as signed torus values in [-1/2, 1/2),
// are independent draws of a centered normal distribution of variance predicted wrapped on the
// torus. The returned error only reports invalid inputs: the verdict is given by Report.Passed.
func AssertNoiseDistribution(residuals []float64, predicted dispersion.Variance, opts Options) (Report, error) {

	if len(residuals) == 0 {
		return Report{}, ErrNoSamples
	}

	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	variance := float64(predicted)
	if variance < 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return Report{}, fmt.Errorf("invalid predicted variance %v", variance)
	}

	n := len(residuals)

	r := Report{
		Samples:           n,
		PredictedVariance: variance,
		WrappedVariance:   WrappedVariance(variance),
		ObservedVariance:  stat.MomentAbout(2, residuals, 0, nil),
	}

	abs := make([]float64, n)
	for i := range residuals {
		abs[i] = math.Abs(residuals[i])
	}

	var err error
	if r.Mean, err = stats.Mean(residuals); err != nil {
		return Report{}, err
	}
	if r.MaxAbs, err = stats.Max(abs); err != nil {
		return Report{}, err
	}
	if r.Percentile99, err = stats.Percentile(abs, 99); err != nil {
		return Report{}, err
	}

	// A noiseless operation must be exact.
	if variance == 0 {
		exact := r.MaxAbs == 0
		r.MeanAccepted = exact
		r.VarianceAccepted = exact
		r.KSAccepted = exact
		r.BandAccepted = exact
		r.Passed = exact
		return r, nil
	}

	level := opts.Significance / 3

	r.MeanBound = distuv.UnitNormal.Quantile(1-level/2) * math.Sqrt(r.WrappedVariance/float64(n))
	r.MeanAccepted = math.Abs(r.Mean) <= r.MeanBound

	// n times the ratio of the observed to the wrapped variance follows a chi-square
	// distribution with n degrees of freedom.
	chi2 := distuv.ChiSquared{K: float64(n)}
	r.VarianceLow = chi2.Quantile(level/2) * r.WrappedVariance / float64(n)
	r.VarianceHigh = chi2.Quantile(1-level/2) * r.WrappedVariance / float64(n)
	r.VarianceAccepted = r.ObservedVariance >= r.VarianceLow && r.ObservedVariance <= r.VarianceHigh

	sigma := math.Sqrt(variance)
	r.KSStatistic = kolmogorovSmirnov(residuals, func(x float64) float64 { return WrappedNormalCDF(x, sigma) })
	r.KSCritical = KolmogorovCritical(level, n)
	r.KSAccepted = r.KSStatistic <= r.KSCritical

	r.LogStdDiff = 0.5 * math.Log2(r.ObservedVariance/r.WrappedVariance)
	r.BandAccepted = r.LogStdDiff <= opts.MaxExcessBits && r.LogStdDiff >= -opts.MaxDeficitBits

	r.Passed = r.MeanAccepted && (r.VarianceAccepted && r.KSAccepted || opts.Band && r.BandAccepted)

	return r, nil
}

// WrappedVariance returns the variance on [-1/2, 1/2) of a centered normal distribution of
// variance v wrapped around the torus.
func WrappedVariance(v float64) float64 {

	// Below this deviation the mass beyond 1/2 is negligible in double precision.
	if v < 0.05*0.05 {
		return v
	}

	// Uniform on the torus up to double precision.
	if v > 4 {
		return 1.0 / 12
	}

	w := 1.0 / 12
	for m := 1; m <= 64; m++ {
		fm := float64(m)
		term := math.Exp(-2*math.Pi*math.Pi*fm*fm*v) / (math.Pi * math.Pi * fm * fm)
		if m&1 == 1 {
			w -= term
		} else {
			w += term
		}
		if term < 1e-18 {
			break
		}
	}
	return w
}

// WrappedNormalCDF returns the cumulative distribution function on [-1/2, 1/2) of a centered
// normal distribution of standard deviation sigma wrapped around the torus.
func WrappedNormalCDF(x, sigma float64) float64 {

	if x < -0.5 {
		return 0
	}

	if x >= 0.5 {
		return 1
	}

	if sigma > 2 {
		return x + 0.5
	}

	phi := distuv.UnitNormal
	wraps := int(math.Ceil(8*sigma)) + 1

	var cdf float64
	for m := -wraps; m <= wraps; m++ {
		fm := float64(m)
		cdf += phi.CDF((x+fm)/sigma) - phi.CDF((fm-0.5)/sigma)
	}

	return math.Min(math.Max(cdf, 0), 1)
}

// KolmogorovCritical returns the asymptotic critical value of the Kolmogorov-Smirnov statistic
// at the given significance for n samples.
func KolmogorovCritical(significance float64, n int) float64 {
	return math.Sqrt(-math.Log(significance/2)/2) / math.Sqrt(float64(n))
}

func kolmogorovSmirnov(samples []float64, cdf func(float64) float64) (d float64) {
	sorted := append([]float64{}, samples...)
	sort.Float64s(sorted)
	n := float64(len(sorted))
	for i, x := range sorted {
		f := cdf(x)
		d = math.Max(d, math.Max(f-float64(i)/n, float64(i+1)/n-f))
	}
	return
}
