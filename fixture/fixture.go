// Package fixture implements the statistical test harness of the engine operations.
//
// A fixture describes how to test one operation, independently of the backend implementing it:
// which parameters to test, which prototypes to draw, how to synthesize them into entities of
// the backend, how to execute the operation, and how to read its outcome back. The harness runs
// a fixture for a number of repetitions of a number of samples and assesses, for each
// repetition, whether the observed errors of the outcomes are consistent with the variance
// predicted by the noise propagation oracle.
package fixture

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/fixture/generation"
	"github.com/tuneinsight/fhecore/fixture/statistics"
	"github.com/tuneinsight/fhecore/utils/sampling"
)

// Outcome is the outcome of one sample: the raw values the operation should have produced,
// and the noisy raw values it produced.
type Outcome[T torus.Unsigned] struct {
	Expected []T
	Actual   []T
}

// Fixture is the description of the test of an operation.
//
// For each parameter set and each repetition, the harness draws the repetition prototypes and
// computes the predicted variance. Then, for each sample, it draws the sample prototypes,
// synthesizes a context, executes the operation on it, reads its outcome and destroys it.
type Fixture[T torus.Unsigned, Parameters, RepetitionPrototypes, SamplePrototypes, Context any] interface {

	// Name returns the name of the operation under test.
	Name() string

	// Parameters returns the parameter sets to test.
	Parameters() []Parameters

	// RepetitionPrototypes draws the prototypes shared by all the samples of a repetition.
	RepetitionPrototypes(params Parameters, maker *generation.Maker[T]) RepetitionPrototypes

	// SamplePrototypes draws the prototypes of a sample.
	SamplePrototypes(params Parameters, maker *generation.Maker[T], repetition RepetitionPrototypes) SamplePrototypes

	// PrepareContext synthesizes the entities on which the operation is executed.
	PrepareContext(params Parameters, repetition RepetitionPrototypes, sample SamplePrototypes) Context

	// Execute executes the operation on the context. Allocated outputs are stored in the
	// context, including when an error is returned.
	Execute(params Parameters, context *Context, unchecked bool) error

	// ProcessContext unsynthesizes the outputs of the operation and returns the outcome.
	ProcessContext(params Parameters, maker *generation.Maker[T], repetition RepetitionPrototypes, sample SamplePrototypes, context Context) Outcome[T]

	// Cleanup destroys every entity owned by the context.
	Cleanup(context Context)

	// ComputeCriteria returns the variance of the noise predicted for the repetition.
	ComputeCriteria(params Parameters, repetition RepetitionPrototypes) dispersion.Variance
}

// Result is the assessment of one repetition of a fixture.
type Result[Parameters any] struct {
	Fixture    string
	Parameters Parameters
	Index      int // index of the parameter set
	Repetition int
	Report     statistics.Report
}

// String returns a one-line summary of the result.
func (r Result[Parameters]) String() string {
	return fmt.Sprintf("%s/params=%d/rep=%d %+v: %s", r.Fixture, r.Index, r.Repetition, r.Parameters, r.Report)
}

// Run runs the fixture with the given configuration and returns the assessment of every
// repetition of every parameter set. An error is returned if the configuration is invalid,
// if the operation returns an error or if the outcomes cannot be assessed.
//
// Every entity synthesized by the fixture is destroyed exactly once, whatever the exit path.
func Run[T torus.Unsigned, Parameters, RepetitionPrototypes, SamplePrototypes, Context any](
	f Fixture[T, Parameters, RepetitionPrototypes, SamplePrototypes, Context],
	config Config) (results []Result[Parameters], err error) {

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("cannot Run %s: %w", f.Name(), err)
	}

	logger := config.logger()

	for index, params := range f.Parameters() {

		for repetition := 0; repetition < config.Repetitions; repetition++ {

			var maker *generation.Maker[T]
			if maker, err = generation.NewMaker[T](sampling.DeriveKey(config.Seed, f.Name(), strconv.Itoa(index), strconv.Itoa(repetition))); err != nil {
				return nil, fmt.Errorf("cannot Run %s: %w", f.Name(), err)
			}

			repetitionPrototypes := f.RepetitionPrototypes(params, maker)

			variance := f.ComputeCriteria(params, repetitionPrototypes)

			var residuals []float64

			for sample := 0; sample < config.Samples; sample++ {

				samplePrototypes := f.SamplePrototypes(params, maker, repetitionPrototypes)

				var outcome Outcome[T]
				if outcome, err = runSample(f, params, maker, repetitionPrototypes, samplePrototypes, config.Unchecked); err != nil {
					return nil, fmt.Errorf("cannot Run %s: parameters %d, repetition %d, sample %d: %w", f.Name(), index, repetition, sample, err)
				}

				residuals = append(residuals, torus.Distances(outcome.Actual, outcome.Expected)...)
			}

			result := Result[Parameters]{
				Fixture:    f.Name(),
				Parameters: params,
				Index:      index,
				Repetition: repetition,
			}

			if result.Report, err = statistics.AssertNoiseDistribution(residuals, variance, config.Options()); err != nil {
				return nil, fmt.Errorf("cannot Run %s: parameters %d, repetition %d: %w", f.Name(), index, repetition, err)
			}

			logger.Println(result)

			results = append(results, result)
		}
	}

	return
}

func runSample[T torus.Unsigned, Parameters, RepetitionPrototypes, SamplePrototypes, Context any](
	f Fixture[T, Parameters, RepetitionPrototypes, SamplePrototypes, Context],
	params Parameters,
	maker *generation.Maker[T],
	repetition RepetitionPrototypes,
	sample SamplePrototypes,
	unchecked bool) (outcome Outcome[T], err error) {

	context := f.PrepareContext(params, repetition, sample)
	defer func() {
		f.Cleanup(context)
	}()

	if err = f.Execute(params, &context, unchecked); err != nil {
		return
	}

	return f.ProcessContext(params, maker, repetition, sample, context), nil
}

// Failed returns the results whose assessment failed.
func Failed[Parameters any](results []Result[Parameters]) (failed []Result[Parameters]) {
	for _, r := range results {
		if !r.Report.Passed {
			failed = append(failed, r)
		}
	}
	return
}

// RequirePassed fails the test if err is not nil or if any of the results failed.
func RequirePassed[Parameters any](t testing.TB, results []Result[Parameters], err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range Failed(results) {
		t.Errorf("noise distribution rejected: %s", r)
	}
}
