package fixture

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/fhecore/backends/reference"
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/npe"
	"github.com/tuneinsight/fhecore/core/torus"
)

var flagFixtureConfig = flag.String("fixture", "", "specify the fixture configuration as a JSON string. Overrides -short.")
var flagLongTest = flag.Bool("long", false, "run the long test suite (large GLWE dimensions). Requires -timeout=0.")

func testConfig(t *testing.T) Config {

	config := DefaultConfig()

	if testing.Short() {
		config.Samples = 100
	}

	if *flagFixtureConfig != "" {
		if err := json.Unmarshal([]byte(*flagFixtureConfig), &config); err != nil {
			t.Fatal(err)
		}
	}

	if testing.Verbose() {
		config.Logger = log.New(testWriter{t}, "", 0)
	}

	return config
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func testString[T torus.Unsigned](opname string, unchecked bool) string {
	return fmt.Sprintf("%s/q=2^%d/Unchecked=%t", opname, torus.Bits[T](), unchecked)
}

func newTestEngine[T torus.Unsigned](t *testing.T) *reference.Engine[T] {
	eng, err := reference.NewEngine[T]([]byte("fixture_test"))
	require.NoError(t, err)
	return eng
}

func requireNoLiveEntities[T torus.Unsigned](t *testing.T, eng *reference.Engine[T]) {
	n, byKind := eng.LiveEntities()
	require.Zero(t, n, "live entities: %v", byKind)
}

func TestFixtures(t *testing.T) {
	for _, unchecked := range []bool{false, true} {
		config := testConfig(t)
		config.Unchecked = unchecked
		testReferenceFixtures[uint64](t, config)
		testReferenceFixtures[uint32](t, config)
	}
}

func testReferenceFixtures[T torus.Unsigned](t *testing.T, config Config) {

	t.Run(testString[T]("LweCiphertextEncryption", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceLweCiphertextEncryptionFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("LweCiphertextDiscardingNegation", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceLweCiphertextDiscardingNegationFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("LweCiphertextDiscardingAddition", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceLweCiphertextDiscardingAdditionFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("LweCiphertextDiscardingCleartextMultiplication", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceLweCiphertextDiscardingCleartextMultiplicationFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("LweCiphertextDiscardingKeyswitch", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceLweCiphertextDiscardingKeyswitchFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("GlweCiphertextEncryption", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceGlweCiphertextEncryptionFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("GgswCiphertextScalarEncryption", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceGgswCiphertextScalarEncryptionFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})

	t.Run(testString[T]("GlweCiphertextTensorProduct", config.Unchecked), func(t *testing.T) {
		eng := newTestEngine[T](t)
		results, err := NewReferenceGlweCiphertextTensorProductFixture(eng).Run(config)
		RequirePassed(t, results, err)
		requireNoLiveEntities(t, eng)
	})
}

func TestGlweCiphertextTensorProduct(t *testing.T) {

	t.Run("Scenario", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipped in -short mode")
		}
		eng := newTestEngine[uint64](t)
		f := NewReferenceGlweCiphertextTensorProductFixture(eng)
		config := testConfig(t)
		results, err := f.Run(config)
		RequirePassed(t, results, err)
		require.Len(t, results, config.Repetitions)
		for _, r := range results {
			require.Equal(t, config.Samples, r.Report.Samples)
			// one residual per sample: the distribution of the residuals is accepted without the band
			require.True(t, r.Report.MeanAccepted)
			require.True(t, r.Report.VarianceAccepted)
			require.True(t, r.Report.KSAccepted)
			require.InEpsilon(t, 1.42e-2, r.Report.PredictedVariance, 0.25)
		}
		requireNoLiveEntities(t, eng)
	})

	t.Run("Criteria", func(t *testing.T) {
		f := NewReferenceGlweCiphertextTensorProductFixture(newTestEngine[uint64](t))
		params := DefaultGlweCiphertextTensorProductParameters[0]
		long := LongGlweCiphertextTensorProductParameters[0]

		// keys of average squared norm
		small := f.ComputeCriteria(params, glweCiphertextTensorProductRepetition[uint64]{keyNorm: 128})
		large := f.ComputeCriteria(long, glweCiphertextTensorProductRepetition[uint64]{keyNorm: 200 * 128})
		require.InEpsilon(t, 1.42e-2, float64(small), 0.01)
		require.InEpsilon(t, float64(npe.EstimateTensorProductNoise[uint64](
			params.PolynomialSize, params.GlweDimension, params.KeyDistribution.KeyKind(),
			params.Noise1, params.Noise2, params.MessageSpace1, params.MessageSpace2,
			params.Bound1, params.Bound2, params.Scale)), float64(small), 1e-12)
		require.Greater(t, float64(small), float64(params.Noise1))
		require.Greater(t, float64(large), float64(small))

		heavy := f.ComputeCriteria(params, glweCiphertextTensorProductRepetition[uint64]{keyNorm: 150})
		require.Greater(t, float64(heavy), float64(small))
	})

	t.Run("Scales", func(t *testing.T) {
		params := DefaultGlweCiphertextTensorProductParameters[0]
		require.Equal(t, 60, params.OutputScale(64))
		require.Equal(t, 28, params.OutputScale(32))
		require.Equal(t, 0x1p-60, params.ScaleCleartext(64))

		params.MessageSpace2 = 64
		params.Scale = 0.5
		require.Equal(t, 59, params.OutputScale(64))
		require.Equal(t, 0x1p-59, params.ScaleCleartext(64))
	})

	t.Run("UnsupportedScale", func(t *testing.T) {
		eng := newTestEngine[uint64](t)
		f := NewReferenceGlweCiphertextTensorProductFixture(eng)
		params := DefaultGlweCiphertextTensorProductParameters[0]
		params.PolynomialSize = 16
		params.Scale = 3
		f.ParameterSets = []GlweCiphertextTensorProductParameters{params}
		_, err := f.Run(DefaultConfig())
		require.ErrorIs(t, err, reference.ErrUnsupportedScale)
		require.True(t, engine.GlweCiphertextTensorProductErrors.Contains(err))
		requireNoLiveEntities(t, eng)
	})

	t.Run("Long", func(t *testing.T) {
		if !*flagLongTest {
			t.Skip("run with -long")
		}
		eng := newTestEngine[uint32](t)
		f := NewReferenceGlweCiphertextTensorProductFixture(eng)
		f.ParameterSets = LongGlweCiphertextTensorProductParameters
		config := testConfig(t)
		results, err := f.Run(config)
		RequirePassed(t, results, err)
		require.Len(t, results, config.Repetitions)
		for _, r := range results {
			require.Equal(t, config.Samples, r.Report.Samples)
		}
		requireNoLiveEntities(t, eng)
	})
}

// noisyEngine encrypts with ten thousand times the requested variance.
type noisyEngine[T torus.Unsigned] struct {
	*reference.Engine[T]
}

func (eng noisyEngine[T]) EncryptLweCiphertext(key *reference.LweSecretKey[T], input *reference.Plaintext[T], noise dispersion.DispersionParameter) (*reference.LweCiphertext[T], error) {
	return eng.Engine.EncryptLweCiphertext(key, input, dispersion.Variance(noise.GetVariance()*10000))
}

func TestRun(t *testing.T) {

	t.Run("RejectsWrongNoise", func(t *testing.T) {
		eng := newTestEngine[uint64](t)
		f := NewReferenceLweCiphertextEncryptionFixture(eng)
		f.Engine = noisyEngine[uint64]{eng}
		results, err := f.Run(DefaultConfig())
		require.NoError(t, err)
		require.Len(t, Failed(results), len(results))
		requireNoLiveEntities(t, eng)
	})

	t.Run("Deterministic", func(t *testing.T) {
		config := DefaultConfig()
		config.Samples = 50
		run := func() []Result[LweCiphertextDiscardingKeyswitchParameters] {
			results, err := NewReferenceLweCiphertextDiscardingKeyswitchFixture(newTestEngine[uint64](t)).Run(config)
			require.NoError(t, err)
			return results
		}
		require.Equal(t, run(), run())
	})

	t.Run("Seeds", func(t *testing.T) {
		config := DefaultConfig()
		config.Samples = 50
		results1, err := NewReferenceLweCiphertextDiscardingKeyswitchFixture(newTestEngine[uint64](t)).Run(config)
		require.NoError(t, err)
		config.Seed = []byte("another seed")
		results2, err := NewReferenceLweCiphertextDiscardingKeyswitchFixture(newTestEngine[uint64](t)).Run(config)
		require.NoError(t, err)
		require.NotEqual(t, results1[0].Report.ObservedVariance, results2[0].Report.ObservedVariance)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		config := DefaultConfig()
		config.Samples = 0
		_, err := NewReferenceLweCiphertextEncryptionFixture(newTestEngine[uint64](t)).Run(config)
		require.Error(t, err)
	})

	t.Run("Logger", func(t *testing.T) {
		var sb strings.Builder
		config := DefaultConfig()
		config.Samples = 10
		config.Logger = log.New(&sb, "", 0)
		f := NewReferenceLweCiphertextEncryptionFixture(newTestEngine[uint64](t))
		results, err := f.Run(config)
		require.NoError(t, err)
		require.Equal(t, len(results), strings.Count(sb.String(), "\n"))
		require.Contains(t, sb.String(), "LweCiphertextEncryption/params=0/rep=0")
	})
}

func TestConfig(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		config := DefaultConfig()
		require.NoError(t, config.Validate())
		require.Equal(t, 2, config.Repetitions)
		require.Equal(t, 1000, config.Samples)
		require.Equal(t, DefaultSeed, config.Seed)
	})

	t.Run("Literal", func(t *testing.T) {
		config, err := NewConfigFromLiteral(ConfigLiteral{Samples: 10, Unchecked: true, Seed: "00ff"})
		require.NoError(t, err)
		require.Equal(t, 2, config.Repetitions)
		require.Equal(t, 10, config.Samples)
		require.True(t, config.Unchecked)
		require.Equal(t, []byte{0x00, 0xff}, config.Seed)
		require.Equal(t, 0.0001, config.Significance)
		require.False(t, config.Band)
		require.Equal(t, 1.0, config.MaxExcessBits)

		zero := 0.0
		config, err = NewConfigFromLiteral(ConfigLiteral{Band: true, MaxExcessBits: &zero})
		require.NoError(t, err)
		require.True(t, config.Band)
		require.Zero(t, config.MaxExcessBits)
		require.Equal(t, 3.0, config.MaxDeficitBits)

		_, err = NewConfigFromLiteral(ConfigLiteral{Seed: "not hex"})
		require.Error(t, err)

		_, err = NewConfigFromLiteral(ConfigLiteral{Significance: 1.5})
		require.Error(t, err)
	})

	t.Run("JSON", func(t *testing.T) {
		config := DefaultConfig()
		config.Samples = 42
		config.MaxExcessBits = 2

		data, err := json.Marshal(config)
		require.NoError(t, err)

		logger := log.New(&strings.Builder{}, "", 0)
		decoded := Config{Logger: logger}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, logger, decoded.Logger)
		decoded.Logger = nil
		require.Equal(t, config, decoded)

		require.NoError(t, json.Unmarshal([]byte(`{"MaxDeficitBits": 0, "Band": true}`), &decoded))
		require.Zero(t, decoded.MaxDeficitBits)
		require.Equal(t, 1.0, decoded.MaxExcessBits)
		require.True(t, decoded.Band)

		require.Error(t, json.Unmarshal([]byte(`{"Repetitions": -1}`), &decoded))
	})

	t.Run("Validate", func(t *testing.T) {
		for _, mutate := range []func(*Config){
			func(c *Config) { c.Repetitions = 0 },
			func(c *Config) { c.Samples = -1 },
			func(c *Config) { c.Seed = nil },
			func(c *Config) { c.Significance = 0 },
			func(c *Config) { c.MaxDeficitBits = -1 },
		} {
			config := DefaultConfig()
			mutate(&config)
			require.Error(t, config.Validate())
		}
	})
}

// failingEngine fails every negation with a backend error.
type failingEngine[T torus.Unsigned] struct {
	*reference.Engine[T]
}

var errFailingEngine = errors.New("negation failed")

func (eng failingEngine[T]) DiscardNegLweCiphertext(output, input *reference.LweCiphertext[T]) error {
	return engine.LweCiphertextDiscardingNegationErrors.Engine(errFailingEngine)
}

func TestRunCleansUpOnError(t *testing.T) {
	eng := newTestEngine[uint32](t)
	f := NewReferenceLweCiphertextDiscardingNegationFixture(eng)
	f.Engine = failingEngine[uint32]{eng}
	_, err := f.Run(DefaultConfig())
	require.ErrorIs(t, err, errFailingEngine)
	require.True(t, engine.LweCiphertextDiscardingNegationErrors.Contains(err))
	requireNoLiveEntities(t, eng)
}
