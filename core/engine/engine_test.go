package engine

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
)

type stubLwe struct {
	distribution entity.KeyDistribution
	dimension    parameters.LweDimension
}

func (*stubLwe) Kind() entity.Kind                         { return entity.LweCiphertextKind }
func (s *stubLwe) KeyDistribution() entity.KeyDistribution { return s.distribution }
func (*stubLwe) Precision() entity.Precision               { return entity.Precision64{} }
func (s *stubLwe) LweDimension() parameters.LweDimension   { return s.dimension }

type stubGlwe struct {
	distribution entity.KeyDistribution
	dimension    parameters.GlweDimension
	size         parameters.PolynomialSize
}

func (*stubGlwe) Kind() entity.Kind                           { return entity.GlweCiphertextKind }
func (s *stubGlwe) KeyDistribution() entity.KeyDistribution   { return s.distribution }
func (*stubGlwe) Precision() entity.Precision                 { return entity.Precision32{} }
func (s *stubGlwe) GlweDimension() parameters.GlweDimension   { return s.dimension }
func (s *stubGlwe) PolynomialSize() parameters.PolynomialSize { return s.size }

type stubKeyswitchKey struct {
	input, output       entity.KeyDistribution
	inputDim, outputDim parameters.LweDimension
}

func (*stubKeyswitchKey) Kind() entity.Kind                                     { return entity.LweKeyswitchKeyKind }
func (s *stubKeyswitchKey) KeyDistribution() entity.KeyDistribution             { return s.output }
func (*stubKeyswitchKey) Precision() entity.Precision                           { return entity.Precision64{} }
func (s *stubKeyswitchKey) InputKeyDistribution() entity.KeyDistribution        { return s.input }
func (s *stubKeyswitchKey) OutputKeyDistribution() entity.KeyDistribution       { return s.output }
func (s *stubKeyswitchKey) InputLweDimension() parameters.LweDimension          { return s.inputDim }
func (s *stubKeyswitchKey) OutputLweDimension() parameters.LweDimension         { return s.outputDim }
func (*stubKeyswitchKey) DecompositionBaseLog() parameters.DecompositionBaseLog { return 4 }
func (*stubKeyswitchKey) DecompositionLevelCount() parameters.DecompositionLevelCount {
	return 3
}

func TestErrorSet(t *testing.T) {

	set := NewErrorSet("TestOperation",
		KindSpec{"First", "The first precondition."},
		KindSpec{"Second", "The second precondition."},
	)
	first, second := set.Kind("First"), set.Kind("Second")

	t.Run("Kinds", func(t *testing.T) {
		require.Equal(t, "TestOperation", set.Operation())
		require.Equal(t, []*ErrorKind{first, second}, set.Kinds())
		require.Equal(t, "TestOperation", first.Operation())
		require.Equal(t, "First", first.Name())
		require.Equal(t, "The first precondition.", first.Message())
	})

	t.Run("New", func(t *testing.T) {
		err := set.New(first)
		require.ErrorIs(t, err, first)
		require.NotErrorIs(t, err, second)
		require.True(t, set.Contains(err))
		require.False(t, LweCiphertextDiscardingNegationErrors.Contains(err))
		require.Equal(t, "TestOperation: The first precondition.", err.Error())

		var e *Error
		require.True(t, errors.As(err, &e))
		require.False(t, e.IsEngineError())

		wrapped := fmt.Errorf("cannot do: %w", err)
		require.ErrorIs(t, wrapped, first)
		require.True(t, set.Contains(wrapped))
	})

	t.Run("Engine", func(t *testing.T) {
		require.NoError(t, set.Engine(nil))

		cause := errors.New("backend failure")
		err := set.Engine(cause)
		require.ErrorIs(t, err, cause)
		require.NotErrorIs(t, err, first)
		require.True(t, set.Contains(err))
		require.Contains(t, err.Error(), "engine error: backend failure")

		var e *Error
		require.True(t, errors.As(err, &e))
		require.True(t, e.IsEngineError())
	})

	t.Run("Panics", func(t *testing.T) {
		require.Panics(t, func() { set.New(ErrNegationKeyDistributionMismatch) })
		require.Panics(t, func() { set.Kind("Third") })
		require.Panics(t, func() {
			NewErrorSet("Duplicate", KindSpec{"A", "a"}, KindSpec{"A", "b"})
		})
	})

	t.Run("Kinds/Identity", func(t *testing.T) {
		// kinds of different operations never match, even with the same name
		require.Equal(t, ErrNegationKeyDistributionMismatch.Name(), ErrAdditionKeyDistributionMismatch.Name())
		require.NotErrorIs(t, LweCiphertextDiscardingNegationErrors.New(ErrNegationKeyDistributionMismatch), ErrAdditionKeyDistributionMismatch)
	})
}

func TestChecks(t *testing.T) {

	t.Run("LweCiphertextDiscardingNegation", func(t *testing.T) {
		require.NoError(t, CheckLweCiphertextDiscardingNegation(&stubLwe{entity.Binary, 10}, &stubLwe{entity.Binary, 10}))
		// the key distribution is checked before the dimension
		err := CheckLweCiphertextDiscardingNegation(&stubLwe{entity.Binary, 10}, &stubLwe{entity.Ternary, 11})
		require.ErrorIs(t, err, ErrNegationKeyDistributionMismatch)
		err = CheckLweCiphertextDiscardingNegation(&stubLwe{entity.Binary, 10}, &stubLwe{entity.Binary, 11})
		require.ErrorIs(t, err, ErrNegationLweDimensionMismatch)
		require.True(t, LweCiphertextDiscardingNegationErrors.Contains(err))
	})

	t.Run("LweCiphertextDiscardingAddition", func(t *testing.T) {
		out := &stubLwe{entity.Ternary, 10}
		require.NoError(t, CheckLweCiphertextDiscardingAddition(out, &stubLwe{entity.Ternary, 10}, &stubLwe{entity.Ternary, 10}))
		require.ErrorIs(t, CheckLweCiphertextDiscardingAddition(out, &stubLwe{entity.Ternary, 10}, &stubLwe{entity.Binary, 10}), ErrAdditionKeyDistributionMismatch)
		require.ErrorIs(t, CheckLweCiphertextDiscardingAddition(out, &stubLwe{entity.Ternary, 9}, &stubLwe{entity.Ternary, 10}), ErrAdditionLweDimensionMismatch)
	})

	t.Run("LweCiphertextDiscardingCleartextMultiplication", func(t *testing.T) {
		require.NoError(t, CheckLweCiphertextDiscardingCleartextMultiplication(&stubLwe{entity.Gaussian, 4}, &stubLwe{entity.Gaussian, 4}))
		require.ErrorIs(t, CheckLweCiphertextDiscardingCleartextMultiplication(&stubLwe{entity.Gaussian, 4}, &stubLwe{entity.Binary, 4}), ErrCleartextMultiplicationKeyDistributionMismatch)
		require.ErrorIs(t, CheckLweCiphertextDiscardingCleartextMultiplication(&stubLwe{entity.Gaussian, 4}, &stubLwe{entity.Gaussian, 5}), ErrCleartextMultiplicationLweDimensionMismatch)
	})

	t.Run("LweCiphertextDiscardingKeyswitch", func(t *testing.T) {
		ksk := &stubKeyswitchKey{input: entity.Ternary, output: entity.Binary, inputDim: 200, outputDim: 100}
		input := &stubLwe{entity.Ternary, 200}
		output := &stubLwe{entity.Binary, 100}
		require.NoError(t, CheckLweCiphertextDiscardingKeyswitch(output, input, ksk))

		testCases := []struct {
			name   string
			output *stubLwe
			input  *stubLwe
			kind   *ErrorKind
		}{
			{"InputKeyDistribution", &stubLwe{entity.Gaussian, 99}, &stubLwe{entity.Binary, 199}, ErrKeyswitchInputKeyDistributionMismatch},
			{"InputLweDimension", &stubLwe{entity.Gaussian, 99}, &stubLwe{entity.Ternary, 199}, ErrKeyswitchInputLweDimensionMismatch},
			{"OutputKeyDistribution", &stubLwe{entity.Gaussian, 99}, input, ErrKeyswitchOutputKeyDistributionMismatch},
			{"OutputLweDimension", &stubLwe{entity.Binary, 99}, input, ErrKeyswitchOutputLweDimensionMismatch},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				err := CheckLweCiphertextDiscardingKeyswitch(tc.output, tc.input, ksk)
				require.ErrorIs(t, err, tc.kind)
				for _, other := range LweCiphertextDiscardingKeyswitchErrors.Kinds() {
					if other != tc.kind {
						require.NotErrorIs(t, err, other)
					}
				}
			})
		}
	})

	t.Run("GlweCiphertextTensorProduct", func(t *testing.T) {
		require.NoError(t, CheckGlweCiphertextTensorProduct(&stubGlwe{entity.Binary, 2, 256}, &stubGlwe{entity.Binary, 2, 256}))
		require.ErrorIs(t, CheckGlweCiphertextTensorProduct(&stubGlwe{entity.Binary, 2, 256}, &stubGlwe{entity.Ternary, 1, 128}), ErrTensorProductKeyDistributionMismatch)
		require.ErrorIs(t, CheckGlweCiphertextTensorProduct(&stubGlwe{entity.Binary, 2, 256}, &stubGlwe{entity.Binary, 1, 128}), ErrTensorProductGlweDimensionMismatch)
		require.ErrorIs(t, CheckGlweCiphertextTensorProduct(&stubGlwe{entity.Binary, 2, 256}, &stubGlwe{entity.Binary, 2, 128}), ErrTensorProductPolynomialSizeMismatch)
	})

	t.Run("Decomposition", func(t *testing.T) {
		require.NoError(t, CheckLweKeyswitchKeyGeneration(8, 4, entity.Precision32{}))
		require.NoError(t, CheckLweKeyswitchKeyGeneration(16, 4, entity.Precision64{}))
		require.ErrorIs(t, CheckLweKeyswitchKeyGeneration(0, 4, entity.Precision64{}), ErrKeyswitchKeyGenerationNullDecompositionBaseLog)
		require.ErrorIs(t, CheckLweKeyswitchKeyGeneration(4, 0, entity.Precision64{}), ErrKeyswitchKeyGenerationNullDecompositionLevelCount)
		require.ErrorIs(t, CheckLweKeyswitchKeyGeneration(8, 5, entity.Precision32{}), ErrKeyswitchKeyGenerationDecompositionTooLarge)

		key := &stubGlwe{entity.Binary, 1, 16}
		require.NoError(t, CheckGgswCiphertextScalarEncryption(key, 4, 8))
		require.ErrorIs(t, CheckGgswCiphertextScalarEncryption(key, 4, 9), ErrGgswEncryptionDecompositionTooLarge)
		require.ErrorIs(t, CheckGgswCiphertextScalarEncryption(key, -1, 2), ErrGgswEncryptionNullDecompositionBaseLog)
	})

	t.Run("Creation", func(t *testing.T) {
		require.NoError(t, CheckCleartextCreation(uint64(3)))
		require.NoError(t, CheckCleartextCreation(0.5))
		require.ErrorIs(t, CheckCleartextCreation(math.NaN()), ErrCleartextCreationNonFiniteValue)
		require.ErrorIs(t, CheckCleartextCreation(math.Inf(-1)), ErrCleartextCreationNonFiniteValue)

		require.NoError(t, CheckPlaintextVectorCreation([]uint32{1}))
		require.ErrorIs(t, CheckPlaintextVectorCreation([]uint32{}), ErrPlaintextVectorCreationNullPlaintextCount)

		require.ErrorIs(t, CheckLweSecretKeyGeneration(0), ErrLweSecretKeyGenerationNullLweDimension)
		require.ErrorIs(t, CheckGlweSecretKeyGeneration(0, 16), ErrGlweSecretKeyGenerationNullGlweDimension)
		require.ErrorIs(t, CheckGlweSecretKeyGeneration(1, 0), ErrGlweSecretKeyGenerationNullPolynomialSize)
	})
}
