package reference

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

func testString[T torus.Unsigned](opname string) string {
	return fmt.Sprintf("%s/Precision=%s", opname, entity.PrecisionOf[T]())
}

func newTestEngine[T torus.Unsigned](t *testing.T) *Engine[T] {
	eng, err := NewEngine[T]([]byte("reference_test"))
	require.NoError(t, err)
	return eng
}

func requireNoLiveEntities[T torus.Unsigned](t *testing.T, eng *Engine[T]) {
	n, byKind := eng.LiveEntities()
	require.Zero(t, n, "live entities: %v", byKind)
}

func TestReference(t *testing.T) {
	testEngine[uint32](t)
	testEngine[uint64](t)
	testLweCiphertext[uint32](t)
	testLweCiphertext[uint64](t)
	testKeyswitch[uint32](t)
	testKeyswitch[uint64](t)
	testGlweCiphertext[uint32](t)
	testGlweCiphertext[uint64](t)
	testTensorProduct[uint32](t)
	testTensorProduct[uint64](t)
}

func testEngine[T torus.Unsigned](t *testing.T) {

	t.Run(testString[T]("Engine/Seed"), func(t *testing.T) {
		_, err := NewEngine[T](make([]byte, 65))
		require.Error(t, err)
	})

	t.Run(testString[T]("Engine/Deterministic"), func(t *testing.T) {
		eng1, eng2 := newTestEngine[T](t), newTestEngine[T](t)
		sk1 := eng1.GenerateNewLweSecretKeyUnchecked(64, entity.Ternary)
		sk2 := eng2.GenerateNewLweSecretKeyUnchecked(64, entity.Ternary)
		require.Equal(t, eng1.RetrieveLweSecretKeyContainer(sk1), eng2.RetrieveLweSecretKeyContainer(sk2))
	})

	t.Run(testString[T]("Engine/Destruction"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		cleartexts := NewCleartextEngine[float64](eng)

		pt, err := eng.CreatePlaintext(3)
		require.NoError(t, err)
		scale, err := cleartexts.CreateCleartext(0.5)
		require.NoError(t, err)

		n, byKind := eng.LiveEntities()
		require.Equal(t, 2, n)
		require.Equal(t, 1, byKind[entity.CleartextKind])
		require.Equal(t, 1, byKind[entity.PlaintextKind])

		require.NoError(t, eng.Destroy(pt))
		require.NoError(t, cleartexts.Destroy(scale))
		requireNoLiveEntities(t, eng)

		err = eng.Destroy(pt)
		require.ErrorIs(t, err, ErrDestroyedEntity)
		require.True(t, engine.DestructionErrors.Contains(err))

		_, err = eng.RetrievePlaintext(pt)
		require.ErrorIs(t, err, ErrDestroyedEntity)
		require.True(t, engine.PlaintextRetrievalErrors.Contains(err))
	})

	t.Run(testString[T]("Engine/Creation"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		cleartexts := NewCleartextEngine[float64](eng)

		_, err := cleartexts.CreateCleartext(math.NaN())
		require.ErrorIs(t, err, engine.ErrCleartextCreationNonFiniteValue)

		_, err = eng.CreatePlaintextVector(nil)
		require.ErrorIs(t, err, engine.ErrPlaintextVectorCreationNullPlaintextCount)

		values := []T{1, 2, 3}
		pv, err := eng.CreatePlaintextVector(values)
		require.NoError(t, err)
		values[0] = 7
		retrieved, err := eng.RetrievePlaintextVector(pv)
		require.NoError(t, err)
		require.Equal(t, []T{1, 2, 3}, retrieved)
		require.Equal(t, parameters.PlaintextCount(3), pv.PlaintextCount())

		_, err = eng.GenerateNewLweSecretKey(0, entity.Binary)
		require.ErrorIs(t, err, engine.ErrLweSecretKeyGenerationNullLweDimension)
		_, err = eng.GenerateNewGlweSecretKey(1, 0, entity.Binary)
		require.ErrorIs(t, err, engine.ErrGlweSecretKeyGenerationNullPolynomialSize)

		require.NoError(t, eng.Destroy(pv))
		requireNoLiveEntities(t, eng)
	})
}

func testLweCiphertext[T torus.Unsigned](t *testing.T) {

	noise := dispersion.Variance(0.0000000001)

	t.Run(testString[T]("LweCiphertext/Encryption"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		for _, distribution := range entity.KeyDistributions {
			sk, err := eng.GenerateNewLweSecretKey(100, distribution)
			require.NoError(t, err)
			pt := eng.CreatePlaintextUnchecked(torus.Delta[T](8) * 3)

			ct, err := eng.EncryptLweCiphertext(sk, pt, noise)
			require.NoError(t, err)
			require.Equal(t, distribution, ct.KeyDistribution())
			require.Equal(t, parameters.LweDimension(100), ct.LweDimension())

			decrypted, err := eng.DecryptLweCiphertext(sk, ct)
			require.NoError(t, err)
			require.InDelta(t, 0, torus.Distance(decrypted.value, pt.value), 1e-3)

			require.NoError(t, eng.DiscardEncryptLweCiphertext(sk, ct, eng.CreatePlaintextUnchecked(0), dispersion.Variance(0)))
			require.Zero(t, eng.DecryptLweCiphertextUnchecked(sk, ct).value)
		}
	})

	t.Run(testString[T]("LweCiphertext/Negation"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		sk := eng.GenerateNewLweSecretKeyUnchecked(32, entity.Binary)
		input := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(5), noise)
		checked := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(0), noise)
		unchecked := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(0), noise)

		require.NoError(t, eng.DiscardNegLweCiphertext(checked, input))
		eng.DiscardNegLweCiphertextUnchecked(unchecked, input)
		require.Equal(t, checked.mask, unchecked.mask)
		require.Equal(t, checked.body, unchecked.body)

		// negation is an involution
		eng.DiscardNegLweCiphertextUnchecked(unchecked, checked)
		require.Equal(t, input.mask, unchecked.mask)
		require.Equal(t, input.body, unchecked.body)

		mismatch := eng.CreateLweCiphertextFromContainer(entity.Binary, make([]T, 31), 42)
		err := eng.DiscardNegLweCiphertext(mismatch, input)
		require.ErrorIs(t, err, engine.ErrNegationLweDimensionMismatch)
		require.Equal(t, T(42), mismatch.body)
		require.Equal(t, make([]T, 31), mismatch.mask)

		other := eng.CreateLweCiphertextFromContainer(entity.Ternary, make([]T, 32), 42)
		require.ErrorIs(t, eng.DiscardNegLweCiphertext(other, input), engine.ErrNegationKeyDistributionMismatch)
		require.Equal(t, T(42), other.body)

		require.NoError(t, eng.Destroy(input))
		err = eng.DiscardNegLweCiphertext(checked, input)
		require.ErrorIs(t, err, ErrDestroyedEntity)
		require.True(t, engine.LweCiphertextDiscardingNegationErrors.Contains(err))
	})

	t.Run(testString[T]("LweCiphertext/Addition"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		sk := eng.GenerateNewLweSecretKeyUnchecked(64, entity.Gaussian)
		delta := torus.Delta[T](16)
		ct1 := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(3*delta), noise)
		ct2 := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(5*delta), noise)
		output := eng.CreateLweCiphertextFromContainer(entity.Gaussian, make([]T, 64), 0)

		require.NoError(t, eng.DiscardAddLweCiphertext(output, ct1, ct2))
		decrypted := eng.DecryptLweCiphertextUnchecked(sk, output)
		require.InDelta(t, 0, torus.Distance(decrypted.value, 8*delta), 1e-3)

		// the output may alias an input
		require.NoError(t, eng.DiscardAddLweCiphertext(ct1, ct1, ct2))
		require.Equal(t, output.mask, ct1.mask)
		require.Equal(t, output.body, ct1.body)

		short := eng.CreateLweCiphertextFromContainer(entity.Gaussian, make([]T, 63), 0)
		require.ErrorIs(t, eng.DiscardAddLweCiphertext(output, ct1, short), engine.ErrAdditionLweDimensionMismatch)
	})

	t.Run(testString[T]("LweCiphertext/CleartextMultiplication"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		cleartexts := NewCleartextEngine[T](eng)
		sk := eng.GenerateNewLweSecretKeyUnchecked(64, entity.Ternary)
		delta := torus.Delta[T](64)
		ct := eng.EncryptLweCiphertextUnchecked(sk, eng.CreatePlaintextUnchecked(3*delta), noise)
		c, err := cleartexts.CreateCleartext(torus.FromSigned[T](-2))
		require.NoError(t, err)
		output := eng.CreateLweCiphertextFromContainer(entity.Ternary, make([]T, 64), 0)

		require.NoError(t, eng.DiscardMulLweCiphertextCleartext(output, ct, c))
		decrypted := eng.DecryptLweCiphertextUnchecked(sk, output)
		require.InDelta(t, 0, torus.Distance(decrypted.value, torus.FromSigned[T](-6)*delta), 1e-3)

		wrong := eng.CreateLweCiphertextFromContainer(entity.Binary, make([]T, 64), 0)
		require.ErrorIs(t, eng.DiscardMulLweCiphertextCleartext(wrong, ct, c), engine.ErrCleartextMultiplicationKeyDistributionMismatch)
	})
}

func testKeyswitch[T torus.Unsigned](t *testing.T) {

	t.Run(testString[T]("LweCiphertext/Keyswitch"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		in := eng.GenerateNewLweSecretKeyUnchecked(64, entity.Binary)
		out := eng.GenerateNewLweSecretKeyUnchecked(32, entity.Ternary)

		_, err := eng.GenerateNewLweKeyswitchKey(in, out, 8, 5, dispersion.Variance(0))
		if torus.Bits[T]() == 32 {
			require.ErrorIs(t, err, engine.ErrKeyswitchKeyGenerationDecompositionTooLarge)
		} else {
			require.NoError(t, err)
		}

		ksk, err := eng.GenerateNewLweKeyswitchKey(in, out, 4, 4, dispersion.Variance(0))
		require.NoError(t, err)
		require.Equal(t, entity.Binary, ksk.InputKeyDistribution())
		require.Equal(t, entity.Ternary, ksk.OutputKeyDistribution())
		require.Equal(t, parameters.LweDimension(64), ksk.InputLweDimension())
		require.Equal(t, parameters.LweDimension(32), ksk.OutputLweDimension())

		delta := torus.Delta[T](16)
		input := eng.EncryptLweCiphertextUnchecked(in, eng.CreatePlaintextUnchecked(5*delta), dispersion.Variance(0))
		output := eng.CreateLweCiphertextFromContainer(entity.Ternary, make([]T, 32), 0)
		require.NoError(t, eng.DiscardKeyswitchLweCiphertext(output, input, ksk))

		// without noise, the error is the decomposition error of the 16 most significant bits
		decrypted := eng.DecryptLweCiphertextUnchecked(out, output)
		require.InDelta(t, 0, torus.Distance(decrypted.value, 5*delta), 64*math.Exp2(-16))

		unchecked := eng.CreateLweCiphertextFromContainer(entity.Ternary, make([]T, 32), 0)
		eng.DiscardKeyswitchLweCiphertextUnchecked(unchecked, input, ksk)
		require.Equal(t, output.mask, unchecked.mask)
		require.Equal(t, output.body, unchecked.body)

		// the output may alias the input when both keys have the same dimension and distribution
		square, err := eng.GenerateNewLweKeyswitchKey(in, in, 4, 8, dispersion.Variance(0))
		require.NoError(t, err)
		separate := eng.CreateLweCiphertextFromContainer(entity.Binary, make([]T, 64), 0)
		require.NoError(t, eng.DiscardKeyswitchLweCiphertext(separate, input, square))
		aliased := eng.CreateLweCiphertextFromContainer(entity.Binary, append([]T{}, input.mask...), input.body)
		require.NoError(t, eng.DiscardKeyswitchLweCiphertext(aliased, aliased, square))
		require.Equal(t, separate.mask, aliased.mask)
		require.Equal(t, separate.body, aliased.body)
		decrypted = eng.DecryptLweCiphertextUnchecked(in, aliased)
		require.InDelta(t, 0, torus.Distance(decrypted.value, 5*delta), 64*math.Exp2(-32))

		wrongInput := eng.CreateLweCiphertextFromContainer(entity.Binary, make([]T, 63), 0)
		err = eng.DiscardKeyswitchLweCiphertext(output, wrongInput, ksk)
		require.ErrorIs(t, err, engine.ErrKeyswitchInputLweDimensionMismatch)
		require.True(t, engine.LweCiphertextDiscardingKeyswitchErrors.Contains(err))

		wrongOutput := eng.CreateLweCiphertextFromContainer(entity.Binary, make([]T, 32), 0)
		require.ErrorIs(t, eng.DiscardKeyswitchLweCiphertext(wrongOutput, input, ksk), engine.ErrKeyswitchOutputKeyDistributionMismatch)
	})
}

func testGlweCiphertext[T torus.Unsigned](t *testing.T) {

	noise := dispersion.Variance(0.0000000001)

	t.Run(testString[T]("GlweCiphertext/Encryption"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		sk, err := eng.GenerateNewGlweSecretKey(2, 32, entity.Ternary)
		require.NoError(t, err)

		values := make([]T, 32)
		for i := range values {
			values[i] = torus.Delta[T](32) * T(i)
		}
		pt := eng.CreatePlaintextVectorUnchecked(values)
		ct, err := eng.EncryptGlweCiphertext(sk, pt, noise)
		require.NoError(t, err)
		require.Equal(t, parameters.GlweDimension(2), ct.GlweDimension())
		require.Equal(t, parameters.PolynomialSize(32), ct.PolynomialSize())

		decrypted, err := eng.DecryptGlweCiphertext(sk, ct)
		require.NoError(t, err)
		for _, d := range torus.Distances(decrypted.values, values) {
			require.InDelta(t, 0, d, 1e-3)
		}

		short := eng.CreatePlaintextVectorUnchecked(values[:16])
		_, err = eng.EncryptGlweCiphertext(sk, short, noise)
		require.ErrorIs(t, err, engine.ErrGlweEncryptionPlaintextCountMismatch)

		other := eng.GenerateNewGlweSecretKeyUnchecked(1, 32, entity.Ternary)
		_, err = eng.DecryptGlweCiphertext(other, ct)
		require.ErrorIs(t, err, engine.ErrGlweDecryptionGlweDimensionMismatch)
	})

	t.Run(testString[T]("GgswCiphertext/ScalarEncryption"), func(t *testing.T) {
		eng := newTestEngine[T](t)
		sk := eng.GenerateNewGlweSecretKeyUnchecked(1, 16, entity.Binary)
		pt := eng.CreatePlaintextUnchecked(torus.FromSigned[T](-2))

		_, err := eng.EncryptScalarGgswCiphertext(sk, pt, noise, 0, 2)
		require.ErrorIs(t, err, engine.ErrGgswEncryptionNullDecompositionBaseLog)

		ct, err := eng.EncryptScalarGgswCiphertext(sk, pt, noise, 4, 3)
		require.NoError(t, err)
		require.Equal(t, parameters.DecompositionBaseLog(4), ct.DecompositionBaseLog())
		require.Equal(t, parameters.DecompositionLevelCount(3), ct.DecompositionLevelCount())

		masks, bodies := eng.RetrieveGgswCiphertextContainer(ct)
		require.Len(t, bodies, 6)
		key := eng.RetrieveGlweSecretKeyContainer(sk)

		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				row := eng.CreateGlweCiphertextFromContainer(entity.Binary, masks[i*3+j], bodies[i*3+j])
				decrypted := eng.DecryptGlweCiphertextUnchecked(sk, row)
				g := torus.GadgetValue(pt.value, 4, j+1)
				expected := make([]T, 16)
				if i == 0 {
					torus.MulScalar(key[0], -g, expected)
				} else {
					expected[0] = g
				}
				for _, d := range torus.Distances(decrypted.values, expected) {
					require.InDelta(t, 0, d, 1e-3)
				}
			}
		}
	})
}

func testTensorProduct[T torus.Unsigned](t *testing.T) {

	// polynomials larger than torus.MaxFourierPolynomialSize are multiplied without a Fourier
	for _, kn := range [][2]int{{1, 16}, {2, 16}, {1, 2 * torus.MaxFourierPolynomialSize}} {

		k, n := kn[0], kn[1]

		t.Run(testString[T](fmt.Sprintf("GlweCiphertext/TensorProduct/k=%d/N=%d", k, n)), func(t *testing.T) {

			if n > torus.MaxFourierPolynomialSize && testing.Short() {
				t.Skip("skipped in -short mode")
			}

			eng := newTestEngine[T](t)
			cleartexts := NewCleartextEngine[float64](eng)
			sk := eng.GenerateNewGlweSecretKeyUnchecked(parameters.GlweDimension(k), parameters.PolynomialSize(n), entity.Binary)

			m1 := make([]int64, n)
			m2 := make([]int64, n)
			for i := range m1 {
				m1[i] = int64(i%5) - 2
				m2[i] = 1 - int64(i%3)
			}
			delta := torus.Delta[T](16)
			encode := func(m []int64) *PlaintextVector[T] {
				values := make([]T, n)
				for i := range m {
					values[i] = torus.FromSigned[T](m[i]) * delta
				}
				return eng.CreatePlaintextVectorUnchecked(values)
			}

			ct1 := eng.EncryptGlweCiphertextUnchecked(sk, encode(m1), dispersion.Variance(0))
			ct2 := eng.EncryptGlweCiphertextUnchecked(sk, encode(m2), dispersion.Variance(0))
			scale, err := cleartexts.CreateCleartext(math.Ldexp(1, 4-torus.Bits[T]()))
			require.NoError(t, err)

			output, err := eng.TensorProductGlweCiphertext(ct1, ct2, scale)
			require.NoError(t, err)
			require.Equal(t, parameters.GlweDimension(k).TensorDimension(), output.GlweDimension())
			require.Equal(t, entity.Binary, output.KeyDistribution())

			key := eng.RetrieveGlweSecretKeyContainer(sk)
			tensor := append([][]T{}, key...)
			for i := 0; i < k; i++ {
				tensor = append(tensor, torus.MulNegacyclic(key[i], key[i]))
			}
			for i := 0; i < k; i++ {
				for j := i + 1; j < k; j++ {
					tensor = append(tensor, torus.MulNegacyclic(key[i], key[j]))
				}
			}
			tensorKey := eng.CreateGlweSecretKeyFromContainer(entity.Binary, tensor)

			decrypted, err := eng.DecryptGlweCiphertext(tensorKey, output)
			require.NoError(t, err)

			// rounding errors of the output, weighted by the coefficients of the tensored key
			tolerance := float64(k*(k+3)*n*n) * math.Exp2(-float64(torus.Bits[T]()))
			product := torus.MulNegacyclicInt64(m1, m2)
			for i := range product {
				expected := torus.FromSigned[T](product[i]) * delta
				require.InDelta(t, 0, torus.Distance(decrypted.values[i], expected), tolerance)
			}

			unchecked := eng.TensorProductGlweCiphertextUnchecked(ct1, ct2, scale)
			require.Equal(t, output.masks, unchecked.masks)
			require.Equal(t, output.body, unchecked.body)

			unsupported := cleartexts.CreateCleartextUnchecked(3)
			_, err = eng.TensorProductGlweCiphertext(ct1, ct2, unsupported)
			require.ErrorIs(t, err, ErrUnsupportedScale)
			require.True(t, engine.GlweCiphertextTensorProductErrors.Contains(err))

			other := eng.EncryptGlweCiphertextUnchecked(eng.GenerateNewGlweSecretKeyUnchecked(parameters.GlweDimension(k), 8, entity.Binary),
				eng.CreatePlaintextVectorUnchecked(make([]T, 8)), dispersion.Variance(0))
			_, err = eng.TensorProductGlweCiphertext(ct1, other, scale)
			require.ErrorIs(t, err, engine.ErrTensorProductPolynomialSizeMismatch)
		})
	}

	t.Run("LogScale", func(t *testing.T) {
		for _, tc := range []struct {
			scale float64
			log   int
			ok    bool
		}{
			{1, 0, true},
			{0.5, -1, true},
			{0x1p-60, -60, true},
			{0x1p64, 64, true},
			{0x1p-65, 0, false},
			{3, 0, false},
			{0, 0, false},
			{-0.5, 0, false},
			{math.Inf(1), 0, false},
		} {
			log, ok := logScale(tc.scale)
			require.Equal(t, tc.ok, ok, tc.scale)
			require.Equal(t, tc.log, log, tc.scale)
		}
	})
}
