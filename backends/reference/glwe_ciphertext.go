package reference

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// encryptGlwe samples uniform masks and sets body = sum_i masks[i] * key[i] + m + e.
func (eng *Engine[T]) encryptGlwe(key [][]T, masks [][]T, body, m []T, noise dispersion.DispersionParameter) {
	copy(body, m)
	eng.sampler.ReadGaussianThenAdd(body, noise.GetStandardDev())
	for i := range masks {
		eng.sampler.ReadUniform(masks[i])
		torus.MulNegacyclicThenAdd(masks[i], key[i], body)
	}
}

func newGlwe[T torus.Unsigned](k, n int) (masks [][]T, body []T) {
	masks = make([][]T, k)
	for i := range masks {
		masks[i] = make([]T, n)
	}
	return masks, make([]T, n)
}

// EncryptGlweCiphertext returns a new GLWE encryption of the plaintext vector.
func (eng *Engine[T]) EncryptGlweCiphertext(key *GlweSecretKey[T], input *PlaintextVector[T], noise dispersion.DispersionParameter) (*GlweCiphertext[T], error) {
	if err := engine.CheckGlweCiphertextEncryption(key, input); err != nil {
		return nil, err
	}
	if err := eng.alive(key, input); err != nil {
		return nil, engine.GlweCiphertextEncryptionErrors.Engine(err)
	}
	return eng.EncryptGlweCiphertextUnchecked(key, input, noise), nil
}

// EncryptGlweCiphertextUnchecked returns a new GLWE encryption of the plaintext vector.
func (eng *Engine[T]) EncryptGlweCiphertextUnchecked(key *GlweSecretKey[T], input *PlaintextVector[T], noise dispersion.DispersionParameter) *GlweCiphertext[T] {
	ct := &GlweCiphertext[T]{handle: eng.register(entity.GlweCiphertextKind), distribution: key.distribution}
	ct.masks, ct.body = newGlwe[T](int(key.GlweDimension()), int(key.PolynomialSize()))
	eng.encryptGlwe(key.polynomials, ct.masks, ct.body, input.values, noise)
	return ct
}

// DecryptGlweCiphertext returns the noisy plaintext vector B - sum_i A_i * S_i.
func (eng *Engine[T]) DecryptGlweCiphertext(key *GlweSecretKey[T], input *GlweCiphertext[T]) (*PlaintextVector[T], error) {
	if err := engine.CheckGlweCiphertextDecryption(key, input); err != nil {
		return nil, err
	}
	if err := eng.alive(key, input); err != nil {
		return nil, engine.GlweCiphertextDecryptionErrors.Engine(err)
	}
	return eng.DecryptGlweCiphertextUnchecked(key, input), nil
}

// DecryptGlweCiphertextUnchecked returns the noisy plaintext vector B - sum_i A_i * S_i.
func (eng *Engine[T]) DecryptGlweCiphertextUnchecked(key *GlweSecretKey[T], input *GlweCiphertext[T]) *PlaintextVector[T] {
	values := append([]T{}, input.body...)
	for i := range input.masks {
		torus.MulNegacyclicThenSub(input.masks[i], key.polynomials[i], values)
	}
	return &PlaintextVector[T]{handle: eng.register(entity.PlaintextVectorKind), values: values}
}

// EncryptScalarGgswCiphertext returns a new GGSW encryption of the plaintext.
func (eng *Engine[T]) EncryptScalarGgswCiphertext(key *GlweSecretKey[T], input *Plaintext[T], noise dispersion.DispersionParameter, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) (*GgswCiphertext[T], error) {
	if err := engine.CheckGgswCiphertextScalarEncryption(key, baseLog, levels); err != nil {
		return nil, err
	}
	if err := eng.alive(key, input); err != nil {
		return nil, engine.GgswCiphertextScalarEncryptionErrors.Engine(err)
	}
	return eng.EncryptScalarGgswCiphertextUnchecked(key, input, noise, baseLog, levels), nil
}

// EncryptScalarGgswCiphertextUnchecked returns a new GGSW encryption of the plaintext. The row
// (i, j) encrypts -m * q/B^(j+1) * S_i for i < k, and m * q/B^(j+1) for i = k.
func (eng *Engine[T]) EncryptScalarGgswCiphertextUnchecked(key *GlweSecretKey[T], input *Plaintext[T], noise dispersion.DispersionParameter, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) *GgswCiphertext[T] {

	k, n := int(key.GlweDimension()), int(key.PolynomialSize())

	ct := &GgswCiphertext[T]{
		handle:       eng.register(entity.GgswCiphertextKind),
		distribution: key.distribution,
		baseLog:      baseLog,
		levels:       levels,
		rows:         make([]glwe[T], (k+1)*int(levels)),
	}

	m := make([]T, n)
	for i := 0; i <= k; i++ {
		for j := 0; j < int(levels); j++ {
			g := torus.GadgetValue(input.value, int(baseLog), j+1)
			if i < k {
				torus.MulScalar(key.polynomials[i], -g, m)
			} else {
				for c := range m {
					m[c] = 0
				}
				m[0] = g
			}
			row := &ct.rows[i*int(levels)+j]
			row.masks, row.body = newGlwe[T](k, n)
			eng.encryptGlwe(key.polynomials, row.masks, row.body, m, noise)
		}
	}

	return ct
}
