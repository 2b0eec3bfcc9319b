package reference

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/torus"
)

// encryptLwe samples a uniform mask in mask and returns the body <mask, key> + m + e.
func (eng *Engine[T]) encryptLwe(key, mask []T, m T, noise dispersion.DispersionParameter) T {
	eng.sampler.ReadUniform(mask)
	return torus.Dot(mask, key) + m + eng.sampler.Gaussian(noise.GetStandardDev())
}

// EncryptLweCiphertext returns a new LWE encryption of the plaintext.
func (eng *Engine[T]) EncryptLweCiphertext(key *LweSecretKey[T], input *Plaintext[T], noise dispersion.DispersionParameter) (*LweCiphertext[T], error) {
	if err := eng.alive(key, input); err != nil {
		return nil, engine.LweCiphertextEncryptionErrors.Engine(err)
	}
	return eng.EncryptLweCiphertextUnchecked(key, input, noise), nil
}

// EncryptLweCiphertextUnchecked returns a new LWE encryption of the plaintext.
func (eng *Engine[T]) EncryptLweCiphertextUnchecked(key *LweSecretKey[T], input *Plaintext[T], noise dispersion.DispersionParameter) *LweCiphertext[T] {
	ct := &LweCiphertext[T]{
		handle:       eng.register(entity.LweCiphertextKind),
		distribution: key.distribution,
		mask:         make([]T, len(key.coefficients)),
	}
	ct.body = eng.encryptLwe(key.coefficients, ct.mask, input.value, noise)
	return ct
}

// DiscardEncryptLweCiphertext writes an LWE encryption of the plaintext in the output ciphertext.
func (eng *Engine[T]) DiscardEncryptLweCiphertext(key *LweSecretKey[T], output *LweCiphertext[T], input *Plaintext[T], noise dispersion.DispersionParameter) error {
	if err := engine.CheckLweCiphertextDiscardingEncryption(key, output); err != nil {
		return err
	}
	if err := eng.alive(key, output, input); err != nil {
		return engine.LweCiphertextDiscardingEncryptionErrors.Engine(err)
	}
	eng.DiscardEncryptLweCiphertextUnchecked(key, output, input, noise)
	return nil
}

// DiscardEncryptLweCiphertextUnchecked writes an LWE encryption of the plaintext in the output ciphertext.
func (eng *Engine[T]) DiscardEncryptLweCiphertextUnchecked(key *LweSecretKey[T], output *LweCiphertext[T], input *Plaintext[T], noise dispersion.DispersionParameter) {
	output.body = eng.encryptLwe(key.coefficients, output.mask, input.value, noise)
}

// DecryptLweCiphertext returns the noisy plaintext b - <a, s>.
func (eng *Engine[T]) DecryptLweCiphertext(key *LweSecretKey[T], input *LweCiphertext[T]) (*Plaintext[T], error) {
	if err := engine.CheckLweCiphertextDecryption(key, input); err != nil {
		return nil, err
	}
	if err := eng.alive(key, input); err != nil {
		return nil, engine.LweCiphertextDecryptionErrors.Engine(err)
	}
	return eng.DecryptLweCiphertextUnchecked(key, input), nil
}

// DecryptLweCiphertextUnchecked returns the noisy plaintext b - <a, s>.
func (eng *Engine[T]) DecryptLweCiphertextUnchecked(key *LweSecretKey[T], input *LweCiphertext[T]) *Plaintext[T] {
	return eng.CreatePlaintextUnchecked(input.body - torus.Dot(input.mask, key.coefficients))
}

// DiscardNegLweCiphertext writes -input in output.
func (eng *Engine[T]) DiscardNegLweCiphertext(output, input *LweCiphertext[T]) error {
	if err := engine.CheckLweCiphertextDiscardingNegation(output, input); err != nil {
		return err
	}
	if err := eng.alive(output, input); err != nil {
		return engine.LweCiphertextDiscardingNegationErrors.Engine(err)
	}
	eng.DiscardNegLweCiphertextUnchecked(output, input)
	return nil
}

// DiscardNegLweCiphertextUnchecked writes -input in output.
func (eng *Engine[T]) DiscardNegLweCiphertextUnchecked(output, input *LweCiphertext[T]) {
	torus.Neg(input.mask, output.mask)
	output.body = -input.body
}

// DiscardAddLweCiphertext writes input1 + input2 in output.
func (eng *Engine[T]) DiscardAddLweCiphertext(output, input1, input2 *LweCiphertext[T]) error {
	if err := engine.CheckLweCiphertextDiscardingAddition(output, input1, input2); err != nil {
		return err
	}
	if err := eng.alive(output, input1, input2); err != nil {
		return engine.LweCiphertextDiscardingAdditionErrors.Engine(err)
	}
	eng.DiscardAddLweCiphertextUnchecked(output, input1, input2)
	return nil
}

// DiscardAddLweCiphertextUnchecked writes input1 + input2 in output.
func (eng *Engine[T]) DiscardAddLweCiphertextUnchecked(output, input1, input2 *LweCiphertext[T]) {
	torus.Add(input1.mask, input2.mask, output.mask)
	output.body = input1.body + input2.body
}

// DiscardMulLweCiphertextCleartext writes cleartext * input in output.
func (eng *Engine[T]) DiscardMulLweCiphertextCleartext(output, input *LweCiphertext[T], cleartext *Cleartext[T]) error {
	if err := engine.CheckLweCiphertextDiscardingCleartextMultiplication(output, input); err != nil {
		return err
	}
	if err := eng.alive(output, input, cleartext); err != nil {
		return engine.LweCiphertextDiscardingCleartextMultiplicationErrors.Engine(err)
	}
	eng.DiscardMulLweCiphertextCleartextUnchecked(output, input, cleartext)
	return nil
}

// DiscardMulLweCiphertextCleartextUnchecked writes cleartext * input in output.
func (eng *Engine[T]) DiscardMulLweCiphertextCleartextUnchecked(output, input *LweCiphertext[T], cleartext *Cleartext[T]) {
	torus.MulScalar(input.mask, cleartext.value, output.mask)
	output.body = cleartext.value * input.body
}

// DiscardKeyswitchLweCiphertext switches input to the output key of ksk and writes the result in output.
func (eng *Engine[T]) DiscardKeyswitchLweCiphertext(output, input *LweCiphertext[T], ksk *LweKeyswitchKey[T]) error {
	if err := engine.CheckLweCiphertextDiscardingKeyswitch(output, input, ksk); err != nil {
		return err
	}
	if err := eng.alive(output, input, ksk); err != nil {
		return engine.LweCiphertextDiscardingKeyswitchErrors.Engine(err)
	}
	eng.DiscardKeyswitchLweCiphertextUnchecked(output, input, ksk)
	return nil
}

// DiscardKeyswitchLweCiphertextUnchecked switches input to the output key of ksk and writes the
// result in output: output = (0, b) - sum_{i,j} d_{i,j} * ksk_{i,j}, with d_{i,j} the signed
// decomposition of the i-th mask coefficient of input. output may alias input.
func (eng *Engine[T]) DiscardKeyswitchLweCiphertextUnchecked(output, input *LweCiphertext[T], ksk *LweKeyswitchKey[T]) {

	baseLog, levels := int(ksk.baseLog), int(ksk.levels)

	mask := make([]T, len(output.mask))
	body := input.body

	digits := make([]int64, levels)
	for i, ai := range input.mask {
		torus.DecomposeSigned(ai, baseLog, levels, digits)
		for j, d := range digits {
			if d == 0 {
				continue
			}
			row := i*levels + j
			dt := torus.FromSigned[T](d)
			torus.MulScalarThenSub(ksk.masks[row], dt, mask)
			body -= dt * ksk.bodies[row]
		}
	}

	copy(output.mask, mask)
	output.body = body
}
