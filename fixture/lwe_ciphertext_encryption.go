package fixture

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/npe"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/fixture/generation"
)

// LweCiphertextEncryptionParameters are the parameters of the LweCiphertextEncryptionFixture.
type LweCiphertextEncryptionParameters struct {
	Noise           dispersion.Variance
	LweDimension    parameters.LweDimension
	KeyDistribution entity.KeyDistribution
}

// DefaultLweCiphertextEncryptionParameters are the parameter sets tested by default.
var DefaultLweCiphertextEncryptionParameters = []LweCiphertextEncryptionParameters{
	{Noise: dispersion.Variance(0.00000001), LweDimension: 100, KeyDistribution: entity.Binary},
	{Noise: dispersion.Variance(0.00000001), LweDimension: 300, KeyDistribution: entity.Ternary},
	{Noise: dispersion.Variance(0.00000001), LweDimension: 600, KeyDistribution: entity.Gaussian},
}

type lweCiphertextEncryptionRepetition[T torus.Unsigned] struct {
	key *generation.ProtoLweSecretKey[T]
}

type lweCiphertextEncryptionSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintext[T]
}

type lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext any] struct {
	key        SecretKey
	plaintext  Plaintext
	ciphertext Ciphertext
	encrypted  bool
}

// LweCiphertextEncryptionFixture tests the encryption of plaintexts into LWE ciphertexts.
type LweCiphertextEncryptionFixture[T torus.Unsigned, SecretKey entity.LweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.LweCiphertextEntity] struct {
	Engine interface {
		engine.LweCiphertextEncryptionEngine[SecretKey, Plaintext, Ciphertext]
		engine.LweCiphertextEncryptionUncheckedEngine[SecretKey, Plaintext, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesLweSecretKey[T, SecretKey]
		generation.SynthesizesPlaintext[T, Plaintext]
		generation.SynthesizesLweCiphertext[T, Ciphertext]
	}
	// ParameterSets overrides DefaultLweCiphertextEncryptionParameters if not nil.
	ParameterSets []LweCiphertextEncryptionParameters
}

// Name implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Name() string {
	return "LweCiphertextEncryption"
}

// Parameters implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Parameters() []LweCiphertextEncryptionParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultLweCiphertextEncryptionParameters
}

// RepetitionPrototypes implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) RepetitionPrototypes(params LweCiphertextEncryptionParameters, maker *generation.Maker[T]) lweCiphertextEncryptionRepetition[T] {
	return lweCiphertextEncryptionRepetition[T]{key: maker.NewLweSecretKey(params.LweDimension, params.KeyDistribution)}
}

// SamplePrototypes implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) SamplePrototypes(params LweCiphertextEncryptionParameters, maker *generation.Maker[T], repetition lweCiphertextEncryptionRepetition[T]) lweCiphertextEncryptionSample[T] {
	return lweCiphertextEncryptionSample[T]{plaintext: maker.TransformRawToPlaintext(maker.RandomRaw())}
}

// PrepareContext implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) PrepareContext(params LweCiphertextEncryptionParameters, repetition lweCiphertextEncryptionRepetition[T], sample lweCiphertextEncryptionSample[T]) lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext] {
	return lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext]{
		key:       f.Synthesizer.SynthesizeLweSecretKey(repetition.key),
		plaintext: f.Synthesizer.SynthesizePlaintext(sample.plaintext),
	}
}

// Execute implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Execute(params LweCiphertextEncryptionParameters, context *lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext], unchecked bool) (err error) {
	if unchecked {
		context.ciphertext = f.Engine.EncryptLweCiphertextUnchecked(context.key, context.plaintext, params.Noise)
	} else if context.ciphertext, err = f.Engine.EncryptLweCiphertext(context.key, context.plaintext, params.Noise); err != nil {
		return
	}
	context.encrypted = true
	return
}

// ProcessContext implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) ProcessContext(params LweCiphertextEncryptionParameters, maker *generation.Maker[T], repetition lweCiphertextEncryptionRepetition[T], sample lweCiphertextEncryptionSample[T], context lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext]) Outcome[T] {
	ct := f.Synthesizer.UnsynthesizeLweCiphertext(context.ciphertext)
	decrypted := maker.DecryptLweCiphertextToPlaintext(repetition.key, ct)
	return Outcome[T]{
		Expected: []T{maker.TransformPlaintextToRaw(sample.plaintext)},
		Actual:   []T{maker.TransformPlaintextToRaw(decrypted)},
	}
}

// Cleanup implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Cleanup(context lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext]) {
	f.Synthesizer.DestroyLweSecretKey(context.key)
	f.Synthesizer.DestroyPlaintext(context.plaintext)
	if context.encrypted {
		f.Synthesizer.DestroyLweCiphertext(context.ciphertext)
	}
}

// ComputeCriteria implements Fixture.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) ComputeCriteria(params LweCiphertextEncryptionParameters, repetition lweCiphertextEncryptionRepetition[T]) dispersion.Variance {
	return npe.EstimateEncryptionNoise(params.Noise)
}

// Run runs the fixture with the given configuration.
func (f *LweCiphertextEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Run(config Config) ([]Result[LweCiphertextEncryptionParameters], error) {
	return Run[T, LweCiphertextEncryptionParameters, lweCiphertextEncryptionRepetition[T], lweCiphertextEncryptionSample[T], lweCiphertextEncryptionContext[SecretKey, Plaintext, Ciphertext]](f, config)
}
