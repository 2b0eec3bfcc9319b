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

// GlweCiphertextEncryptionParameters are the parameters of the GlweCiphertextEncryptionFixture.
type GlweCiphertextEncryptionParameters struct {
	Noise           dispersion.Variance
	GlweDimension   parameters.GlweDimension
	PolynomialSize  parameters.PolynomialSize
	KeyDistribution entity.KeyDistribution
}

// DefaultGlweCiphertextEncryptionParameters are the parameter sets tested by default.
var DefaultGlweCiphertextEncryptionParameters = []GlweCiphertextEncryptionParameters{
	{Noise: dispersion.Variance(0.00000001), GlweDimension: 1, PolynomialSize: 64, KeyDistribution: entity.Binary},
	{Noise: dispersion.Variance(0.00000001), GlweDimension: 2, PolynomialSize: 32, KeyDistribution: entity.Ternary},
}

type glweCiphertextEncryptionSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintextVector[T]
}

type glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext any] struct {
	key        SecretKey
	plaintext  PlaintextVector
	ciphertext Ciphertext
	encrypted  bool
}

// GlweCiphertextEncryptionFixture tests the encryption of plaintext vectors into GLWE ciphertexts.
type GlweCiphertextEncryptionFixture[T torus.Unsigned, SecretKey entity.GlweSecretKeyEntity, PlaintextVector entity.PlaintextVectorEntity, Ciphertext entity.GlweCiphertextEntity] struct {
	Engine interface {
		engine.GlweCiphertextEncryptionEngine[SecretKey, PlaintextVector, Ciphertext]
		engine.GlweCiphertextEncryptionUncheckedEngine[SecretKey, PlaintextVector, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesGlweSecretKey[T, SecretKey]
		generation.SynthesizesPlaintextVector[T, PlaintextVector]
		generation.SynthesizesGlweCiphertext[T, Ciphertext]
	}
	ParameterSets []GlweCiphertextEncryptionParameters
}

// Name implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) Name() string {
	return "GlweCiphertextEncryption"
}

// Parameters implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) Parameters() []GlweCiphertextEncryptionParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultGlweCiphertextEncryptionParameters
}

// RepetitionPrototypes implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) RepetitionPrototypes(params GlweCiphertextEncryptionParameters, maker *generation.Maker[T]) *generation.ProtoGlweSecretKey[T] {
	return maker.NewGlweSecretKey(params.GlweDimension, params.PolynomialSize, params.KeyDistribution)
}

// SamplePrototypes implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) SamplePrototypes(params GlweCiphertextEncryptionParameters, maker *generation.Maker[T], key *generation.ProtoGlweSecretKey[T]) glweCiphertextEncryptionSample[T] {
	return glweCiphertextEncryptionSample[T]{plaintext: maker.TransformRawVecToPlaintextVector(maker.RandomRawVec(int(params.PolynomialSize)))}
}

// PrepareContext implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) PrepareContext(params GlweCiphertextEncryptionParameters, key *generation.ProtoGlweSecretKey[T], sample glweCiphertextEncryptionSample[T]) glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext] {
	return glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext]{
		key:       f.Synthesizer.SynthesizeGlweSecretKey(key),
		plaintext: f.Synthesizer.SynthesizePlaintextVector(sample.plaintext),
	}
}

// Execute implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) Execute(params GlweCiphertextEncryptionParameters, context *glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext], unchecked bool) (err error) {
	if unchecked {
		context.ciphertext = f.Engine.EncryptGlweCiphertextUnchecked(context.key, context.plaintext, params.Noise)
	} else if context.ciphertext, err = f.Engine.EncryptGlweCiphertext(context.key, context.plaintext, params.Noise); err != nil {
		return
	}
	context.encrypted = true
	return
}

// ProcessContext implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) ProcessContext(params GlweCiphertextEncryptionParameters, maker *generation.Maker[T], key *generation.ProtoGlweSecretKey[T], sample glweCiphertextEncryptionSample[T], context glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext]) Outcome[T] {
	decrypted := maker.DecryptGlweCiphertextToPlaintextVector(key, f.Synthesizer.UnsynthesizeGlweCiphertext(context.ciphertext))
	return Outcome[T]{
		Expected: maker.TransformPlaintextVectorToRawVec(sample.plaintext),
		Actual:   maker.TransformPlaintextVectorToRawVec(decrypted),
	}
}

// Cleanup implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) Cleanup(context glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext]) {
	f.Synthesizer.DestroyGlweSecretKey(context.key)
	f.Synthesizer.DestroyPlaintextVector(context.plaintext)
	if context.encrypted {
		f.Synthesizer.DestroyGlweCiphertext(context.ciphertext)
	}
}

// ComputeCriteria implements Fixture.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) ComputeCriteria(params GlweCiphertextEncryptionParameters, key *generation.ProtoGlweSecretKey[T]) dispersion.Variance {
	return npe.EstimateEncryptionNoise(params.Noise)
}

// Run runs the fixture with the given configuration.
func (f *GlweCiphertextEncryptionFixture[T, SecretKey, PlaintextVector, Ciphertext]) Run(config Config) ([]Result[GlweCiphertextEncryptionParameters], error) {
	return Run[T, GlweCiphertextEncryptionParameters, *generation.ProtoGlweSecretKey[T], glweCiphertextEncryptionSample[T], glweCiphertextEncryptionContext[SecretKey, PlaintextVector, Ciphertext]](f, config)
}
