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

// GgswCiphertextScalarEncryptionParameters are the parameters of the GgswCiphertextScalarEncryptionFixture.
type GgswCiphertextScalarEncryptionParameters struct {
	Noise           dispersion.Variance
	GlweDimension   parameters.GlweDimension
	PolynomialSize  parameters.PolynomialSize
	KeyDistribution entity.KeyDistribution
	BaseLog         parameters.DecompositionBaseLog
	Levels          parameters.DecompositionLevelCount
	// MessageBound bounds the small integer encrypted by the ciphertext.
	MessageBound uint64
}

// DefaultGgswCiphertextScalarEncryptionParameters are the parameter sets tested by default.
var DefaultGgswCiphertextScalarEncryptionParameters = []GgswCiphertextScalarEncryptionParameters{
	{Noise: dispersion.Variance(0.00000001), GlweDimension: 1, PolynomialSize: 32, KeyDistribution: entity.Binary, BaseLog: 6, Levels: 3, MessageBound: 8},
	{Noise: dispersion.Variance(0.00000001), GlweDimension: 2, PolynomialSize: 16, KeyDistribution: entity.Ternary, BaseLog: 4, Levels: 4, MessageBound: 1},
}

type ggswCiphertextScalarEncryptionSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintext[T]
}

type ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext any] struct {
	key        SecretKey
	plaintext  Plaintext
	ciphertext Ciphertext
	encrypted  bool
}

// GgswCiphertextScalarEncryptionFixture tests the encryption of scalar plaintexts into GGSW
// ciphertexts. Each GLWE row of the ciphertext is decrypted and compared to the gadget
// encoding of the plaintext it should carry.
type GgswCiphertextScalarEncryptionFixture[T torus.Unsigned, SecretKey entity.GlweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.GgswCiphertextEntity] struct {
	Engine interface {
		engine.GgswCiphertextScalarEncryptionEngine[SecretKey, Plaintext, Ciphertext]
		engine.GgswCiphertextScalarEncryptionUncheckedEngine[SecretKey, Plaintext, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesGlweSecretKey[T, SecretKey]
		generation.SynthesizesPlaintext[T, Plaintext]
		generation.SynthesizesGgswCiphertext[T, Ciphertext]
	}
	ParameterSets []GgswCiphertextScalarEncryptionParameters
}

// Name implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Name() string {
	return "GgswCiphertextScalarEncryption"
}

// Parameters implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Parameters() []GgswCiphertextScalarEncryptionParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultGgswCiphertextScalarEncryptionParameters
}

// RepetitionPrototypes implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) RepetitionPrototypes(params GgswCiphertextScalarEncryptionParameters, maker *generation.Maker[T]) *generation.ProtoGlweSecretKey[T] {
	return maker.NewGlweSecretKey(params.GlweDimension, params.PolynomialSize, params.KeyDistribution)
}

// SamplePrototypes implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) SamplePrototypes(params GgswCiphertextScalarEncryptionParameters, maker *generation.Maker[T], key *generation.ProtoGlweSecretKey[T]) ggswCiphertextScalarEncryptionSample[T] {
	m := maker.RandomMessages(1, params.MessageBound)[0]
	return ggswCiphertextScalarEncryptionSample[T]{plaintext: maker.TransformRawToPlaintext(torus.FromSigned[T](m))}
}

// PrepareContext implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) PrepareContext(params GgswCiphertextScalarEncryptionParameters, key *generation.ProtoGlweSecretKey[T], sample ggswCiphertextScalarEncryptionSample[T]) ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext] {
	return ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext]{
		key:       f.Synthesizer.SynthesizeGlweSecretKey(key),
		plaintext: f.Synthesizer.SynthesizePlaintext(sample.plaintext),
	}
}

// Execute implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Execute(params GgswCiphertextScalarEncryptionParameters, context *ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext], unchecked bool) (err error) {
	if unchecked {
		context.ciphertext = f.Engine.EncryptScalarGgswCiphertextUnchecked(context.key, context.plaintext, params.Noise, params.BaseLog, params.Levels)
	} else if context.ciphertext, err = f.Engine.EncryptScalarGgswCiphertext(context.key, context.plaintext, params.Noise, params.BaseLog, params.Levels); err != nil {
		return
	}
	context.encrypted = true
	return
}

// ProcessContext implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) ProcessContext(params GgswCiphertextScalarEncryptionParameters, maker *generation.Maker[T], key *generation.ProtoGlweSecretKey[T], sample ggswCiphertextScalarEncryptionSample[T], context ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext]) (outcome Outcome[T]) {
	ct := f.Synthesizer.UnsynthesizeGgswCiphertext(context.ciphertext)
	for i, row := range maker.GgswRowPlaintexts(key, sample.plaintext, params.BaseLog, params.Levels) {
		decrypted := maker.DecryptGlweCiphertextToPlaintextVector(key, ct.Row(i))
		outcome.Expected = append(outcome.Expected, maker.TransformPlaintextVectorToRawVec(row)...)
		outcome.Actual = append(outcome.Actual, maker.TransformPlaintextVectorToRawVec(decrypted)...)
	}
	return
}

// Cleanup implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Cleanup(context ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext]) {
	f.Synthesizer.DestroyGlweSecretKey(context.key)
	f.Synthesizer.DestroyPlaintext(context.plaintext)
	if context.encrypted {
		f.Synthesizer.DestroyGgswCiphertext(context.ciphertext)
	}
}

// ComputeCriteria implements Fixture.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) ComputeCriteria(params GgswCiphertextScalarEncryptionParameters, key *generation.ProtoGlweSecretKey[T]) dispersion.Variance {
	return npe.EstimateEncryptionNoise(params.Noise)
}

// Run runs the fixture with the given configuration.
func (f *GgswCiphertextScalarEncryptionFixture[T, SecretKey, Plaintext, Ciphertext]) Run(config Config) ([]Result[GgswCiphertextScalarEncryptionParameters], error) {
	return Run[T, GgswCiphertextScalarEncryptionParameters, *generation.ProtoGlweSecretKey[T], ggswCiphertextScalarEncryptionSample[T], ggswCiphertextScalarEncryptionContext[SecretKey, Plaintext, Ciphertext]](f, config)
}
