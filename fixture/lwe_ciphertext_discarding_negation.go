package fixture

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/npe"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/fixture/generation"
)

// LweCiphertextDiscardingNegationParameters are the parameters of the LweCiphertextDiscardingNegationFixture.
type LweCiphertextDiscardingNegationParameters LweCiphertextEncryptionParameters

// DefaultLweCiphertextDiscardingNegationParameters are the parameter sets tested by default.
var DefaultLweCiphertextDiscardingNegationParameters = []LweCiphertextDiscardingNegationParameters{
	{Noise: dispersion.Variance(0.00000001), LweDimension: 100, KeyDistribution: entity.Binary},
	{Noise: dispersion.Variance(0.00000001), LweDimension: 300, KeyDistribution: entity.Ternary},
}

type lweCiphertextDiscardingNegationSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintext[T]
	input     *generation.ProtoLweCiphertext[T]
	output    *generation.ProtoLweCiphertext[T]
}

type lweCiphertextDiscardingNegationContext[Ciphertext any] struct {
	input  Ciphertext
	output Ciphertext
}

// LweCiphertextDiscardingNegationFixture tests the negation of an LWE ciphertext into an existing one.
type LweCiphertextDiscardingNegationFixture[T torus.Unsigned, Ciphertext entity.LweCiphertextEntity] struct {
	Engine interface {
		engine.LweCiphertextDiscardingNegationEngine[Ciphertext, Ciphertext]
		engine.LweCiphertextDiscardingNegationUncheckedEngine[Ciphertext, Ciphertext]
	}
	Synthesizer   generation.SynthesizesLweCiphertext[T, Ciphertext]
	ParameterSets []LweCiphertextDiscardingNegationParameters
}

// Name implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) Name() string {
	return "LweCiphertextDiscardingNegation"
}

// Parameters implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) Parameters() []LweCiphertextDiscardingNegationParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultLweCiphertextDiscardingNegationParameters
}

// RepetitionPrototypes implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) RepetitionPrototypes(params LweCiphertextDiscardingNegationParameters, maker *generation.Maker[T]) *generation.ProtoLweSecretKey[T] {
	return maker.NewLweSecretKey(params.LweDimension, params.KeyDistribution)
}

// SamplePrototypes implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) SamplePrototypes(params LweCiphertextDiscardingNegationParameters, maker *generation.Maker[T], key *generation.ProtoLweSecretKey[T]) lweCiphertextDiscardingNegationSample[T] {
	plaintext := maker.TransformRawToPlaintext(maker.RandomRaw())
	return lweCiphertextDiscardingNegationSample[T]{
		plaintext: plaintext,
		input:     maker.EncryptPlaintextToLweCiphertext(key, plaintext, params.Noise),
		output:    maker.EncryptPlaintextToLweCiphertext(key, maker.TransformRawToPlaintext(maker.RandomRaw()), params.Noise),
	}
}

// PrepareContext implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) PrepareContext(params LweCiphertextDiscardingNegationParameters, key *generation.ProtoLweSecretKey[T], sample lweCiphertextDiscardingNegationSample[T]) lweCiphertextDiscardingNegationContext[Ciphertext] {
	return lweCiphertextDiscardingNegationContext[Ciphertext]{
		input:  f.Synthesizer.SynthesizeLweCiphertext(sample.input),
		output: f.Synthesizer.SynthesizeLweCiphertext(sample.output),
	}
}

// Execute implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) Execute(params LweCiphertextDiscardingNegationParameters, context *lweCiphertextDiscardingNegationContext[Ciphertext], unchecked bool) error {
	if unchecked {
		f.Engine.DiscardNegLweCiphertextUnchecked(context.output, context.input)
		return nil
	}
	return f.Engine.DiscardNegLweCiphertext(context.output, context.input)
}

// ProcessContext implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) ProcessContext(params LweCiphertextDiscardingNegationParameters, maker *generation.Maker[T], key *generation.ProtoLweSecretKey[T], sample lweCiphertextDiscardingNegationSample[T], context lweCiphertextDiscardingNegationContext[Ciphertext]) Outcome[T] {
	decrypted := maker.DecryptLweCiphertextToPlaintext(key, f.Synthesizer.UnsynthesizeLweCiphertext(context.output))
	return Outcome[T]{
		Expected: []T{-maker.TransformPlaintextToRaw(sample.plaintext)},
		Actual:   []T{maker.TransformPlaintextToRaw(decrypted)},
	}
}

// Cleanup implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) Cleanup(context lweCiphertextDiscardingNegationContext[Ciphertext]) {
	f.Synthesizer.DestroyLweCiphertext(context.input)
	f.Synthesizer.DestroyLweCiphertext(context.output)
}

// ComputeCriteria implements Fixture.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) ComputeCriteria(params LweCiphertextDiscardingNegationParameters, key *generation.ProtoLweSecretKey[T]) dispersion.Variance {
	return npe.EstimateNegationNoise(params.Noise)
}

// Run runs the fixture with the given configuration.
func (f *LweCiphertextDiscardingNegationFixture[T, Ciphertext]) Run(config Config) ([]Result[LweCiphertextDiscardingNegationParameters], error) {
	return Run[T, LweCiphertextDiscardingNegationParameters, *generation.ProtoLweSecretKey[T], lweCiphertextDiscardingNegationSample[T], lweCiphertextDiscardingNegationContext[Ciphertext]](f, config)
}
