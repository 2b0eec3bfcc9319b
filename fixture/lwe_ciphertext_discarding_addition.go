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

// LweCiphertextDiscardingAdditionParameters are the parameters of the LweCiphertextDiscardingAdditionFixture.
type LweCiphertextDiscardingAdditionParameters struct {
	Noise1          dispersion.Variance
	Noise2          dispersion.Variance
	LweDimension    parameters.LweDimension
	KeyDistribution entity.KeyDistribution
}

// DefaultLweCiphertextDiscardingAdditionParameters are the parameter sets tested by default.
var DefaultLweCiphertextDiscardingAdditionParameters = []LweCiphertextDiscardingAdditionParameters{
	{Noise1: dispersion.Variance(0.00000001), Noise2: dispersion.Variance(0.00000001), LweDimension: 100, KeyDistribution: entity.Binary},
	{Noise1: dispersion.Variance(0.00000001), Noise2: dispersion.Variance(0.0000001), LweDimension: 300, KeyDistribution: entity.Ternary},
}

type lweCiphertextDiscardingAdditionSample[T torus.Unsigned] struct {
	plaintext1 *generation.ProtoPlaintext[T]
	plaintext2 *generation.ProtoPlaintext[T]
	input1     *generation.ProtoLweCiphertext[T]
	input2     *generation.ProtoLweCiphertext[T]
	output     *generation.ProtoLweCiphertext[T]
}

type lweCiphertextDiscardingAdditionContext[Ciphertext any] struct {
	input1 Ciphertext
	input2 Ciphertext
	output Ciphertext
}

// LweCiphertextDiscardingAdditionFixture tests the addition of two LWE ciphertexts into an existing one.
type LweCiphertextDiscardingAdditionFixture[T torus.Unsigned, Ciphertext entity.LweCiphertextEntity] struct {
	Engine interface {
		engine.LweCiphertextDiscardingAdditionEngine[Ciphertext, Ciphertext]
		engine.LweCiphertextDiscardingAdditionUncheckedEngine[Ciphertext, Ciphertext]
	}
	Synthesizer   generation.SynthesizesLweCiphertext[T, Ciphertext]
	ParameterSets []LweCiphertextDiscardingAdditionParameters
}

// Name implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) Name() string {
	return "LweCiphertextDiscardingAddition"
}

// Parameters implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) Parameters() []LweCiphertextDiscardingAdditionParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultLweCiphertextDiscardingAdditionParameters
}

// RepetitionPrototypes implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) RepetitionPrototypes(params LweCiphertextDiscardingAdditionParameters, maker *generation.Maker[T]) *generation.ProtoLweSecretKey[T] {
	return maker.NewLweSecretKey(params.LweDimension, params.KeyDistribution)
}

// SamplePrototypes implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) SamplePrototypes(params LweCiphertextDiscardingAdditionParameters, maker *generation.Maker[T], key *generation.ProtoLweSecretKey[T]) lweCiphertextDiscardingAdditionSample[T] {
	plaintext1 := maker.TransformRawToPlaintext(maker.RandomRaw())
	plaintext2 := maker.TransformRawToPlaintext(maker.RandomRaw())
	return lweCiphertextDiscardingAdditionSample[T]{
		plaintext1: plaintext1,
		plaintext2: plaintext2,
		input1:     maker.EncryptPlaintextToLweCiphertext(key, plaintext1, params.Noise1),
		input2:     maker.EncryptPlaintextToLweCiphertext(key, plaintext2, params.Noise2),
		output:     maker.EncryptPlaintextToLweCiphertext(key, maker.TransformRawToPlaintext(maker.RandomRaw()), params.Noise1),
	}
}

// PrepareContext implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) PrepareContext(params LweCiphertextDiscardingAdditionParameters, key *generation.ProtoLweSecretKey[T], sample lweCiphertextDiscardingAdditionSample[T]) lweCiphertextDiscardingAdditionContext[Ciphertext] {
	return lweCiphertextDiscardingAdditionContext[Ciphertext]{
		input1: f.Synthesizer.SynthesizeLweCiphertext(sample.input1),
		input2: f.Synthesizer.SynthesizeLweCiphertext(sample.input2),
		output: f.Synthesizer.SynthesizeLweCiphertext(sample.output),
	}
}

// Execute implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) Execute(params LweCiphertextDiscardingAdditionParameters, context *lweCiphertextDiscardingAdditionContext[Ciphertext], unchecked bool) error {
	if unchecked {
		f.Engine.DiscardAddLweCiphertextUnchecked(context.output, context.input1, context.input2)
		return nil
	}
	return f.Engine.DiscardAddLweCiphertext(context.output, context.input1, context.input2)
}

// ProcessContext implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) ProcessContext(params LweCiphertextDiscardingAdditionParameters, maker *generation.Maker[T], key *generation.ProtoLweSecretKey[T], sample lweCiphertextDiscardingAdditionSample[T], context lweCiphertextDiscardingAdditionContext[Ciphertext]) Outcome[T] {
	decrypted := maker.DecryptLweCiphertextToPlaintext(key, f.Synthesizer.UnsynthesizeLweCiphertext(context.output))
	return Outcome[T]{
		Expected: []T{maker.TransformPlaintextToRaw(sample.plaintext1) + maker.TransformPlaintextToRaw(sample.plaintext2)},
		Actual:   []T{maker.TransformPlaintextToRaw(decrypted)},
	}
}

// Cleanup implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) Cleanup(context lweCiphertextDiscardingAdditionContext[Ciphertext]) {
	f.Synthesizer.DestroyLweCiphertext(context.input1)
	f.Synthesizer.DestroyLweCiphertext(context.input2)
	f.Synthesizer.DestroyLweCiphertext(context.output)
}

// ComputeCriteria implements Fixture.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) ComputeCriteria(params LweCiphertextDiscardingAdditionParameters, key *generation.ProtoLweSecretKey[T]) dispersion.Variance {
	return npe.EstimateAdditionNoise(params.Noise1, params.Noise2)
}

// Run runs the fixture with the given configuration.
func (f *LweCiphertextDiscardingAdditionFixture[T, Ciphertext]) Run(config Config) ([]Result[LweCiphertextDiscardingAdditionParameters], error) {
	return Run[T, LweCiphertextDiscardingAdditionParameters, *generation.ProtoLweSecretKey[T], lweCiphertextDiscardingAdditionSample[T], lweCiphertextDiscardingAdditionContext[Ciphertext]](f, config)
}
