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

// LweCiphertextDiscardingCleartextMultiplicationParameters are the parameters of the
// LweCiphertextDiscardingCleartextMultiplicationFixture. The cleartext of each repetition is
// drawn uniformly in [-CleartextBound, CleartextBound].
type LweCiphertextDiscardingCleartextMultiplicationParameters struct {
	Noise           dispersion.Variance
	LweDimension    parameters.LweDimension
	KeyDistribution entity.KeyDistribution
	CleartextBound  uint64
}

// DefaultLweCiphertextDiscardingCleartextMultiplicationParameters are the parameter sets tested by default.
var DefaultLweCiphertextDiscardingCleartextMultiplicationParameters = []LweCiphertextDiscardingCleartextMultiplicationParameters{
	{Noise: dispersion.Variance(0.00000001), LweDimension: 100, KeyDistribution: entity.Binary, CleartextBound: 16},
	{Noise: dispersion.Variance(0.0000000001), LweDimension: 300, KeyDistribution: entity.Gaussian, CleartextBound: 1024},
}

type lweCiphertextDiscardingCleartextMultiplicationRepetition[T torus.Unsigned] struct {
	key       *generation.ProtoLweSecretKey[T]
	cleartext *generation.ProtoCleartext[T]
}

type lweCiphertextDiscardingCleartextMultiplicationSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintext[T]
	input     *generation.ProtoLweCiphertext[T]
	output    *generation.ProtoLweCiphertext[T]
}

type lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext any] struct {
	cleartext Cleartext
	input     Ciphertext
	output    Ciphertext
}

// LweCiphertextDiscardingCleartextMultiplicationFixture tests the multiplication of an LWE
// ciphertext by an integer cleartext into an existing ciphertext.
type LweCiphertextDiscardingCleartextMultiplicationFixture[T torus.Unsigned, Cleartext entity.CleartextEntity, Ciphertext entity.LweCiphertextEntity] struct {
	Engine interface {
		engine.LweCiphertextDiscardingCleartextMultiplicationEngine[Ciphertext, Cleartext, Ciphertext]
		engine.LweCiphertextDiscardingCleartextMultiplicationUncheckedEngine[Ciphertext, Cleartext, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesCleartext[T, Cleartext]
		generation.SynthesizesLweCiphertext[T, Ciphertext]
	}
	ParameterSets []LweCiphertextDiscardingCleartextMultiplicationParameters
}

// Name implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) Name() string {
	return "LweCiphertextDiscardingCleartextMultiplication"
}

// Parameters implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) Parameters() []LweCiphertextDiscardingCleartextMultiplicationParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultLweCiphertextDiscardingCleartextMultiplicationParameters
}

// RepetitionPrototypes implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) RepetitionPrototypes(params LweCiphertextDiscardingCleartextMultiplicationParameters, maker *generation.Maker[T]) lweCiphertextDiscardingCleartextMultiplicationRepetition[T] {
	c := maker.RandomMessages(1, params.CleartextBound)[0]
	return lweCiphertextDiscardingCleartextMultiplicationRepetition[T]{
		key:       maker.NewLweSecretKey(params.LweDimension, params.KeyDistribution),
		cleartext: generation.TransformRawToCleartext(torus.FromSigned[T](c)),
	}
}

// SamplePrototypes implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) SamplePrototypes(params LweCiphertextDiscardingCleartextMultiplicationParameters, maker *generation.Maker[T], repetition lweCiphertextDiscardingCleartextMultiplicationRepetition[T]) lweCiphertextDiscardingCleartextMultiplicationSample[T] {
	plaintext := maker.TransformRawToPlaintext(maker.RandomRaw())
	return lweCiphertextDiscardingCleartextMultiplicationSample[T]{
		plaintext: plaintext,
		input:     maker.EncryptPlaintextToLweCiphertext(repetition.key, plaintext, params.Noise),
		output:    maker.EncryptPlaintextToLweCiphertext(repetition.key, maker.TransformRawToPlaintext(maker.RandomRaw()), params.Noise),
	}
}

// PrepareContext implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) PrepareContext(params LweCiphertextDiscardingCleartextMultiplicationParameters, repetition lweCiphertextDiscardingCleartextMultiplicationRepetition[T], sample lweCiphertextDiscardingCleartextMultiplicationSample[T]) lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext] {
	return lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext]{
		cleartext: f.Synthesizer.SynthesizeCleartext(repetition.cleartext),
		input:     f.Synthesizer.SynthesizeLweCiphertext(sample.input),
		output:    f.Synthesizer.SynthesizeLweCiphertext(sample.output),
	}
}

// Execute implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) Execute(params LweCiphertextDiscardingCleartextMultiplicationParameters, context *lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext], unchecked bool) error {
	if unchecked {
		f.Engine.DiscardMulLweCiphertextCleartextUnchecked(context.output, context.input, context.cleartext)
		return nil
	}
	return f.Engine.DiscardMulLweCiphertextCleartext(context.output, context.input, context.cleartext)
}

// ProcessContext implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) ProcessContext(params LweCiphertextDiscardingCleartextMultiplicationParameters, maker *generation.Maker[T], repetition lweCiphertextDiscardingCleartextMultiplicationRepetition[T], sample lweCiphertextDiscardingCleartextMultiplicationSample[T], context lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext]) Outcome[T] {
	decrypted := maker.DecryptLweCiphertextToPlaintext(repetition.key, f.Synthesizer.UnsynthesizeLweCiphertext(context.output))
	return Outcome[T]{
		Expected: []T{maker.TransformPlaintextToRaw(sample.plaintext) * generation.TransformCleartextToRaw(repetition.cleartext)},
		Actual:   []T{maker.TransformPlaintextToRaw(decrypted)},
	}
}

// Cleanup implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) Cleanup(context lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext]) {
	f.Synthesizer.DestroyCleartext(context.cleartext)
	f.Synthesizer.DestroyLweCiphertext(context.input)
	f.Synthesizer.DestroyLweCiphertext(context.output)
}

// ComputeCriteria implements Fixture.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) ComputeCriteria(params LweCiphertextDiscardingCleartextMultiplicationParameters, repetition lweCiphertextDiscardingCleartextMultiplicationRepetition[T]) dispersion.Variance {
	return npe.EstimateCleartextMultiplicationNoise(params.Noise, generation.TransformCleartextToRaw(repetition.cleartext))
}

// Run runs the fixture with the given configuration.
func (f *LweCiphertextDiscardingCleartextMultiplicationFixture[T, Cleartext, Ciphertext]) Run(config Config) ([]Result[LweCiphertextDiscardingCleartextMultiplicationParameters], error) {
	return Run[T, LweCiphertextDiscardingCleartextMultiplicationParameters, lweCiphertextDiscardingCleartextMultiplicationRepetition[T], lweCiphertextDiscardingCleartextMultiplicationSample[T], lweCiphertextDiscardingCleartextMultiplicationContext[Cleartext, Ciphertext]](f, config)
}
