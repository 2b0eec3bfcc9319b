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

// LweCiphertextDiscardingKeyswitchParameters are the parameters of the LweCiphertextDiscardingKeyswitchFixture.
type LweCiphertextDiscardingKeyswitchParameters struct {
	InputNoise            dispersion.Variance
	KeyswitchNoise        dispersion.Variance
	InputLweDimension     parameters.LweDimension
	OutputLweDimension    parameters.LweDimension
	InputKeyDistribution  entity.KeyDistribution
	OutputKeyDistribution entity.KeyDistribution
	BaseLog               parameters.DecompositionBaseLog
	Levels                parameters.DecompositionLevelCount
}

// DefaultLweCiphertextDiscardingKeyswitchParameters are the parameter sets tested by default.
// Their noises are large enough to be resolved by a 32-bit torus.
var DefaultLweCiphertextDiscardingKeyswitchParameters = []LweCiphertextDiscardingKeyswitchParameters{
	{
		InputNoise:            dispersion.Variance(0.00000001),
		KeyswitchNoise:        dispersion.Variance(0.0000000000001),
		InputLweDimension:     256,
		OutputLweDimension:    128,
		InputKeyDistribution:  entity.Binary,
		OutputKeyDistribution: entity.Binary,
		BaseLog:               8,
		Levels:                3,
	},
	{
		InputNoise:            dispersion.Variance(0.00000001),
		KeyswitchNoise:        dispersion.Variance(0.0000000000001),
		InputLweDimension:     200,
		OutputLweDimension:    100,
		InputKeyDistribution:  entity.Ternary,
		OutputKeyDistribution: entity.Binary,
		BaseLog:               4,
		Levels:                5,
	},
}

type lweCiphertextDiscardingKeyswitchRepetition[T torus.Unsigned] struct {
	inputKey  *generation.ProtoLweSecretKey[T]
	outputKey *generation.ProtoLweSecretKey[T]
	ksk       *generation.ProtoLweKeyswitchKey[T]
}

type lweCiphertextDiscardingKeyswitchSample[T torus.Unsigned] struct {
	plaintext *generation.ProtoPlaintext[T]
	input     *generation.ProtoLweCiphertext[T]
	output    *generation.ProtoLweCiphertext[T]
}

type lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext any] struct {
	ksk    KeyswitchKey
	input  Ciphertext
	output Ciphertext
}

// LweCiphertextDiscardingKeyswitchFixture tests the keyswitch of an LWE ciphertext into an
// existing ciphertext encrypted under another key.
type LweCiphertextDiscardingKeyswitchFixture[T torus.Unsigned, KeyswitchKey entity.LweKeyswitchKeyEntity, Ciphertext entity.LweCiphertextEntity] struct {
	Engine interface {
		engine.LweCiphertextDiscardingKeyswitchEngine[KeyswitchKey, Ciphertext, Ciphertext]
		engine.LweCiphertextDiscardingKeyswitchUncheckedEngine[KeyswitchKey, Ciphertext, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesLweKeyswitchKey[T, KeyswitchKey]
		generation.SynthesizesLweCiphertext[T, Ciphertext]
	}
	ParameterSets []LweCiphertextDiscardingKeyswitchParameters
}

// Name implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) Name() string {
	return "LweCiphertextDiscardingKeyswitch"
}

// Parameters implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) Parameters() []LweCiphertextDiscardingKeyswitchParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultLweCiphertextDiscardingKeyswitchParameters
}

// RepetitionPrototypes implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) RepetitionPrototypes(params LweCiphertextDiscardingKeyswitchParameters, maker *generation.Maker[T]) lweCiphertextDiscardingKeyswitchRepetition[T] {
	inputKey := maker.NewLweSecretKey(params.InputLweDimension, params.InputKeyDistribution)
	outputKey := maker.NewLweSecretKey(params.OutputLweDimension, params.OutputKeyDistribution)
	return lweCiphertextDiscardingKeyswitchRepetition[T]{
		inputKey:  inputKey,
		outputKey: outputKey,
		ksk:       maker.NewLweKeyswitchKey(inputKey, outputKey, params.BaseLog, params.Levels, params.KeyswitchNoise),
	}
}

// SamplePrototypes implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) SamplePrototypes(params LweCiphertextDiscardingKeyswitchParameters, maker *generation.Maker[T], repetition lweCiphertextDiscardingKeyswitchRepetition[T]) lweCiphertextDiscardingKeyswitchSample[T] {
	plaintext := maker.TransformRawToPlaintext(maker.RandomRaw())
	return lweCiphertextDiscardingKeyswitchSample[T]{
		plaintext: plaintext,
		input:     maker.EncryptPlaintextToLweCiphertext(repetition.inputKey, plaintext, params.InputNoise),
		output:    maker.EncryptPlaintextToLweCiphertext(repetition.outputKey, maker.TransformRawToPlaintext(maker.RandomRaw()), params.InputNoise),
	}
}

// PrepareContext implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) PrepareContext(params LweCiphertextDiscardingKeyswitchParameters, repetition lweCiphertextDiscardingKeyswitchRepetition[T], sample lweCiphertextDiscardingKeyswitchSample[T]) lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext] {
	return lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext]{
		ksk:    f.Synthesizer.SynthesizeLweKeyswitchKey(repetition.ksk),
		input:  f.Synthesizer.SynthesizeLweCiphertext(sample.input),
		output: f.Synthesizer.SynthesizeLweCiphertext(sample.output),
	}
}

// Execute implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) Execute(params LweCiphertextDiscardingKeyswitchParameters, context *lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext], unchecked bool) error {
	if unchecked {
		f.Engine.DiscardKeyswitchLweCiphertextUnchecked(context.output, context.input, context.ksk)
		return nil
	}
	return f.Engine.DiscardKeyswitchLweCiphertext(context.output, context.input, context.ksk)
}

// ProcessContext implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) ProcessContext(params LweCiphertextDiscardingKeyswitchParameters, maker *generation.Maker[T], repetition lweCiphertextDiscardingKeyswitchRepetition[T], sample lweCiphertextDiscardingKeyswitchSample[T], context lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext]) Outcome[T] {
	decrypted := maker.DecryptLweCiphertextToPlaintext(repetition.outputKey, f.Synthesizer.UnsynthesizeLweCiphertext(context.output))
	return Outcome[T]{
		Expected: []T{maker.TransformPlaintextToRaw(sample.plaintext)},
		Actual:   []T{maker.TransformPlaintextToRaw(decrypted)},
	}
}

// Cleanup implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) Cleanup(context lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext]) {
	f.Synthesizer.DestroyLweKeyswitchKey(context.ksk)
	f.Synthesizer.DestroyLweCiphertext(context.input)
	f.Synthesizer.DestroyLweCiphertext(context.output)
}

// ComputeCriteria implements Fixture.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) ComputeCriteria(params LweCiphertextDiscardingKeyswitchParameters, repetition lweCiphertextDiscardingKeyswitchRepetition[T]) dispersion.Variance {
	return npe.EstimateKeyswitchNoise[T](
		params.InputLweDimension,
		params.InputKeyDistribution.KeyKind(),
		params.InputNoise,
		params.KeyswitchNoise,
		params.BaseLog,
		params.Levels)
}

// Run runs the fixture with the given configuration.
func (f *LweCiphertextDiscardingKeyswitchFixture[T, KeyswitchKey, Ciphertext]) Run(config Config) ([]Result[LweCiphertextDiscardingKeyswitchParameters], error) {
	return Run[T, LweCiphertextDiscardingKeyswitchParameters, lweCiphertextDiscardingKeyswitchRepetition[T], lweCiphertextDiscardingKeyswitchSample[T], lweCiphertextDiscardingKeyswitchContext[KeyswitchKey, Ciphertext]](f, config)
}
