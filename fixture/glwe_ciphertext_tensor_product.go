package fixture

import (
	"math"
	"math/bits"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/npe"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/fixture/generation"
)

// GlweCiphertextTensorProductParameters are the parameters of the GlweCiphertextTensorProductFixture.
//
// The i-th input encrypts messages drawn uniformly in [-Bound_i, Bound_i], scaled by
// Delta_i = q/MessageSpace_i. The product is rescaled by Scale/Delta, with
// Delta = q/max(MessageSpace1, MessageSpace2), so that the output encodes the negacyclic
// product of the messages scaled by Scale*q/min(MessageSpace1, MessageSpace2).
// Message spaces and Scale must be powers of two.
type GlweCiphertextTensorProductParameters struct {
	Noise1          dispersion.Variance
	Noise2          dispersion.Variance
	GlweDimension   parameters.GlweDimension
	PolynomialSize  parameters.PolynomialSize
	KeyDistribution entity.KeyDistribution
	MessageSpace1   uint64
	MessageSpace2   uint64
	Bound1          uint64
	Bound2          uint64
	Scale           float64
}

// OutputScale returns the base-two logarithm of the scaling factor of the messages of the output.
func (p GlweCiphertextTensorProductParameters) OutputScale(bitsQ int) int {
	_, logScale := math.Frexp(p.Scale)
	return bitsQ - (63 - bits.LeadingZeros64(min(p.MessageSpace1, p.MessageSpace2))) + logScale - 1
}

// ScaleCleartext returns the value Scale/Delta of the cleartext given to the operation.
func (p GlweCiphertextTensorProductParameters) ScaleCleartext(bitsQ int) float64 {
	return math.Ldexp(p.Scale, 63-bits.LeadingZeros64(max(p.MessageSpace1, p.MessageSpace2))-bitsQ)
}

// DefaultGlweCiphertextTensorProductParameters are the parameter sets tested by default.
var DefaultGlweCiphertextTensorProductParameters = []GlweCiphertextTensorProductParameters{
	{
		Noise1:          dispersion.Variance(0.00000001),
		Noise2:          dispersion.Variance(0.00000001),
		GlweDimension:   1,
		PolynomialSize:  256,
		KeyDistribution: entity.Binary,
		MessageSpace1:   16,
		MessageSpace2:   16,
		Bound1:          4,
		Bound2:          4,
		Scale:           1,
	},
}

// LongGlweCiphertextTensorProductParameters are the parameter sets tested with large GLWE dimensions.
var LongGlweCiphertextTensorProductParameters = []GlweCiphertextTensorProductParameters{
	{
		Noise1:          dispersion.Variance(0.00000001),
		Noise2:          dispersion.Variance(0.00000001),
		GlweDimension:   200,
		PolynomialSize:  256,
		KeyDistribution: entity.Binary,
		MessageSpace1:   16,
		MessageSpace2:   16,
		Bound1:          4,
		Bound2:          4,
		Scale:           1,
	},
}

type glweCiphertextTensorProductRepetition[T torus.Unsigned] struct {
	key       *generation.ProtoGlweSecretKey[T]
	tensorKey *generation.ProtoGlweSecretKey[T]
	messages1 []int64
	messages2 []int64
	keyNorm   float64
	scale     *generation.ProtoFloatCleartext
	expected  []T
}

type glweCiphertextTensorProductSample[T torus.Unsigned] struct {
	input1 *generation.ProtoGlweCiphertext[T]
	input2 *generation.ProtoGlweCiphertext[T]
	index  int
}

type glweCiphertextTensorProductContext[Cleartext, Ciphertext any] struct {
	input1   Ciphertext
	input2   Ciphertext
	scale    Cleartext
	output   Ciphertext
	computed bool
}

// GlweCiphertextTensorProductFixture tests the tensor product of two GLWE ciphertexts. One
// coefficient of the output, drawn for each sample, is decrypted under the tensored key and
// compared to the exact negacyclic product of the encrypted messages: the residuals of the
// coefficients of a single output are not independent.
type GlweCiphertextTensorProductFixture[T torus.Unsigned, Cleartext entity.CleartextEntity, Ciphertext entity.GlweCiphertextEntity] struct {
	Engine interface {
		engine.GlweCiphertextTensorProductEngine[Ciphertext, Ciphertext, Cleartext, Ciphertext]
		engine.GlweCiphertextTensorProductUncheckedEngine[Ciphertext, Ciphertext, Cleartext, Ciphertext]
	}
	Synthesizer interface {
		generation.SynthesizesFloatCleartext[Cleartext]
		generation.SynthesizesGlweCiphertext[T, Ciphertext]
	}
	ParameterSets []GlweCiphertextTensorProductParameters
}

// Name implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) Name() string {
	return "GlweCiphertextTensorProduct"
}

// Parameters implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) Parameters() []GlweCiphertextTensorProductParameters {
	if f.ParameterSets != nil {
		return f.ParameterSets
	}
	return DefaultGlweCiphertextTensorProductParameters
}

// RepetitionPrototypes implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) RepetitionPrototypes(params GlweCiphertextTensorProductParameters, maker *generation.Maker[T]) glweCiphertextTensorProductRepetition[T] {

	n := int(params.PolynomialSize)
	key := maker.NewGlweSecretKey(params.GlweDimension, params.PolynomialSize, params.KeyDistribution)

	rep := glweCiphertextTensorProductRepetition[T]{
		key:       key,
		tensorKey: maker.TensorGlweSecretKey(key),
		keyNorm:   key.SquaredNorm(),
		messages1: maker.RandomMessages(n, params.Bound1),
		messages2: maker.RandomMessages(n, params.Bound2),
		scale:     generation.TransformRawToCleartext(params.ScaleCleartext(torus.Bits[T]())),
	}

	outputScale := T(1) << params.OutputScale(torus.Bits[T]())
	product := torus.MulNegacyclicInt64(rep.messages1, rep.messages2)
	rep.expected = make([]T, n)
	for i := range product {
		rep.expected[i] = torus.FromSigned[T](product[i]) * outputScale
	}

	return rep
}

// SamplePrototypes implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) SamplePrototypes(params GlweCiphertextTensorProductParameters, maker *generation.Maker[T], repetition glweCiphertextTensorProductRepetition[T]) glweCiphertextTensorProductSample[T] {
	plaintext1 := maker.TransformRawVecToPlaintextVector(generation.Encode[T](repetition.messages1, params.MessageSpace1))
	plaintext2 := maker.TransformRawVecToPlaintextVector(generation.Encode[T](repetition.messages2, params.MessageSpace2))
	return glweCiphertextTensorProductSample[T]{
		input1: maker.EncryptPlaintextVectorToGlweCiphertext(repetition.key, plaintext1, params.Noise1),
		input2: maker.EncryptPlaintextVectorToGlweCiphertext(repetition.key, plaintext2, params.Noise2),
		index:  maker.RandomIndex(int(params.PolynomialSize)),
	}
}

// PrepareContext implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) PrepareContext(params GlweCiphertextTensorProductParameters, repetition glweCiphertextTensorProductRepetition[T], sample glweCiphertextTensorProductSample[T]) glweCiphertextTensorProductContext[Cleartext, Ciphertext] {
	return glweCiphertextTensorProductContext[Cleartext, Ciphertext]{
		input1: f.Synthesizer.SynthesizeGlweCiphertext(sample.input1),
		input2: f.Synthesizer.SynthesizeGlweCiphertext(sample.input2),
		scale:  f.Synthesizer.SynthesizeFloatCleartext(repetition.scale),
	}
}

// Execute implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) Execute(params GlweCiphertextTensorProductParameters, context *glweCiphertextTensorProductContext[Cleartext, Ciphertext], unchecked bool) (err error) {
	if unchecked {
		context.output = f.Engine.TensorProductGlweCiphertextUnchecked(context.input1, context.input2, context.scale)
	} else if context.output, err = f.Engine.TensorProductGlweCiphertext(context.input1, context.input2, context.scale); err != nil {
		return
	}
	context.computed = true
	return
}

// ProcessContext implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) ProcessContext(params GlweCiphertextTensorProductParameters, maker *generation.Maker[T], repetition glweCiphertextTensorProductRepetition[T], sample glweCiphertextTensorProductSample[T], context glweCiphertextTensorProductContext[Cleartext, Ciphertext]) Outcome[T] {
	output := f.Synthesizer.UnsynthesizeGlweCiphertext(context.output)
	return Outcome[T]{
		Expected: []T{repetition.expected[sample.index]},
		Actual:   []T{maker.DecryptGlweCiphertextCoefficient(repetition.tensorKey, output, sample.index)},
	}
}

// Cleanup implements Fixture.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) Cleanup(context glweCiphertextTensorProductContext[Cleartext, Ciphertext]) {
	f.Synthesizer.DestroyGlweCiphertext(context.input1)
	f.Synthesizer.DestroyGlweCiphertext(context.input2)
	f.Synthesizer.DestroyFloatCleartext(context.scale)
	if context.computed {
		f.Synthesizer.DestroyGlweCiphertext(context.output)
	}
}

// ComputeCriteria implements Fixture. The prediction is conditioned on the squared norm of the
// key of the repetition.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) ComputeCriteria(params GlweCiphertextTensorProductParameters, repetition glweCiphertextTensorProductRepetition[T]) dispersion.Variance {
	return npe.EstimateTensorProductNoiseForKey[T](
		params.PolynomialSize,
		params.GlweDimension,
		params.KeyDistribution.KeyKind(),
		repetition.keyNorm,
		params.Noise1,
		params.Noise2,
		params.MessageSpace1,
		params.MessageSpace2,
		params.Bound1,
		params.Bound2,
		params.Scale)
}

// Run runs the fixture with the given configuration.
func (f *GlweCiphertextTensorProductFixture[T, Cleartext, Ciphertext]) Run(config Config) ([]Result[GlweCiphertextTensorProductParameters], error) {
	return Run[T, GlweCiphertextTensorProductParameters, glweCiphertextTensorProductRepetition[T], glweCiphertextTensorProductSample[T], glweCiphertextTensorProductContext[Cleartext, Ciphertext]](f, config)
}
