package generation

import (
	"fmt"

	"github.com/tuneinsight/fhecore/backends/reference"
	"github.com/tuneinsight/fhecore/core/torus"
)

// ReferenceSynthesizer synthesizes the entities of the reference backend.
// Its methods panic on failure: a failure to synthesize or destroy an entity is a bug of the
// calling fixture, not an outcome of the operation under test.
type ReferenceSynthesizer[T torus.Unsigned] struct {
	Engine          *reference.Engine[T]
	Cleartexts      *reference.CleartextEngine[T]
	FloatCleartexts *reference.CleartextEngine[float64]
}

// NewReferenceSynthesizer returns a new ReferenceSynthesizer creating its entities with eng.
func NewReferenceSynthesizer[T torus.Unsigned](eng *reference.Engine[T]) *ReferenceSynthesizer[T] {
	return &ReferenceSynthesizer[T]{
		Engine:          eng,
		Cleartexts:      reference.NewCleartextEngine[T](eng),
		FloatCleartexts: reference.NewCleartextEngine[float64](eng),
	}
}

func (s *ReferenceSynthesizer[T]) destroy(e reference.Entity) {
	if err := s.Engine.Destroy(e); err != nil {
		panic(fmt.Errorf("cannot destroy %s: %w", e.Kind(), err))
	}
}

// SynthesizeCleartext implements SynthesizesCleartext.
func (s *ReferenceSynthesizer[T]) SynthesizeCleartext(prototype *ProtoCleartext[T]) *reference.Cleartext[T] {
	return s.Cleartexts.CreateCleartextUnchecked(prototype.Value)
}

// UnsynthesizeCleartext implements SynthesizesCleartext.
func (s *ReferenceSynthesizer[T]) UnsynthesizeCleartext(cleartext *reference.Cleartext[T]) *ProtoCleartext[T] {
	return &ProtoCleartext[T]{Value: s.Cleartexts.RetrieveCleartextUnchecked(cleartext)}
}

// DestroyCleartext implements SynthesizesCleartext.
func (s *ReferenceSynthesizer[T]) DestroyCleartext(cleartext *reference.Cleartext[T]) {
	s.destroy(cleartext)
}

// SynthesizeFloatCleartext implements SynthesizesFloatCleartext.
func (s *ReferenceSynthesizer[T]) SynthesizeFloatCleartext(prototype *ProtoCleartext[float64]) *reference.Cleartext[float64] {
	return s.FloatCleartexts.CreateCleartextUnchecked(prototype.Value)
}

// UnsynthesizeFloatCleartext implements SynthesizesFloatCleartext.
func (s *ReferenceSynthesizer[T]) UnsynthesizeFloatCleartext(cleartext *reference.Cleartext[float64]) *ProtoCleartext[float64] {
	return &ProtoCleartext[float64]{Value: s.FloatCleartexts.RetrieveCleartextUnchecked(cleartext)}
}

// DestroyFloatCleartext implements SynthesizesFloatCleartext.
func (s *ReferenceSynthesizer[T]) DestroyFloatCleartext(cleartext *reference.Cleartext[float64]) {
	s.destroy(cleartext)
}

// SynthesizePlaintext implements SynthesizesPlaintext.
func (s *ReferenceSynthesizer[T]) SynthesizePlaintext(prototype *ProtoPlaintext[T]) *reference.Plaintext[T] {
	return s.Engine.CreatePlaintextUnchecked(prototype.Value)
}

// UnsynthesizePlaintext implements SynthesizesPlaintext.
func (s *ReferenceSynthesizer[T]) UnsynthesizePlaintext(plaintext *reference.Plaintext[T]) *ProtoPlaintext[T] {
	return &ProtoPlaintext[T]{Value: s.Engine.RetrievePlaintextUnchecked(plaintext)}
}

// DestroyPlaintext implements SynthesizesPlaintext.
func (s *ReferenceSynthesizer[T]) DestroyPlaintext(plaintext *reference.Plaintext[T]) {
	s.destroy(plaintext)
}

// SynthesizePlaintextVector implements SynthesizesPlaintextVector.
func (s *ReferenceSynthesizer[T]) SynthesizePlaintextVector(prototype *ProtoPlaintextVector[T]) *reference.PlaintextVector[T] {
	return s.Engine.CreatePlaintextVectorUnchecked(prototype.Values)
}

// UnsynthesizePlaintextVector implements SynthesizesPlaintextVector.
func (s *ReferenceSynthesizer[T]) UnsynthesizePlaintextVector(plaintext *reference.PlaintextVector[T]) *ProtoPlaintextVector[T] {
	return &ProtoPlaintextVector[T]{Values: s.Engine.RetrievePlaintextVectorUnchecked(plaintext)}
}

// DestroyPlaintextVector implements SynthesizesPlaintextVector.
func (s *ReferenceSynthesizer[T]) DestroyPlaintextVector(plaintext *reference.PlaintextVector[T]) {
	s.destroy(plaintext)
}

// SynthesizeLweSecretKey implements SynthesizesLweSecretKey.
func (s *ReferenceSynthesizer[T]) SynthesizeLweSecretKey(prototype *ProtoLweSecretKey[T]) *reference.LweSecretKey[T] {
	return s.Engine.CreateLweSecretKeyFromContainer(prototype.Distribution, prototype.Coefficients)
}

// UnsynthesizeLweSecretKey implements SynthesizesLweSecretKey.
func (s *ReferenceSynthesizer[T]) UnsynthesizeLweSecretKey(sk *reference.LweSecretKey[T]) *ProtoLweSecretKey[T] {
	return &ProtoLweSecretKey[T]{Distribution: sk.KeyDistribution(), Coefficients: s.Engine.RetrieveLweSecretKeyContainer(sk)}
}

// DestroyLweSecretKey implements SynthesizesLweSecretKey.
func (s *ReferenceSynthesizer[T]) DestroyLweSecretKey(sk *reference.LweSecretKey[T]) {
	s.destroy(sk)
}

// SynthesizeGlweSecretKey implements SynthesizesGlweSecretKey.
func (s *ReferenceSynthesizer[T]) SynthesizeGlweSecretKey(prototype *ProtoGlweSecretKey[T]) *reference.GlweSecretKey[T] {
	return s.Engine.CreateGlweSecretKeyFromContainer(prototype.Distribution, prototype.Polynomials)
}

// UnsynthesizeGlweSecretKey implements SynthesizesGlweSecretKey.
func (s *ReferenceSynthesizer[T]) UnsynthesizeGlweSecretKey(sk *reference.GlweSecretKey[T]) *ProtoGlweSecretKey[T] {
	return &ProtoGlweSecretKey[T]{Distribution: sk.KeyDistribution(), Polynomials: s.Engine.RetrieveGlweSecretKeyContainer(sk)}
}

// DestroyGlweSecretKey implements SynthesizesGlweSecretKey.
func (s *ReferenceSynthesizer[T]) DestroyGlweSecretKey(sk *reference.GlweSecretKey[T]) {
	s.destroy(sk)
}

// SynthesizeLweCiphertext implements SynthesizesLweCiphertext.
func (s *ReferenceSynthesizer[T]) SynthesizeLweCiphertext(prototype *ProtoLweCiphertext[T]) *reference.LweCiphertext[T] {
	return s.Engine.CreateLweCiphertextFromContainer(prototype.Distribution, prototype.Mask, prototype.Body)
}

// UnsynthesizeLweCiphertext implements SynthesizesLweCiphertext.
func (s *ReferenceSynthesizer[T]) UnsynthesizeLweCiphertext(ct *reference.LweCiphertext[T]) *ProtoLweCiphertext[T] {
	mask, body := s.Engine.RetrieveLweCiphertextContainer(ct)
	return &ProtoLweCiphertext[T]{Distribution: ct.KeyDistribution(), Mask: mask, Body: body}
}

// DestroyLweCiphertext implements SynthesizesLweCiphertext.
func (s *ReferenceSynthesizer[T]) DestroyLweCiphertext(ct *reference.LweCiphertext[T]) {
	s.destroy(ct)
}

// SynthesizeGlweCiphertext implements SynthesizesGlweCiphertext.
func (s *ReferenceSynthesizer[T]) SynthesizeGlweCiphertext(prototype *ProtoGlweCiphertext[T]) *reference.GlweCiphertext[T] {
	return s.Engine.CreateGlweCiphertextFromContainer(prototype.Distribution, prototype.Masks, prototype.Body)
}

// UnsynthesizeGlweCiphertext implements SynthesizesGlweCiphertext.
func (s *ReferenceSynthesizer[T]) UnsynthesizeGlweCiphertext(ct *reference.GlweCiphertext[T]) *ProtoGlweCiphertext[T] {
	masks, body := s.Engine.RetrieveGlweCiphertextContainer(ct)
	return &ProtoGlweCiphertext[T]{Distribution: ct.KeyDistribution(), Masks: masks, Body: body}
}

// DestroyGlweCiphertext implements SynthesizesGlweCiphertext.
func (s *ReferenceSynthesizer[T]) DestroyGlweCiphertext(ct *reference.GlweCiphertext[T]) {
	s.destroy(ct)
}

// SynthesizeGgswCiphertext implements SynthesizesGgswCiphertext.
func (s *ReferenceSynthesizer[T]) SynthesizeGgswCiphertext(prototype *ProtoGgswCiphertext[T]) *reference.GgswCiphertext[T] {
	return s.Engine.CreateGgswCiphertextFromContainer(prototype.Distribution, prototype.BaseLog, prototype.Levels, prototype.Masks, prototype.Bodies)
}

// UnsynthesizeGgswCiphertext implements SynthesizesGgswCiphertext.
func (s *ReferenceSynthesizer[T]) UnsynthesizeGgswCiphertext(ct *reference.GgswCiphertext[T]) *ProtoGgswCiphertext[T] {
	masks, bodies := s.Engine.RetrieveGgswCiphertextContainer(ct)
	return &ProtoGgswCiphertext[T]{
		Distribution: ct.KeyDistribution(),
		BaseLog:      ct.DecompositionBaseLog(),
		Levels:       ct.DecompositionLevelCount(),
		Masks:        masks,
		Bodies:       bodies,
	}
}

// DestroyGgswCiphertext implements SynthesizesGgswCiphertext.
func (s *ReferenceSynthesizer[T]) DestroyGgswCiphertext(ct *reference.GgswCiphertext[T]) {
	s.destroy(ct)
}

// SynthesizeLweKeyswitchKey implements SynthesizesLweKeyswitchKey.
func (s *ReferenceSynthesizer[T]) SynthesizeLweKeyswitchKey(prototype *ProtoLweKeyswitchKey[T]) *reference.LweKeyswitchKey[T] {
	return s.Engine.CreateLweKeyswitchKeyFromContainer(prototype.InputDistribution, prototype.OutputDistribution, prototype.BaseLog, prototype.Levels, prototype.Masks, prototype.Bodies)
}

// UnsynthesizeLweKeyswitchKey implements SynthesizesLweKeyswitchKey.
func (s *ReferenceSynthesizer[T]) UnsynthesizeLweKeyswitchKey(ksk *reference.LweKeyswitchKey[T]) *ProtoLweKeyswitchKey[T] {
	masks, bodies := s.Engine.RetrieveLweKeyswitchKeyContainer(ksk)
	return &ProtoLweKeyswitchKey[T]{
		InputDistribution:  ksk.InputKeyDistribution(),
		OutputDistribution: ksk.OutputKeyDistribution(),
		BaseLog:            ksk.DecompositionBaseLog(),
		Levels:             ksk.DecompositionLevelCount(),
		Masks:              masks,
		Bodies:             bodies,
	}
}

// DestroyLweKeyswitchKey implements SynthesizesLweKeyswitchKey.
func (s *ReferenceSynthesizer[T]) DestroyLweKeyswitchKey(ksk *reference.LweKeyswitchKey[T]) {
	s.destroy(ksk)
}
