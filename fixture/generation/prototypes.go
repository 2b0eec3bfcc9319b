package generation

import (
	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// ProtoCleartext is the prototype of a cleartext of raw type V.
type ProtoCleartext[V entity.Raw] struct {
	Value V
}

// ProtoFloatCleartext is the prototype of a floating point cleartext.
type ProtoFloatCleartext = ProtoCleartext[float64]

// ProtoPlaintext is the prototype of a plaintext.
type ProtoPlaintext[T torus.Unsigned] struct {
	Value T
}

// ProtoPlaintextVector is the prototype of a plaintext vector.
type ProtoPlaintextVector[T torus.Unsigned] struct {
	Values []T
}

// Equal returns true if both vectors hold the same values.
func (p *ProtoPlaintextVector[T]) Equal(other *ProtoPlaintextVector[T]) bool {
	return cmp.Equal(p.Values, other.Values)
}

// ProtoLweSecretKey is the prototype of an LWE secret key.
type ProtoLweSecretKey[T torus.Unsigned] struct {
	Distribution entity.KeyDistribution
	Coefficients []T
}

// LweDimension returns the dimension of the key.
func (sk *ProtoLweSecretKey[T]) LweDimension() parameters.LweDimension {
	return parameters.LweDimension(len(sk.Coefficients))
}

// Equal returns true if both keys have the same distribution and coefficients.
func (sk *ProtoLweSecretKey[T]) Equal(other *ProtoLweSecretKey[T]) bool {
	return sk.Distribution == other.Distribution && cmp.Equal(sk.Coefficients, other.Coefficients)
}

// ProtoGlweSecretKey is the prototype of a GLWE secret key.
type ProtoGlweSecretKey[T torus.Unsigned] struct {
	Distribution entity.KeyDistribution
	Polynomials  [][]T
}

// GlweDimension returns the number of polynomials of the key.
func (sk *ProtoGlweSecretKey[T]) GlweDimension() parameters.GlweDimension {
	return parameters.GlweDimension(len(sk.Polynomials))
}

// PolynomialSize returns the size of the polynomials of the key.
func (sk *ProtoGlweSecretKey[T]) PolynomialSize() parameters.PolynomialSize {
	return parameters.PolynomialSize(len(sk.Polynomials[0]))
}

// SquaredNorm returns the sum of the squares of the centered coefficients of the key.
func (sk *ProtoGlweSecretKey[T]) SquaredNorm() (norm float64) {
	for _, p := range sk.Polynomials {
		for _, c := range p {
			x := float64(torus.Signed(c))
			norm += x * x
		}
	}
	return
}

// Equal returns true if both keys have the same distribution and polynomials.
func (sk *ProtoGlweSecretKey[T]) Equal(other *ProtoGlweSecretKey[T]) bool {
	return sk.Distribution == other.Distribution && cmp.Equal(sk.Polynomials, other.Polynomials)
}

// ProtoLweCiphertext is the prototype of an LWE ciphertext.
type ProtoLweCiphertext[T torus.Unsigned] struct {
	Distribution entity.KeyDistribution
	Mask         []T
	Body         T
}

// LweDimension returns the size of the mask of the ciphertext.
func (ct *ProtoLweCiphertext[T]) LweDimension() parameters.LweDimension {
	return parameters.LweDimension(len(ct.Mask))
}

// Equal returns true if both ciphertexts have the same distribution, mask and body.
func (ct *ProtoLweCiphertext[T]) Equal(other *ProtoLweCiphertext[T]) bool {
	return ct.Distribution == other.Distribution && ct.Body == other.Body && cmp.Equal(ct.Mask, other.Mask)
}

// ProtoGlweCiphertext is the prototype of a GLWE ciphertext.
type ProtoGlweCiphertext[T torus.Unsigned] struct {
	Distribution entity.KeyDistribution
	Masks        [][]T
	Body         []T
}

// GlweDimension returns the number of mask polynomials of the ciphertext.
func (ct *ProtoGlweCiphertext[T]) GlweDimension() parameters.GlweDimension {
	return parameters.GlweDimension(len(ct.Masks))
}

// PolynomialSize returns the size of the polynomials of the ciphertext.
func (ct *ProtoGlweCiphertext[T]) PolynomialSize() parameters.PolynomialSize {
	return parameters.PolynomialSize(len(ct.Body))
}

// Equal returns true if both ciphertexts have the same distribution, masks and body.
func (ct *ProtoGlweCiphertext[T]) Equal(other *ProtoGlweCiphertext[T]) bool {
	return ct.Distribution == other.Distribution && cmp.Equal(ct.Masks, other.Masks) && cmp.Equal(ct.Body, other.Body)
}

// ProtoGgswCiphertext is the prototype of a GGSW ciphertext, stored as (k+1)*levels GLWE rows.
type ProtoGgswCiphertext[T torus.Unsigned] struct {
	Distribution entity.KeyDistribution
	BaseLog      parameters.DecompositionBaseLog
	Levels       parameters.DecompositionLevelCount
	Masks        [][][]T
	Bodies       [][]T
}

// Row returns the i-th row of the ciphertext as a GLWE prototype sharing its backing arrays.
func (ct *ProtoGgswCiphertext[T]) Row(i int) *ProtoGlweCiphertext[T] {
	return &ProtoGlweCiphertext[T]{Distribution: ct.Distribution, Masks: ct.Masks[i], Body: ct.Bodies[i]}
}

// Equal returns true if both ciphertexts have the same distribution, decomposition and rows.
func (ct *ProtoGgswCiphertext[T]) Equal(other *ProtoGgswCiphertext[T]) bool {
	return ct.Distribution == other.Distribution &&
		ct.BaseLog == other.BaseLog &&
		ct.Levels == other.Levels &&
		cmp.Equal(ct.Masks, other.Masks) &&
		cmp.Equal(ct.Bodies, other.Bodies)
}

// ProtoLweKeyswitchKey is the prototype of an LWE keyswitch key, stored as
// InputLweDimension*levels LWE ciphertexts under the output key.
type ProtoLweKeyswitchKey[T torus.Unsigned] struct {
	InputDistribution  entity.KeyDistribution
	OutputDistribution entity.KeyDistribution
	BaseLog            parameters.DecompositionBaseLog
	Levels             parameters.DecompositionLevelCount
	Masks              [][]T
	Bodies             []T
}

// Equal returns true if both keys have the same distributions, decomposition and rows.
func (ksk *ProtoLweKeyswitchKey[T]) Equal(other *ProtoLweKeyswitchKey[T]) bool {
	return ksk.InputDistribution == other.InputDistribution &&
		ksk.OutputDistribution == other.OutputDistribution &&
		ksk.BaseLog == other.BaseLog &&
		ksk.Levels == other.Levels &&
		cmp.Equal(ksk.Masks, other.Masks) &&
		cmp.Equal(ksk.Bodies, other.Bodies)
}
