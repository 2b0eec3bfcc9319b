package reference

import (
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// Entity is implemented by every entity of the reference backend.
type Entity interface {
	entity.AbstractEntity
	id() uint64
}

type handle struct {
	uid uint64
}

func (h handle) id() uint64 {
	return h.uid
}

// Cleartext is a cleartext holding a raw value.
type Cleartext[V entity.Raw] struct {
	handle
	value V
}

func (*Cleartext[V]) Kind() entity.Kind                       { return entity.CleartextKind }
func (*Cleartext[V]) KeyDistribution() entity.KeyDistribution { return nil }
func (*Cleartext[V]) Precision() entity.Precision             { return entity.PrecisionOf[V]() }

// Plaintext is a single element of Z_q.
type Plaintext[T torus.Unsigned] struct {
	handle
	value T
}

func (*Plaintext[T]) Kind() entity.Kind                       { return entity.PlaintextKind }
func (*Plaintext[T]) KeyDistribution() entity.KeyDistribution { return nil }
func (*Plaintext[T]) Precision() entity.Precision             { return precision[T]() }

// PlaintextVector is a vector of elements of Z_q.
type PlaintextVector[T torus.Unsigned] struct {
	handle
	values []T
}

func (*PlaintextVector[T]) Kind() entity.Kind                       { return entity.PlaintextVectorKind }
func (*PlaintextVector[T]) KeyDistribution() entity.KeyDistribution { return nil }
func (*PlaintextVector[T]) Precision() entity.Precision             { return precision[T]() }

// PlaintextCount returns the number of plaintexts of the vector.
func (p *PlaintextVector[T]) PlaintextCount() parameters.PlaintextCount {
	return parameters.PlaintextCount(len(p.values))
}

// LweSecretKey is an LWE secret key, whose coefficients are stored modulo q.
type LweSecretKey[T torus.Unsigned] struct {
	handle
	distribution entity.KeyDistribution
	coefficients []T
}

func (*LweSecretKey[T]) Kind() entity.Kind                          { return entity.LweSecretKeyKind }
func (sk *LweSecretKey[T]) KeyDistribution() entity.KeyDistribution { return sk.distribution }
func (*LweSecretKey[T]) Precision() entity.Precision                { return precision[T]() }

// LweDimension returns the dimension of the key.
func (sk *LweSecretKey[T]) LweDimension() parameters.LweDimension {
	return parameters.LweDimension(len(sk.coefficients))
}

// GlweSecretKey is a GLWE secret key made of GlweDimension polynomials.
type GlweSecretKey[T torus.Unsigned] struct {
	handle
	distribution entity.KeyDistribution
	polynomials  [][]T
}

func (*GlweSecretKey[T]) Kind() entity.Kind                          { return entity.GlweSecretKeyKind }
func (sk *GlweSecretKey[T]) KeyDistribution() entity.KeyDistribution { return sk.distribution }
func (*GlweSecretKey[T]) Precision() entity.Precision                { return precision[T]() }

// GlweDimension returns the number of polynomials of the key.
func (sk *GlweSecretKey[T]) GlweDimension() parameters.GlweDimension {
	return parameters.GlweDimension(len(sk.polynomials))
}

// PolynomialSize returns the size of the polynomials of the key.
func (sk *GlweSecretKey[T]) PolynomialSize() parameters.PolynomialSize {
	return parameters.PolynomialSize(len(sk.polynomials[0]))
}

// LweCiphertext is an LWE ciphertext (a, b) with b = <a, s> + m + e.
type LweCiphertext[T torus.Unsigned] struct {
	handle
	distribution entity.KeyDistribution
	mask         []T
	body         T
}

func (*LweCiphertext[T]) Kind() entity.Kind                          { return entity.LweCiphertextKind }
func (ct *LweCiphertext[T]) KeyDistribution() entity.KeyDistribution { return ct.distribution }
func (*LweCiphertext[T]) Precision() entity.Precision                { return precision[T]() }

// LweDimension returns the size of the mask of the ciphertext.
func (ct *LweCiphertext[T]) LweDimension() parameters.LweDimension {
	return parameters.LweDimension(len(ct.mask))
}

// GlweCiphertext is a GLWE ciphertext (A_0, ..., A_{k-1}, B) with B = sum A_i S_i + M + E.
type GlweCiphertext[T torus.Unsigned] struct {
	handle
	distribution entity.KeyDistribution
	masks        [][]T
	body         []T
}

func (*GlweCiphertext[T]) Kind() entity.Kind                          { return entity.GlweCiphertextKind }
func (ct *GlweCiphertext[T]) KeyDistribution() entity.KeyDistribution { return ct.distribution }
func (*GlweCiphertext[T]) Precision() entity.Precision                { return precision[T]() }

// GlweDimension returns the number of mask polynomials of the ciphertext.
func (ct *GlweCiphertext[T]) GlweDimension() parameters.GlweDimension {
	return parameters.GlweDimension(len(ct.masks))
}

// PolynomialSize returns the size of the polynomials of the ciphertext.
func (ct *GlweCiphertext[T]) PolynomialSize() parameters.PolynomialSize {
	return parameters.PolynomialSize(len(ct.body))
}

// GgswCiphertext is a GGSW ciphertext, stored as (k+1)*levels GLWE rows ordered by extended key
// polynomial first, then by level.
type GgswCiphertext[T torus.Unsigned] struct {
	handle
	distribution entity.KeyDistribution
	baseLog      parameters.DecompositionBaseLog
	levels       parameters.DecompositionLevelCount
	rows         []glwe[T]
}

type glwe[T torus.Unsigned] struct {
	masks [][]T
	body  []T
}

func (*GgswCiphertext[T]) Kind() entity.Kind                          { return entity.GgswCiphertextKind }
func (ct *GgswCiphertext[T]) KeyDistribution() entity.KeyDistribution { return ct.distribution }
func (*GgswCiphertext[T]) Precision() entity.Precision                { return precision[T]() }

// GlweDimension returns the GLWE dimension of the rows of the ciphertext.
func (ct *GgswCiphertext[T]) GlweDimension() parameters.GlweDimension {
	return parameters.GlweDimension(len(ct.rows[0].masks))
}

// PolynomialSize returns the polynomial size of the rows of the ciphertext.
func (ct *GgswCiphertext[T]) PolynomialSize() parameters.PolynomialSize {
	return parameters.PolynomialSize(len(ct.rows[0].body))
}

// DecompositionBaseLog returns the base log of the gadget of the ciphertext.
func (ct *GgswCiphertext[T]) DecompositionBaseLog() parameters.DecompositionBaseLog {
	return ct.baseLog
}

// DecompositionLevelCount returns the level count of the gadget of the ciphertext.
func (ct *GgswCiphertext[T]) DecompositionLevelCount() parameters.DecompositionLevelCount {
	return ct.levels
}

// LweKeyswitchKey is an LWE keyswitch key, made of InputLweDimension*levels LWE ciphertexts under
// the output key, ordered by input key coefficient first, then by level.
type LweKeyswitchKey[T torus.Unsigned] struct {
	handle
	input, output entity.KeyDistribution
	inputDim      parameters.LweDimension
	baseLog       parameters.DecompositionBaseLog
	levels        parameters.DecompositionLevelCount
	masks         [][]T
	bodies        []T
}

func (*LweKeyswitchKey[T]) Kind() entity.Kind                           { return entity.LweKeyswitchKeyKind }
func (ksk *LweKeyswitchKey[T]) KeyDistribution() entity.KeyDistribution { return ksk.output }
func (*LweKeyswitchKey[T]) Precision() entity.Precision                 { return precision[T]() }

// InputKeyDistribution returns the key distribution of the input key.
func (ksk *LweKeyswitchKey[T]) InputKeyDistribution() entity.KeyDistribution { return ksk.input }

// OutputKeyDistribution returns the key distribution of the output key.
func (ksk *LweKeyswitchKey[T]) OutputKeyDistribution() entity.KeyDistribution { return ksk.output }

// InputLweDimension returns the dimension of the input key.
func (ksk *LweKeyswitchKey[T]) InputLweDimension() parameters.LweDimension { return ksk.inputDim }

// OutputLweDimension returns the dimension of the output key.
func (ksk *LweKeyswitchKey[T]) OutputLweDimension() parameters.LweDimension {
	return parameters.LweDimension(len(ksk.masks[0]))
}

// DecompositionBaseLog returns the base log of the decomposition of the key.
func (ksk *LweKeyswitchKey[T]) DecompositionBaseLog() parameters.DecompositionBaseLog {
	return ksk.baseLog
}

// DecompositionLevelCount returns the level count of the decomposition of the key.
func (ksk *LweKeyswitchKey[T]) DecompositionLevelCount() parameters.DecompositionLevelCount {
	return ksk.levels
}

func precision[T torus.Unsigned]() entity.Precision {
	if torus.Bits[T]() == 32 {
		return entity.Precision32{}
	}
	return entity.Precision64{}
}
