// Package generation implements the backend-independent prototypes of the entities, the Maker
// generating and transforming them, and the synthesizing interfaces converting prototypes into
// entities of a backend and back.
//
// Prototypes are plain Go values: they are what the fixtures generate, what they compare and
// what they decrypt to obtain the observed outcomes of an operation.
package generation

import (
	"fmt"

	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/utils/sampling"
)

// Maker generates random prototypes and implements the prototype-level operations
// (key generation, encryption, decryption) used as ground truth by the fixtures.
//
// A Maker is deterministic for a given key and is not safe for concurrent use.
type Maker[T torus.Unsigned] struct {
	prng    *sampling.KeyedPRNG
	sampler *sampling.TorusSampler[T]
}

// NewMaker returns a new Maker whose randomness is derived from key.
func NewMaker[T torus.Unsigned](key []byte) (*Maker[T], error) {
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewMaker: %w", err)
	}
	return &Maker[T]{prng: prng, sampler: sampling.NewTorusSampler[T](prng)}, nil
}

// Key returns the key of the Maker.
func (m *Maker[T]) Key() []byte {
	return m.prng.Key()
}

// RandomRaw returns a uniform element of Z_q.
func (m *Maker[T]) RandomRaw() T {
	return m.sampler.Uniform()
}

// RandomRawVec returns a vector of size n of uniform elements of Z_q.
func (m *Maker[T]) RandomRawVec(n int) (v []T) {
	v = make([]T, n)
	m.sampler.ReadUniform(v)
	return
}

// RandomIndex returns an index uniform in [0, n).
func (m *Maker[T]) RandomIndex(n int) int {
	return int(m.sampler.Source().Intn(uint64(n)))
}

// RandomMessages returns a vector of size n of integers uniform in [-bound, bound].
func (m *Maker[T]) RandomMessages(n int, bound uint64) (v []int64) {
	v = make([]int64, n)
	for i := range v {
		v[i] = int64(m.sampler.Source().Intn(2*bound+1)) - int64(bound)
	}
	return
}

// Encode returns the messages multiplied by q/delta, modulo q.
func Encode[T torus.Unsigned](messages []int64, delta uint64) (v []T) {
	scale := torus.Delta[T](delta)
	v = make([]T, len(messages))
	for i := range messages {
		v[i] = torus.FromSigned[T](messages[i]) * scale
	}
	return
}

// TransformRawToCleartext returns the prototype of a cleartext holding value.
func TransformRawToCleartext[V entity.Raw](value V) *ProtoCleartext[V] {
	return &ProtoCleartext[V]{Value: value}
}

// TransformCleartextToRaw returns the value of the cleartext prototype.
func TransformCleartextToRaw[V entity.Raw](cleartext *ProtoCleartext[V]) V {
	return cleartext.Value
}

// TransformRawToPlaintext returns the prototype of a plaintext holding value.
func (m *Maker[T]) TransformRawToPlaintext(value T) *ProtoPlaintext[T] {
	return &ProtoPlaintext[T]{Value: value}
}

// TransformPlaintextToRaw returns the value of the plaintext prototype.
func (m *Maker[T]) TransformPlaintextToRaw(plaintext *ProtoPlaintext[T]) T {
	return plaintext.Value
}

// TransformRawVecToPlaintextVector returns the prototype of a plaintext vector holding a copy of values.
func (m *Maker[T]) TransformRawVecToPlaintextVector(values []T) *ProtoPlaintextVector[T] {
	return &ProtoPlaintextVector[T]{Values: append([]T{}, values...)}
}

// TransformPlaintextVectorToRawVec returns a copy of the values of the plaintext vector prototype.
func (m *Maker[T]) TransformPlaintextVectorToRawVec(plaintext *ProtoPlaintextVector[T]) []T {
	return append([]T{}, plaintext.Values...)
}

// NewLweSecretKey returns a new random LWE secret key prototype.
func (m *Maker[T]) NewLweSecretKey(dimension parameters.LweDimension, distribution entity.KeyDistribution) *ProtoLweSecretKey[T] {
	sk := &ProtoLweSecretKey[T]{Distribution: distribution, Coefficients: make([]T, dimension)}
	m.sampler.ReadKey(sk.Coefficients, distribution.KeyKind())
	return sk
}

// NewGlweSecretKey returns a new random GLWE secret key prototype.
func (m *Maker[T]) NewGlweSecretKey(dimension parameters.GlweDimension, size parameters.PolynomialSize, distribution entity.KeyDistribution) *ProtoGlweSecretKey[T] {
	sk := &ProtoGlweSecretKey[T]{Distribution: distribution, Polynomials: make([][]T, dimension)}
	for i := range sk.Polynomials {
		sk.Polynomials[i] = make([]T, size)
		m.sampler.ReadKey(sk.Polynomials[i], distribution.KeyKind())
	}
	return sk
}

// TensorGlweSecretKey returns the key decrypting the tensor product of two ciphertexts encrypted
// under sk: the polynomials S_i, then S_i^2, then S_i S_j for i < j.
func (m *Maker[T]) TensorGlweSecretKey(sk *ProtoGlweSecretKey[T]) *ProtoGlweSecretKey[T] {
	k := len(sk.Polynomials)
	out := &ProtoGlweSecretKey[T]{Distribution: sk.Distribution, Polynomials: make([][]T, 0, k*(k+3)/2)}
	for i := 0; i < k; i++ {
		out.Polynomials = append(out.Polynomials, append([]T{}, sk.Polynomials[i]...))
	}
	for i := 0; i < k; i++ {
		out.Polynomials = append(out.Polynomials, torus.MulNegacyclic(sk.Polynomials[i], sk.Polynomials[i]))
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			out.Polynomials = append(out.Polynomials, torus.MulNegacyclic(sk.Polynomials[i], sk.Polynomials[j]))
		}
	}
	return out
}

// NewLweKeyswitchKey returns a new keyswitch key prototype from input to output.
func (m *Maker[T]) NewLweKeyswitchKey(input, output *ProtoLweSecretKey[T], baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, noise dispersion.DispersionParameter) *ProtoLweKeyswitchKey[T] {

	rows := len(input.Coefficients) * int(levels)

	ksk := &ProtoLweKeyswitchKey[T]{
		InputDistribution:  input.Distribution,
		OutputDistribution: output.Distribution,
		BaseLog:            baseLog,
		Levels:             levels,
		Masks:              make([][]T, rows),
		Bodies:             make([]T, rows),
	}

	for i, si := range input.Coefficients {
		for j := 0; j < int(levels); j++ {
			row := i*int(levels) + j
			ksk.Masks[row] = make([]T, len(output.Coefficients))
			ksk.Bodies[row] = m.encryptLwe(output.Coefficients, ksk.Masks[row], torus.GadgetValue(si, int(baseLog), j+1), noise)
		}
	}

	return ksk
}

func (m *Maker[T]) encryptLwe(key, mask []T, value T, noise dispersion.DispersionParameter) T {
	m.sampler.ReadUniform(mask)
	return torus.Dot(mask, key) + value + m.sampler.Gaussian(noise.GetStandardDev())
}

// EncryptPlaintextToLweCiphertext returns a new LWE encryption prototype of the plaintext.
func (m *Maker[T]) EncryptPlaintextToLweCiphertext(sk *ProtoLweSecretKey[T], plaintext *ProtoPlaintext[T], noise dispersion.DispersionParameter) *ProtoLweCiphertext[T] {
	ct := &ProtoLweCiphertext[T]{Distribution: sk.Distribution, Mask: make([]T, len(sk.Coefficients))}
	ct.Body = m.encryptLwe(sk.Coefficients, ct.Mask, plaintext.Value, noise)
	return ct
}

// DecryptLweCiphertextToPlaintext returns the noisy plaintext encrypted by the ciphertext prototype.
// It panics if the key and the ciphertext are not compatible.
func (m *Maker[T]) DecryptLweCiphertextToPlaintext(sk *ProtoLweSecretKey[T], ct *ProtoLweCiphertext[T]) *ProtoPlaintext[T] {
	if sk.Distribution != ct.Distribution || len(sk.Coefficients) != len(ct.Mask) {
		panic("cannot DecryptLweCiphertextToPlaintext: key and ciphertext do not match")
	}
	return &ProtoPlaintext[T]{Value: ct.Body - torus.Dot(ct.Mask, sk.Coefficients)}
}

func (m *Maker[T]) encryptGlwe(key [][]T, masks [][]T, body, values []T, noise dispersion.DispersionParameter) {
	copy(body, values)
	m.sampler.ReadGaussianThenAdd(body, noise.GetStandardDev())
	for i := range masks {
		masks[i] = make([]T, len(body))
		m.sampler.ReadUniform(masks[i])
		torus.MulNegacyclicThenAdd(masks[i], key[i], body)
	}
}

// EncryptPlaintextVectorToGlweCiphertext returns a new GLWE encryption prototype of the plaintext vector.
// It panics if the size of the vector differs from the polynomial size of the key.
func (m *Maker[T]) EncryptPlaintextVectorToGlweCiphertext(sk *ProtoGlweSecretKey[T], plaintext *ProtoPlaintextVector[T], noise dispersion.DispersionParameter) *ProtoGlweCiphertext[T] {
	if len(plaintext.Values) != int(sk.PolynomialSize()) {
		panic("cannot EncryptPlaintextVectorToGlweCiphertext: plaintext count and polynomial size differ")
	}
	ct := &ProtoGlweCiphertext[T]{
		Distribution: sk.Distribution,
		Masks:        make([][]T, sk.GlweDimension()),
		Body:         make([]T, sk.PolynomialSize()),
	}
	m.encryptGlwe(sk.Polynomials, ct.Masks, ct.Body, plaintext.Values, noise)
	return ct
}

// DecryptGlweCiphertextToPlaintextVector returns the noisy plaintext vector encrypted by the
// ciphertext prototype. It panics if the key and the ciphertext are not compatible.
func (m *Maker[T]) DecryptGlweCiphertextToPlaintextVector(sk *ProtoGlweSecretKey[T], ct *ProtoGlweCiphertext[T]) *ProtoPlaintextVector[T] {
	if sk.Distribution != ct.Distribution || sk.GlweDimension() != ct.GlweDimension() || sk.PolynomialSize() != ct.PolynomialSize() {
		panic("cannot DecryptGlweCiphertextToPlaintextVector: key and ciphertext do not match")
	}
	values := append([]T{}, ct.Body...)
	for i := range ct.Masks {
		torus.MulNegacyclicThenSub(ct.Masks[i], sk.Polynomials[i], values)
	}
	return &ProtoPlaintextVector[T]{Values: values}
}

// DecryptGlweCiphertextCoefficient returns the coefficient of degree i of the decryption of the
// ciphertext prototype. It panics if the key and the ciphertext are not compatible.
func (m *Maker[T]) DecryptGlweCiphertextCoefficient(sk *ProtoGlweSecretKey[T], ct *ProtoGlweCiphertext[T], i int) T {
	if sk.Distribution != ct.Distribution || sk.GlweDimension() != ct.GlweDimension() || sk.PolynomialSize() != ct.PolynomialSize() {
		panic("cannot DecryptGlweCiphertextCoefficient: key and ciphertext do not match")
	}
	value := ct.Body[i]
	for j := range ct.Masks {
		value -= torus.MulNegacyclicCoefficient(ct.Masks[j], sk.Polynomials[j], i)
	}
	return value
}

// GgswRowPlaintexts returns the plaintext vectors encrypted by the (k+1)*levels rows of a scalar
// GGSW encryption of plaintext under sk: -m*q/B^j*S_i for the first k blocks of rows, and the
// constant polynomial m*q/B^j for the last one.
func (m *Maker[T]) GgswRowPlaintexts(sk *ProtoGlweSecretKey[T], plaintext *ProtoPlaintext[T], baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) (rows []*ProtoPlaintextVector[T]) {
	k, n := int(sk.GlweDimension()), int(sk.PolynomialSize())
	rows = make([]*ProtoPlaintextVector[T], 0, (k+1)*int(levels))
	for i := 0; i <= k; i++ {
		for j := 0; j < int(levels); j++ {
			g := torus.GadgetValue(plaintext.Value, int(baseLog), j+1)
			values := make([]T, n)
			if i < k {
				torus.MulScalar(sk.Polynomials[i], -g, values)
			} else {
				values[0] = g
			}
			rows = append(rows, &ProtoPlaintextVector[T]{Values: values})
		}
	}
	return
}

// EncryptPlaintextToGgswCiphertext returns a new scalar GGSW encryption prototype of the plaintext.
func (m *Maker[T]) EncryptPlaintextToGgswCiphertext(sk *ProtoGlweSecretKey[T], plaintext *ProtoPlaintext[T], noise dispersion.DispersionParameter, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) *ProtoGgswCiphertext[T] {
	rows := m.GgswRowPlaintexts(sk, plaintext, baseLog, levels)
	ct := &ProtoGgswCiphertext[T]{
		Distribution: sk.Distribution,
		BaseLog:      baseLog,
		Levels:       levels,
		Masks:        make([][][]T, len(rows)),
		Bodies:       make([][]T, len(rows)),
	}
	for i, row := range rows {
		ct.Masks[i] = make([][]T, sk.GlweDimension())
		ct.Bodies[i] = make([]T, sk.PolynomialSize())
		m.encryptGlwe(sk.Polynomials, ct.Masks[i], ct.Bodies[i], row.Values, noise)
	}
	return ct
}
