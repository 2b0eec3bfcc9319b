// Package parameters defines the structural sizes shared by entities, engines and fixtures.
package parameters

// LweDimension is the number of mask coefficients of an LWE ciphertext, or the size of an LWE secret key.
type LweDimension int

// LweSize is the number of coefficients of an LWE ciphertext, mask and body included.
type LweSize int

// GlweDimension is the number of mask polynomials of a GLWE ciphertext.
type GlweDimension int

// GlweSize is the number of polynomials of a GLWE ciphertext, mask and body included.
type GlweSize int

// PolynomialSize is the number of coefficients of the polynomials of the ring Z_q[X]/(X^N+1).
type PolynomialSize int

// DecompositionBaseLog is the base 2 logarithm of the base of a gadget decomposition.
type DecompositionBaseLog int

// DecompositionLevelCount is the number of levels of a gadget decomposition.
type DecompositionLevelCount int

// PlaintextCount is the number of plaintexts of a plaintext vector.
type PlaintextCount int

// CleartextCount is the number of cleartexts of a cleartext vector.
type CleartextCount int

// LweSize returns the size of the ciphertexts of dimension d.
func (d LweDimension) LweSize() LweSize {
	return LweSize(d + 1)
}

// LweDimension returns the dimension of the ciphertexts of size s.
func (s LweSize) LweDimension() LweDimension {
	return LweDimension(s - 1)
}

// GlweSize returns the size of the ciphertexts of dimension d.
func (d GlweDimension) GlweSize() GlweSize {
	return GlweSize(d + 1)
}

// GlweDimension returns the dimension of the ciphertexts of size s.
func (s GlweSize) GlweDimension() GlweDimension {
	return GlweDimension(s - 1)
}

// TensorDimension returns the GLWE dimension of the tensor product of two ciphertexts of dimension d,
// that is d linear terms, d squared terms and d(d-1)/2 cross terms.
func (d GlweDimension) TensorDimension() GlweDimension {
	return d * (d + 3) / 2
}

// LweDimension returns the dimension of the LWE ciphertexts obtained by flattening a GLWE ciphertext
// of dimension d with polynomials of size n.
func (d GlweDimension) LweDimension(n PolynomialSize) LweDimension {
	return LweDimension(int(d) * int(n))
}

// Fits returns true if a decomposition with base 2^baseLog and level count levels fits in a
// modulus of the given bit-size.
func (baseLog DecompositionBaseLog) Fits(levels DecompositionLevelCount, bits int) bool {
	return int(baseLog)*int(levels) <= bits
}
