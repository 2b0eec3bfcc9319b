package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// GlweCiphertextTensorProductErrors is the error set of GlweCiphertextTensorProductEngine.
var GlweCiphertextTensorProductErrors = NewErrorSet("GlweCiphertextTensorProduct",
	KindSpec{"KeyDistributionMismatch", "The key distributions of the input ciphertexts must be the same."},
	KindSpec{"GlweDimensionMismatch", "The GLWE dimensions of the input ciphertexts must be the same."},
	KindSpec{"PolynomialSizeMismatch", "The polynomial sizes of the input ciphertexts must be the same."},
)

var (
	ErrTensorProductKeyDistributionMismatch = GlweCiphertextTensorProductErrors.Kind("KeyDistributionMismatch")
	ErrTensorProductGlweDimensionMismatch   = GlweCiphertextTensorProductErrors.Kind("GlweDimensionMismatch")
	ErrTensorProductPolynomialSizeMismatch  = GlweCiphertextTensorProductErrors.Kind("PolynomialSizeMismatch")
)

// CheckGlweCiphertextTensorProduct validates the preconditions of a tensor product.
func CheckGlweCiphertextTensorProduct(input1, input2 entity.GlweCiphertextEntity) error {
	errs := GlweCiphertextTensorProductErrors
	if input1.KeyDistribution() != input2.KeyDistribution() {
		return errs.New(ErrTensorProductKeyDistributionMismatch)
	}
	if input1.GlweDimension() != input2.GlweDimension() {
		return errs.New(ErrTensorProductGlweDimensionMismatch)
	}
	if input1.PolynomialSize() != input2.PolynomialSize() {
		return errs.New(ErrTensorProductPolynomialSizeMismatch)
	}
	return nil
}

// GlweCiphertextTensorProductEngine is implemented by engines computing the tensor product of two
// GLWE ciphertexts of dimension k.
//
// The output is a new GLWE ciphertext of dimension k(k+3)/2 encrypting the product of the two
// input plaintexts, multiplied by the scale, under the tensored key made of the key polynomials
// S_i, their squares S_i^2 and their cross products S_iS_j for i < j, in this order.
type GlweCiphertextTensorProductEngine[InputCiphertext1, InputCiphertext2 entity.GlweCiphertextEntity, Cleartext entity.CleartextEntity, OutputCiphertext entity.GlweCiphertextEntity] interface {
	AbstractEngine
	GlweCiphertextTensorProductUncheckedEngine[InputCiphertext1, InputCiphertext2, Cleartext, OutputCiphertext]

	// TensorProductGlweCiphertext returns the tensor product of the two input ciphertexts
	// multiplied by the scale.
	TensorProductGlweCiphertext(input1 InputCiphertext1, input2 InputCiphertext2, scale Cleartext) (OutputCiphertext, error)
}

// GlweCiphertextTensorProductUncheckedEngine carries the unchecked tensor product.
type GlweCiphertextTensorProductUncheckedEngine[InputCiphertext1, InputCiphertext2 entity.GlweCiphertextEntity, Cleartext entity.CleartextEntity, OutputCiphertext entity.GlweCiphertextEntity] interface {
	// TensorProductGlweCiphertextUnchecked is the unchecked variant of TensorProductGlweCiphertext.
	// The caller must ensure that both ciphertexts have the same key distribution, GLWE dimension
	// and polynomial size, and that the scale is supported by the backend.
	TensorProductGlweCiphertextUnchecked(input1 InputCiphertext1, input2 InputCiphertext2, scale Cleartext) OutputCiphertext
}
