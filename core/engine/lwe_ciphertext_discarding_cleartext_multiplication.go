package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// LweCiphertextDiscardingCleartextMultiplicationErrors is the error set of
// LweCiphertextDiscardingCleartextMultiplicationEngine.
var LweCiphertextDiscardingCleartextMultiplicationErrors = NewErrorSet("LweCiphertextDiscardingCleartextMultiplication",
	KindSpec{"KeyDistributionMismatch", "The input and output key distributions must be the same."},
	KindSpec{"LweDimensionMismatch", "The input and output LWE dimensions must be the same."},
)

var (
	ErrCleartextMultiplicationKeyDistributionMismatch = LweCiphertextDiscardingCleartextMultiplicationErrors.Kind("KeyDistributionMismatch")
	ErrCleartextMultiplicationLweDimensionMismatch    = LweCiphertextDiscardingCleartextMultiplicationErrors.Kind("LweDimensionMismatch")
)

// CheckLweCiphertextDiscardingCleartextMultiplication validates the preconditions of a discarding
// multiplication by a cleartext.
func CheckLweCiphertextDiscardingCleartextMultiplication(output, input entity.LweCiphertextEntity) error {
	errs := LweCiphertextDiscardingCleartextMultiplicationErrors
	if input.KeyDistribution() != output.KeyDistribution() {
		return errs.New(ErrCleartextMultiplicationKeyDistributionMismatch)
	}
	if input.LweDimension() != output.LweDimension() {
		return errs.New(ErrCleartextMultiplicationLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDiscardingCleartextMultiplicationEngine is implemented by engines multiplying LWE
// ciphertexts by cleartexts.
type LweCiphertextDiscardingCleartextMultiplicationEngine[InputCiphertext entity.LweCiphertextEntity, Cleartext entity.CleartextEntity, OutputCiphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextDiscardingCleartextMultiplicationUncheckedEngine[InputCiphertext, Cleartext, OutputCiphertext]

	// DiscardMulLweCiphertextCleartext writes the product of the input ciphertext with the
	// cleartext in the output ciphertext.
	DiscardMulLweCiphertextCleartext(output OutputCiphertext, input InputCiphertext, cleartext Cleartext) error
}

// LweCiphertextDiscardingCleartextMultiplicationUncheckedEngine carries the unchecked discarding
// multiplication by a cleartext.
type LweCiphertextDiscardingCleartextMultiplicationUncheckedEngine[InputCiphertext entity.LweCiphertextEntity, Cleartext entity.CleartextEntity, OutputCiphertext entity.LweCiphertextEntity] interface {
	// DiscardMulLweCiphertextCleartextUnchecked is the unchecked variant of DiscardMulLweCiphertextCleartext.
	// The caller must ensure that both ciphertexts have the same key distribution and LWE dimension.
	DiscardMulLweCiphertextCleartextUnchecked(output OutputCiphertext, input InputCiphertext, cleartext Cleartext)
}
