package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// LweCiphertextDiscardingAdditionErrors is the error set of LweCiphertextDiscardingAdditionEngine.
var LweCiphertextDiscardingAdditionErrors = NewErrorSet("LweCiphertextDiscardingAddition",
	KindSpec{"KeyDistributionMismatch", "The input and output key distributions must be the same."},
	KindSpec{"LweDimensionMismatch", "The input and output LWE dimensions must be the same."},
)

var (
	ErrAdditionKeyDistributionMismatch = LweCiphertextDiscardingAdditionErrors.Kind("KeyDistributionMismatch")
	ErrAdditionLweDimensionMismatch    = LweCiphertextDiscardingAdditionErrors.Kind("LweDimensionMismatch")
)

// CheckLweCiphertextDiscardingAddition validates the preconditions of a discarding addition.
func CheckLweCiphertextDiscardingAddition(output, input1, input2 entity.LweCiphertextEntity) error {
	errs := LweCiphertextDiscardingAdditionErrors
	if input1.KeyDistribution() != input2.KeyDistribution() || input1.KeyDistribution() != output.KeyDistribution() {
		return errs.New(ErrAdditionKeyDistributionMismatch)
	}
	if input1.LweDimension() != input2.LweDimension() || input1.LweDimension() != output.LweDimension() {
		return errs.New(ErrAdditionLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDiscardingAdditionEngine is implemented by engines adding LWE ciphertexts.
type LweCiphertextDiscardingAdditionEngine[InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextDiscardingAdditionUncheckedEngine[InputCiphertext, OutputCiphertext]

	// DiscardAddLweCiphertext writes the sum of the two input ciphertexts in the output ciphertext.
	DiscardAddLweCiphertext(output OutputCiphertext, input1, input2 InputCiphertext) error
}

// LweCiphertextDiscardingAdditionUncheckedEngine carries the unchecked discarding addition.
type LweCiphertextDiscardingAdditionUncheckedEngine[InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	// DiscardAddLweCiphertextUnchecked is the unchecked variant of DiscardAddLweCiphertext.
	// The caller must ensure that the three ciphertexts have the same key distribution and LWE dimension.
	DiscardAddLweCiphertextUnchecked(output OutputCiphertext, input1, input2 InputCiphertext)
}
