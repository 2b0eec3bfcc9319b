package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// LweCiphertextDiscardingNegationErrors is the error set of LweCiphertextDiscardingNegationEngine.
var LweCiphertextDiscardingNegationErrors = NewErrorSet("LweCiphertextDiscardingNegation",
	KindSpec{"KeyDistributionMismatch", "The input and output key distributions must be the same."},
	KindSpec{"LweDimensionMismatch", "The input and output LWE dimension must be the same."},
)

var (
	ErrNegationKeyDistributionMismatch = LweCiphertextDiscardingNegationErrors.Kind("KeyDistributionMismatch")
	ErrNegationLweDimensionMismatch    = LweCiphertextDiscardingNegationErrors.Kind("LweDimensionMismatch")
)

// CheckLweCiphertextDiscardingNegation validates the preconditions of a discarding negation.
func CheckLweCiphertextDiscardingNegation(output, input entity.LweCiphertextEntity) error {
	errs := LweCiphertextDiscardingNegationErrors
	if input.KeyDistribution() != output.KeyDistribution() {
		return errs.New(ErrNegationKeyDistributionMismatch)
	}
	if input.LweDimension() != output.LweDimension() {
		return errs.New(ErrNegationLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDiscardingNegationEngine is implemented by engines negating LWE ciphertexts.
type LweCiphertextDiscardingNegationEngine[InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextDiscardingNegationUncheckedEngine[InputCiphertext, OutputCiphertext]

	// DiscardNegLweCiphertext writes the negation of the input ciphertext in the output
	// ciphertext, whose previous content is discarded.
	DiscardNegLweCiphertext(output OutputCiphertext, input InputCiphertext) error
}

// LweCiphertextDiscardingNegationUncheckedEngine carries the unchecked discarding negation.
type LweCiphertextDiscardingNegationUncheckedEngine[InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	// DiscardNegLweCiphertextUnchecked is the unchecked variant of DiscardNegLweCiphertext.
	// The caller must ensure that both ciphertexts have the same key distribution and LWE dimension.
	DiscardNegLweCiphertextUnchecked(output OutputCiphertext, input InputCiphertext)
}
