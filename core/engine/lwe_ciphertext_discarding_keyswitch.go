package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// LweCiphertextDiscardingKeyswitchErrors is the error set of LweCiphertextDiscardingKeyswitchEngine.
var LweCiphertextDiscardingKeyswitchErrors = NewErrorSet("LweCiphertextDiscardingKeyswitch",
	KindSpec{"InputKeyDistributionMismatch", "The input ciphertext and keyswitch key input key distributions must be the same."},
	KindSpec{"InputLweDimensionMismatch", "The input ciphertext LWE dimension and keyswitch key input LWE dimensions must be the same."},
	KindSpec{"OutputKeyDistributionMismatch", "The output ciphertext and keyswitch key output key distributions must be the same."},
	KindSpec{"OutputLweDimensionMismatch", "The output ciphertext LWE dimension and keyswitch output LWE dimensions must be the same."},
)

var (
	ErrKeyswitchInputKeyDistributionMismatch  = LweCiphertextDiscardingKeyswitchErrors.Kind("InputKeyDistributionMismatch")
	ErrKeyswitchInputLweDimensionMismatch     = LweCiphertextDiscardingKeyswitchErrors.Kind("InputLweDimensionMismatch")
	ErrKeyswitchOutputKeyDistributionMismatch = LweCiphertextDiscardingKeyswitchErrors.Kind("OutputKeyDistributionMismatch")
	ErrKeyswitchOutputLweDimensionMismatch    = LweCiphertextDiscardingKeyswitchErrors.Kind("OutputLweDimensionMismatch")
)

// CheckLweCiphertextDiscardingKeyswitch validates the preconditions of a discarding keyswitch,
// input side first.
func CheckLweCiphertextDiscardingKeyswitch(output, input entity.LweCiphertextEntity, ksk entity.LweKeyswitchKeyEntity) error {
	errs := LweCiphertextDiscardingKeyswitchErrors
	if input.KeyDistribution() != ksk.InputKeyDistribution() {
		return errs.New(ErrKeyswitchInputKeyDistributionMismatch)
	}
	if input.LweDimension() != ksk.InputLweDimension() {
		return errs.New(ErrKeyswitchInputLweDimensionMismatch)
	}
	if output.KeyDistribution() != ksk.OutputKeyDistribution() {
		return errs.New(ErrKeyswitchOutputKeyDistributionMismatch)
	}
	if output.LweDimension() != ksk.OutputLweDimension() {
		return errs.New(ErrKeyswitchOutputLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDiscardingKeyswitchEngine is implemented by engines switching LWE ciphertexts
// from one key to another, writing the result in an existing output ciphertext.
type LweCiphertextDiscardingKeyswitchEngine[KeyswitchKey entity.LweKeyswitchKeyEntity, InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextDiscardingKeyswitchUncheckedEngine[KeyswitchKey, InputCiphertext, OutputCiphertext]

	// DiscardKeyswitchLweCiphertext keyswitches the input ciphertext with the keyswitch key and
	// writes the result in the output ciphertext, whose previous content is discarded.
	DiscardKeyswitchLweCiphertext(output OutputCiphertext, input InputCiphertext, ksk KeyswitchKey) error
}

// LweCiphertextDiscardingKeyswitchUncheckedEngine carries the unchecked discarding keyswitch.
type LweCiphertextDiscardingKeyswitchUncheckedEngine[KeyswitchKey entity.LweKeyswitchKeyEntity, InputCiphertext, OutputCiphertext entity.LweCiphertextEntity] interface {
	// DiscardKeyswitchLweCiphertextUnchecked is the unchecked variant of DiscardKeyswitchLweCiphertext.
	// The caller must ensure that the input ciphertext has the key distribution and the LWE
	// dimension of the input key of ksk, and that the output ciphertext has the key
	// distribution and the LWE dimension of the output key of ksk.
	DiscardKeyswitchLweCiphertextUnchecked(output OutputCiphertext, input InputCiphertext, ksk KeyswitchKey)
}
