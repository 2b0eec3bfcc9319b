package engine

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
)

// LweKeyswitchKeyGenerationErrors is the error set of LweKeyswitchKeyGenerationEngine.
var LweKeyswitchKeyGenerationErrors = NewErrorSet("LweKeyswitchKeyGeneration",
	KindSpec{"NullDecompositionBaseLog", "The decomposition base log must be greater than zero."},
	KindSpec{"NullDecompositionLevelCount", "The decomposition level count must be greater than zero."},
	KindSpec{"DecompositionTooLarge", "The decomposition precision (base log * level count) must not exceed the precision of the ciphertext."},
)

var (
	ErrKeyswitchKeyGenerationNullDecompositionBaseLog    = LweKeyswitchKeyGenerationErrors.Kind("NullDecompositionBaseLog")
	ErrKeyswitchKeyGenerationNullDecompositionLevelCount = LweKeyswitchKeyGenerationErrors.Kind("NullDecompositionLevelCount")
	ErrKeyswitchKeyGenerationDecompositionTooLarge       = LweKeyswitchKeyGenerationErrors.Kind("DecompositionTooLarge")
)

// CheckLweKeyswitchKeyGeneration validates the preconditions of a keyswitch key generation for
// ciphertexts of the given precision.
func CheckLweKeyswitchKeyGeneration(baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, precision entity.Precision) error {
	return checkDecomposition(LweKeyswitchKeyGenerationErrors, baseLog, levels, precision)
}

func checkDecomposition(errs *ErrorSet, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, precision entity.Precision) error {
	if baseLog <= 0 {
		return errs.New(errs.Kind("NullDecompositionBaseLog"))
	}
	if levels <= 0 {
		return errs.New(errs.Kind("NullDecompositionLevelCount"))
	}
	if !baseLog.Fits(levels, precision.Bits()) {
		return errs.New(errs.Kind("DecompositionTooLarge"))
	}
	return nil
}

// LweKeyswitchKeyGenerationEngine is implemented by engines generating LWE keyswitch keys.
type LweKeyswitchKeyGenerationEngine[InputSecretKey, OutputSecretKey entity.LweSecretKeyEntity, KeyswitchKey entity.LweKeyswitchKeyEntity] interface {
	AbstractEngine
	LweKeyswitchKeyGenerationUncheckedEngine[InputSecretKey, OutputSecretKey, KeyswitchKey]

	// GenerateNewLweKeyswitchKey returns a new keyswitch key from the input key to the output key,
	// made of encryptions with the given noise of the input key coefficients decomposed with the
	// given base log and level count.
	GenerateNewLweKeyswitchKey(input InputSecretKey, output OutputSecretKey,
		baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount,
		noise dispersion.DispersionParameter) (KeyswitchKey, error)
}

// LweKeyswitchKeyGenerationUncheckedEngine carries the unchecked keyswitch key generation.
type LweKeyswitchKeyGenerationUncheckedEngine[InputSecretKey, OutputSecretKey entity.LweSecretKeyEntity, KeyswitchKey entity.LweKeyswitchKeyEntity] interface {
	// GenerateNewLweKeyswitchKeyUnchecked is the unchecked variant of GenerateNewLweKeyswitchKey.
	// The caller must ensure that base log and level count are greater than zero and that their
	// product does not exceed the bit-size of the ciphertext modulus.
	GenerateNewLweKeyswitchKeyUnchecked(input InputSecretKey, output OutputSecretKey,
		baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount,
		noise dispersion.DispersionParameter) KeyswitchKey
}
