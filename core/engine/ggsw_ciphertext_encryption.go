package engine

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
)

// GgswCiphertextScalarEncryptionErrors is the error set of GgswCiphertextScalarEncryptionEngine.
var GgswCiphertextScalarEncryptionErrors = NewErrorSet("GgswCiphertextScalarEncryption",
	KindSpec{"NullDecompositionBaseLog", "The decomposition base log must be greater than zero."},
	KindSpec{"NullDecompositionLevelCount", "The decomposition level count must be greater than zero."},
	KindSpec{"DecompositionTooLarge", "The decomposition precision (base log * level count) must not exceed the precision of the ciphertext."},
)

var (
	ErrGgswEncryptionNullDecompositionBaseLog    = GgswCiphertextScalarEncryptionErrors.Kind("NullDecompositionBaseLog")
	ErrGgswEncryptionNullDecompositionLevelCount = GgswCiphertextScalarEncryptionErrors.Kind("NullDecompositionLevelCount")
	ErrGgswEncryptionDecompositionTooLarge       = GgswCiphertextScalarEncryptionErrors.Kind("DecompositionTooLarge")
)

// CheckGgswCiphertextScalarEncryption validates the preconditions of a scalar GGSW encryption.
func CheckGgswCiphertextScalarEncryption(key entity.GlweSecretKeyEntity, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) error {
	return checkDecomposition(GgswCiphertextScalarEncryptionErrors, baseLog, levels, key.Precision())
}

// GgswCiphertextScalarEncryptionEngine is implemented by engines encrypting a scalar plaintext into
// a new GGSW ciphertext.
//
// The GGSW ciphertext is made of (k+1)*levels GLWE ciphertexts: for the i-th polynomial of the
// extended key (-S_0, ..., -S_{k-1}, 1) and the level j, the row encrypts m * q/B^j times this
// polynomial, with B = 2^baseLog.
type GgswCiphertextScalarEncryptionEngine[SecretKey entity.GlweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.GgswCiphertextEntity] interface {
	AbstractEngine
	GgswCiphertextScalarEncryptionUncheckedEngine[SecretKey, Plaintext, Ciphertext]

	// EncryptScalarGgswCiphertext returns a new GGSW encryption of the plaintext under the key
	// with the given noise and decomposition parameters.
	EncryptScalarGgswCiphertext(key SecretKey, input Plaintext, noise dispersion.DispersionParameter,
		baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) (Ciphertext, error)
}

// GgswCiphertextScalarEncryptionUncheckedEngine carries the unchecked scalar GGSW encryption.
type GgswCiphertextScalarEncryptionUncheckedEngine[SecretKey entity.GlweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.GgswCiphertextEntity] interface {
	// EncryptScalarGgswCiphertextUnchecked is the unchecked variant of EncryptScalarGgswCiphertext.
	// The caller must ensure that base log and level count are greater than zero and that their
	// product does not exceed the bit-size of the ciphertext modulus.
	EncryptScalarGgswCiphertextUnchecked(key SecretKey, input Plaintext, noise dispersion.DispersionParameter,
		baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount) Ciphertext
}
