package engine

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/entity"
)

// LweCiphertextEncryptionErrors is the error set of LweCiphertextEncryptionEngine.
var LweCiphertextEncryptionErrors = NewErrorSet("LweCiphertextEncryption")

// LweCiphertextEncryptionEngine is implemented by engines encrypting plaintexts into new LWE ciphertexts.
type LweCiphertextEncryptionEngine[SecretKey entity.LweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextEncryptionUncheckedEngine[SecretKey, Plaintext, Ciphertext]

	// EncryptLweCiphertext returns a new encryption of the plaintext under the key with the given noise.
	EncryptLweCiphertext(key SecretKey, input Plaintext, noise dispersion.DispersionParameter) (Ciphertext, error)
}

// LweCiphertextEncryptionUncheckedEngine carries the unchecked LWE encryption.
type LweCiphertextEncryptionUncheckedEngine[SecretKey entity.LweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.LweCiphertextEntity] interface {
	// EncryptLweCiphertextUnchecked is the unchecked variant of EncryptLweCiphertext.
	EncryptLweCiphertextUnchecked(key SecretKey, input Plaintext, noise dispersion.DispersionParameter) Ciphertext
}

// LweCiphertextDiscardingEncryptionErrors is the error set of LweCiphertextDiscardingEncryptionEngine.
var LweCiphertextDiscardingEncryptionErrors = NewErrorSet("LweCiphertextDiscardingEncryption",
	KindSpec{"KeyDistributionMismatch", "The key and output ciphertext key distributions must be the same."},
	KindSpec{"LweDimensionMismatch", "The key and output LWE dimensions must be the same."},
)

var (
	ErrLweDiscardingEncryptionKeyDistributionMismatch = LweCiphertextDiscardingEncryptionErrors.Kind("KeyDistributionMismatch")
	ErrLweDiscardingEncryptionLweDimensionMismatch    = LweCiphertextDiscardingEncryptionErrors.Kind("LweDimensionMismatch")
)

// CheckLweCiphertextDiscardingEncryption validates the preconditions of a discarding LWE encryption.
func CheckLweCiphertextDiscardingEncryption(key entity.LweSecretKeyEntity, output entity.LweCiphertextEntity) error {
	errs := LweCiphertextDiscardingEncryptionErrors
	if key.KeyDistribution() != output.KeyDistribution() {
		return errs.New(ErrLweDiscardingEncryptionKeyDistributionMismatch)
	}
	if key.LweDimension() != output.LweDimension() {
		return errs.New(ErrLweDiscardingEncryptionLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDiscardingEncryptionEngine is implemented by engines encrypting plaintexts into
// existing LWE ciphertexts.
type LweCiphertextDiscardingEncryptionEngine[SecretKey entity.LweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.LweCiphertextEntity] interface {
	AbstractEngine
	LweCiphertextDiscardingEncryptionUncheckedEngine[SecretKey, Plaintext, Ciphertext]

	// DiscardEncryptLweCiphertext writes an encryption of the plaintext under the key with the
	// given noise in the output ciphertext.
	DiscardEncryptLweCiphertext(key SecretKey, output Ciphertext, input Plaintext, noise dispersion.DispersionParameter) error
}

// LweCiphertextDiscardingEncryptionUncheckedEngine carries the unchecked discarding LWE encryption.
type LweCiphertextDiscardingEncryptionUncheckedEngine[SecretKey entity.LweSecretKeyEntity, Plaintext entity.PlaintextEntity, Ciphertext entity.LweCiphertextEntity] interface {
	// DiscardEncryptLweCiphertextUnchecked is the unchecked variant of DiscardEncryptLweCiphertext.
	// The caller must ensure that the key and the output have the same key distribution and LWE dimension.
	DiscardEncryptLweCiphertextUnchecked(key SecretKey, output Ciphertext, input Plaintext, noise dispersion.DispersionParameter)
}

// LweCiphertextDecryptionErrors is the error set of LweCiphertextDecryptionEngine.
var LweCiphertextDecryptionErrors = NewErrorSet("LweCiphertextDecryption",
	KindSpec{"KeyDistributionMismatch", "The key and input ciphertext key distributions must be the same."},
	KindSpec{"LweDimensionMismatch", "The key and input LWE dimensions must be the same."},
)

var (
	ErrLweDecryptionKeyDistributionMismatch = LweCiphertextDecryptionErrors.Kind("KeyDistributionMismatch")
	ErrLweDecryptionLweDimensionMismatch    = LweCiphertextDecryptionErrors.Kind("LweDimensionMismatch")
)

// CheckLweCiphertextDecryption validates the preconditions of an LWE decryption.
func CheckLweCiphertextDecryption(key entity.LweSecretKeyEntity, input entity.LweCiphertextEntity) error {
	errs := LweCiphertextDecryptionErrors
	if key.KeyDistribution() != input.KeyDistribution() {
		return errs.New(ErrLweDecryptionKeyDistributionMismatch)
	}
	if key.LweDimension() != input.LweDimension() {
		return errs.New(ErrLweDecryptionLweDimensionMismatch)
	}
	return nil
}

// LweCiphertextDecryptionEngine is implemented by engines decrypting LWE ciphertexts.
type LweCiphertextDecryptionEngine[SecretKey entity.LweSecretKeyEntity, Ciphertext entity.LweCiphertextEntity, Plaintext entity.PlaintextEntity] interface {
	AbstractEngine
	LweCiphertextDecryptionUncheckedEngine[SecretKey, Ciphertext, Plaintext]

	// DecryptLweCiphertext returns the noisy plaintext encrypted by the ciphertext.
	DecryptLweCiphertext(key SecretKey, input Ciphertext) (Plaintext, error)
}

// LweCiphertextDecryptionUncheckedEngine carries the unchecked LWE decryption.
type LweCiphertextDecryptionUncheckedEngine[SecretKey entity.LweSecretKeyEntity, Ciphertext entity.LweCiphertextEntity, Plaintext entity.PlaintextEntity] interface {
	// DecryptLweCiphertextUnchecked is the unchecked variant of DecryptLweCiphertext.
	// The caller must ensure that the key and the input have the same key distribution and LWE dimension.
	DecryptLweCiphertextUnchecked(key SecretKey, input Ciphertext) Plaintext
}
