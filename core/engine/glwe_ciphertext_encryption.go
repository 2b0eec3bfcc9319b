package engine

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/entity"
)

// GlweCiphertextEncryptionErrors is the error set of GlweCiphertextEncryptionEngine.
var GlweCiphertextEncryptionErrors = NewErrorSet("GlweCiphertextEncryption",
	KindSpec{"PlaintextCountMismatch", "The plaintext count of the input vector and the key polynomial size must be the same."},
)

var ErrGlweEncryptionPlaintextCountMismatch = GlweCiphertextEncryptionErrors.Kind("PlaintextCountMismatch")

// CheckGlweCiphertextEncryption validates the preconditions of a GLWE encryption.
func CheckGlweCiphertextEncryption(key entity.GlweSecretKeyEntity, input entity.PlaintextVectorEntity) error {
	if int(key.PolynomialSize()) != int(input.PlaintextCount()) {
		return GlweCiphertextEncryptionErrors.New(ErrGlweEncryptionPlaintextCountMismatch)
	}
	return nil
}

// GlweCiphertextEncryptionEngine is implemented by engines encrypting plaintext vectors into new
// GLWE ciphertexts.
type GlweCiphertextEncryptionEngine[SecretKey entity.GlweSecretKeyEntity, PlaintextVector entity.PlaintextVectorEntity, Ciphertext entity.GlweCiphertextEntity] interface {
	AbstractEngine
	GlweCiphertextEncryptionUncheckedEngine[SecretKey, PlaintextVector, Ciphertext]

	// EncryptGlweCiphertext returns a new encryption of the plaintext vector, read as the
	// coefficients of a polynomial, under the key with the given noise.
	EncryptGlweCiphertext(key SecretKey, input PlaintextVector, noise dispersion.DispersionParameter) (Ciphertext, error)
}

// GlweCiphertextEncryptionUncheckedEngine carries the unchecked GLWE encryption.
type GlweCiphertextEncryptionUncheckedEngine[SecretKey entity.GlweSecretKeyEntity, PlaintextVector entity.PlaintextVectorEntity, Ciphertext entity.GlweCiphertextEntity] interface {
	// EncryptGlweCiphertextUnchecked is the unchecked variant of EncryptGlweCiphertext.
	// The caller must ensure that the plaintext count equals the polynomial size of the key.
	EncryptGlweCiphertextUnchecked(key SecretKey, input PlaintextVector, noise dispersion.DispersionParameter) Ciphertext
}

// GlweCiphertextDecryptionErrors is the error set of GlweCiphertextDecryptionEngine.
var GlweCiphertextDecryptionErrors = NewErrorSet("GlweCiphertextDecryption",
	KindSpec{"KeyDistributionMismatch", "The key and input ciphertext key distributions must be the same."},
	KindSpec{"GlweDimensionMismatch", "The key and input GLWE dimensions must be the same."},
	KindSpec{"PolynomialSizeMismatch", "The key and input polynomial sizes must be the same."},
)

var (
	ErrGlweDecryptionKeyDistributionMismatch = GlweCiphertextDecryptionErrors.Kind("KeyDistributionMismatch")
	ErrGlweDecryptionGlweDimensionMismatch   = GlweCiphertextDecryptionErrors.Kind("GlweDimensionMismatch")
	ErrGlweDecryptionPolynomialSizeMismatch  = GlweCiphertextDecryptionErrors.Kind("PolynomialSizeMismatch")
)

// CheckGlweCiphertextDecryption validates the preconditions of a GLWE decryption.
func CheckGlweCiphertextDecryption(key entity.GlweSecretKeyEntity, input entity.GlweCiphertextEntity) error {
	errs := GlweCiphertextDecryptionErrors
	if key.KeyDistribution() != input.KeyDistribution() {
		return errs.New(ErrGlweDecryptionKeyDistributionMismatch)
	}
	if key.GlweDimension() != input.GlweDimension() {
		return errs.New(ErrGlweDecryptionGlweDimensionMismatch)
	}
	if key.PolynomialSize() != input.PolynomialSize() {
		return errs.New(ErrGlweDecryptionPolynomialSizeMismatch)
	}
	return nil
}

// GlweCiphertextDecryptionEngine is implemented by engines decrypting GLWE ciphertexts.
type GlweCiphertextDecryptionEngine[SecretKey entity.GlweSecretKeyEntity, Ciphertext entity.GlweCiphertextEntity, PlaintextVector entity.PlaintextVectorEntity] interface {
	AbstractEngine
	GlweCiphertextDecryptionUncheckedEngine[SecretKey, Ciphertext, PlaintextVector]

	// DecryptGlweCiphertext returns the noisy plaintext vector encrypted by the ciphertext.
	DecryptGlweCiphertext(key SecretKey, input Ciphertext) (PlaintextVector, error)
}

// GlweCiphertextDecryptionUncheckedEngine carries the unchecked GLWE decryption.
type GlweCiphertextDecryptionUncheckedEngine[SecretKey entity.GlweSecretKeyEntity, Ciphertext entity.GlweCiphertextEntity, PlaintextVector entity.PlaintextVectorEntity] interface {
	// DecryptGlweCiphertextUnchecked is the unchecked variant of DecryptGlweCiphertext.
	// The caller must ensure that the key and the input have the same key distribution, GLWE
	// dimension and polynomial size.
	DecryptGlweCiphertextUnchecked(key SecretKey, input Ciphertext) PlaintextVector
}
