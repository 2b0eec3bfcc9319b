package fixture

import (
	"github.com/tuneinsight/fhecore/backends/reference"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/fixture/generation"
)

// The functions of this file instantiate the fixtures on the entities of the reference backend.

// NewReferenceLweCiphertextEncryptionFixture returns the LweCiphertextEncryptionFixture of the reference backend.
func NewReferenceLweCiphertextEncryptionFixture[T torus.Unsigned](eng *reference.Engine[T]) *LweCiphertextEncryptionFixture[T, *reference.LweSecretKey[T], *reference.Plaintext[T], *reference.LweCiphertext[T]] {
	return &LweCiphertextEncryptionFixture[T, *reference.LweSecretKey[T], *reference.Plaintext[T], *reference.LweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceLweCiphertextDiscardingNegationFixture returns the LweCiphertextDiscardingNegationFixture of the reference backend.
func NewReferenceLweCiphertextDiscardingNegationFixture[T torus.Unsigned](eng *reference.Engine[T]) *LweCiphertextDiscardingNegationFixture[T, *reference.LweCiphertext[T]] {
	return &LweCiphertextDiscardingNegationFixture[T, *reference.LweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceLweCiphertextDiscardingAdditionFixture returns the LweCiphertextDiscardingAdditionFixture of the reference backend.
func NewReferenceLweCiphertextDiscardingAdditionFixture[T torus.Unsigned](eng *reference.Engine[T]) *LweCiphertextDiscardingAdditionFixture[T, *reference.LweCiphertext[T]] {
	return &LweCiphertextDiscardingAdditionFixture[T, *reference.LweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceLweCiphertextDiscardingCleartextMultiplicationFixture returns the
// LweCiphertextDiscardingCleartextMultiplicationFixture of the reference backend.
func NewReferenceLweCiphertextDiscardingCleartextMultiplicationFixture[T torus.Unsigned](eng *reference.Engine[T]) *LweCiphertextDiscardingCleartextMultiplicationFixture[T, *reference.Cleartext[T], *reference.LweCiphertext[T]] {
	return &LweCiphertextDiscardingCleartextMultiplicationFixture[T, *reference.Cleartext[T], *reference.LweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceLweCiphertextDiscardingKeyswitchFixture returns the LweCiphertextDiscardingKeyswitchFixture of the reference backend.
func NewReferenceLweCiphertextDiscardingKeyswitchFixture[T torus.Unsigned](eng *reference.Engine[T]) *LweCiphertextDiscardingKeyswitchFixture[T, *reference.LweKeyswitchKey[T], *reference.LweCiphertext[T]] {
	return &LweCiphertextDiscardingKeyswitchFixture[T, *reference.LweKeyswitchKey[T], *reference.LweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceGlweCiphertextEncryptionFixture returns the GlweCiphertextEncryptionFixture of the reference backend.
func NewReferenceGlweCiphertextEncryptionFixture[T torus.Unsigned](eng *reference.Engine[T]) *GlweCiphertextEncryptionFixture[T, *reference.GlweSecretKey[T], *reference.PlaintextVector[T], *reference.GlweCiphertext[T]] {
	return &GlweCiphertextEncryptionFixture[T, *reference.GlweSecretKey[T], *reference.PlaintextVector[T], *reference.GlweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceGgswCiphertextScalarEncryptionFixture returns the GgswCiphertextScalarEncryptionFixture of the reference backend.
func NewReferenceGgswCiphertextScalarEncryptionFixture[T torus.Unsigned](eng *reference.Engine[T]) *GgswCiphertextScalarEncryptionFixture[T, *reference.GlweSecretKey[T], *reference.Plaintext[T], *reference.GgswCiphertext[T]] {
	return &GgswCiphertextScalarEncryptionFixture[T, *reference.GlweSecretKey[T], *reference.Plaintext[T], *reference.GgswCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}

// NewReferenceGlweCiphertextTensorProductFixture returns the GlweCiphertextTensorProductFixture of the reference backend.
func NewReferenceGlweCiphertextTensorProductFixture[T torus.Unsigned](eng *reference.Engine[T]) *GlweCiphertextTensorProductFixture[T, *reference.Cleartext[float64], *reference.GlweCiphertext[T]] {
	return &GlweCiphertextTensorProductFixture[T, *reference.Cleartext[float64], *reference.GlweCiphertext[T]]{
		Engine:      eng,
		Synthesizer: generation.NewReferenceSynthesizer(eng),
	}
}
