package generation

import (
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/torus"
)

// The interfaces of this file convert prototypes into entities of a given backend and back.
// Synthesized entities are owned by the caller, which must release each of them exactly once
// through the matching Destroy method. Unsynthesizing an entity does not release it.

// SynthesizesCleartext is implemented by synthesizers of integer cleartexts.
type SynthesizesCleartext[T torus.Unsigned, Cleartext entity.CleartextEntity] interface {
	SynthesizeCleartext(prototype *ProtoCleartext[T]) Cleartext
	UnsynthesizeCleartext(cleartext Cleartext) *ProtoCleartext[T]
	DestroyCleartext(cleartext Cleartext)
}

// SynthesizesFloatCleartext is implemented by synthesizers of floating point cleartexts.
type SynthesizesFloatCleartext[Cleartext entity.CleartextEntity] interface {
	SynthesizeFloatCleartext(prototype *ProtoCleartext[float64]) Cleartext
	UnsynthesizeFloatCleartext(cleartext Cleartext) *ProtoCleartext[float64]
	DestroyFloatCleartext(cleartext Cleartext)
}

// SynthesizesPlaintext is implemented by synthesizers of plaintexts.
type SynthesizesPlaintext[T torus.Unsigned, Plaintext entity.PlaintextEntity] interface {
	SynthesizePlaintext(prototype *ProtoPlaintext[T]) Plaintext
	UnsynthesizePlaintext(plaintext Plaintext) *ProtoPlaintext[T]
	DestroyPlaintext(plaintext Plaintext)
}

// SynthesizesPlaintextVector is implemented by synthesizers of plaintext vectors.
type SynthesizesPlaintextVector[T torus.Unsigned, PlaintextVector entity.PlaintextVectorEntity] interface {
	SynthesizePlaintextVector(prototype *ProtoPlaintextVector[T]) PlaintextVector
	UnsynthesizePlaintextVector(plaintext PlaintextVector) *ProtoPlaintextVector[T]
	DestroyPlaintextVector(plaintext PlaintextVector)
}

// SynthesizesLweSecretKey is implemented by synthesizers of LWE secret keys.
type SynthesizesLweSecretKey[T torus.Unsigned, SecretKey entity.LweSecretKeyEntity] interface {
	SynthesizeLweSecretKey(prototype *ProtoLweSecretKey[T]) SecretKey
	UnsynthesizeLweSecretKey(sk SecretKey) *ProtoLweSecretKey[T]
	DestroyLweSecretKey(sk SecretKey)
}

// SynthesizesGlweSecretKey is implemented by synthesizers of GLWE secret keys.
type SynthesizesGlweSecretKey[T torus.Unsigned, SecretKey entity.GlweSecretKeyEntity] interface {
	SynthesizeGlweSecretKey(prototype *ProtoGlweSecretKey[T]) SecretKey
	UnsynthesizeGlweSecretKey(sk SecretKey) *ProtoGlweSecretKey[T]
	DestroyGlweSecretKey(sk SecretKey)
}

// SynthesizesLweCiphertext is implemented by synthesizers of LWE ciphertexts.
type SynthesizesLweCiphertext[T torus.Unsigned, Ciphertext entity.LweCiphertextEntity] interface {
	SynthesizeLweCiphertext(prototype *ProtoLweCiphertext[T]) Ciphertext
	UnsynthesizeLweCiphertext(ct Ciphertext) *ProtoLweCiphertext[T]
	DestroyLweCiphertext(ct Ciphertext)
}

// SynthesizesGlweCiphertext is implemented by synthesizers of GLWE ciphertexts.
type SynthesizesGlweCiphertext[T torus.Unsigned, Ciphertext entity.GlweCiphertextEntity] interface {
	SynthesizeGlweCiphertext(prototype *ProtoGlweCiphertext[T]) Ciphertext
	UnsynthesizeGlweCiphertext(ct Ciphertext) *ProtoGlweCiphertext[T]
	DestroyGlweCiphertext(ct Ciphertext)
}

// SynthesizesGgswCiphertext is implemented by synthesizers of GGSW ciphertexts.
type SynthesizesGgswCiphertext[T torus.Unsigned, Ciphertext entity.GgswCiphertextEntity] interface {
	SynthesizeGgswCiphertext(prototype *ProtoGgswCiphertext[T]) Ciphertext
	UnsynthesizeGgswCiphertext(ct Ciphertext) *ProtoGgswCiphertext[T]
	DestroyGgswCiphertext(ct Ciphertext)
}

// SynthesizesLweKeyswitchKey is implemented by synthesizers of LWE keyswitch keys.
type SynthesizesLweKeyswitchKey[T torus.Unsigned, KeyswitchKey entity.LweKeyswitchKeyEntity] interface {
	SynthesizeLweKeyswitchKey(prototype *ProtoLweKeyswitchKey[T]) KeyswitchKey
	UnsynthesizeLweKeyswitchKey(ksk KeyswitchKey) *ProtoLweKeyswitchKey[T]
	DestroyLweKeyswitchKey(ksk KeyswitchKey)
}
