// Package entity defines the capability model of the opaque, backend-owned values that engines
// operate on: ciphertexts, keys, cleartexts and plaintexts.
//
// Entities only expose structural accessors (dimensions, key distribution and precision
// markers) so that engines can validate operation preconditions. Their content is only
// reachable through the engines of the backend that owns them.
package entity

import (
	"github.com/tuneinsight/fhecore/core/parameters"
)

// Kind enumerates the kinds of entities.
type Kind int

const (
	CleartextKind = Kind(iota + 1)
	CleartextVectorKind
	PlaintextKind
	PlaintextVectorKind
	LweSecretKeyKind
	GlweSecretKeyKind
	LweKeyswitchKeyKind
	LweCiphertextKind
	GlweCiphertextKind
	GgswCiphertextKind
)

var kindNames = map[Kind]string{
	CleartextKind:       "Cleartext",
	CleartextVectorKind: "CleartextVector",
	PlaintextKind:       "Plaintext",
	PlaintextVectorKind: "PlaintextVector",
	LweSecretKeyKind:    "LweSecretKey",
	GlweSecretKeyKind:   "GlweSecretKey",
	LweKeyswitchKeyKind: "LweKeyswitchKey",
	LweCiphertextKind:   "LweCiphertext",
	GlweCiphertextKind:  "GlweCiphertext",
	GgswCiphertextKind:  "GgswCiphertext",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// AbstractEntity is the interface implemented by every entity.
type AbstractEntity interface {
	// Kind returns the kind of the entity.
	Kind() Kind
	// KeyDistribution returns the key distribution marker of the entity, or nil for
	// entities that are not related to a secret key.
	KeyDistribution() KeyDistribution
	// Precision returns the precision marker of the raw values of the entity.
	Precision() Precision
}

// CleartextEntity is a single cleartext value.
type CleartextEntity interface {
	AbstractEntity
}

// CleartextVectorEntity is a vector of cleartext values.
type CleartextVectorEntity interface {
	AbstractEntity
	CleartextCount() parameters.CleartextCount
}

// PlaintextEntity is a single encoded value.
type PlaintextEntity interface {
	AbstractEntity
}

// PlaintextVectorEntity is a vector of encoded values.
type PlaintextVectorEntity interface {
	AbstractEntity
	PlaintextCount() parameters.PlaintextCount
}

// LweSecretKeyEntity is an LWE secret key.
type LweSecretKeyEntity interface {
	AbstractEntity
	LweDimension() parameters.LweDimension
}

// GlweSecretKeyEntity is a GLWE secret key.
type GlweSecretKeyEntity interface {
	AbstractEntity
	GlweDimension() parameters.GlweDimension
	PolynomialSize() parameters.PolynomialSize
}

// LweKeyswitchKeyEntity is a key switching LWE ciphertexts from an input key to an output key.
// The key distribution marker of a keyswitch key is the one of its output key.
type LweKeyswitchKeyEntity interface {
	AbstractEntity
	InputKeyDistribution() KeyDistribution
	OutputKeyDistribution() KeyDistribution
	InputLweDimension() parameters.LweDimension
	OutputLweDimension() parameters.LweDimension
	DecompositionBaseLog() parameters.DecompositionBaseLog
	DecompositionLevelCount() parameters.DecompositionLevelCount
}

// LweCiphertextEntity is an LWE ciphertext.
type LweCiphertextEntity interface {
	AbstractEntity
	LweDimension() parameters.LweDimension
}

// GlweCiphertextEntity is a GLWE ciphertext.
type GlweCiphertextEntity interface {
	AbstractEntity
	GlweDimension() parameters.GlweDimension
	PolynomialSize() parameters.PolynomialSize
}

// GgswCiphertextEntity is a GGSW ciphertext.
type GgswCiphertextEntity interface {
	AbstractEntity
	GlweDimension() parameters.GlweDimension
	PolynomialSize() parameters.PolynomialSize
	DecompositionBaseLog() parameters.DecompositionBaseLog
	DecompositionLevelCount() parameters.DecompositionLevelCount
}
