package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// DestructionErrors is the error set of DestructionEngine.
var DestructionErrors = NewErrorSet("Destruction")

// DestructionEngine is implemented by engines releasing the entities they own.
// Every entity created or synthesized by a backend must be destroyed exactly once.
type DestructionEngine[Entity entity.AbstractEntity] interface {
	AbstractEngine
	DestructionUncheckedEngine[Entity]

	// Destroy releases the entity.
	Destroy(e Entity) error
}

// DestructionUncheckedEngine carries the unchecked destruction.
type DestructionUncheckedEngine[Entity entity.AbstractEntity] interface {
	// DestroyUnchecked is the unchecked variant of Destroy.
	// The caller must ensure that the entity was not already destroyed.
	DestroyUnchecked(e Entity)
}
