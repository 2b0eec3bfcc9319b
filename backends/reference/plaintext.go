package reference

import (
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
)

// CreatePlaintext returns a new plaintext holding the value.
func (eng *Engine[T]) CreatePlaintext(value T) (*Plaintext[T], error) {
	return eng.CreatePlaintextUnchecked(value), nil
}

// CreatePlaintextUnchecked returns a new plaintext holding the value.
func (eng *Engine[T]) CreatePlaintextUnchecked(value T) *Plaintext[T] {
	return &Plaintext[T]{handle: eng.register(entity.PlaintextKind), value: value}
}

// RetrievePlaintext returns the value of the plaintext.
func (eng *Engine[T]) RetrievePlaintext(plaintext *Plaintext[T]) (T, error) {
	if err := eng.alive(plaintext); err != nil {
		return 0, engine.PlaintextRetrievalErrors.Engine(err)
	}
	return eng.RetrievePlaintextUnchecked(plaintext), nil
}

// RetrievePlaintextUnchecked returns the value of the plaintext.
func (eng *Engine[T]) RetrievePlaintextUnchecked(plaintext *Plaintext[T]) T {
	return plaintext.value
}

// CreatePlaintextVector returns a new plaintext vector holding a copy of the values.
func (eng *Engine[T]) CreatePlaintextVector(values []T) (*PlaintextVector[T], error) {
	if err := engine.CheckPlaintextVectorCreation(values); err != nil {
		return nil, err
	}
	return eng.CreatePlaintextVectorUnchecked(values), nil
}

// CreatePlaintextVectorUnchecked returns a new plaintext vector holding a copy of the values.
func (eng *Engine[T]) CreatePlaintextVectorUnchecked(values []T) *PlaintextVector[T] {
	return &PlaintextVector[T]{handle: eng.register(entity.PlaintextVectorKind), values: append([]T{}, values...)}
}

// RetrievePlaintextVector returns a copy of the values of the plaintext vector.
func (eng *Engine[T]) RetrievePlaintextVector(plaintext *PlaintextVector[T]) ([]T, error) {
	if err := eng.alive(plaintext); err != nil {
		return nil, engine.PlaintextVectorRetrievalErrors.Engine(err)
	}
	return eng.RetrievePlaintextVectorUnchecked(plaintext), nil
}

// RetrievePlaintextVectorUnchecked returns a copy of the values of the plaintext vector.
func (eng *Engine[T]) RetrievePlaintextVectorUnchecked(plaintext *PlaintextVector[T]) []T {
	return append([]T{}, plaintext.values...)
}
