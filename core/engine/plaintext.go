package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
)

// PlaintextCreationErrors is the error set of PlaintextCreationEngine.
var PlaintextCreationErrors = NewErrorSet("PlaintextCreation")

// PlaintextCreationEngine is implemented by engines creating plaintexts from raw values.
type PlaintextCreationEngine[Value entity.Raw, Plaintext entity.PlaintextEntity] interface {
	AbstractEngine
	PlaintextCreationUncheckedEngine[Value, Plaintext]

	// CreatePlaintext returns a new plaintext holding the value.
	CreatePlaintext(value Value) (Plaintext, error)
}

// PlaintextCreationUncheckedEngine carries the unchecked plaintext creation.
type PlaintextCreationUncheckedEngine[Value entity.Raw, Plaintext entity.PlaintextEntity] interface {
	// CreatePlaintextUnchecked is the unchecked variant of CreatePlaintext.
	CreatePlaintextUnchecked(value Value) Plaintext
}

// PlaintextRetrievalErrors is the error set of PlaintextRetrievalEngine.
var PlaintextRetrievalErrors = NewErrorSet("PlaintextRetrieval")

// PlaintextRetrievalEngine is implemented by engines reading back the raw value of plaintexts.
type PlaintextRetrievalEngine[Plaintext entity.PlaintextEntity, Value entity.Raw] interface {
	AbstractEngine
	PlaintextRetrievalUncheckedEngine[Plaintext, Value]

	// RetrievePlaintext returns the raw value of the plaintext.
	RetrievePlaintext(plaintext Plaintext) (Value, error)
}

// PlaintextRetrievalUncheckedEngine carries the unchecked plaintext retrieval.
type PlaintextRetrievalUncheckedEngine[Plaintext entity.PlaintextEntity, Value entity.Raw] interface {
	// RetrievePlaintextUnchecked is the unchecked variant of RetrievePlaintext.
	RetrievePlaintextUnchecked(plaintext Plaintext) Value
}

// PlaintextVectorCreationErrors is the error set of PlaintextVectorCreationEngine.
var PlaintextVectorCreationErrors = NewErrorSet("PlaintextVectorCreation",
	KindSpec{"NullPlaintextCount", "The plaintext count must be greater than zero."},
)

var ErrPlaintextVectorCreationNullPlaintextCount = PlaintextVectorCreationErrors.Kind("NullPlaintextCount")

// CheckPlaintextVectorCreation validates the preconditions of a plaintext vector creation.
func CheckPlaintextVectorCreation[Value entity.Raw](values []Value) error {
	if len(values) == 0 {
		return PlaintextVectorCreationErrors.New(ErrPlaintextVectorCreationNullPlaintextCount)
	}
	return nil
}

// PlaintextVectorCreationEngine is implemented by engines creating plaintext vectors from raw values.
type PlaintextVectorCreationEngine[Value entity.Raw, PlaintextVector entity.PlaintextVectorEntity] interface {
	AbstractEngine
	PlaintextVectorCreationUncheckedEngine[Value, PlaintextVector]

	// CreatePlaintextVector returns a new plaintext vector holding a copy of the values.
	CreatePlaintextVector(values []Value) (PlaintextVector, error)
}

// PlaintextVectorCreationUncheckedEngine carries the unchecked plaintext vector creation.
type PlaintextVectorCreationUncheckedEngine[Value entity.Raw, PlaintextVector entity.PlaintextVectorEntity] interface {
	// CreatePlaintextVectorUnchecked is the unchecked variant of CreatePlaintextVector.
	// The caller must ensure that values is not empty.
	CreatePlaintextVectorUnchecked(values []Value) PlaintextVector
}

// PlaintextVectorRetrievalErrors is the error set of PlaintextVectorRetrievalEngine.
var PlaintextVectorRetrievalErrors = NewErrorSet("PlaintextVectorRetrieval")

// PlaintextVectorRetrievalEngine is implemented by engines reading back the raw values of plaintext vectors.
type PlaintextVectorRetrievalEngine[PlaintextVector entity.PlaintextVectorEntity, Value entity.Raw] interface {
	AbstractEngine
	PlaintextVectorRetrievalUncheckedEngine[PlaintextVector, Value]

	// RetrievePlaintextVector returns a copy of the raw values of the plaintext vector.
	RetrievePlaintextVector(plaintext PlaintextVector) ([]Value, error)
}

// PlaintextVectorRetrievalUncheckedEngine carries the unchecked plaintext vector retrieval.
type PlaintextVectorRetrievalUncheckedEngine[PlaintextVector entity.PlaintextVectorEntity, Value entity.Raw] interface {
	// RetrievePlaintextVectorUnchecked is the unchecked variant of RetrievePlaintextVector.
	RetrievePlaintextVectorUnchecked(plaintext PlaintextVector) []Value
}
