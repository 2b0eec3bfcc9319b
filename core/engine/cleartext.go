package engine

import (
	"math"

	"github.com/tuneinsight/fhecore/core/entity"
)

// CleartextCreationErrors is the error set of CleartextCreationEngine.
var CleartextCreationErrors = NewErrorSet("CleartextCreation",
	KindSpec{"NonFiniteValue", "The value of a floating point cleartext must be finite."},
)

var ErrCleartextCreationNonFiniteValue = CleartextCreationErrors.Kind("NonFiniteValue")

// CheckCleartextCreation validates the preconditions of a cleartext creation.
func CheckCleartextCreation[Value entity.Raw](value Value) error {
	if f, ok := any(value).(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return CleartextCreationErrors.New(ErrCleartextCreationNonFiniteValue)
	}
	return nil
}

// CleartextCreationEngine is implemented by engines creating cleartexts from raw values.
type CleartextCreationEngine[Value entity.Raw, Cleartext entity.CleartextEntity] interface {
	AbstractEngine
	CleartextCreationUncheckedEngine[Value, Cleartext]

	// CreateCleartext returns a new cleartext holding the value.
	CreateCleartext(value Value) (Cleartext, error)
}

// CleartextCreationUncheckedEngine carries the unchecked cleartext creation.
type CleartextCreationUncheckedEngine[Value entity.Raw, Cleartext entity.CleartextEntity] interface {
	// CreateCleartextUnchecked is the unchecked variant of CreateCleartext.
	// The caller must ensure that floating point values are finite.
	CreateCleartextUnchecked(value Value) Cleartext
}

// CleartextRetrievalErrors is the error set of CleartextRetrievalEngine.
var CleartextRetrievalErrors = NewErrorSet("CleartextRetrieval")

// CleartextRetrievalEngine is implemented by engines reading back the raw value of cleartexts.
type CleartextRetrievalEngine[Cleartext entity.CleartextEntity, Value entity.Raw] interface {
	AbstractEngine
	CleartextRetrievalUncheckedEngine[Cleartext, Value]

	// RetrieveCleartext returns the raw value of the cleartext.
	RetrieveCleartext(cleartext Cleartext) (Value, error)
}

// CleartextRetrievalUncheckedEngine carries the unchecked cleartext retrieval.
type CleartextRetrievalUncheckedEngine[Cleartext entity.CleartextEntity, Value entity.Raw] interface {
	// RetrieveCleartextUnchecked is the unchecked variant of RetrieveCleartext.
	RetrieveCleartextUnchecked(cleartext Cleartext) Value
}
