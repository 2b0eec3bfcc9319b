package reference

import (
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
)

// CreateCleartext returns a new cleartext holding the value.
func (eng *CleartextEngine[V]) CreateCleartext(value V) (*Cleartext[V], error) {
	if err := engine.CheckCleartextCreation(value); err != nil {
		return nil, err
	}
	return eng.CreateCleartextUnchecked(value), nil
}

// CreateCleartextUnchecked returns a new cleartext holding the value.
func (eng *CleartextEngine[V]) CreateCleartextUnchecked(value V) *Cleartext[V] {
	return &Cleartext[V]{handle: eng.register(entity.CleartextKind), value: value}
}

// RetrieveCleartext returns the value of the cleartext.
func (eng *CleartextEngine[V]) RetrieveCleartext(cleartext *Cleartext[V]) (V, error) {
	if err := eng.alive(cleartext); err != nil {
		var zero V
		return zero, engine.CleartextRetrievalErrors.Engine(err)
	}
	return eng.RetrieveCleartextUnchecked(cleartext), nil
}

// RetrieveCleartextUnchecked returns the value of the cleartext.
func (eng *CleartextEngine[V]) RetrieveCleartextUnchecked(cleartext *Cleartext[V]) V {
	return cleartext.value
}
