package engine

import (
	"errors"
	"fmt"
)

// KindSpec declares a named error kind of an operation, with its fixed message.
type KindSpec struct {
	Name    string
	Message string
}

// ErrorKind is a named precondition violation of an operation. ErrorKinds are only created by
// NewErrorSet and compared by identity, so that errors.Is(err, kind) tells whether an
// operation failed because of this precondition.
type ErrorKind struct {
	operation string
	name      string
	message   string
}

// Operation returns the name of the operation declaring the kind.
func (k *ErrorKind) Operation() string {
	return k.operation
}

// Name returns the name of the kind.
func (k *ErrorKind) Name() string {
	return k.name
}

// Message returns the fixed message of the kind.
func (k *ErrorKind) Message() string {
	return k.message
}

func (k *ErrorKind) Error() string {
	return k.operation + ": " + k.message
}

// Error is the error returned by the checked entry point of an operation. It is either a named
// precondition violation (Kind != nil) or an opaque error of the backend (Kind == nil, Err != nil).
type Error struct {
	Operation string
	Kind      *ErrorKind
	Err       error
}

func (e *Error) Error() string {
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: engine error: %s", e.Operation, e.Err)
}

// Unwrap returns the kind of a precondition violation, or the backend error.
func (e *Error) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return e.Err
}

// IsEngineError returns true if the error is an opaque backend error.
func (e *Error) IsEngineError() bool {
	return e.Kind == nil
}

// ErrorSet is the closed set of errors of an operation: its named kinds plus the variant
// wrapping the errors of the backend.
type ErrorSet struct {
	operation string
	kinds     []*ErrorKind
}

// NewErrorSet returns the error set of the named operation with the given kinds.
// It panics if two kinds share the same name.
func NewErrorSet(operation string, specs ...KindSpec) *ErrorSet {
	set := &ErrorSet{operation: operation, kinds: make([]*ErrorKind, len(specs))}
	seen := map[string]bool{}
	for i, spec := range specs {
		if seen[spec.Name] {
			panic(fmt.Errorf("cannot NewErrorSet: duplicate kind %s for operation %s", spec.Name, operation))
		}
		seen[spec.Name] = true
		set.kinds[i] = &ErrorKind{operation: operation, name: spec.Name, message: spec.Message}
	}
	return set
}

// Operation returns the name of the operation.
func (s *ErrorSet) Operation() string {
	return s.operation
}

// Kinds returns the named kinds of the set, in declaration order.
func (s *ErrorSet) Kinds() []*ErrorKind {
	return append([]*ErrorKind{}, s.kinds...)
}

// Kind returns the kind with the given name.
// It panics if the set has no such kind.
func (s *ErrorSet) Kind(name string) *ErrorKind {
	for _, k := range s.kinds {
		if k.name == name {
			return k
		}
	}
	panic(fmt.Errorf("cannot Kind: operation %s has no error kind %s", s.operation, name))
}

// New returns the error of the given kind.
// It panics if the kind does not belong to the set.
func (s *ErrorSet) New(kind *ErrorKind) error {
	if kind.operation != s.operation {
		panic(fmt.Errorf("cannot New: error kind %s belongs to %s, not %s", kind.name, kind.operation, s.operation))
	}
	return &Error{Operation: s.operation, Kind: kind}
}

// Engine wraps an error of the backend. It returns nil if err is nil.
func (s *ErrorSet) Engine(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Operation: s.operation, Err: err}
}

// Contains returns true if err is an error of the operation.
func (s *ErrorSet) Contains(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Operation == s.operation
}
