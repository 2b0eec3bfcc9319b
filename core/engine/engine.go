// Package engine defines the contracts of the operations that a backend can implement.
//
// Every operation is exposed as a pair of interfaces. The <Op>Engine interface carries the
// checked entry point: it validates the structural preconditions of the operation with the
// Check<Op> function of this package, returns a typed *Error from the error set of the operation
// on violation, and leaves the output untouched in that case. It embeds <Op>UncheckedEngine,
// whose entry point skips every check: calling it with inputs violating the documented
// preconditions is a caller bug with unspecified results.
//
// Discarding operations write their result in a caller-provided output entity, allocating
// operations return a new entity owned by the caller, which must release it with the Destroy
// method of a DestructionEngine.
//
// An engine is an exclusive, single-threaded resource: it must not be called concurrently.
package engine

// AbstractEngine is the interface implemented by every engine.
type AbstractEngine interface {
	// Backend returns the name of the backend implementing the engine.
	Backend() string
}
