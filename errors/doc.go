// Package errors provides structured error types for the runtime core.
//
// Errors are categorized by Phase (which subsystem raised them) and Kind
// (the error category). The Error type includes rich context: a field/slot
// path, a human-readable detail, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//		Path("frame", "R3").
//		Detail("register index 9 exceeds frame size 4").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseArith, path, "String", "Int")
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
