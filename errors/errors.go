package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which subsystem of the runtime core raised the error.
type Phase string

const (
	PhaseAlloc   Phase = "alloc"   // object allocation / space selection
	PhaseGC      Phase = "gc"      // fast or full collection cycle
	PhaseInvoke  Phase = "invoke"  // callable resolution, frame entry/exit
	PhaseDecode  Phase = "decode"  // bytecode operand decode
	PhaseField   Phase = "field"   // slot / field / static access
	PhaseGlobal  Phase = "global"  // module global lookup
	PhaseElement Phase = "element" // Array/Map element access
	PhaseArith   Phase = "arith"   // arithmetic / comparison dispatch
	PhaseAPI     Phase = "api"     // embedder-facing API misuse
)

// Kind categorizes the error within its Phase.
type Kind string

const (
	KindTypeMismatch    Kind = "type_mismatch"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindArity           Kind = "arity"
	KindKeyNotFound     Kind = "key_not_found"
	KindNotCallable     Kind = "not_callable"
	KindOOM             Kind = "out_of_memory"
	KindStackOverflow   Kind = "stack_overflow"
	KindIllegalBytecode Kind = "illegal_bytecode"
	KindIncomparable    Kind = "incomparable"
	KindInvalidInput    Kind = "invalid_input"
	KindNotInitialized  Kind = "not_initialized"
	KindUnsupported     Kind = "unsupported"
)

// Error is the structured error type used throughout the runtime core.
// It doubles as the payload wrapped into an object.Exception at the
// embedder boundary (see interp's Machine.wrapError).
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's Phase and Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common patterns across the core.

// TypeMismatch reports that a value did not have the expected type.
func TypeMismatch(phase Phase, path []string, gotType, wantType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("got %s, want %s", gotType, wantType),
	}
}

// OutOfBounds reports a register, symbol, constant, field, or element index
// outside its table's valid range.
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Arity reports an argument-count mismatch at a call site.
func Arity(got, wantMin, wantMax int) *Error {
	detail := fmt.Sprintf("got %d argument(s), want %d", got, wantMin)
	if wantMax < 0 {
		detail = fmt.Sprintf("got %d argument(s), want at least %d", got, wantMin)
	} else if wantMax != wantMin {
		detail = fmt.Sprintf("got %d argument(s), want %d..%d", got, wantMin, wantMax)
	}
	return &Error{Phase: PhaseInvoke, Kind: KindArity, Detail: detail}
}

// KeyNotFound reports a missing map/module-global/field key.
func KeyNotFound(phase Phase, key any) *Error {
	return &Error{Phase: phase, Kind: KindKeyNotFound, Detail: fmt.Sprintf("key %v not found", key), Value: key}
}

// NotCallable reports an attempt to invoke a non-callable value.
func NotCallable(goType string) *Error {
	return &Error{Phase: PhaseInvoke, Kind: KindNotCallable, Detail: fmt.Sprintf("value of type %s is not callable", goType)}
}

// Incomparable reports a compare() dispatch that returned IC.
func Incomparable(lhsType, rhsType string) *Error {
	return &Error{Phase: PhaseArith, Kind: KindIncomparable, Detail: fmt.Sprintf("%s and %s are not comparable", lhsType, rhsType)}
}

// InvalidInput reports embedder-facing API misuse.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{Phase: phase, Kind: KindInvalidInput, Detail: detail}
}

// NotInitialized reports use of a context/component before setup.
func NotInitialized(phase Phase, what string) *Error {
	return &Error{Phase: phase, Kind: KindNotInitialized, Detail: fmt.Sprintf("%s not initialized", what)}
}

// Unsupported reports a recognized-but-unimplemented operation (e.g. IMPSUB).
func Unsupported(phase Phase, what string) *Error {
	return &Error{Phase: phase, Kind: KindUnsupported, Detail: what}
}

// Wrap attaches phase/kind/detail context to an existing error.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{Phase: phase, Kind: kind, Detail: detail, Cause: cause}
}
