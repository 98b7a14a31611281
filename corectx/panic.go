package corectx

import (
	"fmt"

	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp"
)

// PanicCode identifies the unrecoverable condition a Panic carries (§6,
// §7). Panics are distinct from exceptions: bytecode can never catch
// one, and they cross the embedder boundary only through Context.Invoke's
// recover.
type PanicCode string

const (
	PanicOOM PanicCode = "OOM"
	PanicSOV PanicCode = "SOV" // stack overflow
	PanicISE PanicCode = "ABORT"
	PanicIll PanicCode = "ILL" // illegal bytecode
)

// Panic is the Go panic value Context.Invoke recovers, classifies and
// re-panics with, never caught by bytecode (§7). The handler installed by
// SetPanicHandler, if any, receives it before Invoke re-panics.
type Panic struct {
	Code  PanicCode
	Err   error
	Trace string
}

func (p *Panic) String() string {
	if p.Err != nil {
		return fmt.Sprintf("%s: %v", p.Code, p.Err)
	}
	return string(p.Code)
}

// classifyPanic maps a recovered Go panic value to a Panic, following
// the *errors.Error Kind the interpreter/stack/heap layers already raise
// panics with (errors.KindOOM, errors.KindStackOverflow,
// errors.KindIllegalBytecode), and treating anything else as ABORT.
func classifyPanic(r any, trace string) *Panic {
	if kind, ok := interp.PanicKind(r); ok {
		err, _ := r.(error)
		return &Panic{Code: codeForKind(kind), Err: err, Trace: trace}
	}
	switch v := r.(type) {
	case *Panic:
		return v
	case *errors.Error:
		return &Panic{Code: codeForKind(v.Kind), Err: v, Trace: trace}
	case error:
		return &Panic{Code: PanicISE, Err: v, Trace: trace}
	default:
		return &Panic{Code: PanicISE, Err: fmt.Errorf("%v", v), Trace: trace}
	}
}

func codeForKind(k errors.Kind) PanicCode {
	switch k {
	case errors.KindOOM:
		return PanicOOM
	case errors.KindStackOverflow:
		return PanicSOV
	case errors.KindIllegalBytecode:
		return PanicIll
	default:
		return PanicISE
	}
}
