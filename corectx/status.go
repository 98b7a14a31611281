package corectx

import "github.com/wippy-lang/corevm/errors"

// Status is the small-int status code returned across the embedder
// boundary (§6, §7: "Status codes are returned by embedder APIs for
// shallow misuse ... always non-throwing").
type Status int

const (
	StatusOK    Status = 0
	StatusExc   Status = -1
	StatusEArg  Status = -11
	StatusEIdx  Status = -12
	StatusEType Status = -13
	StatusEBuf  Status = -14
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusExc:
		return "EXC"
	case StatusEArg:
		return "E_ARG"
	case StatusEIdx:
		return "E_IDX"
	case StatusEType:
		return "E_TYPE"
	case StatusEBuf:
		return "E_BUF"
	default:
		return "?"
	}
}

// statusFromKind maps a structured error's Kind to a status code via a
// simple lookup table (§1.1), the same shallow-misuse/non-throwing split
// the embedder boundary requires.
var statusFromKind = map[errors.Kind]Status{
	errors.KindArity:        StatusEArg,
	errors.KindInvalidInput: StatusEArg,
	errors.KindOutOfBounds:  StatusEIdx,
	errors.KindKeyNotFound:  StatusEIdx,
	errors.KindTypeMismatch: StatusEType,
	errors.KindNotCallable:  StatusEType,
	errors.KindIncomparable: StatusEType,
}

// StatusFor translates a Go error produced by a Go-level API call (as
// opposed to a bytecode-level exception value) into its embedder status
// code. A nil error is StatusOK; an unrecognized *errors.Error defaults
// to E_ARG; any other error is reported as E_ARG too, since Go-level API
// misuse has no richer classification at the boundary.
func StatusFor(err error) Status {
	if err == nil {
		return StatusOK
	}
	if ee, ok := err.(*errors.Error); ok {
		if st, ok := statusFromKind[ee.Kind]; ok {
			return st
		}
	}
	return StatusEArg
}
