package object

// MaxTraceFrames bounds stack-trace growth during unwinding.
const MaxTraceFrames = 64

// NewException builds an Exception with the triple (type, what, data)
// and an empty trace (§3.4, §7).
func NewException(a Allocator, b *Builtins, excType, what *Header, payload Value) *Header {
	ed := &ExceptionData{ExcType: excType, What: what, Payload: payload}
	return a.AllocData(b.ExceptionType, ed, HintAuto)
}

func excData(h *Header) *ExceptionData { return h.Data.(*ExceptionData) }

// ExceptionAppendFrame appends one (function, ip) frame as the exception
// unwinds (§4.6 THR), truncating once MaxTraceFrames is reached.
func ExceptionAppendFrame(h *Header, funcName string, ip uint32) {
	d := excData(h)
	if len(d.Trace) >= MaxTraceFrames {
		d.Truncated = true
		return
	}
	d.Trace = append(d.Trace, TraceFrame{FuncName: funcName, IP: ip})
}

// ExceptionTrace returns the current stack trace.
func ExceptionTrace(h *Header) []TraceFrame { return excData(h).Trace }

// ExceptionTypeName returns the Symbol name of the exception's type slot.
func ExceptionTypeName(h *Header) string {
	return string(StringBytes(excData(h).ExcType))
}

// ExceptionWhat returns the human-readable message.
func ExceptionWhat(h *Header) string { return string(StringBytes(excData(h).What)) }

// ExceptionPayload returns the arbitrary data payload.
func ExceptionPayload(h *Header) Value { return excData(h).Payload }
