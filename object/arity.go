package object

// Arity decodes a Function's (na, no, nr) metadata into the three shapes
// the encoding distinguishes (§4.5):
//
//	no == 0   -> no optionals, max argc = na
//	no > 0    -> k = no fixed optionals, max argc = na+no
//	no == -1  -> pure variadic, remainder gathered as a Tuple
//	no < -1   -> k = (-no)-1 fixed optionals then variadic
type Arity struct {
	NA, NO, NR int32
}

// Variadic reports whether excess arguments are gathered into a Tuple.
func (a Arity) Variadic() bool { return a.NO < 0 }

// FixedOptionals returns k, the count of fixed optional slots (0 for
// no==0, and for the variadic encodings the (-no)-1 term).
func (a Arity) FixedOptionals() int32 {
	switch {
	case a.NO > 0:
		return a.NO
	case a.NO < -1:
		return -a.NO - 1
	default:
		return 0
	}
}

// MaxFixedArgc is the largest argc servable without the variadic tail
// (na+no for non-variadic; na+k for variadic).
func (a Arity) MaxFixedArgc() int32 { return a.NA + a.FixedOptionals() }

// Check validates argc against the arity, returning the required/allowed
// bounds for error reporting when it doesn't fit (§4.5: "Argument-count
// mismatches raise a type exception with a descriptive message").
func (a Arity) Check(argc int) (ok bool, wantMin, wantMax int) {
	wantMin = int(a.NA)
	if a.Variadic() {
		return argc >= wantMin, wantMin, -1
	}
	wantMax = int(a.MaxFixedArgc())
	return argc >= wantMin && argc <= wantMax, wantMin, wantMax
}
