package object

// NewFloat allocates a boxed Float (§3.4).
func NewFloat(a Allocator, b *Builtins, v float64) *Header {
	return a.AllocData(b.FloatType, &FloatData{V: v}, HintAuto)
}

// MakeFloatFromFracExp implements MKFLT's construction rule: ldexp(frac,
// exp) (§4.6 "Loads").
func MakeFloatFromFracExp(a Allocator, b *Builtins, frac float64, exp int) Value {
	return Ref(NewFloat(a, b, ldexpFloat(frac, exp)))
}

// FloatValue extracts a boxed Float's value.
func FloatValue(h *Header) float64 { return h.Data.(*FloatData).V }
