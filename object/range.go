package object

// RangeData is the Data payload of a Range, built by MKRNG/MKRNGX (§4.6
// "Loads": "build range objects (inclusive/exclusive)").
type RangeData struct {
	Lo, Hi    Value
	Exclusive bool
}

// NewRange builds a Range over [lo, hi] (inclusive) or [lo, hi) (exclusive
// when exclusive is true).
func NewRange(a Allocator, b *Builtins, lo, hi Value, exclusive bool) *Header {
	return a.AllocData(b.RangeType, &RangeData{Lo: lo, Hi: hi, Exclusive: exclusive}, HintAuto)
}

func rangeData(h *Header) *RangeData { return h.Data.(*RangeData) }

// RangeBounds returns a Range's endpoints and exclusivity.
func RangeBounds(h *Header) (lo, hi Value, exclusive bool) {
	d := rangeData(h)
	return d.Lo, d.Hi, d.Exclusive
}
