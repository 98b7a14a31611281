package isa

const opcodeBits = 7
const opcodeMask = uint32(1)<<opcodeBits - 1

// Instruction is a decoded instruction word. Which of A/B/C are meaningful,
// and whether B/C are sign-extended, is determined by the opcode's Shape;
// Decode always populates exactly the fields the shape defines and leaves
// the rest zero.
type Instruction struct {
	Op   Op
	A    int
	B    int
	C    int
	Word uint32
}

func extractU(word uint32, shift, width uint) int {
	mask := uint32(1)<<width - 1
	return int((word >> shift) & mask)
}

func extractS(word uint32, shift, width uint) int {
	v := extractU(word, shift, width)
	signBit := 1 << (width - 1)
	if v&signBit != 0 {
		v -= 1 << width
	}
	return v
}

// Decode extracts the opcode and operands from word per §4.6's instruction
// format. An opcode outside the defined set decodes to OpInvalid so
// dispatch can panic per the "out-of-range operands are illegal bytecode"
// rule.
func Decode(word uint32) Instruction {
	op := Op(word & opcodeMask)
	shape, ok := ShapeOf(op)
	if !ok {
		return Instruction{Op: OpInvalid, Word: word}
	}
	in := Instruction{Op: op, Word: word}
	switch shape {
	case ShapeAw:
		in.A = extractU(word, 7, 25)
	case ShapeAsw:
		in.A = extractS(word, 7, 25)
	case ShapeABw:
		in.A = extractU(word, 7, 7)
		in.B = extractU(word, 14, 18)
	case ShapeABsw:
		in.A = extractU(word, 7, 7)
		in.B = extractS(word, 14, 18)
	case ShapeABC:
		in.A = extractU(word, 7, 7)
		in.B = extractU(word, 14, 9)
		in.C = extractU(word, 23, 9)
	case ShapeABsCs:
		in.A = extractU(word, 7, 7)
		in.B = extractS(word, 14, 9)
		in.C = extractS(word, 23, 9)
	}
	return in
}

func packU(v int, shift, width uint) uint32 {
	mask := uint32(1)<<width - 1
	return (uint32(v) & mask) << shift
}

// Encode assembles a word from op and (A, B, C), using op's shape to decide
// field widths and whether B/C are interpreted as signed on decode (signed
// packing just needs the low bits of the two's-complement value, which
// packU already preserves).
func Encode(op Op, a, b, c int) uint32 {
	shape, ok := ShapeOf(op)
	if !ok {
		panic("isa: Encode of undefined opcode " + op.String())
	}
	word := uint32(op) & opcodeMask
	switch shape {
	case ShapeAw, ShapeAsw:
		word |= packU(a, 7, 25)
	case ShapeABw, ShapeABsw:
		word |= packU(a, 7, 7) | packU(b, 14, 18)
	case ShapeABC, ShapeABsCs:
		word |= packU(a, 7, 7) | packU(b, 14, 9) | packU(c, 23, 9)
	}
	return word
}

// RewriteIndexed re-encodes word in place as the X-suffixed indexed form of
// an LDGLB/STGLB instruction (§4.6 self-modifying cache), keeping the
// original A (destination or source register) and replacing the name
// index with the resolved variable index i. Callers must have already
// checked i <= 65535.
func RewriteIndexed(newOp Op, a, i int) uint32 {
	return Encode(newOp, a, i, 0)
}
