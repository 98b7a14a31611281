package interp

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
	"github.com/wippy-lang/corevm/stack"
)

// runFrame executes fn's bytecode against the frame already entered at
// frameBase (REG-0 already holding fn, per invoke.Enter's contract) until
// RET/RETNIL pops it, or an exception propagates out of it. Every CALL-
// family opcode that invokes a bytecode callee recurses into runFrame,
// so Go's own call stack tracks "function + instruction pointer to
// resume" on our behalf — the register stack (m.stack) only ever needs
// to track frame/top, matching §4.2's narrower call-stack contract.
func (m *Machine) runFrame(fn *object.Header, frameBase int) (object.Value, error) {
	fd := fn.Data.(*object.FunctionData)
	s := m.stack
	ip := 0

	reg := func(r int) object.Value {
		if !s.InBounds(r) {
			panicIllegal(errors.PhaseDecode, "register operand out of frame bounds")
		}
		return s.Get(r)
	}
	setReg := func(r int, v object.Value) {
		if !s.InBounds(r) {
			panicIllegal(errors.PhaseDecode, "register operand out of frame bounds")
		}
		s.Set(r, v)
	}
	constAt := func(k int) object.Value {
		if k < 0 || k >= len(fd.Consts) {
			panicIllegal(errors.PhaseDecode, "constant index out of range")
		}
		return fd.Consts[k]
	}
	symNameAt := func(k int) string {
		if k < 0 || k >= len(fd.Symbols) {
			panicIllegal(errors.PhaseDecode, "symbol index out of range")
		}
		return fd.Symbols[k]
	}

	for {
		if ip < 0 || ip >= len(fd.Bytecode) {
			panicIllegal(errors.PhaseDecode, "instruction pointer out of range")
		}
		in := isa.Decode(fd.Bytecode[ip])
		if !isa.Defined(in.Op) {
			panicIllegal(errors.PhaseDecode, "undefined opcode")
		}
		next := ip + 1

		switch in.Op {
		// --- Misc ---
		case isa.OpNOP:
		case isa.OpARG:
			panicIllegal(errors.PhaseDecode, "ARG pseudo-opcode executed")
		case isa.OpBRK:
			panic(&illegal{err: errors.New(errors.PhaseDecode, errors.KindIllegalBytecode).
				Detail("breakpoint hit (code %d)", in.A).Build()})

		// --- Loads ---
		case isa.OpLDNIL:
			m.execLDNIL(setReg, in)
		case isa.OpLDBLN:
			setReg(in.A, m.b.BoolValue(in.B != 0))
		case isa.OpLDCON:
			setReg(in.A, constAt(in.B))
		case isa.OpLDSYM:
			setReg(in.A, object.Ref(m.symbols.Intern([]byte(symNameAt(in.B)))))
		case isa.OpMKINT:
			setReg(in.A, object.MakeInt(m.heap, m.b, int64(in.B)))
		case isa.OpMKFLT:
			setReg(in.A, object.MakeFloatFromFracExp(m.heap, m.b, float64(in.B), in.C))
		case isa.OpMKTUP:
			setReg(in.A, m.execMKTUP(reg, in))
		case isa.OpMKARR:
			setReg(in.A, m.execMKARR(reg, in))
		case isa.OpMKMAP:
			v, err := m.execMKMAP(reg, in)
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)
		case isa.OpMKRNG:
			setReg(in.A, object.Ref(object.NewRange(m.heap, m.b, reg(in.B), reg(in.C), false)))
		case isa.OpMKRNGX:
			setReg(in.A, object.Ref(object.NewRange(m.heap, m.b, reg(in.B), reg(in.C), true)))

		// --- Control ---
		case isa.OpTHR:
			return m.unwind(s, m.execTHR(fn, ip, reg(in.A)))
		case isa.OpRETNIL:
			rv := m.b.NilValue()
			s.Leave(rv)
			return rv, nil
		case isa.OpRET:
			rv := reg(in.A)
			s.Leave(rv)
			return rv, nil
		case isa.OpJMP:
			next = ip + in.A
		case isa.OpJMPT, isa.OpJMPF:
			taken, err := m.execJMPCond(in.Op, reg(in.A))
			if err != nil {
				return m.unwind(s, err)
			}
			if taken {
				next = ip + in.B
			}
		case isa.OpJMPLE, isa.OpJMPLT, isa.OpJMPEQ, isa.OpJMPGT, isa.OpJMPGE, isa.OpJMPNE:
			taken, err := m.execJMPCompare(in.Op, reg(in.A), reg(in.B))
			if err != nil {
				return m.unwind(s, err)
			}
			if taken {
				next = ip + in.C
			}

		// --- Calls ---
		case isa.OpCALL:
			if err := m.execCALL(reg, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpCALLV:
			if err := m.execCALLV(reg, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpCALLP:
			if err := m.execCALLP(reg, in); err != nil {
				return m.unwind(s, err)
			}

		// --- Field access ---
		case isa.OpLDMTH:
			if err := m.execLDMTH(setReg, reg, symNameAt, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpLDFLDY:
			if err := m.execLDFLDY(setReg, reg, symNameAt, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpSTFLDY:
			if err := m.execSTFLDY(reg, symNameAt, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpLDFLDX:
			m.execLDFLDX(setReg, reg, in)
		case isa.OpSTFLDX:
			m.execSTFLDX(reg, in)

		// --- Globals ---
		case isa.OpLDGLB:
			rewritten, err := m.execLDGLB(setReg, fd, symNameAt, in)
			if err != nil {
				return m.unwind(s, err)
			}
			fd.Bytecode[ip] = rewritten
		case isa.OpSTGLB:
			rewritten, err := m.execSTGLB(reg, fd, symNameAt, in)
			if err != nil {
				return m.unwind(s, err)
			}
			fd.Bytecode[ip] = rewritten
		case isa.OpLDGLBX:
			setReg(in.A, m.execLDGLBX(fd, in))
		case isa.OpSTGLBX:
			m.execSTGLBX(reg, fd, in)

		// --- Elements ---
		case isa.OpLDELM:
			if err := m.execLDELM(setReg, reg, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpSTELM:
			if err := m.execSTELM(reg, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpLDELMI:
			if err := m.execLDELMI(setReg, reg, in); err != nil {
				return m.unwind(s, err)
			}
		case isa.OpSTELMI:
			if err := m.execSTELMI(reg, in); err != nil {
				return m.unwind(s, err)
			}

		// --- Arithmetic and logic ---
		case isa.OpADD, isa.OpSUB, isa.OpMUL, isa.OpDIV, isa.OpREM, isa.OpPOW,
			isa.OpSHL, isa.OpSHR, isa.OpBITAND, isa.OpBITOR, isa.OpBITXOR:
			v, err := m.execBinaryArith(in.Op, reg(in.B), reg(in.C))
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)
		case isa.OpNOT:
			v, err := m.execNOT(reg(in.B))
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)
		case isa.OpNEG:
			v, err := m.execNEG(reg(in.B))
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)
		case isa.OpBITNOT:
			v, err := m.execBITNOT(reg(in.B))
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)

		// --- Module ---
		case isa.OpIMP:
			v, err := m.execIMP(symNameAt, in)
			if err != nil {
				return m.unwind(s, err)
			}
			setReg(in.A, v)
		case isa.OpIMPSUB:
			return m.unwind(s, m.wrapAsThrown(errors.Unsupported(errors.PhaseGlobal, "IMPSUB is reserved and unimplemented")))

		default:
			panicIllegal(errors.PhaseDecode, "opcode has no dispatch case")
		}

		ip = next
	}
}

// unwind restores this frame's register-stack slice (mirroring RET's
// cleanup) before propagating a thrown exception up through the Go call
// stack that mirrors the VM's own frame chain.
func (m *Machine) unwind(s *stack.Stack, err error) (object.Value, error) {
	th := m.wrapAsThrown(err)
	s.Leave(m.b.NilValue())
	return object.Value{}, th
}
