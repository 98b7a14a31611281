package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/interp/internal/isa"
)

var (
	addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	opStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98"))
	immStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// disassemble renders def's bytecode one instruction per line, decoding
// each word with interp/internal/isa the same way the interpreter's
// dispatch loop does, so the printed mnemonic and operands are exactly
// what would execute.
func disassemble(def corectx.FunctionDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  na=%d no=%d nr=%d\n",
		lipgloss.NewStyle().Bold(true).Render(def.Name), def.Arity.NA, def.Arity.NO, def.Arity.NR)
	for ip, word := range def.Code {
		in := isa.Decode(word)
		addr := addrStyle.Render(fmt.Sprintf("%4d:", ip))
		if !isa.Defined(in.Op) {
			fmt.Fprintf(&b, "%s %s\n", addr, badStyle.Render(fmt.Sprintf("<invalid opcode %d>", in.Op)))
			continue
		}
		fmt.Fprintf(&b, "%s %-8s %s\n", addr, opStyle.Render(in.Op.String()), immStyle.Render(operandString(in)))
	}
	return b.String()
}

// operandString renders an instruction's decoded operands in the shape
// that matches its isa.Shape, so e.g. a signed ABsCs instruction prints
// "Rb, Rc" rather than raw unsigned fields.
func operandString(in isa.Instruction) string {
	shape, _ := isa.ShapeOf(in.Op)
	switch shape {
	case isa.ShapeAw, isa.ShapeAsw:
		return fmt.Sprintf("%d", in.A)
	case isa.ShapeABw:
		return fmt.Sprintf("R%d, %d", in.A, in.B)
	case isa.ShapeABsw:
		return fmt.Sprintf("R%d, %d", in.A, in.B)
	case isa.ShapeABC:
		return fmt.Sprintf("R%d, R%d, R%d", in.A, in.B, in.C)
	case isa.ShapeABsCs:
		return fmt.Sprintf("R%d, R%d, %d", in.A, in.B, in.C)
	default:
		return ""
	}
}
