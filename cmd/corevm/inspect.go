package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/gcheap"
	"github.com/wippy-lang/corevm/object"
)

// inspectModel is cmd/corevm's bubbletea model for the -i heap/stack
// inspector: a disassembly panel, an argument-entry form when the loaded
// function takes required arguments, a live Heap.Stats() occupancy panel,
// and a result line from the most recent run. The loaded image carries a
// single entry-point function, so there's no function picker, only its
// argument list.
type inspectModel struct {
	path    string
	ctx     *corectx.Context
	def     corectx.FunctionDef
	loadErr error

	inputs   []textinput.Model
	focusIdx int

	result string
	status corectx.Status
	ran    bool
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func newInspectModel(path string) *inspectModel {
	return &inspectModel{path: path, ctx: corectx.New()}
}

func (m *inspectModel) Init() tea.Cmd {
	def, err := loadImage(m.ctx, m.path)
	m.def = def
	m.loadErr = err
	if err == nil {
		m.prepareInputs()
	}
	return nil
}

// prepareInputs builds one textinput per required argument (Arity.NA),
// since a bytecode function's only caller-visible argument names are
// positional.
func (m *inspectModel) prepareInputs() {
	na := int(m.def.Arity.NA)
	m.inputs = make([]textinput.Model, na)
	for i := 0; i < na; i++ {
		ti := textinput.New()
		ti.Placeholder = "int"
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 20
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.ctx.Destroy()
		return m, tea.Quit
	case "tab":
		if len(m.inputs) > 1 {
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
		}
		return m, nil
	case "enter":
		if m.loadErr == nil {
			m.runOnce()
		}
		return m, nil
	}

	if len(m.inputs) > 0 {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// runOnce executes the loaded function once through a fresh native_block
// frame, laying the entered arguments into registers 3.., then invoking
// discretely over them — the same path the one-shot mode uses, so
// repeated "enter" presses exercise the interpreter and GC identically to
// a non-interactive run, and heap occupancy visibly climbs across them.
func (m *inspectModel) runOnce() {
	argRegs := make([]int, len(m.inputs))
	st := m.ctx.NativeBlock(3+len(m.inputs), func(regs *corectx.Context) error {
		if st := regs.MakeModule(1, corectx.ModuleDef{Name: "main"}); st != corectx.StatusOK {
			return fmt.Errorf("make_module: %s", st)
		}
		if st := regs.MakeFunction(2, m.def, 1); st != corectx.StatusOK {
			return fmt.Errorf("make_function: %s", st)
		}
		for i, ti := range m.inputs {
			reg := 3 + i
			n, _ := strconv.ParseInt(strings.TrimSpace(ti.Value()), 10, 64)
			if st := regs.MakeInt(reg, n); st != corectx.StatusOK {
				return fmt.Errorf("make_int(arg%d): %s", i, st)
			}
			argRegs[i] = reg
		}
		dst := 3 + len(m.inputs)
		callList := append([]int{dst, 2}, argRegs...)
		m.status = regs.Invoke(callList, len(argRegs))
		m.result = renderValue(regs, dst)
		return nil
	}, object.Value{})
	if st != corectx.StatusOK {
		m.result = fmt.Sprintf("native_block failed: %s", st)
	}
	m.ran = true
}

func (m *inspectModel) View() string {
	if m.loadErr != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.loadErr))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("corevm inspect"))
	b.WriteString(" ")
	b.WriteString(m.path)
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Function"))
	b.WriteString("\n")
	b.WriteString(disassemble(m.def))
	b.WriteString("\n")

	if len(m.inputs) > 0 {
		b.WriteString(sectionStyle.Render("Arguments"))
		b.WriteString("\n")
		for _, ti := range m.inputs {
			b.WriteString(ti.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Heap"))
	b.WriteString("\n")
	b.WriteString(renderStats(m.ctx.Heap().Stats()))
	b.WriteString(fmt.Sprintf("stack depth: %d\n\n", m.ctx.StackDepth()))

	b.WriteString(sectionStyle.Render("Result"))
	b.WriteString("\n")
	if !m.ran {
		b.WriteString("(not run yet)\n")
	} else {
		b.WriteString(fmt.Sprintf("status: %s\n", m.status))
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "enter run • q quit"
	if len(m.inputs) > 1 {
		help = "tab next field • " + help
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func renderStats(s gcheap.Stats) string {
	return fmt.Sprintf(
		"young: %d/%d words\nold: %d chunks, %d words\nbig: %d objects\nGC cycles: %d fast, %d full\n",
		s.YoungWorkingWords, s.YoungCapacityWords, s.OldChunks, s.OldUsedWords,
		s.BigObjects, s.FastCycles, s.FullCycles)
}

func runInteractive(path string) error {
	p := tea.NewProgram(newInspectModel(path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
