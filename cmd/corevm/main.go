// Command corevm is a minimal embedder for the runtime core: it loads a
// bytecode image (a JSON transcription of a single Function, since this
// repo has no separate text assembler), runs it through one Context, and
// offers a disassembler and an interactive heap/stack inspector.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/object"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

// maybeStyle renders text through s only when stdout is an actual
// terminal, so piping one-shot mode's output to a file or a test harness
// gets plain text instead of ANSI escapes. bubbletea's own program loop
// makes this same check for -i, so it isn't needed there.
func maybeStyle(s lipgloss.Style, text string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return s.Render(text)
	}
	return text
}

func main() {
	var (
		imagePath   = flag.String("image", "", "Path to a bytecode image JSON file")
		list        = flag.Bool("list", false, "Disassemble the image and exit")
		interactive = flag.Bool("i", false, "Interactive mode with a heap/stack inspector")
	)
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: corevm -image <file.json> [-list]")
		fmt.Fprintln(os.Stderr, "       corevm -image <file.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*imagePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*imagePath, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(imagePath string, listOnly bool) error {
	c := corectx.New()
	defer c.Destroy()

	def, err := loadImage(c, imagePath)
	if err != nil {
		return err
	}

	fmt.Println(maybeStyle(titleStyle, "corevm"))
	fmt.Println(disassemble(def))

	if listOnly {
		return nil
	}

	fmt.Println("Running...")
	var (
		result string
		status corectx.Status
	)
	st := c.NativeBlock(3, func(regs *corectx.Context) error {
		if st := regs.MakeModule(1, corectx.ModuleDef{Name: "main"}); st != corectx.StatusOK {
			return fmt.Errorf("make_module: %s", st)
		}
		if st := regs.MakeFunction(2, def, 1); st != corectx.StatusOK {
			return fmt.Errorf("make_function: %s", st)
		}
		status = regs.Invoke([]int{3, 2}, 0)
		result = renderValue(regs, 3)
		return nil
	}, object.Value{})
	if st != corectx.StatusOK {
		return fmt.Errorf("native_block: %s", st)
	}

	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Result: %s\n", result)
	stats := c.Heap().Stats()
	fmt.Printf("\nHeap: young %d/%d words, old %d chunks (%d words), big %d objects, %d fast / %d full GC cycles\n",
		stats.YoungWorkingWords, stats.YoungCapacityWords, stats.OldChunks, stats.OldUsedWords,
		stats.BigObjects, stats.FastCycles, stats.FullCycles)

	return nil
}
