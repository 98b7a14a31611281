package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

func enc(op isa.Op, a, b, c int) uint32 { return isa.Encode(op, a, b, c) }

// writeImage marshals img to a temp file and returns its path.
func writeImage(t *testing.T, img image) string {
	t.Helper()
	raw, err := json.Marshal(img)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "image.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

// additionImage builds a small function: MKINT R1,6; MKINT R2,7;
// ADD R0,R1,R2; RET R0.
func additionImage() image {
	return image{
		Name: "add",
		Code: []uint32{
			enc(isa.OpMKINT, 1, 6, 0),
			enc(isa.OpMKINT, 2, 7, 0),
			enc(isa.OpADD, 0, 1, 2),
			enc(isa.OpRET, 0, 0, 0),
		},
		Arity: imageArity{NA: 0, NO: 0, NR: 3},
	}
}

func TestLoadImageAndRun(t *testing.T) {
	path := writeImage(t, additionImage())

	c := corectx.New()
	defer c.Destroy()

	def, err := loadImage(c, path)
	require.NoError(t, err)
	require.Equal(t, "add", def.Name)
	require.Len(t, def.Code, 4)

	var (
		result string
		status corectx.Status
	)
	st := c.NativeBlock(3, func(regs *corectx.Context) error {
		require.Equal(t, corectx.StatusOK, regs.MakeModule(1, corectx.ModuleDef{Name: "main"}))
		require.Equal(t, corectx.StatusOK, regs.MakeFunction(2, def, 1))
		status = regs.Invoke([]int{3, 2}, 0)
		result = renderValue(regs, 3)
		return nil
	}, object.Value{})
	require.Equal(t, corectx.StatusOK, st)
	require.Equal(t, corectx.StatusOK, status)
	require.Equal(t, "13", result)
}

func TestDisassembleRendersEveryInstruction(t *testing.T) {
	def, err := loadImage(corectx.New(), writeImage(t, additionImage()))
	require.NoError(t, err)

	out := disassemble(def)
	require.Contains(t, out, "MKINT")
	require.Contains(t, out, "ADD")
	require.Contains(t, out, "RET")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1+len(def.Code)) // header line + one per instruction
}

func TestLoadImageRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	c := corectx.New()
	defer c.Destroy()
	_, err := loadImage(c, path)
	require.Error(t, err)
}

func TestLoadImageConstants(t *testing.T) {
	img := image{
		Name: "consts",
		Code: []uint32{
			enc(isa.OpLDCON, 0, 0, 0),
			enc(isa.OpRET, 0, 0, 0),
		},
		Consts: []imageConst{
			{Kind: "string", S: "hi"},
		},
		Arity: imageArity{NR: 1},
	}
	path := writeImage(t, img)

	c := corectx.New()
	defer c.Destroy()
	def, err := loadImage(c, path)
	require.NoError(t, err)
	require.Len(t, def.Consts, 1)
}
