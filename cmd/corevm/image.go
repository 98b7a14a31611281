package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wippy-lang/corevm/corectx"
	"github.com/wippy-lang/corevm/object"
)

// image is the on-disk JSON shape cmd/corevm loads. There is no text
// assembler in this repo to produce bytecode, so the CLI driver reads
// this minimal format directly — it exercises the same
// corectx.FunctionDef the embedder API takes.
type image struct {
	Name    string        `json:"name"`
	Code    []uint32      `json:"code"`
	Consts  []imageConst  `json:"consts"`
	Symbols []string      `json:"symbols"`
	Arity   imageArity    `json:"arity"`
}

type imageArity struct {
	NA int32 `json:"na"`
	NO int32 `json:"no"`
	NR int32 `json:"nr"`
}

// imageConst is a tagged constant-pool entry. Collections are not
// representable in the image format; a bytecode function that needs a
// Tuple/Array/Map constant builds it at runtime with MKTUP/MKARR/MKMAP
// instead, which keeps this format a straightforward transcription of a
// function's constant table rather than a second serialization of the
// object model.
type imageConst struct {
	Kind string `json:"kind"` // "int", "float", "string", "bool", "nil"
	I    int64  `json:"i,omitempty"`
	F    float64 `json:"f,omitempty"`
	S    string `json:"s,omitempty"`
	B    bool   `json:"b,omitempty"`
}

// loadImage reads and decodes path into a corectx.FunctionDef, ready for
// Context.MakeFunction. Constants that need heap allocation (strings) are
// realized through the Context directly so they participate in the same
// GC as everything else the function touches at runtime.
func loadImage(c *corectx.Context, path string) (corectx.FunctionDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return corectx.FunctionDef{}, fmt.Errorf("read image: %w", err)
	}
	var img image
	if err := json.Unmarshal(raw, &img); err != nil {
		return corectx.FunctionDef{}, fmt.Errorf("parse image: %w", err)
	}

	consts := make([]object.Value, len(img.Consts))
	var constErr error
	c.NativeBlock(0, func(regs *corectx.Context) error {
		for i, k := range img.Consts {
			v, err := constValue(regs, k)
			if err != nil {
				constErr = fmt.Errorf("const %d: %w", i, err)
				return constErr
			}
			consts[i] = v
		}
		return nil
	}, object.Value{})
	if constErr != nil {
		return corectx.FunctionDef{}, constErr
	}

	return corectx.FunctionDef{
		Name:    img.Name,
		Code:    img.Code,
		Consts:  consts,
		Symbols: img.Symbols,
		Arity:   object.Arity{NA: img.Arity.NA, NO: img.Arity.NO, NR: img.Arity.NR},
	}, nil
}

// constValue realizes one imageConst through a scratch register so string
// allocation goes through the Context's normal MakeString path rather than
// a bespoke object.NewString call here.
func constValue(c *corectx.Context, k imageConst) (object.Value, error) {
	const scratch = 0
	switch k.Kind {
	case "int":
		if st := c.MakeInt(scratch, k.I); st != corectx.StatusOK {
			return object.Value{}, fmt.Errorf("make_int: %s", st)
		}
	case "float":
		if st := c.MakeFloat(scratch, k.F); st != corectx.StatusOK {
			return object.Value{}, fmt.Errorf("make_float: %s", st)
		}
	case "string":
		if st := c.MakeString(scratch, []byte(k.S)); st != corectx.StatusOK {
			return object.Value{}, fmt.Errorf("make_string: %s", st)
		}
	case "bool":
		if st := c.MakeBool(scratch, k.B); st != corectx.StatusOK {
			return object.Value{}, fmt.Errorf("make_bool: %s", st)
		}
	case "nil":
		if st := c.MakeNil(scratch); st != corectx.StatusOK {
			return object.Value{}, fmt.Errorf("make_nil: %s", st)
		}
	default:
		return object.Value{}, fmt.Errorf("unknown const kind %q", k.Kind)
	}
	v, _ := c.Register(scratch)
	return v, nil
}
