package interp

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

// execIMP implements IMP Rd, k (§4.6 "Module"): resolves a top-level
// module by name through the embedder-supplied Loader and returns it as
// a Module reference. The core has no notion of a filesystem or package
// graph (§1) — it only knows how to ask its collaborator for one.
func (m *Machine) execIMP(symNameAt func(int) string, in isa.Instruction) (object.Value, error) {
	name := symNameAt(in.B)
	if m.loader == nil {
		return object.Value{}, m.wrapAsThrown(errors.NotInitialized(errors.PhaseGlobal, "module loader"))
	}
	mod, err := m.loader.LoadModule(name)
	if err != nil {
		return object.Value{}, m.keyError("failed to import " + name + ": " + err.Error())
	}
	return object.Ref(mod), nil
}
