package corectx

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp"
	"github.com/wippy-lang/corevm/object"
)

// Loader resolves a top-level module by name for the IMP opcode (§4.6
// "Module"). It is the same shape as interp.Loader, re-exported here so
// embedders implement one interface without importing interp directly —
// the module-loader/filesystem layer itself is an external collaborator
// an embedder supplies, not something this package implements.
type Loader = interp.Loader

// MapLoader is a minimal Loader backed by a name-to-Module table,
// sufficient for an embedder that builds its module graph up front (as
// cmd/corevm does) rather than resolving it lazily from a filesystem.
type MapLoader struct {
	modules map[string]*object.Header
}

// NewMapLoader builds an empty MapLoader.
func NewMapLoader() *MapLoader {
	return &MapLoader{modules: make(map[string]*object.Header)}
}

// Register makes mod resolvable under name.
func (l *MapLoader) Register(name string, mod *object.Header) {
	l.modules[name] = mod
}

// LoadModule implements Loader.
func (l *MapLoader) LoadModule(name string) (*object.Header, error) {
	if mod, ok := l.modules[name]; ok {
		return mod, nil
	}
	return nil, errors.KeyNotFound(errors.PhaseGlobal, name)
}
