package interp

import (
	"github.com/wippy-lang/corevm/errors"
	"github.com/wippy-lang/corevm/interp/internal/isa"
	"github.com/wippy-lang/corevm/object"
)

const maxSelfModifyIndex = 65535

// execLDGLB implements LDGLB Rd, k (§4.6 "Globals"): resolves a global by
// name in the current Function's owning Module (falling back to parent
// modules), then — only when the binding lives directly in the owning
// Module and its index is at most maxSelfModifyIndex — rewrites this instruction word in
// place to LDGLBX so future executions skip the name lookup.
func (m *Machine) execLDGLB(setReg func(int, object.Value), fd *object.FunctionData, symNameAt func(int) string, in isa.Instruction) (uint32, error) {
	name := symNameAt(in.B)
	if fd.Module == nil {
		return 0, m.keyError("no owning module for global " + name)
	}
	v, owner, idx, ok := object.ModuleGetGlobal(fd.Module, name)
	if !ok {
		return 0, m.keyError("undefined global " + name)
	}
	setReg(in.A, v)
	if owner == fd.Module && idx <= maxSelfModifyIndex {
		return isa.RewriteIndexed(isa.OpLDGLBX, in.A, idx), nil
	}
	return in.Word, nil
}

// execSTGLB implements STGLB Rv, k: writes (defining if absent) a global
// in the owning Module directly — it never writes through to a parent —
// so the rewrite to STGLBX is always eligible once the index fits.
func (m *Machine) execSTGLB(reg func(int) object.Value, fd *object.FunctionData, symNameAt func(int) string, in isa.Instruction) (uint32, error) {
	name := symNameAt(in.B)
	if fd.Module == nil {
		return 0, m.keyError("no owning module for global " + name)
	}
	idx := object.ModuleSetGlobal(m.heap, fd.Module, name, reg(in.A))
	if idx <= maxSelfModifyIndex {
		return isa.RewriteIndexed(isa.OpSTGLBX, in.A, idx), nil
	}
	return in.Word, nil
}

// execLDGLBX implements LDGLBX Rd, i: a direct indexed read into the
// owning Module's global slots, bypassing name resolution.
func (m *Machine) execLDGLBX(fd *object.FunctionData, in isa.Instruction) object.Value {
	if fd.Module == nil || in.B < 0 || in.B >= object.ModuleGlobalCount(fd.Module) {
		panicIllegal(errors.PhaseGlobal, "module global index out of range")
	}
	return object.ModuleGetIndexed(fd.Module, in.B)
}

// execSTGLBX implements STGLBX Rv, i.
func (m *Machine) execSTGLBX(reg func(int) object.Value, fd *object.FunctionData, in isa.Instruction) {
	if fd.Module == nil || in.B < 0 || in.B >= object.ModuleGlobalCount(fd.Module) {
		panicIllegal(errors.PhaseGlobal, "module global index out of range")
	}
	object.ModuleSetIndexed(m.heap, fd.Module, in.B, reg(in.A))
}
