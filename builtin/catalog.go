// ==============================================================================================
// FILE: builtin/catalog.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The builtin module catalog and the import-collapsing pipeline
//          that turns a script's "builtin module: name, name" lines into
//          concrete functions and blueprints registered on a Program.
// ==============================================================================================

package builtin

import (
	"github.com/samber/lo"

	"sloth/diag"
	"sloth/function"
	"sloth/program"
	"sloth/structure"
)

// Import is one "builtin module" or "builtin module: a, b" declaration
// parsed from a script. Names == nil means "import everything this
// module exports".
type Import struct {
	Module string
	Names  []string
}

func (i Import) isValid(mod *moduleDef) bool {
	if i.Names == nil {
		return true
	}
	return lo.EveryBy(i.Names, func(n string) bool { return mod.has(n) })
}

// funcDef describes one native function a module exports.
type funcDef struct {
	Name     string
	Build    func() *function.NativeFunction
	Requires []string // other names in the same module this one depends on
}

// structDef describes one blueprint a module exports (e.g. clock:Instant).
type structDef struct {
	Name  string
	Build func() *structure.UserBlueprint
}

type moduleDef struct {
	Name    string
	Funcs   []funcDef
	Structs []structDef
}

func (m *moduleDef) has(name string) bool {
	for _, f := range m.Funcs {
		if f.Name == name {
			return true
		}
	}
	for _, s := range m.Structs {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (m *moduleDef) funcByName(name string) (funcDef, bool) {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return funcDef{}, false
}

func (m *moduleDef) structByName(name string) (structDef, bool) {
	for _, s := range m.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return structDef{}, false
}

// Modules is the full catalog, named exactly as the registered modules a
// script's "builtin" declaration can name.
var Modules = map[string]*moduleDef{
	"io":      ioModule,
	"numbers": numbersModule,
	"strings": stringsModule,
	"lists":   listsModule,
	"maths":   mathsModule,
	"files":   filesModule,
	"clock":   clockModule,
	"random":  randomModule,
	"media":   mediaModule,
}

// Collapse expands a set of import declarations to a fixed point
// (following each requested function's intra-module Requires edges),
// deduplicates by "module:name", and registers every resulting function
// and blueprint onto prog. A builtin function already registered on prog
// by an earlier Collapse is skipped. It is the builtin plug-in mechanism: a module
// need only appear in the Modules map above to become importable.
func Collapse(imports []Import, prog *program.Program) *diag.Error {
	seen := make(map[string]bool)
	var worklist []Import
	worklist = append(worklist, imports...)

	for len(worklist) > 0 {
		imp := worklist[0]
		worklist = worklist[1:]

		mod, ok := Modules[imp.Module]
		if !ok {
			return diag.New(diag.ImportError, "unknown builtin module %q", imp.Module)
		}
		if !imp.isValid(mod) {
			return diag.New(diag.ImportError, "module %q does not export all requested names", imp.Module)
		}

		names := imp.Names
		if names == nil {
			names = lo.Map(mod.Funcs, func(f funcDef, _ int) string { return f.Name })
			names = append(names, lo.Map(mod.Structs, func(s structDef, _ int) string { return s.Name })...)
		}

		for _, name := range names {
			key := imp.Module + ":" + name
			if seen[key] {
				continue
			}
			seen[key] = true

			if fd, ok := mod.funcByName(name); ok {
				// A builtin's key carries its module, so a DefinitionError
				// here only means this same function was pushed already.
				if err := prog.PushFunction(fd.Build()); err != nil && err.Kind != diag.DefinitionError {
					return err
				}
				if len(fd.Requires) > 0 {
					worklist = append(worklist, Import{Module: imp.Module, Names: fd.Requires})
				}
				continue
			}
			if sd, ok := mod.structByName(name); ok {
				if err := prog.PushStruct(sd.Build()); err != nil {
					return err
				}
				continue
			}
			return diag.New(diag.ImportError, "module %q has no member %q", imp.Module, name)
		}
	}
	return nil
}
