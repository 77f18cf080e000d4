// ==============================================================================================
// FILE: program/program.go
// ==============================================================================================
// PACKAGE: program
// PURPOSE: The registry a parsed file is assembled into: functions,
//          structure blueprints, static expressions and the root scope.
// ==============================================================================================

package program

import (
	"github.com/samber/lo"

	"sloth/ast"
	"sloth/diag"
	"sloth/function"
	"sloth/scope"
	"sloth/structure"
	"sloth/types"
	"sloth/value"
)

// Program owns every function, blueprint and static binding a script
// defines or imports, for the whole run. Exactly one Program exists per
// invocation of the interpreter.
type Program struct {
	Root *scope.Scope

	functions  map[string]function.Function   // exact-key fast path, see function.Signature.Key
	byName     map[string][]function.Function // name -> every overload, for the fuzzy scan
	blueprints  map[string]*structure.UserBlueprint
	statics     map[string]*value.Cell
	staticExprs map[string]ast.Expression
	Filename    string
	Source      string
}

func New(filename, source string) *Program {
	return &Program{
		Root:       scope.New(nil),
		functions:  make(map[string]function.Function),
		byName:     make(map[string][]function.Function),
		blueprints:  make(map[string]*structure.UserBlueprint),
		statics:     make(map[string]*value.Cell),
		staticExprs: make(map[string]ast.Expression),
		Filename:    filename,
		Source:      source,
	}
}

// PushFunction registers a function, user-defined or native. Re-defining
// the exact same signature twice is a DefinitionError.
func (p *Program) PushFunction(f function.Function) *diag.Error {
	key := f.Signature().Key()
	if _, exists := p.functions[key]; exists {
		return diag.New(diag.DefinitionError, "function %s is already defined", f.Signature())
	}
	p.functions[key] = f
	p.byName[f.Signature().Name] = append(p.byName[f.Signature().Name], f)
	return nil
}

// GetFunction resolves a call per the two-phase algorithm: try the exact
// key first (fast path, handles the overwhelming majority of calls with
// no ambiguity), then fall back to a linear scan over every function
// sharing that name, filtering by Matches (which applies the
// Any-matches-anything wildcard). Zero matches is DefinitionError
// ("not defined"); more than one is also a DefinitionError ("ambiguous")
// since the Language has no further tiebreaker between two overloads
// that both accept a call through an Any parameter.
func (p *Program) GetFunction(owner *types.Type, module *string, name string, argTypes []types.Type) (function.Function, *diag.Error) {
	exactSig := function.Signature{OwnerType: owner, Module: module, Name: name, Args: argSpecsFromTypes(argTypes)}
	if f, ok := p.functions[exactSig.Key()]; ok {
		return f, nil
	}

	candidates := lo.Filter(p.byName[name], func(f function.Function, _ int) bool {
		return f.Signature().Matches(owner, module, name, argTypes)
	})

	switch len(candidates) {
	case 0:
		return nil, diag.New(diag.DefinitionError, "no function named %s matches the given arguments", name)
	case 1:
		return candidates[0], nil
	default:
		return nil, diag.New(diag.DefinitionError, "call to %s is ambiguous between %d overloads", name, len(candidates))
	}
}

func argSpecsFromTypes(ts []types.Type) []function.ArgSpec {
	specs := make([]function.ArgSpec, len(ts))
	for i, t := range ts {
		specs[i] = function.ArgSpec{Type: t}
	}
	return specs
}

// PushStruct registers a structure blueprint (user-declared or, via the
// builtin package, a native resource kind reusing the same shape).
func (p *Program) PushStruct(b *structure.UserBlueprint) *diag.Error {
	key := b.Type().String()
	if _, exists := p.blueprints[key]; exists {
		return diag.New(diag.DefinitionError, "structure %s is already defined", b.Name)
	}
	p.blueprints[key] = b
	return nil
}

func (p *Program) GetStruct(module, name string) (*structure.UserBlueprint, bool) {
	b, ok := p.blueprints[types.Object(module, name).String()]
	return b, ok
}

// Static returns the cached cell for a "static" binding, evaluating it
// via init (only ever called once per name) the first time it is
// requested.
func (p *Program) Static(name string, init func() (value.Value, *diag.Error)) (*value.Cell, *diag.Error) {
	if c, ok := p.statics[name]; ok {
		return c, nil
	}
	v, err := init()
	if err != nil {
		return nil, err
	}
	c := value.NewCell(v)
	p.statics[name] = c
	return c, nil
}

// PushStaticExpr records a "static NAME = expr" declaration's
// right-hand side, unevaluated, for lazy first-access evaluation.
func (p *Program) PushStaticExpr(name string, expr ast.Expression) {
	p.staticExprs[name] = expr
}

// StaticExpr looks up a static's unevaluated initializer expression, for
// the evaluator to run (once) the first time the name is referenced.
func (p *Program) StaticExpr(name string) (ast.Expression, bool) {
	expr, ok := p.staticExprs[name]
	return expr, ok
}

// StaticNames exposes every declared static's name for --expr dumps.
func (p *Program) StaticNames() []string {
	out := make([]string, 0, len(p.staticExprs))
	for name := range p.staticExprs {
		out = append(out, name)
	}
	return out
}

// Functions exposes the registered function set for --functions dumps.
func (p *Program) Functions() []function.Function {
	out := make([]function.Function, 0, len(p.functions))
	for _, f := range p.functions {
		out = append(out, f)
	}
	return out
}
