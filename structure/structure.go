// ==============================================================================================
// FILE: structure/structure.go
// ==============================================================================================
// PACKAGE: structure
// PURPOSE: The "structure Name { field: Type; ... }" capability: a
//          blueprint describing the fields, and object instances built
//          from it. The builtin package's object kinds (clock:Instant,
//          media:Window) are UserBlueprints too, with Module set.
// ==============================================================================================

package structure

import (
	"fmt"
	"strings"

	"sloth/diag"
	"sloth/types"
	"sloth/value"
)

// FieldSpec is one declared field of a structure: its name and type.
type FieldSpec struct {
	Name string
	Type types.Type
}

// UserBlueprint is a user-declared "structure Name { ... }".
type UserBlueprint struct {
	Module string // "" for a user-level structure, set for a builtin kind reusing this shape
	Name   string
	Fields []FieldSpec
}

func (b *UserBlueprint) Type() types.Type {
	return types.Object(b.Module, b.Name)
}

func (b *UserBlueprint) FieldNames() []string {
	names := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		names[i] = f.Name
	}
	return names
}

// Build allocates one cell per declared field, defaulted to each field's
// type's zero value, then overwrites the first len(args) of them
// positionally -- the constructor-argument contract of "new Name(...)".
func (b *UserBlueprint) Build(args []value.Value) (*UserObject, *diag.Error) {
	if len(args) > len(b.Fields) {
		return nil, diag.New(diag.InvalidArguments,
			"structure %s takes at most %d constructor arguments, got %d", b.Name, len(b.Fields), len(args))
	}
	cells := make([]*value.Cell, len(b.Fields))
	for i, f := range b.Fields {
		cells[i] = value.NewCell(zeroValue(f.Type))
	}
	for i, a := range args {
		if !typeAccepts(b.Fields[i].Type, a.Type()) {
			return nil, diag.New(diag.TypeError,
				"field %s of %s expects %s, got %s", b.Fields[i].Name, b.Name, b.Fields[i].Type, a.Type())
		}
		cells[i].Set(a)
	}
	return &UserObject{blueprint: b, cells: cells}, nil
}

func typeAccepts(declared, actual types.Type) bool {
	return declared.Kind == types.AnyKind || declared.Equals(actual)
}

func zeroValue(t types.Type) value.Value {
	switch t.Kind {
	case types.NumberKind:
		return value.NewNumber(0)
	case types.BooleanKind:
		return value.NewBoolean(false)
	case types.StringKind:
		return value.NewString("")
	case types.ListKind:
		return value.NewList(&value.ListValue{})
	default:
		return value.Value{}
	}
}

// UserObject is one instance built from a UserBlueprint: a handle plus a
// cell per field, addressed by name via FieldCell.
type UserObject struct {
	blueprint *UserBlueprint
	cells     []*value.Cell
}

func (o *UserObject) Blueprint() value.Blueprint { return o.blueprint }

func (o *UserObject) FieldCell(name string) (*value.Cell, bool) {
	for i, f := range o.blueprint.Fields {
		if f.Name == name {
			return o.cells[i], true
		}
	}
	return nil, false
}

func (o *UserObject) Display() string {
	parts := make([]string, len(o.blueprint.Fields))
	for i, f := range o.blueprint.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, o.cells[i].Get().Display())
	}
	return fmt.Sprintf("%s{%s}", o.blueprint.Name, strings.Join(parts, ", "))
}

// Clone implements value.Object. A shallow clone returns a new handle
// sharing the same field cells (aliasing every field); a deep clone
// copies each field's value into a fresh cell, recursing into nested
// Objects and Lists so the copy shares nothing mutable with the
// original. Deep-cloning an object that embeds a native-resource
// builtin object fails if that object's own Clone(true) does.
func (o *UserObject) Clone(deep bool) (value.Object, error) {
	newCells := make([]*value.Cell, len(o.cells))
	if !deep {
		copy(newCells, o.cells)
		return &UserObject{blueprint: o.blueprint, cells: newCells}, nil
	}
	for i, c := range o.cells {
		cloned, err := cloneValue(c.Get(), true)
		if err != nil {
			return nil, err
		}
		newCells[i] = value.NewCell(cloned)
	}
	return &UserObject{blueprint: o.blueprint, cells: newCells}, nil
}

// cloneValue deep-copies a value.Value, recursing through lists and
// delegating to Object.Clone for structure instances.
func cloneValue(v value.Value, deep bool) (value.Value, error) {
	switch v.Kind {
	case types.ListKind:
		if v.List == nil {
			return v, nil
		}
		cells := make([]*value.Cell, len(v.List.Cells))
		for i, c := range v.List.Cells {
			cloned, err := cloneValue(c.Get(), deep)
			if err != nil {
				return value.Value{}, err
			}
			cells[i] = value.NewCell(cloned)
		}
		return value.NewList(&value.ListValue{Element: v.List.Element, Fixed: v.List.Fixed, Cells: cells}), nil
	case types.ObjectKind:
		if v.Object == nil {
			return v, nil
		}
		cloned, err := v.Object.Clone(deep)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewObject(cloned), nil
	default:
		return v, nil
	}
}
