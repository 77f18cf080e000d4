// ==============================================================================================
// FILE: types/types.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: The structural type language values and signatures are checked against.
// ==============================================================================================

package types

import "fmt"

// Kind is the closed set of type shapes the Language has.
type Kind int

const (
	AnyKind Kind = iota
	NumberKind
	BooleanKind
	StringKind
	ListKind
	ObjectKind
)

// Type is a structural type: a Kind plus, for List, the element type and
// for Object, the blueprint name. Two types are equal when their Kind and
// (if applicable) nested payload match; AnyKind matches everything only
// during signature resolution, not under Equals.
type Type struct {
	Kind    Kind
	Element *Type  // ListKind only
	Name    string // ObjectKind only: the structure/blueprint name
	Module  string // ObjectKind only: "" for user structures, module name for builtins
}

var (
	Any     = Type{Kind: AnyKind}
	Number  = Type{Kind: NumberKind}
	Boolean = Type{Kind: BooleanKind}
	String  = Type{Kind: StringKind}
)

func List(element Type) Type {
	e := element
	return Type{Kind: ListKind, Element: &e}
}

func Object(module, name string) Type {
	return Type{Kind: ObjectKind, Module: module, Name: name}
}

// Equals compares two concrete types structurally. It does not apply the
// Any-matches-anything rule: that rule only governs signature resolution
// (see function.Signature.Matches), not type equality itself.
func (t Type) Equals(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ListKind:
		if t.Element == nil || other.Element == nil {
			return t.Element == other.Element
		}
		return t.Element.Equals(*other.Element)
	case ObjectKind:
		return t.Module == other.Module && t.Name == other.Name
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case AnyKind:
		return "any"
	case NumberKind:
		return "num"
	case BooleanKind:
		return "bool"
	case StringKind:
		return "string"
	case ListKind:
		if t.Element == nil {
			return "list[any]"
		}
		return fmt.Sprintf("list[%s]", t.Element)
	case ObjectKind:
		return t.Name
	default:
		return "unknown"
	}
}

// Default returns the zero value's type for a declared field type: the
// type itself for every kind except List, where an empty list has no
// fixed element type until its first element is pushed (spec invariant:
// a non-empty list's element type equals every element's type).
func (t Type) Default() Type {
	if t.Kind == ListKind {
		return List(Any)
	}
	return t
}
