// ==============================================================================================
// FILE: value/value.go
// ==============================================================================================
// PACKAGE: value
// PURPOSE: The runtime value representation and the shared-mutable Cell that
//          every variable, field, by-reference argument and @self binding
//          ultimately resolves to. Kept free of program/structure/function
//          imports so those packages can depend on value without a cycle.
// ==============================================================================================

package value

import (
	"fmt"
	"strings"

	"sloth/types"
)

// Value is a tagged union over the three scalar kinds plus List and Object.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind    types.Kind
	Number  float64
	Boolean bool
	String  string
	List    *ListValue
	Object  Object
}

// ListValue is the mutable backing array shared by every Cell that holds
// a reference to the same list. Cloning a Cell of ListKind never aliases
// this slice: cloning rules live in the structure package since only
// object cloning needs deep/shallow distinction at this layer's edge,
// but a list's element cells are independent Cells in their own right.
type ListValue struct {
	Element types.Type // zero Kind==0 (AnyKind) sentinel for "not yet fixed"
	Fixed   bool
	Cells   []*Cell
}

func NewNumber(n float64) Value  { return Value{Kind: types.NumberKind, Number: n} }
func NewBoolean(b bool) Value    { return Value{Kind: types.BooleanKind, Boolean: b} }
func NewString(s string) Value   { return Value{Kind: types.StringKind, String: s} }
func NewObject(o Object) Value   { return Value{Kind: types.ObjectKind, Object: o} }
func NewList(lv *ListValue) Value { return Value{Kind: types.ListKind, List: lv} }

// Type reports the concrete Type of this value. For an Object value the
// type carries the object's blueprint identity; for an empty list the
// element type is AnyKind until the list's first push fixes it.
func (v Value) Type() types.Type {
	switch v.Kind {
	case types.NumberKind:
		return types.Number
	case types.BooleanKind:
		return types.Boolean
	case types.StringKind:
		return types.String
	case types.ListKind:
		elem := types.Any
		if v.List != nil && v.List.Fixed {
			elem = v.List.Element
		}
		return types.List(elem)
	case types.ObjectKind:
		if v.Object == nil {
			return types.Object("", "")
		}
		return v.Object.Blueprint().Type()
	default:
		return types.Any
	}
}

// Display renders the value the way io:print and string conversion do.
func (v Value) Display() string {
	switch v.Kind {
	case types.NumberKind:
		return formatNumber(v.Number)
	case types.BooleanKind:
		if v.Boolean {
			return "true"
		}
		return "false"
	case types.StringKind:
		return v.String
	case types.ListKind:
		if v.List == nil {
			return "[]"
		}
		parts := make([]string, len(v.List.Cells))
		for i, c := range v.List.Cells {
			parts[i] = c.Get().Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.ObjectKind:
		if v.Object == nil {
			return "<nil>"
		}
		return v.Object.Display()
	default:
		return "<unknown>"
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

// Cell is the unit of aliasing in the Language: every variable binding,
// struct field, list element and by-reference argument is a pointer to a
// Cell, never a bare Value. Two names that refer to the same Cell observe
// each other's writes; that is the entire by-reference story.
type Cell struct {
	val    Value
	leased bool // transient: held while this cell is bound as a by-ref call argument
}

func NewCell(v Value) *Cell {
	return &Cell{val: v}
}

func (c *Cell) Get() Value {
	return c.val
}

func (c *Cell) Set(v Value) {
	c.val = v
}

// Lease marks the cell as bound for the duration of one call's
// by-reference arguments (including @self). It returns false if the
// cell was already leased, which signals the same cell would be bound
// twice in a single call -- the only concurrency hazard the single
// threaded evaluator has to detect (see evaluator.checkAliasing).
func (c *Cell) Lease() bool {
	if c.leased {
		return false
	}
	c.leased = true
	return true
}

func (c *Cell) Release() {
	c.leased = false
}

// Object is the capability interface every structure instance (user
// defined or builtin-native) implements. Kept minimal and interface-only
// here so the value package never needs to import structure.
type Object interface {
	Blueprint() Blueprint
	Display() string
	Clone(deep bool) (Object, error)
}

// Blueprint is the capability interface for a structure's type-level
// description: enough to build new instances and answer type queries.
type Blueprint interface {
	Type() types.Type
	FieldNames() []string
}
