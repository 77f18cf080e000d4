// ==============================================================================================
// FILE: function/function.go
// ==============================================================================================
// PACKAGE: function
// PURPOSE: Function signatures and the uniform Function trait both
//          user-defined and native (builtin) functions implement.
// ==============================================================================================

package function

import (
	"fmt"
	"strings"

	"sloth/ast"
	"sloth/types"
	"sloth/value"
)

// ArgSpec is one declared parameter: its type and whether it is taken
// by reference (declared with the "~" sigil).
type ArgSpec struct {
	Type  types.Type
	ByRef bool
}

// Signature identifies a function for resolution purposes: an optional
// owning structure type (for methods), an optional module (for builtin
// imports), a name, and its parameter/return types.
type Signature struct {
	OwnerType *types.Type
	Module    *string
	Name      string
	Args      []ArgSpec
	Output    *types.Type
}

// Key is the exact-match lookup key used as the fast path of resolution
// before falling back to the fuzzy, Any-aware linear scan.
func (s Signature) Key() string {
	var b strings.Builder
	if s.Module != nil {
		b.WriteString(*s.Module)
		b.WriteByte(':')
	}
	if s.OwnerType != nil {
		b.WriteString(s.OwnerType.String())
		b.WriteByte('.')
	}
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Type.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Matches reports whether a call with the given owner type (nil for a
// free function call), module, name and argument types could resolve
// to this signature, honoring the Any-matches-anything wildcard: a
// declared parameter typed Any accepts an argument of any concrete
// type, and a candidate declared to return/own Any likewise never
// rejects a call on that basis.
func (s Signature) Matches(owner *types.Type, module *string, name string, argTypes []types.Type) bool {
	if s.Name != name || len(s.Args) != len(argTypes) {
		return false
	}
	if !modulesMatch(s.Module, module) {
		return false
	}
	if !ownersMatch(s.OwnerType, owner) {
		return false
	}
	for i, spec := range s.Args {
		if spec.Type.Kind != types.AnyKind && !spec.Type.Equals(argTypes[i]) {
			return false
		}
	}
	return true
}

func modulesMatch(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ownersMatch(declared, actual *types.Type) bool {
	if declared == nil || actual == nil {
		return declared == actual
	}
	if declared.Kind == types.AnyKind {
		return true
	}
	return declared.Equals(*actual)
}

func (s Signature) String() string {
	owner := ""
	if s.OwnerType != nil {
		owner = s.OwnerType.String() + "."
	}
	return fmt.Sprintf("%s%s", owner, s.Key())
}

// Function is implemented by both a user-defined function body and a
// native (builtin) Go callback -- the evaluator dispatches on the
// concrete type via a type switch rather than this interface carrying a
// Call method, so it never needs to import the evaluator's own
// execution context type (which would otherwise cycle back through
// program).
type Function interface {
	Signature() Signature
}

// UserFunction is a function defined in the Language itself via
// "define name : ArgTypes... -> Output { ... }". Its parameters have no
// declared names -- the body reaches them only through the reserved
// positional names @0..@N-1 bound by the evaluator at call time.
type UserFunction struct {
	Sig  Signature
	Body []ast.Statement
}

func (f *UserFunction) Signature() Signature { return f.Sig }

// NativeFunction wraps a Go implementation of a builtin. Args are the
// already-resolved cells (by-value arguments are copies living in a
// fresh cell; by-reference arguments are the caller's own cell).
type NativeFunction struct {
	Sig  Signature
	Call func(args []*value.Cell) (value.Value, error)
}

func (f *NativeFunction) Signature() Signature { return f.Sig }
