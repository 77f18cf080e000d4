// ==============================================================================================
// FILE: scope/scope_test.go
// ==============================================================================================
// PACKAGE: scope
// PURPOSE: The reference law: Rebind mutates a shared cell in place so
//          every alias observes the write, while Define always introduces
//          a fresh binding in the scope it's called on, shadowing instead
//          of aliasing.
// ==============================================================================================

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloth/value"
)

func TestLookupWalksOutwardNotInward(t *testing.T) {
	root := New(nil)
	root.Define("x", value.NewCell(value.NewNumber(1)))
	child := New(root)

	cell, ok := child.Lookup("x")
	require.True(t, ok, "a child scope must see its parent's bindings")
	assert.Equal(t, float64(1), cell.Get().Number)

	// but the parent must never see into the child -- this is the shape
	// of the @return bug: a name defined only in a nested block's scope
	// is invisible to the call scope that created it.
	child.Define("y", value.NewCell(value.NewNumber(2)))
	_, ok = root.Lookup("y")
	assert.False(t, ok, "a parent scope must not see a child's bindings")
}

func TestRebindMutatesSharedCellAcrossAliases(t *testing.T) {
	root := New(nil)
	cell := value.NewCell(value.NewNumber(0))
	root.Define("@return", cell)

	child := New(root)
	ok := child.Rebind("@return", value.NewNumber(120))
	require.True(t, ok)

	// the cell root defined is the very cell that was mutated -- no new
	// binding was introduced anywhere in the chain.
	assert.Equal(t, float64(120), cell.Get().Number)
	rootCell, _ := root.Lookup("@return")
	assert.Same(t, cell, rootCell)
}

func TestRebindReturnsFalseWhenUnbound(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Rebind("missing", value.NewNumber(1)))
}

func TestDefineShadowsRatherThanAliases(t *testing.T) {
	root := New(nil)
	root.Define("x", value.NewCell(value.NewNumber(1)))
	child := New(root)
	child.Define("x", value.NewCell(value.NewNumber(2)))

	childCell, _ := child.Lookup("x")
	rootCell, _ := root.Lookup("x")
	assert.Equal(t, float64(2), childCell.Get().Number)
	assert.Equal(t, float64(1), rootCell.Get().Number)
	assert.NotSame(t, childCell, rootCell)
}

func TestValueTypeAssignmentCopiesNotAliases(t *testing.T) {
	// a = b; for value types (Number, Boolean, String) must copy the
	// value into a's own cell, never share b's cell.
	s := New(nil)
	b := value.NewCell(value.NewNumber(3))
	s.Define("b", b)

	a := value.NewCell(b.Get())
	s.Define("a", a)

	b.Set(value.NewNumber(99))
	aCell, _ := s.Lookup("a")
	assert.Equal(t, float64(3), aCell.Get().Number, "a must not see b's later mutation")
}
