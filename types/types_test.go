// ==============================================================================================
// FILE: types/types_test.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: The list type law: an empty list's element type is Any, a
//          non-empty one's is the common element type, and equality is
//          structural rather than the Any-matches-anything signature rule.
// ==============================================================================================

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyListDefaultsToAnyElement(t *testing.T) {
	empty := List(Any)
	assert.Equal(t, AnyKind, empty.Element.Kind)
	assert.Equal(t, "list[any]", empty.String())
}

func TestListEqualsComparesElementTypeStructurally(t *testing.T) {
	nums := List(Number)
	strs := List(String)
	assert.True(t, nums.Equals(List(Number)))
	assert.False(t, nums.Equals(strs))
}

func TestEqualsDoesNotApplyAnyWildcard(t *testing.T) {
	// Equals is a plain structural comparison: Any only matches
	// everything during signature resolution (function.Signature.Matches),
	// never here.
	assert.False(t, Any.Equals(Number))
	assert.False(t, Number.Equals(Any))
	assert.True(t, Any.Equals(Any))
}

func TestObjectEqualsComparesModuleAndName(t *testing.T) {
	a := Object("", "Pair")
	b := Object("", "Pair")
	c := Object("clock", "Instant")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestNestedListTypesCompareRecursively(t *testing.T) {
	a := List(List(Number))
	b := List(List(Number))
	c := List(List(String))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
