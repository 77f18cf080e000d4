// ==============================================================================================
// FILE: function/function_test.go
// ==============================================================================================
// PACKAGE: function
// PURPOSE: Resolution determinism: a Signature's Key is stable across
//          repeated calls, and Matches applies the Any-wildcard exactly
//          where the two-phase resolution algorithm expects it to.
// ==============================================================================================

package function

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sloth/types"
)

func sig(owner *types.Type, name string, args ...types.Type) Signature {
	specs := make([]ArgSpec, len(args))
	for i, a := range args {
		specs[i] = ArgSpec{Type: a}
	}
	return Signature{OwnerType: owner, Name: name, Args: specs}
}

func TestKeyIsStableAcrossRepeatedCalls(t *testing.T) {
	s := sig(nil, "fact", types.Number)
	k1 := s.Key()
	k2 := s.Key()
	k3 := s.Key()
	assert.Equal(t, k1, k2)
	assert.Equal(t, k2, k3)
}

func TestKeyDistinguishesOwnerAndModule(t *testing.T) {
	numType := types.Number
	plain := sig(nil, "area", types.Number)
	method := sig(&numType, "area", types.Number)
	assert.NotEqual(t, plain.Key(), method.Key())

	mathsMod := "maths"
	withModule := plain
	withModule.Module = &mathsMod
	assert.NotEqual(t, plain.Key(), withModule.Key())
}

func TestMatchesHonorsAnyWildcardOnParameter(t *testing.T) {
	s := sig(nil, "print", types.Any)
	assert.True(t, s.Matches(nil, nil, "print", []types.Type{types.Number}))
	assert.True(t, s.Matches(nil, nil, "print", []types.Type{types.String}))
}

func TestMatchesRejectsWrongArity(t *testing.T) {
	s := sig(nil, "add", types.Number, types.Number)
	assert.False(t, s.Matches(nil, nil, "add", []types.Type{types.Number}))
}

func TestMatchesRejectsWrongConcreteType(t *testing.T) {
	s := sig(nil, "add", types.Number, types.Number)
	assert.False(t, s.Matches(nil, nil, "add", []types.Type{types.Number, types.String}))
}

func TestMatchesOwnerAnyAcceptsAnyActualOwner(t *testing.T) {
	anyOwner := types.Any
	numType := types.Number
	s := Signature{OwnerType: &anyOwner, Name: "describe"}
	assert.True(t, s.Matches(&numType, nil, "describe", nil))
}

func TestMatchesDistinguishesModules(t *testing.T) {
	ioMod := "io"
	mathsMod := "maths"
	s := Signature{Module: &ioMod, Name: "print", Args: []ArgSpec{{Type: types.Any}}}
	assert.True(t, s.Matches(nil, &ioMod, "print", []types.Type{types.String}))
	assert.False(t, s.Matches(nil, &mathsMod, "print", []types.Type{types.String}))
}
