// ==============================================================================================
// FILE: builtin/catalog_test.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: Builtin import idempotence: collapsing a list of imports that
//          contains duplicates yields the same (functions, blueprints)
//          pair as collapsing the deduplicated list.
// ==============================================================================================

package builtin

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloth/program"
)

func functionKeys(p *program.Program) []string {
	var keys []string
	for _, f := range p.Functions() {
		keys = append(keys, f.Signature().Key())
	}
	sort.Strings(keys)
	return keys
}

func TestCollapseIsIdempotentUnderDuplicateImports(t *testing.T) {
	withDupes := program.New("a.slo", "")
	err := Collapse([]Import{
		{Module: "io", Names: []string{"print"}},
		{Module: "io", Names: []string{"print"}},
		{Module: "maths", Names: []string{"sqrt"}},
	}, withDupes)
	require.Nil(t, err)

	deduped := program.New("b.slo", "")
	err = Collapse([]Import{
		{Module: "io", Names: []string{"print"}},
		{Module: "maths", Names: []string{"sqrt"}},
	}, deduped)
	require.Nil(t, err)

	assert.Equal(t, functionKeys(deduped), functionKeys(withDupes))
}

func TestCollapseWholeModuleRegistersFuncsAndStructs(t *testing.T) {
	prog := program.New("a.slo", "")
	err := Collapse([]Import{{Module: "clock"}}, prog)
	require.Nil(t, err)
	// the whole clock module (Funcs + Structs) must be registered when no
	// explicit name list narrows the import.
	assert.NotEmpty(t, functionKeys(prog))
	_, ok := prog.GetStruct("clock", "Instant")
	assert.True(t, ok)
}

func TestCollapseRejectsUnknownModule(t *testing.T) {
	prog := program.New("a.slo", "")
	err := Collapse([]Import{{Module: "nonexistent"}}, prog)
	require.NotNil(t, err)
	assert.Equal(t, "ImportError", err.Kind.String())
}

func TestCollapseRejectsUnknownMember(t *testing.T) {
	prog := program.New("a.slo", "")
	err := Collapse([]Import{{Module: "io", Names: []string{"doesNotExist"}}}, prog)
	require.NotNil(t, err)
	assert.Equal(t, "ImportError", err.Kind.String())
}
