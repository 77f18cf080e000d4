// ==============================================================================================
// FILE: parser/parser_integration_test.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Grammar shape (method "for", "list[T]", comma-free calls and
//          list literals, the corrected builtin-import syntax) and the
//          position round-trip invariant.
// ==============================================================================================

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloth/ast"
	"sloth/lexer"
	"sloth/program"
)

func TestPositionRoundTripOnBinaryOperation(t *testing.T) {
	lx := lexer.New("expr.slo", "+ 1 2")
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)
	prog := program.New("expr.slo", "+ 1 2")
	p := New(ts, prog, "expr.slo")

	st, errs := p.ParseReplStatement()
	require.Empty(t, errs)

	exprSt, ok := st.(*ast.ExpressionStatement)
	require.True(t, ok)

	pos := exprSt.Pos()
	require.NotNil(t, pos.LastCol, "a widened span always has a LastCol")
	assert.Equal(t, 0, pos.FirstCol, "span must start at the '+' token's column")
	assert.Greater(t, *pos.LastCol, pos.FirstCol, "span must end at the last operand's column, after the first")
}

func TestFunctionDefWithMethodOwnerAndListType(t *testing.T) {
	src := `
structure Pair { a: num; b: num; }

define sum for Pair: list[num] -> num {
	return @0;
}

define main: -> num {
	return 0;
}
`
	lx := lexer.New("m.slo", src)
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)
	prog := program.New("m.slo", src)
	p := New(ts, prog, "m.slo")
	errs := p.ParseFile()
	require.Empty(t, errs)

	var found bool
	for _, fn := range prog.Functions() {
		if fn.Signature().Name == "sum" {
			found = true
			require.Len(t, fn.Signature().Args, 1)
			assert.Equal(t, "list[num]", fn.Signature().Args[0].Type.String())
		}
	}
	assert.True(t, found, "method sum for Pair must be registered")
}

func TestCommaFreeCallsAndListLiterals(t *testing.T) {
	src := `
define main: -> num {
	x = [1 2 3];
	y = add(1 2);
	return 0;
}
define add: num num -> num {
	return + @0 @1;
}
`
	lx := lexer.New("c.slo", src)
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)
	prog := program.New("c.slo", src)
	p := New(ts, prog, "c.slo")
	errs := p.ParseFile()
	assert.Empty(t, errs)
}

func TestBuiltinImportGrammarHasNoImportKeyword(t *testing.T) {
	src := `
builtin io: print;
define main: -> num {
	io:print("hi");
	return 0;
}
`
	lx := lexer.New("b.slo", src)
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)
	prog := program.New("b.slo", src)
	p := New(ts, prog, "b.slo")
	errs := p.ParseFile()
	assert.Empty(t, errs)
}
