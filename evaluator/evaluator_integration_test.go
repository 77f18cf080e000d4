// ==============================================================================================
// FILE: evaluator/evaluator_integration_test.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: End-to-end scenarios exercising the full lex -> parse -> run
//          pipeline: a no-op main, a builtin import call, list length, a
//          recursive method using @return, struct field mutation, and
//          self-import rejection.
// ==============================================================================================

package evaluator

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloth/diag"
	"sloth/lexer"
	"sloth/parser"
	"sloth/program"
)

// run lexes, parses and runs source as the entry file "name", returning
// whatever it printed to stdout, main's numeric result, and parse or
// runtime errors.
func run(t *testing.T, name, source string) (string, int, []*diag.Error, *diag.Error) {
	t.Helper()
	lx := lexer.New(name, source)
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)

	prog := program.New(name, source)
	p := parser.New(ts, prog, name)
	if errs := p.ParseFile(); len(errs) > 0 {
		return "", 0, errs, nil
	}

	stdout, code, rerr := captureRun(prog)
	return stdout, code, nil, rerr
}

// runFile is like run but resolves relative "import" statements against
// path on disk, for the self-import scenario.
func runFile(t *testing.T, path string) (string, int, []*diag.Error, *diag.Error) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lx := lexer.New(path, string(data))
	ts, lexErrs := lx.Tokenize()
	require.Empty(t, lexErrs)

	prog := program.New(path, string(data))
	p := parser.New(ts, prog, path)
	if errs := p.ParseFile(); len(errs) > 0 {
		return "", 0, errs, nil
	}

	stdout, code, rerr := captureRun(prog)
	return stdout, code, nil, rerr
}

func captureRun(prog *program.Program) (string, int, *diag.Error) {
	r, w, _ := os.Pipe()
	saved := os.Stdout
	os.Stdout = w

	ev := New(prog)
	code, rerr := ev.Run(nil)

	w.Close()
	os.Stdout = saved

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), code, rerr
}

func TestNoOpMainExitsZeroAndPrintsNothing(t *testing.T) {
	out, code, perrs, rerr := run(t, "noop.slo", `
define main: -> num {
	return 0;
}
`)
	require.Empty(t, perrs)
	require.Nil(t, rerr)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestBuiltinIoPrintWritesToStdout(t *testing.T) {
	out, code, perrs, rerr := run(t, "print.slo", `
builtin io: print;
define main: -> num {
	io:print("hi");
	return 0;
}
`)
	require.Empty(t, perrs)
	require.Nil(t, rerr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi\n", out)
}

func TestListLengthOperator(t *testing.T) {
	out, code, perrs, rerr := run(t, "len.slo", `
builtin io: print;
define main: -> num {
	x = [1 2 3];
	io:print(#x);
	return 0;
}
`)
	require.Empty(t, perrs)
	require.Nil(t, rerr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "3\n", out)
}

func TestRecursiveFactorialViaReturn(t *testing.T) {
	out, code, perrs, rerr := run(t, "fact.slo", `
builtin io: print;

define fact for num: -> num {
	if == @self 0 {
		return 1;
	}
	return * @self (- @self 1).fact();
}

define main: -> num {
	io:print(5.fact());
	return 0;
}
`)
	require.Empty(t, perrs)
	require.Nil(t, rerr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "120\n", out)
}

func TestStructFieldMutationIsVisibleThroughSharedCell(t *testing.T) {
	out, code, perrs, rerr := run(t, "pair.slo", `
builtin io: print;

structure Pair { a: num; b: num; }

define main: -> num {
	p = new Pair(3 4);
	p.a = 10;
	io:print(+ p.a p.b);
	return 0;
}
`)
	require.Empty(t, perrs)
	require.Nil(t, rerr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "14\n", out)
}

func TestSelfImportIsRejectedAsImportError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "self.slo")
	source := `
import "self.slo";
define main: -> num {
	return 0;
}
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	_, _, perrs, _ := runFile(t, path)
	require.NotEmpty(t, perrs, "importing oneself must be reported as a parse-time error")

	var found bool
	for _, e := range perrs {
		if e.Kind == diag.ImportError {
			found = true
		}
	}
	assert.True(t, found, "the self-import must be reported with ImportError, got %v", perrs)
}

func TestMutualImportCycleIsRejectedAsImportError(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.slo")
	bPath := filepath.Join(dir, "b.slo")
	require.NoError(t, os.WriteFile(aPath, []byte(`
import "b.slo";
define main: -> num {
	return 0;
}
`), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(`
import "a.slo";
`), 0o644))

	_, _, perrs, _ := runFile(t, aPath)
	require.NotEmpty(t, perrs, "a cycle of imports must be reported as a parse-time error")

	var found bool
	for _, e := range perrs {
		if e.Kind == diag.ImportError {
			found = true
		}
	}
	assert.True(t, found, "the import cycle must be reported with ImportError, got %v", perrs)
}
