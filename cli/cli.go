// ==============================================================================================
// FILE: cli/cli.go
// ==============================================================================================
// PACKAGE: cli
// PURPOSE: The CLI driver shared by root main.go and cmd/slo: thin wiring
//          over lexer/parser/builtin/evaluator. Carries none of the
//          interpreter's tested invariants -- it exists only so the core
//          packages are reachable end-to-end.
// ==============================================================================================

package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	cliapp "github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"

	"sloth/builtin"
	"sloth/diag"
	"sloth/evaluator"
	"sloth/function"
	"sloth/lexer"
	"sloth/parser"
	"sloth/program"
	"sloth/repl"
	"sloth/types"
	"sloth/value"
)

// Execute builds and runs the urfave/cli app against argv (normally
// os.Args), exiting the process directly -- the interpreter's exit code
// contract (spec.md §6) requires os.Exit rather than a returned error in
// the normal-run path.
func Execute(argv []string) {
	app := &cliapp.App{
		Name:      "slo",
		Usage:     "run a sloth source file",
		ArgsUsage: "<file> [args...]",
		Flags: []cliapp.Flag{
			&cliapp.BoolFlag{Name: "tokens", Usage: "print the token stream and exit"},
			&cliapp.BoolFlag{Name: "functions", Usage: "print the registered function table and exit"},
			&cliapp.BoolFlag{Name: "expr", Usage: "print the static expression table and exit"},
			&cliapp.BoolFlag{Name: "code", Usage: "print the exit code after a normal run"},
			&cliapp.BoolFlag{Name: "nowarn", Usage: "suppress warnings"},
			&cliapp.BoolFlag{Name: "nodefault", Usage: "skip automatic import of default builtins"},
		},
		Action: run,
	}

	if err := app.Run(argv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cliapp.Context) error {
	if c.NArg() < 1 {
		return repl.Start(os.Stdout)
	}
	filename := c.Args().Get(0)
	trailing := c.Args().Slice()[1:]

	data, err := os.ReadFile(filename)
	if err != nil {
		return cliapp.Exit(fmt.Sprintf("reading %s: %s", filename, errors.Wrap(err, "entry file")), 1)
	}
	source := string(data)

	lx := lexer.New(filename, source)
	ts, lexErrs := lx.Tokenize()
	if len(lexErrs) > 0 {
		renderErrors(lexErrs, source, c.Bool("nowarn"))
		os.Exit(1)
	}

	if c.Bool("tokens") {
		for _, t := range ts.Tokens {
			fmt.Printf("%-10s %q\t%s\n", t.Kind, t.Literal, t.Pos)
		}
		return nil
	}

	prog := program.New(filename, source)
	if !c.Bool("nodefault") {
		if derr := builtin.Collapse([]builtin.Import{{Module: "io"}}, prog); derr != nil {
			renderErrors([]*diag.Error{derr}, source, c.Bool("nowarn"))
			os.Exit(1)
		}
	}

	p := parser.New(ts, prog, filename)
	parseErrs := p.ParseFile()
	if !c.Bool("nowarn") {
		for _, w := range p.Warnings() {
			w.Render(os.Stderr, source, false)
		}
	}
	if len(parseErrs) > 0 {
		renderErrors(parseErrs, source, c.Bool("nowarn"))
		os.Exit(1)
	}

	if c.Bool("functions") {
		printFunctions(prog)
		return nil
	}
	if c.Bool("expr") {
		printExprs(prog)
		return nil
	}

	argVals, argErr := convertArgs(prog, trailing)
	if argErr != nil {
		renderErrors([]*diag.Error{argErr}, source, c.Bool("nowarn"))
		os.Exit(1)
	}

	ev := evaluator.New(prog)
	code, runErr := ev.Run(argVals)
	if runErr != nil {
		renderErrors([]*diag.Error{runErr}, source, c.Bool("nowarn"))
		os.Exit(1)
	}

	if c.Bool("code") {
		fmt.Printf("Exited with return code %d\n", code)
	}
	os.Exit(code)
	return nil
}

// convertArgs converts each trailing CLI argument to the type the
// declared "main" function's matching positional parameter expects,
// using cast rather than hand-rolled strconv branching. It finds main
// by name and arity directly rather than through GetFunction's
// Any-aware resolution, since the raw CLI strings carry no sloth type
// of their own yet.
func convertArgs(prog *program.Program, trailing []string) ([]value.Value, *diag.Error) {
	var sig *function.Signature
	for _, fn := range prog.Functions() {
		s := fn.Signature()
		if s.Name == "main" && s.OwnerType == nil && len(s.Args) == len(trailing) {
			sig = &s
			break
		}
	}

	out := make([]value.Value, len(trailing))
	for i, raw := range trailing {
		want := types.String
		if sig != nil {
			want = sig.Args[i].Type
		}
		v, err := convertOne(raw, want)
		if err != nil {
			return nil, diag.New(diag.InvalidArguments, "argument %d (%q): %s", i+1, raw, err)
		}
		out[i] = v
	}
	return out, nil
}

func convertOne(raw string, want types.Type) (value.Value, error) {
	switch want.Kind {
	case types.NumberKind:
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewNumber(n), nil
	case types.BooleanKind:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(b), nil
	default:
		return value.NewString(raw), nil
	}
}

func printFunctions(prog *program.Program) {
	tree := treeprint.New()
	tree.SetValue("functions")
	for _, fn := range prog.Functions() {
		tree.AddNode(fn.Signature().String())
	}
	fmt.Println(tree.String())
}

func printExprs(prog *program.Program) {
	tree := treeprint.New()
	tree.SetValue("static expressions")
	for _, name := range prog.StaticNames() {
		expr, _ := prog.StaticExpr(name)
		tree.AddNode(fmt.Sprintf("%s = %s", name, expr.String()))
	}
	fmt.Println(tree.String())
}

func renderErrors(errs []*diag.Error, source string, noColor bool) {
	for _, e := range errs {
		e.Render(os.Stderr, source, noColor)
	}
}
