// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface.
//          It connects line-edited user input to the compiler pipeline
//          (Lexer -> Parser -> Evaluator) and keeps one Program/scope pair
//          alive for the whole session.
// ==============================================================================================

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/logrusorgru/aurora/v4"

	"sloth/ast"
	"sloth/builtin"
	"sloth/evaluator"
	"sloth/lexer"
	"sloth/parser"
	"sloth/program"
	"sloth/scope"
)

const logo = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ___ _       _   _                                 ┃
┃ / __| |___ _| |_| |_                               ┃
┃ \__ \ / _ (_-<  _| ' \                              ┃
┃ |___/_\___/__/\__|_||_|                             ┃
┃                                                     ┃
┃ the sloth language, interactive session             ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`

// Start launches an interactive session against a fresh Program, reading
// lines via readline (history + basic editing) and writing results to out.
func Start(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: aurora.Cyan(">> ").String(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	prog := program.New("<repl>", "")
	if derr := builtin.Collapse([]builtin.Import{{Module: "io"}}, prog); derr != nil {
		fmt.Fprintln(out, aurora.Red(derr.Error()))
	}
	ev := evaluator.New(prog)
	sc := scope.New(prog.Root)

	sessionID := uuid.New()
	fmt.Fprint(out, logo)
	fmt.Fprintf(out, "%s\n\n", aurora.Gray(12, fmt.Sprintf("session %s", sessionID)))
	printHelp(out)

	for {
		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt {
			continue
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if handleCommand(line, out) {
				return nil
			}
			continue
		}

		evalLine(ev, sc, prog, line, out)
	}
}

func handleCommand(line string, out io.Writer) (exit bool) {
	switch line {
	case ".exit":
		fmt.Fprintln(out, aurora.Yellow("goodbye"))
		return true
	case ".help":
		printHelp(out)
	default:
		fmt.Fprintf(out, "%s\n", aurora.Red(fmt.Sprintf("unknown command: %s (try .help)", line)))
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, aurora.Gray(12, "commands:"))
	fmt.Fprintln(out, "  .exit   quit the session")
	fmt.Fprintln(out, "  .help   show this message")
	fmt.Fprintln(out)
}

// evalLine lexes and parses one statement from line and runs it against
// the session's persistent scope, printing an expression statement's
// value (rather than silently discarding it, the way a source file would).
func evalLine(ev *evaluator.Evaluator, sc *scope.Scope, prog *program.Program, line string, out io.Writer) {
	lx := lexer.New("<repl>", line)
	ts, lexErrs := lx.Tokenize()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			e.Render(out, line, false)
		}
		return
	}

	p := parser.New(ts, prog, "<repl>")
	st, perrs := p.ParseReplStatement()
	if len(perrs) > 0 {
		for _, e := range perrs {
			e.Render(out, line, false)
		}
		return
	}
	for _, w := range p.Warnings() {
		w.Render(out, line, false)
	}

	if exprSt, ok := st.(*ast.ExpressionStatement); ok {
		cell, everr := ev.Evaluate(exprSt.Expr, sc, false)
		if everr != nil {
			everr.Render(out, line, false)
			return
		}
		fmt.Fprintln(out, aurora.Green(cell.Get().Display()))
		return
	}

	if _, everr := ev.ExecBlock([]ast.Statement{st}, sc); everr != nil {
		everr.Render(out, line, false)
	}
}
