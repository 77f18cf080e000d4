// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The tree-walking evaluator: expression evaluation, statement
//          execution, and the CLI-facing Run entry point.
// ==============================================================================================

package evaluator

import (
	"sloth/ast"
	"sloth/diag"
	"sloth/program"
	"sloth/scope"
	"sloth/types"
	"sloth/value"
)

// Evaluator walks one Program's function bodies against a scope chain.
type Evaluator struct {
	Program *program.Program
}

func New(prog *program.Program) *Evaluator {
	return &Evaluator{Program: prog}
}

// Run resolves and calls "main" with the given CLI arguments converted
// to Language values, returning main's numeric return code.
func (e *Evaluator) Run(cliArgs []value.Value) (int, *diag.Error) {
	argTypes := make([]types.Type, len(cliArgs))
	for i, a := range cliArgs {
		argTypes[i] = a.Type()
	}
	fn, err := e.Program.GetFunction(nil, nil, "main", argTypes)
	if err != nil {
		return 1, diag.New(diag.NoEntryPoint, "no matching main function: %s", err.Message)
	}
	cell, cerr := e.callFunction(fn, nil, cliArgs, nil)
	if cerr != nil {
		return 1, cerr
	}
	v := cell.Get()
	if v.Kind != types.NumberKind {
		return 0, nil
	}
	return int(v.Number), nil
}

// control is the signal propagated up through statement execution when
// a Return statement fires, unwinding to the enclosing function call.
type control struct {
	returning bool
}

// ExecBlock runs a sequence of statements in sc, stopping early (with
// returning=true) the moment a Return statement executes.
func (e *Evaluator) ExecBlock(stmts []ast.Statement, sc *scope.Scope) (control, *diag.Error) {
	for _, st := range stmts {
		ctl, err := e.execStatement(st, sc)
		if err != nil {
			return control{}, err
		}
		if ctl.returning {
			return ctl, nil
		}
	}
	return control{}, nil
}

func (e *Evaluator) execStatement(st ast.Statement, sc *scope.Scope) (control, *diag.Error) {
	switch n := st.(type) {
	case *ast.Assignment:
		return control{}, e.execAssignment(n, sc)

	case *ast.ExpressionStatement:
		_, err := e.Evaluate(n.Expr, sc, false)
		return control{}, err

	case *ast.If:
		cond, err := e.Evaluate(n.Condition, sc, false)
		if err != nil {
			return control{}, err
		}
		if !isTruthy(cond.Get()) {
			if n.Else == nil {
				return control{}, nil
			}
			return e.ExecBlock(n.Else, scope.New(sc))
		}
		return e.ExecBlock(n.Then, scope.New(sc))

	case *ast.While:
		for {
			cond, err := e.Evaluate(n.Condition, sc, false)
			if err != nil {
				return control{}, err
			}
			if !isTruthy(cond.Get()) {
				return control{}, nil
			}
			ctl, err := e.ExecBlock(n.Body, scope.New(sc))
			if err != nil {
				return control{}, err
			}
			if ctl.returning {
				return ctl, nil
			}
		}

	case *ast.Return:
		var v value.Value
		if n.Value != nil {
			cell, err := e.Evaluate(n.Value, sc, false)
			if err != nil {
				return control{}, err
			}
			v = cell.Get()
		}
		// "@return" is pre-bound in the call scope (see callFunction) so a
		// return from inside a nested if/while block still writes through
		// to the cell the call itself reads back -- Rebind walks the
		// chain and mutates that shared cell rather than shadowing it
		// locally, where it would be lost once this block's scope drops.
		if !sc.Rebind("@return", v) {
			sc.Define("@return", value.NewCell(v))
		}
		return control{returning: true}, nil

	default:
		return control{}, diag.NewAt(diag.UnexpectedExpression, st.Pos(), "unhandled statement %T", st)
	}
}

// execAssignment evaluates the right-hand side, then either rebinds an
// existing cell (VariableAccess/FieldAccess/BracketAccess target) or, for
// a bare identifier not yet bound anywhere in the chain, defines a fresh
// one in the innermost scope.
func (e *Evaluator) execAssignment(n *ast.Assignment, sc *scope.Scope) *diag.Error {
	rhs, err := e.Evaluate(n.Value, sc, false)
	if err != nil {
		return err
	}
	v := rhs.Get()

	switch target := n.Target.(type) {
	case *ast.VariableAccess:
		if cell, ok := sc.Lookup(target.Name); ok {
			cell.Set(v)
			return nil
		}
		sc.Define(target.Name, value.NewCell(v))
		return nil

	case *ast.FieldAccess, *ast.BracketAccess:
		cell, err := e.Evaluate(target, sc, true)
		if err != nil {
			return err
		}
		cell.Set(v)
		return nil

	default:
		return diag.NewAt(diag.UnexpectedExpression, n.Pos(), "cannot assign to %T", n.Target)
	}
}

func isTruthy(v value.Value) bool {
	return v.Kind == types.BooleanKind && v.Boolean
}

// resolveStatic evaluates a "static" declaration's initializer the
// first time it is referenced, against the program's root scope, and
// caches the resulting cell for every later reference. Returns a nil
// cell (no error) if name doesn't name a static at all.
func (e *Evaluator) resolveStatic(name string) (*value.Cell, *diag.Error) {
	expr, ok := e.Program.StaticExpr(name)
	if !ok {
		return nil, nil
	}
	cell, err := e.Program.Static(name, func() (value.Value, *diag.Error) {
		c, err := e.Evaluate(expr, e.Program.Root, false)
		if err != nil {
			return value.Value{}, err
		}
		return c.Get(), nil
	})
	return cell, err
}
