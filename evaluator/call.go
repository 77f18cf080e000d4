// ==============================================================================================
// FILE: evaluator/call.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Function call resolution, argument binding (by-value vs
//          by-reference), and the double-mutable-borrow aliasing check.
// ==============================================================================================

package evaluator

import (
	"strconv"

	"sloth/ast"
	"sloth/diag"
	"sloth/function"
	"sloth/scope"
	"sloth/types"
	"sloth/value"
)

func (e *Evaluator) evalFunctionCall(n *ast.FunctionCall, sc *scope.Scope) (*value.Cell, *diag.Error) {
	var ownerCell *value.Cell
	var ownerType *types.Type
	if n.Owner != nil {
		oc, err := e.Evaluate(n.Owner, sc, true)
		if err != nil {
			return nil, err
		}
		ownerCell = oc
		t := oc.Get().Type()
		ownerType = &t
	}

	argVals := make([]value.Value, len(n.Args))
	argTypes := make([]types.Type, len(n.Args))
	for i, argExpr := range n.Args {
		c, err := e.Evaluate(argExpr, sc, false)
		if err != nil {
			return nil, err
		}
		argVals[i] = c.Get()
		argTypes[i] = argVals[i].Type()
	}

	fn, ferr := e.Program.GetFunction(ownerType, n.Module, n.Name, argTypes)
	if ferr != nil {
		return nil, ferr.ClogPos(n.Pos())
	}

	// By-reference is purely a property of the callee's declared
	// signature (the "~" sigil only ever appears in a "define"), so a
	// by-ref parameter needs the caller's actual cell, not the copy
	// evaluated above for type resolution; re-evaluate just those
	// arguments as references. The call-site expression must be
	// addressable (a variable, field, or list element) in that position.
	sig := fn.Signature()
	boundArgs := make([]*value.Cell, len(n.Args))
	for i, argExpr := range n.Args {
		if i < len(sig.Args) && sig.Args[i].ByRef {
			cell, err := e.Evaluate(argExpr, sc, true)
			if err != nil {
				return nil, err
			}
			boundArgs[i] = cell
		} else {
			boundArgs[i] = value.NewCell(argVals[i])
		}
	}

	if err := checkAliasing(ownerCell, boundArgs, n.Pos()); err != nil {
		return nil, err
	}
	defer releaseLeases(ownerCell, boundArgs)

	return e.callFunction(fn, ownerCell, nil, boundArgs)
}

// checkAliasing detects the one concurrency hazard the single-threaded
// evaluator has to guard against: the same cell bound mutably (by-ref,
// or as @self) twice within one call, e.g. swap(~a, ~a). It leases every
// by-reference cell and fails if any lease is already held.
func checkAliasing(owner *value.Cell, boundArgs []*value.Cell, pos diag.Position) *diag.Error {
	var leased []*value.Cell
	fail := func() *diag.Error {
		for _, c := range leased {
			c.Release()
		}
		return diag.NewAt(diag.OperationError, pos, "the same value cannot be borrowed mutably twice in one call")
	}
	if owner != nil {
		if !owner.Lease() {
			return fail()
		}
		leased = append(leased, owner)
	}
	for _, c := range boundArgs {
		if c == nil {
			continue
		}
		if !c.Lease() {
			return fail()
		}
		leased = append(leased, c)
	}
	return nil
}

func releaseLeases(owner *value.Cell, boundArgs []*value.Cell) {
	if owner != nil {
		owner.Release()
	}
	for _, c := range boundArgs {
		if c != nil {
			c.Release()
		}
	}
}

// callFunction invokes fn with the already-bound argument cells. rawArgs
// is used only by Run's top-level call to main, which has no AST call
// site to bind cells from.
func (e *Evaluator) callFunction(fn function.Function, ownerCell *value.Cell, rawArgs []value.Value, boundArgs []*value.Cell) (*value.Cell, *diag.Error) {
	if boundArgs == nil {
		boundArgs = make([]*value.Cell, len(rawArgs))
		for i, v := range rawArgs {
			boundArgs[i] = value.NewCell(v)
		}
	}

	switch f := fn.(type) {
	case *function.NativeFunction:
		v, err := f.Call(boundArgs)
		if err != nil {
			if derr, ok := err.(*diag.Error); ok {
				return nil, derr
			}
			return nil, diag.New(diag.RuntimeError, "%s", err)
		}
		return value.NewCell(v), nil

	case *function.UserFunction:
		callScope := scope.New(e.Program.Root)
		callScope.Define("@return", value.NewCell(value.Value{}))
		if ownerCell != nil {
			callScope.Define("@self", ownerCell)
		}
		for i, spec := range f.Sig.Args {
			if i >= len(boundArgs) {
				continue
			}
			cell := boundArgs[i]
			if !spec.ByRef {
				cell = value.NewCell(boundArgs[i].Get())
			}
			callScope.Define(positionalName(i), cell)
		}
		ctl, err := e.ExecBlock(f.Body, callScope)
		if err != nil {
			return nil, err
		}
		if !ctl.returning {
			return value.NewCell(value.Value{}), nil
		}
		cell, _ := callScope.Lookup("@return")
		return cell, nil

	default:
		return nil, diag.New(diag.RuntimeError, "unknown function implementation %T", fn)
	}
}

func positionalName(i int) string {
	return "@" + strconv.Itoa(i)
}
