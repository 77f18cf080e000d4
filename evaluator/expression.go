// ==============================================================================================
// FILE: evaluator/expression.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Expression evaluation -- the Evaluate contract.
// ==============================================================================================

package evaluator

import (
	"sloth/ast"
	"sloth/builtin"
	"sloth/diag"
	"sloth/scope"
	"sloth/structure"
	"sloth/types"
	"sloth/value"
)

// Evaluate computes expr's value in sc. When asReference is true and
// expr denotes an addressable location (a variable, a field, or a list
// element), the returned cell IS that location's cell, so writes through
// it are visible to every other alias -- this is how by-reference
// function arguments and assignment targets are threaded through the
// same code path. When asReference is false, or expr is not addressable,
// the returned cell is a fresh one holding a copy of the computed value.
func (e *Evaluator) Evaluate(expr ast.Expression, sc *scope.Scope, asReference bool) (*value.Cell, *diag.Error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return value.NewCell(value.NewNumber(n.Value)), nil

	case *ast.BooleanLiteral:
		return value.NewCell(value.NewBoolean(n.Value)), nil

	case *ast.StringLiteral:
		return value.NewCell(value.NewString(n.Value)), nil

	case *ast.ListLiteral:
		return e.evalListLiteral(n, sc)

	case *ast.VariableAccess:
		cell, ok := sc.Lookup(n.Name)
		if !ok {
			var serr *diag.Error
			cell, serr = e.resolveStatic(n.Name)
			if serr != nil {
				return nil, serr.ClogPos(n.Pos())
			}
			if cell == nil {
				return nil, diag.NewAt(diag.RuntimeError, n.Pos(), "undefined variable %q", n.Name)
			}
		}
		if asReference {
			return cell, nil
		}
		return value.NewCell(cell.Get()), nil

	case *ast.FieldAccess:
		return e.evalFieldAccess(n, sc, asReference)

	case *ast.BracketAccess:
		return e.evalBracketAccess(n, sc, asReference)

	case *ast.UnaryOperation:
		return e.evalUnary(n, sc)

	case *ast.BinaryOperation:
		return e.evalBinary(n, sc)

	case *ast.FunctionCall:
		return e.evalFunctionCall(n, sc)

	case *ast.ObjectInstantiation:
		return e.evalObjectInstantiation(n, sc)

	default:
		return nil, diag.NewAt(diag.UnexpectedExpression, expr.Pos(), "unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral, sc *scope.Scope) (*value.Cell, *diag.Error) {
	cells := make([]*value.Cell, len(n.Elements))
	var elemType types.Type
	fixed := false
	for i, elExpr := range n.Elements {
		c, err := e.Evaluate(elExpr, sc, false)
		if err != nil {
			return nil, err
		}
		v := c.Get()
		if !fixed {
			elemType = v.Type()
			fixed = true
		} else if !elemType.Equals(v.Type()) {
			return nil, diag.NewAt(diag.TypeError, elExpr.Pos(),
				"list elements must share one type: expected %s, got %s", elemType, v.Type())
		}
		cells[i] = value.NewCell(v)
	}
	return value.NewCell(value.NewList(&value.ListValue{Element: elemType, Fixed: fixed, Cells: cells})), nil
}

func (e *Evaluator) evalFieldAccess(n *ast.FieldAccess, sc *scope.Scope, asReference bool) (*value.Cell, *diag.Error) {
	objCell, err := e.Evaluate(n.Object, sc, false)
	if err != nil {
		return nil, err
	}
	objVal := objCell.Get()
	if objVal.Kind != types.ObjectKind || objVal.Object == nil {
		return nil, diag.NewAt(diag.TypeError, n.Pos(), "%s is not a structure instance", n.Object)
	}
	obj, ok := objVal.Object.(*structure.UserObject)
	if !ok {
		return nil, diag.NewAt(diag.TypeError, n.Pos(), "object has no field %q", n.Field)
	}
	cell, ok := obj.FieldCell(n.Field)
	if !ok {
		return nil, diag.NewAt(diag.DefinitionError, n.Pos(), "no field named %q", n.Field)
	}
	if asReference {
		return cell, nil
	}
	return value.NewCell(cell.Get()), nil
}

func (e *Evaluator) evalBracketAccess(n *ast.BracketAccess, sc *scope.Scope, asReference bool) (*value.Cell, *diag.Error) {
	listCell, err := e.Evaluate(n.List, sc, false)
	if err != nil {
		return nil, err
	}
	listVal := listCell.Get()
	if listVal.Kind != types.ListKind || listVal.List == nil {
		return nil, diag.NewAt(diag.TypeError, n.Pos(), "%s is not a list", n.List)
	}
	idxCell, err := e.Evaluate(n.Index, sc, false)
	if err != nil {
		return nil, err
	}
	idxVal := idxCell.Get()
	if idxVal.Kind != types.NumberKind {
		return nil, diag.NewAt(diag.TypeError, n.Pos(), "list index must be a number")
	}
	i := int(idxVal.Number)
	if i < 0 || i >= len(listVal.List.Cells) {
		return nil, diag.NewAt(diag.OperationError, n.Pos(), "index %d out of range (len %d)", i, len(listVal.List.Cells))
	}
	cell := listVal.List.Cells[i]
	if asReference {
		return cell, nil
	}
	return value.NewCell(cell.Get()), nil
}

func (e *Evaluator) evalObjectInstantiation(n *ast.ObjectInstantiation, sc *scope.Scope) (*value.Cell, *diag.Error) {
	module := ""
	if n.Module != nil {
		module = *n.Module
	}
	bp, ok := e.Program.GetStruct(module, n.Name)
	if !ok {
		return nil, diag.NewAt(diag.DefinitionError, n.Pos(), "no structure named %q", n.Name)
	}
	if builtin.IsInertBlueprint(bp) {
		return nil, builtin.WindowBuildError.ClogPos(n.Pos())
	}
	args := make([]value.Value, len(n.Args))
	for i, argExpr := range n.Args {
		c, err := e.Evaluate(argExpr, sc, false)
		if err != nil {
			return nil, err
		}
		args[i] = c.Get()
	}
	obj, berr := bp.Build(args)
	if berr != nil {
		return nil, berr.ClogPos(n.Pos())
	}
	return value.NewCell(value.NewObject(obj)), nil
}
