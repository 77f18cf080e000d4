// ==============================================================================================
// FILE: evaluator/operators.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The operator dispatch table: every (Operation, operand type)
//          overload the evaluator understands.
// ==============================================================================================

package evaluator

import (
	"sloth/ast"
	"sloth/diag"
	"sloth/scope"
	"sloth/structure"
	"sloth/types"
	"sloth/value"
)

func (e *Evaluator) evalUnary(n *ast.UnaryOperation, sc *scope.Scope) (*value.Cell, *diag.Error) {
	operand, err := e.Evaluate(n.Operand, sc, false)
	if err != nil {
		return nil, err
	}
	v := operand.Get()

	switch n.Op {
	case ast.Inverse:
		if v.Kind != types.BooleanKind {
			return nil, diag.NewAt(diag.TypeError, n.Pos(), "! requires a bool operand, got %s", v.Type())
		}
		return value.NewCell(value.NewBoolean(!v.Boolean)), nil

	case ast.Length:
		switch v.Kind {
		case types.StringKind:
			return value.NewCell(value.NewNumber(float64(len(v.String)))), nil
		case types.ListKind:
			n := 0
			if v.List != nil {
				n = len(v.List.Cells)
			}
			return value.NewCell(value.NewNumber(float64(n))), nil
		default:
			return nil, diag.NewAt(diag.TypeError, n.Pos(), "# requires a string or list operand, got %s", v.Type())
		}

	default:
		return nil, diag.NewAt(diag.UnexpectedExpression, n.Pos(), "%s is not a unary operator", n.Op)
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryOperation, sc *scope.Scope) (*value.Cell, *diag.Error) {
	lc, err := e.Evaluate(n.Left, sc, false)
	if err != nil {
		return nil, err
	}
	rc, err := e.Evaluate(n.Right, sc, false)
	if err != nil {
		return nil, err
	}
	l, r := lc.Get(), rc.Get()

	switch n.Op {
	case ast.Add:
		return applyAdd(l, r, n.Pos())
	case ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return applyArith(n.Op, l, r, n.Pos())
	case ast.Eq:
		return value.NewCell(value.NewBoolean(structuralEquals(l, r))), nil
	case ast.Gr, ast.Lw, ast.Ge, ast.Le:
		return applyCompare(n.Op, l, r, n.Pos())
	case ast.And, ast.Or:
		return applyBoolean(n.Op, l, r, n.Pos())
	default:
		return nil, diag.NewAt(diag.UnexpectedExpression, n.Pos(), "%s is not a binary operator", n.Op)
	}
}

// applyAdd implements the Add overload table: numeric addition, string
// concatenation, string-with-scalar stringification on either side, and
// the three list overloads (append, push, prepend).
func applyAdd(l, r value.Value, pos diag.Position) (*value.Cell, *diag.Error) {
	switch {
	case l.Kind == types.NumberKind && r.Kind == types.NumberKind:
		return value.NewCell(value.NewNumber(l.Number + r.Number)), nil

	case l.Kind == types.StringKind && r.Kind == types.StringKind:
		return value.NewCell(value.NewString(l.String + r.String)), nil
	case l.Kind == types.StringKind && (r.Kind == types.NumberKind || r.Kind == types.BooleanKind):
		return value.NewCell(value.NewString(l.String + r.Display())), nil
	case (l.Kind == types.NumberKind || l.Kind == types.BooleanKind) && r.Kind == types.StringKind:
		return value.NewCell(value.NewString(l.Display() + r.String)), nil

	case l.Kind == types.ListKind && r.Kind == types.ListKind:
		return addLists(l, r, pos)
	case l.Kind == types.ListKind:
		return pushList(l, r, pos, true)
	case r.Kind == types.ListKind:
		return pushList(r, l, pos, false)

	default:
		return nil, diag.NewAt(diag.TypeError, pos, "+ does not support %s and %s", l.Type(), r.Type())
	}
}

func addLists(l, r value.Value, pos diag.Position) (*value.Cell, *diag.Error) {
	if l.List != nil && r.List != nil && l.List.Fixed && r.List.Fixed && !l.List.Element.Equals(r.List.Element) {
		return nil, diag.NewAt(diag.TypeError, pos, "cannot append list[%s] to list[%s]", r.List.Element, l.List.Element)
	}
	cells := append(append([]*value.Cell{}, l.List.Cells...), r.List.Cells...)
	elem, fixed := l.List.Element, l.List.Fixed
	if !fixed {
		elem, fixed = r.List.Element, r.List.Fixed
	}
	return value.NewCell(value.NewList(&value.ListValue{Element: elem, Fixed: fixed, Cells: cells})), nil
}

func pushList(list, elem value.Value, pos diag.Position, append_ bool) (*value.Cell, *diag.Error) {
	if list.List != nil && list.List.Fixed && len(list.List.Cells) > 0 && !list.List.Element.Equals(elem.Type()) {
		return nil, diag.NewAt(diag.TypeError, pos, "cannot add %s to a list[%s]", elem.Type(), list.List.Element)
	}
	var cells []*value.Cell
	if append_ {
		cells = append(append([]*value.Cell{}, list.List.Cells...), value.NewCell(elem))
	} else {
		cells = append([]*value.Cell{value.NewCell(elem)}, list.List.Cells...)
	}
	return value.NewCell(value.NewList(&value.ListValue{Element: elem.Type(), Fixed: true, Cells: cells})), nil
}

func applyArith(op ast.Operation, l, r value.Value, pos diag.Position) (*value.Cell, *diag.Error) {
	if l.Kind != types.NumberKind || r.Kind != types.NumberKind {
		return nil, diag.NewAt(diag.TypeError, pos, "%s requires two numbers, got %s and %s", op, l.Type(), r.Type())
	}
	switch op {
	case ast.Sub:
		return value.NewCell(value.NewNumber(l.Number - r.Number)), nil
	case ast.Mul:
		return value.NewCell(value.NewNumber(l.Number * r.Number)), nil
	case ast.Div:
		if r.Number == 0 {
			return nil, diag.NewAt(diag.OperationError, pos, "division by zero")
		}
		return value.NewCell(value.NewNumber(l.Number / r.Number)), nil
	case ast.Mod:
		if r.Number == 0 {
			return nil, diag.NewAt(diag.OperationError, pos, "modulo by zero")
		}
		return value.NewCell(value.NewNumber(float64(int64(l.Number) % int64(r.Number)))), nil
	default:
		return nil, diag.NewAt(diag.UnexpectedExpression, pos, "%s is not arithmetic", op)
	}
}

func applyCompare(op ast.Operation, l, r value.Value, pos diag.Position) (*value.Cell, *diag.Error) {
	if l.Kind != types.NumberKind || r.Kind != types.NumberKind {
		return nil, diag.NewAt(diag.TypeError, pos, "%s requires two numbers, got %s and %s", op, l.Type(), r.Type())
	}
	var b bool
	switch op {
	case ast.Gr:
		b = l.Number > r.Number
	case ast.Lw:
		b = l.Number < r.Number
	case ast.Ge:
		b = l.Number >= r.Number
	case ast.Le:
		b = l.Number <= r.Number
	}
	return value.NewCell(value.NewBoolean(b)), nil
}

func applyBoolean(op ast.Operation, l, r value.Value, pos diag.Position) (*value.Cell, *diag.Error) {
	if l.Kind != types.BooleanKind || r.Kind != types.BooleanKind {
		return nil, diag.NewAt(diag.TypeError, pos, "%s requires two bools, got %s and %s", op, l.Type(), r.Type())
	}
	var b bool
	switch op {
	case ast.And:
		b = l.Boolean && r.Boolean
	case ast.Or:
		b = l.Boolean || r.Boolean
	}
	return value.NewCell(value.NewBoolean(b)), nil
}

// structuralEquals compares two values per Eq's contract: scalars by
// value, lists element-wise, and structure instances (user-declared or
// a builtin resource reusing the same shape) field-by-field -- two
// distinct instances with equal fields are equal. Any future Object
// implementation that isn't a *structure.UserObject falls back to
// interface identity.
func structuralEquals(l, r value.Value) bool {
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case types.NumberKind:
		return l.Number == r.Number
	case types.BooleanKind:
		return l.Boolean == r.Boolean
	case types.StringKind:
		return l.String == r.String
	case types.ListKind:
		if l.List == nil || r.List == nil {
			return l.List == r.List
		}
		if len(l.List.Cells) != len(r.List.Cells) {
			return false
		}
		for i := range l.List.Cells {
			if !structuralEquals(l.List.Cells[i].Get(), r.List.Cells[i].Get()) {
				return false
			}
		}
		return true
	case types.ObjectKind:
		if l.Object == nil || r.Object == nil {
			return l.Object == r.Object
		}
		lu, lok := l.Object.(*structure.UserObject)
		ru, rok := r.Object.(*structure.UserObject)
		if !lok || !rok {
			return l.Object == r.Object
		}
		if !lu.Blueprint().Type().Equals(ru.Blueprint().Type()) {
			return false
		}
		for _, name := range lu.Blueprint().FieldNames() {
			lc, _ := lu.FieldCell(name)
			rc, ok := ru.FieldCell(name)
			if !ok || !structuralEquals(lc.Get(), rc.Get()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
