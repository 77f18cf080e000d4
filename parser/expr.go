// ==============================================================================================
// FILE: parser/expr.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Expression parsing: prefix operator forms, literals, calls,
//          instantiation, and the postfix field/bracket/method chain.
// ==============================================================================================

package parser

import (
	"strconv"

	"sloth/ast"
	"sloth/diag"
	"sloth/token"
)

var unaryOps = map[token.Kind]ast.Operation{
	token.OP_INVERSE: ast.Inverse,
	token.OP_LENGTH:  ast.Length,
}

var binaryOps = map[token.Kind]ast.Operation{
	token.OP_ADD: ast.Add,
	token.OP_SUB: ast.Sub,
	token.OP_MUL: ast.Mul,
	token.OP_DIV: ast.Div,
	token.OP_MOD: ast.Mod,
	token.OP_EQ:  ast.Eq,
	token.OP_GR:  ast.Gr,
	token.OP_LW:  ast.Lw,
	token.OP_GE:  ast.Ge,
	token.OP_LE:  ast.Le,
	token.OP_AND: ast.And,
	token.OP_OR:  ast.Or,
}

// parseExpression parses one full expression, including its postfix
// field/bracket/method chain.
func (p *Parser) parseExpression() ast.Expression {
	primary := p.parsePrimary()
	return p.parsePostfix(primary)
}

func (p *Parser) parsePrimary() ast.Expression {
	pos := p.cur().Pos

	if op, ok := binaryOps[p.cur().Kind]; ok {
		p.advance()
		left := p.parseExpression()
		right := p.parseExpression()
		n := &ast.BinaryOperation{Op: op, Left: left, Right: right}
		n.Position = pos.Until(right.Pos())
		return n
	}
	if op, ok := unaryOps[p.cur().Kind]; ok {
		p.advance()
		operand := p.parseExpression()
		n := &ast.UnaryOperation{Op: op, Operand: operand}
		n.Position = pos.Until(operand.Pos())
		return n
	}

	switch p.cur().Kind {
	case token.NUMBER:
		lit := p.advance().Literal
		v, _ := strconv.ParseFloat(lit, 64)
		n := &ast.NumberLiteral{Value: v}
		n.Position = pos
		return n

	case token.BOOLEAN:
		lit := p.advance().Literal
		n := &ast.BooleanLiteral{Value: lit == "true"}
		n.Position = pos
		return n

	case token.STRING:
		lit := p.advance().Literal
		n := &ast.StringLiteral{Value: lit}
		n.Position = pos
		return n

	case token.LBRACKET:
		return p.parseListLiteral()

	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return inner

	case token.NEW:
		return p.parseObjectInstantiation()

	case token.IDENT:
		return p.parseIdentExpr()

	default:
		p.errorf(pos, "unexpected token %s %q in expression", p.cur().Kind, p.cur().Literal)
		p.advance()
		n := &ast.NumberLiteral{Value: 0}
		n.Position = pos
		return n
	}
}

// parseListLiteral parses "[" expr* "]" -- elements are back-to-back
// with no separator, relying on every expression being self-delimiting.
func (p *Parser) parseListLiteral() ast.Expression {
	pos := p.cur().Pos
	p.advance() // [
	var elems []ast.Expression
	for p.cur().Kind != token.RBRACKET && p.cur().Kind != token.EOF {
		elems = append(elems, p.parseExpression())
	}
	endPos := p.cur().Pos
	p.expect(token.RBRACKET)
	n := &ast.ListLiteral{Elements: elems}
	n.Position = pos.Until(endPos)
	return n
}

// parseObjectInstantiation: "new [module :] Name ( args )"
func (p *Parser) parseObjectInstantiation() ast.Expression {
	pos := p.cur().Pos
	p.advance() // new
	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a structure name after new")
	}
	first := p.advance().Literal

	var module *string
	name := first
	if p.cur().Kind == token.COLON {
		p.advance()
		if p.cur().Kind != token.IDENT {
			p.errorf(p.cur().Pos, "expected a structure name after %s:", first)
		}
		m := first
		module = &m
		name = p.advance().Literal
	}

	args, endPos := p.parseArgList()
	n := &ast.ObjectInstantiation{Module: module, Name: name, Args: args}
	n.Position = pos.Until(endPos)
	return n
}

// parseIdentExpr handles a bare identifier, which may turn out to be a
// plain variable, a free function call, or a "module:name(...)" call.
func (p *Parser) parseIdentExpr() ast.Expression {
	pos := p.cur().Pos
	first := p.advance().Literal

	if p.cur().Kind == token.COLON && p.peek(1).Kind == token.IDENT {
		p.advance() // :
		name := p.advance().Literal
		module := first
		args, endPos := p.parseArgList()
		n := &ast.FunctionCall{Module: &module, Name: name, Args: args}
		n.Position = pos.Until(endPos)
		return n
	}

	if p.cur().Kind == token.LPAREN {
		args, endPos := p.parseArgList()
		n := &ast.FunctionCall{Name: first, Args: args}
		n.Position = pos.Until(endPos)
		return n
	}

	n := &ast.VariableAccess{Name: first}
	n.Position = pos
	return n
}

// parsePostfix chains ".name", ".name(args)" and "[index]" onto expr for
// as long as one keeps appearing.
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			if p.cur().Kind != token.IDENT {
				p.errorf(p.cur().Pos, "expected a field or method name after .")
				return expr
			}
			namePos := p.cur().Pos
			name := p.advance().Literal
			if p.cur().Kind == token.LPAREN {
				args, endPos := p.parseArgList()
				n := &ast.FunctionCall{Owner: expr, Name: name, Args: args}
				n.Position = expr.Pos().Until(endPos)
				expr = n
				continue
			}
			n := &ast.FieldAccess{Object: expr, Field: name}
			n.Position = expr.Pos().Until(namePos)
			expr = n

		case token.LBRACKET:
			p.advance()
			idx := p.parseExpression()
			endPos := p.cur().Pos
			p.expect(token.RBRACKET)
			n := &ast.BracketAccess{List: expr, Index: idx}
			n.Position = expr.Pos().Until(endPos)
			expr = n

		default:
			return expr
		}
	}
}

// parseArgList parses "(" expr* ")" -- arguments are back-to-back with
// no separator and carry no by-ref sigil of their own; whether one ends
// up bound by reference is decided purely by the resolved callee's
// declared signature (see evalFunctionCall). Returns the closing paren's
// position too, so the caller can widen its own node's span through it.
func (p *Parser) parseArgList() ([]ast.Expression, diag.Position) {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for p.cur().Kind != token.RPAREN && p.cur().Kind != token.EOF {
		args = append(args, p.parseExpression())
	}
	endPos := p.cur().Pos
	p.expect(token.RPAREN)
	return args, endPos
}
