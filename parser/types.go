// ==============================================================================================
// FILE: parser/types.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Parses a type annotation: any, num, bool, string, list[T], or
//          a structure name.
// ==============================================================================================

package parser

import (
	"sloth/token"
	"sloth/types"
)

func (p *Parser) parseType() types.Type {
	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a type, got %s", p.cur().Kind)
		return types.Any
	}
	name := p.advance().Literal
	switch name {
	case "any":
		return types.Any
	case "num":
		return types.Number
	case "bool":
		return types.Boolean
	case "string":
		return types.String
	case "list":
		p.expect(token.LBRACKET)
		elem := p.parseType()
		p.expect(token.RBRACKET)
		return types.List(elem)
	default:
		return types.Object("", name)
	}
}
