// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser: top-level declarations (imports,
//          statics, structures, function definitions) plus the cursor
//          helpers every other parser file builds on.
// ==============================================================================================

package parser

import (
	"path/filepath"

	"sloth/ast"
	"sloth/builtin"
	"sloth/diag"
	"sloth/function"
	"sloth/lexer"
	"sloth/program"
	"sloth/structure"
	"sloth/token"
	"sloth/types"
)

// Parser walks a TokenStream and assembles a program.Program.
type Parser struct {
	ts   *lexer.TokenStream
	prog *program.Program
	path string // absolute path of the file currently being parsed

	errors   []*diag.Error
	warnings []*diag.Warning

	sawMain bool
	imports []builtin.Import

	// importStack holds the absolute path of every file currently being
	// parsed, outermost first -- a file appearing on it again is an
	// import cycle (spec.md's self-import case is the stack-depth-1
	// special case of this). importedFiles records every file that has
	// already been fully merged into prog, so re-importing the same file
	// from two different places is a no-op rather than a duplicate parse.
	importStack  []string
	importedFiles map[string]bool
}

// New builds a Parser over ts for the top-level entry file at path
// (used to resolve relative "import" statements and to detect
// self-import). REPL callers that have no backing file may pass "".
func New(ts *lexer.TokenStream, prog *program.Program, path string) *Parser {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Parser{
		ts:            ts,
		prog:          prog,
		path:          abs,
		importStack:   []string{abs},
		importedFiles: map[string]bool{abs: true},
	}
}

func (p *Parser) Errors() []*diag.Error     { return p.errors }
func (p *Parser) Warnings() []*diag.Warning { return p.warnings }

func (p *Parser) cur() token.Token       { return p.ts.Current() }
func (p *Parser) peek(n int) token.Token { return p.ts.Peek(n) }
// advance moves past the current token and returns it (the token just
// consumed, not the one now under the cursor).
func (p *Parser) advance() token.Token {
	tok := p.ts.Current()
	p.ts.Next()
	return tok
}

func (p *Parser) errorf(pos diag.Position, format string, a ...any) {
	p.errors = append(p.errors, diag.NewAt(diag.SyntaxError, pos, format, a...))
}

func (p *Parser) warnf(pos diag.Position, format string, a ...any) {
	p.warnings = append(p.warnings, diag.NewWarning(pos, format, a...))
}

// expect checks the current token's kind, advances past it, and records
// a SyntaxError (returning false) if it doesn't match.
func (p *Parser) expect(kind token.Kind) bool {
	if p.cur().Kind != kind {
		p.errorf(p.cur().Pos, "expected %s, got %s %q", kind, p.cur().Kind, p.cur().Literal)
		return false
	}
	p.advance()
	return true
}

// optionalSemi consumes a trailing ";" if present; its absence is only a
// warning, never fatal, matching the grammar's tolerance for missing
// terminators after import/static lines.
func (p *Parser) optionalSemi(context string) {
	if p.cur().Kind == token.SEMI {
		p.advance()
		return
	}
	p.warnf(p.cur().Pos, "missing semicolon after %s", context)
}

// ParseFile consumes the whole token stream, registering every
// declaration it finds onto the Program. It always runs to EOF,
// collecting as many errors as possible rather than aborting on the
// first one, and finally collapses every accumulated builtin import.
func (p *Parser) ParseFile() []*diag.Error {
	for p.cur().Kind != token.EOF {
		p.parseTopLevel()
	}
	if err := builtin.Collapse(p.imports, p.prog); err != nil {
		p.errors = append(p.errors, err)
	}
	if !p.sawMain {
		p.errors = append(p.errors, diag.New(diag.NoEntryPoint, "file defines no main function"))
	}
	return p.errors
}

// ParseReplStatement parses a single statement from the token stream
// without requiring the "builtin import / static / structure / define"
// top-level shape ParseFile enforces, for the REPL's line-at-a-time use.
func (p *Parser) ParseReplStatement() (ast.Statement, []*diag.Error) {
	st := p.parseStatement()
	return st, p.errors
}

func (p *Parser) parseTopLevel() {
	switch p.cur().Kind {
	case token.BUILTIN:
		p.parseBuiltinImport()
	case token.IMPORT:
		p.parseFileImport()
	case token.STATIC:
		p.parseStatic()
	case token.STRUCTURE:
		p.parseStructureDef()
	case token.DEFINE:
		p.parseFunctionDef()
	default:
		p.errorf(p.cur().Pos, "expected a top-level declaration (builtin import, static, structure or define), got %s", p.cur().Kind)
		p.advance()
	}
}

// parseBuiltinImport: "builtin <module> [: name ("," name)*] [;]"
func (p *Parser) parseBuiltinImport() {
	p.advance() // builtin
	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a module name after builtin")
		return
	}
	module := p.advance().Literal

	var names []string
	if p.cur().Kind == token.COLON {
		p.advance()
		for {
			if p.cur().Kind != token.IDENT {
				p.errorf(p.cur().Pos, "expected an imported name")
				break
			}
			names = append(names, p.advance().Literal)
			if p.cur().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.optionalSemi("builtin import")
	p.imports = append(p.imports, builtin.Import{Module: module, Names: names})
}

// parseStatic: "static NAME = expr [;]"
func (p *Parser) parseStatic() {
	p.advance() // static
	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a name after static")
		return
	}
	nameTok := p.advance()
	if nameTok.Literal != upper(nameTok.Literal) {
		p.warnf(nameTok.Pos, "static name %q is conventionally uppercase", nameTok.Literal)
	}
	if !p.expect(token.ASSIGN) {
		return
	}
	expr := p.parseExpression()
	p.optionalSemi("static declaration")
	p.prog.PushStaticExpr(nameTok.Literal, expr)
}

// parseStructureDef: "structure Name { name : type ; ... }"
func (p *Parser) parseStructureDef() {
	p.advance() // structure
	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a structure name")
		return
	}
	name := p.advance().Literal
	if !p.expect(token.LBRACE) {
		return
	}
	var fields []structure.FieldSpec
	for p.cur().Kind != token.RBRACE && p.cur().Kind != token.EOF {
		if p.cur().Kind != token.IDENT {
			p.errorf(p.cur().Pos, "expected a field name")
			p.advance()
			continue
		}
		fieldName := p.advance().Literal
		if !p.expect(token.COLON) {
			continue
		}
		t := p.parseType()
		fields = append(fields, structure.FieldSpec{Name: fieldName, Type: t})
		p.optionalSemi("field declaration")
	}
	p.expect(token.RBRACE)

	bp := &structure.UserBlueprint{Name: name, Fields: fields}
	if err := p.prog.PushStruct(bp); err != nil {
		p.errors = append(p.errors, err)
	}
}

// parseFunctionDef:
//
//	"define name [for OwnerType] : [~]ArgType... -> ReturnType { stmts }"
//
// Parameters carry no name of their own -- inside the body they're only
// reachable through the reserved positional names @0..@N-1 (and @self
// for a method's owner), bound at call time in evaluator/call.go.
func (p *Parser) parseFunctionDef() {
	defPos := p.cur().Pos
	p.advance() // define

	if p.cur().Kind != token.IDENT {
		p.errorf(p.cur().Pos, "expected a function name")
		return
	}
	name := p.advance().Literal

	var ownerType *types.Type
	if p.cur().Kind == token.FOR {
		p.advance()
		t := p.parseType()
		ownerType = &t
	}

	if !p.expect(token.COLON) {
		return
	}

	var argSpecs []function.ArgSpec
	for p.cur().Kind != token.ARROW && p.cur().Kind != token.EOF {
		byRef := false
		if p.cur().Kind == token.TILDE {
			byRef = true
			p.advance()
		}
		ptype := p.parseType()
		argSpecs = append(argSpecs, function.ArgSpec{Type: ptype, ByRef: byRef})
	}
	if !p.expect(token.ARROW) {
		return
	}
	output := p.parseType()

	if !p.expect(token.LBRACE) {
		return
	}
	body := p.parseStatements(token.RBRACE)
	p.expect(token.RBRACE)

	// A "main" found while parsing anything other than the entry file
	// (importStack[0], which is never popped) is skipped with a warning
	// rather than registered, per the grammar's "main found in a non-main file"
	// rule -- it would otherwise shadow or collide with the real entry
	// point depending on import order.
	if name == "main" && p.path != p.importStack[0] {
		p.warnf(defPos, "main defined in an imported file is ignored")
		return
	}

	if name == "main" {
		if p.sawMain {
			p.warnf(defPos, "redefinition of main")
		}
		p.sawMain = true
	}

	fn := &function.UserFunction{
		Sig: function.Signature{
			OwnerType: ownerType,
			Name:      name,
			Args:      argSpecs,
			Output:    &output,
		},
		Body: body,
	}
	if err := p.prog.PushFunction(fn); err != nil {
		p.errors = append(p.errors, err)
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// parseStatements parses statements until the stop token is seen.
func (p *Parser) parseStatements(stop token.Kind) []ast.Statement {
	var stmts []ast.Statement
	for p.cur().Kind != stop && p.cur().Kind != token.EOF {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}
