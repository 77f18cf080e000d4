// ==============================================================================================
// FILE: parser/import.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: "import \"relative/path\";" -- pulling another source file's
//          declarations into the same Program, with self-import and
//          cycle detection.
// ==============================================================================================

package parser

import (
	"os"
	"path/filepath"

	"sloth/diag"
	"sloth/lexer"
	"sloth/token"
)

// parseFileImport: "import \"relative/path\" [;]". The path is resolved
// relative to the directory of the file currently being parsed (which,
// mid-import, may itself be an already-imported file rather than the
// entry file). Re-importing a file already merged into the program is a
// silent no-op; importing a file that is still on the import stack (the
// file itself, or an ancestor further up a chain of imports) is an
// ImportError rather than infinite recursion.
func (p *Parser) parseFileImport() {
	pos := p.cur().Pos
	p.advance() // import

	if p.cur().Kind != token.STRING {
		p.errorf(p.cur().Pos, "expected a quoted file path after import")
		return
	}
	rawPath := p.advance().Literal
	p.optionalSemi("import")

	dir := filepath.Dir(p.path)
	abs, err := filepath.Abs(filepath.Join(dir, rawPath))
	if err != nil {
		p.errors = append(p.errors, diag.NewAt(diag.ImportError, pos, "cannot resolve import path %q: %s", rawPath, err))
		return
	}

	for _, onStack := range p.importStack {
		if onStack == abs {
			p.errors = append(p.errors, diag.NewAt(diag.ImportError, pos, "%q imports a file that is still importing it (self-import)", rawPath))
			return
		}
	}
	if p.importedFiles[abs] {
		return
	}

	data, rerr := os.ReadFile(abs)
	if rerr != nil {
		p.errors = append(p.errors, diag.NewAt(diag.FileError, pos, "importing %q: %s", rawPath, rerr))
		return
	}

	lx := lexer.New(abs, string(data))
	ts, lexErrs := lx.Tokenize()
	for _, e := range lexErrs {
		p.errors = append(p.errors, e)
	}

	// Swap in the imported file's token stream and path, parse its
	// top-level declarations straight into the same Program, then
	// restore this parser's own position so the importer's file resumes
	// exactly where it left off.
	savedTS, savedPath := p.ts, p.path
	p.ts, p.path = ts, abs
	p.importStack = append(p.importStack, abs)
	p.importedFiles[abs] = true

	for p.cur().Kind != token.EOF {
		p.parseTopLevel()
	}

	p.importStack = p.importStack[:len(p.importStack)-1]
	p.ts, p.path = savedTS, savedPath
}
