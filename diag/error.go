// ==============================================================================================
// FILE: diag/error.go
// ==============================================================================================
// PACKAGE: diag
// PURPOSE: The closed error-kind model used everywhere in the interpreter, plus
//          ANSI-colored rendering of an error against its source excerpt.
// ==============================================================================================

package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora/v4"
)

// Kind is the closed set of error categories the interpreter can raise.
// Nothing outside this package should invent a new kind.
type Kind int

const (
	SyntaxError Kind = iota
	UnexpectedEOF
	FileError
	ImportError
	DefinitionError
	NoEntryPoint
	InvalidArguments
	TypeError
	OperationError
	RuntimeError
	ReturnValueError
	UnexpectedExpression
	RustError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case FileError:
		return "FileError"
	case ImportError:
		return "ImportError"
	case DefinitionError:
		return "DefinitionError"
	case NoEntryPoint:
		return "NoEntryPoint"
	case InvalidArguments:
		return "InvalidArguments"
	case TypeError:
		return "TypeError"
	case OperationError:
		return "OperationError"
	case RuntimeError:
		return "RuntimeError"
	case ReturnValueError:
		return "ReturnValueError"
	case UnexpectedExpression:
		return "UnexpectedExpression"
	case RustError:
		return "RustError"
	default:
		return "UnknownError"
	}
}

// Error is the single error type that flows through the lexer, parser,
// program builder and evaluator. It satisfies the standard error
// interface so callers can use errors.As/errors.Is against it.
type Error struct {
	Kind    Kind
	Message string
	Pos     *Position
}

func New(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func NewAt(kind Kind, pos Position, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Pos: &pos}
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ClogPos attaches a position to the error only if it doesn't already
// carry one. Lets an inner call raise a precise position while an outer
// caller doesn't have to know whether that happened.
func (e *Error) ClogPos(pos Position) *Error {
	if e.Pos == nil {
		e.Pos = &pos
	}
	return e
}

// Warning is a non-aborting diagnostic: rendered the same way an Error
// is, but never stops execution.
type Warning struct {
	Message string
	Pos     *Position
}

func NewWarning(pos Position, format string, a ...any) *Warning {
	return &Warning{Message: fmt.Sprintf(format, a...), Pos: &pos}
}

// Render prints a diagnostic as "error: Kind: message", then (when a
// position is set) a "  --> file:line:col" line and the source excerpt
// with a caret underline. source is the full text of the file
// the position refers to, or "" if unavailable (stdin, builtin errors).
func (e *Error) Render(w io.Writer, source string, noColor bool) {
	renderDiag(w, "error", e.Kind.String(), e.Message, e.Pos, source, noColor, true)
}

func (wn *Warning) Render(w io.Writer, source string, noColor bool) {
	renderDiag(w, "warning", "", wn.Message, wn.Pos, source, noColor, false)
}

func renderDiag(w io.Writer, label, kind, message string, pos *Position, source string, noColor, isError bool) {
	paint := func(s string) string { return s }
	if !noColor {
		if isError {
			paint = func(s string) string { return aurora.Red(s).String() }
		} else {
			paint = func(s string) string { return aurora.Yellow(s).String() }
		}
	}

	header := label
	if kind != "" {
		header = fmt.Sprintf("%s: %s", label, kind)
	}
	if pos != nil {
		fmt.Fprintf(w, "%s: %s\n  --> %s\n", paint(header), message, pos)
	} else {
		fmt.Fprintf(w, "%s: %s\n", paint(header), message)
	}

	if pos == nil || source == "" {
		return
	}
	lines := strings.Split(source, "\n")
	if pos.Line-1 < 0 || pos.Line-1 >= len(lines) {
		return
	}
	line := lines[pos.Line-1]
	lastCol := pos.FirstCol
	if pos.LastCol != nil {
		lastCol = *pos.LastCol
	}
	gutter := fmt.Sprintf("%d", pos.Line)
	fmt.Fprintf(w, "%s | %s\n", gutter, line)
	underline := strings.Repeat(" ", pos.FirstCol) + strings.Repeat("^", max(1, lastCol-pos.FirstCol+1))
	fmt.Fprintf(w, "%s | %s\n", strings.Repeat(" ", len(gutter)), paint(underline))
}
