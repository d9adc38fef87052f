package diagnostics

import (
	"fmt"
	"strings"

	"eel/interpreter-go/pkg/token"
)

// Kind classifies a diagnostic.
type Kind int

const (
	IllegalChar Kind = iota
	InvalidSyntax
	ExpectedChar
	RuntimeError
	DivisionByZero
	IllegalOperation
	UndefinedVariable
	ArityMismatch
	ImportError
	IndexOutOfBounds
	KeyNotFound
	ConversionError
)

func (k Kind) String() string {
	switch k {
	case IllegalChar:
		return "IllegalCharacter"
	case InvalidSyntax:
		return "InvalidSyntax"
	case ExpectedChar:
		return "ExpectedCharacter"
	case RuntimeError:
		return "RuntimeError"
	case DivisionByZero:
		return "DivisionByZero"
	case IllegalOperation:
		return "IllegalOperation"
	case UndefinedVariable:
		return "UndefinedVariable"
	case ArityMismatch:
		return "ArityMismatch"
	case ImportError:
		return "ImportError"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case KeyNotFound:
		return "KeyNotFound"
	case ConversionError:
		return "ConversionError"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Title is the heading printed in rendered diagnostics. Runtime subclasses
// share the "Runtime Error" heading; their details carry the specifics.
func (k Kind) Title() string {
	switch k {
	case IllegalChar:
		return "Illegal Character"
	case InvalidSyntax:
		return "Invalid Syntax"
	case ExpectedChar:
		return "Expected Char Error"
	case ConversionError:
		return "Conversion Error"
	default:
		return "Runtime Error"
	}
}

// IsRuntime reports whether the kind is raised during evaluation.
func (k Kind) IsRuntime() bool {
	return k >= RuntimeError
}

// Frame is one entry of the context chain walked for tracebacks.
type Frame interface {
	FrameName() string
	CallerFrame() Frame
	CallSite() token.Position
}

// Error is a located diagnostic.
type Error struct {
	Kind    Kind
	Details string
	Start   token.Position
	End     token.Position
	Frame   Frame
}

// New creates a diagnostic spanning start..end.
func New(kind Kind, details string, start, end token.Position) *Error {
	return &Error{Kind: kind, Details: details, Start: start, End: end}
}

// Runtime creates a runtime diagnostic raised inside frame.
func Runtime(kind Kind, details string, start, end token.Position, frame Frame) *Error {
	return &Error{Kind: kind, Details: details, Start: start, End: end, Frame: frame}
}

func (e *Error) Error() string {
	return e.Render()
}

// Render produces the stable diagnostic text.
func (e *Error) Render() string {
	if e.Frame != nil {
		var b strings.Builder
		b.WriteString(e.Traceback())
		fmt.Fprintf(&b, "%s: %s\n", e.Kind.Title(), e.Details)
		b.WriteString("\n")
		b.WriteString(Excerpt(e.Start, e.End))
		return b.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR: %s: %s", e.Kind.Title(), e.Details)
	fmt.Fprintf(&b, "\nFile: %s, line: %d", e.Start.File, e.Start.DisplayLine())
	b.WriteString("\n\n")
	b.WriteString(Excerpt(e.Start, e.End))
	return b.String()
}

// Traceback lists the frame chain, outermost first.
func (e *Error) Traceback() string {
	var lines []string
	pos := e.Start
	for frame := e.Frame; frame != nil; frame = frame.CallerFrame() {
		lines = append(lines, fmt.Sprintf("  File %s, line %d, in %s\n", pos.File, pos.DisplayLine(), frame.FrameName()))
		pos = frame.CallSite()
	}
	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		b.WriteString(lines[idx])
	}
	return b.String()
}

// Is matches diagnostics by kind so callers can use errors.Is with a
// template such as &Error{Kind: DivisionByZero}.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && (other.Details == "" || other.Details == e.Details)
}
