package mustache

import (
	"fmt"

	"github.com/skyformat99/mustache/parser"
)

// ErrorKind describes the type of error.
type ErrorKind int

const (
	// ErrSyntax is a template compilation failure.
	ErrSyntax ErrorKind = iota

	// ErrTemplateNotFound is returned when a named template is neither
	// registered nor loadable.
	ErrTemplateNotFound

	// ErrPartialNotFound is returned when a {{>name}} tag references an
	// unknown template during rendering.
	ErrPartialNotFound

	// ErrStructure indicates section entry failed after a positive
	// repetition test. Resolution is pure, so this firing means the
	// document changed mid-render or the executor broke its index
	// contract; it aborts the render.
	ErrStructure

	// ErrTooDeep is returned when partial recursion exceeds the depth
	// limit.
	ErrTooDeep

	// ErrOutOfFuel is returned when a configured render budget is
	// exhausted.
	ErrOutOfFuel
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrTemplateNotFound:
		return "template not found"
	case ErrPartialNotFound:
		return "partial not found"
	case ErrStructure:
		return "structural error"
	case ErrTooDeep:
		return "recursion limit exceeded"
	case ErrOutOfFuel:
		return "out of fuel"
	default:
		return "error"
	}
}

// Error represents an error that occurred during template processing.
type Error struct {
	Kind    ErrorKind
	Message string
	Name    string // template name
	Line    int    // 1-based source line, 0 if unknown
}

func (e *Error) Error() string {
	if e.Name != "" && e.Line > 0 {
		return fmt.Sprintf("%s: %s (at %s line %d)", e.Kind, e.Message, e.Name, e.Line)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (at line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a new error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithName adds the template name to an error.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

// WithLine adds source line information to an error.
func (e *Error) WithLine(line int) *Error {
	e.Line = line
	return e
}

// wrapSyntaxError converts a parser failure into an *Error.
func wrapSyntaxError(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*parser.SyntaxError); ok {
		return NewError(ErrSyntax, se.Message).WithName(se.Name).WithLine(se.Line)
	}
	return err
}
