package interpreter

import (
	"errors"
	"fmt"

	"craft/interpreter-go/pkg/ast"
	"craft/interpreter-go/pkg/runtime"
)

var (
	// ErrUndefinedVariable is raised by assignment to a name that was never
	// declared, and by identifier lookup when strict identifiers are enabled.
	ErrUndefinedVariable = runtime.ErrUndefinedVariable
	ErrDivisionByZero    = errors.New("division by zero")
	// ErrInvalidLiteral means an integer literal does not fit the integer type.
	ErrInvalidLiteral = errors.New("invalid integer literal")
	// ErrMalformedTree is reported for trees the parser never produces, such as a
	// binary node without two operands.
	ErrMalformedTree = errors.New("malformed syntax tree")
)

// RuntimeError is a fatal evaluation failure. It unwraps to one of the Err*
// kinds above.
type RuntimeError struct {
	Kind     error
	Message  string
	Position ast.Position
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

// Describe formats the error with its location, for CLI output.
func (e *RuntimeError) Describe() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Position.Line, e.Position.Column, e.Message)
	}
	return e.Message
}

func runtimeError(kind error, node *ast.Node, format string, args ...any) *RuntimeError {
	err := &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if node != nil {
		err.Position = node.Pos()
	}
	return err
}

// Note is a recoverable diagnostic produced during evaluation.
type Note struct {
	Name     string
	Message  string
	Position ast.Position
}

func (n Note) String() string {
	return "note: " + n.Message
}
