package parser

import (
	"errors"
	"fmt"

	"craft/interpreter-go/pkg/lexer"
)

// ErrMalformedInput is the kind shared by every parse failure.
var ErrMalformedInput = errors.New("malformed input")

// SourceLocation captures a source position for parser diagnostics. The zero
// value means the location is unknown.
type SourceLocation struct {
	Line   int
	Column int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
	// Token is the offending token text; empty at end of input.
	Token string
	// Cause is set when the failure originated in the lexer.
	Cause error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMalformedInput, e.Cause}
	}
	return []error{ErrMalformedInput}
}

// Describe formats the error with its location, for CLI output.
func (e *ParseError) Describe() string {
	switch {
	case e.Location.Line > 0 && e.Token != "":
		return fmt.Sprintf("line %d, column %d: %s (found %q)", e.Location.Line, e.Location.Column, e.Message, e.Token)
	case e.Location.Line > 0:
		return fmt.Sprintf("line %d, column %d: %s", e.Location.Line, e.Location.Column, e.Message)
	default:
		return e.Message
	}
}

// errorAt builds a ParseError anchored at the next unread token, or just past
// the last token at end of input.
func errorAt(tokens *lexer.Reader, message string) *ParseError {
	if tok, ok := tokens.Peek(); ok {
		return &ParseError{
			Message:  message,
			Location: SourceLocation{Line: tok.Line, Column: tok.Column},
			Token:    tok.Text,
		}
	}
	if last, ok := tokens.Last(); ok {
		return &ParseError{
			Message:  message,
			Location: SourceLocation{Line: last.Line, Column: last.Column + len([]rune(last.Text))},
		}
	}
	return &ParseError{Message: message}
}

func wrapLexError(err error) error {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &ParseError{
			Message:  fmt.Sprintf("unexpected character %q", lexErr.Char),
			Location: SourceLocation{Line: lexErr.Line, Column: lexErr.Column},
			Token:    string(lexErr.Char),
			Cause:    err,
		}
	}
	return err
}
