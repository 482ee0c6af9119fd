package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrUnexpectedCharacter is reported by TokenizeStrict for characters that no
// token can start with.
var ErrUnexpectedCharacter = errors.New("unexpected character")

// Error describes a character rejected in strict mode.
type Error struct {
	Char   rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: line %d, column %d: unexpected character %q", e.Line, e.Column, e.Char)
}

func (e *Error) Unwrap() error {
	return ErrUnexpectedCharacter
}

type dfaState int

const (
	stateInitial dfaState = iota
	stateID
	stateIDInt1 // "i"
	stateIDInt2 // "in"
	stateIDInt3 // "int"
	stateIntLiteral
	stateGT
	stateGE
	stateLT
	stateLE
	stateAssignment
	stateEQ
	statePlus
	stateMinus
	stateStar
	stateSlash
	stateSemiColon
	stateLeftParen
	stateRightParen
)

// Tokenize splits source into tokens. Characters that cannot start a token are
// skipped; it never fails.
func Tokenize(source string) []Token {
	s := newScanner(nil)
	s.run(source)
	return s.tokens
}

// TokenizeStrict behaves like Tokenize but stops at the first character that
// cannot start a token.
func TokenizeStrict(source string) ([]Token, error) {
	var failure *Error
	s := newScanner(func(r rune, line, column int) {
		if failure == nil {
			failure = &Error{Char: r, Line: line, Column: column}
		}
	})
	s.run(source)
	if failure != nil {
		return nil, failure
	}
	return s.tokens, nil
}

type scanner struct {
	state   dfaState
	kind    Kind
	text    strings.Builder
	tokens  []Token
	unknown func(r rune, line, column int)

	line, column           int
	startLine, startColumn int
}

func newScanner(unknown func(r rune, line, column int)) *scanner {
	return &scanner{unknown: unknown, line: 1, column: 1}
}

func (s *scanner) run(source string) {
	for _, r := range source {
		s.step(r)
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
	}
	if s.state == stateIDInt3 {
		s.kind = KindInt
	}
	s.finish()
}

func (s *scanner) step(r rune) {
	switch s.state {
	case stateInitial:
		s.seed(r)
	case stateID:
		if isIdentPart(r) {
			s.text.WriteRune(r)
			return
		}
		s.seed(r)
	case stateIDInt1:
		s.advanceKeyword(r, 'n', stateIDInt2)
	case stateIDInt2:
		s.advanceKeyword(r, 't', stateIDInt3)
	case stateIDInt3:
		if isIdentPart(r) {
			s.text.WriteRune(r)
			s.state = stateID
			return
		}
		s.kind = KindInt
		s.seed(r)
	case stateIntLiteral:
		if isDigit(r) {
			s.text.WriteRune(r)
			return
		}
		s.seed(r)
	case stateGT:
		s.extendOperator(r, KindGE, stateGE)
	case stateLT:
		s.extendOperator(r, KindLE, stateLE)
	case stateAssignment:
		s.extendOperator(r, KindEQ, stateEQ)
	default:
		s.seed(r)
	}
}

// advanceKeyword keeps the "int" spelling alive while it still matches and
// otherwise degrades to a plain identifier.
func (s *scanner) advanceKeyword(r, want rune, next dfaState) {
	switch {
	case r == want:
		s.text.WriteRune(r)
		s.state = next
	case isIdentPart(r):
		s.text.WriteRune(r)
		s.state = stateID
	default:
		s.seed(r)
	}
}

func (s *scanner) extendOperator(r rune, kind Kind, next dfaState) {
	if r != '=' {
		s.seed(r)
		return
	}
	s.text.WriteRune(r)
	s.kind = kind
	s.state = next
}

// seed finalises the pending token and restarts the automaton from the
// initial state with r.
func (s *scanner) seed(r rune) {
	s.finish()
	s.startLine, s.startColumn = s.line, s.column

	switch {
	case isIdentStart(r):
		s.kind = KindIdentifier
		if r == 'i' {
			s.state = stateIDInt1
		} else {
			s.state = stateID
		}
	case isDigit(r):
		s.kind = KindIntLiteral
		s.state = stateIntLiteral
	case unicode.IsSpace(r):
		return
	default:
		state, kind, ok := operatorState(r)
		if !ok {
			if s.unknown != nil {
				s.unknown(r, s.line, s.column)
			}
			return
		}
		s.state, s.kind = state, kind
	}
	s.text.WriteRune(r)
}

func (s *scanner) finish() {
	if s.text.Len() > 0 {
		text := s.text.String()
		if s.kind == KindIdentifier {
			text = norm.NFC.String(text)
		}
		s.tokens = append(s.tokens, Token{
			Kind:   s.kind,
			Text:   text,
			Line:   s.startLine,
			Column: s.startColumn,
		})
		s.text.Reset()
	}
	s.state = stateInitial
	s.kind = ""
}

func operatorState(r rune) (dfaState, Kind, bool) {
	switch r {
	case '>':
		return stateGT, KindGT, true
	case '<':
		return stateLT, KindLT, true
	case '=':
		return stateAssignment, KindAssignment, true
	case '+':
		return statePlus, KindPlus, true
	case '-':
		return stateMinus, KindMinus, true
	case '*':
		return stateStar, KindStar, true
	case '/':
		return stateSlash, KindSlash, true
	case ';':
		return stateSemiColon, KindSemiColon, true
	case '(':
		return stateLeftParen, KindLeftParen, true
	case ')':
		return stateRightParen, KindRightParen, true
	default:
		return stateInitial, "", false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentPart admits combining marks so decomposed spellings stay in one
// identifier; finish folds them to NFC.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || unicode.IsMark(r)
}

// IsIdentifier reports whether name lexes as exactly one Identifier token.
func IsIdentifier(name string) bool {
	tokens := Tokenize(name)
	return len(tokens) == 1 && tokens[0].Kind == KindIdentifier && tokens[0].Text == norm.NFC.String(name)
}
