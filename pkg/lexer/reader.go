package lexer

import (
	"fmt"
	"io"
)

// Reader is a repositionable cursor over a token sequence. Parsers save
// Position before a trial parse and restore it with SetPosition on failure.
type Reader struct {
	tokens []Token
	pos    int
}

// NewReader wraps tokens; the reader does not copy the slice.
func NewReader(tokens []Token) *Reader {
	return &Reader{tokens: tokens}
}

// Read returns the next token and advances. ok is false at end of input.
func (r *Reader) Read() (Token, bool) {
	if r.pos >= len(r.tokens) {
		return Token{}, false
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok, true
}

// Peek returns the next token without advancing.
func (r *Reader) Peek() (Token, bool) {
	if r.pos >= len(r.tokens) {
		return Token{}, false
	}
	return r.tokens[r.pos], true
}

// Unread steps back one token. It saturates at the start of input.
func (r *Reader) Unread() {
	if r.pos > 0 {
		r.pos--
	}
}

// Position returns the index of the next unread token.
func (r *Reader) Position() int {
	return r.pos
}

// SetPosition moves the cursor to pos. Out-of-range positions are ignored.
func (r *Reader) SetPosition(pos int) {
	if pos >= 0 && pos <= len(r.tokens) {
		r.pos = pos
	}
}

// Len returns the total number of tokens.
func (r *Reader) Len() int {
	return len(r.tokens)
}

// Last returns the final token, used to place end-of-input diagnostics.
func (r *Reader) Last() (Token, bool) {
	if len(r.tokens) == 0 {
		return Token{}, false
	}
	return r.tokens[len(r.tokens)-1], true
}

// Dump writes a text/type listing of tokens.
func Dump(w io.Writer, tokens []Token) {
	fmt.Fprintln(w, "text\ttype")
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s\t\t%s\n", tok.Text, tok.Kind)
	}
}
