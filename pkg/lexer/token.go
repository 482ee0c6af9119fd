package lexer

import "fmt"

// Kind classifies a token.
type Kind string

const (
	KindPlus          Kind = "Plus"       // +
	KindMinus         Kind = "Minus"      // -
	KindStar          Kind = "Star"       // *
	KindSlash         Kind = "Slash"      // /
	KindGE            Kind = "GE"         // >=
	KindGT            Kind = "GT"         // >
	KindEQ            Kind = "EQ"         // ==
	KindLE            Kind = "LE"         // <=
	KindLT            Kind = "LT"         // <
	KindSemiColon     Kind = "SemiColon"  // ;
	KindLeftParen     Kind = "LeftParen"  // (
	KindRightParen    Kind = "RightParen" // )
	KindAssignment    Kind = "Assignment" // =
	KindIf            Kind = "If"
	KindElse          Kind = "Else"
	KindInt           Kind = "Int"
	KindIdentifier    Kind = "Identifier"
	KindIntLiteral    Kind = "IntLiteral"
	KindStringLiteral Kind = "StringLiteral"
)

// Token is a single lexeme. Line and Column are 1-based and point at the first
// character of Text.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
