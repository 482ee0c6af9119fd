package parser

import (
	"craft/interpreter-go/pkg/ast"
	"craft/interpreter-go/pkg/lexer"
)

// Options tunes parsing.
type Options struct {
	// StrictLexing turns characters that cannot start a token into parse
	// errors instead of silently dropping them.
	StrictLexing bool
}

// Parser builds Program trees with ordered trial-and-backtrack statement
// recognition:
//
//	Program             := (IntDeclaration | ExpressionStatement | AssignmentStatement)*
//	IntDeclaration      := 'int' Identifier ('=' Additive)? ';'
//	ExpressionStatement := Additive ';'
//	AssignmentStatement := Identifier '=' Additive ';'
//	Additive            := Multiplicative (('+'|'-') Multiplicative)*
//	Multiplicative      := Primary (('*'|'/') Primary)*
//	Primary             := IntLiteral | Identifier | '(' Additive ')'
type Parser struct {
	opts Options
}

func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse tokenizes source with default options and parses it.
func Parse(source string) (*ast.Node, error) {
	return New(Options{}).Parse(source)
}

// Parse tokenizes and parses source into a Program node.
func (p *Parser) Parse(source string) (*ast.Node, error) {
	var tokens []lexer.Token
	if p.opts.StrictLexing {
		var err error
		tokens, err = lexer.TokenizeStrict(source)
		if err != nil {
			return nil, wrapLexError(err)
		}
	} else {
		tokens = lexer.Tokenize(source)
	}
	return p.ParseTokens(tokens)
}

// ParseTokens parses an already tokenized program. Any statement error aborts
// the whole parse.
func (p *Parser) ParseTokens(tokens []lexer.Token) (*ast.Node, error) {
	return p.program(lexer.NewReader(tokens))
}

func (p *Parser) program(tokens *lexer.Reader) (*ast.Node, error) {
	root := ast.NewNodeAt(ast.NodeProgram, "", ast.Position{Line: 1, Column: 1})
	for {
		if _, ok := tokens.Peek(); !ok {
			return root, nil
		}
		stmt, err := p.statement(tokens)
		if err != nil {
			return nil, err
		}
		root.AddChild(stmt)
	}
}

// statement tries each statement form in order. A nil node with a nil error
// from a sub-rule means "does not apply" and the next form is tried.
func (p *Parser) statement(tokens *lexer.Reader) (*ast.Node, error) {
	stmt, err := p.intDeclaration(tokens)
	if err != nil || stmt != nil {
		return stmt, err
	}
	stmt, err = p.expressionStatement(tokens)
	if err != nil || stmt != nil {
		return stmt, err
	}
	stmt, err = p.assignmentStatement(tokens)
	if err != nil || stmt != nil {
		return stmt, err
	}
	return nil, errorAt(tokens, "unknown statement")
}

func (p *Parser) intDeclaration(tokens *lexer.Reader) (*ast.Node, error) {
	if !peekKind(tokens, lexer.KindInt) {
		return nil, nil
	}
	tokens.Read()

	if !peekKind(tokens, lexer.KindIdentifier) {
		return nil, errorAt(tokens, "variable name expected")
	}
	name, _ := tokens.Read()
	node := ast.NewNodeAt(ast.NodeIntDeclaration, name.Text, position(name))

	if peekKind(tokens, lexer.KindAssignment) {
		tokens.Read()
		init, err := p.additive(tokens)
		if err != nil {
			return nil, err
		}
		if init == nil {
			return nil, errorAt(tokens, "invalid variable initialization, expecting an expression")
		}
		node.AddChild(init)
	}

	if err := expectSemicolon(tokens); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) expressionStatement(tokens *lexer.Reader) (*ast.Node, error) {
	checkpoint := tokens.Position()
	start, _ := tokens.Peek()
	expr, err := p.additive(tokens)
	if err != nil {
		return nil, err
	}
	if expr != nil && peekKind(tokens, lexer.KindSemiColon) {
		tokens.Read()
		stmt := ast.NewNodeAt(ast.NodeExpressionStmt, "", position(start))
		stmt.AddChild(expr)
		return stmt, nil
	}
	tokens.SetPosition(checkpoint)
	return nil, nil
}

func (p *Parser) assignmentStatement(tokens *lexer.Reader) (*ast.Node, error) {
	if !peekKind(tokens, lexer.KindIdentifier) {
		return nil, nil
	}
	name, _ := tokens.Read()
	if !peekKind(tokens, lexer.KindAssignment) {
		tokens.Unread()
		return nil, nil
	}
	tokens.Read()

	node := ast.NewNodeAt(ast.NodeAssignmentStmt, name.Text, position(name))
	value, err := p.additive(tokens)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errorAt(tokens, "invalid assignment statement, expecting an expression")
	}
	node.AddChild(value)

	if err := expectSemicolon(tokens); err != nil {
		return nil, err
	}
	return node, nil
}

// additive folds a left-associative chain: add -> mul (('+'|'-') mul)*.
func (p *Parser) additive(tokens *lexer.Reader) (*ast.Node, error) {
	return p.binaryChain(tokens, ast.NodeAdditive, p.multiplicative,
		"invalid additive expression, expecting the right part",
		lexer.KindPlus, lexer.KindMinus)
}

// multiplicative folds a left-associative chain: mul -> pri (('*'|'/') pri)*.
func (p *Parser) multiplicative(tokens *lexer.Reader) (*ast.Node, error) {
	return p.binaryChain(tokens, ast.NodeMultiplicative, p.primary,
		"invalid multiplicative expression, expecting the right part",
		lexer.KindStar, lexer.KindSlash)
}

func (p *Parser) binaryChain(
	tokens *lexer.Reader,
	kind ast.NodeType,
	operand func(*lexer.Reader) (*ast.Node, error),
	missingRight string,
	operators ...lexer.Kind,
) (*ast.Node, error) {
	left, err := operand(tokens)
	if err != nil || left == nil {
		return nil, err
	}
	for {
		op, ok := tokens.Peek()
		if !ok || !kindIn(op.Kind, operators) {
			return left, nil
		}
		tokens.Read()
		right, err := operand(tokens)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, errorAt(tokens, missingRight)
		}
		node := ast.NewNodeAt(kind, op.Text, position(op))
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
}

func (p *Parser) primary(tokens *lexer.Reader) (*ast.Node, error) {
	tok, ok := tokens.Peek()
	if !ok {
		return nil, nil
	}
	switch tok.Kind {
	case lexer.KindIntLiteral:
		tokens.Read()
		return ast.NewNodeAt(ast.NodeIntLiteral, tok.Text, position(tok)), nil
	case lexer.KindIdentifier:
		tokens.Read()
		return ast.NewNodeAt(ast.NodeIdentifier, tok.Text, position(tok)), nil
	case lexer.KindLeftParen:
		tokens.Read()
		inner, err := p.additive(tokens)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, errorAt(tokens, "expecting an additive expression inside parenthesis")
		}
		if !peekKind(tokens, lexer.KindRightParen) {
			return nil, errorAt(tokens, "expecting right parenthesis")
		}
		tokens.Read()
		return inner, nil
	default:
		return nil, nil
	}
}

func expectSemicolon(tokens *lexer.Reader) error {
	if !peekKind(tokens, lexer.KindSemiColon) {
		return errorAt(tokens, "invalid statement, expecting semicolon")
	}
	tokens.Read()
	return nil
}

func peekKind(tokens *lexer.Reader, kind lexer.Kind) bool {
	tok, ok := tokens.Peek()
	return ok && tok.Kind == kind
}

func kindIn(kind lexer.Kind, set []lexer.Kind) bool {
	for _, k := range set {
		if k == kind {
			return true
		}
	}
	return false
}

func position(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
