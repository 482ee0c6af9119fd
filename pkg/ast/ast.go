package ast

import (
	"fmt"
	"io"
	"strings"
)

type NodeType string

const (
	NodeProgram        NodeType = "Program"
	NodeIntDeclaration NodeType = "IntDeclaration"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodeAssignmentStmt NodeType = "AssignmentStmt"
	NodePrimary        NodeType = "Primary"
	NodeMultiplicative NodeType = "Multiplicative"
	NodeAdditive       NodeType = "Additive"
	NodeIdentifier     NodeType = "Identifier"
	NodeIntLiteral     NodeType = "IntLiteral"
)

// IsStatement reports whether nodes of this type appear directly under a Program.
func (t NodeType) IsStatement() bool {
	switch t {
	case NodeIntDeclaration, NodeExpressionStmt, NodeAssignmentStmt:
		return true
	default:
		return false
	}
}

// IsBinary reports whether nodes of this type carry an operator and two operands.
func (t NodeType) IsBinary() bool {
	return t == NodeAdditive || t == NodeMultiplicative
}

// Position is a 1-based source location; the zero value means unknown.
type Position struct {
	Line   int
	Column int
}

// Node is a syntax tree node. The meaning of Text depends on the type: the
// operator for binary nodes, the variable name for declarations, assignments
// and identifiers, and the digits for literals. A node owns its children.
type Node struct {
	kind     NodeType
	text     string
	pos      Position
	children []*Node
}

func NewNode(kind NodeType, text string) *Node {
	return &Node{kind: kind, text: text}
}

// NewNodeAt creates a node anchored at a source position.
func NewNodeAt(kind NodeType, text string, pos Position) *Node {
	return &Node{kind: kind, text: text, pos: pos}
}

func (n *Node) NodeType() NodeType { return n.kind }
func (n *Node) Text() string       { return n.text }
func (n *Node) Pos() Position      { return n.pos }

// Children returns the child list in insertion order. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// AddChild appends child; order is operand and statement order.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// String renders the subtree in a compact, fully parenthesised form, e.g.
// "int a = (1+2); a;".
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.kind {
	case NodeProgram:
		for i, child := range n.children {
			if i > 0 {
				b.WriteByte(' ')
			}
			child.render(b)
		}
	case NodeIntDeclaration:
		b.WriteString("int ")
		b.WriteString(n.text)
		if len(n.children) > 0 {
			b.WriteString(" = ")
			n.children[0].render(b)
		}
		b.WriteByte(';')
	case NodeAssignmentStmt:
		b.WriteString(n.text)
		b.WriteString(" = ")
		if len(n.children) > 0 {
			n.children[0].render(b)
		}
		b.WriteByte(';')
	case NodeExpressionStmt:
		if len(n.children) > 0 {
			n.children[0].render(b)
		}
		b.WriteByte(';')
	case NodeAdditive, NodeMultiplicative:
		b.WriteByte('(')
		n.Child(0).render(b)
		b.WriteString(n.text)
		n.Child(1).render(b)
		b.WriteByte(')')
	case NodePrimary:
		if len(n.children) > 0 {
			n.children[0].render(b)
		}
	default:
		b.WriteString(n.text)
	}
}

// Dump writes one line per node, "<type> <text>", indenting children by a tab.
func Dump(w io.Writer, n *Node) {
	dump(w, n, "")
}

func dump(w io.Writer, n *Node, indent string) {
	if n == nil {
		return
	}
	fmt.Fprintf(w, "%s%s %s\n", indent, n.kind, n.text)
	for _, child := range n.children {
		dump(w, child, indent+"\t")
	}
}
