package ast

// Prog builds a Program from statements.
func Prog(statements ...*Node) *Node {
	n := NewNode(NodeProgram, "")
	for _, stmt := range statements {
		n.AddChild(stmt)
	}
	return n
}

// IntDecl builds "int name = init;"; a nil init leaves the declaration without children.
func IntDecl(name string, init *Node) *Node {
	n := NewNode(NodeIntDeclaration, name)
	if init != nil {
		n.AddChild(init)
	}
	return n
}

func Assign(name string, value *Node) *Node {
	n := NewNode(NodeAssignmentStmt, name)
	n.AddChild(value)
	return n
}

func ExprStmt(expr *Node) *Node {
	n := NewNode(NodeExpressionStmt, "")
	n.AddChild(expr)
	return n
}

// Bin builds an Additive or Multiplicative node depending on op.
func Bin(op string, left, right *Node) *Node {
	kind := NodeAdditive
	if op == "*" || op == "/" {
		kind = NodeMultiplicative
	}
	n := NewNode(kind, op)
	n.AddChild(left)
	n.AddChild(right)
	return n
}

func ID(name string) *Node {
	return NewNode(NodeIdentifier, name)
}

func Int(digits string) *Node {
	return NewNode(NodeIntLiteral, digits)
}
