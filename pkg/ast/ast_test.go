package ast

import (
	"bytes"
	"testing"
)

func TestAddChildPreservesOrder(t *testing.T) {
	n := NewNode(NodeAdditive, "-")
	left := Int("1")
	right := Int("2")
	n.AddChild(left)
	n.AddChild(right)
	children := n.Children()
	if len(children) != 2 || children[0] != left || children[1] != right {
		t.Fatalf("unexpected children: %v", children)
	}
	if n.Child(2) != nil || n.Child(-1) != nil {
		t.Fatalf("expected nil for out of range child")
	}
}

func TestBinChoosesNodeType(t *testing.T) {
	if got := Bin("+", Int("1"), Int("2")).NodeType(); got != NodeAdditive {
		t.Fatalf("expected Additive, got %s", got)
	}
	if got := Bin("/", Int("1"), Int("2")).NodeType(); got != NodeMultiplicative {
		t.Fatalf("expected Multiplicative, got %s", got)
	}
}

func TestStringRendering(t *testing.T) {
	prog := Prog(
		IntDecl("a", Bin("+", Int("1"), Bin("*", Int("2"), Int("3")))),
		IntDecl("b", nil),
		Assign("b", ID("a")),
		ExprStmt(Bin("-", Bin("+", Int("1"), Int("2")), Int("3"))),
	)
	want := "int a = (1+(2*3)); int b; b = a; ((1+2)-3);"
	if got := prog.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, Prog(IntDecl("age", Bin("+", Int("45"), Int("2")))))
	want := "Program \n" +
		"\tIntDeclaration age\n" +
		"\t\tAdditive +\n" +
		"\t\t\tIntLiteral 45\n" +
		"\t\t\tIntLiteral 2\n"
	if buf.String() != want {
		t.Fatalf("dump mismatch\nexpected:\n%s\nactual:\n%s", want, buf.String())
	}
}

func TestNodeTypePredicates(t *testing.T) {
	for _, kind := range []NodeType{NodeIntDeclaration, NodeExpressionStmt, NodeAssignmentStmt} {
		if !kind.IsStatement() {
			t.Errorf("%s should be a statement", kind)
		}
	}
	if NodeAdditive.IsStatement() || NodeProgram.IsStatement() {
		t.Errorf("expressions and programs are not statements")
	}
	if !NodeMultiplicative.IsBinary() || NodeIdentifier.IsBinary() {
		t.Errorf("unexpected IsBinary result")
	}
}
