package interpreter

import (
	"strconv"

	"craft/interpreter-go/pkg/ast"
)

// frame carries per-statement evaluation state.
type frame struct {
	depth int
	notes []Note
}

func (f *frame) child() *frame {
	return &frame{depth: f.depth + 1}
}

func (f *frame) merge(c *frame) {
	f.notes = append(f.notes, c.notes...)
}

func (i *Interpreter) evaluate(node *ast.Node, f *frame) (int64, error) {
	if node == nil {
		return 0, runtimeError(ErrMalformedTree, nil, "missing node")
	}
	i.tracef(f.depth, "Calculating: %s", node.NodeType())

	value, err := i.evaluateNode(node, f)
	if err != nil {
		return 0, err
	}

	i.tracef(f.depth, "Result: %d", value)
	return value, nil
}

func (i *Interpreter) evaluateNode(node *ast.Node, f *frame) (int64, error) {
	switch node.NodeType() {
	case ast.NodeProgram:
		var last int64
		for _, stmt := range node.Children() {
			v, err := i.evaluateChild(stmt, f)
			if err != nil {
				return 0, err
			}
			last = v
		}
		return last, nil
	case ast.NodeExpressionStmt, ast.NodePrimary:
		if len(node.Children()) != 1 {
			return 0, runtimeError(ErrMalformedTree, node, "%s requires exactly one child", node.NodeType())
		}
		return i.evaluateChild(node.Child(0), f)
	case ast.NodeAdditive, ast.NodeMultiplicative:
		return i.evaluateBinary(node, f)
	case ast.NodeIntLiteral:
		v, err := strconv.ParseInt(node.Text(), 10, 64)
		if err != nil {
			return 0, runtimeError(ErrInvalidLiteral, node, "invalid integer literal %q", node.Text())
		}
		return v, nil
	case ast.NodeIdentifier:
		return i.evaluateIdentifier(node, f)
	case ast.NodeAssignmentStmt:
		return i.evaluateAssignment(node, f)
	case ast.NodeIntDeclaration:
		return i.evaluateDeclaration(node, f)
	default:
		return 0, runtimeError(ErrMalformedTree, node, "unsupported node type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateChild(node *ast.Node, f *frame) (int64, error) {
	c := f.child()
	v, err := i.evaluate(node, c)
	f.merge(c)
	return v, err
}

// evaluateBinary evaluates the left operand strictly before the right one.
func (i *Interpreter) evaluateBinary(node *ast.Node, f *frame) (int64, error) {
	if len(node.Children()) != 2 {
		return 0, runtimeError(ErrMalformedTree, node, "%s %q requires two operands", node.NodeType(), node.Text())
	}
	left, err := i.evaluateChild(node.Child(0), f)
	if err != nil {
		return 0, err
	}
	right, err := i.evaluateChild(node.Child(1), f)
	if err != nil {
		return 0, err
	}
	switch node.Text() {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, runtimeError(ErrDivisionByZero, node, "division by zero")
		}
		return left / right, nil
	default:
		return 0, runtimeError(ErrMalformedTree, node, "unsupported operator %q", node.Text())
	}
}

func (i *Interpreter) evaluateIdentifier(node *ast.Node, f *frame) (int64, error) {
	name := node.Text()
	if v, ok := i.env.Lookup(name); ok {
		return v, nil
	}
	if i.opts.StrictIdentifiers {
		return 0, runtimeError(ErrUndefinedVariable, node, "undefined variable '%s'", name)
	}
	note := Note{
		Name:     name,
		Message:  "variable " + name + " not found",
		Position: node.Pos(),
	}
	f.notes = append(f.notes, note)
	if i.opts.OnNote != nil {
		i.opts.OnNote(note)
	}
	return 0, nil
}

func (i *Interpreter) evaluateAssignment(node *ast.Node, f *frame) (int64, error) {
	name := node.Text()
	if !i.env.Has(name) {
		return 0, runtimeError(ErrUndefinedVariable, node, "undefined variable '%s'", name)
	}
	if len(node.Children()) != 1 {
		return 0, runtimeError(ErrMalformedTree, node, "assignment to %s requires a value", name)
	}
	v, err := i.evaluateChild(node.Child(0), f)
	if err != nil {
		return 0, err
	}
	if err := i.env.Assign(name, v); err != nil {
		return 0, runtimeError(ErrUndefinedVariable, node, "%v", err)
	}
	return v, nil
}

// evaluateDeclaration binds name to its initializer, or 0 without one.
// Redeclaration overwrites.
func (i *Interpreter) evaluateDeclaration(node *ast.Node, f *frame) (int64, error) {
	var v int64
	if init := node.Child(0); init != nil {
		var err error
		v, err = i.evaluateChild(init, f)
		if err != nil {
			return 0, err
		}
	}
	i.env.Define(node.Text(), v)
	return v, nil
}
