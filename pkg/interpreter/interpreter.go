package interpreter

import (
	"fmt"
	"io"

	"craft/interpreter-go/pkg/ast"
	"craft/interpreter-go/pkg/parser"
	"craft/interpreter-go/pkg/runtime"
)

// Options configures an interpreter session.
type Options struct {
	// Verbose enables the step trace and the tree dump on Trace.
	Verbose bool
	// Trace receives verbose output. Defaults to io.Discard.
	Trace io.Writer
	// StrictIdentifiers makes reading an unbound identifier an error instead
	// of a note that evaluates to 0.
	StrictIdentifiers bool
	// StrictLexing rejects characters that cannot start a token.
	StrictLexing bool
	// OnNote, when set, is called for every note as it is produced.
	OnNote func(Note)
}

// Interpreter evaluates syntax trees against one session's environment.
// Statements are evaluated one at a time; the environment carries over
// between calls.
type Interpreter struct {
	env    *runtime.Environment
	parser *parser.Parser
	opts   Options
	trace  io.Writer
}

// New returns an interpreter with an empty environment.
func New(opts Options) *Interpreter {
	return NewWithEnvironment(runtime.NewEnvironment(), opts)
}

// NewWithEnvironment returns an interpreter bound to env.
func NewWithEnvironment(env *runtime.Environment, opts Options) *Interpreter {
	trace := opts.Trace
	if trace == nil || !opts.Verbose {
		trace = io.Discard
	}
	return &Interpreter{
		env:    env,
		parser: parser.New(parser.Options{StrictLexing: opts.StrictLexing}),
		opts:   opts,
		trace:  trace,
	}
}

// Environment returns the session environment.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// StatementResult is the outcome of one top-level statement.
type StatementResult struct {
	Node *ast.Node
	// Name is the variable written by declarations and assignments.
	Name  string
	Value int64
	Notes []Note
}

// String renders the result the way the console reports it: "name: value"
// for declarations and assignments, the bare value otherwise.
func (r StatementResult) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%s: %d", r.Name, r.Value)
	}
	return fmt.Sprintf("%d", r.Value)
}

// EvaluateSource parses source and evaluates every statement in it. Parse
// errors are returned before anything is evaluated.
func (i *Interpreter) EvaluateSource(source string) ([]StatementResult, error) {
	program, err := i.parser.Parse(source)
	if err != nil {
		return nil, err
	}
	if i.opts.Verbose {
		ast.Dump(i.trace, program)
	}
	return i.EvaluateProgram(program)
}

// EvaluateProgram evaluates the statements of a Program node in order. It
// stops at the first failing statement and returns the results gathered so
// far together with the error; bindings made by earlier statements are kept.
func (i *Interpreter) EvaluateProgram(program *ast.Node) ([]StatementResult, error) {
	if program == nil || program.NodeType() != ast.NodeProgram {
		return nil, runtimeError(ErrMalformedTree, program, "expected a Program node")
	}
	i.tracef(0, "Calculating: %s", program.NodeType())
	results := make([]StatementResult, 0, len(program.Children()))
	var last int64
	for _, stmt := range program.Children() {
		f := &frame{depth: 1}
		value, err := i.evaluate(stmt, f)
		if err != nil {
			return results, err
		}
		result := StatementResult{Node: stmt, Value: value, Notes: f.notes}
		if t := stmt.NodeType(); t == ast.NodeIntDeclaration || t == ast.NodeAssignmentStmt {
			result.Name = stmt.Text()
		}
		results = append(results, result)
		last = value
	}
	i.tracef(0, "Result: %d", last)
	return results, nil
}

// Evaluate evaluates any node and returns its integer value. Notes go to
// Options.OnNote.
func (i *Interpreter) Evaluate(node *ast.Node) (int64, error) {
	return i.evaluate(node, &frame{})
}

func (i *Interpreter) tracef(depth int, format string, args ...any) {
	if !i.opts.Verbose {
		return
	}
	for n := 0; n < depth; n++ {
		io.WriteString(i.trace, "\t")
	}
	fmt.Fprintf(i.trace, format+"\n", args...)
}
