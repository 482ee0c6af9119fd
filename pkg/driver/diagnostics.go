package driver

import (
	"errors"
	"fmt"
	"strings"

	"craft/interpreter-go/pkg/interpreter"
	"craft/interpreter-go/pkg/parser"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticStage names the phase that produced a diagnostic.
type DiagnosticStage string

const (
	StageParser  DiagnosticStage = "parser"
	StageRuntime DiagnosticStage = "runtime"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a structured parser or runtime report.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    DiagnosticStage
	Message  string
	Location DiagnosticLocation
}

// DiagnosticFromError converts parse and evaluation failures into a
// Diagnostic. It reports false for errors of any other kind.
func DiagnosticFromError(path string, err error) (Diagnostic, bool) {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		message := parseErr.Message
		if parseErr.Token != "" {
			message = fmt.Sprintf("%s (found %q)", message, parseErr.Token)
		}
		return Diagnostic{
			Severity: SeverityError,
			Stage:    StageParser,
			Message:  message,
			Location: DiagnosticLocation{Path: path, Line: parseErr.Location.Line, Column: parseErr.Location.Column},
		}, true
	}
	var runtimeErr *interpreter.RuntimeError
	if errors.As(err, &runtimeErr) {
		return Diagnostic{
			Severity: SeverityError,
			Stage:    StageRuntime,
			Message:  runtimeErr.Message,
			Location: DiagnosticLocation{Path: path, Line: runtimeErr.Position.Line, Column: runtimeErr.Position.Column},
		}, true
	}
	return Diagnostic{}, false
}

// DiagnosticFromNote converts an evaluation note into a warning.
func DiagnosticFromNote(path string, note interpreter.Note) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Stage:    StageRuntime,
		Message:  note.Message,
		Location: DiagnosticLocation{Path: path, Line: note.Position.Line, Column: note.Position.Column},
	}
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	stage := string(diag.Stage)
	if stage == "" {
		stage = string(StageRuntime)
	}
	message = strings.TrimSpace(strings.TrimPrefix(message, stage+":"))
	prefix := stage + ": "
	if diag.Severity == SeverityWarning {
		prefix = "warning: " + prefix
	}
	if location := formatDiagnosticLocation(diag.Location); location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return prefix + message
}

// DescribeError formats err as a diagnostic when it is a parse or runtime
// failure and falls back to its message otherwise.
func DescribeError(path string, err error) string {
	if diag, ok := DiagnosticFromError(path, err); ok {
		return DescribeDiagnostic(diag)
	}
	return err.Error()
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
