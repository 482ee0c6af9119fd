package driver

import (
	"io"

	"craft/interpreter-go/pkg/interpreter"
	"craft/interpreter-go/pkg/runtime"
)

// SessionOptions holds the per-invocation settings that override Config.
type SessionOptions struct {
	Verbose bool
	Strict  bool
	Trace   io.Writer
	OnNote  func(interpreter.Note)
}

// InterpreterOptions merges cfg with the command-line overrides. A nil cfg
// is treated as an empty config.
func InterpreterOptions(cfg *Config, opts SessionOptions) interpreter.Options {
	out := interpreter.Options{
		Verbose: opts.Verbose,
		Trace:   opts.Trace,
		OnNote:  opts.OnNote,
	}
	if cfg != nil {
		out.Verbose = out.Verbose || cfg.Verbose
		out.StrictLexing = cfg.Strict.Lexing
		out.StrictIdentifiers = cfg.Strict.Identifiers
	}
	if opts.Strict {
		out.StrictLexing = true
		out.StrictIdentifiers = true
	}
	return out
}

// NewSession returns an interpreter whose environment already holds the
// config's preload bindings.
func NewSession(cfg *Config, opts SessionOptions) *interpreter.Interpreter {
	env := runtime.NewEnvironment()
	if cfg != nil {
		for _, name := range cfg.PreloadNames() {
			env.Define(name, cfg.Preload[name])
		}
	}
	return interpreter.NewWithEnvironment(env, InterpreterOptions(cfg, opts))
}
