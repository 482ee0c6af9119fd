package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"craft/interpreter-go/pkg/driver"
	"craft/interpreter-go/pkg/interpreter"
	"craft/interpreter-go/pkg/lexer"
)

func runEntry(args []string, flags globalFlags) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var candidate string
	if len(args) == 1 {
		candidate = args[0]
	} else {
		if cfg == nil || len(cfg.TargetOrder) == 0 {
			fmt.Fprintln(os.Stderr, "craft run requires a target or source file")
			return 1
		}
		candidate = cfg.TargetOrder[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	script, err := loadScript(ctx, cfg, candidate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return executeScript(script, cfg, flags)
}

// loadScript resolves candidate as a config target first and as a file path
// otherwise.
func loadScript(ctx context.Context, cfg *driver.Config, candidate string) (*driver.Script, error) {
	target, err := cfg.FindTarget(candidate)
	if err != nil {
		if !errors.Is(err, driver.ErrUnknownTarget) {
			return nil, err
		}
		return driver.NewLoader("").LoadFile(candidate)
	}
	cacheDir := ""
	if target.IsGit() {
		home, err := driver.ResolveCraftHome()
		if err != nil {
			return nil, err
		}
		cacheDir = home
	}
	return driver.NewLoader(cacheDir).LoadTarget(ctx, cfg, target)
}

func executeScript(script *driver.Script, cfg *driver.Config, flags globalFlags) int {
	session := driver.NewSession(cfg, driver.SessionOptions{
		Verbose: flags.verbose,
		Strict:  flags.strict,
		Trace:   os.Stdout,
		OnNote: func(note interpreter.Note) {
			fmt.Fprintln(os.Stderr, driver.DescribeDiagnostic(driver.DiagnosticFromNote(script.Path, note)))
		},
	})
	results, err := session.EvaluateSource(script.Source)
	printResults(os.Stdout, results)
	if err != nil {
		fmt.Fprintln(os.Stderr, driver.DescribeError(script.Path, err))
		return 1
	}
	return 0
}

func runTokens(args []string, flags globalFlags) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "craft tokens requires exactly one source file")
		return 1
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	script, err := driver.NewLoader("").LoadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts := driver.InterpreterOptions(cfg, driver.SessionOptions{Strict: flags.strict})
	var tokens []lexer.Token
	if opts.StrictLexing {
		tokens, err = lexer.TokenizeStrict(script.Source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", script.Path, err)
			return 1
		}
	} else {
		tokens = lexer.Tokenize(script.Source)
	}
	lexer.Dump(os.Stdout, tokens)
	return 0
}
