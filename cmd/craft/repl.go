package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"craft/interpreter-go/pkg/driver"
	"craft/interpreter-go/pkg/interpreter"
	"craft/interpreter-go/pkg/parser"
)

const replExitCommand = "exit();"

func runRepl(args []string, flags globalFlags) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "craft repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	prompt := driver.DefaultPrompt
	if cfg != nil {
		prompt = cfg.Prompt
	}
	session := driver.NewSession(cfg, driver.SessionOptions{
		Verbose: flags.verbose,
		Strict:  flags.strict,
		Trace:   os.Stdout,
		OnNote:  printNote(os.Stderr),
	})
	fmt.Fprintln(os.Stdout, "Craft script language!")
	return replLoop(session, prompt, os.Stdin, os.Stdout, os.Stderr)
}

// replLoop accumulates input lines until one ends with a semicolon, then
// evaluates the buffered program against session. Lines may be of any
// length. The buffer is cleared after every attempt; the environment is kept.
func replLoop(session *interpreter.Interpreter, prompt string, in io.Reader, out, errOut io.Writer) int {
	reader := bufio.NewReader(in)
	var code strings.Builder
	for {
		fmt.Fprint(out, prompt)
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			fmt.Fprintf(errOut, "read input: %v\n", err)
			return 1
		}
		if raw == "" && err != nil {
			break
		}
		line := strings.TrimSpace(raw)
		if line == replExitCommand {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "good bye")
			return 0
		}

		code.WriteString(line)
		code.WriteString("\n")
		if !strings.HasSuffix(line, ";") {
			continue
		}

		results, evalErr := session.EvaluateSource(code.String())
		code.Reset()
		printResults(out, results)
		if evalErr != nil {
			if errors.Is(evalErr, parser.ErrMalformedInput) {
				fmt.Fprintf(errOut, "parse failed: %v\n", evalErr)
			} else {
				fmt.Fprintf(errOut, "evaluate failed: %v\n", evalErr)
			}
		}
	}
	fmt.Fprintln(out)
	return 0
}

func printResults(out io.Writer, results []interpreter.StatementResult) {
	for _, result := range results {
		fmt.Fprintln(out, result.String())
	}
}

func printNote(errOut io.Writer) func(interpreter.Note) {
	return func(note interpreter.Note) {
		fmt.Fprintln(errOut, note.String())
	}
}
