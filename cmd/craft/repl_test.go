package main

import (
	"bytes"
	"strings"
	"testing"

	"craft/interpreter-go/pkg/driver"
	"craft/interpreter-go/pkg/interpreter"
)

func runReplInput(t *testing.T, session *interpreter.Interpreter, input string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := replLoop(session, ">", strings.NewReader(input), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestReplEvaluatesStatements(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	code, out, errOut := runReplInput(t, session, "int a = 5;\na + 1;\nexit();\nnever;\n")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if want := ">a: 5\n>6\n>\ngood bye\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestReplAccumulatesUntilSemicolon(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	_, out, _ := runReplInput(t, session, "int b =\n  2;\nb * 3;\n")
	if want := ">>b: 2\n>6\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestReplReportsFailuresAndContinues(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	_, out, errOut := runReplInput(t, session, "int a = 2;\n1 +;\n1 / 0;\na;\n")
	if want := ">a: 2\n>>>2\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	wantErr := "parse failed: invalid additive expression, expecting the right part\n" +
		"evaluate failed: division by zero\n"
	if errOut != wantErr {
		t.Fatalf("stderr = %q, want %q", errOut, wantErr)
	}
}

func TestReplDiscardsBufferAfterParseFailure(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	_, out, errOut := runReplInput(t, session, "int = 1;\n4;\n")
	if !strings.Contains(errOut, "parse failed: variable name expected") {
		t.Fatalf("expected parse failure, got %q", errOut)
	}
	if want := ">>4\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestReplPrintsNotes(t *testing.T) {
	var errOut bytes.Buffer
	session := interpreter.New(interpreter.Options{OnNote: printNote(&errOut)})
	var out bytes.Buffer
	replLoop(session, ">", strings.NewReader("x + 1;\n"), &out, &errOut)
	if got := errOut.String(); got != "note: variable x not found\n" {
		t.Fatalf("stderr = %q", got)
	}
	if want := ">1\n>\n"; out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func TestReplAcceptsLongLines(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	long := strings.Repeat("1+", 40000) + "1;"
	code, out, errOut := runReplInput(t, session, long+"\n2;\n")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if want := ">40001\n>2\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestReplEvaluatesFinalLineWithoutNewline(t *testing.T) {
	session := interpreter.New(interpreter.Options{})
	_, out, _ := runReplInput(t, session, "3 * 3;")
	if want := ">9\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestReplUsesPreloadedSession(t *testing.T) {
	session := driver.NewSession(&driver.Config{Preload: map[string]int64{"seed": 7}}, driver.SessionOptions{})
	_, out, _ := runReplInput(t, session, "seed = seed * 6;\n")
	if want := ">seed: 42\n>\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}
