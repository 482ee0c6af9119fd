package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory %s: %v", prev, err)
		}
	})
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}
	rOut.Close()
	rErr.Close()

	return code, string(outBytes), string(errBytes)
}

func TestParseGlobalFlags(t *testing.T) {
	flags, rest, err := parseGlobalFlags([]string{"-v", "run", "--strict", "--config=cfg.yml", "demo"})
	if err != nil {
		t.Fatalf("parseGlobalFlags: %v", err)
	}
	if !flags.verbose || !flags.strict || flags.configPath != "cfg.yml" {
		t.Fatalf("unexpected flags %#v", flags)
	}
	if strings.Join(rest, " ") != "run demo" {
		t.Fatalf("unexpected remaining args %v", rest)
	}

	flags, rest, err = parseGlobalFlags([]string{"--config", "a.yml", "--", "-v"})
	if err != nil {
		t.Fatalf("parseGlobalFlags: %v", err)
	}
	if flags.verbose || flags.configPath != "a.yml" || strings.Join(rest, " ") != "-v" {
		t.Fatalf("unexpected parse %#v %v", flags, rest)
	}

	for _, args := range [][]string{{"--config"}, {"--config="}} {
		if _, _, err := parseGlobalFlags(args); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"--version"})
	if code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("version output %d %q", code, stdout)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.craft"), `
int age = 45;
int next = age + 1;
next * 2;
`)

	code, stdout, stderr := captureCLI(t, []string{"run", "main.craft"})
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if want := "age: 45\nnext: 46\n92\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunFileReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "bad.craft"), "int a = 1;\na / 0;")

	code, stdout, stderr := captureCLI(t, []string{"bad.craft"})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout != "a: 1\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if want := "runtime: bad.craft:2:3 division by zero"; strings.TrimSpace(stderr) != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
}

func TestRunFileNotes(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "note.craft"), "ghost + 1;")

	code, stdout, stderr := captureCLI(t, []string{"note.craft"})
	if code != 0 || stdout != "1\n" {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	if want := "warning: runtime: note.craft:1:1 variable ghost not found"; strings.TrimSpace(stderr) != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}

	code, _, stderr = captureCLI(t, []string{"--strict", "note.craft"})
	if code != 1 || !strings.Contains(stderr, "undefined variable 'ghost'") {
		t.Fatalf("strict run: %d %q", code, stderr)
	}
}

func TestRunConfigTarget(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "craft.yml"), `
preload:
  base: 10
targets:
  demo: scripts/demo.craft
`)
	writeFile(t, filepath.Join(dir, "scripts", "demo.craft"), "base * 2;")

	code, stdout, stderr := captureCLI(t, []string{"run", "demo"})
	if code != 0 || stdout != "20\n" {
		t.Fatalf("run demo: %d %q %q", code, stdout, stderr)
	}

	code, stdout, stderr = captureCLI(t, []string{"run"})
	if code != 0 || stdout != "20\n" {
		t.Fatalf("run default target: %d %q %q", code, stdout, stderr)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "craft.yml"), `
targets:
  broken: {}
`)
	code, _, stderr := captureCLI(t, []string{"run", "broken"})
	if code != 1 || !strings.Contains(stderr, "targets.broken: must specify path or git") {
		t.Fatalf("expected validation failure, got %d %q", code, stderr)
	}
}

func TestRunVerboseTrace(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "trace.craft"), "1+2;")

	code, stdout, _ := captureCLI(t, []string{"-v", "trace.craft"})
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, fragment := range []string{"Program \n", "\tExpressionStmt \n", "Calculating: Additive", "\t\tResult: 3", "Result: 3\n3\n"} {
		if !strings.Contains(stdout, fragment) {
			t.Fatalf("trace missing %q:\n%s", fragment, stdout)
		}
	}
}

func TestRunTokens(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "lex.craft"), "int a;")

	code, stdout, _ := captureCLI(t, []string{"tokens", "lex.craft"})
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, fragment := range []string{"int\t\tInt\n", "a\t\tIdentifier\n", ";\t\tSemiColon\n"} {
		if !strings.Contains(stdout, fragment) {
			t.Fatalf("token dump missing %q:\n%s", fragment, stdout)
		}
	}
}

func TestRunMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	code, _, stderr := captureCLI(t, []string{"run", "absent.craft"})
	if code != 1 || !strings.Contains(stderr, "absent.craft") {
		t.Fatalf("expected read failure, got %d %q", code, stderr)
	}
}
