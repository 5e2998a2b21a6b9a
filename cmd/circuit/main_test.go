package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "--help"})
	})
	if err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
	for _, want := range []string{"tokens", "parse", "check", "analyze", "fmt", "repl", "lsp"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q: %q", want, out)
		}
	}
}

func TestRunCLIWithoutCommandPrintsHelp(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit"})
	})
	if err != nil {
		t.Fatalf("runCLI without command failed: %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected usage output, got %q", out)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"circuit", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIRejectsBadLexMode(t *testing.T) {
	scriptPath := writeScript(t, "1;")
	err := runCLI([]string{"circuit", "--lex-mode", "loose", "check", scriptPath})
	if err == nil {
		t.Fatalf("expected lex mode error")
	}
	if !strings.Contains(err.Error(), `unknown lex mode "loose"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIRejectsBadLogLevel(t *testing.T) {
	scriptPath := writeScript(t, "1;")
	err := runCLI([]string{"circuit", "--log-level", "loud", "check", scriptPath})
	if err == nil {
		t.Fatalf("expected log level error")
	}
	if !strings.Contains(err.Error(), `unknown log level "loud"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokensCommandListsTokens(t *testing.T) {
	scriptPath := writeScript(t, "1 + 2;\nfun")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "tokens", scriptPath})
	})
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 token lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "1:1  UINT  1" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[4] != "2:1  FUN   fun" {
		t.Fatalf("unexpected last line %q", lines[4])
	}
}

func TestTokensCommandReportsLexErrors(t *testing.T) {
	scriptPath := writeScript(t, "1 @ 2 # 3")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "--no-color", "tokens", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected lex errors")
	}
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("expected problems error, got %v", err)
	}
	if !strings.Contains(err.Error(), "2 problems found") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ":1:3: lex error: unexpected character '@'") {
		t.Fatalf("missing first lex error: %q", out)
	}
	if !strings.Contains(out, ":1:7: lex error: unexpected character '#'") {
		t.Fatalf("missing second lex error: %q", out)
	}
}

func TestParseCommandText(t *testing.T) {
	scriptPath := writeScript(t, "1 + 2 * 3;\nreturn f(x).y;")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "parse", scriptPath})
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := "(expr (+ 1 (* 2 3)))\n(return (. (call f x) y))\n"
	if out != want {
		t.Fatalf("unexpected parse output:\nwant %q\ngot  %q", want, out)
	}
}

func TestParseCommandJSON(t *testing.T) {
	scriptPath := writeScript(t, "fun add(a, b) { return a + b; }")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "parse", "--format", "json", scriptPath})
	})
	if err != nil {
		t.Fatalf("parse json failed: %v", err)
	}
	for _, want := range []string{
		`"kind": "program"`,
		`"kind": "function"`,
		`"name": "add"`,
		`"params": [`,
		`"operator": "+"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %s: %s", want, out)
		}
	}
}

func TestParseCommandYAML(t *testing.T) {
	scriptPath := writeScript(t, `"hi";`)

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "parse", "-f", "yaml", scriptPath})
	})
	if err != nil {
		t.Fatalf("parse yaml failed: %v", err)
	}
	for _, want := range []string{"kind: program", "kind: expression", "kind: string", "value: hi"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml output missing %q: %s", want, out)
		}
	}
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	scriptPath := writeScript(t, "1;")
	err := runCLI([]string{"circuit", "parse", "--format", "xml", scriptPath})
	if err == nil || !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestCheckCommandAcceptsValidScripts(t *testing.T) {
	first := writeScript(t, "fun f() { return 1; }")
	second := writeScript(t, "f();")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "check", first, second})
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if strings.TrimSpace(out) != "No errors found" {
		t.Fatalf("unexpected check output: %q", out)
	}
}

func TestCheckCommandRendersCodeFrame(t *testing.T) {
	scriptPath := writeScript(t, "1 +;")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "--no-color", "check", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected check failure")
	}
	if !strings.Contains(err.Error(), "check: 1 problem found") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ":1:4: parse error: expected a primary value, got ';'") {
		t.Fatalf("missing diagnostic header: %q", out)
	}
	if !strings.Contains(out, "  --> line 1, column 4\n 1 | 1 +;\n   |    ^") {
		t.Fatalf("missing code frame: %q", out)
	}
}

func TestConfigFileSelectsPermissiveLexing(t *testing.T) {
	scriptPath := writeScript(t, "1; @ 2;")
	configPath := filepath.Join(t.TempDir(), "circuit.toml")
	if err := os.WriteFile(configPath, []byte("lex_mode = \"permissive\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "--config", configPath, "parse", scriptPath})
	})
	if err != nil {
		t.Fatalf("parse with permissive config failed: %v", err)
	}
	if out != "(expr 1)\n" {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = captureStdout(t, func() error {
		return runCLI([]string{"circuit", "--config", configPath, "--lex-mode", "strict", "parse", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected strict flag to override config")
	}
}

func TestDebugLoggingReportsEngineActivity(t *testing.T) {
	scriptPath := writeScript(t, "1 + 2;")

	var runErr error
	logs := captureStderr(t, func() {
		_, runErr = captureStdout(t, func() error {
			return runCLI([]string{"circuit", "--log-level", "debug", "check", scriptPath})
		})
	})
	if runErr != nil {
		t.Fatalf("check failed: %v", runErr)
	}
	for _, want := range []string{"msg=tokenized", "tokens=4", "msg=parsed", "statements=1", "msg=checked"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("debug logs missing %q: %q", want, logs)
		}
	}
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, "fun add(a, b) {\n  return a + b;\n}\nadd(1, 2);\n")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "analyze", scriptPath})
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsUnreachableStatements(t *testing.T) {
	scriptPath := writeScript(t, "fun run() {\n  return 1;\n  2;\n}\n")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "analyze", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected analyze command to report lint failures")
	}
	if !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":3:3: unreachable statement (run)") {
		t.Fatalf("expected unreachable statement warning, got %q", out)
	}
}

func TestAnalyzeCommandReportsDuplicateFunctions(t *testing.T) {
	scriptPath := writeScript(t, "fun f() {}\nfun f() {}\n{ fun f() {} }\n")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "analyze", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected duplicate function warning")
	}
	if !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("nested scope should not count as a redeclaration: %v", err)
	}
	if !strings.Contains(out, ":2:5: function f redeclared (first declared at 1:5) (<top>)") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandLooksInsideBlockExpressions(t *testing.T) {
	scriptPath := writeScript(t, "f({ return 1; 2; });\n")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "analyze", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected unreachable statement inside block expression")
	}
	if !strings.Contains(out, ":1:15: unreachable statement (<top>)") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runCLI([]string{"circuit", "version"})
	})
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "circuit v"+version+"\n") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script"+scriptExtension)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w

	fn()
	_ = w.Close()
	os.Stderr = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stderr: %v", copyErr)
	}
	_ = r.Close()
	return buf.String()
}
