package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zurustar/brew/pkg/compiler"
	"github.com/zurustar/brew/pkg/fileutil"
	"github.com/zurustar/brew/pkg/vm"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run アプリケーションを実行し、標準出力と標準エラー出力を返す
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, name := range []string{"BREW_LOG_LEVEL", "BREW_TIMEOUT", "BREW_COLOR", "BREW_CONFIG"} {
		t.Setenv(name, "")
	}

	var stdout, stderr bytes.Buffer
	application := New(strings.NewReader(stdin), &stdout, &stderr)
	err := application.Run(context.Background(), append([]string{"--color", "never"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestRun_Help(t *testing.T) {
	stdout, _, err := run(t, "", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("expected help output, got %q", stdout)
	}
}

func TestRun_InvalidArgs(t *testing.T) {
	_, _, err := run(t, "", "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "failed to parse args") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestRun_Script(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "hello.brew", `
		let names = ["a", "b"];
		for (let i = 0; i < names.length; i = i + 1) {
			console.log("hello", names[i]);
		}
		file.write("out.txt", "written");
	`)

	stdout, stderr, err := run(t, "", path)
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}
	if stdout != "hello a\nhello b\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	// file.* の相対パスはスクリプトのディレクトリ基準
	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil || string(data) != "written" {
		t.Errorf("expected out.txt next to the script, got %q, %v", data, err)
	}
}

func TestRun_Directory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib.brew", `console.log("wrong");`)
	writeScript(t, dir, "main.brew", `console.log("main");`)

	stdout, _, err := run(t, "", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "main\n" {
		t.Errorf("expected main.brew to run, got %q", stdout)
	}
}

func TestRun_ShiftJISScript(t *testing.T) {
	dir := t.TempDir()
	encoded, err := fileutil.Encode(`console.log("こんにちは");`, "shift_jis")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "sjis.brew")
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "", "--encoding", "shift_jis", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "こんにちは\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRun_ScriptErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "", filepath.Join(t.TempDir(), "none.brew"))
		if err == nil || !strings.Contains(err.Error(), "failed to load script") {
			t.Errorf("expected load error, got %v", err)
		}
	})

	t.Run("compile error stops before evaluation", func(t *testing.T) {
		path := writeScript(t, t.TempDir(), "bad.brew", "console.log(\"never\");\nlet x = ;")
		stdout, _, err := run(t, "", path)

		var cerr *compiler.CompileError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected CompileError, got %v", err)
		}
		if cerr.Line != 2 {
			t.Errorf("expected error on line 2, got %d", cerr.Line)
		}
		if !strings.HasPrefix(err.Error(), "bad.brew: parser error") {
			t.Errorf("unexpected message %q", err.Error())
		}
		if stdout != "" {
			t.Errorf("nothing should run, got %q", stdout)
		}
	})

	t.Run("uncaught throw", func(t *testing.T) {
		path := writeScript(t, t.TempDir(), "throw.brew", "console.log(\"before\");\nthrow \"boom\";\nconsole.log(\"after\");")
		stdout, _, err := run(t, "", path)

		var uerr *vm.UncaughtError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UncaughtError, got %v", err)
		}
		if uerr.Message != "boom" || uerr.Span.StartLine != 2 {
			t.Errorf("unexpected uncaught error %+v", uerr)
		}
		if stdout != "before\n" {
			t.Errorf("unexpected stdout %q", stdout)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		path := writeScript(t, t.TempDir(), "loop.brew", "while true { }")
		_, _, err := run(t, "", "--timeout", "100ms", path)

		var rerr *vm.RuntimeError
		if !errors.As(err, &rerr) || rerr.Type != vm.ErrorTimeout {
			t.Errorf("expected TimeoutError, got %v", err)
		}
	})

	t.Run("max depth", func(t *testing.T) {
		path := writeScript(t, t.TempDir(), "deep.brew", "fn f(n) { return f(n + 1); }\ntry { f(0); } catch (e) { console.log(\"caught\"); }")
		stdout, _, err := run(t, "", "--max-depth", "50", path)

		var rerr *vm.RuntimeError
		if !errors.As(err, &rerr) || rerr.Type != vm.ErrorStackOverflow {
			t.Errorf("expected StackOverflowError, got %v", err)
		}
		if stdout != "" {
			t.Errorf("stack overflow must not be catchable, got %q", stdout)
		}
	})
}

func TestRun_Logging(t *testing.T) {
	path := writeScript(t, t.TempDir(), "quiet.brew", `console.log("out");`)

	stdout, stderr, err := run(t, "", "--log-level", "info", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "out\n" {
		t.Errorf("logs must not reach stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Script loaded") || !strings.Contains(stderr, "VM finished") {
		t.Errorf("expected lifecycle logs on stderr, got %q", stderr)
	}

	_, stderr, _ = run(t, "", path)
	if stderr != "" {
		t.Errorf("default level should keep stderr quiet, got %q", stderr)
	}
}

func TestRun_REPL(t *testing.T) {
	input := strings.Join([]string{
		"let x = 2",
		"x * 3",
		"fn inc(a) {",
		"  return a + 1",
		"}",
		"inc(x)",
		`"s" + x`,
		"nope",
		"let y = ;",
		":bogus",
		"console.log(\"printed\")",
		":quit",
		"console.log(\"not reached\")",
	}, "\n")

	stdout, stderr, err := run(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff("6\n3\n\"s2\"\nprinted\n", stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{"ReferenceError", "parser error", "unknown command :bogus"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr)
		}
	}
	if strings.Contains(stdout, "not reached") {
		t.Error("input after :quit must not run")
	}
}

func TestRun_REPLEndsAtEOF(t *testing.T) {
	stdout, _, err := run(t, "let a = [1,\n2]\na")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "[1, 2]\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

// fakeReader は決められた行を順に返す
type fakeReader struct {
	lines   []string
	prompts []string
}

func (f *fakeReader) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestReadByParseProbe(t *testing.T) {
	r := &fakeReader{lines: []string{"if true {", `  let s = "a`, `b";`, "}", "1 + 1"}}

	src, ok := readByParseProbe(r, promptMain, promptCont)
	if !ok {
		t.Fatal("expected input")
	}
	if src != "if true {\n  let s = \"a\nb\";\n}" {
		t.Errorf("unexpected source %q", src)
	}
	if diff := cmp.Diff([]string{promptMain, promptCont, promptCont, promptCont}, r.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}

	src, ok = readByParseProbe(r, promptMain, promptCont)
	if !ok || src != "1 + 1" {
		t.Errorf("expected second input, got %q, %v", src, ok)
	}

	if _, ok := readByParseProbe(r, promptMain, promptCont); ok {
		t.Error("expected end of input")
	}
}

func TestSession_Complete(t *testing.T) {
	machine := vm.New(vm.WithStdout(io.Discard), vm.WithStderr(io.Discard))
	session := NewSession(machine, io.Discard, io.Discard)
	session.Handle(context.Background(), "let counter = 1; let count2 = 2;")

	tests := []struct {
		line     string
		expected []string
	}{
		{"string.up", []string{"string.upper"}},
		{"let v = console.lo", []string{"let v = console.log"}},
		{"coun", []string{"count2", "counter"}},
		{"x + thr", []string{"x + thread", "x + throw"}},
		{"nomodule.x", nil},
		{"1 + ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, session.Complete(tt.line)); diff != "" {
				t.Errorf("completion mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSession_Commands(t *testing.T) {
	var out bytes.Buffer
	machine := vm.New(vm.WithStdout(io.Discard), vm.WithStderr(io.Discard))
	session := NewSession(machine, &out, io.Discard)
	ctx := context.Background()

	session.Handle(ctx, "let answer = 42")
	if !session.Handle(ctx, ":globals") {
		t.Fatal(":globals must not end the session")
	}
	if !strings.Contains(out.String(), "answer = 42") {
		t.Errorf("expected globals listing, got %q", out.String())
	}

	out.Reset()
	session.Handle(ctx, ":modules")
	if !strings.Contains(out.String(), "string: ") || !strings.Contains(out.String(), "pauseExecution") {
		t.Errorf("expected module listing, got %q", out.String())
	}

	for _, cmd := range []string{":quit", ":exit", ":Q"} {
		if session.Handle(ctx, cmd) {
			t.Errorf("%s should end the session", cmd)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("日本語のテキスト", 3); got != "日本語..." {
		t.Errorf("unexpected %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("unexpected %q", got)
	}
}
