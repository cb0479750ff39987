package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"80x24", 80, 24, false},
		{"10X5", 10, 5, false},
		{"80", 0, 0, true},
		{"0x24", 0, 0, true},
		{"80x-1", 0, 0, true},
		{"axb", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSize(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSize(%q): %v", tt.in, err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestRunPrintsActiveBuffer(t *testing.T) {
	path := writeTemp(t, "main.go", "package main\n")

	code, out, errOut := runCLI(t, "-e", `editor.insert("// ")`, path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "// package main\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunScriptPrint(t *testing.T) {
	path := writeTemp(t, "notes.txt", "one\ntwo")
	code, out, errOut := runCLI(t, "-e", `print(editor.lines(), editor.line(2))`, path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "2\ttwo\n") {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunWrite(t *testing.T) {
	a := writeTemp(t, "a.txt", "alpha\r\nbeta\r\n")
	b := writeTemp(t, "b.txt", "untouched\n")

	code, _, errOut := runCLI(t, "-write", "-e", `editor.move("line_end"); editor.insert("!")`, a, b)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}

	got, err := os.ReadFile(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "alpha!\r\nbeta\r\n" {
		t.Errorf("a.txt = %q", got)
	}
	got, err = os.ReadFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "untouched\n" {
		t.Errorf("b.txt = %q", got)
	}
}

func TestRunDiff(t *testing.T) {
	path := writeTemp(t, "list.txt", "a\nb\nc\n")

	code, out, errOut := runCLI(t, "-diff", "-e", `editor.set_cursor(2, 1); editor.insert("x")`, path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"--- a/" + path, "+++ b/" + path, "-b\n", "+xb\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff missing %q:\n%s", want, out)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a\nb\nc\n" {
		t.Errorf("-diff must not write, file = %q", got)
	}
}

func TestRunRender(t *testing.T) {
	path := writeTemp(t, "a.txt", "hello")

	code, out, errOut := runCLI(t, "-render", "21x4", "-e", `editor.split("vertical")`, path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	if first != "hello     │hello" {
		t.Errorf("first row = %q", first)
	}
}

func TestRunErrors(t *testing.T) {
	script := writeTemp(t, "bad.lua", "editor.undo(")
	badConfig := writeTemp(t, "paneedit.toml", "[history]\nlimit = -1\n")

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"unknown flag", []string{"-nope"}, 2, "flag provided but not defined"},
		{"write and diff", []string{"-write", "-diff"}, 2, "mutually exclusive"},
		{"bad render size", []string{"-render", "big"}, 2, "invalid size"},
		{"bad log level", []string{"-log-level", "loud"}, 1, "configuration"},
		{"bad config", []string{"-config", badConfig}, 1, "configuration"},
		{"script syntax", []string{"-script", script}, 1, "Error:"},
		{"script runtime", []string{"-e", `error("boom")`}, 1, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d (%s)", code, tt.code, errOut)
			}
			if !strings.Contains(errOut, tt.msg) {
				t.Errorf("stderr %q does not mention %q", errOut, tt.msg)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out, "paneedit dev\n") {
		t.Errorf("stdout = %q", out)
	}
}
