package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello")
	b := writeFile(t, dir, "b.txt", "world")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-no-highlight", "-dump", "3", a, b}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.HasSuffix(stdout.String(), "world\n") {
		t.Errorf("last frame should show the second file, got %q", stdout.String())
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"-no-highlight"}},
		{"unknown flag", []string{"-bogus"}},
		{"unknown setting", []string{"-set", "render.nope=1", "x"}},
		{"invalid value", []string{"-set", "render.fps=0", "x"}},
		{"bad selection", []string{"-select", "0", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != exitUsage {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, exitUsage, stderr.String())
			}
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.go")
	if code := run(context.Background(), []string{"-dump", "1", missing}, &stdout, &stderr); code != exitRuntime {
		t.Errorf("exit code = %d, want %d", code, exitRuntime)
	}
}

func TestRun_PrintConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-set", "render.fps=30", "-theme", "monokai", "-print-config"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "fps = 30") || !strings.Contains(out, "monokai") {
		t.Errorf("unexpected config output:\n%s", out)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "codemorph dev") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestMultiFlag(t *testing.T) {
	var m multiFlag
	_ = m.Set("a=1")
	_ = m.Set("b=2")
	if m.String() != "a=1,b=2" {
		t.Errorf("String() = %q", m.String())
	}
}
