package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/hyprgrid/internal/config"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd(&app{})
	expected := []string{"apply", "grid", "reset", "test", "presets", "config", "palette", "mcp", "version"}
	for _, name := range expected {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCmd_Version(t *testing.T) {
	root := newRootCmd(&app{})
	if root.Version == "" {
		t.Fatalf("expected version to be set")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"version", "--bogus"}},
		{"unknown command", []string{"frobnicate"}},
		{"apply without ref", []string{"apply"}},
		{"apply too many args", []string{"apply", "a", "b", "c"}},
		{"explain without path", []string{"config", "explain"}},
		{"config without subcommand", []string{"config"}},
		{"mcp without subcommand", []string{"mcp"}},
		{"grid zero span", []string{"grid", "--width", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != exitUsage {
				t.Fatalf("expected exit %d, got %d (stderr=%q)", exitUsage, code, stderr)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != exitOK || !strings.HasPrefix(stdout, "hyprgrid ") {
		t.Fatalf("unexpected version output: code=%d out=%q", code, stdout)
	}
}

func TestRun_ConfigValidate(t *testing.T) {
	path := writeConfig(t, "grid:\n  rows: 0\n")
	code, stdout, stderr := runCLI(t, "--config", path, "config", "validate")
	if code != exitOK {
		t.Fatalf("expected success, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stdout, "defaulted: grid.rows") || !strings.HasSuffix(stdout, "OK\n") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRun_ConfigValidateFailure(t *testing.T) {
	path := writeConfig(t, "default_preset: nope\n")
	code, _, stderr := runCLI(t, "--config", path, "config", "validate")
	if code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr, "nope") {
		t.Fatalf("expected error to name the preset, got %q", stderr)
	}
}

func TestRun_ConfigPrintDefaults(t *testing.T) {
	code, stdout, _ := runCLI(t, "config", "print", "--defaults")
	if code != exitOK {
		t.Fatalf("expected success, got %d", code)
	}
	for _, want := range []string{"default_preset: default", "rows: 3", "gaps: 5"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestRun_ConfigExplain(t *testing.T) {
	path := writeConfig(t, "grid:\n  gaps: 7\n")
	code, stdout, stderr := runCLI(t, "--config", path, "config", "explain", "grid.gaps")
	if code != exitOK {
		t.Fatalf("expected success, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stdout, "source: file:") || !strings.Contains(stdout, "  7") {
		t.Fatalf("unexpected output %q", stdout)
	}

	code, stdout, _ = runCLI(t, "--config", path, "config", "explain", "grid.rows")
	if code != exitOK || !strings.Contains(stdout, "source: default") {
		t.Fatalf("expected default source, got code=%d out=%q", code, stdout)
	}
}

func TestRun_Presets(t *testing.T) {
	path := writeConfig(t, "")
	code, stdout, stderr := runCLI(t, "--config", path, "presets", "default")
	if code != exitOK {
		t.Fatalf("expected success, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stdout, "default (default)") || !strings.Contains(stdout, "grid 3x3, gaps 5") {
		t.Fatalf("unexpected output %q", stdout)
	}

	code, _, _ = runCLI(t, "--config", path, "presets", "missing")
	if code != exitFailure {
		t.Fatalf("expected failure for unknown preset, got %d", code)
	}
}

func TestSplitRef(t *testing.T) {
	cfg := config.DefaultConfig()
	tests := []struct {
		args       []string
		wantPreset string
		wantCode   string
	}{
		{[]string{"default:left"}, "default", "left"},
		{[]string{"thirds", "center"}, "thirds", "center"},
		{[]string{"top-left"}, "default", "top-left"},
	}
	for _, tt := range tests {
		preset, code := splitRef(cfg, tt.args)
		if preset != tt.wantPreset || code != tt.wantCode {
			t.Fatalf("splitRef(%q) = %q,%q want %q,%q", tt.args, preset, code, tt.wantPreset, tt.wantCode)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceBuiltin, Name: "default"}, "builtin:default"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestDescribePosition(t *testing.T) {
	if got := describePosition(config.Position{X: 1, Y: 0, Width: 2, Height: 3, Scale: 1}); got != "cell 1,0 span 2x3" {
		t.Fatalf("unexpected grid description %q", got)
	}
	if got := describePosition(config.Position{Centered: true, Scale: 0.5}); got != "centered 50%" {
		t.Fatalf("unexpected centered description %q", got)
	}
}
