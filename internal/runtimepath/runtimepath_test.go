package runtimepath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirUsesXDGRuntimeDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", xdg)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir returned error: %v", err)
	}
	if dir != xdg {
		t.Fatalf("Dir = %q, want %q", dir, xdg)
	}
}

func TestDirFallsBackWithoutXDG(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("TMPDIR", t.TempDir())

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected %q to be an existing directory (err=%v)", dir, err)
	}
}

func TestLockPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", xdg)

	got, err := LockPath()
	if err != nil {
		t.Fatalf("LockPath returned error: %v", err)
	}
	if want := filepath.Join(xdg, "hyprgrid.lock"); got != want {
		t.Fatalf("LockPath = %q, want %q", got, want)
	}
}
