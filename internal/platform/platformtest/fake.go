// Package platformtest provides a scripted platform.Backend for tests.
package platformtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/1broseidon/hyprgrid/internal/platform"
	"github.com/1broseidon/hyprgrid/internal/tiling"
)

// Fake is an in-memory compositor. Zero values describe a 1920x1080 screen
// with a single tiled window on the active workspace.
type Fake struct {
	mu sync.Mutex

	Window    platform.Window
	WindowErr error
	// Handles, when set, is handed out one per FocusedWindow call; the last
	// entry repeats.
	Handles []platform.WindowHandle

	Screen    tiling.Screen
	ScreenErr error

	Mode    platform.WindowMode
	ModeErr error
	// Stuck keeps the window mode unchanged across toggles.
	Stuck bool

	WorkspaceCount int
	CountErr       error

	ToggleErr error
	// MoveErrs are returned by successive MoveResize calls; once drained
	// MoveResize succeeds.
	MoveErrs []error
	// Geometry overrides what WindowGeometry reports; by default it echoes
	// the last successful move.
	Geometry    *tiling.Rect
	GeometryErr error
	ReloadErr   error

	Calls   []string
	Moves   []tiling.Rect
	Toggles int

	lastMove *tiling.Rect
	focused  int
}

var _ platform.Backend = (*Fake)(nil)

// New returns a fake with a focused tiled window "0xabc" on a 1920x1080 screen.
func New() *Fake {
	return &Fake{
		Window: platform.Window{
			Handle:    "0xabc",
			Class:     "kitty",
			Mode:      platform.ModeTiled,
			Workspace: 1,
		},
		Screen:         tiling.Screen{Name: "eDP-1", Width: 1920, Height: 1080, Scale: 1},
		Mode:           platform.ModeTiled,
		WorkspaceCount: 1,
	}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *Fake) FocusedWindow(ctx context.Context) (platform.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("focused-window")
	if f.WindowErr != nil {
		return platform.Window{}, f.WindowErr
	}
	w := f.Window
	if len(f.Handles) > 0 {
		idx := f.focused
		if idx >= len(f.Handles) {
			idx = len(f.Handles) - 1
		}
		w.Handle = f.Handles[idx]
	}
	f.focused++
	w.Mode = f.Mode
	return w, nil
}

func (f *Fake) FocusedScreen(ctx context.Context) (tiling.Screen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("focused-screen")
	if f.ScreenErr != nil {
		return tiling.Screen{}, f.ScreenErr
	}
	return f.Screen, nil
}

func (f *Fake) WindowMode(ctx context.Context, h platform.WindowHandle) (platform.WindowMode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("mode %s", h)
	if f.ModeErr != nil {
		return platform.ModeUnknown, f.ModeErr
	}
	return f.Mode, nil
}

func (f *Fake) WindowGeometry(ctx context.Context, h platform.WindowHandle) (tiling.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("geometry %s", h)
	if f.GeometryErr != nil {
		return tiling.Rect{}, f.GeometryErr
	}
	if f.Geometry != nil {
		return *f.Geometry, nil
	}
	if f.lastMove != nil {
		return *f.lastMove, nil
	}
	return f.Window.Bounds, nil
}

func (f *Fake) CountWorkspaceWindows(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("count-windows")
	return f.WorkspaceCount, f.CountErr
}

func (f *Fake) ToggleFloating(ctx context.Context, h platform.WindowHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("toggle %s", h)
	f.Toggles++
	if f.ToggleErr != nil {
		return f.ToggleErr
	}
	if !f.Stuck {
		switch f.Mode {
		case platform.ModeFloating:
			f.Mode = platform.ModeTiled
		default:
			f.Mode = platform.ModeFloating
		}
	}
	return nil
}

func (f *Fake) MoveResize(ctx context.Context, h platform.WindowHandle, bounds tiling.Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("move %s %d,%d %dx%d", h, bounds.X, bounds.Y, bounds.Width, bounds.Height)
	f.Moves = append(f.Moves, bounds)
	if len(f.MoveErrs) > 0 {
		err := f.MoveErrs[0]
		f.MoveErrs = f.MoveErrs[1:]
		if err != nil {
			return err
		}
	}
	moved := bounds
	f.lastMove = &moved
	return nil
}

func (f *Fake) ReloadRules(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("reload")
	return f.ReloadErr
}

// CallCount returns how many recorded calls start with prefix.
func (f *Fake) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
