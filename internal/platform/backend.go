package platform

import (
	"context"
	"errors"
	"strings"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

var (
	// ErrNoFocusedWindow is returned when the compositor reports no focused window.
	ErrNoFocusedWindow = errors.New("no focused window")
	// ErrScreenUnavailable is returned when the focused screen cannot be read.
	ErrScreenUnavailable = errors.New("screen geometry unavailable")
	// ErrUnavailable wraps control-channel failures: timeouts, missing
	// binaries and malformed replies.
	ErrUnavailable = errors.New("compositor unavailable")
	// ErrCommandRejected is returned when a dispatch reply reads as a failure.
	ErrCommandRejected = errors.New("compositor rejected command")
)

// WindowHandle identifies a window to the compositor. It is only valid for
// the operation that fetched it.
type WindowHandle string

// WindowMode is the layout mode a compositor reports for a window.
type WindowMode int

const (
	ModeUnknown WindowMode = iota
	ModeFloating
	ModeTiled
)

func (m WindowMode) String() string {
	switch m {
	case ModeFloating:
		return "floating"
	case ModeTiled:
		return "tiled"
	default:
		return "unknown"
	}
}

// Window contains metadata and geometry for the focused window.
type Window struct {
	Handle    WindowHandle
	Class     string
	Title     string
	Mode      WindowMode
	Bounds    tiling.Rect
	Workspace int
}

// Backend abstracts the compositor control channel. Every call is a
// synchronous round-trip; implementations must bound each call in time and
// never serve cached state.
type Backend interface {
	Name() string
	FocusedWindow(ctx context.Context) (Window, error)
	FocusedScreen(ctx context.Context) (tiling.Screen, error)
	WindowMode(ctx context.Context, h WindowHandle) (WindowMode, error)
	WindowGeometry(ctx context.Context, h WindowHandle) (tiling.Rect, error)
	// CountWorkspaceWindows counts windows on the active workspace. Special
	// workspaces (id <= 0) always count as empty.
	CountWorkspaceWindows(ctx context.Context) (int, error)
	ToggleFloating(ctx context.Context, h WindowHandle) error
	MoveResize(ctx context.Context, h WindowHandle, bounds tiling.Rect) error
	// ReloadRules clears transient per-window rules the compositor holds.
	ReloadRules(ctx context.Context) error
}

// InterpretCommandResult decides whether a free-text control channel reply
// means the command succeeded. Empty and "ok" replies succeed; any reply
// mentioning "error" or "failed" fails; everything else succeeds.
func InterpretCommandResult(raw string) bool {
	reply := strings.ToLower(strings.TrimSpace(raw))
	if reply == "" || reply == "ok" {
		return true
	}
	if strings.Contains(reply, "error") || strings.Contains(reply, "failed") {
		return false
	}
	return true
}
