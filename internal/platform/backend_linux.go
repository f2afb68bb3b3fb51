//go:build linux

package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/hyprgrid/internal/tiling"
	"github.com/1broseidon/hyprgrid/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend places windows on EWMH-compliant X11 window managers. X11
// has no floating/tiled distinction, so every window reports ModeFloating.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %v: %w", err, ErrUnavailable)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) Name() string { return "x11" }

// FocusedWindow returns the _NET_ACTIVE_WINDOW client.
func (b *LinuxBackend) FocusedWindow(ctx context.Context) (Window, error) {
	conn, err := b.connection()
	if err != nil {
		return Window{}, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil || wid == 0 {
		return Window{}, ErrNoFocusedWindow
	}

	geom, err := conn.WindowGeometry(wid)
	if err != nil {
		return Window{}, fmt.Errorf("window 0x%x: %v: %w", uint32(wid), err, ErrUnavailable)
	}

	desktop, _ := conn.GetWindowDesktop(wid)
	return Window{
		Handle:    handleFromXID(wid),
		Class:     conn.WindowClass(wid),
		Title:     conn.WindowTitle(wid),
		Mode:      ModeFloating,
		Bounds:    rectFromGeometry(geom),
		Workspace: desktop + 1,
	}, nil
}

// FocusedScreen returns the monitor holding the active window.
func (b *LinuxBackend) FocusedScreen(ctx context.Context) (tiling.Screen, error) {
	conn, err := b.connection()
	if err != nil {
		return tiling.Screen{}, fmt.Errorf("%w: %v", ErrScreenUnavailable, err)
	}

	m, err := conn.GetActiveMonitor()
	if err != nil {
		return tiling.Screen{}, fmt.Errorf("%w: %v", ErrScreenUnavailable, err)
	}
	return screenFromMonitor(*m), nil
}

func (b *LinuxBackend) WindowMode(ctx context.Context, h WindowHandle) (WindowMode, error) {
	if _, err := parseXID(h); err != nil {
		return ModeUnknown, err
	}
	return ModeFloating, nil
}

func (b *LinuxBackend) WindowGeometry(ctx context.Context, h WindowHandle) (tiling.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return tiling.Rect{}, err
	}
	wid, err := parseXID(h)
	if err != nil {
		return tiling.Rect{}, err
	}
	geom, err := conn.WindowGeometry(wid)
	if err != nil {
		return tiling.Rect{}, fmt.Errorf("window %s: %v: %w", h, err, ErrUnavailable)
	}
	return rectFromGeometry(geom), nil
}

// CountWorkspaceWindows counts normal windows on the current desktop.
func (b *LinuxBackend) CountWorkspaceWindows(ctx context.Context) (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	n, err := conn.CountDesktopWindows()
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}
	return n, nil
}

// ToggleFloating is a no-op: X11 windows are always freely placeable.
func (b *LinuxBackend) ToggleFloating(ctx context.Context, h WindowHandle) error {
	_, err := parseXID(h)
	return err
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(ctx context.Context, h WindowHandle, bounds tiling.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	wid, err := parseXID(h)
	if err != nil {
		return err
	}
	if err := conn.MoveResizeWindow(wid, bounds.X, bounds.Y, bounds.Width, bounds.Height); err != nil {
		return fmt.Errorf("move window %s: %v: %w", h, err, ErrCommandRejected)
	}
	return nil
}

// ReloadRules is a no-op; X11 window managers hold no runtime rules for us.
func (b *LinuxBackend) ReloadRules(ctx context.Context) error {
	return nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil: %w", ErrUnavailable)
	}
	return b.conn, nil
}

func handleFromXID(wid xproto.Window) WindowHandle {
	return WindowHandle(fmt.Sprintf("0x%x", uint32(wid)))
}

func parseXID(h WindowHandle) (xproto.Window, error) {
	if h == "" {
		return 0, ErrNoFocusedWindow
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(string(h), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid X11 window handle %q: %w", h, err)
	}
	return xproto.Window(v), nil
}

func rectFromGeometry(g x11.Geometry) tiling.Rect {
	return tiling.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

func screenFromMonitor(m x11.Monitor) tiling.Screen {
	return tiling.Screen{
		Name:     m.Name,
		X:        m.Bounds.X,
		Y:        m.Bounds.Y,
		Width:    m.Bounds.Width,
		Height:   m.Bounds.Height,
		Scale:    1.0,
		Reserved: m.Reserved,
	}
}
