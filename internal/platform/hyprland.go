package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

const (
	DefaultQueryTimeout    = 3 * time.Second
	DefaultDispatchTimeout = 1 * time.Second
)

// CommandRunner executes the control binary and returns its stdout and
// stderr. Tests replace it to feed canned hyprctl replies.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// HyprlandOptions configures a HyprlandBackend. Zero values select defaults.
type HyprlandOptions struct {
	Binary          string
	QueryTimeout    time.Duration
	DispatchTimeout time.Duration
	Runner          CommandRunner
}

// HyprlandBackend talks to Hyprland through hyprctl.
type HyprlandBackend struct {
	binary          string
	queryTimeout    time.Duration
	dispatchTimeout time.Duration
	run             CommandRunner
}

var _ Backend = (*HyprlandBackend)(nil)

// NewHyprlandBackend creates a hyprctl-backed compositor client.
func NewHyprlandBackend(opts HyprlandOptions) *HyprlandBackend {
	b := &HyprlandBackend{
		binary:          opts.Binary,
		queryTimeout:    opts.QueryTimeout,
		dispatchTimeout: opts.DispatchTimeout,
		run:             opts.Runner,
	}
	if b.binary == "" {
		b.binary = "hyprctl"
	}
	if b.queryTimeout <= 0 {
		b.queryTimeout = DefaultQueryTimeout
	}
	if b.dispatchTimeout <= 0 {
		b.dispatchTimeout = DefaultDispatchTimeout
	}
	if b.run == nil {
		b.run = ExecRunner
	}
	return b
}

func (b *HyprlandBackend) Name() string { return "hyprland" }

type hyprWorkspaceRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type hyprClient struct {
	Address   string           `json:"address"`
	Mapped    bool             `json:"mapped"`
	Hidden    bool             `json:"hidden"`
	At        [2]int           `json:"at"`
	Size      [2]int           `json:"size"`
	Workspace hyprWorkspaceRef `json:"workspace"`
	Floating  bool             `json:"floating"`
	Class     string           `json:"class"`
	Title     string           `json:"title"`
}

type hyprMonitor struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Scale    float64 `json:"scale"`
	Focused  bool    `json:"focused"`
	Reserved [4]int  `json:"reserved"`
}

type hyprWorkspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Windows int    `json:"windows"`
}

// FocusedWindow queries `hyprctl activewindow -j`.
func (b *HyprlandBackend) FocusedWindow(ctx context.Context) (Window, error) {
	out, err := b.query(ctx, "activewindow")
	if err != nil {
		return Window{}, err
	}

	trimmed := strings.TrimSpace(string(out))
	// Hyprland prints "Invalid" or an empty object when nothing has focus.
	if trimmed == "" || trimmed == "{}" || strings.EqualFold(trimmed, "invalid") {
		return Window{}, ErrNoFocusedWindow
	}

	var c hyprClient
	if err := json.Unmarshal(out, &c); err != nil {
		return Window{}, fmt.Errorf("parse activewindow reply: %v: %w", err, ErrUnavailable)
	}
	if c.Address == "" {
		return Window{}, ErrNoFocusedWindow
	}
	return windowFromClient(c), nil
}

// FocusedScreen queries `hyprctl monitors -j` and picks the focused monitor,
// falling back to the first one listed.
func (b *HyprlandBackend) FocusedScreen(ctx context.Context) (tiling.Screen, error) {
	out, err := b.query(ctx, "monitors")
	if err != nil {
		return tiling.Screen{}, fmt.Errorf("%w: %v", ErrScreenUnavailable, err)
	}

	var monitors []hyprMonitor
	if err := json.Unmarshal(out, &monitors); err != nil {
		return tiling.Screen{}, fmt.Errorf("%w: parse monitors reply: %v", ErrScreenUnavailable, err)
	}
	if len(monitors) == 0 {
		return tiling.Screen{}, fmt.Errorf("%w: no monitors reported", ErrScreenUnavailable)
	}

	selected := monitors[0]
	for _, m := range monitors {
		if m.Focused {
			selected = m
			break
		}
	}
	if selected.Width <= 0 || selected.Height <= 0 {
		return tiling.Screen{}, fmt.Errorf("%w: monitor %s reports %dx%d",
			ErrScreenUnavailable, selected.Name, selected.Width, selected.Height)
	}

	scale := selected.Scale
	if scale <= 0 {
		scale = 1.0
	}
	return tiling.Screen{
		Name:   selected.Name,
		X:      selected.X,
		Y:      selected.Y,
		Width:  selected.Width,
		Height: selected.Height,
		Scale:  scale,
		// hyprctl orders reserved space as left, top, right, bottom.
		Reserved: tiling.Insets{
			Left:   selected.Reserved[0],
			Top:    selected.Reserved[1],
			Right:  selected.Reserved[2],
			Bottom: selected.Reserved[3],
		},
	}, nil
}

// WindowMode reports whether the window is floating or tiled.
func (b *HyprlandBackend) WindowMode(ctx context.Context, h WindowHandle) (WindowMode, error) {
	c, err := b.findClient(ctx, h)
	if err != nil {
		return ModeUnknown, err
	}
	if c.Floating {
		return ModeFloating, nil
	}
	return ModeTiled, nil
}

// WindowGeometry reads the window's current position and size.
func (b *HyprlandBackend) WindowGeometry(ctx context.Context, h WindowHandle) (tiling.Rect, error) {
	c, err := b.findClient(ctx, h)
	if err != nil {
		return tiling.Rect{}, err
	}
	return rectFromClient(c), nil
}

// CountWorkspaceWindows counts clients on the active workspace.
func (b *HyprlandBackend) CountWorkspaceWindows(ctx context.Context) (int, error) {
	out, err := b.query(ctx, "activeworkspace")
	if err != nil {
		return 0, err
	}
	var ws hyprWorkspace
	if err := json.Unmarshal(out, &ws); err != nil {
		return 0, fmt.Errorf("parse activeworkspace reply: %v: %w", err, ErrUnavailable)
	}
	if ws.ID <= 0 {
		return 0, nil
	}

	clients, err := b.clients(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range clients {
		if c.Workspace.ID == ws.ID {
			count++
		}
	}
	return count, nil
}

// ToggleFloating flips the floating state of the window.
func (b *HyprlandBackend) ToggleFloating(ctx context.Context, h WindowHandle) error {
	args := []string{"dispatch", "togglefloating"}
	if h != "" {
		args = append(args, "address:"+string(h))
	}
	return b.dispatch(ctx, args...)
}

// MoveResize positions the window in exact pixels. Both the move and the
// resize must be accepted for the call to succeed.
func (b *HyprlandBackend) MoveResize(ctx context.Context, h WindowHandle, bounds tiling.Rect) error {
	if h == "" {
		return ErrNoFocusedWindow
	}
	addr := "address:" + string(h)

	if err := b.dispatch(ctx, "dispatch", "movewindowpixel",
		fmt.Sprintf("exact %d %d,%s", bounds.X, bounds.Y, addr)); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	if err := b.dispatch(ctx, "dispatch", "resizewindowpixel",
		fmt.Sprintf("exact %d %d,%s", bounds.Width, bounds.Height, addr)); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

// ReloadRules runs `hyprctl reload`, dropping rules added at runtime.
func (b *HyprlandBackend) ReloadRules(ctx context.Context) error {
	return b.dispatch(ctx, "reload")
}

func (b *HyprlandBackend) findClient(ctx context.Context, h WindowHandle) (hyprClient, error) {
	clients, err := b.clients(ctx)
	if err != nil {
		return hyprClient{}, err
	}
	for _, c := range clients {
		if c.Address == string(h) {
			return c, nil
		}
	}
	return hyprClient{}, fmt.Errorf("window %s not listed by compositor: %w", h, ErrUnavailable)
}

func (b *HyprlandBackend) clients(ctx context.Context) ([]hyprClient, error) {
	out, err := b.query(ctx, "clients")
	if err != nil {
		return nil, err
	}
	var clients []hyprClient
	if err := json.Unmarshal(out, &clients); err != nil {
		return nil, fmt.Errorf("parse clients reply: %v: %w", err, ErrUnavailable)
	}
	return clients, nil
}

// query runs `hyprctl <what> -j` under the query timeout.
func (b *HyprlandBackend) query(ctx context.Context, what string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.queryTimeout)
	defer cancel()

	stdout, stderr, err := b.run(ctx, b.binary, what, "-j")
	if err != nil {
		return nil, b.runError(ctx, what, stderr, err)
	}
	return stdout, nil
}

// dispatch runs a command under the dispatch timeout and checks its reply.
func (b *HyprlandBackend) dispatch(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, b.dispatchTimeout)
	defer cancel()

	stdout, stderr, err := b.run(ctx, b.binary, args...)
	label := strings.Join(args, " ")
	if err != nil {
		var exitErr *exec.ExitError
		if ctx.Err() == nil && errors.As(err, &exitErr) {
			// hyprctl reports failures on stderr; let the reply decide.
			reply := strings.TrimSpace(string(stderr) + " " + string(stdout))
			if !InterpretCommandResult(reply) {
				return fmt.Errorf("%s: %s: %w", label, reply, ErrCommandRejected)
			}
			return fmt.Errorf("%s: %v: %w", label, err, ErrCommandRejected)
		}
		return b.runError(ctx, label, stderr, err)
	}

	if reply := string(stdout); !InterpretCommandResult(reply) {
		return fmt.Errorf("%s: %s: %w", label, strings.TrimSpace(reply), ErrCommandRejected)
	}
	return nil
}

func (b *HyprlandBackend) runError(ctx context.Context, label string, stderr []byte, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s %s: %v: %w", b.binary, label, ctx.Err(), ErrUnavailable)
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Errorf("%s %s: %v (%s): %w", b.binary, label, err, msg, ErrUnavailable)
	}
	return fmt.Errorf("%s %s: %v: %w", b.binary, label, err, ErrUnavailable)
}

func windowFromClient(c hyprClient) Window {
	mode := ModeTiled
	if c.Floating {
		mode = ModeFloating
	}
	return Window{
		Handle:    WindowHandle(c.Address),
		Class:     c.Class,
		Title:     c.Title,
		Mode:      mode,
		Bounds:    rectFromClient(c),
		Workspace: c.Workspace.ID,
	}
}

func rectFromClient(c hyprClient) tiling.Rect {
	return tiling.Rect{X: c.At[0], Y: c.At[1], Width: c.Size[0], Height: c.Size[1]}
}
