// Package palette shows grid positions in a dmenu-style launcher (rofi,
// fuzzel, wofi or dmenu) and returns the user's choice.
package palette

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label     string // Display text
	Action    string // Action identifier returned on selection
	Icon      string // Icon name for rofi -show-icons
	Meta      string // Hidden search keywords (rofi meta field)
	IsHeader  bool   // Non-selectable section header (bold)
	IsDivider bool   // Non-selectable divider line (dim)
	IsActive  bool   // Highlighted as current/active
}

// SelectResult contains the result of a palette selection.
type SelectResult struct {
	Item Item
}

// Capabilities describes what features a backend supports.
type Capabilities struct {
	Icons         bool // Supports icon display
	Markup        bool // Supports pango markup in labels
	NonSelectable bool // Supports non-selectable rows (headers)
	IndexOutput   bool // Can output selection index (not just text)
	MessageBar    bool // Supports message bar
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show blocks until the user picks an item or closes the launcher.
	// message is shown in the message bar where supported.
	Show(ctx context.Context, prompt string, items []Item, message string) (SelectResult, error)
	Capabilities() Capabilities
}

// Runner executes a launcher with stdin and returns its stdout and stderr.
type Runner func(ctx context.Context, stdin string, name string, args ...string) (stdout, stderr []byte, err error)

func execRun(ctx context.Context, stdin string, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	return newBackend(name, exec.LookPath, execRun)
}

func newBackend(name string, lookPath func(string) (string, error), run Runner) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := detectBackend(lookPath)
		if err != nil {
			return nil, err
		}
		name = detected
	}

	var b *dmenuLikeBackend
	switch name {
	case "rofi":
		b = newRofiBackend()
	case "fuzzel":
		b = newFuzzelBackend()
	case "wofi":
		b = newWofiBackend()
	case "dmenu":
		b = newDmenuBackend()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, rofi, fuzzel, wofi, dmenu)", name)
	}
	if _, err := lookPath(b.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", b.command)
	}
	b.run = run
	return b, nil
}
