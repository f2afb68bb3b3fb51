package palette

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

type backendKind int

const (
	kindRofi backendKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// dmenuLikeBackend drives any launcher that reads rows on stdin and prints
// the selection on stdout.
type dmenuLikeBackend struct {
	command string
	kind    backendKind
	caps    Capabilities
	run     Runner
}

func newRofiBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{
		command: "rofi",
		kind:    kindRofi,
		caps: Capabilities{
			Icons:         true,
			Markup:        true,
			NonSelectable: true,
			IndexOutput:   true,
			MessageBar:    true,
		},
	}
}

func newDmenuBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{command: "dmenu", kind: kindDmenu}
}

func newWofiBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{
		command: "wofi",
		kind:    kindWofi,
		caps:    Capabilities{Icons: true, Markup: true},
	}
}

func newFuzzelBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{
		command: "fuzzel",
		kind:    kindFuzzel,
		caps:    Capabilities{Icons: true, IndexOutput: true},
	}
}

func (b *dmenuLikeBackend) Capabilities() Capabilities {
	return b.caps
}

func (b *dmenuLikeBackend) Show(ctx context.Context, prompt string, items []Item, message string) (SelectResult, error) {
	if len(items) == 0 {
		return SelectResult{}, fmt.Errorf("palette: no items to show")
	}

	displayItems := make([]Item, len(items))
	copy(displayItems, items)

	input, selectedRow := b.formatInput(displayItems)
	args := b.buildArgs(prompt, message, displayItems, selectedRow)

	run := b.run
	if run == nil {
		run = execRun
	}
	out, stderr, err := run(ctx, input, b.command, args...)
	selection := strings.TrimSpace(string(out))
	if err != nil {
		// Launchers exit 1 on Escape and 130 on Ctrl+C.
		if selection == "" && isCancelExit(err) {
			return SelectResult{}, ErrCancelled
		}
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return SelectResult{}, fmt.Errorf("%s failed: %s", b.command, msg)
		}
		return SelectResult{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	if selection == "" {
		return SelectResult{}, ErrCancelled
	}

	item, err := b.parseSelection(selection, displayItems)
	if err != nil {
		return SelectResult{}, err
	}
	return SelectResult{Item: item}, nil
}

func (b *dmenuLikeBackend) buildArgs(prompt, message string, items []Item, selectedRow int) []string {
	var args []string

	switch b.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		// Index output survives labels containing ':' or markup.
		args = append(args, "-format", "i", "-no-custom", "-markup-rows", "-show-icons")
		var active []string
		for i, item := range items {
			if item.IsActive && !item.IsHeader && !item.IsDivider {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if selectedRow >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selectedRow))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}

	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt+" ")
		}

	case kindWofi:
		args = []string{"--dmenu", "--allow-markup", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	case kindDmenu:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}

	return args
}

// formatInput renders one row per item and returns the row to preselect:
// the first active selectable item, else the first selectable one, else -1.
func (b *dmenuLikeBackend) formatInput(items []Item) (string, int) {
	// Text-matched launchers need unique labels.
	if !b.caps.IndexOutput {
		seen := make(map[string]int)
		for i := range items {
			if items[i].IsHeader || items[i].IsDivider {
				continue
			}
			key := sanitizeLabel(items[i].Label)
			if key == "" {
				continue
			}
			if count := seen[key]; count > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	firstSelectable, firstActive := -1, -1
	for i, item := range items {
		lines = append(lines, b.formatItem(item))
		if item.IsHeader || item.IsDivider {
			continue
		}
		if firstSelectable == -1 {
			firstSelectable = i
		}
		if item.IsActive && firstActive == -1 {
			firstActive = i
		}
	}

	if firstActive != -1 {
		return strings.Join(lines, "\n"), firstActive
	}
	return strings.Join(lines, "\n"), firstSelectable
}

func (b *dmenuLikeBackend) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if b.caps.Markup {
		display = html.EscapeString(display)
		switch {
		case item.IsHeader:
			display = "<b>" + display + "</b>"
		case item.IsDivider:
			display = "<span foreground='#666666'>" + display + "</span>"
		}
	}

	// Rofi row properties: one NUL, then key\x1fvalue pairs joined by \x1f.
	if b.kind != kindRofi {
		return display
	}

	var attrs []string
	if (item.IsHeader || item.IsDivider) && b.caps.NonSelectable {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *dmenuLikeBackend) parseSelection(selection string, items []Item) (Item, error) {
	if b.caps.IndexOutput {
		idx, err := strconv.Atoi(selection)
		if err != nil {
			return b.findByLabel(selection, items)
		}
		if idx < 0 || idx >= len(items) {
			return Item{}, fmt.Errorf("palette: index %d out of range", idx)
		}
		return items[idx], nil
	}
	return b.findByLabel(selection, items)
}

func (b *dmenuLikeBackend) findByLabel(selection string, items []Item) (Item, error) {
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
