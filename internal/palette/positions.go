package palette

import (
	"fmt"
	"strings"

	"github.com/1broseidon/hyprgrid/internal/config"
)

// ActionKind is what a palette selection asks for.
type ActionKind string

const (
	ActionApply ActionKind = "apply"
	ActionReset ActionKind = "reset"
	ActionTest  ActionKind = "test"
)

// Action is a parsed palette selection.
type Action struct {
	Kind   ActionKind
	Preset string
	Code   string
}

// String encodes the action as a menu action identifier.
func (a Action) String() string {
	switch a.Kind {
	case ActionApply:
		return fmt.Sprintf("%s:%s:%s", ActionApply, a.Preset, a.Code)
	case ActionTest:
		return fmt.Sprintf("%s:%s", ActionTest, a.Preset)
	default:
		return string(a.Kind)
	}
}

// ParseAction decodes an identifier produced by Action.String.
func ParseAction(s string) (Action, error) {
	parts := strings.SplitN(s, ":", 3)
	switch ActionKind(parts[0]) {
	case ActionApply:
		if len(parts) == 3 && parts[1] != "" && parts[2] != "" {
			return Action{Kind: ActionApply, Preset: parts[1], Code: parts[2]}, nil
		}
	case ActionTest:
		if len(parts) == 2 && parts[1] != "" {
			return Action{Kind: ActionTest, Preset: parts[1]}, nil
		}
	case ActionReset:
		if len(parts) == 1 {
			return Action{Kind: ActionReset}, nil
		}
	}
	return Action{}, fmt.Errorf("palette: unrecognised action %q", s)
}

// BuildMenu lists every preset position as preset:code. With a single preset
// the positions are shown flat; otherwise each preset gets a submenu and the
// default preset is listed first.
func BuildMenu(cfg *config.Config) []MenuItem {
	names := cfg.PresetNames()
	ordered := make([]string, 0, len(names))
	if _, ok := cfg.Presets[cfg.DefaultPreset]; ok {
		ordered = append(ordered, cfg.DefaultPreset)
	}
	for _, name := range names {
		if name != cfg.DefaultPreset {
			ordered = append(ordered, name)
		}
	}

	if len(ordered) == 0 {
		return nil
	}

	var items []MenuItem
	if len(ordered) == 1 {
		items = positionItems(cfg, ordered[0])
	} else {
		for _, name := range ordered {
			label := name
			if name == cfg.DefaultPreset {
				label += " (default)"
			}
			items = append(items, MenuItem{
				Label:   label,
				Meta:    name,
				Submenu: positionItems(cfg, name),
			})
		}
	}

	return append(items,
		MenuItem{Label: "────────", IsDivider: true},
		MenuItem{Label: "Reset window state", Action: Action{Kind: ActionReset}.String(), Icon: "view-refresh"},
		MenuItem{
			Label:  "Test all positions (" + ordered[0] + ")",
			Action: Action{Kind: ActionTest, Preset: ordered[0]}.String(),
			Icon:   "media-playback-start",
		},
	)
}

func positionItems(cfg *config.Config, preset string) []MenuItem {
	p := cfg.Presets[preset]
	items := make([]MenuItem, 0, len(p))
	for _, code := range p.Codes() {
		items = append(items, MenuItem{
			Label:  preset + ":" + code + "  " + describe(p[code]),
			Action: Action{Kind: ActionApply, Preset: preset, Code: code}.String(),
			Icon:   "view-grid",
			Meta:   code,
		})
	}
	return items
}

func describe(p config.Position) string {
	if p.Centered && p.Scale > 0 && p.Scale < 1 {
		return fmt.Sprintf("centered %d%%", int(p.Scale*100+0.5))
	}
	return fmt.Sprintf("%d,%d %dx%d", p.X, p.Y, p.Width, p.Height)
}
