package palette

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MenuItem represents an item in the menu hierarchy.
type MenuItem struct {
	Label     string
	Action    string // Empty for parent items
	Icon      string
	Meta      string
	IsHeader  bool
	IsDivider bool
	IsActive  bool
	Submenu   []MenuItem
}

// IsParent returns true if this item has a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

const (
	menuPrompt    = "hyprgrid"
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// Menu handles hierarchical menu navigation using a palette backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	message string
}

func NewMenu(backend Backend, items []MenuItem) *Menu {
	return &Menu{backend: backend, root: items}
}

// SetMessage sets the message bar text where the backend supports one.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show displays the menu and handles navigation through submenus. It returns
// the action of the selected leaf item, or ErrCancelled.
func (m *Menu) Show(ctx context.Context) (string, error) {
	return m.showLevel(ctx, m.root, nil)
}

func (m *Menu) showLevel(ctx context.Context, items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		paletteItems := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			paletteItems = append(paletteItems, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
		}

		for i, item := range items {
			label, icon, action := item.Label, item.Icon, item.Action
			if item.IsParent() {
				label += " →"
				if icon == "" {
					icon = "folder"
				}
				action = submenuPrefix + strconv.Itoa(i)
			} else if strings.TrimSpace(action) == "" {
				action = "noop"
			}
			paletteItems = append(paletteItems, Item{
				Label:     label,
				Action:    action,
				Icon:      icon,
				Meta:      item.Meta,
				IsHeader:  item.IsHeader,
				IsDivider: item.IsDivider,
				IsActive:  item.IsActive,
			})
		}

		prompt := menuPrompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		result, err := m.backend.Show(ctx, prompt, paletteItems, m.message)
		if err != nil {
			return "", err
		}

		// Not every backend can enforce non-selectable rows.
		if result.Item.IsHeader || result.Item.IsDivider || result.Item.Action == "noop" {
			continue
		}
		if result.Item.Action == backAction {
			return "", ErrCancelled
		}

		if idxStr, ok := strings.CutPrefix(result.Item.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			action, err := m.showLevel(ctx, items[idx].Submenu, append(breadcrumb, items[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}

		return result.Item.Action, nil
	}
}
