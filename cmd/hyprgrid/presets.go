package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/hyprgrid/internal/config"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [preset]",
		Short: "List presets and their positions",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			names := res.Config.PresetNames()
			if len(args) == 1 {
				name, _, err := res.Config.GetPreset(args[0])
				if err != nil {
					return err
				}
				names = []string{name}
			}
			out := cmd.OutOrStdout()
			renderPresets(out, res.Config, names, newPresetStyles(isTerminal(out)))
			return nil
		},
	}
}

type presetStyles struct {
	header lipgloss.Style
	code   lipgloss.Style
	dim    lipgloss.Style
}

func newPresetStyles(color bool) presetStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return presetStyles{header: plain, code: plain, dim: plain}
	}
	return presetStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		code:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func renderPresets(w io.Writer, cfg *config.Config, names []string, st presetStyles) {
	g := cfg.Grid
	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("grid %dx%d, gaps %d", g.Columns, g.Rows, g.Gaps)))
	for _, name := range names {
		_, preset, err := cfg.GetPreset(name)
		if err != nil {
			continue
		}
		title := name
		if name == cfg.DefaultPreset {
			title += " (default)"
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.header.Render(title))

		codes := preset.Codes()
		width := 0
		for _, code := range codes {
			width = max(width, len(code))
		}
		for _, code := range codes {
			label := st.code.Render(code + strings.Repeat(" ", width-len(code)))
			fmt.Fprintf(w, "  %s  %s\n", label, st.dim.Render(describePosition(preset[code])))
		}
	}
}

func describePosition(p config.Position) string {
	if p.Centered {
		return fmt.Sprintf("centered %d%%", int(p.Spec().EffectiveScale()*100+0.5))
	}
	return fmt.Sprintf("cell %d,%d span %dx%d", p.X, p.Y, p.Width, p.Height)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
