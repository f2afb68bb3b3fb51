package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprgrid/internal/palette"
	"github.com/1broseidon/hyprgrid/internal/placement"
)

func newPaletteCmd(a *app) *cobra.Command {
	var backendName string
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Pick a position from a rofi/fuzzel/wofi/dmenu menu",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			cfg := orch.Config()
			if backendName == "" {
				backendName = cfg.PaletteBackend
			}
			backend, err := palette.NewBackend(backendName)
			if err != nil {
				return err
			}
			items := palette.BuildMenu(cfg)
			if len(items) == 0 {
				return fmt.Errorf("no presets configured")
			}
			menu := palette.NewMenu(backend, items)
			menu.SetMessage(fmt.Sprintf("%dx%d grid", cfg.Grid.Columns, cfg.Grid.Rows))

			selected, err := menu.Show(cmd.Context())
			if errors.Is(err, palette.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			action, err := palette.ParseAction(selected)
			if err != nil {
				return err
			}
			a.log.Debug("Palette selection", "action", action.String())
			if err := a.exclusive(); err != nil {
				return err
			}
			return runAction(cmd, orch, action)
		},
	}
	cmd.Flags().StringVar(&backendName, "backend", "", "Launcher to use: auto, rofi, fuzzel, wofi, dmenu (default from config)")
	return cmd
}

func runAction(cmd *cobra.Command, orch *placement.Orchestrator, action palette.Action) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	switch action.Kind {
	case palette.ActionApply:
		applied, err := orch.ApplyPositionByCode(ctx, action.Preset, action.Code)
		if err != nil {
			return err
		}
		printApplied(out, applied)
	case palette.ActionReset:
		if err := orch.ResetWindowState(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Window state reset")
	case palette.ActionTest:
		ok, err := orch.RunPresetTest(ctx, action.Preset, func(step placement.TestStep) {
			printTestStep(out, step)
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("one or more positions failed")
		}
	default:
		return fmt.Errorf("unsupported palette action %q", action.Kind)
	}
	return nil
}
