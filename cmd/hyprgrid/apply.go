package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprgrid/internal/config"
	"github.com/1broseidon/hyprgrid/internal/placement"
	"github.com/1broseidon/hyprgrid/internal/tiling"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <preset:code> | <preset> <code>",
		Short: "Move the focused window to a preset position",
		Example: "  hyprgrid apply top-left\n" +
			"  hyprgrid apply default:right\n" +
			"  hyprgrid apply thirds center",
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			if err := a.exclusive(); err != nil {
				return err
			}
			preset, code := splitRef(orch.Config(), args)
			applied, err := orch.ApplyPositionByCode(cmd.Context(), preset, code)
			if err != nil {
				return err
			}
			printApplied(cmd.OutOrStdout(), applied)
			return nil
		},
	}
}

// splitRef accepts either a single preset:code reference or preset and code
// as two arguments.
func splitRef(cfg *config.Config, args []string) (preset, code string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	return cfg.ParseRef(args[0])
}

func newGridCmd(a *app) *cobra.Command {
	var spec tiling.PositionSpec
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Move the focused window to an explicit grid span",
		Example: "  hyprgrid grid --x 0 --y 0 --width 2 --height 3\n" +
			"  hyprgrid grid --centered --scale 0.6",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !spec.Centered && (spec.Width < 1 || spec.Height < 1) {
				return &usageError{fmt.Errorf("--width and --height must be at least 1")}
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			if err := a.exclusive(); err != nil {
				return err
			}
			applied, err := orch.ApplyGridPosition(cmd.Context(), spec)
			if err != nil {
				return err
			}
			printApplied(cmd.OutOrStdout(), applied)
			return nil
		},
	}
	cmd.Flags().IntVar(&spec.X, "x", 0, "Zero-based column of the top-left cell")
	cmd.Flags().IntVar(&spec.Y, "y", 0, "Zero-based row of the top-left cell")
	cmd.Flags().IntVar(&spec.Width, "width", 1, "Columns spanned")
	cmd.Flags().IntVar(&spec.Height, "height", 1, "Rows spanned")
	cmd.Flags().BoolVar(&spec.Centered, "centered", false, "Center a box of scale x screen size instead")
	cmd.Flags().Float64Var(&spec.Scale, "scale", 1.0, "Screen fraction used with --centered")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Toggle the focused window's floating state twice and reload rules",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			if err := a.exclusive(); err != nil {
				return err
			}
			if err := orch.ResetWindowState(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Window state reset")
			return nil
		},
	}
}

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test [preset]",
		Short: "Cycle the focused window through every position of a preset",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			if err := a.exclusive(); err != nil {
				return err
			}
			preset := ""
			if len(args) == 1 {
				preset = args[0]
			}
			out := cmd.OutOrStdout()
			ok, err := orch.RunPresetTest(cmd.Context(), preset, func(step placement.TestStep) {
				printTestStep(out, step)
			})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("one or more positions failed")
			}
			fmt.Fprintln(out, "All positions applied")
			return nil
		},
	}
}

func printApplied(w io.Writer, applied placement.Applied) {
	r := applied.Rect
	fmt.Fprintf(w, "Placed %s at %d,%d %dx%d (%s, %d attempt%s)\n",
		applied.Handle, r.X, r.Y, r.Width, r.Height, applied.Strategy,
		applied.Attempts, plural(applied.Attempts))
	for _, warn := range applied.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

func printTestStep(w io.Writer, step placement.TestStep) {
	ref := step.Preset + ":" + step.Code
	if step.Err != nil {
		fmt.Fprintf(w, "FAIL %-24s %v\n", ref, step.Err)
		return
	}
	r := step.Applied.Rect
	var notes []string
	for _, warn := range step.Applied.Warnings {
		notes = append(notes, warn.Kind.String())
	}
	line := fmt.Sprintf("ok   %-24s %d,%d %dx%d", ref, r.X, r.Y, r.Width, r.Height)
	if len(notes) > 0 {
		line += " [" + strings.Join(notes, ", ") + "]"
	}
	fmt.Fprintln(w, line)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
