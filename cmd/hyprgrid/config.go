package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/hyprgrid/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return &usageError{fmt.Errorf("missing subcommand (validate, print, explain)")}
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range res.Defaulted {
				fmt.Fprintf(out, "defaulted: %s\n", path)
			}
			for _, w := range res.Config.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	var defaults bool
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := a.loadConfig()
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	printCmd.Flags().BoolVar(&defaults, "defaults", false, "Print builtin defaults instead of the effective config")

	explain := &cobra.Command{
		Use:     "explain <yaml.path>",
		Short:   "Show a config value and where it came from",
		Example: "  hyprgrid config explain grid.gaps\n  hyprgrid config explain presets.default.top-left",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path: %s\n", args[0])
			fmt.Fprintf(out, "source: %s\n", formatSource(src))
			fmt.Fprintln(out, "value:")
			_, err = out.Write(indent(data))
			return err
		},
	}

	cmd.AddCommand(validate, printCmd, explain)
	return cmd
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin, config.SourceDefault:
		if src.Name != "" {
			return string(src.Kind) + ":" + src.Name
		}
		return string(src.Kind)
	default:
		return string(src.Kind)
	}
}

func indent(data []byte) []byte {
	out := make([]byte, 0, len(data)+16)
	atLineStart := true
	for _, b := range data {
		if atLineStart {
			out = append(out, ' ', ' ')
		}
		out = append(out, b)
		atLineStart = b == '\n'
	}
	return out
}
