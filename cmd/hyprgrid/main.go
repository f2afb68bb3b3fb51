package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprgrid/internal/config"
	"github.com/1broseidon/hyprgrid/internal/logging"
	"github.com/1broseidon/hyprgrid/internal/mcp"
	"github.com/1broseidon/hyprgrid/internal/notify"
	"github.com/1broseidon/hyprgrid/internal/placement"
	"github.com/1broseidon/hyprgrid/internal/platform"
	"github.com/1broseidon/hyprgrid/internal/runtimepath"
	"github.com/1broseidon/hyprgrid/internal/windowstate"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		var uerr *usageError
		if errors.As(err, &uerr) || strings.HasPrefix(err.Error(), "unknown command") {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

// usageError marks bad invocations so they exit with status 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

// app carries the global flags and the lazily built runtime pieces.
type app struct {
	configPath string
	debug      bool
	logFile    string

	stdout io.Writer
	stderr io.Writer

	log     *logging.Logger
	res     *config.LoadResult
	closers []func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hyprgrid",
		Short:         "Place the focused window on a screen grid",
		Long:          "hyprgrid moves the focused Hyprland (or X11) window onto named grid positions, handling floating-state transitions and retries.",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: ~/.config/hyprgrid/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Also append logs to this file")

	root.AddCommand(
		newApplyCmd(a),
		newGridCmd(a),
		newResetCmd(a),
		newTestCmd(a),
		newPresetsCmd(a),
		newConfigCmd(a),
		newPaletteCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hyprgrid %s (commit: %s)\n", version, commit)
		},
	}
}

// loadConfig reads the config once per invocation.
func (a *app) loadConfig() (*config.LoadResult, error) {
	if a.res != nil {
		return a.res, nil
	}
	var res *config.LoadResult
	var err error
	if a.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(a.configPath)
	}
	if err != nil {
		return nil, err
	}
	a.res = res
	return res, nil
}

// logger builds the process logger from config and the global flags.
func (a *app) logger(cfg *config.Config) (*logging.Logger, error) {
	if a.log != nil {
		return a.log, nil
	}
	levelName := cfg.Advanced.LogLevel
	if a.debug {
		levelName = "debug"
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(
		logging.WithConsole(a.stderr),
		logging.WithFile(a.logFile),
		logging.WithLevel(level),
	)
	if err != nil {
		return nil, err
	}
	a.log = log
	a.closers = append(a.closers, func() { _ = log.Close() })
	return log, nil
}

// orchestrator opens the compositor backend and wires the positioning core.
func (a *app) orchestrator() (*placement.Orchestrator, error) {
	res, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	log, err := a.logger(cfg)
	if err != nil {
		return nil, err
	}
	for _, path := range res.Defaulted {
		log.Debug("Invalid config value replaced by default", "path", path)
	}
	for _, w := range cfg.Warnings() {
		log.Debug("Config warning", "warning", w)
	}

	backend, release, err := platform.Open(platform.OpenOptions{
		Kind:            cfg.Backend,
		QueryTimeout:    cfg.Advanced.QueryTimeout(),
		DispatchTimeout: cfg.Advanced.DispatchTimeout(),
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, release)
	log.Debug("Backend opened", "backend", backend.Name())

	states := windowstate.New(backend, log,
		windowstate.WithSettle(cfg.Advanced.Settle(), cfg.Advanced.ResetSettle()))
	notifier := notify.NewService(log, notify.WithCommand(cfg.Appearance.NotifyCommand))

	return placement.New(backend, cfg,
		placement.WithLogger(log),
		placement.WithController(states),
		placement.WithNotifier(notifier),
	), nil
}

// exclusive waits for other hyprgrid processes to finish placing windows.
// The lock is held until the process exits.
func (a *app) exclusive() error {
	path, err := runtimepath.LockPath()
	if err != nil {
		return err
	}
	release, err := acquireLock(path)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, release)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return &usageError{fmt.Errorf("missing subcommand (try: hyprgrid mcp serve)")}
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: "Start the MCP server on stdio. Designed to be invoked by MCP clients, e.g.\n" +
			"  claude mcp add hyprgrid -- hyprgrid mcp serve",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			mcp.ServerVersion = version
			return mcp.NewServer(orch, a.log).Run(cmd.Context())
		},
	})
	return cmd
}
