// Package placement moves the focused window onto a grid position: it
// resolves the target rect, picks a strategy, makes the window floating,
// issues the move and optionally verifies the result.
package placement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/1broseidon/hyprgrid/internal/config"
	"github.com/1broseidon/hyprgrid/internal/logging"
	"github.com/1broseidon/hyprgrid/internal/platform"
	"github.com/1broseidon/hyprgrid/internal/tiling"
	"github.com/1broseidon/hyprgrid/internal/windowstate"
)

// Strategy names how a window was prepared before it was moved.
type Strategy string

const (
	StrategyFloating       Strategy = "floating"
	StrategyTiledWorkspace Strategy = "tiled-workspace"
)

// NotificationTitle is shown on every placement notification.
const NotificationTitle = "Grid Manager"

// Applied reports the outcome of a successful positioning run.
type Applied struct {
	Strategy Strategy
	Rect     tiling.Rect
	Handle   platform.WindowHandle
	// Attempts counts MoveResize calls, including the first.
	Attempts int
	Verified bool
	Warnings []Warning
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string, timeout time.Duration) error
}

// Orchestrator runs positioning operations against one backend and config
// snapshot. It is not safe for concurrent use.
type Orchestrator struct {
	backend  platform.Backend
	cfg      *config.Config
	states   *windowstate.Controller
	notifier Notifier
	log      *logging.Logger
	tol      tiling.Tolerance

	sleep func(time.Duration)
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(log *logging.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithController replaces the window state controller built from config.
func WithController(c *windowstate.Controller) Option {
	return func(o *Orchestrator) { o.states = c }
}

// WithSleep replaces time.Sleep for retry and test step delays. It is also
// handed to the default window state controller.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

func WithTolerance(tol tiling.Tolerance) Option {
	return func(o *Orchestrator) { o.tol = tol }
}

// New creates an orchestrator. A nil cfg uses the builtin defaults.
func New(backend platform.Backend, cfg *config.Config, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	o := &Orchestrator{
		backend: backend,
		cfg:     cfg,
		tol:     tiling.DefaultTolerance,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logging.Nop()
	}
	if o.states == nil {
		o.states = windowstate.New(backend, o.log,
			windowstate.WithSettle(cfg.Advanced.Settle(), cfg.Advanced.ResetSettle()),
			windowstate.WithSleep(o.sleep),
		)
	}
	return o
}

// Config returns the snapshot the orchestrator was built with.
func (o *Orchestrator) Config() *config.Config { return o.cfg }

// Apply positions the focused window at spec.
func (o *Orchestrator) Apply(ctx context.Context, spec tiling.PositionSpec, policy Policy) (Applied, error) {
	grid := o.cfg.Grid.Spec()
	applied := Applied{Warnings: defaultedWarnings(spec, grid)}

	screen, err := o.backend.FocusedScreen(ctx)
	if err != nil {
		if !errors.Is(err, platform.ErrScreenUnavailable) {
			err = fmt.Errorf("%w: %v", platform.ErrScreenUnavailable, err)
		}
		return applied, err
	}
	if screen.Width <= 0 || screen.Height <= 0 {
		return applied, fmt.Errorf("%w: screen %s reports %dx%d",
			platform.ErrScreenUnavailable, screen.Name, screen.Width, screen.Height)
	}

	area := screen
	if policy.RespectReserved {
		area = tiling.UsableArea(screen)
	}
	target := tiling.Resolve(spec, grid, area)
	if target.Empty() {
		return applied, fmt.Errorf("%w: %dx%d on %dx%d screen", ErrInvalidGeometry,
			target.Width, target.Height, area.Width, area.Height)
	}
	applied.Rect = target
	o.log.Debug("Resolved position", "screen", screen.Name, "x", target.X, "y", target.Y,
		"width", target.Width, "height", target.Height)

	win, err := o.backend.FocusedWindow(ctx)
	if err != nil {
		if !errors.Is(err, platform.ErrNoFocusedWindow) {
			err = fmt.Errorf("%w: %v", platform.ErrNoFocusedWindow, err)
		}
		return applied, err
	}
	applied.Handle = win.Handle

	applied.Strategy = o.chooseStrategy(ctx, policy)
	var stateErr error
	if applied.Strategy == StrategyTiledWorkspace {
		stateErr = o.states.EnsureTiled(ctx, win.Handle, policy.RetryCount)
	} else {
		stateErr = o.states.EnsureFloating(ctx, win.Handle, policy.RetryCount)
	}
	if stateErr != nil {
		o.log.Warn("Could not make window floating, positioning anyway", "window", win.Handle, "error", stateErr)
		applied.Warnings = append(applied.Warnings, Warning{Kind: KindStateTransitionFailed, Err: stateErr})
	}

	handle, attempts, err := o.moveWithRetry(ctx, win.Handle, target, policy)
	applied.Handle = handle
	applied.Attempts = attempts
	if err != nil {
		return applied, err
	}

	if applied.Strategy == StrategyTiledWorkspace || policy.Verify {
		if w := o.verify(ctx, handle, target); w != nil {
			applied.Warnings = append(applied.Warnings, *w)
		} else {
			applied.Verified = true
		}
	}

	if policy.Notify && o.notifier != nil {
		body := fmt.Sprintf("Applying %d×%d position", spec.Width, spec.Height)
		if err := o.notifier.Notify(ctx, NotificationTitle, body, policy.NotifyTimeout); err != nil {
			o.log.Debug("Notification failed", "error", err)
		}
	}

	o.log.Info("Window positioned", "window", handle, "strategy", string(applied.Strategy),
		"x", target.X, "y", target.Y, "width", target.Width, "height", target.Height,
		"attempts", attempts)
	return applied, nil
}

func (o *Orchestrator) chooseStrategy(ctx context.Context, policy Policy) Strategy {
	if !policy.UseTilingHeuristic {
		return StrategyFloating
	}
	n, err := o.backend.CountWorkspaceWindows(ctx)
	if err != nil {
		o.log.Warn("Could not count workspace windows, assuming one", "error", err)
		return StrategyFloating
	}
	if n > 1 {
		return StrategyTiledWorkspace
	}
	o.log.Debug("Single window on workspace, using floating placement")
	return StrategyFloating
}

// moveWithRetry issues MoveResize and, when the policy allows, retries with a
// freshly fetched handle. It returns the handle of the last attempt.
func (o *Orchestrator) moveWithRetry(ctx context.Context, h platform.WindowHandle, target tiling.Rect, policy Policy) (platform.WindowHandle, int, error) {
	retries := 0
	if policy.RetryOnFailure && policy.RetryCount > 0 {
		retries = policy.RetryCount
	}

	var err error
	attempts := 0
	for {
		attempts++
		if err = o.backend.MoveResize(ctx, h, target); err == nil {
			return h, attempts, nil
		}
		if attempts > retries || ctx.Err() != nil {
			break
		}

		o.log.Debug("Move failed, retrying", "window", h, "attempt", attempts, "remaining", retries-attempts+1, "error", err)
		o.sleep(policy.RetryDelay)

		win, ferr := o.backend.FocusedWindow(ctx)
		switch {
		case ferr == nil:
			h = win.Handle
		case errors.Is(ferr, platform.ErrNoFocusedWindow):
			return h, attempts, ferr
		default:
			o.log.Debug("Could not refresh window handle", "error", ferr)
		}
	}
	return h, attempts, fmt.Errorf("%w after %d attempts: %v", ErrCommandFailed, attempts, err)
}

func (o *Orchestrator) verify(ctx context.Context, h platform.WindowHandle, target tiling.Rect) *Warning {
	actual, err := o.backend.WindowGeometry(ctx, h)
	if err != nil {
		o.log.Warn("Could not read window geometry", "window", h, "error", err)
		return &Warning{Kind: KindVerificationMismatch, Err: fmt.Errorf("read geometry: %w", err)}
	}
	if err := tiling.Verify(actual, target, o.tol); err != nil {
		o.log.Warn("Window geometry differs from target", "window", h, "error", err)
		return &Warning{Kind: KindVerificationMismatch, Err: err}
	}
	return nil
}

// defaultedWarnings reports spec and grid values the resolver will clamp.
func defaultedWarnings(spec tiling.PositionSpec, grid tiling.GridSpec) []Warning {
	var out []Warning
	add := func(format string, args ...any) {
		out = append(out, Warning{Kind: KindConfigurationDefaulted, Err: fmt.Errorf(format, args...)})
	}
	if grid.Rows < 1 || grid.Columns < 1 {
		add("grid %dx%d clamped to at least 1x1", grid.Rows, grid.Columns)
	}
	if grid.Gap < 0 {
		add("gap %d clamped to 0", grid.Gap)
	}
	if spec.ScaleCentered() {
		return out
	}
	if spec.X < 0 || spec.Y < 0 {
		add("origin %d,%d clamped to 0", spec.X, spec.Y)
	}
	if spec.Width < 1 || spec.Height < 1 {
		add("span %dx%d clamped to at least 1x1", spec.Width, spec.Height)
	}
	return out
}
