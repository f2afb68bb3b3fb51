// Package windowstate moves a window into floating mode before it is
// positioned, recovering from compositors that ignore the first toggle.
package windowstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/1broseidon/hyprgrid/internal/logging"
	"github.com/1broseidon/hyprgrid/internal/platform"
)

// ErrStateTransitionFailed means the window could not be made floating.
// Callers may still attempt to position it.
var ErrStateTransitionFailed = errors.New("window state transition failed")

const (
	DefaultSettle      = 100 * time.Millisecond
	DefaultResetSettle = 200 * time.Millisecond
)

// Controller reconciles a window's mode with what positioning needs.
type Controller struct {
	backend     platform.Backend
	log         *logging.Logger
	settle      time.Duration
	resetSettle time.Duration

	// sleep is replaced in tests.
	sleep func(time.Duration)
}

// Option customises a Controller.
type Option func(*Controller)

// WithSettle sets the wait after a single toggle and after each toggle of
// the reset sequence.
func WithSettle(settle, resetSettle time.Duration) Option {
	return func(c *Controller) {
		if settle >= 0 {
			c.settle = settle
		}
		if resetSettle >= 0 {
			c.resetSettle = resetSettle
		}
	}
}

// WithSleep replaces time.Sleep.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func New(backend platform.Backend, log *logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		backend:     backend,
		log:         log,
		settle:      DefaultSettle,
		resetSettle: DefaultResetSettle,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureFloating makes h floating. It toggles once, then runs up to retries
// toggle-twice reset rounds while the compositor still reports a non-floating
// mode. The window is never moved back to tiled.
func (c *Controller) EnsureFloating(ctx context.Context, h platform.WindowHandle, retries int) error {
	return c.ensureFloating(ctx, h, retries, "floating")
}

// EnsureTiled prepares a window on a shared workspace. Pixel-exact placement
// needs floating mode, so this applies the same guarantee as EnsureFloating.
func (c *Controller) EnsureTiled(ctx context.Context, h platform.WindowHandle, retries int) error {
	return c.ensureFloating(ctx, h, retries, "tiled-workspace")
}

func (c *Controller) ensureFloating(ctx context.Context, h platform.WindowHandle, retries int, strategy string) error {
	if retries < 0 {
		retries = 0
	}

	mode, err := c.backend.WindowMode(ctx, h)
	if err != nil {
		c.log.Warn("Could not read window mode, toggling anyway", "window", h, "error", err)
	}
	if err == nil && mode == platform.ModeFloating {
		c.log.Debug("Window already floating", "window", h, "strategy", strategy)
		return nil
	}

	c.log.Debug("Making window floating", "window", h, "mode", mode, "strategy", strategy)
	if err := c.backend.ToggleFloating(ctx, h); err != nil {
		return fmt.Errorf("%w: toggle floating: %v", ErrStateTransitionFailed, err)
	}
	c.sleep(c.settle)

	for attempt := 1; ; attempt++ {
		mode, err = c.backend.WindowMode(ctx, h)
		if err == nil && mode == platform.ModeFloating {
			return nil
		}
		if attempt > retries {
			break
		}

		c.log.Debug("Window not floating, resetting state", "window", h, "attempt", attempt, "mode", mode)
		if err := c.toggleTwice(ctx, h, c.resetSettle); err != nil {
			return fmt.Errorf("%w: reset attempt %d: %v", ErrStateTransitionFailed, attempt, err)
		}
	}

	if err != nil {
		return fmt.Errorf("%w: window %s mode unreadable after %d resets: %v", ErrStateTransitionFailed, h, retries, err)
	}
	return fmt.Errorf("%w: window %s still %s after %d resets", ErrStateTransitionFailed, h, mode, retries)
}

// Reset toggles floating twice, returning the window to its starting mode
// with compositor-side sizing state cleared.
func (c *Controller) Reset(ctx context.Context, h platform.WindowHandle) error {
	if err := c.toggleTwice(ctx, h, c.settle); err != nil {
		return fmt.Errorf("%w: %v", ErrStateTransitionFailed, err)
	}
	return nil
}

func (c *Controller) toggleTwice(ctx context.Context, h platform.WindowHandle, wait time.Duration) error {
	for i := 0; i < 2; i++ {
		if err := c.backend.ToggleFloating(ctx, h); err != nil {
			return err
		}
		c.sleep(wait)
	}
	return nil
}
