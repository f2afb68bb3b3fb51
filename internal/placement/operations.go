package placement

import (
	"context"
	"fmt"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

// ApplyPositionByCode positions the focused window at a preset position. An
// empty preset selects the configured default.
func (o *Orchestrator) ApplyPositionByCode(ctx context.Context, preset, code string) (Applied, error) {
	if preset == "" {
		preset = o.cfg.DefaultPreset
	}
	pos, ok := o.cfg.Lookup(preset, code)
	if !ok {
		return Applied{}, fmt.Errorf("%w: %q in preset %q", ErrPositionNotFound, code, preset)
	}
	o.log.Info("Applying position", "preset", preset, "code", code)
	return o.Apply(ctx, pos.Spec(), PolicyFrom(o.cfg))
}

// ApplyGridPosition positions the focused window at an explicit grid spec.
func (o *Orchestrator) ApplyGridPosition(ctx context.Context, spec tiling.PositionSpec) (Applied, error) {
	o.log.Info("Applying grid position", "x", spec.X, "y", spec.Y, "width", spec.Width,
		"height", spec.Height, "centered", spec.Centered, "scale", spec.Scale)
	return o.Apply(ctx, spec, PolicyFrom(o.cfg))
}

// ResetWindowState toggles the focused window's floating state twice and
// reloads compositor rules. A failed reload is only logged.
func (o *Orchestrator) ResetWindowState(ctx context.Context) error {
	o.log.Info("Resetting window state")
	win, err := o.backend.FocusedWindow(ctx)
	if err != nil {
		return err
	}
	if err := o.states.Reset(ctx, win.Handle); err != nil {
		return err
	}
	if err := o.backend.ReloadRules(ctx); err != nil {
		o.log.Warn("Could not reload compositor rules", "error", err)
	}
	return nil
}

// TestStep is the outcome of one position during TestAllPositions.
type TestStep struct {
	Preset  string
	Code    string
	Applied Applied
	Err     error
}

// TestAllPositions cycles the focused window through every position of a
// preset, pausing between steps. It reports false if any step failed.
func (o *Orchestrator) TestAllPositions(ctx context.Context, preset string) (bool, error) {
	return o.RunPresetTest(ctx, preset, nil)
}

// RunPresetTest is TestAllPositions with a per-step callback. An empty preset
// selects default_preset, falling back to the first preset by name.
func (o *Orchestrator) RunPresetTest(ctx context.Context, preset string, report func(TestStep)) (bool, error) {
	name, positions, err := o.cfg.GetPreset(preset)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPositionNotFound, err)
	}

	codes := positions.Codes()
	o.log.Info("Testing preset positions", "preset", name, "count", len(codes))
	policy := PolicyFrom(o.cfg)
	ok := true
	for i, code := range codes {
		if i > 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			o.sleep(o.cfg.Advanced.TestStepDelay())
		}

		applied, err := o.Apply(ctx, positions[code].Spec(), policy)
		if err != nil {
			ok = false
			o.log.Warn("Test position failed", "preset", name, "code", code, "error", err)
		}
		if report != nil {
			report(TestStep{Preset: name, Code: code, Applied: applied, Err: err})
		}
	}
	return ok, nil
}
