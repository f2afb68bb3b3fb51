package windowstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/hyprgrid/internal/logging"
	"github.com/1broseidon/hyprgrid/internal/platform"
	"github.com/1broseidon/hyprgrid/internal/platform/platformtest"
)

func newController(f *platformtest.Fake) (*Controller, *[]time.Duration) {
	var slept []time.Duration
	c := New(f, logging.Nop(), WithSleep(func(d time.Duration) { slept = append(slept, d) }))
	return c, &slept
}

func TestEnsureFloating_AlreadyFloating(t *testing.T) {
	f := platformtest.New()
	f.Mode = platform.ModeFloating
	c, slept := newController(f)

	if err := c.EnsureFloating(context.Background(), "0xabc", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Toggles != 0 {
		t.Fatalf("expected no toggles, got %d", f.Toggles)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected no waits, got %v", *slept)
	}
}

func TestEnsureFloating_SingleToggle(t *testing.T) {
	f := platformtest.New()
	c, slept := newController(f)

	if err := c.EnsureFloating(context.Background(), "0xabc", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Toggles != 1 {
		t.Fatalf("expected 1 toggle, got %d", f.Toggles)
	}
	if f.Mode != platform.ModeFloating {
		t.Fatalf("expected floating mode, got %v", f.Mode)
	}
	if len(*slept) != 1 || (*slept)[0] != DefaultSettle {
		t.Fatalf("expected one %v settle, got %v", DefaultSettle, *slept)
	}
}

func TestEnsureFloating_StuckWindowIsBounded(t *testing.T) {
	for _, retries := range []int{0, 1, 3, 7} {
		f := platformtest.New()
		f.Stuck = true
		c, slept := newController(f)

		err := c.EnsureFloating(context.Background(), "0xabc", retries)
		if !errors.Is(err, ErrStateTransitionFailed) {
			t.Fatalf("retries=%d: expected ErrStateTransitionFailed, got %v", retries, err)
		}

		// One single toggle, then one toggle pair per reset round.
		if want := 1 + 2*retries; f.Toggles != want {
			t.Fatalf("retries=%d: expected %d toggles, got %d", retries, want, f.Toggles)
		}
		for i, d := range (*slept)[1:] {
			if d != DefaultResetSettle {
				t.Fatalf("retries=%d: reset wait %d was %v, want %v", retries, i, d, DefaultResetSettle)
			}
		}
	}
}

func TestEnsureFloating_NegativeRetriesTreatedAsZero(t *testing.T) {
	f := platformtest.New()
	f.Stuck = true
	c, _ := newController(f)

	if err := c.EnsureFloating(context.Background(), "0xabc", -4); !errors.Is(err, ErrStateTransitionFailed) {
		t.Fatalf("expected ErrStateTransitionFailed, got %v", err)
	}
	if f.Toggles != 1 {
		t.Fatalf("expected a single toggle, got %d", f.Toggles)
	}
}

// flipAfter reports tiled until the window has been toggled n times.
type flipAfter struct {
	*platformtest.Fake
	n int
}

func (f *flipAfter) WindowMode(ctx context.Context, h platform.WindowHandle) (platform.WindowMode, error) {
	if f.Toggles >= f.n {
		return platform.ModeFloating, nil
	}
	return platform.ModeTiled, nil
}

func TestEnsureFloating_RecoversDuringReset(t *testing.T) {
	base := platformtest.New()
	base.Stuck = true
	f := &flipAfter{Fake: base, n: 3}

	c := New(f, logging.Nop(), WithSleep(func(time.Duration) {}))
	if err := c.EnsureFloating(context.Background(), "0xabc", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.Toggles != 3 {
		t.Fatalf("expected recovery after first reset pair (3 toggles), got %d", base.Toggles)
	}
}

func TestEnsureFloating_ToggleFailure(t *testing.T) {
	f := platformtest.New()
	f.ToggleErr = errors.New("dispatch failed")
	c, _ := newController(f)

	err := c.EnsureFloating(context.Background(), "0xabc", 3)
	if !errors.Is(err, ErrStateTransitionFailed) {
		t.Fatalf("expected ErrStateTransitionFailed, got %v", err)
	}
	if f.Toggles != 1 {
		t.Fatalf("expected to stop after the failed toggle, got %d toggles", f.Toggles)
	}
}

func TestEnsureFloating_UnreadableModeStillToggles(t *testing.T) {
	f := platformtest.New()
	f.ModeErr = errors.New("timeout")
	c, _ := newController(f)

	err := c.EnsureFloating(context.Background(), "0xabc", 1)
	if !errors.Is(err, ErrStateTransitionFailed) {
		t.Fatalf("expected ErrStateTransitionFailed, got %v", err)
	}
	if f.Toggles != 3 {
		t.Fatalf("expected 3 toggles, got %d", f.Toggles)
	}
}

func TestEnsureTiled_KeepsFloatingGuarantee(t *testing.T) {
	f := platformtest.New()
	c, _ := newController(f)

	if err := c.EnsureTiled(context.Background(), "0xabc", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Mode != platform.ModeFloating {
		t.Fatalf("expected window to end floating, got %v", f.Mode)
	}
}

func TestReset_TogglesTwice(t *testing.T) {
	f := platformtest.New()
	c, slept := newController(f)

	if err := c.Reset(context.Background(), "0xabc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Toggles != 2 || f.Mode != platform.ModeTiled {
		t.Fatalf("expected two toggles ending tiled, got %d toggles mode %v", f.Toggles, f.Mode)
	}
	if len(*slept) != 2 || (*slept)[0] != DefaultSettle {
		t.Fatalf("unexpected waits %v", *slept)
	}
}
