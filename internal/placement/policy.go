package placement

import (
	"time"

	"github.com/1broseidon/hyprgrid/internal/config"
)

// Policy controls one positioning run.
type Policy struct {
	// UseTilingHeuristic selects the tiled-workspace strategy when the
	// active workspace holds more than one window.
	UseTilingHeuristic bool
	RetryOnFailure     bool
	RetryCount         int
	RetryDelay         time.Duration
	Notify             bool
	NotifyTimeout      time.Duration
	// Verify reads the geometry back after a floating placement. The
	// tiled-workspace strategy always verifies.
	Verify          bool
	RespectReserved bool
}

// PolicyFrom derives the positioning policy from a config snapshot.
func PolicyFrom(cfg *config.Config) Policy {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := cfg.Advanced
	return Policy{
		UseTilingHeuristic: a.UseTiling,
		RetryOnFailure:     a.RetryOnFailure,
		RetryCount:         a.RetryCount,
		RetryDelay:         a.RetryDelay(),
		Notify:             cfg.Appearance.ShowNotifications,
		NotifyTimeout:      time.Duration(cfg.Appearance.NotificationDurationMs) * time.Millisecond,
		Verify:             a.Verify,
		RespectReserved:    cfg.Grid.RespectReserved,
	}
}

// DefaultPolicy is the policy of the builtin configuration.
func DefaultPolicy() Policy {
	return PolicyFrom(config.DefaultConfig())
}
