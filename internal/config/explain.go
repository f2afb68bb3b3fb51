package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	backend
//	palette_backend
//	default_preset
//	grid, grid.rows, grid.columns, grid.gaps, grid.respect_reserved
//	appearance.<field>
//	advanced.<field>
//	presets
//	presets.<name>
//	presets.<name>.<code>
//	presets.<name>.<code>.<x|y|width|height|centered|scale>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	parts := strings.Split(path, ".")
	if parts[0] == "presets" && len(parts) >= 2 {
		if base := res.PresetBases[parts[1]]; base != "" {
			return value, Source{Kind: SourceBuiltin, Name: base}, nil
		}
		// Position fields left unset in YAML take position defaults.
		return value, Source{Kind: SourceDefault, Name: "position defaults"}, nil
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	leaf := func(fields map[string]any, whole any) (any, error) {
		switch len(parts) {
		case 1:
			return whole, nil
		case 2:
			if v, ok := fields[parts[1]]; ok {
				return v, nil
			}
		}
		return nil, unknown
	}

	switch parts[0] {
	case "backend", "palette_backend", "default_preset":
		if len(parts) != 1 {
			return nil, unknown
		}
		return map[string]any{
			"backend":         cfg.Backend,
			"palette_backend": cfg.PaletteBackend,
			"default_preset":  cfg.DefaultPreset,
		}[parts[0]], nil
	case "grid":
		g := cfg.Grid
		return leaf(map[string]any{
			"rows":             g.Rows,
			"columns":          g.Columns,
			"gaps":             g.Gaps,
			"respect_reserved": g.RespectReserved,
		}, g)
	case "appearance":
		a := cfg.Appearance
		return leaf(map[string]any{
			"show_notifications":       a.ShowNotifications,
			"notification_duration_ms": a.NotificationDurationMs,
			"notify_command":           a.NotifyCommand,
		}, a)
	case "advanced":
		a := cfg.Advanced
		return leaf(map[string]any{
			"log_level":           a.LogLevel,
			"use_tiling":          a.UseTiling,
			"retry_on_failure":    a.RetryOnFailure,
			"retry_count":         a.RetryCount,
			"retry_delay_ms":      a.RetryDelayMs,
			"settle_ms":           a.SettleMs,
			"reset_settle_ms":     a.ResetSettleMs,
			"verify":              a.Verify,
			"test_step_delay_ms":  a.TestStepDelayMs,
			"query_timeout_ms":    a.QueryTimeoutMs,
			"dispatch_timeout_ms": a.DispatchTimeoutMs,
		}, a)
	case "presets":
		return lookupPreset(cfg, parts, unknown)
	default:
		return nil, unknown
	}
}

func lookupPreset(cfg *Config, parts []string, unknown error) (any, error) {
	if len(parts) == 1 {
		return cfg.Presets, nil
	}
	preset, ok := cfg.Presets[parts[1]]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", parts[1])
	}
	if len(parts) == 2 {
		return preset, nil
	}
	pos, ok := preset[parts[2]]
	if !ok {
		return nil, fmt.Errorf("unknown position %q in preset %q", parts[2], parts[1])
	}
	if len(parts) == 3 {
		return pos, nil
	}
	if len(parts) != 4 {
		return nil, unknown
	}
	switch parts[3] {
	case "x":
		return pos.X, nil
	case "y":
		return pos.Y, nil
	case "width":
		return pos.Width, nil
	case "height":
		return pos.Height, nil
	case "centered":
		return pos.Centered, nil
	case "scale":
		return pos.Scale, nil
	default:
		return nil, unknown
	}
}
