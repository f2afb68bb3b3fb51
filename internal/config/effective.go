package config

import (
	"fmt"
	"sort"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildInfo records how the effective config was assembled.
type BuildInfo struct {
	// PresetBases maps preset name to the builtin preset it extends ("" for
	// presets defined only in YAML).
	PresetBases map[string]string
	// Defaulted lists YAML paths whose invalid values were replaced by defaults.
	Defaulted []string
}

// BuildEffectiveConfig applies raw over DefaultConfig. Invalid numeric
// policy values fall back to their defaults and are reported in
// BuildInfo.Defaulted instead of failing the load.
func BuildEffectiveConfig(raw RawConfig) (*Config, *BuildInfo, error) {
	cfg := DefaultConfig()
	defaults := DefaultConfig()
	info := &BuildInfo{PresetBases: map[string]string{}}
	for name := range cfg.Presets {
		info.PresetBases[name] = name
	}

	if raw.Backend != nil {
		cfg.Backend = strings.ToLower(strings.TrimSpace(*raw.Backend))
	}
	if raw.PaletteBackend != nil {
		cfg.PaletteBackend = strings.ToLower(strings.TrimSpace(*raw.PaletteBackend))
	}
	if raw.DefaultPreset != nil {
		cfg.DefaultPreset = strings.TrimSpace(*raw.DefaultPreset)
	}

	if g := raw.Grid; g != nil {
		cfg.Grid.Rows = positiveOr(g.Rows, defaults.Grid.Rows, "grid.rows", info)
		cfg.Grid.Columns = positiveOr(g.Columns, defaults.Grid.Columns, "grid.columns", info)
		cfg.Grid.Gaps = nonNegativeOr(g.Gaps, defaults.Grid.Gaps, "grid.gaps", info)
		if g.RespectReserved != nil {
			cfg.Grid.RespectReserved = *g.RespectReserved
		}
	}

	if a := raw.Appearance; a != nil {
		if a.ShowNotifications != nil {
			cfg.Appearance.ShowNotifications = *a.ShowNotifications
		}
		cfg.Appearance.NotificationDurationMs = positiveOr(a.NotificationDurationMs,
			defaults.Appearance.NotificationDurationMs, "appearance.notification_duration_ms", info)
		if a.NotifyCommand != nil {
			cfg.Appearance.NotifyCommand = strings.TrimSpace(*a.NotifyCommand)
		}
	}

	if a := raw.Advanced; a != nil {
		d := defaults.Advanced
		if a.LogLevel != nil {
			cfg.Advanced.LogLevel = strings.ToLower(strings.TrimSpace(*a.LogLevel))
		}
		if a.UseTiling != nil {
			cfg.Advanced.UseTiling = *a.UseTiling
		}
		if a.RetryOnFailure != nil {
			cfg.Advanced.RetryOnFailure = *a.RetryOnFailure
		}
		if a.Verify != nil {
			cfg.Advanced.Verify = *a.Verify
		}
		cfg.Advanced.RetryCount = nonNegativeOr(a.RetryCount, d.RetryCount, "advanced.retry_count", info)
		cfg.Advanced.RetryDelayMs = nonNegativeOr(a.RetryDelayMs, d.RetryDelayMs, "advanced.retry_delay_ms", info)
		cfg.Advanced.SettleMs = nonNegativeOr(a.SettleMs, d.SettleMs, "advanced.settle_ms", info)
		cfg.Advanced.ResetSettleMs = nonNegativeOr(a.ResetSettleMs, d.ResetSettleMs, "advanced.reset_settle_ms", info)
		cfg.Advanced.TestStepDelayMs = nonNegativeOr(a.TestStepDelayMs, d.TestStepDelayMs, "advanced.test_step_delay_ms", info)
		cfg.Advanced.QueryTimeoutMs = positiveOr(a.QueryTimeoutMs, d.QueryTimeoutMs, "advanced.query_timeout_ms", info)
		cfg.Advanced.DispatchTimeoutMs = positiveOr(a.DispatchTimeoutMs, d.DispatchTimeoutMs, "advanced.dispatch_timeout_ms", info)
	}

	for name, rawPreset := range raw.Presets {
		if strings.TrimSpace(name) == "" {
			return nil, nil, &ValidationError{Path: "presets", Err: fmt.Errorf("preset name must not be empty")}
		}
		preset, ok := cfg.Presets[name]
		if !ok {
			preset = Preset{}
			cfg.Presets[name] = preset
			info.PresetBases[name] = ""
		}
		for code, rp := range rawPreset {
			pos, ok := preset[code]
			if !ok {
				pos = Position{Width: 1, Height: 1, Scale: 1}
			}
			preset[code] = applyRawPosition(pos, rp, "presets."+name+"."+code, info)
		}
	}

	sort.Strings(info.Defaulted)
	return cfg, info, nil
}

func applyRawPosition(pos Position, rp RawPosition, path string, info *BuildInfo) Position {
	if rp.X != nil {
		pos.X = *rp.X
	}
	if rp.Y != nil {
		pos.Y = *rp.Y
	}
	if rp.Width != nil {
		pos.Width = *rp.Width
	}
	if rp.Height != nil {
		pos.Height = *rp.Height
	}
	if rp.Centered != nil {
		pos.Centered = *rp.Centered
	}
	if rp.Scale != nil {
		pos.Scale = *rp.Scale
		if pos.Scale <= 0 {
			pos.Scale = 1
			info.Defaulted = append(info.Defaulted, path+".scale")
		}
	}
	return pos
}

func positiveOr(v *int, def int, path string, info *BuildInfo) int {
	if v == nil {
		return def
	}
	if *v <= 0 {
		info.Defaulted = append(info.Defaulted, path)
		return def
	}
	return *v
}

func nonNegativeOr(v *int, def int, path string, info *BuildInfo) int {
	if v == nil {
		return def
	}
	if *v < 0 {
		info.Defaulted = append(info.Defaulted, path)
		return def
	}
	return *v
}
