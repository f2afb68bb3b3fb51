package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawGrid struct {
	Rows            *int  `yaml:"rows"`
	Columns         *int  `yaml:"columns"`
	Gaps            *int  `yaml:"gaps"`
	RespectReserved *bool `yaml:"respect_reserved"`
}

type RawAppearance struct {
	ShowNotifications      *bool   `yaml:"show_notifications"`
	NotificationDurationMs *int    `yaml:"notification_duration_ms"`
	NotifyCommand          *string `yaml:"notify_command"`
}

type RawAdvanced struct {
	LogLevel          *string `yaml:"log_level"`
	UseTiling         *bool   `yaml:"use_tiling"`
	RetryOnFailure    *bool   `yaml:"retry_on_failure"`
	RetryCount        *int    `yaml:"retry_count"`
	RetryDelayMs      *int    `yaml:"retry_delay_ms"`
	SettleMs          *int    `yaml:"settle_ms"`
	ResetSettleMs     *int    `yaml:"reset_settle_ms"`
	Verify            *bool   `yaml:"verify"`
	TestStepDelayMs   *int    `yaml:"test_step_delay_ms"`
	QueryTimeoutMs    *int    `yaml:"query_timeout_ms"`
	DispatchTimeoutMs *int    `yaml:"dispatch_timeout_ms"`
}

type RawPosition struct {
	X        *int     `yaml:"x"`
	Y        *int     `yaml:"y"`
	Width    *int     `yaml:"width"`
	Height   *int     `yaml:"height"`
	Centered *bool    `yaml:"centered"`
	Scale    *float64 `yaml:"scale"`
}

type RawPreset map[string]RawPosition

// RawConfig is one YAML document before defaults are applied. Nil fields
// were not set by the file.
type RawConfig struct {
	Include        IncludeList          `yaml:"include"`
	Backend        *string              `yaml:"backend"`
	PaletteBackend *string              `yaml:"palette_backend"`
	DefaultPreset  *string              `yaml:"default_preset"`
	Grid           *RawGrid             `yaml:"grid"`
	Appearance     *RawAppearance       `yaml:"appearance"`
	Advanced       *RawAdvanced         `yaml:"advanced"`
	Presets        map[string]RawPreset `yaml:"presets"`
}

// merge returns c with every field set in overlay replaced.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	out.Backend = pick(c.Backend, overlay.Backend)
	out.PaletteBackend = pick(c.PaletteBackend, overlay.PaletteBackend)
	out.DefaultPreset = pick(c.DefaultPreset, overlay.DefaultPreset)

	if overlay.Grid != nil {
		base := RawGrid{}
		if c.Grid != nil {
			base = *c.Grid
		}
		merged := RawGrid{
			Rows:            pick(base.Rows, overlay.Grid.Rows),
			Columns:         pick(base.Columns, overlay.Grid.Columns),
			Gaps:            pick(base.Gaps, overlay.Grid.Gaps),
			RespectReserved: pick(base.RespectReserved, overlay.Grid.RespectReserved),
		}
		out.Grid = &merged
	}

	if overlay.Appearance != nil {
		base := RawAppearance{}
		if c.Appearance != nil {
			base = *c.Appearance
		}
		merged := RawAppearance{
			ShowNotifications:      pick(base.ShowNotifications, overlay.Appearance.ShowNotifications),
			NotificationDurationMs: pick(base.NotificationDurationMs, overlay.Appearance.NotificationDurationMs),
			NotifyCommand:          pick(base.NotifyCommand, overlay.Appearance.NotifyCommand),
		}
		out.Appearance = &merged
	}

	if overlay.Advanced != nil {
		base := RawAdvanced{}
		if c.Advanced != nil {
			base = *c.Advanced
		}
		o := overlay.Advanced
		merged := RawAdvanced{
			LogLevel:          pick(base.LogLevel, o.LogLevel),
			UseTiling:         pick(base.UseTiling, o.UseTiling),
			RetryOnFailure:    pick(base.RetryOnFailure, o.RetryOnFailure),
			RetryCount:        pick(base.RetryCount, o.RetryCount),
			RetryDelayMs:      pick(base.RetryDelayMs, o.RetryDelayMs),
			SettleMs:          pick(base.SettleMs, o.SettleMs),
			ResetSettleMs:     pick(base.ResetSettleMs, o.ResetSettleMs),
			Verify:            pick(base.Verify, o.Verify),
			TestStepDelayMs:   pick(base.TestStepDelayMs, o.TestStepDelayMs),
			QueryTimeoutMs:    pick(base.QueryTimeoutMs, o.QueryTimeoutMs),
			DispatchTimeoutMs: pick(base.DispatchTimeoutMs, o.DispatchTimeoutMs),
		}
		out.Advanced = &merged
	}

	if overlay.Presets != nil {
		out.Presets = make(map[string]RawPreset, len(c.Presets)+len(overlay.Presets))
		for name, preset := range c.Presets {
			out.Presets[name] = preset
		}
		for name, preset := range overlay.Presets {
			base := out.Presets[name]
			merged := make(RawPreset, len(base)+len(preset))
			for code, pos := range base {
				merged[code] = pos
			}
			for code, pos := range preset {
				merged[code] = mergeRawPosition(merged[code], pos)
			}
			out.Presets[name] = merged
		}
	}

	return out
}

func mergeRawPosition(base RawPosition, overlay RawPosition) RawPosition {
	return RawPosition{
		X:        pick(base.X, overlay.X),
		Y:        pick(base.Y, overlay.Y),
		Width:    pick(base.Width, overlay.Width),
		Height:   pick(base.Height, overlay.Height),
		Centered: pick(base.Centered, overlay.Centered),
		Scale:    pick(base.Scale, overlay.Scale),
	}
}

func pick[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}
