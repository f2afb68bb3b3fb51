package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

// Grid configures the virtual grid laid over the focused screen.
type Grid struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Gaps    int `yaml:"gaps"`
	// RespectReserved places the grid inside the space left by bars and panels.
	RespectReserved bool `yaml:"respect_reserved"`
}

// Spec converts the grid section into resolver input.
func (g Grid) Spec() tiling.GridSpec {
	return tiling.GridSpec{Rows: g.Rows, Columns: g.Columns, Gap: g.Gaps}
}

// Appearance configures user-facing feedback.
type Appearance struct {
	ShowNotifications      bool   `yaml:"show_notifications"`
	NotificationDurationMs int    `yaml:"notification_duration_ms"`
	NotifyCommand          string `yaml:"notify_command,omitempty"`
}

// Advanced holds retry, timing and logging knobs.
type Advanced struct {
	LogLevel          string `yaml:"log_level"`
	UseTiling         bool   `yaml:"use_tiling"`
	RetryOnFailure    bool   `yaml:"retry_on_failure"`
	RetryCount        int    `yaml:"retry_count"`
	RetryDelayMs      int    `yaml:"retry_delay_ms"`
	SettleMs          int    `yaml:"settle_ms"`
	ResetSettleMs     int    `yaml:"reset_settle_ms"`
	Verify            bool   `yaml:"verify"`
	TestStepDelayMs   int    `yaml:"test_step_delay_ms"`
	QueryTimeoutMs    int    `yaml:"query_timeout_ms"`
	DispatchTimeoutMs int    `yaml:"dispatch_timeout_ms"`
}

func (a Advanced) RetryDelay() time.Duration      { return millis(a.RetryDelayMs) }
func (a Advanced) Settle() time.Duration          { return millis(a.SettleMs) }
func (a Advanced) ResetSettle() time.Duration     { return millis(a.ResetSettleMs) }
func (a Advanced) TestStepDelay() time.Duration   { return millis(a.TestStepDelayMs) }
func (a Advanced) QueryTimeout() time.Duration    { return millis(a.QueryTimeoutMs) }
func (a Advanced) DispatchTimeout() time.Duration { return millis(a.DispatchTimeoutMs) }

// Position is one named placement inside a preset.
type Position struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Centered bool    `yaml:"centered,omitempty"`
	Scale    float64 `yaml:"scale"`
}

// Spec converts the position into resolver input.
func (p Position) Spec() tiling.PositionSpec {
	return tiling.PositionSpec{
		X:        p.X,
		Y:        p.Y,
		Width:    p.Width,
		Height:   p.Height,
		Centered: p.Centered,
		Scale:    p.Scale,
	}
}

// Preset maps position codes to placements.
type Preset map[string]Position

// Codes returns the preset's position codes in sorted order.
func (p Preset) Codes() []string {
	codes := make([]string, 0, len(p))
	for code := range p {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Config is the effective configuration snapshot. Treat it as read-only;
// DefaultConfig and the loader always hand out fresh copies.
type Config struct {
	Backend        string            `yaml:"backend"`
	PaletteBackend string            `yaml:"palette_backend"`
	DefaultPreset  string            `yaml:"default_preset"`
	Grid           Grid              `yaml:"grid"`
	Appearance     Appearance        `yaml:"appearance"`
	Advanced       Advanced          `yaml:"advanced"`
	Presets        map[string]Preset `yaml:"presets"`
}

// DefaultBuiltinPreset is the preset used when none is named.
const DefaultBuiltinPreset = "default"

// DefaultConfig returns the builtin configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend:        "auto",
		PaletteBackend: "auto",
		DefaultPreset:  DefaultBuiltinPreset,
		Grid: Grid{
			Rows:    3,
			Columns: 3,
			Gaps:    5,
		},
		Appearance: Appearance{
			ShowNotifications:      true,
			NotificationDurationMs: 2000,
		},
		Advanced: Advanced{
			LogLevel:          "info",
			UseTiling:         true,
			RetryOnFailure:    true,
			RetryCount:        3,
			RetryDelayMs:      200,
			SettleMs:          100,
			ResetSettleMs:     200,
			Verify:            false,
			TestStepDelayMs:   2000,
			QueryTimeoutMs:    3000,
			DispatchTimeoutMs: 1000,
		},
		Presets: BuiltinPresets(),
	}
}

func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "hyprgrid", "config.yaml"), nil
}

// PresetNames returns preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPreset returns the named preset. An empty name selects the default
// preset, falling back to the first preset by name.
func (c *Config) GetPreset(name string) (string, Preset, error) {
	if name != "" {
		p, ok := c.Presets[name]
		if !ok {
			return "", nil, fmt.Errorf("unknown preset %q", name)
		}
		return name, p, nil
	}
	if p, ok := c.Presets[c.DefaultPreset]; ok {
		return c.DefaultPreset, p, nil
	}
	names := c.PresetNames()
	if len(names) == 0 {
		return "", nil, fmt.Errorf("no presets configured")
	}
	return names[0], c.Presets[names[0]], nil
}

// Lookup returns the position stored under preset/code.
func (c *Config) Lookup(preset, code string) (Position, bool) {
	p, ok := c.Presets[preset]
	if !ok {
		return Position{}, false
	}
	pos, ok := p[code]
	return pos, ok
}

// ParseRef splits "preset:code". A bare code refers to the default preset.
func (c *Config) ParseRef(ref string) (preset, code string) {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return c.DefaultPreset, ref
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "hyprland", "x11":
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, hyprland, x11")}
	}
	switch c.PaletteBackend {
	case "auto", "rofi", "fuzzel", "dmenu", "wofi":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, fuzzel, dmenu, wofi")}
	}
	switch c.Advanced.LogLevel {
	case "debug", "info", "warning", "warn", "error":
	default:
		return &ValidationError{Path: "advanced.log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	if len(c.Presets) == 0 {
		return &ValidationError{Path: "presets", Err: fmt.Errorf("presets must not be empty")}
	}
	if c.DefaultPreset == "" {
		return &ValidationError{Path: "default_preset", Err: fmt.Errorf("default_preset is required")}
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return &ValidationError{Path: "default_preset", Err: fmt.Errorf("unknown preset %q", c.DefaultPreset)}
	}

	for _, name := range c.PresetNames() {
		preset := c.Presets[name]
		if len(preset) == 0 {
			return &ValidationError{Path: "presets." + name, Err: fmt.Errorf("preset has no positions")}
		}
		for _, code := range preset.Codes() {
			if strings.ContainsAny(code, ": ") || code == "" {
				return &ValidationError{Path: "presets." + name, Err: fmt.Errorf("invalid position code %q", code)}
			}
			if err := validatePosition(preset[code]); err != nil {
				return &ValidationError{Path: "presets." + name + "." + code, Err: err}
			}
		}
	}
	return nil
}

func validatePosition(p Position) error {
	if p.X < 0 || p.Y < 0 {
		return fmt.Errorf("x and y must be >= 0")
	}
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("width and height must be >= 1")
	}
	if p.Scale > 1 {
		return fmt.Errorf("scale must be in (0, 1]")
	}
	return nil
}

// Warnings lists positions that fall outside the configured grid. They are
// still usable; the resolver simply places them past the grid edge.
func (c *Config) Warnings() []string {
	var out []string
	for _, name := range c.PresetNames() {
		preset := c.Presets[name]
		for _, code := range preset.Codes() {
			p := preset[code]
			if p.Centered && p.Scale > 0 && p.Scale < 1 {
				continue
			}
			if p.X+p.Width > c.Grid.Columns || p.Y+p.Height > c.Grid.Rows {
				out = append(out, fmt.Sprintf("presets.%s.%s exceeds the %dx%d grid", name, code, c.Grid.Rows, c.Grid.Columns))
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Presets = make(map[string]Preset, len(c.Presets))
	for name, preset := range c.Presets {
		cp := make(Preset, len(preset))
		for code, pos := range preset {
			cp[code] = pos
		}
		out.Presets[name] = cp
	}
	return &out
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
