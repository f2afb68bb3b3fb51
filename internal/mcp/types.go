package mcp

// ApplyPositionInput is the input for the apply_position tool.
type ApplyPositionInput struct {
	Ref    string `json:"ref,omitempty" jsonschema:"Position reference as preset:code, or a bare code from the default preset (e.g. default:left, top-right)"`
	Preset string `json:"preset,omitempty" jsonschema:"Preset name. Ignored when ref is set; defaults to the configured default_preset."`
	Code   string `json:"code,omitempty" jsonschema:"Position code inside the preset. Ignored when ref is set."`
}

// ApplyGridPositionInput is the input for the apply_grid_position tool.
type ApplyGridPositionInput struct {
	X        int     `json:"x" jsonschema:"Zero-based grid column of the top-left cell"`
	Y        int     `json:"y" jsonschema:"Zero-based grid row of the top-left cell"`
	Width    int     `json:"width" jsonschema:"Number of columns spanned (at least 1)"`
	Height   int     `json:"height" jsonschema:"Number of rows spanned (at least 1)"`
	Centered bool    `json:"centered,omitempty" jsonschema:"Ignore the grid and center a box of scale x screen size"`
	Scale    float64 `json:"scale,omitempty" jsonschema:"Fraction of the screen used when centered; values <= 0 mean 1.0"`
}

// WarningInfo describes a non-fatal problem met while positioning.
type WarningInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AppliedOutput is the output of the positioning tools.
type AppliedOutput struct {
	Strategy string        `json:"strategy"`
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Window   string        `json:"window"`
	Attempts int           `json:"attempts"`
	Verified bool          `json:"verified"`
	Warnings []WarningInfo `json:"warnings,omitempty"`
}

// ResetWindowStateInput is the input for the reset_window_state tool.
type ResetWindowStateInput struct{}

// ResetWindowStateOutput is the output for the reset_window_state tool.
type ResetWindowStateOutput struct {
	Reset bool `json:"reset"`
}

// ListPresetsInput is the input for the list_presets tool.
type ListPresetsInput struct {
	Preset string `json:"preset,omitempty" jsonschema:"Only list this preset"`
}

// PositionInfo describes one preset position.
type PositionInfo struct {
	Code     string  `json:"code"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Centered bool    `json:"centered,omitempty"`
	Scale    float64 `json:"scale"`
}

// PresetInfo describes a preset and its positions in code order.
type PresetInfo struct {
	Name      string         `json:"name"`
	Default   bool           `json:"default"`
	Positions []PositionInfo `json:"positions"`
}

// ListPresetsOutput is the output for the list_presets tool.
type ListPresetsOutput struct {
	Rows          int          `json:"rows"`
	Columns       int          `json:"columns"`
	Gaps          int          `json:"gaps"`
	DefaultPreset string       `json:"default_preset"`
	Presets       []PresetInfo `json:"presets"`
}

// TestAllPositionsInput is the input for the test_all_positions tool.
type TestAllPositionsInput struct {
	Preset string `json:"preset,omitempty" jsonschema:"Preset to cycle through (default: default_preset)"`
}

// TestStepInfo is the outcome of one position in a test run.
type TestStepInfo struct {
	Code     string `json:"code"`
	OK       bool   `json:"ok"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error,omitempty"`
}

// TestAllPositionsOutput is the output for the test_all_positions tool.
type TestAllPositionsOutput struct {
	Preset string         `json:"preset"`
	OK     bool           `json:"ok"`
	Steps  []TestStepInfo `json:"steps"`
}
