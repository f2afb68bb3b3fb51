package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndHasBuiltinPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if _, ok := cfg.Presets[DefaultBuiltinPreset]; !ok {
		t.Fatalf("expected builtin %q to exist in presets", DefaultBuiltinPreset)
	}
	if got := cfg.Grid.Spec(); got != (tiling.GridSpec{Rows: 3, Columns: 3, Gap: 5}) {
		t.Fatalf("unexpected default grid %+v", got)
	}
	if warnings := cfg.Warnings(); len(warnings) != 0 {
		t.Fatalf("expected builtin presets to fit the default grid, got %v", warnings)
	}
}

func TestDefaultConfig_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultConfig()
	a.Presets[DefaultBuiltinPreset]["left"] = Position{X: 9, Width: 1, Height: 1}
	a.Grid.Rows = 9

	b := DefaultConfig()
	if b.Grid.Rows != 3 {
		t.Fatalf("mutation leaked into defaults: rows=%d", b.Grid.Rows)
	}
	if b.Presets[DefaultBuiltinPreset]["left"].X != 0 {
		t.Fatalf("mutation leaked into builtin presets")
	}
}

func TestClone_DeepCopiesPresets(t *testing.T) {
	a := DefaultConfig()
	b := a.Clone()
	b.Presets[DefaultBuiltinPreset]["full"] = Position{Width: 2, Height: 2}
	if a.Presets[DefaultBuiltinPreset]["full"].Width != 3 {
		t.Fatalf("clone shares preset maps with its source")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(res.Config, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultPreset != DefaultBuiltinPreset {
		t.Fatalf("expected default_preset %q, got %q", DefaultBuiltinPreset, res.Config.DefaultPreset)
	}
}

func TestLoadFromPath_OverridesSections(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", strings.Join([]string{
		"backend: hyprland",
		"grid:",
		"  rows: 2",
		"  columns: 4",
		"appearance:",
		"  show_notifications: false",
		"advanced:",
		"  retry_count: 5",
		"  verify: true",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != "hyprland" || cfg.Grid.Rows != 2 || cfg.Grid.Columns != 4 || cfg.Grid.Gaps != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Appearance.ShowNotifications || cfg.Appearance.NotificationDurationMs != 2000 {
		t.Fatalf("unexpected appearance %+v", cfg.Appearance)
	}
	if cfg.Advanced.RetryCount != 5 || !cfg.Advanced.Verify || cfg.Advanced.RetryDelayMs != 200 {
		t.Fatalf("unexpected advanced %+v", cfg.Advanced)
	}
}

func TestLoadFromPath_InvalidNumbersAreDefaulted(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", strings.Join([]string{
		"grid:",
		"  rows: 0",
		"  gaps: -2",
		"advanced:",
		"  retry_count: -1",
		"  query_timeout_ms: 0",
		"presets:",
		"  default:",
		"    small:",
		"      scale: -0.5",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Grid.Rows != 3 || cfg.Grid.Gaps != 5 || cfg.Advanced.RetryCount != 3 || cfg.Advanced.QueryTimeoutMs != 3000 {
		t.Fatalf("expected defaults to be substituted, got grid=%+v advanced=%+v", cfg.Grid, cfg.Advanced)
	}
	if got := cfg.Presets["default"]["small"].Scale; got != 1 {
		t.Fatalf("expected scale defaulted to 1, got %v", got)
	}

	want := []string{
		"advanced.query_timeout_ms",
		"advanced.retry_count",
		"grid.gaps",
		"grid.rows",
		"presets.default.small.scale",
	}
	if !reflect.DeepEqual(res.Defaulted, want) {
		t.Fatalf("expected defaulted %v, got %v", want, res.Defaulted)
	}
}

func TestLoadFromPath_PresetsMergeOverBuiltins(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", strings.Join([]string{
		"presets:",
		"  default:",
		"    left:",
		"      width: 2",
		"    center:",
		"      x: 1",
		"      y: 1",
		"  coding:",
		"    editor: {x: 0, y: 0, width: 2, height: 3}",
		"    term: {x: 2, y: 0, width: 1, height: 3}",
		"default_preset: coding",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config

	left, ok := cfg.Lookup("default", "left")
	if !ok || left != (Position{X: 0, Y: 0, Width: 2, Height: 3, Scale: 1}) {
		t.Fatalf("expected builtin left widened to 2, got %+v (ok=%v)", left, ok)
	}
	center, ok := cfg.Lookup("default", "center")
	if !ok || center != (Position{X: 1, Y: 1, Width: 1, Height: 1, Scale: 1}) {
		t.Fatalf("expected new position with defaults, got %+v", center)
	}
	if _, ok := cfg.Lookup("default", "bottom-right"); !ok {
		t.Fatalf("expected untouched builtin positions to survive")
	}

	name, preset, err := cfg.GetPreset("")
	if err != nil || name != "coding" || len(preset) != 2 {
		t.Fatalf("expected default preset coding, got %q %v (err=%v)", name, preset, err)
	}
	if got := preset.Codes(); !reflect.DeepEqual(got, []string{"editor", "term"}) {
		t.Fatalf("unexpected codes %v", got)
	}
	if res.PresetBases["coding"] != "" || res.PresetBases["default"] != "default" {
		t.Fatalf("unexpected preset bases %v", res.PresetBases)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "backend: wayfire\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Path != "backend" || verr.Source.Kind != SourceFile || verr.Source.Line != 1 {
		t.Fatalf("unexpected validation error %+v", verr)
	}
	if !strings.Contains(err.Error(), path+":1:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_UnknownDefaultPresetErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "default_preset: missing\n")
	if _, err := LoadFromPath(path); err == nil || !strings.Contains(err.Error(), "default_preset") {
		t.Fatalf("expected default_preset error, got %v", err)
	}
}

func TestLoadFromPath_InvalidPositionErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "presets:\n  default:\n    left: {width: 0}\n"},
		{"negative x", "presets:\n  default:\n    left: {x: -1}\n"},
		{"scale above one", "presets:\n  default:\n    small: {scale: 1.5}\n"},
		{"colon in code", "presets:\n  default:\n    \"a:b\": {x: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.yaml)
			_, err := LoadFromPath(path)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !strings.HasPrefix(verr.Path, "presets.default") {
				t.Fatalf("unexpected path %q", verr.Path)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.d/10-base.yaml", "grid:\n  gaps: 8\n  rows: 4\n")
	writeConfig(t, dir, "config.d/20-override.yaml", "grid:\n  gaps: 10\n")
	path := writeConfig(t, dir, "config.yaml", "include: config.d\ngrid:\n  columns: 2\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g := res.Config.Grid
	if g.Gaps != 10 || g.Rows != 4 || g.Columns != 2 {
		t.Fatalf("unexpected merged grid %+v", g)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}

	_, src, err := Explain(res, "grid.gaps")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceFile || filepath.Base(src.File) != "20-override.yaml" {
		t.Fatalf("expected gaps sourced from 20-override.yaml, got %+v", src)
	}
}

func TestLoadFromPath_IncludeCycleErrors(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestExplain_Sources(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "presets:\n  mine:\n    a: {x: 1}\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		path     string
		value    any
		kind     SourceKind
		baseName string
	}{
		{"grid.rows", 3, SourceDefault, "defaults"},
		{"advanced.retry_delay_ms", 200, SourceDefault, "defaults"},
		{"presets.default.small.scale", 0.4, SourceBuiltin, "default"},
		{"presets.mine.a.x", 1, SourceFile, ""},
		{"presets.mine.a.width", 1, SourceDefault, "position defaults"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			val, src, err := Explain(res, tt.path)
			if err != nil {
				t.Fatalf("explain: %v", err)
			}
			if val != tt.value {
				t.Fatalf("expected %v, got %#v", tt.value, val)
			}
			if src.Kind != tt.kind || (tt.baseName != "" && src.Name != tt.baseName) {
				t.Fatalf("unexpected source %+v", src)
			}
		})
	}

	for _, bad := range []string{"", "grid.rows.extra", "nope", "presets.missing", "presets.default.nope"} {
		if _, _, err := Explain(res, bad); err == nil {
			t.Fatalf("expected error for path %q", bad)
		}
	}
}

func TestParseRef(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		ref, preset, code string
	}{
		{"default:left", "default", "left"},
		{"left", "default", "left"},
		{" coding:term ", "coding", "term"},
	}
	for _, tt := range tests {
		preset, code := cfg.ParseRef(tt.ref)
		if preset != tt.preset || code != tt.code {
			t.Fatalf("ParseRef(%q) = %q,%q want %q,%q", tt.ref, preset, code, tt.preset, tt.code)
		}
	}
}

func TestWarnings_PositionOutsideGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Columns = 2
	warnings := cfg.Warnings()
	if len(warnings) == 0 {
		t.Fatalf("expected warnings for positions beyond a 2-column grid")
	}
	for _, w := range warnings {
		if strings.Contains(w, ".large") || strings.Contains(w, ".small") {
			t.Fatalf("centered positions should not warn: %s", w)
		}
	}
}
