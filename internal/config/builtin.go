package config

// BuiltinPresets returns the built-in preset library.
//
// These are always available without being defined in YAML. User presets
// with the same name are merged over them position by position.
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		DefaultBuiltinPreset: {
			"full":   {X: 0, Y: 0, Width: 3, Height: 3, Scale: 1},
			"large":  {X: 0, Y: 0, Width: 3, Height: 3, Centered: true, Scale: 0.85},
			"medium": {X: 0, Y: 0, Width: 3, Height: 3, Centered: true, Scale: 0.65},
			"small":  {X: 0, Y: 0, Width: 3, Height: 3, Centered: true, Scale: 0.4},

			"left":   {X: 0, Y: 0, Width: 1, Height: 3, Scale: 1},
			"right":  {X: 2, Y: 0, Width: 1, Height: 3, Scale: 1},
			"top":    {X: 0, Y: 0, Width: 3, Height: 1, Scale: 1},
			"bottom": {X: 0, Y: 2, Width: 3, Height: 1, Scale: 1},

			"top-left":     {X: 0, Y: 0, Width: 1, Height: 1, Scale: 1},
			"top-right":    {X: 2, Y: 0, Width: 1, Height: 1, Scale: 1},
			"bottom-left":  {X: 0, Y: 2, Width: 1, Height: 1, Scale: 1},
			"bottom-right": {X: 2, Y: 2, Width: 1, Height: 1, Scale: 1},
		},
	}
}
