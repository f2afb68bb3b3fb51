package tiling

import "math"

// Rect represents a window position and size in compositor pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rect cannot be used as a placement target.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Insets are reserved pixels on each screen edge (bars, panels, docks).
type Insets struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Screen is the geometry of the screen a window is being placed on.
type Screen struct {
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	Scale    float64
	Reserved Insets
}

// GridSpec describes the virtual grid laid over a screen.
type GridSpec struct {
	Rows    int
	Columns int
	Gap     int
}

// PositionSpec addresses a cell span in a grid, or a centered scaled box.
type PositionSpec struct {
	X        int
	Y        int
	Width    int
	Height   int
	Centered bool
	Scale    float64
}

// DefaultScale is used whenever a PositionSpec carries a non-positive scale.
const DefaultScale = 1.0

// EffectiveScale returns the scale Resolve will use for this spec.
func (p PositionSpec) EffectiveScale() float64 {
	if p.Scale <= 0 {
		return DefaultScale
	}
	return p.Scale
}

// ScaleCentered reports whether the spec resolves as a centered box
// instead of by grid cells.
func (p PositionSpec) ScaleCentered() bool {
	s := p.EffectiveScale()
	return p.Centered && s > 0 && s < 1
}

// Resolve maps a position spec onto the screen. It never fails: out of range
// inputs are clamped to the nearest usable value.
func Resolve(spec PositionSpec, grid GridSpec, screen Screen) Rect {
	if spec.ScaleCentered() {
		return resolveCentered(spec.EffectiveScale(), screen)
	}

	rows := atLeast(grid.Rows, 1)
	cols := atLeast(grid.Columns, 1)
	gap := atLeast(grid.Gap, 0)

	col := atLeast(spec.X, 0)
	row := atLeast(spec.Y, 0)
	spanW := atLeast(spec.Width, 1)
	spanH := atLeast(spec.Height, 1)

	// One gap before each column and one after the last.
	cellWidth := (screen.Width - (cols+1)*gap) / cols
	cellHeight := (screen.Height - (rows+1)*gap) / rows

	return Rect{
		X:      screen.X + gap + col*(cellWidth+gap),
		Y:      screen.Y + gap + row*(cellHeight+gap),
		Width:  spanW*cellWidth + (spanW-1)*gap,
		Height: spanH*cellHeight + (spanH-1)*gap,
	}
}

func resolveCentered(scale float64, screen Screen) Rect {
	width := int(math.Round(float64(screen.Width) * scale))
	height := int(math.Round(float64(screen.Height) * scale))
	return Rect{
		X:      screen.X + (screen.Width-width)/2,
		Y:      screen.Y + (screen.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

// CellSize returns the size of a single grid cell on the screen.
func CellSize(grid GridSpec, screen Screen) (width, height int) {
	r := Resolve(PositionSpec{Width: 1, Height: 1}, grid, screen)
	return r.Width, r.Height
}

// UsableArea shrinks the screen by its reserved insets.
func UsableArea(screen Screen) Screen {
	adjusted := screen
	adjusted.X += screen.Reserved.Left
	adjusted.Y += screen.Reserved.Top
	adjusted.Width -= screen.Reserved.Left + screen.Reserved.Right
	adjusted.Height -= screen.Reserved.Top + screen.Reserved.Bottom
	adjusted.Reserved = Insets{}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}
	return adjusted
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
