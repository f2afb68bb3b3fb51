package tiling

import "fmt"

// Tolerance bounds how far an observed rect may drift from its target and
// still count as placed. Compositors round to their own layout units and
// some clients enforce size increments.
type Tolerance struct {
	Position int
	Size     int
}

// DefaultTolerance is ±5 px on position and ±10 px on size.
var DefaultTolerance = Tolerance{Position: 5, Size: 10}

// MismatchError describes an observed geometry outside tolerance.
type MismatchError struct {
	Target Rect
	Actual Rect
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"window at %d,%d %dx%d, expected %d,%d %dx%d",
		e.Actual.X, e.Actual.Y, e.Actual.Width, e.Actual.Height,
		e.Target.X, e.Target.Y, e.Target.Width, e.Target.Height,
	)
}

// Within reports whether actual matches target inside tol.
func Within(actual, target Rect, tol Tolerance) bool {
	return absDiff(actual.X, target.X) <= tol.Position &&
		absDiff(actual.Y, target.Y) <= tol.Position &&
		absDiff(actual.Width, target.Width) <= tol.Size &&
		absDiff(actual.Height, target.Height) <= tol.Size
}

// Verify returns a *MismatchError when actual is outside tol of target.
func Verify(actual, target Rect, tol Tolerance) error {
	if Within(actual, target, tol) {
		return nil
	}
	return &MismatchError{Target: target, Actual: actual}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
