package placement

import (
	"errors"
	"fmt"

	"github.com/1broseidon/hyprgrid/internal/platform"
	"github.com/1broseidon/hyprgrid/internal/tiling"
	"github.com/1broseidon/hyprgrid/internal/windowstate"
)

var (
	// ErrCommandFailed is returned when MoveResize kept failing after all retries.
	ErrCommandFailed = errors.New("positioning command failed")
	// ErrInvalidGeometry is returned when a spec resolves to an empty rect.
	ErrInvalidGeometry = errors.New("resolved geometry is empty")
	// ErrPositionNotFound is returned for an unknown preset or position code.
	ErrPositionNotFound = errors.New("position not found")
)

// Kind classifies positioning failures and warnings.
type Kind int

const (
	KindUnknown Kind = iota
	KindScreenUnavailable
	KindNoFocusedWindow
	KindStateTransitionFailed
	KindCommandFailed
	KindVerificationMismatch
	KindConfigurationDefaulted
	KindInvalidGeometry
	KindPositionNotFound
)

func (k Kind) String() string {
	switch k {
	case KindScreenUnavailable:
		return "screen_unavailable"
	case KindNoFocusedWindow:
		return "no_focused_window"
	case KindStateTransitionFailed:
		return "state_transition_failed"
	case KindCommandFailed:
		return "command_failed"
	case KindVerificationMismatch:
		return "verification_mismatch"
	case KindConfigurationDefaulted:
		return "configuration_defaulted"
	case KindInvalidGeometry:
		return "invalid_geometry"
	case KindPositionNotFound:
		return "position_not_found"
	default:
		return "unknown"
	}
}

// KindOf maps an error returned by this package to its Kind.
// KindConfigurationDefaulted only ever appears on warnings.
func KindOf(err error) Kind {
	var mismatch *tiling.MismatchError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, platform.ErrScreenUnavailable):
		return KindScreenUnavailable
	case errors.Is(err, platform.ErrNoFocusedWindow):
		return KindNoFocusedWindow
	case errors.Is(err, windowstate.ErrStateTransitionFailed):
		return KindStateTransitionFailed
	case errors.Is(err, ErrCommandFailed):
		return KindCommandFailed
	case errors.As(err, &mismatch):
		return KindVerificationMismatch
	case errors.Is(err, ErrInvalidGeometry):
		return KindInvalidGeometry
	case errors.Is(err, ErrPositionNotFound):
		return KindPositionNotFound
	default:
		return KindUnknown
	}
}

// Warning is a non-fatal problem met while positioning. The operation
// still reports success.
type Warning struct {
	Kind Kind
	Err  error
}

func (w Warning) String() string {
	if w.Err == nil {
		return w.Kind.String()
	}
	return fmt.Sprintf("%s: %v", w.Kind, w.Err)
}
