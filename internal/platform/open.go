package platform

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	KindAuto     = "auto"
	KindHyprland = "hyprland"
	KindX11      = "x11"
)

// OpenOptions selects and configures a backend.
type OpenOptions struct {
	Kind            string
	QueryTimeout    time.Duration
	DispatchTimeout time.Duration
}

// DetectKind resolves "auto" from the session environment: a running
// Hyprland instance wins over a plain X display.
func DetectKind(kind string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case KindHyprland, KindX11:
		return k, nil
	case "", KindAuto:
		if getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
			return KindHyprland, nil
		}
		if getenv("DISPLAY") != "" {
			return KindX11, nil
		}
		return "", fmt.Errorf("no supported compositor session found (HYPRLAND_INSTANCE_SIGNATURE and DISPLAY unset): %w", ErrUnavailable)
	default:
		return "", fmt.Errorf("unknown backend %q", kind)
	}
}

// Open returns the backend for opts.Kind and a function releasing it.
func Open(opts OpenOptions) (Backend, func(), error) {
	kind, err := DetectKind(opts.Kind, nil)
	if err != nil {
		return nil, nil, err
	}
	if kind == KindX11 {
		return openX11()
	}
	b := NewHyprlandBackend(HyprlandOptions{
		QueryTimeout:    opts.QueryTimeout,
		DispatchTimeout: opts.DispatchTimeout,
	})
	return b, func() {}, nil
}
