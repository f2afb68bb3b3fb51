//go:build !linux

package platform

import "fmt"

func openX11() (Backend, func(), error) {
	return nil, nil, fmt.Errorf("x11 backend is only available on linux: %w", ErrUnavailable)
}
