//go:build linux

package platform

func openX11() (Backend, func(), error) {
	b, err := NewLinuxBackendFromDisplay()
	if err != nil {
		return nil, nil, err
	}
	return b, b.Disconnect, nil
}
