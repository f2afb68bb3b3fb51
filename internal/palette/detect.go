package palette

import "fmt"

// launchers in priority order.
var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// detectBackend returns the first launcher found in PATH.
func detectBackend(lookPath func(string) (string, error)) (string, error) {
	for _, name := range launchers {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: rofi, fuzzel, wofi, dmenu)")
}
