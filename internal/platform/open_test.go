package platform

import (
	"errors"
	"testing"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{name: "explicit hyprland", kind: "hyprland", want: KindHyprland},
		{name: "explicit x11 upper case", kind: " X11 ", want: KindX11},
		{name: "auto prefers hyprland", kind: "auto", env: map[string]string{
			"HYPRLAND_INSTANCE_SIGNATURE": "abc", "DISPLAY": ":0",
		}, want: KindHyprland},
		{name: "empty falls back to x11", kind: "", env: map[string]string{"DISPLAY": ":1"}, want: KindX11},
		{name: "auto without session", kind: "auto", wantErr: true},
		{name: "unknown", kind: "sway", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.kind, func(k string) string { return tt.env[k] })
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got kind %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectKindNoSessionIsUnavailable(t *testing.T) {
	_, err := DetectKind("auto", func(string) string { return "" })
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
