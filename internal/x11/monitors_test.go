package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

// Two 1920x1080 monitors side by side on a 3840x1080 root.
var (
	leftMon  = tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	rightMon = tiling.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
)

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{{Name: "left", Bounds: leftMon}, {Name: "right", Bounds: rightMon}}
	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1919, 1079, 0},
		{1920, 0, 1},
		{3839, 500, 1},
		{3840, 500, -1},
		{-1, 0, -1},
	}
	for _, tt := range tests {
		if got := monitorAt(monitors, tt.x, tt.y); got != tt.want {
			t.Fatalf("monitorAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestStrutInsets(t *testing.T) {
	tests := []struct {
		name   string
		bounds tiling.Rect
		strut  ewmh.WmStrutPartial
		want   tiling.Insets
	}{
		{
			name:   "top bar on left monitor only",
			bounds: leftMon,
			strut:  ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919},
			want:   tiling.Insets{Top: 30},
		},
		{
			name:   "top bar on left monitor does not touch right",
			bounds: rightMon,
			strut:  ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919},
			want:   tiling.Insets{},
		},
		{
			name:   "bottom dock",
			bounds: rightMon,
			strut:  ewmh.WmStrutPartial{Bottom: 48, BottomStartX: 1920, BottomEndX: 3839},
			want:   tiling.Insets{Bottom: 48},
		},
		{
			name:   "left panel",
			bounds: leftMon,
			strut:  ewmh.WmStrutPartial{Left: 64, LeftStartY: 0, LeftEndY: 1079},
			want:   tiling.Insets{Left: 64},
		},
		{
			name:   "right panel",
			bounds: rightMon,
			strut:  ewmh.WmStrutPartial{Right: 40, RightStartY: 0, RightEndY: 1079},
			want:   tiling.Insets{Right: 40},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strutInsets(tt.bounds, 3840, 1080, tt.strut); got != tt.want {
				t.Fatalf("strutInsets = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFullEdgeStrutCoversEveryMonitor(t *testing.T) {
	sp := fullEdgeStrut(ewmh.WmStrut{Top: 24}, 3840, 1080)
	for _, b := range []tiling.Rect{leftMon, rightMon} {
		if got := strutInsets(b, 3840, 1080, sp); got != (tiling.Insets{Top: 24}) {
			t.Fatalf("bounds %+v: got %+v", b, got)
		}
	}
}

func TestWorkAreaInsets(t *testing.T) {
	wa := tiling.Rect{X: 0, Y: 30, Width: 3840, Height: 1002}
	if got := workAreaInsets(rightMon, wa); got != (tiling.Insets{Top: 30, Bottom: 48}) {
		t.Fatalf("unexpected insets %+v", got)
	}
	if got := workAreaInsets(rightMon, tiling.Rect{X: 0, Y: 0, Width: 100, Height: 100}); got != (tiling.Insets{}) {
		t.Fatalf("expected no insets for disjoint work area, got %+v", got)
	}
}

func TestMaxInsets(t *testing.T) {
	got := maxInsets(tiling.Insets{Top: 10, Left: 5}, tiling.Insets{Top: 30, Right: 2})
	if got != (tiling.Insets{Top: 30, Left: 5, Right: 2}) {
		t.Fatalf("unexpected insets %+v", got)
	}
}
