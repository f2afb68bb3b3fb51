package tiling

import (
	"errors"
	"testing"
)

var fullHD = Screen{Width: 1920, Height: 1080, Scale: 1}

func TestResolve_GridCells(t *testing.T) {
	grid := GridSpec{Rows: 3, Columns: 3, Gap: 5}

	tests := []struct {
		name string
		spec PositionSpec
		want Rect
	}{
		{
			name: "top-left cell",
			spec: PositionSpec{X: 0, Y: 0, Width: 1, Height: 1, Scale: 1},
			want: Rect{X: 5, Y: 5, Width: 633, Height: 353},
		},
		{
			name: "bottom-right cell",
			spec: PositionSpec{X: 2, Y: 2, Width: 1, Height: 1, Scale: 1},
			want: Rect{X: 1281, Y: 721, Width: 633, Height: 353},
		},
		{
			name: "left column span",
			spec: PositionSpec{X: 0, Y: 0, Width: 1, Height: 3, Scale: 1},
			// 3*353 + 2*5
			want: Rect{X: 5, Y: 5, Width: 633, Height: 1069},
		},
		{
			name: "full grid",
			spec: PositionSpec{X: 0, Y: 0, Width: 3, Height: 3, Scale: 1},
			want: Rect{X: 5, Y: 5, Width: 1909, Height: 1069},
		},
		{
			name: "centered flag ignored at full scale",
			spec: PositionSpec{X: 1, Y: 1, Width: 1, Height: 1, Centered: true, Scale: 1},
			want: Rect{X: 643, Y: 363, Width: 633, Height: 353},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.spec, grid, fullHD)
			if got != tt.want {
				t.Fatalf("Resolve(%+v) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestResolve_CellSizeMatchesGridFormula(t *testing.T) {
	w, h := CellSize(GridSpec{Rows: 3, Columns: 3, Gap: 5}, fullHD)
	if w != 633 || h != 353 {
		t.Fatalf("expected 633x353 cells, got %dx%d", w, h)
	}
}

func TestResolve_CenteredScale(t *testing.T) {
	grid := GridSpec{Rows: 3, Columns: 3, Gap: 5}
	got := Resolve(PositionSpec{Centered: true, Scale: 0.5}, grid, fullHD)
	want := Rect{X: 480, Y: 270, Width: 960, Height: 540}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	for _, scale := range []float64{0.85, 0.65, 0.4, 0.33} {
		r := Resolve(PositionSpec{Centered: true, Scale: scale}, grid, fullHD)
		left := r.X
		right := fullHD.Width - (r.X + r.Width)
		top := r.Y
		bottom := fullHD.Height - (r.Y + r.Height)
		if absDiff(left, right) > 1 || absDiff(top, bottom) > 1 {
			t.Fatalf("scale %.2f not centered: %+v", scale, r)
		}
	}
}

func TestResolve_NonPositiveScaleActsAsOne(t *testing.T) {
	grid := GridSpec{Rows: 2, Columns: 2, Gap: 10}
	base := PositionSpec{X: 1, Y: 0, Width: 1, Height: 2, Centered: true, Scale: 1}
	want := Resolve(base, grid, fullHD)

	for _, scale := range []float64{0, -0.5, -3} {
		spec := base
		spec.Scale = scale
		if got := Resolve(spec, grid, fullHD); got != want {
			t.Fatalf("scale %v: expected %+v, got %+v", scale, want, got)
		}
	}
}

func TestResolve_ClampsInvalidInputs(t *testing.T) {
	got := Resolve(
		PositionSpec{X: -2, Y: -1, Width: 0, Height: -4},
		GridSpec{Rows: 0, Columns: -1, Gap: -5},
		Screen{Width: 800, Height: 600},
	)
	want := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	if got != want {
		t.Fatalf("expected clamped %+v, got %+v", want, got)
	}
}

func TestResolve_SingleCellGridBordersWithGap(t *testing.T) {
	got := Resolve(PositionSpec{Width: 1, Height: 1}, GridSpec{Rows: 1, Columns: 1, Gap: 8}, fullHD)
	want := Rect{X: 8, Y: 8, Width: 1904, Height: 1064}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolve_TranslatesByScreenOrigin(t *testing.T) {
	screen := fullHD
	screen.X = 1920
	screen.Y = 120

	grid := GridSpec{Rows: 3, Columns: 3, Gap: 5}
	got := Resolve(PositionSpec{X: 2, Y: 2, Width: 1, Height: 1}, grid, screen)
	if got.X != 1920+1281 || got.Y != 120+721 {
		t.Fatalf("expected origin-translated 3201,841, got %d,%d", got.X, got.Y)
	}

	centered := Resolve(PositionSpec{Centered: true, Scale: 0.5}, grid, screen)
	if centered.X != 1920+480 || centered.Y != 120+270 {
		t.Fatalf("expected centered origin-translated 2400,390, got %d,%d", centered.X, centered.Y)
	}
}

func TestResolve_IsDeterministic(t *testing.T) {
	grid := GridSpec{Rows: 4, Columns: 5, Gap: 7}
	spec := PositionSpec{X: 3, Y: 1, Width: 2, Height: 2}
	first := Resolve(spec, grid, fullHD)
	for i := 0; i < 10; i++ {
		if got := Resolve(spec, grid, fullHD); got != first {
			t.Fatalf("run %d returned %+v, want %+v", i, got, first)
		}
	}
}

func TestResolve_PositiveSizeWhenScreenFitsGaps(t *testing.T) {
	screen := Screen{Width: 640, Height: 480}
	for rows := 1; rows <= 6; rows++ {
		for cols := 1; cols <= 6; cols++ {
			grid := GridSpec{Rows: rows, Columns: cols, Gap: 10}
			for x := 0; x < cols; x++ {
				for y := 0; y < rows; y++ {
					r := Resolve(PositionSpec{X: x, Y: y, Width: cols - x, Height: rows - y}, grid, screen)
					if r.Empty() {
						t.Fatalf("grid %dx%d cell %d,%d resolved to empty rect %+v", rows, cols, x, y, r)
					}
				}
			}
		}
	}
}

func TestUsableArea_SubtractsReservedInsets(t *testing.T) {
	screen := Screen{X: 0, Y: 0, Width: 1920, Height: 1080, Reserved: Insets{Top: 30, Left: 40}}
	got := UsableArea(screen)
	if got.X != 40 || got.Y != 30 || got.Width != 1880 || got.Height != 1050 {
		t.Fatalf("unexpected usable area %+v", got)
	}
	if got.Reserved != (Insets{}) {
		t.Fatalf("expected reserved insets consumed, got %+v", got.Reserved)
	}
}

func TestUsableArea_ClampsToMinimumSize(t *testing.T) {
	screen := Screen{Width: 10, Height: 10, Reserved: Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}}
	got := UsableArea(screen)
	if got.Width != 1 || got.Height != 1 {
		t.Fatalf("expected 1x1, got %dx%d", got.Width, got.Height)
	}
}

func TestVerify_Tolerance(t *testing.T) {
	target := Rect{X: 5, Y: 5, Width: 633, Height: 353}

	tests := []struct {
		name   string
		actual Rect
		ok     bool
	}{
		{"exact", target, true},
		{"position within 5", Rect{X: 10, Y: 0, Width: 633, Height: 353}, true},
		{"size within 10", Rect{X: 5, Y: 5, Width: 623, Height: 363}, true},
		{"position off by 6", Rect{X: 11, Y: 5, Width: 633, Height: 353}, false},
		{"size off by 11", Rect{X: 5, Y: 5, Width: 633, Height: 342}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.actual, target, DefaultTolerance)
			if tt.ok && err != nil {
				t.Fatalf("expected match, got %v", err)
			}
			if !tt.ok {
				var mismatch *MismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("expected *MismatchError, got %v", err)
				}
				if mismatch.Target != target || mismatch.Actual != tt.actual {
					t.Fatalf("unexpected mismatch payload %+v", mismatch)
				}
			}
		})
	}
}
