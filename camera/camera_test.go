package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1270, 900, 1)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if got := cam.PixelsPerUnit(); got != 450 {
		t.Errorf("PixelsPerUnit() = %f, want 450", got)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1000, 800, 1)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"origin at center", 0, 0, 500, 400},
		{"top edge", 0, 1, 500, 0},
		{"bottom edge", 0, -1, 500, 800},
		{"right", 1, 0, 900, 400},
		{"left", -0.5, 0, 300, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1)
	cam.Pan(37, -12)
	cam.SetZoom(2.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanMovesContentOpposite(t *testing.T) {
	cam := New(1000, 1000, 1)
	cam.Pan(100, 0)

	// The camera moved right, so the origin appears left of center.
	sx, _ := cam.WorldToScreen(0, 0)
	if !near(sx, 400) {
		t.Errorf("origin at x=%f after pan, want 400", sx)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 1)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
	cam.SetZoom(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	cam.Reset()
	if cam.Zoom != 1 || cam.X != 0 || cam.Y != 0 {
		t.Errorf("Reset() left camera at (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(800, 800, 1)
	wx, wy := cam.ScreenToWorld(600, 200)

	cam.ZoomAt(600, 200, 2)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 600) || !near(sy, 200) {
		t.Errorf("anchor moved to (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 800, 1)

	if !cam.IsVisible(0, 0, 0) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(1.5, 0, 10) {
		t.Error("point beyond the extent should be culled at zoom 1")
	}
	cam.SetZoom(0.5)
	if !cam.IsVisible(1.5, 0, 10) {
		t.Error("point should be visible after zooming out")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1600, 800, 1)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()

	if !near(minX, -2) || !near(maxX, 2) || !near(minY, -1) || !near(maxY, 1) {
		t.Errorf("bounds = (%f, %f, %f, %f)", minX, minY, maxX, maxY)
	}
}

func TestInExtent(t *testing.T) {
	tests := []struct {
		x, y float32
		want bool
	}{
		{0, 0, true},
		{1, -1, true},
		{1.01, 0, false},
		{0, -2, false},
	}
	for _, tt := range tests {
		if got := InExtent(tt.x, tt.y, 1); got != tt.want {
			t.Errorf("InExtent(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
