package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/camera"
)

// Points outside the view are culled before any raylib call, so these
// tests need no window.

func TestPointRendererCountsCulled(t *testing.T) {
	cam := camera.New(800, 600, 1)
	r := NewPointRenderer(cam, 1)

	far := []mgl32.Vec2{{50, 50}, {-50, 0}, {0, -50}}
	sizes := []float32{1, 1, 1}
	colors := []mgl32.Vec4{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}}
	r.DrawPoints(far, sizes, colors)
	r.DrawPoint(mgl32.Vec2{100, 100}, 20, mgl32.Vec4{1, 1, 1, 0.5})

	drawn, culled := r.Counts()
	if drawn != 0 || culled != 4 {
		t.Errorf("Counts() = %d, %d, want 0, 4", drawn, culled)
	}

	r.ResetCounts()
	if drawn, culled := r.Counts(); drawn != 0 || culled != 0 {
		t.Errorf("after ResetCounts = %d, %d, want 0, 0", drawn, culled)
	}
}

func TestToColor(t *testing.T) {
	tests := []struct {
		in   mgl32.Vec4
		want [4]uint8
	}{
		{mgl32.Vec4{0, 0, 0, 0}, [4]uint8{0, 0, 0, 0}},
		{mgl32.Vec4{1, 1, 1, 1}, [4]uint8{255, 255, 255, 255}},
		{mgl32.Vec4{-1, 2, 0, 1}, [4]uint8{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		c := ToColor(tt.in)
		if got := [4]uint8{c.R, c.G, c.B, c.A}; got != tt.want {
			t.Errorf("ToColor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
