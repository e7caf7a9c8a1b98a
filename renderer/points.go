package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/camera"
)

// minRadius keeps tiny particles visible.
const minRadius = 0.5

// PointRenderer draws particle batches as filled circles through a camera.
// It implements systems.Surface.
type PointRenderer struct {
	cam        *camera.Camera
	pointScale float32

	drawn, culled int
}

// NewPointRenderer creates a renderer. pointScale converts a point size into
// a radius in pixels at zoom 1.
func NewPointRenderer(cam *camera.Camera, pointScale float32) *PointRenderer {
	return &PointRenderer{cam: cam, pointScale: pointScale}
}

// DrawPoint draws one point, used for emitter origin markers.
func (r *PointRenderer) DrawPoint(pos mgl32.Vec2, size float32, color mgl32.Vec4) {
	r.draw(pos, size, color)
}

// DrawPoints draws a batch. The slices have equal length.
func (r *PointRenderer) DrawPoints(positions []mgl32.Vec2, sizes []float32, colors []mgl32.Vec4) {
	for i := range positions {
		r.draw(positions[i], sizes[i], colors[i])
	}
}

func (r *PointRenderer) draw(pos mgl32.Vec2, size float32, color mgl32.Vec4) {
	radius := max(size*r.pointScale*r.cam.Zoom, minRadius)
	if !r.cam.IsVisible(pos.X(), pos.Y(), radius) {
		r.culled++
		return
	}
	sx, sy := r.cam.WorldToScreen(pos.X(), pos.Y())
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, ToColor(color))
	r.drawn++
}

// ResetCounts clears the per-frame drawn/culled counters.
func (r *PointRenderer) ResetCounts() {
	r.drawn, r.culled = 0, 0
}

// Counts returns points drawn and culled since the last reset.
func (r *PointRenderer) Counts() (drawn, culled int) {
	return r.drawn, r.culled
}

// ToColor converts a [0,1] RGBA vector to a raylib colour.
func ToColor(c mgl32.Vec4) rl.Color {
	return rl.Color{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(c[3]),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
