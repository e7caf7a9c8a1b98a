package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/camera"
)

var (
	wellColor = rl.Color{R: 120, G: 90, B: 255, A: 160}
	windColor = rl.Color{R: 90, G: 200, B: 255, A: 110}
)

// EffectOverlay marks where active effects act.
type EffectOverlay struct {
	WellPosition mgl32.Vec2
	WindPosition mgl32.Vec2
	WindStrength mgl32.Vec2
	WindRadius   float32
}

// Draw marks the gravity well and the wind activation disc when enabled.
func (o *EffectOverlay) Draw(cam *camera.Camera, gravity, wind bool) {
	if gravity {
		sx, sy := cam.WorldToScreen(o.WellPosition.X(), o.WellPosition.Y())
		rl.DrawCircleLines(int32(sx), int32(sy), 6, wellColor)
		rl.DrawCircleLines(int32(sx), int32(sy), 12, wellColor)
	}
	if wind {
		sx, sy := cam.WorldToScreen(o.WindPosition.X(), o.WindPosition.Y())
		r := cam.ScaleToScreen(o.WindRadius)
		rl.DrawCircleLines(int32(sx), int32(sy), r, windColor)

		// Unit direction arrow from the centre to the rim
		dir := o.WindStrength
		if l := dir.Len(); l > 0 {
			dir = dir.Mul(1 / l)
			tip := rl.Vector2{X: sx + dir.X()*r, Y: sy - dir.Y()*r}
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, tip, windColor)
		}
	}
}
