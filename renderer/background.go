package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/camera"
)

// BackgroundRenderer clears the frame and outlines the simulation extent.
type BackgroundRenderer struct {
	clear  rl.Color
	frame  rl.Color
	axes   rl.Color
	extent float32
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(baseR, baseG, baseB uint8, extent float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		clear:  rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		frame:  rl.Color{R: 60, G: 60, B: 70, A: 255},
		axes:   rl.Color{R: 35, G: 35, B: 45, A: 255},
		extent: extent,
	}
}

// Draw clears the screen and draws the extent square and axes.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.clear)

	left, top := cam.WorldToScreen(-b.extent, b.extent)
	right, bottom := cam.WorldToScreen(b.extent, -b.extent)
	cx, cy := cam.WorldToScreen(0, 0)

	rl.DrawLineV(rl.Vector2{X: left, Y: cy}, rl.Vector2{X: right, Y: cy}, b.axes)
	rl.DrawLineV(rl.Vector2{X: cx, Y: top}, rl.Vector2{X: cx, Y: bottom}, b.axes)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: left, Y: top, Width: right - left, Height: bottom - top}, 1, b.frame)
}
