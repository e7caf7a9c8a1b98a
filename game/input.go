package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.setPaused(!g.paused)
	}

	if rl.IsKeyPressed(rl.KeyDelete) || rl.IsKeyPressed(rl.KeyBackspace) {
		g.removeLast()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-300, 130)
	g.statsPanel.SetPosition(int32(w)-300, 260)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed in pixels per frame
	const panSpeed = float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Wheel zooms toward the cursor unless it is over the control panel
	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.controls.Contains(mouse.X, mouse.Y, g.panelState()) {
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
