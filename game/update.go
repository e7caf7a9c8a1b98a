package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/telemetry"
)

// Update opens a frame, handles input and advances the scene by the window
// frame time scaled by the speed factor. Emission, drawing, UI and
// telemetry happen in Draw, which closes the frame.
func (g *Game) Update() {
	g.frameTimer.Begin()
	g.handleInput()

	g.frameTimer.Enter(telemetry.PhaseUpdate)
	g.stepDT = g.frameDT(rl.GetFrameTime())
	g.scene.Step(g.stepDT)
	g.tick++
}

// frameDT converts a raw frame time to simulation time.
func (g *Game) frameDT(frame float32) float32 {
	if g.paused {
		return 0
	}
	if maxDT := float32(config.Cfg().Simulation.MaxFrameDT); maxDT > 0 && frame > maxDT {
		frame = maxDT
	}
	return frame * g.speed
}

// UpdateHeadless runs one fixed-step frame without a window: step, then
// the emission pass that Draw performs in windowed mode.
func (g *Game) UpdateHeadless() {
	g.frameTimer.Begin()

	g.frameTimer.Enter(telemetry.PhaseUpdate)
	g.stepDT = config.Cfg().Derived.HeadlessDT * g.speed
	if g.paused {
		g.stepDT = 0
	}
	g.scene.Step(g.stepDT)
	g.tick++

	g.frameTimer.Enter(telemetry.PhaseEmit)
	g.scene.Emit()

	g.frameTimer.Enter(telemetry.PhaseTelemetry)
	g.recordFrame()

	g.frameTimer.End()
}
