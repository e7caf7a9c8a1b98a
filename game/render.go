package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/telemetry"
	"github.com/pthm-cable/particles/ui"
)

const controlsLegend = "[Space] pause  [Del] remove last  [Tab] panel  [F3] perf  [Arrows/Wheel] camera  [Home] reset view"

// Draw runs the emission pass and renders the frame, so respawns become
// visible in the same frame. It closes the frame opened by Update.
func (g *Game) Draw() {
	g.frameTimer.Enter(telemetry.PhaseEmit)
	g.scene.Emit()

	g.frameTimer.Enter(telemetry.PhaseDraw)
	rl.BeginDrawing()
	g.background.Draw(g.camera)
	g.overlay.Draw(g.camera,
		g.scene.EffectEnabled(systems.EffectGravityWell),
		g.scene.EffectEnabled(systems.EffectWind))

	g.points.ResetCounts()
	g.scene.Render(g.points)

	g.frameTimer.Enter(telemetry.PhaseTelemetry)
	g.recordFrame()

	g.frameTimer.Enter(telemetry.PhaseUI)
	g.drawUI()

	rl.EndDrawing()
	g.frameTimer.End()
}

// drawUI draws the HUD and panels and applies control panel edits.
func (g *Game) drawUI() {
	capacity, alive, respawns := g.scene.Counts()
	drawn, culled := g.points.Counts()
	g.hud.Draw(ui.HUDData{
		Title:    config.Cfg().Screen.Title,
		Systems:  g.scene.Len(),
		Alive:    alive,
		Capacity: capacity,
		Respawns: respawns,
		Drawn:    drawn,
		Culled:   culled,
		Tick:     g.tick,
		Speed:    g.speed,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
	}, int32(g.screenWidth))

	if g.showPerf {
		g.perfPanel.Draw(g.frameTimer.Stats())
	}
	if g.lastStats.WindowEndTick > 0 {
		g.statsPanel.Draw(g.lastStats)
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	g.applyActions(g.controls.Draw(g.panelState()))
}
