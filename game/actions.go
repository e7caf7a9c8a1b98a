package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/ui"
)

// panelState snapshots the scene for the control panel.
func (g *Game) panelState() ui.PanelState {
	cfg := config.Cfg()
	ents := g.scene.Entities()

	state := ui.PanelState{
		Speed:       g.speed,
		MinSpeed:    float32(cfg.Simulation.MinSpeed),
		MaxSpeed:    float32(cfg.Simulation.MaxSpeed),
		Capacity:    g.scene.Capacity(),
		MaxCapacity: cfg.Simulation.MaxCapacity,
		Names:       make([]string, 0, len(ents)),
		Origins:     make([]mgl32.Vec2, 0, len(ents)),
		Gravity:     g.scene.EffectEnabled(systems.EffectGravityWell),
		Wind:        g.scene.EffectEnabled(systems.EffectWind),
		Paused:      g.paused,
	}
	for _, e := range ents {
		label, _ := g.scene.Label(e)
		state.Names = append(state.Names, label.Name)
		state.Origins = append(state.Origins, g.scene.Origin(e))
	}
	return state
}

// applyActions applies one frame of control panel edits to the scene.
func (g *Game) applyActions(act ui.Actions) {
	if act.SpeedChanged {
		g.speed = act.Speed
	}
	if act.PauseChanged {
		g.setPaused(act.Paused)
	}

	if act.CapacityChanged {
		if err := g.scene.SetCapacity(act.Capacity); err != nil {
			slog.Error("failed to resize systems", "capacity", act.Capacity, "error", err)
		}
	}

	ents := g.scene.Entities()
	for _, mv := range act.Moves {
		if mv.Index < len(ents) {
			g.scene.SetOrigin(ents[mv.Index], mv.Origin)
		}
	}

	if act.GravityChanged {
		g.setEffect(systems.EffectGravityWell, act.Gravity)
	}
	if act.WindChanged {
		g.setEffect(systems.EffectWind, act.Wind)
	}

	if act.Spawn {
		if err := g.spawn(act.SpawnKind); err != nil {
			slog.Error("failed to create system", "error", err)
		}
	}

	if act.Close {
		g.closing = true
	}
}

func (g *Game) setEffect(kind systems.EffectKind, on bool) {
	if err := g.scene.SetEffect(kind, on); err != nil {
		slog.Error("failed to toggle effect", "effect", kind.String(), "error", err)
	}
}

// setPaused freezes simulated time. The speed factor is kept for resume.
func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	slog.Info("pause toggled", "paused", paused, "tick", g.tick)
}
