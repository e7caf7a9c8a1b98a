// Package game drives the particle scene from a raylib window or a
// headless loop.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/renderer"
	"github.com/pthm-cable/particles/scene"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/telemetry"
	"github.com/pthm-cable/particles/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64  // 0 = time-based
	LogStats       bool   // emit telemetry windows via slog
	StatsWindowSec float64
	OutputDir      string // CSV + config snapshot directory ("" = disabled)
	Headless       bool

	// Startup systems. Zero values fall back to the config.
	Systems int
	Emitter string

	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete application state.
type Game struct {
	scene *scene.Scene

	// State
	tick    int32
	stepDT  float32 // simulated seconds of the latest Step
	speed   float32
	paused  bool
	closing bool
	seed    int64

	// Telemetry
	collector     *telemetry.Collector
	frameTimer    *telemetry.FrameTimer
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	// Rendering (nil in headless mode)
	headless     bool
	camera       *camera.Camera
	points       *renderer.PointRenderer
	background   *renderer.BackgroundRenderer
	overlay      *renderer.EffectOverlay
	controls     *ui.ControlsPanel
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	statsPanel   *ui.StatsPanel
	showPerf     bool
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a game and spawns the startup systems.
// Windowed games must be created after the raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sc, err := scene.New(scene.SettingsFromConfig(cfg, seed))
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		scene:         sc,
		speed:         float32(cfg.Simulation.Speed),
		seed:          seed,
		collector:     telemetry.NewCollector(statsWindow),
		frameTimer:    telemetry.NewFrameTimer(cfg.Telemetry.FrameWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sc.Close()
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	} else if dir := g.outputManager.Dir(); dir != "" {
		slog.Info("writing telemetry", "dir", dir)
	}

	if !opts.Headless {
		g.initRendering(cfg)
	}

	if err := g.spawnInitialSystems(cfg, opts); err != nil {
		g.Unload()
		return nil, err
	}

	slog.Info("game created",
		"seed", seed,
		"headless", opts.Headless,
		"systems", g.scene.Len(),
		"capacity", g.scene.Capacity(),
		"stats_window", statsWindow,
	)
	return g, nil
}

func (g *Game) initRendering(cfg *config.Config) {
	extent := float32(cfg.Render.WorldExtent)
	g.camera = camera.New(g.screenWidth, g.screenHeight, extent)
	g.points = renderer.NewPointRenderer(g.camera, float32(cfg.Render.PointScale))
	bg := cfg.Render.Background
	g.background = renderer.NewBackgroundRenderer(uint8(bg[0]), uint8(bg[1]), uint8(bg[2]), extent)
	g.overlay = &renderer.EffectOverlay{
		WellPosition: vec2(cfg.Gravity.Position),
		WindPosition: vec2(cfg.Wind.Position),
		WindStrength: vec2(cfg.Wind.Strength),
		WindRadius:   float32(cfg.Wind.Radius),
	}
	g.controls = ui.NewControlsPanel(10, 10, 260)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-300, 130)
	g.statsPanel = ui.NewStatsPanel(int32(g.screenWidth)-300, 260, 290)
}

func (g *Game) spawnInitialSystems(cfg *config.Config, opts Options) error {
	n := cfg.Simulation.InitialSystems
	if opts.Systems > 0 {
		n = opts.Systems
	}
	name := cfg.Simulation.InitialEmitter
	if opts.Emitter != "" {
		name = opts.Emitter
	}
	kind, err := systems.ParseEmitterKind(name)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := g.spawn(kind); err != nil {
			return err
		}
	}
	return nil
}

// spawn adds a system at the origin.
func (g *Game) spawn(kind systems.EmitterKind) error {
	if _, err := g.scene.Spawn(kind, mgl32.Vec2{}); err != nil {
		return fmt.Errorf("spawning %v system: %w", kind, err)
	}
	g.collector.RecordSystemAdded()
	return nil
}

// removeLast removes the most recently created system.
func (g *Game) removeLast() {
	if g.scene.RemoveLast() {
		g.collector.RecordSystemRemoved()
	}
}

func vec2(v [2]float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(v[0]), float32(v[1])}
}

// Scene returns the driven scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Tick returns the number of frames simulated so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the seed the scene was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// ShouldClose reports whether the Close button was pressed.
func (g *Game) ShouldClose() bool {
	return g.closing
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Unload stops workers and closes output files.
func (g *Game) Unload() {
	g.scene.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
