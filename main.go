package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	numSystems := flag.Int("systems", 0, "Particle systems created at startup (0 = use config)")
	emitter := flag.String("emitter", "", "Emitter for startup systems: uniform, directional or explosion (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	slog.Info("config loaded", "path", *configPath)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Systems:        *numSystems,
		Emitter:        *emitter,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", g.Seed(),
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
		)
		if *maxTicks <= 0 {
			slog.Warn("headless run has no max-ticks; it will run until killed")
		}

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				last := g.LastStats()
				slog.Info("max ticks reached",
					"tick", g.Tick(),
					"systems", g.Scene().Len(),
					"alive_frac", last.AliveFrac,
					"in_view_frac", last.InViewFrac,
				)
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}
