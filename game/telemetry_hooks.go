package game

import (
	"log/slog"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/telemetry"
)

// recordFrame feeds the collector the latest step and emission pass and
// flushes the window when it is due.
func (g *Game) recordFrame() {
	_, _, respawns := g.scene.Counts()
	g.collector.RecordFrame(g.stepDT, respawns)
	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleScene())
	perfStats := g.frameTimer.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleScene collects the live particle distributions of every system.
func (g *Game) sampleScene() telemetry.Sample {
	return g.scene.Sample(float32(config.Cfg().Render.WorldExtent))
}
