package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Systems  int
	Alive    int
	Capacity int
	Respawns int
	Drawn    int // points handed to raylib this frame
	Culled   int // points outside the view
	Tick     int32
	Speed    float32
	FPS      int32
	Paused   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top right of the screen.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	x := screenWidth - 300

	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Systems: %d | Alive: %d / %d", data.Systems, data.Alive, data.Capacity),
		x, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %.2fx | FPS: %d", data.Tick, data.Speed, data.FPS),
		x, 55, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Respawns/frame: %d | Drawn: %d Culled: %d", data.Respawns, data.Drawn, data.Culled),
		x, 75, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", x, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Busy avg: %s  max: %s  (%.0f fps)",
		stats.AvgBusy.Round(time.Microsecond),
		stats.MaxBusy.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the stats panel.
func (s *StatsPanel) Draw(stats telemetry.WindowStats) {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := s.width - padding*2

	r.DrawPanel(s.x, s.y, s.width, lineHeight*8+padding*2)

	y := s.y + padding
	y = r.DrawSectionHeader(s.x+padding, y, fmt.Sprintf("Window @ %.0fs", stats.SimTimeSec))
	y = r.DrawBar(s.x+padding, y, "Alive", float32(stats.AliveFrac), inner)
	y = r.DrawBar(s.x+padding, y, "In view", float32(stats.InViewFrac), inner)
	y = r.DrawLabelValue(s.x+padding, y, "Respawn/s", fmt.Sprintf("%.1f", stats.RespawnRate))
	y = r.DrawLabelValue(s.x+padding, y, "Life p50", fmt.Sprintf("%.2f (p10 %.2f, p90 %.2f)", stats.LifeP50, stats.LifeP10, stats.LifeP90))
	r.DrawLabelValue(s.x+padding, y, "Speed", fmt.Sprintf("%.3f +/- %.3f", stats.SpeedMean, stats.SpeedStd))
}
