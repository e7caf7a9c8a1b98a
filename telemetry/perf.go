package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a frame.
type Phase uint8

// Frame phases in execution order. A frame starts in PhaseInput.
const (
	PhaseInput Phase = iota
	PhaseUpdate
	PhaseEmit
	PhaseDraw
	PhaseTelemetry
	PhaseUI

	phaseCount
)

var phaseNames = [phaseCount]string{"input", "update", "emit", "draw", "telemetry", "ui"}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases returns every phase in execution order.
func Phases() []Phase {
	out := make([]Phase, phaseCount)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// frameTimes is the breakdown of one closed frame.
type frameTimes struct {
	busy   time.Duration
	phases [phaseCount]time.Duration
}

// FrameTimer splits frames into phases and keeps the last window of them.
//
// Begin opens a frame, Enter switches phase and End closes it. The gap
// between two Begin calls is the frame interval; it includes vsync waits,
// while busy time only covers Begin to End.
type FrameTimer struct {
	now    func() time.Time
	frames []frameTimes
	next   int
	filled int

	open    bool
	cur     frameTimes
	phase   Phase
	frameAt time.Time
	phaseAt time.Time

	lastBegin time.Time
	interval  time.Duration
}

// NewFrameTimer creates a timer averaging over the last window frames.
func NewFrameTimer(window int) *FrameTimer {
	return newFrameTimer(window, time.Now)
}

func newFrameTimer(window int, now func() time.Time) *FrameTimer {
	if window < 1 {
		window = 60
	}
	return &FrameTimer{now: now, frames: make([]frameTimes, window)}
}

// Begin opens a frame in PhaseInput. An unclosed previous frame is dropped.
func (f *FrameTimer) Begin() {
	t := f.now()
	if !f.lastBegin.IsZero() {
		f.interval = t.Sub(f.lastBegin)
	}
	f.lastBegin = t

	f.open = true
	f.cur = frameTimes{}
	f.phase = PhaseInput
	f.frameAt, f.phaseAt = t, t
}

// Enter charges the time since the last switch to the running phase and
// starts p. It does nothing outside a frame.
func (f *FrameTimer) Enter(p Phase) {
	if !f.open || p >= phaseCount {
		return
	}
	t := f.now()
	f.cur.phases[f.phase] += t.Sub(f.phaseAt)
	f.phase, f.phaseAt = p, t
}

// End closes the frame and stores it in the window.
func (f *FrameTimer) End() {
	if !f.open {
		return
	}
	t := f.now()
	f.cur.phases[f.phase] += t.Sub(f.phaseAt)
	f.cur.busy = t.Sub(f.frameAt)
	f.open = false

	f.frames[f.next] = f.cur
	f.next = (f.next + 1) % len(f.frames)
	f.filled = min(f.filled+1, len(f.frames))
}

// PerfStats summarises the frames in the window.
type PerfStats struct {
	Frames   int
	AvgBusy  time.Duration
	MaxBusy  time.Duration
	Interval time.Duration // latest Begin-to-Begin gap
	FPS      float64       // from Interval

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64 // share of AvgBusy
}

// Stats summarises the current window.
func (f *FrameTimer) Stats() PerfStats {
	s := PerfStats{Frames: f.filled, Interval: f.interval}
	if f.interval > 0 {
		s.FPS = float64(time.Second) / float64(f.interval)
	}
	if f.filled == 0 {
		return s
	}

	var busy time.Duration
	var phases [phaseCount]time.Duration
	for _, fr := range f.frames[:f.filled] {
		busy += fr.busy
		s.MaxBusy = max(s.MaxBusy, fr.busy)
		for p, d := range fr.phases {
			phases[p] += d
		}
	}

	n := time.Duration(f.filled)
	s.AvgBusy = busy / n
	for p := range phases {
		s.PhaseAvg[p] = phases[p] / n
		if busy > 0 {
			s.PhasePct[p] = float64(phases[p]) * 100 / float64(busy)
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_busy_us", s.AvgBusy.Microseconds()),
		slog.Int64("max_busy_us", s.MaxBusy.Microseconds()),
		slog.Float64("fps", s.FPS),
	}
	for _, p := range Phases() {
		attrs = append(attrs, slog.Float64(p.String()+"_pct", s.PhasePct[p]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "frame", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	Frames       int     `csv:"frames"`
	AvgBusyUS    int64   `csv:"avg_busy_us"`
	MaxBusyUS    int64   `csv:"max_busy_us"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	UpdatePct    float64 `csv:"update_pct"`
	EmitPct      float64 `csv:"emit_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
	UIPct        float64 `csv:"ui_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Frames:       s.Frames,
		AvgBusyUS:    s.AvgBusy.Microseconds(),
		MaxBusyUS:    s.MaxBusy.Microseconds(),
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		UpdatePct:    s.PhasePct[PhaseUpdate],
		EmitPct:      s.PhasePct[PhaseEmit],
		DrawPct:      s.PhasePct[PhaseDraw],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
		UIPct:        s.PhasePct[PhaseUI],
	}
}
