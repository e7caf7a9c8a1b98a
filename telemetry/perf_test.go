package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(window int) (*FrameTimer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return newFrameTimer(window, clock.now), clock
}

// windowedFrame runs the phase sequence of one windowed frame.
func windowedFrame(f *FrameTimer, c *fakeClock, input, update, emit, draw, telem, ui time.Duration) {
	f.Begin()
	c.advance(input)
	f.Enter(PhaseUpdate)
	c.advance(update)
	f.Enter(PhaseEmit)
	c.advance(emit)
	f.Enter(PhaseDraw)
	c.advance(draw)
	f.Enter(PhaseTelemetry)
	c.advance(telem)
	f.Enter(PhaseUI)
	c.advance(ui)
	f.End()
}

func TestFrameTimerAttributesEveryPhase(t *testing.T) {
	f, c := newTestTimer(10)
	windowedFrame(f, c, 1*time.Millisecond, 4*time.Millisecond, 2*time.Millisecond,
		2*time.Millisecond, 0, 1*time.Millisecond)

	s := f.Stats()
	if s.Frames != 1 || s.AvgBusy != 10*time.Millisecond {
		t.Fatalf("frames = %d, busy = %v, want 1 and 10ms", s.Frames, s.AvgBusy)
	}

	tests := []struct {
		phase Phase
		avg   time.Duration
		pct   float64
	}{
		{PhaseInput, 1 * time.Millisecond, 10},
		{PhaseUpdate, 4 * time.Millisecond, 40},
		{PhaseEmit, 2 * time.Millisecond, 20},
		{PhaseDraw, 2 * time.Millisecond, 20},
		{PhaseTelemetry, 0, 0},
		{PhaseUI, 1 * time.Millisecond, 10},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := s.PhaseAvg[tt.phase]; got != tt.avg {
				t.Errorf("avg = %v, want %v", got, tt.avg)
			}
			if got := s.PhasePct[tt.phase]; got != tt.pct {
				t.Errorf("pct = %v, want %v", got, tt.pct)
			}
		})
	}
}

func TestFrameTimerWindowAndInterval(t *testing.T) {
	f, c := newTestTimer(2)

	for _, busy := range []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 8 * time.Millisecond} {
		f.Begin()
		f.Enter(PhaseUpdate)
		c.advance(busy)
		f.End()
		// Idle until the next frame: counted in the interval only.
		c.advance(20*time.Millisecond - busy)
	}

	s := f.Stats()
	if s.Frames != 2 {
		t.Errorf("frames = %d, want 2", s.Frames)
	}
	if s.AvgBusy != 6*time.Millisecond || s.MaxBusy != 8*time.Millisecond {
		t.Errorf("avg = %v, max = %v, want 6ms and 8ms", s.AvgBusy, s.MaxBusy)
	}
	if s.Interval != 20*time.Millisecond || s.FPS != 50 {
		t.Errorf("interval = %v, fps = %v, want 20ms and 50", s.Interval, s.FPS)
	}
	if s.PhasePct[PhaseUpdate] != 100 {
		t.Errorf("update pct = %v, want 100", s.PhasePct[PhaseUpdate])
	}
}

func TestFrameTimerIgnoresCallsOutsideFrame(t *testing.T) {
	f, c := newTestTimer(4)
	f.Enter(PhaseDraw)
	c.advance(time.Millisecond)
	f.End()

	s := f.Stats()
	if s.Frames != 0 || s.AvgBusy != 0 || s.FPS != 0 {
		t.Errorf("stats = %+v, want empty", s)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var stats PerfStats
	stats.Frames = 30
	stats.AvgBusy = 2 * time.Millisecond
	stats.PhasePct[PhaseUpdate] = 60
	stats.PhasePct[PhaseDraw] = 30
	stats.PhasePct[PhaseEmit] = 10

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgBusyUS != 2000 || row.Frames != 30 {
		t.Errorf("row = %+v", row)
	}
	if row.UpdatePct != 60 || row.DrawPct != 30 || row.EmitPct != 10 || row.UIPct != 0 || row.InputPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}

func TestPhaseNames(t *testing.T) {
	want := []string{"input", "update", "emit", "draw", "telemetry", "ui"}
	phases := Phases()
	if len(phases) != len(want) {
		t.Fatalf("len(Phases()) = %d, want %d", len(phases), len(want))
	}
	for i, p := range phases {
		if p.String() != want[i] {
			t.Errorf("Phases()[%d] = %q, want %q", i, p, want[i])
		}
	}
	if got := Phase(99).String(); got != "unknown" {
		t.Errorf("Phase(99) = %q", got)
	}
}
