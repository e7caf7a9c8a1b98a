package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Scene size at window end
	Systems  int `csv:"systems"`
	Capacity int `csv:"capacity"`
	Alive    int `csv:"alive"`

	AliveFrac  float64 `csv:"alive_frac"`
	InViewFrac float64 `csv:"in_view_frac"` // of live particles

	// Events during window
	Respawns       int     `csv:"respawns"`
	RespawnRate    float64 `csv:"respawn_rate"` // per simulated second
	EmitFrames     int     `csv:"emit_frames"`
	SystemsAdded   int     `csv:"systems_added"`
	SystemsRemoved int     `csv:"systems_removed"`

	// Remaining life distribution (sampled at window end)
	LifeMean float64 `csv:"life_mean"`
	LifeP10  float64 `csv:"life_p10"`
	LifeP50  float64 `csv:"life_p50"`
	LifeP90  float64 `csv:"life_p90"`

	// Speed distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeSpreadStats calculates mean, population std, median and p90.
func ComputeSpreadStats(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("systems", s.Systems),
		slog.Int("capacity", s.Capacity),
		slog.Int("alive", s.Alive),
		slog.Float64("alive_frac", s.AliveFrac),
		slog.Float64("in_view_frac", s.InViewFrac),
		slog.Int("respawns", s.Respawns),
		slog.Float64("respawn_rate", s.RespawnRate),
		slog.Int("emit_frames", s.EmitFrames),
		slog.Int("systems_added", s.SystemsAdded),
		slog.Int("systems_removed", s.SystemsRemoved),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_p10", s.LifeP10),
		slog.Float64("life_p50", s.LifeP50),
		slog.Float64("life_p90", s.LifeP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
