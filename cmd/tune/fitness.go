package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/scene"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/telemetry"
)

// Scenario fixes everything except the searched parameters.
type Scenario struct {
	Emitter systems.EmitterKind
	Gravity bool
	Wind    bool
}

// FitnessEvaluator runs headless scenes and scores them (lower = better).
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	scenario   Scenario

	mu   sync.Mutex
	last evalSummary
}

// evalSummary averages the sampled windows of one evaluation over seeds.
type evalSummary struct {
	aliveFrac  float64
	inViewFrac float64
	aliveCV    float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, sc Scenario) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		scenario:   sc,
	}
}

// Last returns the averages from the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() (aliveFrac, inViewFrac, aliveCV float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.aliveFrac, fe.last.inViewFrac, fe.last.aliveCV
}

// Evaluate scores a raw parameter vector averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]evalSummary, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runScene(cfg, s)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = summarize(windows)
		}(i, seed)
	}
	wg.Wait()

	var total evalSummary
	for i, r := range results {
		if errs[i] != nil {
			// Parameters the emitters reject are infeasible.
			return math.Inf(1)
		}
		total.aliveFrac += r.aliveFrac
		total.inViewFrac += r.inViewFrac
		total.aliveCV += r.aliveCV
	}
	n := float64(len(results))
	avg := evalSummary{
		aliveFrac:  total.aliveFrac / n,
		inViewFrac: total.inViewFrac / n,
		aliveCV:    total.aliveCV / n,
	}

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fe.score(avg)
}

// Score weights.
const (
	weightAlive     = 1.0
	weightInView    = 1.0
	weightStability = 0.25
)

// score is the weighted squared distance from the targets plus a penalty
// for a fluctuating live count.
func (fe *FitnessEvaluator) score(s evalSummary) float64 {
	dAlive := s.aliveFrac - fe.baseConfig.Tune.TargetAlive
	dView := s.inViewFrac - fe.baseConfig.Tune.TargetInView
	return weightAlive*dAlive*dAlive + weightInView*dView*dView + weightStability*s.aliveCV*s.aliveCV
}

// summarize averages sampled windows. The live-count coefficient of
// variation measures how much the buffers pulse.
func summarize(windows []telemetry.WindowStats) evalSummary {
	if len(windows) == 0 {
		return evalSummary{}
	}
	alive := make([]float64, len(windows))
	view := make([]float64, len(windows))
	for i, w := range windows {
		alive[i] = w.AliveFrac
		view[i] = w.InViewFrac
	}
	mean, std := stat.PopMeanStdDev(alive, nil)
	var cv float64
	if mean > 0 {
		cv = std / mean
	}
	return evalSummary{
		aliveFrac:  mean,
		inViewFrac: stat.Mean(view, nil),
		aliveCV:    cv,
	}
}

// runScene simulates one seed: a warmup period, then one-second windows
// sampled until the sample period ends.
func (fe *FitnessEvaluator) runScene(cfg *config.Config, seed int64) ([]telemetry.WindowStats, error) {
	sc, err := scene.New(scene.SettingsFromConfig(cfg, seed))
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	for i := 0; i < max(cfg.Simulation.InitialSystems, 1); i++ {
		if _, err := sc.Spawn(fe.scenario.Emitter, mgl32.Vec2{}); err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
	}
	if err := sc.SetEffect(systems.EffectGravityWell, fe.scenario.Gravity); err != nil {
		return nil, err
	}
	if err := sc.SetEffect(systems.EffectWind, fe.scenario.Wind); err != nil {
		return nil, err
	}

	dt := cfg.Derived.HeadlessDT
	extent := float32(cfg.Render.WorldExtent)
	warmupTicks := int32(cfg.Tune.WarmupSeconds / float64(dt))
	sampleTicks := int32(cfg.Tune.SampleSeconds / float64(dt))

	collector := telemetry.NewCollector(1.0)
	var windows []telemetry.WindowStats

	for tick := int32(1); tick <= warmupTicks+sampleTicks; tick++ {
		sc.Step(dt)
		sc.Emit()

		if tick <= warmupTicks {
			continue
		}
		_, _, respawns := sc.Counts()
		collector.RecordFrame(dt, respawns)
		if collector.ShouldFlush() {
			windows = append(windows, collector.Flush(tick-warmupTicks, sc.Sample(extent)))
		}
	}
	return windows, nil
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	// Config holds only values and fixed-size arrays.
	cfg := *fe.baseConfig
	return &cfg
}
