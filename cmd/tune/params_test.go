package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/telemetry"
)

func mustDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(mustDefaults(t))
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg := mustDefaults(t)
	pv := NewParamVector(cfg)

	pv.ApplyToConfig(cfg, []float64{-5, 100, 1.5, 4})

	if cfg.Emitter.Life != 0.25 {
		t.Errorf("life = %v, want lower bound 0.25", cfg.Emitter.Life)
	}
	if cfg.Emitter.Mass != 50 {
		t.Errorf("mass = %v, want upper bound 50", cfg.Emitter.Mass)
	}
	if cfg.Emitter.VelocityX != 1.5 || cfg.Emitter.VelocityY != 3 {
		t.Errorf("velocity = (%v, %v), want (1.5, 3)", cfg.Emitter.VelocityX, cfg.Emitter.VelocityY)
	}
}

func TestSummarize(t *testing.T) {
	windows := []telemetry.WindowStats{
		{AliveFrac: 0.4, InViewFrac: 1},
		{AliveFrac: 0.6, InViewFrac: 0.5},
	}
	s := summarize(windows)

	if math.Abs(s.aliveFrac-0.5) > 1e-9 || math.Abs(s.inViewFrac-0.75) > 1e-9 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.aliveCV-0.2) > 1e-9 {
		t.Errorf("aliveCV = %v, want 0.2", s.aliveCV)
	}
	if got := summarize(nil); got != (evalSummary{}) {
		t.Errorf("summarize(nil) = %+v", got)
	}
}

func TestScorePrefersTargets(t *testing.T) {
	cfg := mustDefaults(t)
	fe := NewFitnessEvaluator(NewParamVector(cfg), []int64{1}, cfg, Scenario{})

	onTarget := fe.score(evalSummary{aliveFrac: cfg.Tune.TargetAlive, inViewFrac: cfg.Tune.TargetInView})
	offTarget := fe.score(evalSummary{aliveFrac: 0.1, inViewFrac: 0.2, aliveCV: 0.5})

	if onTarget != 0 {
		t.Errorf("score at targets = %v, want 0", onTarget)
	}
	if offTarget <= onTarget {
		t.Errorf("off-target score %v should exceed %v", offTarget, onTarget)
	}
}

func TestEvaluateRunsHeadless(t *testing.T) {
	cfg := mustDefaults(t)
	cfg.Tune.WarmupSeconds = 1
	cfg.Tune.SampleSeconds = 3
	cfg.Simulation.Capacity = 50

	fe := NewFitnessEvaluator(NewParamVector(cfg), []int64{1, 2}, cfg, Scenario{Gravity: true})
	fitness := fe.Evaluate(fe.params.DefaultVector())

	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		t.Fatalf("fitness = %v", fitness)
	}
	alive, inView, _ := fe.Last()
	if alive <= 0 || alive > 1 || inView < 0 || inView > 1 {
		t.Errorf("alive = %v, in view = %v", alive, inView)
	}
}
