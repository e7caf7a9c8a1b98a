package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/telemetry"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	AliveFrac  float64 `csv:"alive_frac"`
	InViewFrac float64 `csv:"in_view_frac"`
	AliveCV    float64 `csv:"alive_cv"`
	Life       float64 `csv:"life"`
	Mass       float64 `csv:"mass"`
	VelocityX  float64 `csv:"velocity_x"`
	VelocityY  float64 `csv:"velocity_y"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = use config)")
	emitterName := flag.String("emitter", "uniform", "Emitter kind to tune")
	gravity := flag.Bool("gravity", false, "Enable the gravity well during evaluation")
	wind := flag.Bool("wind", false, "Enable the wind zone during evaluation")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	kind, err := systems.ParseEmitterKind(*emitterName)
	if err != nil {
		log.Fatal(err)
	}

	evals := *maxEvals
	if evals <= 0 {
		evals = baseCfg.Tune.MaxEvaluations
	}

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg, Scenario{
		Emitter: kind,
		Gravity: *gravity,
		Wind:    *wind,
	})

	tuneLog, err := telemetry.CreateCSVLog(*outputDir, "tune_log.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer tuneLog.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	// The search runs in normalized [0,1] space.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			aliveFrac, inViewFrac, aliveCV := evaluator.Last()
			rec := EvalRecord{
				Eval:       evalCount,
				Fitness:    fitness,
				AliveFrac:  aliveFrac,
				InViewFrac: inViewFrac,
				AliveCV:    aliveCV,
				Life:       clamped[0],
				Mass:       clamped[1],
				VelocityX:  clamped[2],
				VelocityY:  clamped[3],
			}
			if err := tuneLog.Append([]EvalRecord{rec}); err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(evals-evalCount, 0)) * avgPerEval
			fmt.Printf("Eval %d/%d: alive=%.2f in_view=%.2f cv=%.3f fitness=%.5f (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, evals, aliveFrac, inViewFrac, aliveCV, fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: evals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}
	method := &optimize.NelderMead{}

	fmt.Printf("Starting Nelder-Mead search over %d parameters, emitter=%s, max_evals=%d\n",
		params.Dim(), kind, evals)
	fmt.Printf("Seeds per evaluation: %d, targets: alive=%.2f in_view=%.2f\n",
		*seeds, baseCfg.Tune.TargetAlive, baseCfg.Tune.TargetInView)

	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.5f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
