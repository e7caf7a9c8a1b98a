package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}

	if cfg.Simulation.Capacity != 200 {
		t.Errorf("capacity = %d, want 200", cfg.Simulation.Capacity)
	}
	if cfg.Emitter.Mass != 10 || cfg.Emitter.Life != 4 {
		t.Errorf("emitter mass/life = %v/%v, want 10/4", cfg.Emitter.Mass, cfg.Emitter.Life)
	}
	if cfg.Gravity.Position != [2]float64{0.5, 0.5} {
		t.Errorf("gravity position = %v", cfg.Gravity.Position)
	}
	if cfg.Wind.Strength != [2]float64{0.05, 0} {
		t.Errorf("wind strength = %v", cfg.Wind.Strength)
	}
	if cfg.Derived.ScreenW32 != 1270 || cfg.Derived.ScreenH32 != 900 {
		t.Errorf("derived screen = %vx%v", cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}
	if cfg.Derived.StatsFrames < 590 || cfg.Derived.StatsFrames > 600 {
		t.Errorf("stats frames = %d, want about 600", cfg.Derived.StatsFrames)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("simulation:\n  capacity: 50\nemitter:\n  life: 2.5\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Simulation.Capacity != 50 {
		t.Errorf("capacity = %d, want 50", cfg.Simulation.Capacity)
	}
	if cfg.Emitter.Life != 2.5 {
		t.Errorf("life = %v, want 2.5", cfg.Emitter.Life)
	}
	// Untouched fields keep their defaults
	if cfg.Emitter.Mass != 10 || cfg.Simulation.MaxCapacity != 1000 {
		t.Errorf("defaults lost: mass %v max_capacity %d", cfg.Emitter.Mass, cfg.Simulation.MaxCapacity)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative capacity", "simulation:\n  capacity: -1\n", "simulation.capacity"},
		{"zero mass", "emitter:\n  mass: 0\n", "emitter.mass"},
		{"negative life", "emitter:\n  life: -2\n", "emitter.life"},
		{"zero softening", "gravity:\n  softening: 0\n", "gravity.softening"},
		{"capacity above max", "simulation:\n  capacity: 2000\n", "max_capacity"},
		{"bad yaml", "simulation: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadAndWriteYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("wind:\n  radius: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Wind.Radius != 0.3 {
		t.Errorf("radius = %v, want 0.3", cfg.Wind.Radius)
	}

	out := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if again.Wind.Radius != 0.3 || again.Simulation.Capacity != cfg.Simulation.Capacity {
		t.Errorf("written config lost values: %+v", again.Wind)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}
