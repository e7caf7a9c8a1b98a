// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Emitter    EmitterConfig    `yaml:"emitter"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Wind       WindConfig       `yaml:"wind"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Tune       TuneConfig       `yaml:"tune"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SimulationConfig holds driving-loop parameters.
type SimulationConfig struct {
	Speed             float64 `yaml:"speed"`              // Multiplier applied to frame time
	MinSpeed          float64 `yaml:"min_speed"`          // Speed slider lower bound
	MaxSpeed          float64 `yaml:"max_speed"`          // Speed slider upper bound
	HeadlessDT        float64 `yaml:"headless_dt"`        // Fixed step in headless mode (seconds)
	MaxFrameDT        float64 `yaml:"max_frame_dt"`       // Frame time clamp after stalls (seconds, 0 = off)
	InitialSystems    int     `yaml:"initial_systems"`    // Systems created at startup
	InitialEmitter    string  `yaml:"initial_emitter"`    // uniform, directional or explosion
	Capacity          int     `yaml:"capacity"`           // Particles per new system
	MaxCapacity       int     `yaml:"max_capacity"`       // Capacity slider upper bound
	ParallelThreshold int     `yaml:"parallel_threshold"` // Total particles before updates fan out to workers
}

// EmitterConfig holds the tunables given to every new emitter.
type EmitterConfig struct {
	Mass             float64 `yaml:"mass"`
	Life             float64 `yaml:"life"`
	VelocityX        float64 `yaml:"velocity_x"`
	VelocityY        float64 `yaml:"velocity_y"`
	RespawnThreshold float64 `yaml:"respawn_threshold"`
}

// GravityConfig holds the gravity well parameters.
type GravityConfig struct {
	Position  [2]float64 `yaml:"position"`
	Mass      float64    `yaml:"mass"`
	G         float64    `yaml:"g"`
	Softening float64    `yaml:"softening"` // Added in quadrature to the well distance
}

// WindConfig holds the wind zone parameters.
type WindConfig struct {
	Position [2]float64 `yaml:"position"`
	Strength [2]float64 `yaml:"strength"`
	Radius   float64    `yaml:"radius"`
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	PointScale  float64 `yaml:"point_scale"`  // Pixels of radius per unit of particle mass
	WorldExtent float64 `yaml:"world_extent"` // Half-width of the visible simulation space
	Background  [3]int  `yaml:"background"`   // RGB clear colour
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulation per stats window
	FrameWindow int     `yaml:"frame_window"` // Frames averaged by the frame timer
}

// TuneConfig holds the parameter search settings used by cmd/tune.
type TuneConfig struct {
	TargetAlive    float64 `yaml:"target_alive"`    // Desired live fraction of the buffer
	TargetInView   float64 `yaml:"target_in_view"`  // Desired fraction of live particles inside the view
	WarmupSeconds  float64 `yaml:"warmup_seconds"`  // Simulated time before sampling
	SampleSeconds  float64 `yaml:"sample_seconds"`  // Simulated time sampled per evaluation
	MaxEvaluations int     `yaml:"max_evaluations"` // Objective evaluations before stopping
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	HeadlessDT  float32 // Simulation.HeadlessDT as float32
	StatsFrames int     // Frames per telemetry window in headless mode
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Parse(nil)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays data on the embedded defaults, validates the result and
// computes derived values.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// Only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values that would corrupt the simulation.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.Capacity < 0 {
		errs = append(errs, fmt.Errorf("simulation.capacity must be >= 0, got %d", c.Simulation.Capacity))
	}
	if c.Simulation.MaxCapacity < c.Simulation.Capacity {
		errs = append(errs, fmt.Errorf("simulation.max_capacity %d below capacity %d", c.Simulation.MaxCapacity, c.Simulation.Capacity))
	}
	if c.Simulation.InitialSystems < 0 {
		errs = append(errs, fmt.Errorf("simulation.initial_systems must be >= 0, got %d", c.Simulation.InitialSystems))
	}
	if c.Simulation.HeadlessDT <= 0 {
		errs = append(errs, fmt.Errorf("simulation.headless_dt must be > 0, got %v", c.Simulation.HeadlessDT))
	}
	if c.Simulation.MinSpeed > c.Simulation.MaxSpeed {
		errs = append(errs, fmt.Errorf("simulation.min_speed %v above max_speed %v", c.Simulation.MinSpeed, c.Simulation.MaxSpeed))
	}
	if c.Emitter.Mass <= 0 {
		errs = append(errs, fmt.Errorf("emitter.mass must be > 0, got %v", c.Emitter.Mass))
	}
	if c.Emitter.Life <= 0 {
		errs = append(errs, fmt.Errorf("emitter.life must be > 0, got %v", c.Emitter.Life))
	}
	if c.Gravity.Mass <= 0 {
		errs = append(errs, fmt.Errorf("gravity.mass must be > 0, got %v", c.Gravity.Mass))
	}
	if c.Gravity.Softening <= 0 {
		errs = append(errs, fmt.Errorf("gravity.softening must be > 0, got %v", c.Gravity.Softening))
	}
	if c.Wind.Radius < 0 {
		errs = append(errs, fmt.Errorf("wind.radius must be >= 0, got %v", c.Wind.Radius))
	}
	if c.Render.WorldExtent <= 0 {
		errs = append(errs, fmt.Errorf("render.world_extent must be > 0, got %v", c.Render.WorldExtent))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.HeadlessDT = float32(c.Simulation.HeadlessDT)

	frames := int(c.Telemetry.StatsWindow / c.Simulation.HeadlessDT)
	if frames < 1 {
		frames = 1
	}
	c.Derived.StatsFrames = frames
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
