package scene

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/systems"
)

// EmitterSettings are the tunables applied to every new emitter.
type EmitterSettings struct {
	Mass             float32
	Life             float32
	VelocityX        float32
	VelocityY        float32
	RespawnThreshold float32
}

// Settings configure a Scene.
type Settings struct {
	Seed              int64 // 0 = time-based
	Capacity          int
	ParallelThreshold int // Total particles before updates use workers (0 = never)

	Emitter EmitterSettings

	WellPosition  mgl32.Vec2
	WellMass      float32
	WellG         float32
	WellSoftening float32

	WindPosition mgl32.Vec2
	WindStrength mgl32.Vec2
	WindRadius   float32
}

// DefaultSettings mirrors the stock desktop app.
func DefaultSettings() Settings {
	return Settings{
		Capacity: 200,
		Emitter: EmitterSettings{
			Mass:             systems.DefaultEmitterMass,
			Life:             systems.DefaultEmitterLife,
			VelocityX:        systems.DefaultEmitterVelocityX,
			VelocityY:        systems.DefaultEmitterVelocityY,
			RespawnThreshold: systems.DefaultRespawnThreshold,
		},
		WellPosition:  mgl32.Vec2{0.5, 0.5},
		WellMass:      systems.DefaultWellMass,
		WellG:         systems.DefaultWellG,
		WellSoftening: systems.DefaultWellSoftening,
		WindStrength:  mgl32.Vec2{0.05, 0},
		WindRadius:    systems.DefaultWindRadius,
	}
}

// SettingsFromConfig builds scene settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config, seed int64) Settings {
	return Settings{
		Seed:              seed,
		Capacity:          cfg.Simulation.Capacity,
		ParallelThreshold: cfg.Simulation.ParallelThreshold,
		Emitter: EmitterSettings{
			Mass:             float32(cfg.Emitter.Mass),
			Life:             float32(cfg.Emitter.Life),
			VelocityX:        float32(cfg.Emitter.VelocityX),
			VelocityY:        float32(cfg.Emitter.VelocityY),
			RespawnThreshold: float32(cfg.Emitter.RespawnThreshold),
		},
		WellPosition:  vec2(cfg.Gravity.Position),
		WellMass:      float32(cfg.Gravity.Mass),
		WellG:         float32(cfg.Gravity.G),
		WellSoftening: float32(cfg.Gravity.Softening),
		WindPosition:  vec2(cfg.Wind.Position),
		WindStrength:  vec2(cfg.Wind.Strength),
		WindRadius:    float32(cfg.Wind.Radius),
	}
}

func vec2(v [2]float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(v[0]), float32(v[1])}
}

// newEmitter creates an emitter of kind with its own generator seeded from rng.
func (s Settings) newEmitter(kind systems.EmitterKind, rng *rand.Rand) (systems.Emitter, error) {
	e, err := systems.NewEmitter(kind, rand.New(rand.NewSource(rng.Int63())))
	if err != nil {
		return nil, err
	}
	if err := e.SetMass(s.Emitter.Mass); err != nil {
		return nil, fmt.Errorf("configuring %v emitter: %w", kind, err)
	}
	if err := e.SetLife(s.Emitter.Life); err != nil {
		return nil, fmt.Errorf("configuring %v emitter: %w", kind, err)
	}
	e.SetVelocityX(s.Emitter.VelocityX)
	e.SetVelocityY(s.Emitter.VelocityY)
	e.SetRespawnThreshold(s.Emitter.RespawnThreshold)
	return e, nil
}

// newEffect creates a fresh effect of kind.
func (s Settings) newEffect(kind systems.EffectKind) (systems.Effect, error) {
	switch kind {
	case systems.EffectGravityWell:
		w := systems.NewGravityWell(s.WellPosition, s.WellMass, s.WellG)
		w.Softening = s.WellSoftening
		if err := w.Validate(); err != nil {
			return nil, err
		}
		return w, nil
	case systems.EffectWind:
		w := systems.NewWind(s.WindPosition, s.WindStrength)
		w.Radius = s.WindRadius
		return w, nil
	}
	return nil, fmt.Errorf("unknown effect kind %d", kind)
}
