package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// EmitterKind identifies an emitter variant.
type EmitterKind uint8

const (
	EmitterUniform EmitterKind = iota
	EmitterDirectional
	EmitterExplosion
)

// EmitterKinds lists every emitter variant in display order.
func EmitterKinds() []EmitterKind {
	return []EmitterKind{EmitterUniform, EmitterDirectional, EmitterExplosion}
}

// String returns the display name of the kind.
func (k EmitterKind) String() string {
	switch k {
	case EmitterUniform:
		return "Uniform"
	case EmitterDirectional:
		return "Directional"
	case EmitterExplosion:
		return "Explosion"
	default:
		return fmt.Sprintf("EmitterKind(%d)", uint8(k))
	}
}

// ParseEmitterKind maps a case-sensitive lower-case name to a kind.
func ParseEmitterKind(name string) (EmitterKind, error) {
	switch name {
	case "uniform":
		return EmitterUniform, nil
	case "directional":
		return EmitterDirectional, nil
	case "explosion":
		return EmitterExplosion, nil
	}
	return 0, fmt.Errorf("unknown emitter kind %q", name)
}

// Errors returned by emitter setters.
var (
	ErrNonPositiveMass = errors.New("emitter mass must be > 0")
	ErrNonPositiveLife = errors.New("emitter life must be > 0")
)

// Default tunables shared by all emitter variants.
const (
	DefaultEmitterMass      float32 = 10
	DefaultEmitterLife      float32 = 4
	DefaultEmitterVelocityX float32 = 1
	DefaultEmitterVelocityY float32 = 1
)

// Emitter reinitializes expired particles at an emission origin.
// The set of emitters is closed: Uniform, Directional and Explosion.
type Emitter interface {
	Kind() EmitterKind
	// Spawn respawns p at origin if its life is at or below the respawn
	// threshold. It reports whether the particle was respawned.
	Spawn(p *Particle, origin mgl32.Vec2) bool

	Mass() float32
	SetMass(m float32) error
	Life() float32
	SetLife(l float32) error
	VelocityX() float32
	SetVelocityX(v float32)
	VelocityY() float32
	SetVelocityY(v float32)
	RespawnThreshold() float32
	SetRespawnThreshold(t float32)

	sealedEmitter()
}

// NewEmitter creates an emitter of the given kind. A nil rng gets a
// time-seeded generator.
func NewEmitter(kind EmitterKind, rng *rand.Rand) (Emitter, error) {
	switch kind {
	case EmitterUniform:
		return NewUniform(rng), nil
	case EmitterDirectional:
		return NewDirectional(rng), nil
	case EmitterExplosion:
		return NewExplosion(rng), nil
	}
	return nil, fmt.Errorf("unknown emitter kind %d", kind)
}

// emitterParams holds the tunables and the random source every variant shares.
// The generator is seeded once and drawn from on every spawn.
type emitterParams struct {
	rng       *rand.Rand
	mass      float32
	life      float32
	velocityX float32
	velocityY float32
	threshold float32
}

func newEmitterParams(rng *rand.Rand) emitterParams {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return emitterParams{
		rng:       rng,
		mass:      DefaultEmitterMass,
		life:      DefaultEmitterLife,
		velocityX: DefaultEmitterVelocityX,
		velocityY: DefaultEmitterVelocityY,
		threshold: DefaultRespawnThreshold,
	}
}

func (e *emitterParams) Mass() float32 { return e.mass }

func (e *emitterParams) SetMass(m float32) error {
	if !(m > 0) {
		return fmt.Errorf("%w: got %v", ErrNonPositiveMass, m)
	}
	e.mass = m
	return nil
}

func (e *emitterParams) Life() float32 { return e.life }

func (e *emitterParams) SetLife(l float32) error {
	if !(l > 0) {
		return fmt.Errorf("%w: got %v", ErrNonPositiveLife, l)
	}
	e.life = l
	return nil
}

func (e *emitterParams) VelocityX() float32     { return e.velocityX }
func (e *emitterParams) SetVelocityX(v float32) { e.velocityX = v }
func (e *emitterParams) VelocityY() float32     { return e.velocityY }
func (e *emitterParams) SetVelocityY(v float32) { e.velocityY = v }

func (e *emitterParams) RespawnThreshold() float32     { return e.threshold }
func (e *emitterParams) SetRespawnThreshold(t float32) { e.threshold = t }

func (e *emitterParams) sealedEmitter() {}

// unit returns a draw in (0, 1], so scaled masses and lives stay positive.
func (e *emitterParams) unit() float32 {
	return 1 - e.rng.Float32()
}

// symmetric returns a draw in [-1, 1).
func (e *emitterParams) symmetric() float32 {
	return 2*e.rng.Float32() - 1
}

// finish places p at origin with the given kinematics and a random colour
// whose alpha follows the new life.
func (e *emitterParams) finish(p *Particle, origin, velocity mgl32.Vec2, mass, life float32) {
	p.Position = origin
	p.Velocity = velocity
	p.Mass = mass
	p.Life = life
	p.Color = mgl32.Vec4{e.rng.Float32(), e.rng.Float32(), e.rng.Float32(), clamp01(min(life, 1))}
}

// Uniform sprays particles in a random direction, each axis scaled by the
// configured velocity.
type Uniform struct {
	emitterParams
}

// NewUniform creates a uniform emitter with default tunables.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{emitterParams: newEmitterParams(rng)}
}

// Kind implements Emitter.
func (u *Uniform) Kind() EmitterKind { return EmitterUniform }

// Spawn implements Emitter.
func (u *Uniform) Spawn(p *Particle, origin mgl32.Vec2) bool {
	if !p.Expired(u.threshold) {
		return false
	}
	vel := mgl32.Vec2{u.velocityX * u.symmetric(), u.velocityY * u.symmetric()}
	mass := u.unit() * (u.mass + 1)
	life := u.unit() * (u.life + 1)
	u.finish(p, origin, vel, mass, life)
	return true
}

// Directional emits along +x offset by a constant bias, with a
// non-negative vertical component.
type Directional struct {
	emitterParams
}

// directionalBias is subtracted from the configured x velocity.
const directionalBias float32 = 0.5

// NewDirectional creates a directional emitter with default tunables.
func NewDirectional(rng *rand.Rand) *Directional {
	return &Directional{emitterParams: newEmitterParams(rng)}
}

// Kind implements Emitter.
func (d *Directional) Kind() EmitterKind { return EmitterDirectional }

// Spawn implements Emitter.
func (d *Directional) Spawn(p *Particle, origin mgl32.Vec2) bool {
	if !p.Expired(d.threshold) {
		return false
	}
	vel := mgl32.Vec2{d.velocityX - directionalBias, d.velocityY * d.rng.Float32()}
	mass := d.rng.Float32()*d.mass + 1
	life := d.rng.Float32()*d.life + 1
	d.finish(p, origin, vel, mass, life)
	return true
}

// Explosion throws particles radially at low speed with long lives.
// The velocity tunables are not used.
type Explosion struct {
	emitterParams
}

const (
	explosionSpeed          float32 = 0.2
	explosionLifeMultiplier float32 = 10
)

// NewExplosion creates an explosion emitter with default tunables.
func NewExplosion(rng *rand.Rand) *Explosion {
	return &Explosion{emitterParams: newEmitterParams(rng)}
}

// Kind implements Emitter.
func (x *Explosion) Kind() EmitterKind { return EmitterExplosion }

// Spawn implements Emitter.
func (x *Explosion) Spawn(p *Particle, origin mgl32.Vec2) bool {
	if !p.Expired(x.threshold) {
		return false
	}
	angle := float64(x.rng.Float32()) * 2 * math.Pi
	speed := explosionSpeed * x.rng.Float32()
	vel := mgl32.Vec2{speed * float32(math.Sin(angle)), speed * float32(math.Cos(angle))}
	mass := x.rng.Float32()*x.mass + 1
	life := x.rng.Float32()*explosionLifeMultiplier*x.life + 1
	x.finish(p, origin, vel, mass, life)
	return true
}

// logAttach records an emitter being attached to a system.
func logAttach(e Emitter, origin mgl32.Vec2) {
	slog.Debug("emitter attached", "kind", e.Kind().String(), "x", origin.X(), "y", origin.Y())
}
