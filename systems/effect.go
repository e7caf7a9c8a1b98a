package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// EffectKind identifies an effect variant. Effects are matched by kind,
// never by identity.
type EffectKind uint8

const (
	EffectGravityWell EffectKind = iota
	EffectWind
)

// String returns the display name of the kind.
func (k EffectKind) String() string {
	switch k {
	case EffectGravityWell:
		return "Gravity"
	case EffectWind:
		return "Wind"
	default:
		return fmt.Sprintf("EffectKind(%d)", uint8(k))
	}
}

// Effect produces a force for a live particle. The set of effects is closed:
// GravityWell and Wind are the only implementations.
type Effect interface {
	Kind() EffectKind
	// Force returns the force acting on p. An effect may also adjust the
	// particle's velocity directly (see Wind).
	Force(p *Particle) mgl32.Vec2

	sealedEffect()
}

// Defaults mirror the stock well and wind zone of the desktop app.
const (
	DefaultWellMass      float32 = 100
	DefaultWellG         float32 = 0.1
	DefaultWellSoftening float32 = 0.01
	DefaultWindRadius    float32 = 0.1
)

// minWellDenominator bounds the inverse-square denominator so an unsoftened
// well stays finite for particles arbitrarily close to it.
const minWellDenominator float32 = 1e-12

// Errors returned by GravityWell.Validate.
var (
	ErrNonPositiveWellMass  = errors.New("gravity well mass must be > 0")
	ErrNonPositiveSoftening = errors.New("gravity well softening must be > 0")
)

// GravityWell pulls particles toward a fixed point with an inverse-square law.
type GravityWell struct {
	Position mgl32.Vec2
	Mass     float32
	G        float32
	// Softening is added in quadrature to the distance so a particle sitting
	// on the well does not produce an infinite force.
	Softening float32
}

// NewGravityWell creates a well at pos.
func NewGravityWell(pos mgl32.Vec2, mass, g float32) *GravityWell {
	return &GravityWell{Position: pos, Mass: mass, G: g, Softening: DefaultWellSoftening}
}

// DefaultGravityWell returns the stock well at (0.5, 0.5).
func DefaultGravityWell() *GravityWell {
	return NewGravityWell(mgl32.Vec2{0.5, 0.5}, DefaultWellMass, DefaultWellG)
}

// Validate rejects a well without positive mass or softening.
func (w *GravityWell) Validate() error {
	var errs []error
	if !(w.Mass > 0) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrNonPositiveWellMass, w.Mass))
	}
	if !(w.Softening > 0) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrNonPositiveSoftening, w.Softening))
	}
	return errors.Join(errs...)
}

// Kind implements Effect.
func (w *GravityWell) Kind() EffectKind { return EffectGravityWell }

// Force returns G*M/(d^2+eps^2) along the unit vector toward the well.
// A particle exactly on the well receives no force. The denominator never
// drops below minWellDenominator.
func (w *GravityWell) Force(p *Particle) mgl32.Vec2 {
	dir := w.Position.Sub(p.Position)
	distSq := lengthSq(dir)
	if distSq == 0 {
		return mgl32.Vec2{}
	}
	magnitude := w.G * w.Mass / max(distSq+w.Softening*w.Softening, minWellDenominator)
	return dir.Normalize().Mul(magnitude)
}

func (w *GravityWell) sealedEffect() {}

// Wind pushes particles that pass through a circular zone.
type Wind struct {
	Position mgl32.Vec2
	Strength mgl32.Vec2
	Radius   float32
}

// NewWind creates a wind zone at pos with the default radius.
func NewWind(pos, strength mgl32.Vec2) *Wind {
	return &Wind{Position: pos, Strength: strength, Radius: DefaultWindRadius}
}

// DefaultWind returns the stock zone at the origin blowing toward +x.
func DefaultWind() *Wind {
	return NewWind(mgl32.Vec2{0, 0}, mgl32.Vec2{0.05, 0})
}

// Kind implements Effect.
func (w *Wind) Kind() EffectKind { return EffectWind }

// Force bumps the velocity of a particle inside the zone by Strength and
// reports Strength as its force. Particles outside the zone get neither.
func (w *Wind) Force(p *Particle) mgl32.Vec2 {
	if !w.Contains(p.Position) {
		return mgl32.Vec2{}
	}
	p.Velocity = p.Velocity.Add(w.Strength)
	return w.Strength
}

// Contains reports whether pos lies strictly inside the zone.
func (w *Wind) Contains(pos mgl32.Vec2) bool {
	return lengthSq(pos.Sub(w.Position)) < w.Radius*w.Radius
}

func (w *Wind) sealedEffect() {}
