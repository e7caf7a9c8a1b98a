package systems

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNegativeCapacity is returned when a buffer size below zero is requested.
var ErrNegativeCapacity = errors.New("particle capacity must be >= 0")

// Origin marker appearance.
const (
	OriginMarkerSize float32 = 20
)

// OriginMarkerColor is the colour of the emission origin marker.
var OriginMarkerColor = mgl32.Vec4{1.0, 0.98, 0.98, 0.5}

// ParticleSystem owns a particle buffer together with the emitters that
// refill it and the effects that move it.
//
// A system is not safe for concurrent use. Callers run Update and then Draw
// once per frame.
type ParticleSystem struct {
	particles []Particle
	origin    mgl32.Vec2
	emitters  []Emitter
	effects   []Effect

	batch        Batch
	lastRespawns int
}

// NewParticleSystem creates a system with capacity dead particles and no
// emitters or effects.
func NewParticleSystem(capacity int) (*ParticleSystem, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeCapacity, capacity)
	}
	return &ParticleSystem{
		particles: make([]Particle, capacity),
	}, nil
}

// NewParticleSystemWithEmitter creates a system and attaches e at origin.
func NewParticleSystemWithEmitter(e Emitter, capacity int, origin mgl32.Vec2) (*ParticleSystem, error) {
	s, err := NewParticleSystem(capacity)
	if err != nil {
		return nil, err
	}
	s.AddEmitter(e, origin)
	return s, nil
}

// Update advances every particle by dt seconds.
//
// Life is decremented first; particles that are dead afterwards do not move.
// Live particles sum the forces of all effects, divide by their mass and are
// integrated with explicit Euler (velocity, then position).
func (s *ParticleSystem) Update(dt float32) {
	for i := range s.particles {
		p := &s.particles[i]

		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		var force mgl32.Vec2
		for _, effect := range s.effects {
			force = force.Add(effect.Force(p))
		}

		// A massless particle has never been spawned; it gets no acceleration.
		if p.Mass > 0 {
			accel := force.Mul(1 / p.Mass)
			p.Velocity = p.Velocity.Add(accel.Mul(dt))
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
	}
}

// Emit runs the respawn pass. Each emitter is offered the leading
// RespawnCount slots of the buffer, starting at index 0, and refreshes the
// ones that have expired.
func (s *ParticleSystem) Emit() {
	s.lastRespawns = 0
	for _, emitter := range s.emitters {
		n := RespawnCount(len(s.particles), emitter.Life())
		for i := 0; i < n; i++ {
			if emitter.Spawn(&s.particles[i], s.origin) {
				s.lastRespawns++
			}
		}
	}
}

// RespawnCount returns how many leading slots an emitter with the given
// mean life may refresh per frame: floor(capacity / life), at most capacity.
func RespawnCount(capacity int, life float32) int {
	if capacity <= 0 || !(life > 0) {
		return 0
	}
	n := math.Floor(float64(capacity) / float64(life))
	if n > float64(capacity) {
		return capacity
	}
	return int(n)
}

// Draw refills expired slots and then renders the system.
func (s *ParticleSystem) Draw(surface Surface) {
	s.Emit()
	s.Render(surface)
}

// Render draws the origin marker when any emitter is attached and hands
// every live particle to surface in one batch. It does not emit.
func (s *ParticleSystem) Render(surface Surface) {
	if len(s.emitters) > 0 {
		surface.DrawPoint(s.origin, OriginMarkerSize, OriginMarkerColor)
	}

	s.Snapshot(&s.batch)
	surface.DrawPoints(s.batch.Positions, s.batch.Sizes, s.batch.Colors)
}

// Snapshot fills b with the live particles, reusing its buffers.
func (s *ParticleSystem) Snapshot(b *Batch) {
	b.Reset()
	for i := range s.particles {
		if s.particles[i].Alive() {
			b.add(&s.particles[i])
		}
	}
}

// AddEmitter moves the emission origin to origin and attaches e.
// The system owns e from now on.
func (s *ParticleSystem) AddEmitter(e Emitter, origin mgl32.Vec2) {
	s.SetOrigin(origin)
	logAttach(e, origin)
	s.emitters = append(s.emitters, e)
}

// RemoveEmitter detaches the first attached emitter of the same kind as e.
// It reports whether one was removed.
func (s *ParticleSystem) RemoveEmitter(e Emitter) bool {
	i := slices.IndexFunc(s.emitters, func(att Emitter) bool {
		return att.Kind() == e.Kind()
	})
	if i < 0 {
		return false
	}
	s.emitters = slices.Delete(s.emitters, i, i+1)
	return true
}

// AddEffect attaches e. The system owns e from now on.
func (s *ParticleSystem) AddEffect(e Effect) {
	s.effects = append(s.effects, e)
}

// RemoveEffect detaches the first attached effect of the same kind as e.
// It reports whether one was removed; a kind that is not attached is a no-op.
func (s *ParticleSystem) RemoveEffect(e Effect) bool {
	i := slices.IndexFunc(s.effects, func(att Effect) bool {
		return att.Kind() == e.Kind()
	})
	if i < 0 {
		return false
	}
	s.effects = slices.Delete(s.effects, i, i+1)
	return true
}

// HasEffect reports whether an effect of kind is attached.
func (s *ParticleSystem) HasEffect(kind EffectKind) bool {
	return slices.ContainsFunc(s.effects, func(e Effect) bool { return e.Kind() == kind })
}

// Emitters returns the attached emitters. The slice must not be modified.
func (s *ParticleSystem) Emitters() []Emitter {
	return s.emitters
}

// EmitterCount returns the number of attached emitters.
func (s *ParticleSystem) EmitterCount() int {
	return len(s.emitters)
}

// EffectCount returns the number of attached effects.
func (s *ParticleSystem) EffectCount() int {
	return len(s.effects)
}

// Capacity returns the size of the particle buffer.
func (s *ParticleSystem) Capacity() int {
	return len(s.particles)
}

// SetCapacity resizes the buffer to exactly n particles. Particles below
// min(old, n) keep their state; new slots are dead and respawn-eligible.
func (s *ParticleSystem) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeCapacity, n)
	}
	old := len(s.particles)
	switch {
	case n < old:
		clear(s.particles[n:])
		s.particles = s.particles[:n]
	case n > old:
		s.particles = slices.Grow(s.particles, n-old)
		s.particles = s.particles[:n]
		clear(s.particles[old:])
	}
	return nil
}

// Origin returns the emission origin.
func (s *ParticleSystem) Origin() mgl32.Vec2 {
	return s.origin
}

// SetOrigin moves the emission origin.
func (s *ParticleSystem) SetOrigin(origin mgl32.Vec2) {
	s.origin = origin
}

// Particles exposes the particle buffer. Callers may edit particles in
// place but must not keep the slice across SetCapacity.
func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

// AliveCount returns the number of particles with life > 0.
func (s *ParticleSystem) AliveCount() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Alive() {
			n++
		}
	}
	return n
}

// LastRespawns returns how many slots the latest emission pass refreshed.
func (s *ParticleSystem) LastRespawns() int {
	return s.lastRespawns
}
