package systems

import "github.com/go-gl/mathgl/mgl32"

// DefaultRespawnThreshold is the life value at or below which an emitter
// treats a slot as expired.
const DefaultRespawnThreshold float32 = 0.005

// Particle is one simulated point mass.
// A zero Particle is dead (Life 0) and has no mass.
type Particle struct {
	Mass     float32
	Life     float32
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Color    mgl32.Vec4 // r, g, b, alpha
}

// Alive reports whether the particle takes part in integration.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Expired reports whether the particle may be respawned by an emitter.
func (p *Particle) Expired(threshold float32) bool {
	return p.Life <= threshold
}
