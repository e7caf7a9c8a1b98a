// Package components defines ECS components for particle system entities.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/systems"
)

// Emission holds the point new particles appear at. The UI writes it every
// frame and the scene copies it into the owned system before updating.
type Emission struct {
	Origin mgl32.Vec2
}

// Field owns one particle system. Exactly one entity holds a given system.
type Field struct {
	System *systems.ParticleSystem
}

// Label describes a particle system entity for display.
type Label struct {
	Name    string
	Emitter systems.EmitterKind
	Order   uint32 // Creation order, stable across removals
}
