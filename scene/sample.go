package scene

import (
	"math"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/components"
	"github.com/pthm-cable/particles/systems"
	"github.com/pthm-cable/particles/telemetry"
)

// Sample collects the live particle distributions of every system for a
// telemetry window. Particles inside [-extent, extent] count as in view.
func (s *Scene) Sample(extent float32) telemetry.Sample {
	var out telemetry.Sample
	s.Each(func(_ components.Label, ps *systems.ParticleSystem) {
		out.Systems++
		out.Capacity += ps.Capacity()
		for _, p := range ps.Particles() {
			if !p.Alive() {
				continue
			}
			out.Alive++
			if camera.InExtent(p.Position.X(), p.Position.Y(), extent) {
				out.InView++
			}
			out.Lives = append(out.Lives, float64(p.Life))
			out.Speeds = append(out.Speeds, math.Hypot(float64(p.Velocity.X()), float64(p.Velocity.Y())))
		}
	})
	return out
}
