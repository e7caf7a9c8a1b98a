package systems

import "github.com/go-gl/mathgl/mgl32"

// Surface is the drawing target a ParticleSystem renders onto.
type Surface interface {
	// DrawPoint draws a single marker.
	DrawPoint(pos mgl32.Vec2, size float32, color mgl32.Vec4)
	// DrawPoints draws one batch; the three slices have equal length.
	DrawPoints(positions []mgl32.Vec2, sizes []float32, colors []mgl32.Vec4)
}

// Batch is a flat, render-ready copy of the live particles of one system.
type Batch struct {
	Positions []mgl32.Vec2
	Sizes     []float32
	Colors    []mgl32.Vec4
}

// Reset empties the batch, keeping its buffers.
func (b *Batch) Reset() {
	b.Positions = b.Positions[:0]
	b.Sizes = b.Sizes[:0]
	b.Colors = b.Colors[:0]
}

// Len returns the number of points in the batch.
func (b *Batch) Len() int {
	return len(b.Positions)
}

func (b *Batch) add(p *Particle) {
	b.Positions = append(b.Positions, p.Position)
	b.Sizes = append(b.Sizes, p.Mass)
	b.Colors = append(b.Colors, p.Color)
}
