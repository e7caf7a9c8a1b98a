package systems

import "github.com/go-gl/mathgl/mgl32"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lengthSq returns the squared length of v.
func lengthSq(v mgl32.Vec2) float32 {
	return v.Dot(v)
}
