// Package camera maps simulation space onto the window.
//
// Simulation space is centred on the origin with +y pointing up; the
// square [-Extent, Extent] fills the shorter side of the viewport at zoom 1.
package camera

import "math"

// Camera controls the viewport into simulation space.
type Camera struct {
	// Position is the camera center in simulation coordinates
	X, Y float32

	// Zoom level (1.0 = extent fits the viewport, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Half-size of the square that fits the viewport at zoom 1
	Extent float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the origin with zoom 1.
func New(viewportW, viewportH, extent float32) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Extent:    extent,
		MinZoom:   0.25,
		MaxZoom:   8.0,
	}
}

// PixelsPerUnit returns how many screen pixels one simulation unit spans.
func (c *Camera) PixelsPerUnit() float32 {
	short := min(c.ViewportW, c.ViewportH)
	return short / 2 / c.Extent * c.Zoom
}

// WorldToScreen converts simulation coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.PixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 - (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to simulation coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.PixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y - (sy-c.ViewportH/2)/s
	return wx, wy
}

// ScaleToScreen converts a simulation-space length to pixels.
func (c *Camera) ScaleToScreen(length float32) float32 {
	return length * c.PixelsPerUnit()
}

// IsVisible returns true if a circle at (wx, wy) with the given radius in
// pixels could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radiusPx float32) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	return sx >= -radiusPx && sx <= c.ViewportW+radiusPx &&
		sy >= -radiusPx && sy <= c.ViewportH+radiusPx
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.PixelsPerUnit()
	c.X += dx / s
	c.Y -= dy / s
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the simulation point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X += wx - nx
	c.Y += wy - ny
}

// Reset returns the camera to the origin at zoom 1.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the simulation-space bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.PixelsPerUnit()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// InExtent reports whether (wx, wy) lies inside the square [-extent, extent].
func InExtent(wx, wy, extent float32) bool {
	return absf(wx) <= extent && absf(wy) <= extent
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
