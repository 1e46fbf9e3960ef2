// Package camera provides a 2D camera that follows the player through the arena.
package camera

import "math"

// Camera controls the viewport into the arena.
// The world is a square centered on the origin; the camera never wraps.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Half the world side length
	HalfWorld float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera at the origin with 1:1 zoom.
func New(viewportW, viewportH, halfWorld, minZoom, maxZoom float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		HalfWorld: halfWorld,
		MinZoom:   minZoom,
		MaxZoom:   maxZoom,
	}
}

// ZoomForRadius maps the player's radius to a zoom level: the start radius
// sees the closest view and the max radius the widest.
func ZoomForRadius(radius, startRadius, maxRadius, minZoom, maxZoom float64) float64 {
	if maxRadius <= startRadius {
		return maxZoom
	}
	normalized := (radius - startRadius) / (maxRadius - startRadius)
	return clamp(maxZoom-(maxZoom-minZoom)*normalized, minZoom, maxZoom)
}

// Follow centers the camera on (x, y) and sets the zoom for the given radius.
func (c *Camera) Follow(x, y, radius, startRadius, maxRadius float64) {
	c.X = clamp(x, -c.HalfWorld, c.HalfWorld)
	c.Y = clamp(y, -c.HalfWorld, c.HalfWorld)
	c.Zoom = ZoomForRadius(radius, startRadius, maxRadius, c.MinZoom, c.MaxZoom)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
// The result is not clamped; pointers outside the arena steer toward its edge.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(wx-c.X) <= halfW && math.Abs(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
