// Package renderer draws match snapshots with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/camera"
)

// BackgroundRenderer draws the arena floor: a world-aligned grid and the boundary.
type BackgroundRenderer struct {
	spacing float64
	base    rl.Color
	line    rl.Color
	border  rl.Color
}

// NewBackgroundRenderer creates a background with grid lines every spacing world units.
func NewBackgroundRenderer(spacing float64, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		spacing: spacing,
		base:    rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		line:    rl.Color{R: baseR + 18, G: baseG + 18, B: baseB + 22, A: 255},
		border:  rl.Color{R: 200, G: 70, B: 70, A: 255},
	}
}

// Draw clears the screen and draws the visible part of the grid.
func (b *BackgroundRenderer) Draw(cam *camera.Camera, halfWorld float64) {
	rl.ClearBackground(rl.Black)

	// Floor
	x0, y0 := cam.WorldToScreen(-halfWorld, -halfWorld)
	x1, y1 := cam.WorldToScreen(halfWorld, halfWorld)
	rl.DrawRectangleV(
		rl.Vector2{X: float32(x0), Y: float32(y0)},
		rl.Vector2{X: float32(x1 - x0), Y: float32(y1 - y0)},
		b.base,
	)

	// Grid lines, only where visible
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	minX, maxX = math.Max(minX, -halfWorld), math.Min(maxX, halfWorld)
	minY, maxY = math.Max(minY, -halfWorld), math.Min(maxY, halfWorld)

	for x := math.Ceil(minX/b.spacing) * b.spacing; x <= maxX; x += b.spacing {
		sx, sy0 := cam.WorldToScreen(x, minY)
		_, sy1 := cam.WorldToScreen(x, maxY)
		rl.DrawLineV(rl.Vector2{X: float32(sx), Y: float32(sy0)}, rl.Vector2{X: float32(sx), Y: float32(sy1)}, b.line)
	}
	for y := math.Ceil(minY/b.spacing) * b.spacing; y <= maxY; y += b.spacing {
		sx0, sy := cam.WorldToScreen(minX, y)
		sx1, _ := cam.WorldToScreen(maxX, y)
		rl.DrawLineV(rl.Vector2{X: float32(sx0), Y: float32(sy)}, rl.Vector2{X: float32(sx1), Y: float32(sy)}, b.line)
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(x0),
		Y:      float32(y0),
		Width:  float32(x1 - x0),
		Height: float32(y1 - y0),
	}, 3, b.border)
}
