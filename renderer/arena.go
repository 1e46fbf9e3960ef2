package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/camera"
	"github.com/pthm-cable/gobble/game"
	"github.com/pthm-cable/gobble/systems"
)

// pelletPalette stands in for the pellet glyphs; the default raylib font
// has no emoji.
var pelletPalette = [...]rl.Color{
	{R: 240, G: 110, B: 120, A: 255},
	{R: 120, G: 220, B: 130, A: 255},
	{R: 250, G: 200, B: 90, A: 255},
	{R: 200, G: 140, B: 90, A: 255},
	{R: 240, G: 230, B: 200, A: 255},
	{R: 240, G: 140, B: 200, A: 255},
	{R: 150, G: 100, B: 210, A: 255},
	{R: 220, G: 50, B: 70, A: 255},
	{R: 230, G: 80, B: 60, A: 255},
	{R: 250, G: 230, B: 90, A: 255},
	{R: 250, G: 190, B: 60, A: 255},
	{R: 210, G: 170, B: 100, A: 255},
}

var bonusColors = map[systems.BonusKind]rl.Color{
	systems.BonusSpeed:  {R: 90, G: 200, B: 255, A: 255},
	systems.BonusShield: {R: 255, G: 220, B: 80, A: 255},
	systems.BonusReset:  {R: 255, G: 90, B: 200, A: 255},
}

// ArenaRenderer draws everything in world space for one snapshot.
type ArenaRenderer struct {
	background *BackgroundRenderer
	effects    *EffectRenderer
	glyphs     map[string]rl.Color
}

// NewArenaRenderer creates a renderer. symbols assigns pellet colors in order.
func NewArenaRenderer(symbols []string) *ArenaRenderer {
	glyphs := make(map[string]rl.Color, len(symbols))
	for i, s := range symbols {
		glyphs[s] = pelletPalette[i%len(pelletPalette)]
	}
	return &ArenaRenderer{
		background: NewBackgroundRenderer(100, 18, 22, 30),
		effects:    NewEffectRenderer(),
		glyphs:     glyphs,
	}
}

// Effects returns the effect layer so the caller can feed it events.
func (r *ArenaRenderer) Effects() *EffectRenderer {
	return r.effects
}

// Draw renders the arena. Must be called between BeginDrawing and EndDrawing.
func (r *ArenaRenderer) Draw(cam *camera.Camera, s *game.Snapshot) {
	r.background.Draw(cam, s.HalfWorld)

	for i := range s.Pellets {
		r.drawPellet(cam, &s.Pellets[i])
	}
	for _, b := range s.Bonuses {
		r.drawBonus(cam, b)
	}

	// Smaller bodies first so the larger one covers it on overlap.
	for _, b := range s.Bots {
		if !b.Respawning {
			r.drawBot(cam, b)
		}
	}
	for i := len(s.Cells) - 1; i >= 0; i-- {
		r.drawCell(cam, s.Cells[i], s.Elapsed)
	}

	r.drawVirus(cam, s.Virus, s.Elapsed)
	r.effects.Draw(cam)
	r.drawPointer(cam, s)
}

func (r *ArenaRenderer) drawPellet(cam *camera.Camera, p *systems.Pellet) {
	if !cam.IsVisible(p.X, p.Y, p.Radius) {
		return
	}
	color, ok := r.glyphs[p.Symbol]
	if !ok {
		color = pelletPalette[int(p.ID)%len(pelletPalette)]
	}
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(p.Radius*cam.Zoom), color)
}

func (r *ArenaRenderer) drawBonus(cam *camera.Camera, b systems.Bonus) {
	if !cam.IsVisible(b.X, b.Y, b.Radius) {
		return
	}
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}
	radius := float32(b.Radius * cam.Zoom * 1.6)
	rl.DrawPoly(center, 4, radius, 45, bonusColors[b.Kind])
	rl.DrawPolyLines(center, 4, radius, 45, rl.White)
}

func (r *ArenaRenderer) drawBot(cam *camera.Camera, b game.BotView) {
	if !cam.IsVisible(b.X, b.Y, b.Radius) {
		return
	}
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}
	radius := float32(b.Radius * cam.Zoom)

	fill := rl.ColorFromHSV(b.Hue, 0.55, 0.85)
	rl.DrawCircleV(center, radius, fill)
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.ColorFromHSV(b.Hue, 0.7, 0.55))

	if radius > 8 {
		drawCentered(fmt.Sprintf("%d", b.Score), center, fontFor(radius), rl.White)
	}
}

func (r *ArenaRenderer) drawCell(cam *camera.Camera, c game.CellView, now float64) {
	if !cam.IsVisible(c.X, c.Y, c.Radius) {
		return
	}
	sx, sy := cam.WorldToScreen(c.X, c.Y)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}
	radius := float32(c.Radius * cam.Zoom)

	rl.DrawCircleV(center, radius, rl.ColorFromHSV(c.Hue, 0.65, 0.95))
	outline := rl.White
	if !c.Primary {
		outline = rl.LightGray
	}
	rl.DrawRing(center, radius-2, radius, 0, 360, 64, outline)

	if c.Shielded {
		pulse := float32(0.5 + 0.5*math.Sin(now*8))
		rl.DrawRing(center, radius+3, radius+6, 0, 360, 64, rl.Fade(rl.Gold, 0.4+0.4*pulse))
	}
	if c.Boosted {
		rl.DrawRing(center, radius+7, radius+9, 0, 360, 64, rl.Fade(rl.SkyBlue, 0.7))
	}
	if radius > 10 {
		drawCentered(fmt.Sprintf("%d", c.Score), center, fontFor(radius), rl.Black)
	}
}

func (r *ArenaRenderer) drawVirus(cam *camera.Camera, v systems.Virus, now float64) {
	if !cam.IsVisible(v.X, v.Y, v.Radius*1.3) {
		return
	}
	sx, sy := cam.WorldToScreen(v.X, v.Y)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}
	radius := float32(v.Radius * cam.Zoom)
	spin := float32(now * 40)

	// Spiky star: two offset polygons.
	rl.DrawPoly(center, 12, radius*1.15, spin, rl.Color{R: 60, G: 170, B: 60, A: 255})
	rl.DrawPoly(center, 12, radius*1.15, spin+15, rl.Color{R: 60, G: 170, B: 60, A: 255})
	rl.DrawCircleV(center, radius, rl.Color{R: 90, G: 220, B: 90, A: 255})
}

func (r *ArenaRenderer) drawPointer(cam *camera.Camera, s *game.Snapshot) {
	if _, ok := s.Primary(); !ok {
		return
	}
	sx, sy := cam.WorldToScreen(s.Pointer.X, s.Pointer.Y)
	x, y := int32(sx), int32(sy)
	color := rl.Fade(rl.White, 0.5)
	rl.DrawLine(x-6, y, x+6, y, color)
	rl.DrawLine(x, y-6, x, y+6, color)
}

func fontFor(screenRadius float32) int32 {
	size := int32(screenRadius * 0.6)
	if size < 10 {
		return 10
	}
	if size > 40 {
		return 40
	}
	return size
}

func drawCentered(text string, center rl.Vector2, fontSize int32, color rl.Color) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(center.X)-w/2, int32(center.Y)-fontSize/2, fontSize, color)
}
