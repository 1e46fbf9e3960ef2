package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/camera"
	"github.com/pthm-cable/gobble/game"
	"github.com/pthm-cable/gobble/telemetry"
)

// EffectType selects an effect's color.
type EffectType uint8

const (
	EffectEat EffectType = iota
	EffectSplit
	EffectVirus
	EffectBonus
	EffectRespawn
)

// Effect is an expanding ring in world space.
type Effect struct {
	X, Y    float64
	Radius  float32
	Life    int
	MaxLife int
	Type    EffectType
}

// EffectRenderer spawns short-lived rings from match events.
type EffectRenderer struct {
	effects []Effect
}

// NewEffectRenderer creates an empty effect renderer.
func NewEffectRenderer() *EffectRenderer {
	return &EffectRenderer{}
}

// Observe spawns effects for the events of the last tick, located via the
// snapshot taken after it.
func (r *EffectRenderer) Observe(events []telemetry.Event, s *game.Snapshot) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventEat:
			r.spawnAt(s, ev.EntityID, EffectEat, 30)
		case telemetry.EventSplit, telemetry.EventFusion:
			r.spawnAt(s, ev.EntityID, EffectSplit, 20)
		case telemetry.EventVirusHit, telemetry.EventShieldAbsorb:
			r.spawnAt(s, ev.EntityID, EffectVirus, 40)
		case telemetry.EventBonus:
			r.spawnAt(s, ev.EntityID, EffectBonus, 30)
		case telemetry.EventRespawn:
			r.spawnAt(s, ev.EntityID, EffectRespawn, 45)
		}
	}
}

func (r *EffectRenderer) spawnAt(s *game.Snapshot, id uint32, typ EffectType, life int) {
	for _, c := range s.Cells {
		if c.ID == id {
			r.effects = append(r.effects, Effect{X: c.X, Y: c.Y, Radius: float32(c.Radius), Life: life, MaxLife: life, Type: typ})
			return
		}
	}
	for _, b := range s.Bots {
		if b.ID == id {
			r.effects = append(r.effects, Effect{X: b.X, Y: b.Y, Radius: float32(b.Radius), Life: life, MaxLife: life, Type: typ})
			return
		}
	}
}

// Update ages effects by one frame and drops expired ones.
func (r *EffectRenderer) Update() {
	live := r.effects[:0]
	for _, e := range r.effects {
		e.Life--
		if e.Life > 0 {
			live = append(live, e)
		}
	}
	r.effects = live
}

// Clear drops every effect.
func (r *EffectRenderer) Clear() {
	r.effects = r.effects[:0]
}

// Draw renders all effects.
func (r *EffectRenderer) Draw(cam *camera.Camera) {
	for i := range r.effects {
		e := &r.effects[i]
		if !cam.IsVisible(e.X, e.Y, float64(e.Radius)*2) {
			continue
		}

		lifeRatio := float32(e.Life) / float32(e.MaxLife)

		var color rl.Color
		switch e.Type {
		case EffectEat:
			color = rl.Color{R: 255, G: 210, B: 80, A: uint8(lifeRatio * 200)}
		case EffectSplit:
			color = rl.Color{R: 255, G: 150, B: 50, A: uint8(lifeRatio * 200)}
		case EffectVirus:
			color = rl.Color{R: 120, G: 230, B: 90, A: uint8(lifeRatio * 220)}
		case EffectBonus:
			color = rl.Color{R: 120, G: 180, B: 255, A: uint8(lifeRatio * 200)}
		case EffectRespawn:
			color = rl.Color{R: 200, G: 200, B: 200, A: uint8(lifeRatio * 120)}
		}

		sx, sy := cam.WorldToScreen(e.X, e.Y)
		radius := e.Radius * float32(cam.Zoom) * (1 + (1-lifeRatio)*0.8)
		if radius < 2 {
			radius = 2
		}
		center := rl.Vector2{X: float32(sx), Y: float32(sy)}
		rl.DrawRing(center, radius, radius+3, 0, 360, 48, color)
	}
}
