package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/config"
)

// BonusKind selects the effect of a pickup.
type BonusKind uint8

const (
	BonusSpeed BonusKind = iota
	BonusShield
	BonusReset
	bonusKinds
)

func (k BonusKind) String() string {
	switch k {
	case BonusSpeed:
		return "speed"
	case BonusShield:
		return "shield"
	case BonusReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Bonus is a pickup that only player cells can collect.
type Bonus struct {
	ID     uint32
	X, Y   float64
	Radius float64
	Kind   BonusKind
}

// Pos returns the bonus center.
func (b Bonus) Pos() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Virus is the roaming hazard.
type Virus struct {
	X, Y    float64
	Radius  float64
	Speed   float64 // world units per tick
	Heading float64 // radians
}

// Pos returns the virus center.
func (v Virus) Pos() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// HazardSystem owns the virus and the bonus pickups.
type HazardSystem struct {
	cfg   *config.Config
	field SpatialField
	rng   *rand.Rand

	virus       Virus
	bonuses     []Bonus
	nextBonusAt float64
	nextID      uint32
}

// NewHazardSystem places the virus at a random point and schedules the first bonus.
func NewHazardSystem(cfg *config.Config, field SpatialField, rng *rand.Rand) *HazardSystem {
	h := &HazardSystem{
		cfg:         cfg,
		field:       field,
		rng:         rng,
		bonuses:     make([]Bonus, 0, cfg.Bonus.Max),
		nextBonusAt: cfg.Bonus.SpawnInterval,
		virus: Virus{
			Radius:  cfg.Virus.Radius,
			Speed:   cfg.Virus.Speed,
			Heading: rng.Float64() * 2 * math.Pi,
		},
	}
	h.RelocateVirus()
	return h
}

// Update moves the virus and spawns a bonus when its interval has elapsed.
// Returns the spawned bonus, if any.
func (h *HazardSystem) Update(now float64) (Bonus, bool) {
	h.moveVirus()

	if now < h.nextBonusAt {
		return Bonus{}, false
	}
	h.nextBonusAt = now + h.cfg.Bonus.SpawnInterval
	if len(h.bonuses) >= h.cfg.Bonus.Max {
		return Bonus{}, false
	}
	p := h.field.RandomPoint(h.rng)
	return h.AddBonus(BonusKind(h.rng.Intn(int(bonusKinds))), p.X, p.Y), true
}

// moveVirus advances the virus along its heading and reflects it off the walls.
func (h *HazardSystem) moveVirus() {
	v := &h.virus
	v.X += math.Cos(v.Heading) * v.Speed
	v.Y += math.Sin(v.Heading) * v.Speed

	half := h.field.Half()
	if v.X < -half || v.X > half {
		v.Heading = math.Pi - v.Heading
	}
	if v.Y < -half || v.Y > half {
		v.Heading = -v.Heading
	}
	p := h.field.Clamp(v.Pos())
	v.X, v.Y = p.X, p.Y
}

// Virus returns the current virus state.
func (h *HazardSystem) Virus() Virus {
	return h.virus
}

// RelocateVirus moves the virus to a random point.
func (h *HazardSystem) RelocateVirus() {
	p := h.field.RandomPoint(h.rng)
	h.virus.X, h.virus.Y = p.X, p.Y
}

// PlaceVirus moves the virus to a fixed point. Used to stage scenarios.
func (h *HazardSystem) PlaceVirus(x, y float64) {
	p := h.field.Clamp(r2.Vec{X: x, Y: y})
	h.virus.X, h.virus.Y = p.X, p.Y
}

// Bonuses returns the live pickups. Do not modify.
func (h *HazardSystem) Bonuses() []Bonus {
	return h.bonuses
}

// AddBonus places a pickup of the given kind.
func (h *HazardSystem) AddBonus(kind BonusKind, x, y float64) Bonus {
	h.nextID++
	p := h.field.Clamp(r2.Vec{X: x, Y: y})
	b := Bonus{ID: h.nextID, X: p.X, Y: p.Y, Radius: h.cfg.Bonus.Radius, Kind: kind}
	h.bonuses = append(h.bonuses, b)
	return b
}

// TakeBonus removes a pickup by ID.
func (h *HazardSystem) TakeBonus(id uint32) (Bonus, bool) {
	for i, b := range h.bonuses {
		if b.ID == id {
			h.bonuses = append(h.bonuses[:i], h.bonuses[i+1:]...)
			return b, true
		}
	}
	return Bonus{}, false
}
