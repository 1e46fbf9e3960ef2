package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/systems"
	"github.com/pthm-cable/gobble/telemetry"
)

// CellView is a read-only view of one player cell.
type CellView struct {
	ID       uint32
	X, Y     float64
	Radius   float64
	Score    int
	Hue      float32
	Primary  bool
	Shielded bool
	Boosted  bool
}

// Pos returns the cell center.
func (c CellView) Pos() r2.Vec {
	return r2.Vec{X: c.X, Y: c.Y}
}

// BotView is a read-only view of one bot.
type BotView struct {
	ID         uint32
	X, Y       float64
	Radius     float64
	Score      int
	Hue        float32
	Respawning bool
}

// Pos returns the bot center.
func (b BotView) Pos() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Snapshot is everything a frontend needs to draw one frame.
// Slices are reused by the next Snapshot call and Pellets is only valid
// until the next Advance.
type Snapshot struct {
	Tick      int
	Elapsed   float64
	Remaining float64
	HalfWorld float64
	Outcome   Outcome

	Pointer r2.Vec
	Center  r2.Vec     // radius-weighted center of the player's cells
	Cells   []CellView // primary first
	Bots    []BotView
	Pellets []systems.Pellet
	Virus   systems.Virus
	Bonuses []systems.Bonus

	Score int
	Level int
	Grade string
}

// Primary returns the primary cell view, if any.
func (s *Snapshot) Primary() (CellView, bool) {
	if len(s.Cells) == 0 {
		return CellView{}, false
	}
	return s.Cells[0], true
}

// Snapshot returns a view of the current match state.
func (m *Match) Snapshot() *Snapshot {
	now := m.clock.Elapsed()
	s := &m.snap

	s.Tick = m.clock.Tick()
	s.Elapsed = now
	s.Remaining = m.clock.Remaining()
	s.HalfWorld = m.field.Half()
	s.Outcome = m.outcome
	s.Pointer = m.pointer

	s.Cells = s.Cells[:0]
	for i, e := range m.cells.Cells() {
		pos := m.posMap.Get(e)
		body := m.bodyMap.Get(e)
		actor := m.actorMap.Get(e)
		status := m.statusMap.Get(e)
		s.Cells = append(s.Cells, CellView{
			ID:       actor.ID,
			X:        pos.X,
			Y:        pos.Y,
			Radius:   body.Radius,
			Score:    actor.Score,
			Hue:      actor.Hue,
			Primary:  i == 0,
			Shielded: status.Shielded(now),
			Boosted:  status.Boosted(now),
		})
	}

	s.Center = m.cells.Centroid()

	s.Bots = s.Bots[:0]
	for _, e := range m.bots.Bots() {
		pos := m.posMap.Get(e)
		body := m.bodyMap.Get(e)
		actor := m.actorMap.Get(e)
		s.Bots = append(s.Bots, BotView{
			ID:         actor.ID,
			X:          pos.X,
			Y:          pos.Y,
			Radius:     body.Radius,
			Score:      actor.Score,
			Hue:        actor.Hue,
			Respawning: m.botMap.Get(e).Respawning,
		})
	}

	s.Pellets = m.food.All()
	s.Virus = m.hazards.Virus()
	s.Bonuses = append(s.Bonuses[:0], m.hazards.Bonuses()...)

	s.Score = m.cells.TotalScore()
	s.Level = telemetry.Level(s.Score)
	s.Grade = telemetry.Grade(s.Level)
	return s
}
