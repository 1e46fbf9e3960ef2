package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/config"
)

// Autopilot plays the player side from snapshots. It flees the nearest bot
// that could eat the primary cell, chases the best smaller bot in range,
// and otherwise grazes the nearest pellet.
type Autopilot struct {
	// Distances in world units, measured edge to edge.
	ThreatRange float64
	HuntRange   float64
	SplitRange  float64
	VirusMargin float64

	ratio      float64
	maxCells   int
	splitMinR  float64
	virusMinR  float64
	fleeLength float64
}

// NewAutopilot creates an autopilot tuned to cfg.
func NewAutopilot(cfg *config.Config) *Autopilot {
	return &Autopilot{
		ThreatRange: 250,
		HuntRange:   500,
		SplitRange:  220,
		VirusMargin: 40,
		ratio:       cfg.Eat.Ratio,
		maxCells:    cfg.Split.MaxCells,
		splitMinR:   cfg.Split.MinRadius,
		virusMinR:   cfg.Virus.MinRadius,
		fleeLength:  300,
	}
}

// Steer returns the pointer target for this frame and whether to split.
func (a *Autopilot) Steer(s *Snapshot) (r2.Vec, bool) {
	primary, ok := s.Primary()
	if !ok {
		return s.Pointer, false
	}
	here := primary.Pos()

	// Flee first.
	var away r2.Vec
	threatened := false
	for _, b := range s.Bots {
		if b.Respawning || b.Radius <= primary.Radius*a.ratio {
			continue
		}
		d := edgeDistance(here, primary.Radius, b.Pos(), b.Radius)
		if d > a.ThreatRange {
			continue
		}
		push := r2.Sub(here, b.Pos())
		if r2.Norm(push) == 0 {
			push = r2.Vec{X: 1}
		}
		// Closer threats push harder.
		away = r2.Add(away, r2.Scale(1/(d+1), r2.Unit(push)))
		threatened = true
	}
	if threatened {
		return r2.Add(here, r2.Scale(a.fleeLength, r2.Unit(away))), false
	}

	goal, split := a.hunt(s, primary)
	return a.avoidVirus(s, primary, goal), split
}

// hunt picks a prey bot or, failing that, the nearest pellet.
func (a *Autopilot) hunt(s *Snapshot, primary CellView) (r2.Vec, bool) {
	here := primary.Pos()

	bestScore := 0.0
	var prey *BotView
	for i := range s.Bots {
		b := &s.Bots[i]
		if b.Respawning || primary.Radius <= b.Radius*a.ratio {
			continue
		}
		d := edgeDistance(here, primary.Radius, b.Pos(), b.Radius)
		if d > a.HuntRange {
			continue
		}
		score := b.Radius / (d + 10)
		if score > bestScore {
			bestScore = score
			prey = b
		}
	}

	if prey != nil {
		d := edgeDistance(here, primary.Radius, prey.Pos(), prey.Radius)
		half := primary.Radius / 2
		split := d < a.SplitRange &&
			len(s.Cells) < a.maxCells &&
			primary.Radius >= a.splitMinR &&
			half > prey.Radius*a.ratio
		return prey.Pos(), split
	}

	nearest := math.Inf(1)
	goal := s.Pointer
	for _, p := range s.Pellets {
		dx, dy := p.X-here.X, p.Y-here.Y
		if d := dx*dx + dy*dy; d < nearest {
			nearest = d
			goal = p.Pos()
		}
	}
	return goal, false
}

// avoidVirus sidesteps the virus when it would halve a cell worth keeping.
func (a *Autopilot) avoidVirus(s *Snapshot, primary CellView, goal r2.Vec) r2.Vec {
	if primary.Shielded || primary.Radius/2 < a.virusMinR {
		return goal
	}
	here := primary.Pos()
	v := s.Virus.Pos()
	if edgeDistance(here, primary.Radius, v, s.Virus.Radius) > a.VirusMargin {
		return goal
	}
	push := r2.Sub(here, v)
	if r2.Norm(push) == 0 {
		push = r2.Vec{Y: 1}
	}
	return r2.Add(here, r2.Scale(a.fleeLength, r2.Unit(push)))
}

func edgeDistance(a r2.Vec, ar float64, b r2.Vec, br float64) float64 {
	return math.Max(0, r2.Norm(r2.Sub(a, b))-ar-br)
}
