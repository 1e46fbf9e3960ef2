package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gobble/components"
)

// Grow raises a body's target radius by amount, capped at maxRadius.
// Returns the applied increase.
func Grow(body *components.Body, amount, maxRadius float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := body.TargetRadius
	body.TargetRadius = math.Min(maxRadius, body.TargetRadius+amount)
	if body.TargetRadius < before {
		// Already above the cap (e.g. a config change); never shrink on growth.
		body.TargetRadius = before
	}
	return body.TargetRadius - before
}

// EatGain is the target-radius increase from swallowing prey of the given radius.
func EatGain(preyRadius, factor, maxGain float64) float64 {
	return math.Min(maxGain, preyRadius*factor)
}

// Smooth moves radius toward targetRadius by rate of the remaining gap.
func Smooth(body *components.Body, rate float64) {
	if body.Radius == body.TargetRadius {
		return
	}
	body.Radius = lerp(body.Radius, body.TargetRadius, rate)
	if math.Abs(body.TargetRadius-body.Radius) < 1e-3 {
		body.Radius = body.TargetRadius
	}
}

// GrowthSystem applies radius smoothing to every body each tick.
type GrowthSystem struct {
	filter ecs.Filter1[components.Body]
	rate   float64
}

// NewGrowthSystem creates a smoothing system.
func NewGrowthSystem(w *ecs.World, rate float64) *GrowthSystem {
	return &GrowthSystem{
		filter: *ecs.NewFilter1[components.Body](w),
		rate:   rate,
	}
}

// Update smooths all bodies.
func (s *GrowthSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		Smooth(query.Get(), s.rate)
	}
}
