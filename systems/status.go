package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gobble/components"
)

// StatusSystem clears timed effects once they expire.
type StatusSystem struct {
	filter ecs.Filter2[components.Actor, components.Status]
}

// NewStatusSystem creates a status expiry system.
func NewStatusSystem(w *ecs.World) *StatusSystem {
	return &StatusSystem{
		filter: *ecs.NewFilter2[components.Actor, components.Status](w),
	}
}

// Update restores base speed after a boost and drops spent shields.
// Returns the number of effects that ended this tick.
func (s *StatusSystem) Update(now float64) int {
	expired := 0
	query := s.filter.Query()
	for query.Next() {
		actor, status := query.Get()
		if status.BoostUntil > 0 && !status.Boosted(now) {
			actor.Speed = actor.BaseSpeed
			status.BoostUntil = 0
			expired++
		}
		if status.ShieldUntil > 0 && !status.Shielded(now) {
			status.ShieldUntil = 0
			expired++
		}
	}
	return expired
}
