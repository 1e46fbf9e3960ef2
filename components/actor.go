package components

// Actor bundles identity, speed and score for player cells and bots.
type Actor struct {
	ID        uint32
	Kind      Kind
	Score     int
	Speed     float64 // current speed, world units per tick
	BaseSpeed float64
	Hue       float32 // display color, degrees
}

// Status holds timed effects as expiry timestamps in simulation seconds.
type Status struct {
	ShieldUntil float64
	BoostUntil  float64
}

// Shielded reports whether the shield is active at now.
func (s *Status) Shielded(now float64) bool {
	return now < s.ShieldUntil
}

// Boosted reports whether the speed boost is active at now.
func (s *Status) Boosted(now float64) bool {
	return now < s.BoostUntil
}
