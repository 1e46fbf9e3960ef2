package components

// Body holds the size of a circular entity.
// Radius is the smoothed value used for collisions and rendering;
// TargetRadius is the goal it approaches each tick.
type Body struct {
	Radius       float64
	TargetRadius float64
}

// Alive reports whether the body can take part in interactions.
func (b *Body) Alive() bool {
	return b.Radius > 0
}
