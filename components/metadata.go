package components

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBot:
		return "bot"
	default:
		return "unknown"
	}
}

// String returns the display name for a TargetKind.
func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "none"
	case TargetPellet:
		return "pellet"
	case TargetActor:
		return "actor"
	case TargetWaypoint:
		return "waypoint"
	default:
		return "unknown"
	}
}
