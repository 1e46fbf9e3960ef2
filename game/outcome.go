package game

// Outcome is the match state machine: Running -> Won | Lost. Both ends are terminal.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Finished reports whether the outcome is terminal.
func (o Outcome) Finished() bool {
	return o != OutcomeRunning
}
