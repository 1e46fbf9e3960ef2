package game

// Run lets pilot play m until it finishes or maxTicks have run (0 = no limit).
// The returned outcome is still Running if the tick limit hit first.
func Run(m *Match, pilot *Autopilot, maxTicks int) Outcome {
	for !m.Outcome().Finished() {
		if maxTicks > 0 && m.Tick() >= maxTicks {
			break
		}
		m.Drive(pilot)
		m.Advance()
	}
	return m.Outcome()
}

// Drive applies one frame of autopilot input without advancing.
func (m *Match) Drive(pilot *Autopilot) {
	target, split := pilot.Steer(m.Snapshot())
	m.SetPointerTarget(target.X, target.Y)
	if split {
		m.RequestSplit()
	}
}
