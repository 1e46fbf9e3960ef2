package game

import (
	"testing"

	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/systems"
)

func TestAutopilotSteer(t *testing.T) {
	pilot := NewAutopilot(config.Default())
	farVirus := systems.Virus{X: 2000, Y: 2000, Radius: 30}

	tests := []struct {
		name      string
		snap      Snapshot
		check     func(x, y float64) bool
		wantSplit bool
	}{
		{
			name: "flees larger bot",
			snap: Snapshot{
				Cells: []CellView{{Radius: 20, Primary: true}},
				Bots:  []BotView{{X: 100, Radius: 40}},
				Virus: farVirus,
			},
			check: func(x, y float64) bool { return x < 0 },
		},
		{
			name: "ignores respawning bot",
			snap: Snapshot{
				Cells:   []CellView{{Radius: 20, Primary: true}},
				Bots:    []BotView{{X: 100, Radius: 40, Respawning: true}},
				Pellets: []systems.Pellet{{X: 150, Y: 0, Radius: 10}},
				Virus:   farVirus,
			},
			check: func(x, y float64) bool { return x == 150 && y == 0 },
		},
		{
			name: "chases and splits on close prey",
			snap: Snapshot{
				Cells: []CellView{{Radius: 100, Primary: true}},
				Bots:  []BotView{{X: 200, Radius: 20}},
				Virus: farVirus,
			},
			check:     func(x, y float64) bool { return x == 200 && y == 0 },
			wantSplit: true,
		},
		{
			name: "no split when half would be too small",
			snap: Snapshot{
				Cells: []CellView{{Radius: 40, Primary: true}},
				Bots:  []BotView{{X: 150, Radius: 30}},
				Virus: farVirus,
			},
			check: func(x, y float64) bool { return x == 150 },
		},
		{
			name: "grazes nearest pellet",
			snap: Snapshot{
				Cells: []CellView{{Radius: 20, Primary: true}},
				Pellets: []systems.Pellet{
					{X: 50, Y: 50, Radius: 10},
					{X: -10, Y: 0, Radius: 10},
				},
				Virus: farVirus,
			},
			check: func(x, y float64) bool { return x == -10 && y == 0 },
		},
		{
			name: "steers around virus",
			snap: Snapshot{
				Cells:   []CellView{{Radius: 60, Primary: true}},
				Pellets: []systems.Pellet{{X: 200, Y: 0, Radius: 10}},
				Virus:   systems.Virus{X: 100, Y: 0, Radius: 30},
			},
			check: func(x, y float64) bool { return x < 0 },
		},
		{
			name: "shielded cell ignores virus",
			snap: Snapshot{
				Cells:   []CellView{{Radius: 60, Primary: true, Shielded: true}},
				Pellets: []systems.Pellet{{X: 200, Y: 0, Radius: 10}},
				Virus:   systems.Virus{X: 100, Y: 0, Radius: 30},
			},
			check: func(x, y float64) bool { return x == 200 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, split := pilot.Steer(&tt.snap)
			if !tt.check(target.X, target.Y) {
				t.Errorf("target = (%v, %v)", target.X, target.Y)
			}
			if split != tt.wantSplit {
				t.Errorf("split = %v, want %v", split, tt.wantSplit)
			}
		})
	}
}

func TestAutopilotWithoutCells(t *testing.T) {
	pilot := NewAutopilot(config.Default())
	s := &Snapshot{}
	s.Pointer.X, s.Pointer.Y = 5, 7

	target, split := pilot.Steer(s)
	if target.X != 5 || target.Y != 7 || split {
		t.Errorf("Steer() = %v, %v; want pointer unchanged", target, split)
	}
}
