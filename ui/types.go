// Package ui draws the heads-up display and the end-of-match panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI colors and metrics.
type Theme struct {
	Panel     rl.Color
	Border    rl.Color
	Highlight rl.Color // headers and the player's leaderboard row
	Label     rl.Color
	Value     rl.Color
	Won       rl.Color
	Lost      rl.Color

	// Time bar fill, by fraction of the match left
	TimeTrack    rl.Color
	TimePlenty   rl.Color
	TimeHalf     rl.Color
	TimeCritical rl.Color

	Padding    int32
	RowHeight  int32
	LabelWidth int32
	TextSize   int32
	HeaderSize int32
}

// DefaultTheme returns the arena theme: dark translucent panels over the
// light playfield.
func DefaultTheme() Theme {
	return Theme{
		Panel:        rl.Color{R: 24, G: 28, B: 36, A: 210},
		Border:       rl.Color{R: 70, G: 80, B: 95, A: 255},
		Highlight:    rl.Color{R: 255, G: 210, B: 80, A: 255},
		Label:        rl.Color{R: 190, G: 195, B: 205, A: 255},
		Value:        rl.RayWhite,
		Won:          rl.Color{R: 120, G: 220, B: 120, A: 255},
		Lost:         rl.Color{R: 230, G: 90, B: 90, A: 255},
		TimeTrack:    rl.Color{R: 45, G: 48, B: 55, A: 255},
		TimePlenty:   rl.Color{R: 90, G: 190, B: 120, A: 255},
		TimeHalf:     rl.Color{R: 220, G: 180, B: 90, A: 255},
		TimeCritical: rl.Color{R: 220, G: 90, B: 90, A: 255},
		Padding:      10,
		RowHeight:    18,
		LabelWidth:   70,
		TextSize:     14,
		HeaderSize:   16,
	}
}
