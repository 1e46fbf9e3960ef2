package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed panels and rows. Row helpers return the y of the
// next row.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// Panel fills a bordered box.
func (r *Renderer) Panel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

// Header draws a title row.
func (r *Renderer) Header(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Highlight)
	return y + r.Theme.RowHeight + 2
}

// Row draws "label: value" with values aligned in a column.
func (r *Renderer) Row(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.TextSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.TextSize, r.Theme.Value)
	return y + r.Theme.RowHeight
}

// ClockBar draws the remaining match time as a draining bar followed by
// the m:ss countdown.
func (r *Renderer) ClockBar(x, y, width int32, remaining, total float64) int32 {
	const clockWidth = 45

	frac := 0.0
	if total > 0 {
		frac = min(max(remaining/total, 0), 1)
	}

	fill := r.Theme.TimePlenty
	switch {
	case frac < 0.2:
		fill = r.Theme.TimeCritical
	case frac < 0.5:
		fill = r.Theme.TimeHalf
	}

	rl.DrawText("Time", x, y, r.Theme.TextSize, r.Theme.Label)
	barX := x + r.Theme.LabelWidth
	barW := width - r.Theme.LabelWidth - clockWidth
	rl.DrawRectangle(barX, y+3, barW, r.Theme.RowHeight-6, r.Theme.TimeTrack)
	rl.DrawRectangle(barX, y+3, int32(float64(barW)*frac), r.Theme.RowHeight-6, fill)
	rl.DrawText(formatClock(remaining), barX+barW+6, y, r.Theme.TextSize, r.Theme.Value)
	return y + r.Theme.RowHeight + 2
}

// formatClock renders seconds as m:ss, rounding up so 0:00 means expired.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds + 0.999)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
