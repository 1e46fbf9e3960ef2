package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/telemetry"
)

// GameOverAction is what the player chose on the end-of-match panel.
type GameOverAction uint8

const (
	ActionNone GameOverAction = iota
	ActionRestart
	ActionQuit
)

// GameOverPanel shows the result of a finished match and lets the player
// pick the bot count for the next one.
type GameOverPanel struct {
	renderer *Renderer
	Bots     int // bot count for the next match
	MaxBots  int
}

// NewGameOverPanel creates a panel starting at the given bot count.
func NewGameOverPanel(bots, maxBots int) *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		Bots:     bots,
		MaxBots:  maxBots,
	}
}

// Draw renders the panel centered on screen and returns the chosen action.
func (p *GameOverPanel) Draw(summary telemetry.MatchSummary, tally telemetry.Tally, screenW, screenH int32) GameOverAction {
	r := p.renderer
	width, height := int32(340), int32(300)
	x := (screenW - width) / 2
	y := (screenH - height) / 2
	padding := r.Theme.Padding

	r.Panel(x, y, width, height)

	title, color := "YOU LOST", r.Theme.Lost
	if summary.Outcome == "won" {
		title, color = "YOU SURVIVED", r.Theme.Won
	}
	titleW := rl.MeasureText(title, 28)
	rl.DrawText(title, x+(width-titleW)/2, y+padding, 28, color)

	cy := y + padding + 40
	cx := x + padding*2
	cy = r.Row(cx, cy, "Score", fmt.Sprintf("%d", summary.Score))
	cy = r.Row(cx, cy, "Grade", fmt.Sprintf("%s (level %d)", summary.Grade, summary.Level))
	cy = r.Row(cx, cy, "Time", fmt.Sprintf("%.0f s", summary.SimTimeSec))
	cy = r.Row(cx, cy, "Eaten", fmt.Sprintf("%d bots, %d pellets", summary.BotsEaten, summary.Pellets))
	cy = r.Row(cx, cy, "Record", fmt.Sprintf("%dW / %dL (%.0f%%)", tally.Wins, tally.Losses, tally.WinRate()*100))
	cy += 8

	rl.DrawText(fmt.Sprintf("Bots next match: %d", p.Bots), cx, cy, r.Theme.TextSize, r.Theme.Label)
	cy += r.Theme.RowHeight
	bots := gui.SliderBar(
		rl.Rectangle{X: float32(cx), Y: float32(cy), Width: float32(width - padding*4 - 40), Height: 18},
		"0", fmt.Sprintf("%d", p.MaxBots),
		float32(p.Bots), 0, float32(p.MaxBots),
	)
	p.Bots = int(bots + 0.5)
	cy += 32

	buttonW := float32(width-padding*5) / 2
	if gui.Button(rl.Rectangle{X: float32(cx), Y: float32(cy), Width: buttonW, Height: 30}, "Play again [R]") {
		return ActionRestart
	}
	if gui.Button(rl.Rectangle{X: float32(cx) + buttonW + float32(padding), Y: float32(cy), Width: buttonW, Height: 30}, "Quit") {
		return ActionQuit
	}
	return ActionNone
}
