package ui

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/game"
)

// HUDData holds everything the HUD shows besides the snapshot.
type HUDData struct {
	Duration     float64 // full match length, seconds
	FPS          int32
	Wins, Losses int
	Autopilot    bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the status panel, the leaderboard and the control legend.
type HUD struct {
	renderer *Renderer
	board    []boardEntry
}

type boardEntry struct {
	name   string
	score  int
	player bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD over the arena.
func (h *HUD) Draw(s *game.Snapshot, data HUDData) {
	r := h.renderer
	padding := r.Theme.Padding
	x, y := int32(10), int32(10)
	width := int32(260)

	r.Panel(x, y, width, r.Theme.RowHeight*7+padding*2)
	y += padding
	cx := x + padding

	y = r.Row(cx, y, "Score", fmt.Sprintf("%d", s.Score))
	y = r.Row(cx, y, "Level", fmt.Sprintf("%d", s.Level))
	y = r.Row(cx, y, "Grade", s.Grade)

	largest := 0.0
	for _, c := range s.Cells {
		if c.Radius > largest {
			largest = c.Radius
		}
	}
	y = r.Row(cx, y, "Cells", fmt.Sprintf("%d (r %.0f)", len(s.Cells), largest))
	y = r.Row(cx, y, "Record", fmt.Sprintf("%dW / %dL", data.Wins, data.Losses))
	r.ClockBar(cx, y, width-padding*2, s.Remaining, data.Duration)

	h.drawLeaderboard(s, data.ScreenWidth)

	status := fmt.Sprintf("FPS: %d", data.FPS)
	if data.Autopilot {
		status += "  |  AUTOPILOT"
	}
	rl.DrawText(status, 10, data.ScreenHeight-45, 14, rl.Gray)
	rl.DrawText("[Mouse] steer  [Space] split  [A] autopilot  [R] restart", 10, data.ScreenHeight-25, 14, rl.Gray)
}

// drawLeaderboard lists the top scorers, the player counted as one entry.
func (h *HUD) drawLeaderboard(s *game.Snapshot, screenWidth int32) {
	r := h.renderer

	h.board = h.board[:0]
	h.board = append(h.board, boardEntry{name: "You", score: s.Score, player: true})
	for _, b := range s.Bots {
		if b.Respawning {
			continue
		}
		h.board = append(h.board, boardEntry{name: fmt.Sprintf("Bot %d", b.ID), score: b.Score})
	}
	sort.SliceStable(h.board, func(i, j int) bool {
		return h.board[i].score > h.board[j].score
	})

	const rows = 8
	width := int32(180)
	x := screenWidth - width - 10
	y := int32(10)
	height := r.Theme.RowHeight*(rows+1) + r.Theme.Padding*2 + 2

	r.Panel(x, y, width, height)
	y = r.Header(x+r.Theme.Padding, y+r.Theme.Padding, "Leaderboard")

	for i, e := range h.board {
		if i >= rows {
			break
		}
		color := r.Theme.Label
		if e.player {
			color = r.Theme.Highlight
		}
		rl.DrawText(fmt.Sprintf("%d. %s", i+1, e.name), x+r.Theme.Padding, y, r.Theme.TextSize, color)
		score := fmt.Sprintf("%d", e.score)
		rl.DrawText(score, x+width-r.Theme.Padding-rl.MeasureText(score, r.Theme.TextSize), y, r.Theme.TextSize, color)
		y += r.Theme.RowHeight
	}
}
