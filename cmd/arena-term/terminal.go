package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/gobble/camera"
	"github.com/pthm-cable/gobble/components"
	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/game"
	"github.com/pthm-cable/gobble/systems"
	"github.com/pthm-cable/gobble/telemetry"
)

// Terminal cells are about twice as tall as wide; world Y is squashed to match.
const cellAspect = 2.0

// terminal owns the screen and the running match.
type terminal struct {
	screen tcell.Screen
	cfg    *config.Config
	seed   int64
	sound  chime

	match      *game.Match
	matchIndex int
	pilot      *game.Autopilot
	manual     bool
	heading    [2]float64
	tally      telemetry.Tally
	recorded   bool

	cam *camera.Camera
}

func newTerminal(screen tcell.Screen, cfg *config.Config, seed int64) (*terminal, error) {
	t := &terminal{
		screen: screen,
		cfg:    cfg,
		seed:   seed,
		pilot:  game.NewAutopilot(cfg),
		cam:    camera.New(0, 0, cfg.Derived.HalfWorld, cfg.Camera.MinZoom*0.1, cfg.Camera.MaxZoom*0.1),
	}
	t.resize()
	if err := t.restart(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *terminal) restart() error {
	m, err := game.NewMatch(t.cfg, game.Options{
		Seed:  t.seed + int64(t.matchIndex),
		Match: t.matchIndex,
	})
	if err != nil {
		return err
	}
	t.match = m
	t.matchIndex++
	t.recorded = false
	return nil
}

func (t *terminal) resize() {
	w, h := t.screen.Size()
	t.cam.Resize(float64(w), float64(h-1)*cellAspect)
}

func (t *terminal) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- t.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

func (t *terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.steer(0, -1)
		case tcell.KeyDown:
			t.steer(0, 1)
		case tcell.KeyLeft:
			t.steer(-1, 0)
		case tcell.KeyRight:
			t.steer(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.match.RequestSplit()
			case 'a':
				t.manual = false
			case 's':
				t.heading = [2]float64{}
			case 'r':
				if err := t.restart(); err != nil {
					return false
				}
			}
		}
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	}
	return true
}

// steer switches to manual control and heads in (dx, dy).
func (t *terminal) steer(dx, dy float64) {
	t.manual = true
	t.heading = [2]float64{dx, dy}
}

func (t *terminal) step() {
	m := t.match
	if m.Outcome().Finished() {
		return
	}

	if t.manual {
		if c, ok := m.Snapshot().Primary(); ok {
			m.SetPointerTarget(c.X+t.heading[0]*300, c.Y+t.heading[1]*300)
		}
	} else {
		m.Drive(t.pilot)
	}
	m.Advance()

	for _, ev := range m.Events() {
		switch {
		case ev.Type == telemetry.EventEat && ev.Kind == components.KindPlayer:
			t.sound.Play(880, 60*time.Millisecond)
		case ev.Type == telemetry.EventCellLost:
			t.sound.Play(220, 120*time.Millisecond)
		case ev.Type == telemetry.EventVirusHit:
			t.sound.Play(330, 80*time.Millisecond)
		case ev.Type == telemetry.EventMatchWon:
			t.sound.Play(1320, 300*time.Millisecond)
		case ev.Type == telemetry.EventMatchLost:
			t.sound.Play(110, 400*time.Millisecond)
		}
	}

	if m.Outcome().Finished() && !t.recorded {
		t.tally.Add(m.Outcome() == game.OutcomeWon)
		t.recorded = true
	}
}

func (t *terminal) draw() {
	s := t.match.Snapshot()
	if c, ok := s.Primary(); ok {
		t.cam.Follow(s.Center.X, s.Center.Y, c.Radius, t.cfg.Player.StartRadius, t.cfg.Player.MaxRadius)
	}

	t.screen.Clear()
	w, h := t.screen.Size()
	h-- // status line

	// Arena edge
	edge := tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			wx, wy := t.toWorld(col, row)
			if math.Abs(wx) > s.HalfWorld || math.Abs(wy) > s.HalfWorld {
				t.screen.SetContent(col, row, '▒', nil, edge)
			}
		}
	}

	pelletStyle := tcell.StyleDefault.Foreground(tcell.ColorOlive)
	for _, p := range s.Pellets {
		if col, row, ok := t.toCell(p.X, p.Y, w, h); ok {
			t.screen.SetContent(col, row, '·', nil, pelletStyle)
		}
	}
	for _, b := range s.Bonuses {
		if col, row, ok := t.toCell(b.X, b.Y, w, h); ok {
			t.screen.SetContent(col, row, bonusRune(b.Kind), nil, tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
		}
	}

	for _, b := range s.Bots {
		if b.Respawning {
			continue
		}
		t.disk(b.X, b.Y, b.Radius, '●', hueStyle(b.Hue, 0.55), w, h)
	}
	for i := len(s.Cells) - 1; i >= 0; i-- {
		c := s.Cells[i]
		style := hueStyle(c.Hue, 0.75).Bold(true)
		if c.Shielded {
			style = style.Background(tcell.ColorGold)
		}
		t.disk(c.X, c.Y, c.Radius, '█', style, w, h)
	}
	t.disk(s.Virus.X, s.Virus.Y, s.Virus.Radius, '*', tcell.StyleDefault.Foreground(tcell.ColorLime), w, h)

	t.status(s, w, h)
	t.screen.Show()
}

// disk fills every cell whose center lies inside the circle, always at least one.
func (t *terminal) disk(x, y, r float64, ch rune, style tcell.Style, w, h int) {
	col, row, ok := t.toCell(x, y, w, h)
	if ok {
		t.screen.SetContent(col, row, ch, nil, style)
	}
	sr := int(math.Ceil(r*t.cam.Zoom)) + 1
	cx, cy := t.cam.WorldToScreen(x, y)
	ccol, crow := int(cx), int(cy/cellAspect)
	for dr := -sr; dr <= sr; dr++ {
		for dc := -sr; dc <= sr; dc++ {
			c, rw := ccol+dc, crow+dr
			if c < 0 || c >= w || rw < 0 || rw >= h {
				continue
			}
			wx, wy := t.toWorld(c, rw)
			if math.Hypot(wx-x, wy-y) <= r {
				t.screen.SetContent(c, rw, ch, nil, style)
			}
		}
	}
}

func (t *terminal) toWorld(col, row int) (float64, float64) {
	return t.cam.ScreenToWorld(float64(col)+0.5, (float64(row)+0.5)*cellAspect)
}

func (t *terminal) toCell(x, y float64, w, h int) (int, int, bool) {
	sx, sy := t.cam.WorldToScreen(x, y)
	col, row := int(math.Floor(sx)), int(math.Floor(sy/cellAspect))
	return col, row, col >= 0 && col < w && row >= 0 && row < h
}

func (t *terminal) status(s *game.Snapshot, w, row int) {
	mode := "auto"
	if t.manual {
		mode = "manual"
	}
	line := fmt.Sprintf(" score %d  lvl %d %s  cells %d  time %.0fs  %dW/%dL  [%s]  arrows steer  space split  a auto  r restart  q quit",
		s.Score, s.Level, s.Grade, len(s.Cells), s.Remaining, t.tally.Wins, t.tally.Losses, mode)
	if s.Outcome.Finished() {
		line = fmt.Sprintf(" MATCH %s  score %d  grade %s  --  r to play again, q to quit", s.Outcome, s.Score, s.Grade)
	}

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, ch := range line {
		if col >= w {
			break
		}
		t.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col < w; col++ {
		t.screen.SetContent(col, row, ' ', nil, style)
	}
}

func (t *terminal) cleanup() {
	t.sound.Close()
	t.screen.Fini()
}

func hueStyle(hue float32, sat float64) tcell.Style {
	r, g, b := colorful.Hsv(float64(hue), sat, 0.95).RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func bonusRune(kind systems.BonusKind) rune {
	switch kind {
	case systems.BonusSpeed:
		return 'S'
	case systems.BonusShield:
		return 'H'
	default:
		return 'R'
	}
}
