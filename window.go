package main

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gobble/camera"
	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/game"
	"github.com/pthm-cable/gobble/renderer"
	"github.com/pthm-cable/gobble/telemetry"
	"github.com/pthm-cable/gobble/ui"
)

// app is the windowed frontend: one match at a time, restartable.
type app struct {
	cfg    *config.Config
	opts   runOptions
	output *telemetry.OutputManager

	match      *game.Match
	matchIndex int
	recorded   bool
	tally      telemetry.Tally

	cam   *camera.Camera
	arena *renderer.ArenaRenderer
	hud   *ui.HUD
	panel *ui.GameOverPanel

	pilot     *game.Autopilot
	autopilot bool
	quit      bool
}

func runWindow(cfg *config.Config, opts runOptions) error {
	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gobble")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := &app{
		cfg:       cfg,
		opts:      opts,
		output:    output,
		cam:       camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Derived.HalfWorld, cfg.Camera.MinZoom, cfg.Camera.MaxZoom),
		arena:     renderer.NewArenaRenderer(cfg.Food.Symbols),
		hud:       ui.NewHUD(),
		panel:     ui.NewGameOverPanel(cfg.Bots.Count, 2*cfg.Bots.Count+10),
		pilot:     game.NewAutopilot(cfg),
		autopilot: opts.autopilot,
	}
	if err := a.restart(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() && !a.quit {
		a.update()
		a.draw()

		if opts.maxTicks > 0 && a.match.Tick() >= opts.maxTicks {
			slog.Info("max ticks reached", "tick", a.match.Tick())
			break
		}
	}
	return nil
}

// restart starts a new match with the bot count chosen on the end panel.
func (a *app) restart() error {
	cfg := *a.cfg
	cfg.Bots.Count = a.panel.Bots

	m, err := game.NewMatch(&cfg, game.Options{
		Seed:           a.opts.seed + int64(a.matchIndex),
		Match:          a.matchIndex,
		LogStats:       a.opts.logStats,
		StatsWindowSec: a.opts.statsWindow,
		Output:         a.output,
	})
	if err != nil {
		return fmt.Errorf("starting match %d: %w", a.matchIndex, err)
	}
	a.match = m
	a.matchIndex++
	a.recorded = false
	a.arena.Effects().Clear()
	return nil
}

func (a *app) update() {
	if rl.IsKeyPressed(rl.KeyR) {
		a.tryRestart()
		return
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.autopilot = !a.autopilot
	}

	if !a.match.Outcome().Finished() {
		if a.autopilot {
			a.match.Drive(a.pilot)
		} else {
			mouse := rl.GetMousePosition()
			wx, wy := a.cam.ScreenToWorld(float64(mouse.X), float64(mouse.Y))
			a.match.SetPointerTarget(wx, wy)
			if rl.IsKeyPressed(rl.KeySpace) {
				a.match.RequestSplit()
			}
		}
		a.match.Advance()
		a.arena.Effects().Observe(a.match.Events(), a.match.Snapshot())
	}

	if a.match.Outcome().Finished() && !a.recorded {
		a.tally.Add(a.match.Outcome() == game.OutcomeWon)
		a.recorded = true
	}
	a.arena.Effects().Update()
}

func (a *app) tryRestart() {
	if err := a.restart(); err != nil {
		slog.Error("failed to restart", "error", err)
	}
}

func (a *app) draw() {
	s := a.match.Snapshot()
	if c, ok := s.Primary(); ok {
		a.cam.Follow(s.Center.X, s.Center.Y, c.Radius, a.cfg.Player.StartRadius, a.cfg.Player.MaxRadius)
	}

	rl.BeginDrawing()
	a.arena.Draw(a.cam, s)
	a.hud.Draw(s, ui.HUDData{
		Duration:     a.cfg.Match.Duration,
		FPS:          rl.GetFPS(),
		Wins:         a.tally.Wins,
		Losses:       a.tally.Losses,
		Autopilot:    a.autopilot,
		ScreenWidth:  int32(a.cfg.Screen.Width),
		ScreenHeight: int32(a.cfg.Screen.Height),
	})

	if s.Outcome.Finished() {
		switch a.panel.Draw(a.match.Summary(), a.tally, int32(a.cfg.Screen.Width), int32(a.cfg.Screen.Height)) {
		case ui.ActionRestart:
			a.tryRestart()
		case ui.ActionQuit:
			a.quit = true
		}
	}
	rl.EndDrawing()
}
