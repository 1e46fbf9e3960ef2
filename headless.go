package main

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/game"
	"github.com/pthm-cable/gobble/telemetry"
)

// runHeadless plays opts.matches autopilot matches back to back. Match i
// uses seed+i so a session is reproducible from its first seed.
func runHeadless(cfg *config.Config, opts runOptions) error {
	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("starting headless session",
		"seed", opts.seed,
		"matches", opts.matches,
		"max_ticks", opts.maxTicks,
		"output_dir", opts.outputDir,
	)

	pilot := game.NewAutopilot(cfg)
	var tally telemetry.Tally
	for i := 0; i < opts.matches; i++ {
		m, err := game.NewMatch(cfg, game.Options{
			Seed:           opts.seed + int64(i),
			Match:          i,
			LogStats:       opts.logStats,
			StatsWindowSec: opts.statsWindow,
			Output:         output,
		})
		if err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}

		outcome := game.Run(m, pilot, opts.maxTicks)
		if !outcome.Finished() {
			slog.Info("max ticks reached", "match", i, "tick", m.Tick(), "score", m.Score())
			m.Stop()
			continue
		}
		tally.Add(outcome == game.OutcomeWon)
	}

	slog.Info("session finished",
		"played", tally.Played(),
		"wins", tally.Wins,
		"losses", tally.Losses,
		"win_rate", tally.WinRate(),
	)
	return nil
}
