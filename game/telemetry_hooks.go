package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/gobble/telemetry"
)

// flushTelemetry closes the stats window once it has run its length.
func (m *Match) flushTelemetry() {
	if !m.collector.ShouldFlush(m.clock.Tick()) && !m.outcome.Finished() {
		return
	}
	m.flushWindow()
}

// flushWindow closes the open stats window and reports it.
func (m *Match) flushWindow() {
	stats := m.collector.Flush(m.clock.Tick(), m.sample())
	perfStats := m.perf.Stats()

	if m.opts.OnStats != nil {
		m.opts.OnStats(stats)
	}

	bookmarks := m.bookmarks.Check(stats)

	if m.opts.LogStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
		for _, b := range bookmarks {
			b.LogBookmark()
		}
	}

	if m.output != nil {
		if err := m.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := m.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sample captures the population state for a stats window.
func (m *Match) sample() telemetry.Sample {
	s := telemetry.Sample{
		Match:        m.opts.Match,
		PlayerCells:  m.cells.Count(),
		PlayerRadius: m.cells.LargestRadius(),
		Score:        m.cells.TotalScore(),
	}
	s.BotRadii = m.bots.Radii(nil)
	s.LiveBots = len(s.BotRadii)
	s.Respawning = len(m.bots.Bots()) - s.LiveBots
	return s
}

// Summary returns the match result so far.
func (m *Match) Summary() telemetry.MatchSummary {
	score := m.Score()
	level := telemetry.Level(score)
	outcome := m.outcome.String()
	if m.stopped {
		outcome = "stopped"
	}
	return telemetry.MatchSummary{
		Match:       m.opts.Match,
		Seed:        m.opts.Seed,
		Outcome:     outcome,
		Ticks:       m.clock.Tick(),
		SimTimeSec:  m.clock.Elapsed(),
		Score:       score,
		Level:       level,
		Grade:       telemetry.Grade(level),
		MaxRadius:   m.totals.maxRadius,
		BotsEaten:   m.totals.botsEaten,
		Pellets:     m.totals.pellets,
		Splits:      m.totals.splits,
		CellsLost:   m.totals.cellsLost,
		WallClockMS: time.Since(m.started).Milliseconds(),
	}
}

// finish logs and records the final result. Called once, on the tick the
// match ends.
func (m *Match) finish() {
	summary := m.Summary()
	slog.Info("match finished", "summary", summary)
	if err := m.output.WriteMatch(summary); err != nil {
		slog.Error("failed to write match summary", "error", err)
	}
}

// Stop ends a running match early, as when a tick limit is reached. The open
// stats window is flushed and the summary is recorded with outcome
// "stopped"; later Advance calls do nothing. A finished or already stopped
// match is left alone.
func (m *Match) Stop() {
	if m.outcome.Finished() || m.stopped {
		return
	}
	m.stopped = true
	if m.collector.Pending(m.clock.Tick()) {
		m.flushWindow()
	}
	m.finish()
}

// Stopped reports whether Stop ended the match.
func (m *Match) Stopped() bool {
	return m.stopped
}
