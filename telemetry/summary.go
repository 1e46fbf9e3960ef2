package telemetry

import (
	"log/slog"
	"time"
)

// MatchSummary is one row of matches.csv.
type MatchSummary struct {
	Match       int     `csv:"match"`
	Seed        int64   `csv:"seed"`
	Outcome     string  `csv:"outcome"`
	Ticks       int     `csv:"ticks"`
	SimTimeSec  float64 `csv:"sim_time"`
	Score       int     `csv:"score"`
	Level       int     `csv:"level"`
	Grade       string  `csv:"grade"`
	MaxRadius   float64 `csv:"max_radius"`
	BotsEaten   int     `csv:"bots_eaten"`
	Pellets     int     `csv:"pellets"`
	Splits      int     `csv:"splits"`
	CellsLost   int     `csv:"cells_lost"`
	WallClockMS int64   `csv:"wall_clock_ms"`
}

// LogValue implements slog.LogValuer for structured logging.
func (m MatchSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("match", m.Match),
		slog.Int64("seed", m.Seed),
		slog.String("outcome", m.Outcome),
		slog.Int("ticks", m.Ticks),
		slog.Float64("sim_time", m.SimTimeSec),
		slog.Int("score", m.Score),
		slog.Int("level", m.Level),
		slog.String("grade", m.Grade),
		slog.Float64("max_radius", m.MaxRadius),
		slog.Int("bots_eaten", m.BotsEaten),
		slog.Int("pellets", m.Pellets),
		slog.Int("splits", m.Splits),
		slog.Int("cells_lost", m.CellsLost),
		slog.Duration("wall_clock", time.Duration(m.WallClockMS)*time.Millisecond),
	)
}

// Tally keeps the win/loss record for a session.
type Tally struct {
	Wins   int
	Losses int
}

// Add counts one finished match.
func (t *Tally) Add(won bool) {
	if won {
		t.Wins++
	} else {
		t.Losses++
	}
}

// Played returns the number of finished matches.
func (t Tally) Played() int {
	return t.Wins + t.Losses
}

// WinRate returns wins over played, or 0 before any match.
func (t Tally) WinRate() float64 {
	if t.Played() == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Played())
}
