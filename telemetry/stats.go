package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Match           int     `csv:"match"`

	// Player state at window end
	PlayerCells  int     `csv:"player_cells"`
	PlayerRadius float64 `csv:"player_radius"`
	Score        int     `csv:"score"`

	// Bot population at window end
	LiveBots   int `csv:"live_bots"`
	Respawning int `csv:"respawning"`

	// Events during window
	PelletsPlayer int `csv:"pellets_player"`
	PelletsBot    int `csv:"pellets_bot"`
	BotsEaten     int `csv:"bots_eaten"` // by the player
	BotKills      int `csv:"bot_kills"`  // bot on bot
	CellsLost     int `csv:"cells_lost"`
	Respawns      int `csv:"respawns"`
	Splits        int `csv:"splits"`
	Fusions       int `csv:"fusions"`
	VirusHits     int `csv:"virus_hits"`
	ShieldAbsorbs int `csv:"shield_absorbs"`
	Bonuses       int `csv:"bonuses"`

	// Bot radius distribution (sampled at window end)
	BotRadiusMean float64 `csv:"bot_radius_mean"`
	BotRadiusStd  float64 `csv:"bot_radius_std"`
	BotRadiusP10  float64 `csv:"bot_radius_p10"`
	BotRadiusP50  float64 `csv:"bot_radius_p50"`
	BotRadiusP90  float64 `csv:"bot_radius_p90"`
}

// ComputeRadiusStats calculates mean, standard deviation and empirical
// percentiles from radius values.
func ComputeRadiusStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
		if math.IsNaN(std) {
			std = 0
		}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("match", s.Match),
		slog.Int("player_cells", s.PlayerCells),
		slog.Float64("player_radius", s.PlayerRadius),
		slog.Int("score", s.Score),
		slog.Int("live_bots", s.LiveBots),
		slog.Int("respawning", s.Respawning),
		slog.Int("pellets_player", s.PelletsPlayer),
		slog.Int("pellets_bot", s.PelletsBot),
		slog.Int("bots_eaten", s.BotsEaten),
		slog.Int("bot_kills", s.BotKills),
		slog.Int("cells_lost", s.CellsLost),
		slog.Int("respawns", s.Respawns),
		slog.Int("splits", s.Splits),
		slog.Int("fusions", s.Fusions),
		slog.Int("virus_hits", s.VirusHits),
		slog.Int("shield_absorbs", s.ShieldAbsorbs),
		slog.Int("bonuses", s.Bonuses),
		slog.Float64("bot_radius_mean", s.BotRadiusMean),
		slog.Float64("bot_radius_std", s.BotRadiusStd),
		slog.Float64("bot_radius_p10", s.BotRadiusP10),
		slog.Float64("bot_radius_p50", s.BotRadiusP50),
		slog.Float64("bot_radius_p90", s.BotRadiusP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
