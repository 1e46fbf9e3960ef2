package telemetry

import "github.com/pthm-cable/gobble/components"

// Sample is the match state captured when a window is flushed.
type Sample struct {
	Match        int
	PlayerCells  int
	PlayerRadius float64
	Score        int
	LiveBots     int
	Respawning   int
	BotRadii     []float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	pelletsPlayer int
	pelletsBot    int
	botsEaten     int
	botKills      int
	cellsLost     int
	respawns      int
	splits        int
	fusions       int
	virusHits     int
	shieldAbsorbs int
	bonuses       int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts one event into the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventPellet:
		if ev.Kind == components.KindPlayer {
			c.pelletsPlayer++
		} else {
			c.pelletsBot++
		}
	case EventEat:
		if ev.TargetKind != components.KindBot {
			return
		}
		if ev.Kind == components.KindPlayer {
			c.botsEaten++
		} else {
			c.botKills++
		}
	case EventCellLost:
		c.cellsLost++
	case EventRespawn:
		c.respawns++
	case EventSplit:
		c.splits++
	case EventFusion:
		c.fusions += int(ev.Amount)
	case EventVirusHit:
		c.virusHits++
	case EventShieldAbsorb:
		c.shieldAbsorbs++
	case EventBonus:
		c.bonuses++
	}
}

// RecordAll counts a batch of events.
func (c *Collector) RecordAll(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Pending reports whether ticks have passed since the window opened.
func (c *Collector) Pending(currentTick int) bool {
	return currentTick > c.windowStartTick
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, s Sample) WindowStats {
	mean, std, p10, p50, p90 := ComputeRadiusStats(s.BotRadii)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Match:           s.Match,

		PlayerCells:  s.PlayerCells,
		PlayerRadius: s.PlayerRadius,
		Score:        s.Score,
		LiveBots:     s.LiveBots,
		Respawning:   s.Respawning,

		PelletsPlayer: c.pelletsPlayer,
		PelletsBot:    c.pelletsBot,
		BotsEaten:     c.botsEaten,
		BotKills:      c.botKills,
		CellsLost:     c.cellsLost,
		Respawns:      c.respawns,
		Splits:        c.splits,
		Fusions:       c.fusions,
		VirusHits:     c.virusHits,
		ShieldAbsorbs: c.shieldAbsorbs,
		Bonuses:       c.bonuses,

		BotRadiusMean: mean,
		BotRadiusStd:  std,
		BotRadiusP10:  p10,
		BotRadiusP50:  p50,
		BotRadiusP90:  p90,
	}

	c.windowStartTick = currentTick
	c.reset()
	return stats
}

// Reset discards the current window and starts a new one at tick.
func (c *Collector) Reset(tick int) {
	c.windowStartTick = tick
	c.reset()
}

func (c *Collector) reset() {
	c.pelletsPlayer = 0
	c.pelletsBot = 0
	c.botsEaten = 0
	c.botKills = 0
	c.cellsLost = 0
	c.respawns = 0
	c.splits = 0
	c.fusions = 0
	c.virusHits = 0
	c.shieldAbsorbs = 0
	c.bonuses = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
