package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one step of the match tick.
type Phase uint8

const (
	PhaseRespawn Phase = iota
	PhasePlayer
	PhaseSplit
	PhaseBots
	PhaseHazards
	PhaseCollisions
	PhaseGrowth
	PhaseStatus
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	PhaseRespawn:    "respawn",
	PhasePlayer:     "player",
	PhaseSplit:      "split",
	PhaseBots:       "bots",
	PhaseHazards:    "hazards",
	PhaseCollisions: "collisions",
	PhaseGrowth:     "growth",
	PhaseStatus:     "status",
	PhaseTelemetry:  "telemetry",
}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// perfSample holds timing data for a single tick.
type perfSample struct {
	tick   time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
// A nil collector is valid and records nothing.
type PerfCollector struct {
	samples     []perfSample
	writeIndex  int
	sampleCount int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]perfSample, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing the next one.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % len(p.samples)
	if p.sampleCount < len(p.samples) {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the window frontend.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	PhasePct       [phaseCount]float64 // share of the average tick
	TicksPerSecond float64
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [phaseCount]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.tick
		if i == 0 || sample.tick < s.MinTick {
			s.MinTick = sample.tick
		}
		if sample.tick > s.MaxTick {
			s.MaxTick = sample.tick
		}
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	s.AvgTick = total / time.Duration(p.sampleCount)
	if total > 0 {
		for ph, sum := range phaseSum {
			s.PhasePct[ph] = float64(sum) / float64(total) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int     `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	RespawnPct    float64 `csv:"respawn_pct"`
	PlayerPct     float64 `csv:"player_pct"`
	SplitPct      float64 `csv:"split_pct"`
	BotsPct       float64 `csv:"bots_pct"`
	HazardsPct    float64 `csv:"hazards_pct"`
	CollisionsPct float64 `csv:"collisions_pct"`
	GrowthPct     float64 `csv:"growth_pct"`
	StatusPct     float64 `csv:"status_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTick.Microseconds(),
		MinTickUS:     s.MinTick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		RespawnPct:    s.PhasePct[PhaseRespawn],
		PlayerPct:     s.PhasePct[PhasePlayer],
		SplitPct:      s.PhasePct[PhaseSplit],
		BotsPct:       s.PhasePct[PhaseBots],
		HazardsPct:    s.PhasePct[PhaseHazards],
		CollisionsPct: s.PhasePct[PhaseCollisions],
		GrowthPct:     s.PhasePct[PhaseGrowth],
		StatusPct:     s.PhasePct[PhaseStatus],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
