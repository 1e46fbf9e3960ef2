// Package game runs a single arena match: it owns the ECS world and steps
// every system in a fixed order once per tick.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/components"
	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/systems"
	"github.com/pthm-cable/gobble/telemetry"
)

// Options configures a match beyond the shared Config.
type Options struct {
	Seed           int64
	Match          int     // index within a session, for telemetry
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // 0 = use config
	Output         *telemetry.OutputManager
	OnStats        func(telemetry.WindowStats) // called on each window flush
}

// Match holds the complete state of one match.
type Match struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world    *ecs.World
	field    systems.SpatialField
	ids      *systems.IDGen
	food     *systems.FoodSystem
	cells    *systems.SplitMergeController
	bots     *systems.BotPolicy
	hazards  *systems.HazardSystem
	resolver *systems.CollisionResolver
	growth   *systems.GrowthSystem
	status   *systems.StatusSystem
	clock    *systems.MatchClock

	posMap    *ecs.Map1[components.Position]
	bodyMap   *ecs.Map1[components.Body]
	actorMap  *ecs.Map1[components.Actor]
	statusMap *ecs.Map1[components.Status]
	botMap    *ecs.Map[components.Bot]

	outcome Outcome
	stopped bool
	pointer r2.Vec

	// Events produced by the last tick; pending holds events raised between ticks.
	events    []telemetry.Event
	pending   []telemetry.Event
	respawned []ecs.Entity

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	totals    matchTotals
	started   time.Time

	snap Snapshot
}

// matchTotals accumulates whole-match counters for the summary.
type matchTotals struct {
	pellets   int
	botsEaten int
	splits    int
	cellsLost int
	maxRadius float64
}

// NewMatch validates cfg and starts a fresh match: one player cell at the
// origin, the full pellet pool, the bot population and the hazards.
// cfg is only read, so concurrent matches may share it; call Recompute
// after editing it in code.
func NewMatch(cfg *config.Config, opts Options) (*Match, error) {
	if cfg == nil {
		return nil, fmt.Errorf("starting match: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("starting match: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	field := systems.NewSpatialField(cfg.World.Size)
	ids := &systems.IDGen{}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	m := &Match{
		cfg:       cfg,
		opts:      opts,
		rng:       rng,
		world:     world,
		field:     field,
		ids:       ids,
		food:      systems.NewFoodSystem(field, cfg.Food.Radius, cfg.Food.Symbols, cfg.Physics.GridCellSize, rng),
		cells:     systems.NewSplitMergeController(world, cfg, field, ids),
		bots:      systems.NewBotPolicy(world, cfg, field, ids, rng),
		hazards:   systems.NewHazardSystem(cfg, field, rng),
		resolver:  systems.NewCollisionResolver(world, cfg),
		growth:    systems.NewGrowthSystem(world, cfg.Growth.Rate),
		status:    systems.NewStatusSystem(world),
		clock:     systems.NewMatchClock(cfg.Derived.MatchTicks, cfg.Physics.DT),
		posMap:    ecs.NewMap1[components.Position](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		actorMap:  ecs.NewMap1[components.Actor](world),
		statusMap: ecs.NewMap1[components.Status](world),
		botMap:    ecs.NewMap[components.Bot](world),
		collector: telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		bookmarks: telemetry.NewBookmarkDetector(10),
		output:    opts.Output,
		started:   time.Now(),
	}
	if opts.LogStats || opts.Output != nil {
		m.perf = telemetry.NewPerfCollector(m.collector.WindowDurationTicks())
	}

	m.food.Initialize(cfg.Food.Count)
	m.cells.Spawn(0, 0, cfg.Player.StartRadius, rng.Float32()*360)
	m.bots.SpawnInitial(cfg.Bots.Count)
	m.totals.maxRadius = cfg.Player.StartRadius

	slog.Info("match started",
		"match", opts.Match,
		"seed", opts.Seed,
		"bots", cfg.Bots.Count,
		"pellets", m.food.Len(),
		"duration", cfg.Match.Duration,
	)
	return m, nil
}

// SetPointerTarget sets the world point the primary cell steers toward.
func (m *Match) SetPointerTarget(x, y float64) {
	m.pointer = r2.Vec{X: x, Y: y}
}

// Pointer returns the current steering target.
func (m *Match) Pointer() r2.Vec {
	return m.pointer
}

// RequestSplit splits the primary toward the pointer. Returns false, with no
// other effect, when the split is not allowed or the match has ended.
func (m *Match) RequestSplit() bool {
	if m.outcome.Finished() || m.stopped {
		return false
	}
	primary, _ := m.cells.Primary()
	child, ok := m.cells.Split(m.clock.Elapsed(), m.pointer)
	if !ok {
		return false
	}
	m.totals.splits++
	m.pending = append(m.pending, telemetry.NewSplitEvent(m.clock.Tick(),
		m.actorMap.Get(primary).ID, m.actorMap.Get(child).ID))
	return true
}

// Advance runs one fixed tick. A finished or stopped match does not change.
func (m *Match) Advance() {
	if m.outcome.Finished() || m.stopped {
		return
	}

	m.events = append(m.events[:0], m.pending...)
	m.pending = m.pending[:0]

	tick := m.clock.Tick()
	now := m.clock.Elapsed()
	m.perf.StartTick()

	m.perf.StartPhase(telemetry.PhaseRespawn)
	m.respawned = m.bots.RespawnDue(now, m.primaryRadius(), m.respawned[:0])
	for _, e := range m.respawned {
		m.events = append(m.events, telemetry.NewRespawnEvent(tick, m.actorMap.Get(e).ID, m.bodyMap.Get(e).Radius))
	}

	m.perf.StartPhase(telemetry.PhasePlayer)
	m.cells.MovePrimary(m.pointer)

	m.perf.StartPhase(telemetry.PhaseSplit)
	if fused := m.cells.Advance(now); fused > 0 {
		primary, _ := m.cells.Primary()
		m.events = append(m.events, telemetry.NewFusionEvent(tick, m.actorMap.Get(primary).ID, fused))
	}

	m.perf.StartPhase(telemetry.PhaseBots)
	m.bots.Update(now, m.food, m.threat())

	m.perf.StartPhase(telemetry.PhaseHazards)
	if b, ok := m.hazards.Update(now); ok {
		m.events = append(m.events, telemetry.NewBonusSpawnEvent(tick, b.ID, b.Kind.String()))
	}

	m.perf.StartPhase(telemetry.PhaseCollisions)
	m.recordResolution(tick, m.resolver.Resolve(now, m.food, m.hazards, m.cells, m.bots))
	if m.cells.Count() == 0 {
		m.outcome = OutcomeLost
	}

	m.perf.StartPhase(telemetry.PhaseGrowth)
	m.growth.Update()

	m.perf.StartPhase(telemetry.PhaseStatus)
	m.status.Update(now)

	m.clock.Advance()
	if m.outcome == OutcomeRunning && m.clock.Expired() {
		m.outcome = OutcomeWon
	}

	m.perf.StartPhase(telemetry.PhaseTelemetry)
	m.trackTotals()
	if m.outcome.Finished() {
		m.events = append(m.events, telemetry.NewMatchEndEvent(m.clock.Tick(), m.outcome == OutcomeWon, m.Score()))
	}
	m.collector.RecordAll(m.events)
	m.flushTelemetry()
	m.perf.EndTick()

	if m.outcome.Finished() {
		m.finish()
	}
}

// threat describes the primary cell for the bot policy.
func (m *Match) threat() systems.Threat {
	primary, ok := m.cells.Primary()
	if !ok {
		return systems.Threat{}
	}
	return systems.Threat{
		Entity:     primary,
		Pos:        m.posMap.Get(primary).Vec(),
		Radius:     m.bodyMap.Get(primary).Radius,
		Valid:      true,
		Targetable: m.outcome == OutcomeRunning,
	}
}

func (m *Match) primaryRadius() float64 {
	primary, ok := m.cells.Primary()
	if !ok {
		return m.cfg.Player.StartRadius
	}
	return m.bodyMap.Get(primary).Radius
}

// recordResolution turns the resolver's report into events.
func (m *Match) recordResolution(tick int, res *systems.Resolution) {
	for _, p := range res.Pellets {
		m.events = append(m.events, telemetry.NewPelletEvent(tick, p.EaterID, p.EaterKind, p.PelletID))
	}
	for _, meal := range res.Meals {
		m.events = append(m.events, telemetry.NewEatEvent(tick, meal.EaterID, meal.EaterKind, meal.PreyID, meal.PreyKind, meal.PreyRadius))
		slog.Debug("eaten",
			"tick", tick,
			"eater", meal.EaterKind.String(),
			"prey", meal.PreyKind.String(),
			"prey_radius", meal.PreyRadius,
		)
		if meal.PreyKind == components.KindPlayer {
			m.events = append(m.events, telemetry.NewCellLostEvent(tick, meal.PreyID, meal.EaterID))
		}
	}
	for _, hit := range res.Virus {
		m.events = append(m.events, telemetry.NewVirusEvent(tick, hit.ID, hit.Kind, hit.Shielded))
	}
	for _, b := range res.Bonuses {
		m.events = append(m.events, telemetry.NewBonusEvent(tick, b.ID, b.Bonus.ID, b.Bonus.Kind.String()))
	}
}

func (m *Match) trackTotals() {
	for _, ev := range m.events {
		switch {
		case ev.Type == telemetry.EventPellet && ev.Kind == components.KindPlayer:
			m.totals.pellets++
		case ev.Type == telemetry.EventEat && ev.Kind == components.KindPlayer:
			m.totals.botsEaten++
		case ev.Type == telemetry.EventCellLost:
			m.totals.cellsLost++
		}
	}
	if r := m.cells.LargestRadius(); r > m.totals.maxRadius {
		m.totals.maxRadius = r
	}
}

// Events returns the events produced by the last tick.
func (m *Match) Events() []telemetry.Event {
	return m.events
}

// Outcome returns the match state.
func (m *Match) Outcome() Outcome {
	return m.outcome
}

// Tick returns the number of ticks run.
func (m *Match) Tick() int {
	return m.clock.Tick()
}

// Elapsed returns simulation seconds since the start.
func (m *Match) Elapsed() float64 {
	return m.clock.Elapsed()
}

// Score returns the player's total score across cells.
func (m *Match) Score() int {
	return m.cells.TotalScore()
}

// Config returns the match configuration.
func (m *Match) Config() *config.Config {
	return m.cfg
}

// Seed returns the RNG seed the match was started with.
func (m *Match) Seed() int64 {
	return m.opts.Seed
}
