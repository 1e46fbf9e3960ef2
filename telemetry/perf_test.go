package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorBasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseBots)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseCollisions)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MinTick > stats.AvgTick || stats.AvgTick > stats.MaxTick {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinTick, stats.AvgTick, stats.MaxTick)
	}
	if stats.PhasePct[PhaseBots] <= 0 || stats.PhasePct[PhaseCollisions] <= 0 {
		t.Errorf("phases not tracked: %v", stats.PhasePct)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGrowth)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfCollectorNil(t *testing.T) {
	var pc *PerfCollector
	pc.StartTick()
	pc.StartPhase(PhaseBots)
	pc.EndTick()
	pc.RecordFrame()
	if stats := pc.Stats(); stats.AvgTick != 0 {
		t.Errorf("nil collector returned %+v", stats)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTick = 1500 * time.Microsecond
	s.PhasePct[PhaseCollisions] = 42
	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 || row.CollisionsPct != 42 {
		t.Errorf("unexpected row %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCollisions.String() != "collisions" {
		t.Errorf("PhaseCollisions.String() = %q", PhaseCollisions.String())
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("Phase(200).String() = %q", Phase(200).String())
	}
}
