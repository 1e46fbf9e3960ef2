package telemetry

import (
	"testing"

	"github.com/pthm-cable/gobble/components"
)

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector(10, 1.0/60)

	c.RecordAll([]Event{
		NewPelletEvent(1, 1, components.KindPlayer, 100),
		NewPelletEvent(1, 2, components.KindBot, 101),
		NewPelletEvent(2, 2, components.KindBot, 102),
		NewEatEvent(3, 1, components.KindPlayer, 2, components.KindBot, 30),
		NewEatEvent(3, 3, components.KindBot, 4, components.KindBot, 12),
		NewEatEvent(4, 3, components.KindBot, 1, components.KindPlayer, 20),
		NewCellLostEvent(4, 1, 3),
		NewRespawnEvent(5, 2, 25),
		NewSplitEvent(6, 1, 5),
		NewFusionEvent(7, 1, 2),
		NewVirusEvent(8, 1, components.KindPlayer, false),
		NewVirusEvent(9, 1, components.KindPlayer, true),
		NewBonusEvent(10, 1, 1, "speed"),
	})

	stats := c.Flush(600, Sample{Score: 42, PlayerCells: 1, BotRadii: []float64{10, 20, 30}})

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"pellets player", stats.PelletsPlayer, 1},
		{"pellets bot", stats.PelletsBot, 2},
		{"bots eaten", stats.BotsEaten, 1},
		{"bot kills", stats.BotKills, 1},
		{"cells lost", stats.CellsLost, 1},
		{"respawns", stats.Respawns, 1},
		{"splits", stats.Splits, 1},
		{"fusions", stats.Fusions, 2},
		{"virus hits", stats.VirusHits, 1},
		{"shield absorbs", stats.ShieldAbsorbs, 1},
		{"bonuses", stats.Bonuses, 1},
		{"score", stats.Score, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	if stats.BotRadiusMean != 20 {
		t.Errorf("BotRadiusMean = %v, want 20", stats.BotRadiusMean)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 600 {
		t.Errorf("window = [%d, %d], want [0, 600]", stats.WindowStartTick, stats.WindowEndTick)
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	c.Record(NewSplitEvent(1, 1, 2))
	c.Flush(600, Sample{})

	stats := c.Flush(1200, Sample{})
	if stats.Splits != 0 {
		t.Errorf("Splits = %d after flush, want 0", stats.Splits)
	}
	if stats.WindowStartTick != 600 {
		t.Errorf("WindowStartTick = %d, want 600", stats.WindowStartTick)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if c.WindowDurationTicks() != 600 {
		t.Fatalf("WindowDurationTicks() = %d, want 600", c.WindowDurationTicks())
	}
	if c.ShouldFlush(599) {
		t.Error("ShouldFlush(599) = true")
	}
	if !c.ShouldFlush(600) {
		t.Error("ShouldFlush(600) = false")
	}

	c.Reset(1000)
	if c.ShouldFlush(1599) {
		t.Error("ShouldFlush(1599) after Reset(1000) = true")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventShieldAbsorb.String() != "shield_absorb" {
		t.Errorf("EventShieldAbsorb.String() = %q", EventShieldAbsorb.String())
	}
	if EventType(250).String() != "unknown" {
		t.Errorf("EventType(250).String() = %q", EventType(250).String())
	}
}

func TestCollectorPending(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if c.Pending(0) {
		t.Error("Pending(0) = true at window start")
	}
	if !c.Pending(90) {
		t.Error("Pending(90) = false with an open window")
	}
	c.Flush(90, Sample{})
	if c.Pending(90) {
		t.Error("Pending(90) = true right after Flush(90)")
	}
}
