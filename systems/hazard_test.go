package systems

import (
	"math"
	"testing"
)

func TestVirusReflectsOffWalls(t *testing.T) {
	a := newTestArena(t)
	half := a.field.Half()

	a.hazards.PlaceVirus(half-0.5, 0)
	a.hazards.virus.Heading = 0

	a.hazards.Update(0)
	v := a.hazards.Virus()
	if v.X != half {
		t.Fatalf("virus X = %v, want clamped to %v", v.X, half)
	}
	if math.Abs(v.Heading-math.Pi) > 1e-9 {
		t.Errorf("heading = %v, want pi", v.Heading)
	}

	a.hazards.Update(0)
	if v := a.hazards.Virus(); v.X >= half {
		t.Errorf("virus X = %v, want moving back west", v.X)
	}

	a.hazards.PlaceVirus(0, -half+0.5)
	a.hazards.virus.Heading = -math.Pi / 2
	a.hazards.Update(0)
	if v := a.hazards.Virus(); math.Abs(v.Heading-math.Pi/2) > 1e-9 {
		t.Errorf("heading after floor bounce = %v, want pi/2", v.Heading)
	}
}

func TestVirusStaysInBounds(t *testing.T) {
	a := newTestArena(t)
	a.hazards.virus.Speed = 40
	for i := 0; i < 5000; i++ {
		a.hazards.Update(0)
		if v := a.hazards.Virus(); !a.field.Contains(v.Pos()) {
			t.Fatalf("virus left the world at %v", v.Pos())
		}
	}
}

func TestBonusSpawnInterval(t *testing.T) {
	a := newTestArena(t)
	interval := a.cfg.Bonus.SpawnInterval

	if _, ok := a.hazards.Update(interval - 0.1); ok {
		t.Fatal("bonus spawned before the interval")
	}
	b, ok := a.hazards.Update(interval)
	if !ok {
		t.Fatal("no bonus at the interval")
	}
	if b.Radius != a.cfg.Bonus.Radius || !a.field.Contains(b.Pos()) {
		t.Errorf("unexpected bonus %+v", b)
	}
	if _, ok := a.hazards.Update(interval + 1); ok {
		t.Error("second bonus spawned too early")
	}
}

func TestBonusCap(t *testing.T) {
	a := newTestArena(t)
	interval := a.cfg.Bonus.SpawnInterval

	for i := 1; i <= a.cfg.Bonus.Max+3; i++ {
		a.hazards.Update(float64(i) * interval)
	}
	if got := len(a.hazards.Bonuses()); got != a.cfg.Bonus.Max {
		t.Errorf("bonuses = %d, want cap %d", got, a.cfg.Bonus.Max)
	}

	first := a.hazards.Bonuses()[0]
	if _, ok := a.hazards.TakeBonus(first.ID); !ok {
		t.Fatal("TakeBonus failed")
	}
	if _, ok := a.hazards.TakeBonus(first.ID); ok {
		t.Error("TakeBonus succeeded twice")
	}
}

func TestBonusKindString(t *testing.T) {
	tests := []struct {
		kind BonusKind
		want string
	}{
		{BonusSpeed, "speed"},
		{BonusShield, "shield"},
		{BonusReset, "reset"},
		{BonusKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
