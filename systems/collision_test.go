package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/gobble/components"
)

func TestCanEatRatioBoundary(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		dist float64
		want bool
	}{
		{"exactly ratio", 44, 40, 0, false},
		{"just above ratio", 44.01, 40, 0, true},
		{"equal radii", 40, 40, 0, false},
		{"center outside eater", 50, 40, 50, false},
		{"center inside eater", 50, 40, 45, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEat(tt.a, tt.b, tt.dist, 1.1); got != tt.want {
				t.Errorf("CanEat(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.dist, got, tt.want)
			}
		})
	}
}

func TestPlayerEatsBot(t *testing.T) {
	a := newTestArena(t)
	cell := a.cells.Spawn(0, 0, 50, 0)
	bot := a.bots.Spawn(45, 0, 40, 1)

	res := a.resolve(1)

	if len(res.Meals) != 1 {
		t.Fatalf("meals = %d, want 1", len(res.Meals))
	}
	meal := res.Meals[0]
	if meal.Eater != cell || meal.Prey != bot {
		t.Errorf("unexpected meal %+v", meal)
	}

	actor := a.resolver.actorMap.Get(cell)
	if actor.Score != 40 {
		t.Errorf("Score = %d, want 40", actor.Score)
	}
	body := a.resolver.bodyMap.Get(cell)
	if math.Abs(body.TargetRadius-70) > 1e-9 {
		t.Errorf("TargetRadius = %v, want 70", body.TargetRadius)
	}

	if b := a.bots.botMap.Get(bot); !b.Respawning {
		t.Error("eaten bot not respawning")
	}
	if r := a.resolver.bodyMap.Get(bot).Radius; r != 0 {
		t.Errorf("eaten bot radius = %v, want 0", r)
	}
}

func TestBotEatsLastPlayerCell(t *testing.T) {
	a := newTestArena(t)
	a.cells.Spawn(0, 0, 20, 0)
	bot := a.bots.Spawn(10, 0, 40, 1)

	res := a.resolve(1)

	if len(res.Meals) != 1 || res.Meals[0].Eater != bot {
		t.Fatalf("meals = %+v, want bot eating the player", res.Meals)
	}
	if a.cells.Count() != 0 {
		t.Errorf("player cells = %d, want 0", a.cells.Count())
	}
	if got := a.resolver.actorMap.Get(bot).Score; got != 20 {
		t.Errorf("bot score = %d, want 20", got)
	}
	// Bot factor 0.8 * 20 = 16
	if got := a.resolver.bodyMap.Get(bot).TargetRadius; math.Abs(got-56) > 1e-9 {
		t.Errorf("bot TargetRadius = %v, want 56", got)
	}
}

func TestPlayerCellsNeverEatEachOther(t *testing.T) {
	a := newTestArena(t)
	a.cells.Spawn(0, 0, 60, 0)
	a.cells.Spawn(5, 0, 20, 0)

	res := a.resolve(1)
	if len(res.Meals) != 0 {
		t.Errorf("meals = %+v, want none", res.Meals)
	}
	if a.cells.Count() != 2 {
		t.Errorf("player cells = %d, want 2", a.cells.Count())
	}
}

func TestEatenActorCannotEat(t *testing.T) {
	a := newTestArena(t)
	// big eats mid; mid would have eaten small but is gone first
	big := a.bots.Spawn(0, 0, 100, 1)
	a.bots.Spawn(50, 0, 60, 1)
	a.bots.Spawn(200, 0, 10, 1)
	small := a.bots.Spawn(80, 0, 20, 1)

	res := a.resolve(1)

	for _, m := range res.Meals {
		if m.Prey == small && m.Eater != big {
			t.Errorf("small bot eaten by %v after its eater was eaten", m.Eater)
		}
	}
	if len(res.Meals) != 2 {
		t.Errorf("meals = %d, want 2 (big eats mid and small)", len(res.Meals))
	}
}

func TestPelletGrowthAndPool(t *testing.T) {
	a := newTestArena(t)
	cell := a.cells.Spawn(0, 0, 20, 0)
	id := a.food.At(0).ID
	a.food.Place(id, 25, 0)

	before := a.food.Len()
	res := a.resolve(1)

	if len(res.Pellets) != 1 || res.Pellets[0].PelletID != id {
		t.Fatalf("pellets = %+v, want one meal of %d", res.Pellets, id)
	}
	if a.food.Len() != before {
		t.Errorf("pool size = %d, want %d", a.food.Len(), before)
	}
	if a.food.Exists(id) {
		t.Error("eaten pellet still in pool")
	}
	body := a.resolver.bodyMap.Get(cell)
	if math.Abs(body.TargetRadius-20.5) > 1e-9 {
		t.Errorf("TargetRadius = %v, want 20.5", body.TargetRadius)
	}
	if got := a.resolver.actorMap.Get(cell).Score; got != 0 {
		t.Errorf("Score = %d, pellets must not add score", got)
	}
}

func TestPelletConsumedOnce(t *testing.T) {
	a := newTestArena(t)
	big := a.bots.Spawn(-30, 0, 30, 1)
	a.bots.Spawn(30, 0, 29, 1)
	id := a.food.At(0).ID
	a.food.Place(id, 0, 0)

	res := a.resolve(1)

	if len(res.Pellets) != 1 {
		t.Fatalf("pellet meals = %d, want 1", len(res.Pellets))
	}
	if res.Pellets[0].Eater != big {
		t.Errorf("pellet went to %v, want the larger bot", res.Pellets[0].Eater)
	}
}

func TestVirusHit(t *testing.T) {
	t.Run("unshielded halves target", func(t *testing.T) {
		a := newTestArena(t)
		cell := a.cells.Spawn(0, 0, 80, 0)
		a.hazards.PlaceVirus(50, 0)

		res := a.resolve(1)
		if len(res.Virus) != 1 || res.Virus[0].Shielded {
			t.Fatalf("virus hits = %+v, want one unshielded", res.Virus)
		}
		if got := a.resolver.bodyMap.Get(cell).TargetRadius; got != 40 {
			t.Errorf("TargetRadius = %v, want 40", got)
		}
		if v := a.hazards.Virus(); v.X == 50 && v.Y == 0 {
			t.Error("virus did not relocate")
		}
	})

	t.Run("floored at min radius", func(t *testing.T) {
		a := newTestArena(t)
		cell := a.cells.Spawn(0, 0, 15, 0)
		a.hazards.PlaceVirus(20, 0)

		a.resolve(1)
		if got := a.resolver.bodyMap.Get(cell).TargetRadius; got != 10 {
			t.Errorf("TargetRadius = %v, want 10", got)
		}
	})

	t.Run("shield absorbs", func(t *testing.T) {
		a := newTestArena(t)
		cell := a.cells.Spawn(0, 0, 80, 0)
		a.resolver.statusMap.Get(cell).ShieldUntil = 10
		a.hazards.PlaceVirus(50, 0)

		res := a.resolve(1)
		if len(res.Virus) != 1 || !res.Virus[0].Shielded {
			t.Fatalf("virus hits = %+v, want one shielded", res.Virus)
		}
		if got := a.resolver.bodyMap.Get(cell).TargetRadius; got != 80 {
			t.Errorf("TargetRadius = %v, want 80", got)
		}
		if a.resolver.statusMap.Get(cell).Shielded(1) {
			t.Error("shield not consumed")
		}
	})

	t.Run("bots are hit too", func(t *testing.T) {
		a := newTestArena(t)
		bot := a.bots.Spawn(0, 0, 40, 1)
		a.hazards.PlaceVirus(30, 0)

		a.resolve(1)
		if got := a.resolver.bodyMap.Get(bot).TargetRadius; got != 20 {
			t.Errorf("bot TargetRadius = %v, want 20", got)
		}
	})
}

func TestBonusPickups(t *testing.T) {
	t.Run("speed applies to every cell", func(t *testing.T) {
		a := newTestArena(t)
		a.cells.Spawn(0, 0, 30, 0)
		a.cells.Spawn(200, 0, 30, 0)
		a.hazards.AddBonus(BonusSpeed, 20, 0)

		res := a.resolve(2)
		if len(res.Bonuses) != 1 {
			t.Fatalf("bonuses = %d, want 1", len(res.Bonuses))
		}
		for _, cell := range a.cells.Cells() {
			actor := a.resolver.actorMap.Get(cell)
			want := a.cfg.Player.BaseSpeed * a.cfg.Bonus.SpeedMultiplier
			if math.Abs(actor.Speed-want) > 1e-9 {
				t.Errorf("Speed = %v, want %v", actor.Speed, want)
			}
			if got := a.resolver.statusMap.Get(cell).BoostUntil; got != 2+a.cfg.Bonus.Duration {
				t.Errorf("BoostUntil = %v, want %v", got, 2+a.cfg.Bonus.Duration)
			}
		}
		if len(a.hazards.Bonuses()) != 0 {
			t.Error("bonus not removed")
		}
	})

	t.Run("shield", func(t *testing.T) {
		a := newTestArena(t)
		cell := a.cells.Spawn(0, 0, 30, 0)
		a.hazards.AddBonus(BonusShield, 20, 0)

		a.resolve(2)
		if !a.resolver.statusMap.Get(cell).Shielded(6) {
			t.Error("cell not shielded")
		}
	})

	t.Run("reset", func(t *testing.T) {
		a := newTestArena(t)
		cell := a.cells.Spawn(0, 0, 90, 0)
		a.resolver.actorMap.Get(cell).Score = 120
		a.hazards.AddBonus(BonusReset, 20, 0)

		a.resolve(2)
		body := a.resolver.bodyMap.Get(cell)
		if body.Radius != a.cfg.Player.StartRadius || body.TargetRadius != a.cfg.Player.StartRadius {
			t.Errorf("body = %+v, want start radius", *body)
		}
		if got := a.cells.TotalScore(); got != 0 {
			t.Errorf("TotalScore = %d, want 0", got)
		}
	})

	t.Run("bots ignore bonuses", func(t *testing.T) {
		a := newTestArena(t)
		a.bots.Spawn(0, 0, 30, 1)
		a.hazards.AddBonus(BonusSpeed, 20, 0)

		res := a.resolve(2)
		if len(res.Bonuses) != 0 || len(a.hazards.Bonuses()) != 1 {
			t.Errorf("bot collected a bonus")
		}
	})
}

func TestRespawningBotIgnored(t *testing.T) {
	a := newTestArena(t)
	a.cells.Spawn(0, 0, 50, 0)
	bot := a.bots.Spawn(10, 0, 20, 1)
	a.bots.Kill(bot, 0)

	res := a.resolve(1)
	if len(res.Meals) != 0 {
		t.Errorf("respawning bot took part in a meal: %+v", res.Meals)
	}
	if !a.bots.botMap.Get(bot).Respawning || a.resolver.actorMap.Get(bot).Kind != components.KindBot {
		t.Error("bot state changed while respawning")
	}
}
