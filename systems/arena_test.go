package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/config"
)

// testArena wires the core systems around a fresh world.
type testArena struct {
	world    *ecs.World
	cfg      *config.Config
	field    SpatialField
	ids      *IDGen
	rng      *rand.Rand
	food     *FoodSystem
	cells    *SplitMergeController
	bots     *BotPolicy
	hazards  *HazardSystem
	resolver *CollisionResolver
}

func newTestArena(t *testing.T) *testArena {
	t.Helper()

	cfg := config.Default()
	cfg.Bots.Count = 0

	world := ecs.NewWorld()
	field := NewSpatialField(cfg.World.Size)
	ids := &IDGen{}
	rng := rand.New(rand.NewSource(7))

	a := &testArena{
		world:    world,
		cfg:      cfg,
		field:    field,
		ids:      ids,
		rng:      rng,
		food:     NewFoodSystem(field, cfg.Food.Radius, cfg.Food.Symbols, cfg.Physics.GridCellSize, rng),
		cells:    NewSplitMergeController(world, cfg, field, ids),
		bots:     NewBotPolicy(world, cfg, field, ids, rng),
		hazards:  NewHazardSystem(cfg, field, rng),
		resolver: NewCollisionResolver(world, cfg),
	}
	a.food.Initialize(cfg.Food.Count)
	a.food.ClearAround(r2.Vec{}, 400)
	a.hazards.PlaceVirus(2000, 2000)
	return a
}

func (a *testArena) resolve(now float64) *Resolution {
	return a.resolver.Resolve(now, a.food, a.hazards, a.cells, a.bots)
}
