package systems

import (
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/components"
	"github.com/pthm-cable/gobble/config"
)

// PelletMeal records one pellet eaten during a tick.
type PelletMeal struct {
	Eater     ecs.Entity
	EaterID   uint32
	EaterKind components.Kind
	PelletID  uint32
}

// Meal records one actor eaten by another.
type Meal struct {
	Eater      ecs.Entity
	Prey       ecs.Entity
	EaterID    uint32
	PreyID     uint32
	EaterKind  components.Kind
	PreyKind   components.Kind
	PreyRadius float64
	Gain       float64 // target radius added to the eater
}

// VirusHit records the virus touching an actor.
type VirusHit struct {
	Entity   ecs.Entity
	ID       uint32
	Kind     components.Kind
	Shielded bool // the shield absorbed the hit
}

// BonusPickup records a player cell collecting a bonus.
type BonusPickup struct {
	Entity ecs.Entity
	ID     uint32
	Bonus  Bonus
}

// Resolution is everything the resolver did in one tick.
type Resolution struct {
	Pellets []PelletMeal
	Meals   []Meal
	Virus   []VirusHit // at most one entry
	Bonuses []BonusPickup
}

func (r *Resolution) reset() {
	r.Pellets = r.Pellets[:0]
	r.Meals = r.Meals[:0]
	r.Virus = r.Virus[:0]
	r.Bonuses = r.Bonuses[:0]
}

// contender is one actor's start-of-tick state.
type contender struct {
	entity ecs.Entity
	id     uint32
	kind   components.Kind
	pos    r2.Vec
	radius float64
	eaten  bool
}

// CollisionResolver evaluates pellet, actor, virus and bonus contacts.
// Every check reads one snapshot taken at the start of Resolve; pellet
// replacement and actor removal are applied after evaluation.
type CollisionResolver struct {
	cfg *config.Config

	posMap    *ecs.Map1[components.Position]
	bodyMap   *ecs.Map1[components.Body]
	actorMap  *ecs.Map1[components.Actor]
	statusMap *ecs.Map1[components.Status]

	contenders []contender
	consumed   map[uint32]struct{}
	touching   []uint32
	result     Resolution
}

// NewCollisionResolver creates a resolver.
func NewCollisionResolver(w *ecs.World, cfg *config.Config) *CollisionResolver {
	return &CollisionResolver{
		cfg:       cfg,
		posMap:    ecs.NewMap1[components.Position](w),
		bodyMap:   ecs.NewMap1[components.Body](w),
		actorMap:  ecs.NewMap1[components.Actor](w),
		statusMap: ecs.NewMap1[components.Status](w),
		consumed:  make(map[uint32]struct{}),
	}
}

// Resolve runs one tick of contact resolution. The returned Resolution is
// reused on the next call.
func (r *CollisionResolver) Resolve(now float64, food *FoodSystem, hazards *HazardSystem, cells *SplitMergeController, bots *BotPolicy) *Resolution {
	r.result.reset()
	r.snapshot(cells, bots)

	r.resolveActors()
	r.resolvePellets(food)
	r.resolveVirus(now, hazards)
	r.resolveBonuses(now, hazards, cells)

	for _, meal := range r.result.Pellets {
		food.Consume(meal.PelletID)
	}
	for _, meal := range r.result.Meals {
		if meal.PreyKind == components.KindBot {
			bots.Kill(meal.Prey, now)
		} else {
			cells.Remove(meal.Prey)
		}
	}
	return &r.result
}

// snapshot collects live actors sorted by radius descending, then ID ascending.
func (r *CollisionResolver) snapshot(cells *SplitMergeController, bots *BotPolicy) {
	r.contenders = r.contenders[:0]
	add := func(e ecs.Entity) {
		body := r.bodyMap.Get(e)
		if !body.Alive() {
			return
		}
		actor := r.actorMap.Get(e)
		r.contenders = append(r.contenders, contender{
			entity: e,
			id:     actor.ID,
			kind:   actor.Kind,
			pos:    r.posMap.Get(e).Vec(),
			radius: body.Radius,
		})
	}
	for _, e := range cells.Cells() {
		add(e)
	}
	for _, e := range bots.Bots() {
		add(e)
	}

	sort.Slice(r.contenders, func(i, j int) bool {
		a, b := r.contenders[i], r.contenders[j]
		if a.radius != b.radius {
			return a.radius > b.radius
		}
		return a.id < b.id
	})
}

// CanEat reports whether an eater of radius a swallows prey of radius b
// whose center lies at dist.
func CanEat(a, b, dist, ratio float64) bool {
	return a > b*ratio && dist < a
}

func (r *CollisionResolver) resolveActors() {
	for i := range r.contenders {
		eater := &r.contenders[i]
		if eater.eaten {
			continue
		}
		for j := i + 1; j < len(r.contenders); j++ {
			prey := &r.contenders[j]
			if prey.eaten {
				continue
			}
			if eater.kind == components.KindPlayer && prey.kind == components.KindPlayer {
				continue
			}
			if !CanEat(eater.radius, prey.radius, Distance(eater.pos, prey.pos), r.cfg.Eat.Ratio) {
				continue
			}

			prey.eaten = true
			factor := r.cfg.Eat.BotFactor
			if eater.kind == components.KindPlayer {
				factor = r.cfg.Eat.PlayerFactor
			}
			gain := Grow(r.bodyMap.Get(eater.entity), EatGain(prey.radius, factor, r.cfg.Eat.MaxGain), r.cfg.Player.MaxRadius)
			r.actorMap.Get(eater.entity).Score += int(math.Floor(prey.radius))

			r.result.Meals = append(r.result.Meals, Meal{
				Eater:      eater.entity,
				Prey:       prey.entity,
				EaterID:    eater.id,
				PreyID:     prey.id,
				EaterKind:  eater.kind,
				PreyKind:   prey.kind,
				PreyRadius: prey.radius,
				Gain:       gain,
			})
		}
	}
}

func (r *CollisionResolver) resolvePellets(food *FoodSystem) {
	clear(r.consumed)
	for i := range r.contenders {
		c := &r.contenders[i]
		if c.eaten {
			continue
		}

		growth := r.cfg.Food.BotGrowth
		if c.kind == components.KindPlayer {
			growth = r.cfg.Food.PlayerGrowth
		}

		r.touching = food.Touching(r.touching[:0], c.pos, c.radius)
		for _, id := range r.touching {
			if _, taken := r.consumed[id]; taken {
				continue
			}
			r.consumed[id] = struct{}{}
			Grow(r.bodyMap.Get(c.entity), growth, r.cfg.Player.MaxRadius)
			r.result.Pellets = append(r.result.Pellets, PelletMeal{
				Eater:     c.entity,
				EaterID:   c.id,
				EaterKind: c.kind,
				PelletID:  id,
			})
		}
	}
}

func (r *CollisionResolver) resolveVirus(now float64, hazards *HazardSystem) {
	virus := hazards.Virus()
	for i := range r.contenders {
		c := &r.contenders[i]
		if c.eaten || Distance(c.pos, virus.Pos()) >= c.radius+virus.Radius {
			continue
		}

		status := r.statusMap.Get(c.entity)
		hit := VirusHit{Entity: c.entity, ID: c.id, Kind: c.kind}
		if status.Shielded(now) {
			status.ShieldUntil = 0
			hit.Shielded = true
		} else {
			body := r.bodyMap.Get(c.entity)
			body.TargetRadius = math.Min(body.TargetRadius, math.Max(r.cfg.Virus.MinRadius, body.TargetRadius/2))
		}
		hazards.RelocateVirus()
		r.result.Virus = append(r.result.Virus, hit)
		return
	}
}

func (r *CollisionResolver) resolveBonuses(now float64, hazards *HazardSystem, cells *SplitMergeController) {
	if len(hazards.Bonuses()) == 0 {
		return
	}
	for i := range r.contenders {
		c := &r.contenders[i]
		if c.eaten || c.kind != components.KindPlayer {
			continue
		}
		for _, b := range hazards.Bonuses() {
			if Distance(c.pos, b.Pos()) >= c.radius+b.Radius {
				continue
			}
			hazards.TakeBonus(b.ID)
			r.applyBonus(now, b.Kind, c.entity, cells)
			r.result.Bonuses = append(r.result.Bonuses, BonusPickup{Entity: c.entity, ID: c.id, Bonus: b})
			break
		}
	}
}

func (r *CollisionResolver) applyBonus(now float64, kind BonusKind, picker ecs.Entity, cells *SplitMergeController) {
	until := now + r.cfg.Bonus.Duration
	switch kind {
	case BonusSpeed:
		cells.ForEach(func(_ ecs.Entity, _ *components.Body, actor *components.Actor, status *components.Status) {
			actor.Speed = actor.BaseSpeed * r.cfg.Bonus.SpeedMultiplier
			status.BoostUntil = until
		})
	case BonusShield:
		cells.ForEach(func(_ ecs.Entity, _ *components.Body, _ *components.Actor, status *components.Status) {
			status.ShieldUntil = until
		})
	case BonusReset:
		body := r.bodyMap.Get(picker)
		body.Radius = r.cfg.Player.StartRadius
		body.TargetRadius = r.cfg.Player.StartRadius
		cells.ForEach(func(_ ecs.Entity, _ *components.Body, actor *components.Actor, _ *components.Status) {
			actor.Score = 0
		})
	}
}
