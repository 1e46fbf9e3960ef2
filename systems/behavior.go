package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/components"
	"github.com/pthm-cable/gobble/config"
)

// Threat describes the player's primary cell as seen by bots.
type Threat struct {
	Entity     ecs.Entity
	Pos        r2.Vec
	Radius     float64
	Valid      bool
	Targetable bool // false once the match has ended
}

// botSnap is the start-of-update view of one live bot.
type botSnap struct {
	entity ecs.Entity
	radius float64
}

// BotPolicy drives bot targeting, movement and respawn.
type BotPolicy struct {
	world *ecs.World
	cfg   *config.Config
	field SpatialField
	ids   *IDGen
	rng   *rand.Rand
	bots  []ecs.Entity

	botMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Actor,
		components.Status,
		components.Bot,
	]
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	bodyMap  *ecs.Map1[components.Body]
	actorMap *ecs.Map1[components.Actor]
	botMap   *ecs.Map[components.Bot]

	live []botSnap
	prey []ecs.Entity
}

// NewBotPolicy creates a policy with no bots.
func NewBotPolicy(w *ecs.World, cfg *config.Config, field SpatialField, ids *IDGen, rng *rand.Rand) *BotPolicy {
	return &BotPolicy{
		world: w,
		cfg:   cfg,
		field: field,
		ids:   ids,
		rng:   rng,
		botMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Actor,
			components.Status,
			components.Bot,
		](w),
		posMap:   ecs.NewMap1[components.Position](w),
		velMap:   ecs.NewMap1[components.Velocity](w),
		bodyMap:  ecs.NewMap1[components.Body](w),
		actorMap: ecs.NewMap1[components.Actor](w),
		botMap:   ecs.NewMap[components.Bot](w),
	}
}

// SpawnInitial creates count bots with random radius and speed.
func (p *BotPolicy) SpawnInitial(count int) {
	for i := 0; i < count; i++ {
		pt := p.field.RandomPoint(p.rng)
		radius := p.cfg.Bots.MinRadius + p.rng.Float64()*p.cfg.Bots.RadiusJitter
		p.Spawn(pt.X, pt.Y, radius, p.randomSpeed())
	}
}

// Spawn creates one live bot. It retargets on its first update.
func (p *BotPolicy) Spawn(x, y, radius, speed float64) ecs.Entity {
	pt := p.field.Clamp(r2.Vec{X: x, Y: y})
	pos := components.Position{X: pt.X, Y: pt.Y}
	vel := components.Velocity{}
	body := components.Body{Radius: radius, TargetRadius: radius}
	actor := components.Actor{
		ID:        p.ids.Next(),
		Kind:      components.KindBot,
		Speed:     speed,
		BaseSpeed: speed,
		Hue:       p.rng.Float32() * 360,
	}
	status := components.Status{}
	bot := components.Bot{}

	entity := p.botMapper.NewEntity(&pos, &vel, &body, &actor, &status, &bot)
	p.bots = append(p.bots, entity)
	return entity
}

// Bots returns every bot entity, live or respawning, in creation order.
func (p *BotPolicy) Bots() []ecs.Entity {
	return p.bots
}

// Kill marks a bot as eaten. The entity stays in the world until it respawns.
func (p *BotPolicy) Kill(e ecs.Entity, now float64) {
	body := p.bodyMap.Get(e)
	actor := p.actorMap.Get(e)
	bot := p.botMap.Get(e)
	vel := p.velMap.Get(e)

	body.Radius, body.TargetRadius = 0, 0
	actor.Score = 0
	vel.X, vel.Y = 0, 0
	bot.Respawning = true
	bot.RespawnAt = now + p.cfg.Bots.RespawnDelay
	bot.Target = components.Target{}
}

// Respawn brings a bot back near the player's size at a random point.
func (p *BotPolicy) Respawn(e ecs.Entity, now, playerRadius float64) {
	pos := p.posMap.Get(e)
	body := p.bodyMap.Get(e)
	actor := p.actorMap.Get(e)
	bot := p.botMap.Get(e)

	jitter := (p.rng.Float64()*2 - 1) * p.cfg.Bots.RespawnJitter
	radius := clampFloat(playerRadius+jitter, p.cfg.Bots.MinRadius, p.cfg.Player.MaxRadius-p.cfg.Bots.MinRadius)

	pos.Set(p.field.RandomPoint(p.rng))
	body.Radius, body.TargetRadius = radius, radius
	actor.Speed = p.randomSpeed()
	actor.BaseSpeed = actor.Speed
	actor.Score = 0
	actor.Hue = p.rng.Float32() * 360
	*bot = components.Bot{RetargetAt: now}
}

// RespawnDue respawns every bot whose timer has elapsed and returns them.
func (p *BotPolicy) RespawnDue(now, playerRadius float64, dst []ecs.Entity) []ecs.Entity {
	for _, e := range p.bots {
		bot := p.botMap.Get(e)
		if bot.Respawning && now >= bot.RespawnAt {
			p.Respawn(e, now, playerRadius)
			dst = append(dst, e)
		}
	}
	return dst
}

func (p *BotPolicy) randomSpeed() float64 {
	return p.cfg.Bots.MinSpeed + p.rng.Float64()*p.cfg.Bots.SpeedJitter
}

// Update retargets and moves every live bot.
func (p *BotPolicy) Update(now float64, food *FoodSystem, threat Threat) {
	p.live = p.live[:0]
	for _, e := range p.bots {
		if p.botMap.Get(e).Live() {
			p.live = append(p.live, botSnap{entity: e, radius: p.bodyMap.Get(e).Radius})
		}
	}

	for _, snap := range p.live {
		e := snap.entity
		bot := p.botMap.Get(e)
		pos := p.posMap.Get(e)

		goal, ok := p.resolve(bot.Target, food)
		if !ok {
			bot.RetargetAt = now
		}
		if now >= bot.RetargetAt {
			bot.Target = p.pickTarget(e, snap.radius, pos.Vec(), food, threat)
			bot.RetargetAt = now + p.cfg.Bots.RetargetMin + p.rng.Float64()*p.cfg.Bots.RetargetJitter
			goal, ok = p.resolve(bot.Target, food)
		}

		radius := p.bodyMap.Get(e).Radius
		here := pos.Vec()
		if danger, fleeing := p.fleeFrom(bot.Target, radius, here, threat); fleeing {
			goal = r2.Sub(r2.Scale(2, here), danger)
			ok = true
		}
		if !ok {
			continue
		}

		next := p.field.Clamp(stepToward(here, goal, p.actorMap.Get(e).Speed))
		pos.Set(next)
		vel := p.velMap.Get(e)
		d := r2.Sub(next, here)
		vel.X, vel.Y = d.X, d.Y
	}
}

// resolve returns the current position of a target, or false if it vanished.
func (p *BotPolicy) resolve(t components.Target, food *FoodSystem) (r2.Vec, bool) {
	switch t.Kind {
	case components.TargetPellet:
		pellet, ok := food.Get(t.PelletID)
		if !ok {
			return r2.Vec{}, false
		}
		return pellet.Pos(), true
	case components.TargetActor:
		if !p.actorLive(t.Entity) {
			return r2.Vec{}, false
		}
		return p.posMap.Get(t.Entity).Vec(), true
	case components.TargetWaypoint:
		return r2.Vec{X: t.X, Y: t.Y}, true
	default:
		return r2.Vec{}, false
	}
}

// actorLive reports whether e is an entity that can currently be chased.
func (p *BotPolicy) actorLive(e ecs.Entity) bool {
	if !p.world.Alive(e) {
		return false
	}
	if p.botMap.Has(e) && !p.botMap.Get(e).Live() {
		return false
	}
	return p.bodyMap.Get(e).Alive()
}

// pickTarget draws uniformly from pellets, smaller actors and random waypoints.
func (p *BotPolicy) pickTarget(self ecs.Entity, radius float64, here r2.Vec, food *FoodSystem, threat Threat) components.Target {
	limit := radius * p.cfg.Bots.PreyRatio

	p.prey = p.prey[:0]
	for _, other := range p.live {
		if other.entity != self && p.bodyMap.Get(other.entity).Radius < limit && p.actorLive(other.entity) {
			p.prey = append(p.prey, other.entity)
		}
	}
	if threat.Valid && threat.Targetable && threat.Radius < limit {
		p.prey = append(p.prey, threat.Entity)
	}

	pellets := food.Len()
	total := pellets + len(p.prey) + p.cfg.Bots.Waypoints
	if total == 0 {
		return components.Target{}
	}

	n := p.rng.Intn(total)
	switch {
	case n < pellets:
		return components.Target{Kind: components.TargetPellet, PelletID: food.At(n).ID}
	case n < pellets+len(p.prey):
		return components.Target{Kind: components.TargetActor, Entity: p.prey[n-pellets]}
	default:
		span := p.cfg.Bots.WanderRange / 2
		wp := p.field.Clamp(r2.Vec{
			X: here.X + (p.rng.Float64()*2-1)*span,
			Y: here.Y + (p.rng.Float64()*2-1)*span,
		})
		return components.Target{Kind: components.TargetWaypoint, X: wp.X, Y: wp.Y}
	}
}

// fleeFrom returns the position of the actor the bot should run from, if any.
// A chased actor that has outgrown the bot takes priority over the player's proximity.
func (p *BotPolicy) fleeFrom(t components.Target, radius float64, here r2.Vec, threat Threat) (r2.Vec, bool) {
	danger := radius * p.cfg.Eat.Ratio

	if t.Kind == components.TargetActor && p.actorLive(t.Entity) && p.bodyMap.Get(t.Entity).Radius > danger {
		return p.posMap.Get(t.Entity).Vec(), true
	}

	if threat.Valid && p.cfg.Bots.FleeRadius > 0 && threat.Radius > danger {
		if Distance(here, threat.Pos) < p.cfg.Bots.FleeRadius {
			return threat.Pos, true
		}
	}
	return r2.Vec{}, false
}

// Radii appends the radius of every live bot to dst.
func (p *BotPolicy) Radii(dst []float64) []float64 {
	for _, e := range p.bots {
		if p.botMap.Get(e).Live() {
			dst = append(dst, p.bodyMap.Get(e).Radius)
		}
	}
	return dst
}
