package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/components"
	"github.com/pthm-cable/gobble/config"
)

// SplitMergeController owns the player's cell collection.
// Cells are kept in order; index 0 is the primary cell that follows the pointer.
type SplitMergeController struct {
	world  *ecs.World
	cfg    *config.Config
	field  SpatialField
	ids    *IDGen
	cells  []ecs.Entity
	remove []ecs.Entity

	cellMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Actor,
		components.Status,
		components.PlayerCell,
	]
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	bodyMap   *ecs.Map1[components.Body]
	actorMap  *ecs.Map1[components.Actor]
	statusMap *ecs.Map1[components.Status]
	cellMap   *ecs.Map1[components.PlayerCell]
}

// NewSplitMergeController creates a controller with no cells.
func NewSplitMergeController(w *ecs.World, cfg *config.Config, field SpatialField, ids *IDGen) *SplitMergeController {
	return &SplitMergeController{
		world: w,
		cfg:   cfg,
		field: field,
		ids:   ids,
		cells: make([]ecs.Entity, 0, cfg.Split.MaxCells),
		cellMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Actor,
			components.Status,
			components.PlayerCell,
		](w),
		posMap:    ecs.NewMap1[components.Position](w),
		velMap:    ecs.NewMap1[components.Velocity](w),
		bodyMap:   ecs.NewMap1[components.Body](w),
		actorMap:  ecs.NewMap1[components.Actor](w),
		statusMap: ecs.NewMap1[components.Status](w),
		cellMap:   ecs.NewMap1[components.PlayerCell](w),
	}
}

// Spawn creates a player cell at (x, y). The first cell becomes the primary.
func (c *SplitMergeController) Spawn(x, y, radius float64, hue float32) ecs.Entity {
	p := c.field.Clamp(r2.Vec{X: x, Y: y})
	pos := components.Position{X: p.X, Y: p.Y}
	vel := components.Velocity{}
	body := components.Body{Radius: radius, TargetRadius: radius}
	actor := components.Actor{
		ID:        c.ids.Next(),
		Kind:      components.KindPlayer,
		Speed:     c.cfg.Player.BaseSpeed,
		BaseSpeed: c.cfg.Player.BaseSpeed,
		Hue:       hue,
	}
	status := components.Status{}
	cell := components.PlayerCell{}

	entity := c.cellMapper.NewEntity(&pos, &vel, &body, &actor, &status, &cell)
	c.cells = append(c.cells, entity)
	return entity
}

// Cells returns the player's cells, primary first. Do not modify.
func (c *SplitMergeController) Cells() []ecs.Entity {
	return c.cells
}

// Count returns the number of player cells.
func (c *SplitMergeController) Count() int {
	return len(c.cells)
}

// Primary returns the pointer-following cell.
func (c *SplitMergeController) Primary() (ecs.Entity, bool) {
	if len(c.cells) == 0 {
		return ecs.Entity{}, false
	}
	return c.cells[0], true
}

// TotalScore sums the score carried by every cell.
func (c *SplitMergeController) TotalScore() int {
	total := 0
	for _, e := range c.cells {
		total += c.actorMap.Get(e).Score
	}
	return total
}

// LargestRadius returns the radius of the biggest cell.
func (c *SplitMergeController) LargestRadius() float64 {
	largest := 0.0
	for _, e := range c.cells {
		largest = math.Max(largest, c.bodyMap.Get(e).Radius)
	}
	return largest
}

// Centroid returns the radius-weighted center of the player's cells.
func (c *SplitMergeController) Centroid() r2.Vec {
	var sum r2.Vec
	var weight float64
	for _, e := range c.cells {
		r := c.bodyMap.Get(e).Radius
		sum = r2.Add(sum, r2.Scale(r, c.posMap.Get(e).Vec()))
		weight += r
	}
	if weight == 0 {
		return sum
	}
	return r2.Scale(1/weight, sum)
}

// MovePrimary steps the primary cell toward the pointer at its current speed.
func (c *SplitMergeController) MovePrimary(pointer r2.Vec) {
	primary, ok := c.Primary()
	if !ok {
		return
	}
	pos := c.posMap.Get(primary)
	vel := c.velMap.Get(primary)
	actor := c.actorMap.Get(primary)

	from := pos.Vec()
	to := c.field.Clamp(stepToward(from, pointer, actor.Speed))
	pos.Set(to)
	d := r2.Sub(to, from)
	vel.X, vel.Y = d.X, d.Y
}

// Split divides the primary cell toward the pointer.
// The primary keeps half its target radius and the new cell takes the other half,
// placed just beyond the primary's edge and launched along the split direction.
// Fails when the cell cap is reached or the primary is below the split radius.
func (c *SplitMergeController) Split(now float64, pointer r2.Vec) (ecs.Entity, bool) {
	primary, ok := c.Primary()
	if !ok || len(c.cells) >= c.cfg.Split.MaxCells {
		return ecs.Entity{}, false
	}

	body := c.bodyMap.Get(primary)
	if body.Radius < c.cfg.Split.MinRadius {
		return ecs.Entity{}, false
	}

	origin := c.posMap.Get(primary).Vec()
	dir := r2.Vec{X: 1}
	if delta := r2.Sub(pointer, origin); r2.Norm(delta) > 0 {
		dir = r2.Unit(delta)
	}

	half := body.TargetRadius / 2
	body.TargetRadius -= half
	spawnAt := c.field.Clamp(r2.Add(origin, r2.Scale(body.Radius+c.cfg.Split.Gap, dir)))

	parent := *c.actorMap.Get(primary)
	status := *c.statusMap.Get(primary)
	c.cellMap.Get(primary).LastSplitTime = now

	pos := components.Position{X: spawnAt.X, Y: spawnAt.Y}
	launch := r2.Scale(c.cfg.Split.Speed, dir)
	vel := components.Velocity{X: launch.X, Y: launch.Y}
	newBody := components.Body{Radius: half, TargetRadius: half}
	actor := components.Actor{
		ID:        c.ids.Next(),
		Kind:      components.KindPlayer,
		Speed:     parent.Speed,
		BaseSpeed: parent.BaseSpeed,
		Hue:       parent.Hue,
	}
	cell := components.PlayerCell{LastSplitTime: now}

	entity := c.cellMapper.NewEntity(&pos, &vel, &newBody, &actor, &status, &cell)
	c.cells = append(c.cells, entity)
	return entity, true
}

// Advance moves secondary cells and fuses those whose delay has elapsed.
// Launched cells coast with damping; settled cells follow the primary.
// Returns the number of cells fused this tick.
func (c *SplitMergeController) Advance(now float64) int {
	primary, ok := c.Primary()
	if !ok || len(c.cells) < 2 {
		return 0
	}

	primaryPos := c.posMap.Get(primary).Vec()
	primaryActor := c.actorMap.Get(primary)
	primaryBody := c.bodyMap.Get(primary)
	follow := primaryActor.Speed * c.cfg.Split.FollowMultiplier

	c.remove = c.remove[:0]
	for _, e := range c.cells[1:] {
		pos := c.posMap.Get(e)
		vel := c.velMap.Get(e)

		v := vel.Vec()
		if r2.Norm(v) > 0 {
			pos.Set(r2.Add(pos.Vec(), v))
			v = r2.Scale(c.cfg.Split.Damping, v)
			if r2.Norm(v) < 0.01 {
				v = r2.Vec{}
			}
			vel.X, vel.Y = v.X, v.Y
		}
		if r2.Norm(v) < c.cfg.Split.SettleSpeed {
			pos.Set(stepToward(pos.Vec(), primaryPos, follow))
		}
		c.field.ClampPosition(pos)

		body := c.bodyMap.Get(e)
		if now-c.cellMap.Get(e).LastSplitTime < c.cfg.Split.FusionDelay {
			continue
		}
		if Distance(pos.Vec(), primaryPos) < body.Radius+primaryBody.Radius {
			primaryBody.TargetRadius = math.Min(c.cfg.Player.MaxRadius,
				primaryBody.TargetRadius+body.Radius*c.cfg.Split.FusionFactor)
			primaryActor.Score += c.actorMap.Get(e).Score
			c.remove = append(c.remove, e)
		}
	}

	for _, e := range c.remove {
		c.Remove(e)
	}
	return len(c.remove)
}

// ForEach calls fn for every player cell, primary first.
func (c *SplitMergeController) ForEach(fn func(e ecs.Entity, body *components.Body, actor *components.Actor, status *components.Status)) {
	for _, e := range c.cells {
		fn(e, c.bodyMap.Get(e), c.actorMap.Get(e), c.statusMap.Get(e))
	}
}

// Remove deletes a cell from the world. If the primary is removed the largest
// remaining cell is promoted. Returns the number of cells left.
func (c *SplitMergeController) Remove(e ecs.Entity) int {
	idx := -1
	for i, cell := range c.cells {
		if cell == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return len(c.cells)
	}

	c.cells = append(c.cells[:idx], c.cells[idx+1:]...)
	if c.world.Alive(e) {
		c.world.RemoveEntity(e)
	}

	if idx == 0 && len(c.cells) > 1 {
		largest := 0
		for i, cell := range c.cells {
			if c.bodyMap.Get(cell).Radius > c.bodyMap.Get(c.cells[largest]).Radius {
				largest = i
			}
		}
		c.cells[0], c.cells[largest] = c.cells[largest], c.cells[0]
	}
	return len(c.cells)
}
