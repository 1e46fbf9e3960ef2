package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pellet is a static food item. Pellets live outside the ECS.
type Pellet struct {
	ID     uint32
	X, Y   float64
	Radius float64
	Symbol string // emoji glyph used by the renderers
}

// Pos returns the pellet center.
func (p Pellet) Pos() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// FoodSystem maintains a constant-size pool of pellets.
// Consuming a pellet removes it and inserts one replacement at a random point,
// so Len() never changes after Initialize.
type FoodSystem struct {
	pellets []Pellet
	index   map[uint32]int // pellet ID -> slot
	nextID  uint32

	field   SpatialField
	radius  float64
	symbols []string
	rng     *rand.Rand

	grid      *SpatialGrid
	gridDirty bool
	scratch   []int32
}

// NewFoodSystem creates an empty pool. Call Initialize to fill it.
func NewFoodSystem(field SpatialField, radius float64, symbols []string, cellSize float64, rng *rand.Rand) *FoodSystem {
	return &FoodSystem{
		index:     make(map[uint32]int),
		field:     field,
		radius:    radius,
		symbols:   symbols,
		rng:       rng,
		grid:      NewSpatialGrid(field.Half()*2, cellSize),
		gridDirty: true,
	}
}

// Initialize discards any existing pellets and creates count new ones.
func (fs *FoodSystem) Initialize(count int) {
	fs.pellets = make([]Pellet, 0, count)
	fs.index = make(map[uint32]int, count)
	for i := 0; i < count; i++ {
		fs.spawn()
	}
	fs.gridDirty = true
}

func (fs *FoodSystem) spawn() Pellet {
	fs.nextID++
	p := fs.field.RandomPoint(fs.rng)
	pellet := Pellet{
		ID:     fs.nextID,
		X:      p.X,
		Y:      p.Y,
		Radius: fs.radius,
		Symbol: fs.symbols[fs.rng.Intn(len(fs.symbols))],
	}
	fs.index[pellet.ID] = len(fs.pellets)
	fs.pellets = append(fs.pellets, pellet)
	return pellet
}

// Consume removes the pellet and spawns its replacement.
// Returns false if the ID is not in the pool.
func (fs *FoodSystem) Consume(id uint32) bool {
	slot, ok := fs.index[id]
	if !ok {
		return false
	}

	last := len(fs.pellets) - 1
	if slot != last {
		fs.pellets[slot] = fs.pellets[last]
		fs.index[fs.pellets[slot].ID] = slot
	}
	fs.pellets = fs.pellets[:last]
	delete(fs.index, id)

	fs.spawn()
	fs.gridDirty = true
	return true
}

// Place moves an existing pellet. Used to stage scenarios.
func (fs *FoodSystem) Place(id uint32, x, y float64) bool {
	slot, ok := fs.index[id]
	if !ok {
		return false
	}
	p := fs.field.Clamp(r2.Vec{X: x, Y: y})
	fs.pellets[slot].X = p.X
	fs.pellets[slot].Y = p.Y
	fs.gridDirty = true
	return true
}

// Get returns the pellet with the given ID.
func (fs *FoodSystem) Get(id uint32) (Pellet, bool) {
	slot, ok := fs.index[id]
	if !ok {
		return Pellet{}, false
	}
	return fs.pellets[slot], true
}

// Exists reports whether the pellet is still in the pool.
func (fs *FoodSystem) Exists(id uint32) bool {
	_, ok := fs.index[id]
	return ok
}

// Len returns the pool size.
func (fs *FoodSystem) Len() int {
	return len(fs.pellets)
}

// All returns the live pellets. The slice must not be modified or retained
// across a Consume.
func (fs *FoodSystem) All() []Pellet {
	return fs.pellets
}

// At returns the pellet in the given slot.
func (fs *FoodSystem) At(slot int) Pellet {
	return fs.pellets[slot]
}

// Touching appends the IDs of pellets whose edge is within reach of a circle
// at pos with the given radius (dist < radius + pellet radius).
func (fs *FoodSystem) Touching(dst []uint32, pos r2.Vec, radius float64) []uint32 {
	fs.rebuildGrid()

	fs.scratch = fs.grid.QueryInto(fs.scratch[:0], pos.X, pos.Y, radius+fs.radius)
	for _, slot := range fs.scratch {
		p := fs.pellets[slot]
		if Distance(pos, p.Pos()) < radius+p.Radius {
			dst = append(dst, p.ID)
		}
	}
	return dst
}

// Near appends the IDs of pellets whose centers lie within radius of pos.
func (fs *FoodSystem) Near(dst []uint32, pos r2.Vec, radius float64) []uint32 {
	fs.rebuildGrid()

	fs.scratch = fs.grid.QueryInto(fs.scratch[:0], pos.X, pos.Y, radius)
	for _, slot := range fs.scratch {
		p := fs.pellets[slot]
		if Distance(pos, p.Pos()) < radius {
			dst = append(dst, p.ID)
		}
	}
	return dst
}

// ClearAround moves every pellet within dist of pos to a random point outside it.
func (fs *FoodSystem) ClearAround(pos r2.Vec, dist float64) {
	for i := range fs.pellets {
		for Distance(pos, fs.pellets[i].Pos()) < dist {
			p := fs.field.RandomPoint(fs.rng)
			fs.pellets[i].X, fs.pellets[i].Y = p.X, p.Y
		}
	}
	fs.gridDirty = true
}

func (fs *FoodSystem) rebuildGrid() {
	if !fs.gridDirty {
		return
	}
	fs.grid.Clear()
	for i, p := range fs.pellets {
		fs.grid.Insert(int32(i), p.X, p.Y)
	}
	fs.gridDirty = false
}
