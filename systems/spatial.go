package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gobble/components"
)

// SpatialField is the bounded square world centered on the origin.
type SpatialField struct {
	half   float64
	bounds r2.Box
}

// NewSpatialField creates a field for a world of the given side length.
func NewSpatialField(size float64) SpatialField {
	half := size / 2
	return SpatialField{
		half: half,
		bounds: r2.Box{
			Min: r2.Vec{X: -half, Y: -half},
			Max: r2.Vec{X: half, Y: half},
		},
	}
}

// Half returns half the world side length.
func (f SpatialField) Half() float64 {
	return f.half
}

// Bounds returns the legal position range.
func (f SpatialField) Bounds() r2.Box {
	return f.bounds
}

// Clamp restricts both axes to [-half, +half].
func (f SpatialField) Clamp(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: clampFloat(p.X, f.bounds.Min.X, f.bounds.Max.X),
		Y: clampFloat(p.Y, f.bounds.Min.Y, f.bounds.Max.Y),
	}
}

// ClampPosition clamps a live entity in place.
func (f SpatialField) ClampPosition(pos *components.Position) {
	pos.Set(f.Clamp(pos.Vec()))
}

// Contains reports whether p lies inside the world.
func (f SpatialField) Contains(p r2.Vec) bool {
	return p.X >= f.bounds.Min.X && p.X <= f.bounds.Max.X &&
		p.Y >= f.bounds.Min.Y && p.Y <= f.bounds.Max.Y
}

// RandomPoint returns a uniform random point in the world.
func (f SpatialField) RandomPoint(rng *rand.Rand) r2.Vec {
	return r2.Vec{
		X: (rng.Float64() - 0.5) * 2 * f.half,
		Y: (rng.Float64() - 0.5) * 2 * f.half,
	}
}

// SpatialGrid buckets slot indices by position for proximity queries.
// The grid covers the field's square; out-of-range points land in edge buckets.
type SpatialGrid struct {
	cellSize float64
	cols     int
	half     float64
	cells    [][]int32
}

// NewSpatialGrid creates a grid covering a world of the given side length.
func NewSpatialGrid(size, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(size/cellSize)) + 1

	cells := make([][]int32, cols*cols)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		half:     size / 2,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot index at the given position.
func (g *SpatialGrid) Insert(slot int32, x, y float64) {
	g.cells[g.cellIndex(x, y)] = append(g.cells[g.cellIndex(x, y)], slot)
}

// QueryInto appends every slot in buckets overlapping the square around (x, y)
// to dst. Callers do the exact distance test. Results are never truncated.
func (g *SpatialGrid) QueryInto(dst []int32, x, y, radius float64) []int32 {
	minCol, minRow := g.colRow(x-radius, y-radius)
	maxCol, maxRow := g.colRow(x+radius, y+radius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col, row := g.colRow(x, y)
	return row*g.cols + col
}

// colRow returns the clamped bucket coordinates for a world position.
func (g *SpatialGrid) colRow(x, y float64) (int, int) {
	col := int((x + g.half) / g.cellSize)
	row := int((y + g.half) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.cols {
		row = g.cols - 1
	}
	return col, row
}
