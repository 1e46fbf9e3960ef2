package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// lerp moves a toward b by fraction t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance returns the Euclidean distance between two centers.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// stepToward moves from toward to by at most maxStep.
// Points closer than 1 unit are left where they are.
func stepToward(from, to r2.Vec, maxStep float64) r2.Vec {
	delta := r2.Sub(to, from)
	dist := r2.Norm(delta)
	if dist <= 1 {
		return from
	}
	step := math.Min(dist, maxStep)
	return r2.Add(from, r2.Scale(step/dist, delta))
}
