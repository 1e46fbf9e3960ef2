package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSplitEast(t *testing.T) {
	a := newTestArena(t)
	primary := a.cells.Spawn(0, 0, 60, 0)

	child, ok := a.cells.Split(1, r2.Vec{X: 300, Y: 0})
	if !ok {
		t.Fatal("Split rejected")
	}
	if a.cells.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", a.cells.Count())
	}

	if got := a.cells.bodyMap.Get(primary).TargetRadius; got != 30 {
		t.Errorf("primary TargetRadius = %v, want 30", got)
	}
	body := a.cells.bodyMap.Get(child)
	if body.Radius != 30 || body.TargetRadius != 30 {
		t.Errorf("child body = %+v, want radius 30", *body)
	}
	pos := a.cells.posMap.Get(child)
	if math.Abs(pos.X-65) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Errorf("child at (%v, %v), want (65, 0)", pos.X, pos.Y)
	}
	vel := a.cells.velMap.Get(child)
	if math.Abs(vel.X-a.cfg.Split.Speed) > 1e-9 || math.Abs(vel.Y) > 1e-9 {
		t.Errorf("child velocity = (%v, %v), want (%v, 0)", vel.X, vel.Y, a.cfg.Split.Speed)
	}
	if got := a.cells.cellMap.Get(child).LastSplitTime; got != 1 {
		t.Errorf("LastSplitTime = %v, want 1", got)
	}
}

func TestSplitPointerOnCenterGoesEast(t *testing.T) {
	a := newTestArena(t)
	a.cells.Spawn(100, 100, 50, 0)

	child, ok := a.cells.Split(0, r2.Vec{X: 100, Y: 100})
	if !ok {
		t.Fatal("Split rejected")
	}
	pos := a.cells.posMap.Get(child)
	if math.Abs(pos.X-155) > 1e-9 || math.Abs(pos.Y-100) > 1e-9 {
		t.Errorf("child at (%v, %v), want (155, 100)", pos.X, pos.Y)
	}
}

func TestSplitRejected(t *testing.T) {
	t.Run("below min radius", func(t *testing.T) {
		a := newTestArena(t)
		a.cells.Spawn(0, 0, 39, 0)
		if _, ok := a.cells.Split(0, r2.Vec{X: 1}); ok {
			t.Error("Split of a 39-radius cell accepted")
		}
		if a.cells.Count() != 1 {
			t.Errorf("Count() = %d, want 1", a.cells.Count())
		}
	})

	t.Run("at max cells", func(t *testing.T) {
		a := newTestArena(t)
		a.cfg.Split.MaxCells = 2
		a.cells.Spawn(0, 0, 100, 0)
		if _, ok := a.cells.Split(0, r2.Vec{X: 1}); !ok {
			t.Fatal("first split rejected")
		}
		if _, ok := a.cells.Split(0, r2.Vec{X: 1}); ok {
			t.Error("split beyond max cells accepted")
		}
		if a.cells.Count() != 2 {
			t.Errorf("Count() = %d, want 2", a.cells.Count())
		}
	})
}

func TestLaunchDamping(t *testing.T) {
	a := newTestArena(t)
	a.cells.Spawn(0, 0, 60, 0)
	child, _ := a.cells.Split(0, r2.Vec{X: 1})

	a.cells.Advance(1.0 / 60)

	pos := a.cells.posMap.Get(child)
	if math.Abs(pos.X-90) > 1e-9 {
		t.Errorf("child X = %v, want 90", pos.X)
	}
	vel := a.cells.velMap.Get(child)
	if math.Abs(vel.X-22.5) > 1e-9 {
		t.Errorf("child velocity X = %v, want 22.5", vel.X)
	}

	// Launched cells eventually settle and come back toward the primary.
	for i := 0; i < 300; i++ {
		a.cells.Advance(1.0 / 60)
	}
	if v := a.cells.velMap.Get(child).Vec(); r2.Norm(v) != 0 {
		t.Errorf("child still moving with velocity %v", v)
	}
	if x := a.cells.posMap.Get(child).X; x > 90 {
		t.Errorf("child X = %v, want it to follow back toward the primary", x)
	}
}

func TestSplitFusionRoundTrip(t *testing.T) {
	a := newTestArena(t)
	primary := a.cells.Spawn(0, 0, 60, 0)
	child, _ := a.cells.Split(1, r2.Vec{X: 1})
	a.cells.actorMap.Get(child).Score = 12

	// Park the child on top of the primary.
	pos := a.cells.posMap.Get(child)
	pos.X, pos.Y = 0, 0
	vel := a.cells.velMap.Get(child)
	vel.X, vel.Y = 0, 0

	if fused := a.cells.Advance(4.9); fused != 0 {
		t.Fatalf("fused %d cells before the delay", fused)
	}
	if fused := a.cells.Advance(5); fused != 1 {
		t.Fatalf("fused = %d, want 1", fused)
	}

	if a.cells.Count() != 1 {
		t.Errorf("Count() = %d, want 1", a.cells.Count())
	}
	if got := a.cells.bodyMap.Get(primary).TargetRadius; math.Abs(got-60) > 1e-9 {
		t.Errorf("primary TargetRadius = %v, want 60", got)
	}
	if got := a.cells.TotalScore(); got != 12 {
		t.Errorf("TotalScore = %d, want 12", got)
	}
	if a.world.Alive(child) {
		t.Error("fused cell still alive")
	}
}

func TestRemovePrimaryPromotesLargest(t *testing.T) {
	a := newTestArena(t)
	first := a.cells.Spawn(0, 0, 60, 0)
	a.cells.Spawn(100, 0, 20, 0)
	largest := a.cells.Spawn(200, 0, 40, 0)

	if left := a.cells.Remove(first); left != 2 {
		t.Fatalf("Remove returned %d, want 2", left)
	}
	primary, ok := a.cells.Primary()
	if !ok || primary != largest {
		t.Errorf("primary = %v, want %v", primary, largest)
	}
}

func TestMovePrimary(t *testing.T) {
	a := newTestArena(t)
	primary := a.cells.Spawn(0, 0, 20, 0)

	a.cells.MovePrimary(r2.Vec{X: 100, Y: 0})
	pos := a.cells.posMap.Get(primary)
	if math.Abs(pos.X-a.cfg.Player.BaseSpeed) > 1e-9 || pos.Y != 0 {
		t.Errorf("primary at (%v, %v), want (%v, 0)", pos.X, pos.Y, a.cfg.Player.BaseSpeed)
	}

	// Clamped at the world edge
	pos.X = a.field.Half() - 1
	a.cells.MovePrimary(r2.Vec{X: 1e6, Y: 0})
	if pos := a.cells.posMap.Get(primary); pos.X != a.field.Half() {
		t.Errorf("primary X = %v, want clamped to %v", pos.X, a.field.Half())
	}
}

func TestCentroidWeightsByRadius(t *testing.T) {
	a := newTestArena(t)
	if got := a.cells.Centroid(); got != (r2.Vec{}) {
		t.Errorf("Centroid() with no cells = %v, want zero", got)
	}

	a.cells.Spawn(0, 0, 30, 0)
	a.cells.Spawn(100, 40, 10, 0)

	got := a.cells.Centroid()
	if math.Abs(got.X-25) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("Centroid() = %v, want (25, 10)", got)
	}
}
