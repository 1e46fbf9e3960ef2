package systems

import "testing"

func TestStatusExpiry(t *testing.T) {
	a := newTestArena(t)
	status := NewStatusSystem(a.world)
	cell := a.cells.Spawn(0, 0, 30, 0)

	actor := a.resolver.actorMap.Get(cell)
	actor.Speed = actor.BaseSpeed * 2
	st := a.resolver.statusMap.Get(cell)
	st.BoostUntil = 5
	st.ShieldUntil = 6

	if n := status.Update(4); n != 0 {
		t.Fatalf("expired %d effects early", n)
	}
	if n := status.Update(5); n != 1 {
		t.Errorf("expired %d effects at 5, want the boost", n)
	}
	if actor := a.resolver.actorMap.Get(cell); actor.Speed != actor.BaseSpeed {
		t.Errorf("Speed = %v, want base %v", actor.Speed, actor.BaseSpeed)
	}
	if n := status.Update(6); n != 1 {
		t.Errorf("expired %d effects at 6, want the shield", n)
	}
	if st := a.resolver.statusMap.Get(cell); st.ShieldUntil != 0 || st.BoostUntil != 0 {
		t.Errorf("status not cleared: %+v", *st)
	}
}
