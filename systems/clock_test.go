package systems

import (
	"math"
	"testing"
)

func TestMatchClock(t *testing.T) {
	clock := NewMatchClock(10800, 1.0/60)

	for i := 0; i < 10799; i++ {
		clock.Advance()
	}
	if clock.Expired() {
		t.Fatal("clock expired one tick early")
	}
	if math.Abs(clock.Remaining()-1.0/60) > 1e-9 {
		t.Errorf("Remaining() = %v, want one tick", clock.Remaining())
	}

	clock.Advance()
	if !clock.Expired() {
		t.Fatal("clock not expired after the full duration")
	}
	if math.Abs(clock.Elapsed()-180) > 1e-9 {
		t.Errorf("Elapsed() = %v, want 180", clock.Elapsed())
	}
	if clock.Remaining() != 0 {
		t.Errorf("Remaining() = %v, want 0", clock.Remaining())
	}

	clock.Advance()
	if clock.Remaining() != 0 {
		t.Errorf("Remaining() = %v after overrun, want 0", clock.Remaining())
	}
}
