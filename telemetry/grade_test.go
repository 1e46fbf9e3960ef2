package telemetry

import "testing"

func TestLevel(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 0},
		{6, 0},
		{7, 1},
		{700, 100},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Bronze 1"},
		{83, "Bronze 1"},
		{84, "Bronze 2"},
		{250, "Silver 1"},
		{1999, "Legend 3"},
		{2000, "Ranked"},
		{50000, "Ranked"},
		{-1, "Bronze 1"},
	}
	for _, tt := range tests {
		if got := Grade(tt.level); got != tt.want {
			t.Errorf("Grade(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestTally(t *testing.T) {
	var tally Tally
	if tally.WinRate() != 0 {
		t.Errorf("WinRate() = %v before any match", tally.WinRate())
	}
	tally.Add(true)
	tally.Add(false)
	tally.Add(true)
	tally.Add(true)
	if tally.Played() != 4 || tally.Wins != 3 || tally.Losses != 1 {
		t.Errorf("tally = %+v", tally)
	}
	if tally.WinRate() != 0.75 {
		t.Errorf("WinRate() = %v, want 0.75", tally.WinRate())
	}
}
