package components

import "testing"

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{KindPlayer.String(), "player"},
		{KindBot.String(), "bot"},
		{Kind(9).String(), "unknown"},
		{TargetNone.String(), "none"},
		{TargetPellet.String(), "pellet"},
		{TargetActor.String(), "actor"},
		{TargetWaypoint.String(), "waypoint"},
		{TargetKind(9).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
