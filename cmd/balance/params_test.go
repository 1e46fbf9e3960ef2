package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/gobble/config"
)

func TestParamVectorDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	want := pv.DefaultVector()

	if len(got) != pv.Dim() {
		t.Fatalf("ExtractFromConfig returned %d values, want %d", len(got), pv.Dim())
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: config %v, default %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}

	cfg := config.Default()
	pv.ApplyToConfig(cfg, values)

	if cfg.Bots.Count != 60 {
		t.Errorf("Bots.Count = %d, want 60", cfg.Bots.Count)
	}
	if cfg.Bots.PreyRatio != 1.0 {
		t.Errorf("Bots.PreyRatio = %v, want 1.0", cfg.Bots.PreyRatio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config should validate: %v", err)
	}
}

func TestApplyThenExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	values := []float64{12, 30, 1.5, 0.5, 0.8, 150, 2, 3, 0.6, 0.2}

	pv.ApplyToConfig(cfg, values)
	got := pv.ExtractFromConfig(cfg)
	for i := range values {
		if math.Abs(got[i]-values[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], values[i])
		}
	}
}

func TestAggregateScoresDistanceFromTarget(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), nil, config.Default(), 0.5)

	fitness := fe.aggregate([]seedResult{
		{won: true, survival: 1, score: 100},
		{won: false, survival: 0.2, score: 20},
	})

	if math.Abs(fitness-0.01) > 1e-9 {
		t.Errorf("fitness = %v, want (0.6-0.5)^2 = 0.01", fitness)
	}
	rate, survival, score := fe.Last()
	if rate != 0.5 || math.Abs(survival-0.6) > 1e-9 || score != 60 {
		t.Errorf("Last() = %v, %v, %v", rate, survival, score)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		secs int
		want string
	}{
		{"seconds", 42, "0m42s"},
		{"minutes", 125, "2m05s"},
		{"hours", 3725, "1h02m05s"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := time.Duration(tt.secs) * time.Second
			if got := formatDuration(d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", d, got, tt.want)
			}
		})
	}
}
