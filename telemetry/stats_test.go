package telemetry

import (
	"math"
	"testing"
)

func TestComputeRadiusStats(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}
	mean, std, p10, p50, p90 := ComputeRadiusStats(values)

	if math.Abs(mean-3) > 1e-9 {
		t.Errorf("mean = %v, want 3", mean)
	}
	// Sample standard deviation of 1..5
	if math.Abs(std-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(2.5))
	}
	if p50 != 3 {
		t.Errorf("p50 = %v, want 3", p50)
	}
	if p10 < 1 || p10 > p50 || p90 < p50 || p90 > 5 {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}

	// Input must not be reordered
	if values[0] != 5 {
		t.Error("ComputeRadiusStats sorted its input")
	}
}

func TestComputeRadiusStatsSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeRadiusStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _ = ComputeRadiusStats([]float64{12})
	if mean != 12 || std != 0 || p50 != 12 {
		t.Errorf("single value: mean=%v std=%v p50=%v", mean, std, p50)
	}
}
