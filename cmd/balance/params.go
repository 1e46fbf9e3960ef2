package main

import (
	"math"

	"github.com/pthm-cable/gobble/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable bot difficulty parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
// Defaults mirror config/defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Population
			{Name: "bot_count", Path: "bots.count", Min: 5, Max: 60, Default: 25},
			{Name: "bot_radius_jitter", Path: "bots.radius_jitter", Min: 5, Max: 80, Default: 45},
			// Movement
			{Name: "bot_min_speed", Path: "bots.min_speed", Min: 0.5, Max: 3, Default: 1},
			{Name: "bot_speed_jitter", Path: "bots.speed_jitter", Min: 0, Max: 3, Default: 1.7},
			// Behavior
			{Name: "bot_prey_ratio", Path: "bots.prey_ratio", Min: 0.5, Max: 1.0, Default: 0.9},
			{Name: "bot_flee_radius", Path: "bots.flee_radius", Min: 0, Max: 600, Default: 300},
			{Name: "bot_retarget_min", Path: "bots.retarget_min", Min: 0.3, Max: 4, Default: 1.5},
			{Name: "bot_respawn_delay", Path: "bots.respawn_delay", Min: 0.5, Max: 8, Default: 2},
			// Growth
			{Name: "bot_eat_factor", Path: "eat.bot_factor", Min: 0.2, Max: 1.2, Default: 0.8},
			{Name: "bot_pellet_growth", Path: "food.bot_growth", Min: 0.1, Max: 1.0, Default: 0.35},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(spec.Max, math.Max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Bots.Count = int(math.Round(clamped[0]))
	cfg.Bots.RadiusJitter = clamped[1]
	cfg.Bots.MinSpeed = clamped[2]
	cfg.Bots.SpeedJitter = clamped[3]
	cfg.Bots.PreyRatio = clamped[4]
	cfg.Bots.FleeRadius = clamped[5]
	cfg.Bots.RetargetMin = clamped[6]
	cfg.Bots.RespawnDelay = clamped[7]
	cfg.Eat.BotFactor = clamped[8]
	cfg.Food.BotGrowth = clamped[9]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Bots.Count),
		cfg.Bots.RadiusJitter,
		cfg.Bots.MinSpeed,
		cfg.Bots.SpeedJitter,
		cfg.Bots.PreyRatio,
		cfg.Bots.FleeRadius,
		cfg.Bots.RetargetMin,
		cfg.Bots.RespawnDelay,
		cfg.Eat.BotFactor,
		cfg.Food.BotGrowth,
	}
}
