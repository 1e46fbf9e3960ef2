// Package config provides configuration loading and access for the arena simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all match configuration parameters.
// A loaded Config is treated as immutable once a match has started.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Match     MatchConfig     `yaml:"match"`
	Player    PlayerConfig    `yaml:"player"`
	Growth    GrowthConfig    `yaml:"growth"`
	Food      FoodConfig      `yaml:"food"`
	Eat       EatConfig       `yaml:"eat"`
	Split     SplitConfig     `yaml:"split"`
	Bots      BotsConfig      `yaml:"bots"`
	Virus     VirusConfig     `yaml:"virus"`
	Bonus     BonusConfig     `yaml:"bonus"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the arena dimensions.
// The world is a square of side Size centered on the origin.
type WorldConfig struct {
	Size float64 `yaml:"size"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // seconds per tick
	GridCellSize float64 `yaml:"grid_cell_size"` // pellet grid bucket size
}

// MatchConfig holds match rules.
type MatchConfig struct {
	Duration float64 `yaml:"duration"` // seconds until the player wins by survival
}

// PlayerConfig holds player cell parameters.
type PlayerConfig struct {
	StartRadius float64 `yaml:"start_radius"`
	MaxRadius   float64 `yaml:"max_radius"` // cap for every growing entity
	BaseSpeed   float64 `yaml:"base_speed"` // world units per tick
}

// GrowthConfig holds radius smoothing parameters.
type GrowthConfig struct {
	Rate float64 `yaml:"rate"` // fraction of the target gap closed per tick
}

// FoodConfig holds pellet pool parameters.
type FoodConfig struct {
	Count        int      `yaml:"count"`
	Radius       float64  `yaml:"radius"`
	PlayerGrowth float64  `yaml:"player_growth"` // target radius gained per pellet (player)
	BotGrowth    float64  `yaml:"bot_growth"`    // target radius gained per pellet (bot)
	Symbols      []string `yaml:"symbols"`
}

// EatConfig holds actor-vs-actor eating rules.
type EatConfig struct {
	Ratio        float64 `yaml:"ratio"`         // eater radius must exceed prey radius times this
	PlayerFactor float64 `yaml:"player_factor"` // growth per prey radius when a player cell eats
	BotFactor    float64 `yaml:"bot_factor"`    // growth per prey radius when a bot eats
	MaxGain      float64 `yaml:"max_gain"`      // cap on target radius gained from one meal
}

// SplitConfig holds split and autofusion parameters.
type SplitConfig struct {
	MaxCells         int     `yaml:"max_cells"`
	MinRadius        float64 `yaml:"min_radius"`
	Gap              float64 `yaml:"gap"`               // spawn distance beyond the main cell edge
	Speed            float64 `yaml:"speed"`             // initial launch speed per tick
	Damping          float64 `yaml:"damping"`           // launch velocity multiplier per tick
	SettleSpeed      float64 `yaml:"settle_speed"`      // below this a cell starts following
	FollowMultiplier float64 `yaml:"follow_multiplier"` // follow speed relative to the primary
	FusionDelay      float64 `yaml:"fusion_delay"`      // seconds after a split before fusion
	FusionFactor     float64 `yaml:"fusion_factor"`     // radius fraction absorbed on fusion
}

// BotsConfig holds bot population and policy parameters.
type BotsConfig struct {
	Count          int     `yaml:"count"`
	MinRadius      float64 `yaml:"min_radius"`
	RadiusJitter   float64 `yaml:"radius_jitter"`
	MinSpeed       float64 `yaml:"min_speed"`
	SpeedJitter    float64 `yaml:"speed_jitter"`
	RetargetMin    float64 `yaml:"retarget_min"`    // seconds
	RetargetJitter float64 `yaml:"retarget_jitter"` // seconds
	PreyRatio      float64 `yaml:"prey_ratio"`      // actors below radius*this are targetable
	Waypoints      int     `yaml:"waypoints"`
	WanderRange    float64 `yaml:"wander_range"`
	FleeRadius     float64 `yaml:"flee_radius"` // 0 disables proximity fleeing
	RespawnDelay   float64 `yaml:"respawn_delay"`
	RespawnJitter  float64 `yaml:"respawn_jitter"`
}

// VirusConfig holds hazard parameters.
type VirusConfig struct {
	Radius    float64 `yaml:"radius"`
	Speed     float64 `yaml:"speed"`
	MinRadius float64 `yaml:"min_radius"` // floor for the halved target radius
}

// BonusConfig holds pickup parameters.
type BonusConfig struct {
	Max             int     `yaml:"max"`
	Radius          float64 `yaml:"radius"`
	SpawnInterval   float64 `yaml:"spawn_interval"` // seconds
	Duration        float64 `yaml:"duration"`       // seconds for timed effects
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// CameraConfig holds zoom limits for frontends.
type CameraConfig struct {
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfWorld  float64 // World.Size / 2
	MatchTicks int     // Match.Duration / Physics.DT, rounded up
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()
	return cfg, nil
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfWorld = c.World.Size / 2
	if c.Physics.DT > 0 {
		c.Derived.MatchTicks = int(math.Ceil(c.Match.Duration/c.Physics.DT - 1e-9))
	}
}

// Validate rejects values that would leave the simulation undefined.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Size > 0, "world.size must be positive, got %v", c.World.Size)
	check(c.Physics.DT > 0, "physics.dt must be positive, got %v", c.Physics.DT)
	check(c.Physics.GridCellSize > 0, "physics.grid_cell_size must be positive, got %v", c.Physics.GridCellSize)
	check(c.Match.Duration > 0, "match.duration must be positive, got %v", c.Match.Duration)

	check(c.Player.MaxRadius > 20, "player.max_radius must exceed 20, got %v", c.Player.MaxRadius)
	check(c.Player.StartRadius > 0 && c.Player.StartRadius <= c.Player.MaxRadius,
		"player.start_radius must be in (0, max_radius], got %v", c.Player.StartRadius)
	check(c.Player.BaseSpeed > 0, "player.base_speed must be positive, got %v", c.Player.BaseSpeed)
	check(c.Growth.Rate > 0 && c.Growth.Rate <= 1, "growth.rate must be in (0, 1], got %v", c.Growth.Rate)

	check(c.Food.Count > 0, "food.count must be positive, got %d", c.Food.Count)
	check(c.Food.Radius > 0, "food.radius must be positive, got %v", c.Food.Radius)
	check(c.Food.PlayerGrowth >= 0, "food.player_growth must not be negative, got %v", c.Food.PlayerGrowth)
	check(c.Food.BotGrowth >= 0, "food.bot_growth must not be negative, got %v", c.Food.BotGrowth)
	check(len(c.Food.Symbols) > 0, "food.symbols must not be empty")

	check(c.Eat.Ratio > 1, "eat.ratio must exceed 1, got %v", c.Eat.Ratio)
	check(c.Eat.PlayerFactor > 0, "eat.player_factor must be positive, got %v", c.Eat.PlayerFactor)
	check(c.Eat.BotFactor > 0, "eat.bot_factor must be positive, got %v", c.Eat.BotFactor)
	check(c.Eat.MaxGain > 0, "eat.max_gain must be positive, got %v", c.Eat.MaxGain)

	check(c.Split.MaxCells > 0, "split.max_cells must be positive, got %d", c.Split.MaxCells)
	check(c.Split.MinRadius > 0, "split.min_radius must be positive, got %v", c.Split.MinRadius)
	check(c.Split.Gap >= 0, "split.gap must not be negative, got %v", c.Split.Gap)
	check(c.Split.Speed >= 0, "split.speed must not be negative, got %v", c.Split.Speed)
	check(c.Split.Damping >= 0 && c.Split.Damping < 1, "split.damping must be in [0, 1), got %v", c.Split.Damping)
	check(c.Split.FollowMultiplier > 0, "split.follow_multiplier must be positive, got %v", c.Split.FollowMultiplier)
	check(c.Split.FusionDelay >= 0, "split.fusion_delay must not be negative, got %v", c.Split.FusionDelay)
	check(c.Split.FusionFactor > 0, "split.fusion_factor must be positive, got %v", c.Split.FusionFactor)

	check(c.Bots.Count >= 0, "bots.count must not be negative, got %d", c.Bots.Count)
	check(c.Bots.MinRadius > 0, "bots.min_radius must be positive, got %v", c.Bots.MinRadius)
	check(c.Bots.MinRadius+c.Bots.RadiusJitter <= c.Player.MaxRadius,
		"bots.min_radius + bots.radius_jitter must not exceed player.max_radius")
	check(c.Bots.MinRadius*2 <= c.Player.MaxRadius,
		"bots.min_radius must not exceed half of player.max_radius (respawn range [min_radius, max_radius-min_radius]), got %v", c.Bots.MinRadius)
	check(c.Bots.MinSpeed > 0, "bots.min_speed must be positive, got %v", c.Bots.MinSpeed)
	check(c.Bots.RetargetMin > 0, "bots.retarget_min must be positive, got %v", c.Bots.RetargetMin)
	check(c.Bots.RetargetJitter >= 0, "bots.retarget_jitter must not be negative, got %v", c.Bots.RetargetJitter)
	check(c.Bots.PreyRatio > 0 && c.Bots.PreyRatio <= 1, "bots.prey_ratio must be in (0, 1], got %v", c.Bots.PreyRatio)
	check(c.Bots.Waypoints >= 0, "bots.waypoints must not be negative, got %d", c.Bots.Waypoints)
	check(c.Bots.FleeRadius >= 0, "bots.flee_radius must not be negative, got %v", c.Bots.FleeRadius)
	check(c.Bots.RespawnDelay >= 0, "bots.respawn_delay must not be negative, got %v", c.Bots.RespawnDelay)
	check(c.Bots.RespawnJitter >= 0, "bots.respawn_jitter must not be negative, got %v", c.Bots.RespawnJitter)

	check(c.Virus.Radius > 0, "virus.radius must be positive, got %v", c.Virus.Radius)
	check(c.Virus.Speed >= 0, "virus.speed must not be negative, got %v", c.Virus.Speed)
	check(c.Virus.MinRadius > 0, "virus.min_radius must be positive, got %v", c.Virus.MinRadius)

	check(c.Bonus.Max >= 0, "bonus.max must not be negative, got %d", c.Bonus.Max)
	check(c.Bonus.Radius > 0, "bonus.radius must be positive, got %v", c.Bonus.Radius)
	check(c.Bonus.SpawnInterval > 0, "bonus.spawn_interval must be positive, got %v", c.Bonus.SpawnInterval)
	check(c.Bonus.Duration >= 0, "bonus.duration must not be negative, got %v", c.Bonus.Duration)
	check(c.Bonus.SpeedMultiplier > 0, "bonus.speed_multiplier must be positive, got %v", c.Bonus.SpeedMultiplier)

	check(c.Camera.MinZoom > 0 && c.Camera.MinZoom <= c.Camera.MaxZoom,
		"camera.min_zoom must be in (0, max_zoom], got %v", c.Camera.MinZoom)
	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow)

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
