package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.Size != 4500 {
		t.Errorf("World.Size = %v, want 4500", cfg.World.Size)
	}
	if cfg.Derived.HalfWorld != 2250 {
		t.Errorf("Derived.HalfWorld = %v, want 2250", cfg.Derived.HalfWorld)
	}
	if cfg.Food.Count != 1600 {
		t.Errorf("Food.Count = %d, want 1600", cfg.Food.Count)
	}
	if cfg.Split.MinRadius != 40 {
		t.Errorf("Split.MinRadius = %v, want 40", cfg.Split.MinRadius)
	}
	if math.Abs(cfg.Eat.Ratio-1.1) > 1e-9 {
		t.Errorf("Eat.Ratio = %v, want 1.1", cfg.Eat.Ratio)
	}
	if cfg.Derived.MatchTicks != 10800 {
		t.Errorf("Derived.MatchTicks = %d, want 10800", cfg.Derived.MatchTicks)
	}
	if len(cfg.Food.Symbols) != 12 {
		t.Errorf("len(Food.Symbols) = %d, want 12", len(cfg.Food.Symbols))
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("world:\n  size: 1000\nfood:\n  count: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.Size != 1000 || cfg.Derived.HalfWorld != 500 {
		t.Errorf("world not overridden: size=%v half=%v", cfg.World.Size, cfg.Derived.HalfWorld)
	}
	if cfg.Food.Count != 50 {
		t.Errorf("Food.Count = %d, want 50", cfg.Food.Count)
	}
	// Untouched sections keep defaults
	if cfg.Bots.Count != 25 {
		t.Errorf("Bots.Count = %d, want default 25", cfg.Bots.Count)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejectsInsaneValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero food", func(c *Config) { c.Food.Count = 0 }, "food.count"},
		{"zero max cells", func(c *Config) { c.Split.MaxCells = 0 }, "split.max_cells"},
		{"zero world", func(c *Config) { c.World.Size = 0 }, "world.size"},
		{"ratio not above one", func(c *Config) { c.Eat.Ratio = 1 }, "eat.ratio"},
		{"start above max", func(c *Config) { c.Player.StartRadius = 500 }, "player.start_radius"},
		{"damping one", func(c *Config) { c.Split.Damping = 1 }, "split.damping"},
		{"negative bots", func(c *Config) { c.Bots.Count = -1 }, "bots.count"},
		{"no symbols", func(c *Config) { c.Food.Symbols = nil }, "food.symbols"},
		{"empty respawn range", func(c *Config) { c.Bots.MinRadius = 81; c.Bots.RadiusJitter = 0 }, "half of player.max_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Food.Count = 0
	cfg.Split.MaxCells = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "food.count") || !strings.Contains(msg, "split.max_cells") {
		t.Errorf("expected both problems reported, got %v", msg)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Bots.Count = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Bots.Count != 7 {
		t.Errorf("Bots.Count = %d, want 7", loaded.Bots.Count)
	}
}
