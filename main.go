package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/gobble/config"
)

// runOptions carries the command line into either frontend.
type runOptions struct {
	seed        int64
	maxTicks    int
	matches     int
	outputDir   string
	logStats    bool
	statsWindow float64
	autopilot   bool
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics; the autopilot plays")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop a match after N ticks (0 = unlimited)")
	matches := flag.Int("matches", 1, "Number of matches to play in headless mode")
	autopilot := flag.Bool("autopilot", false, "Start the window with the autopilot steering")
	logLevel := flag.String("log-level", "info", "Minimum log level: debug, info, warn or error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := runOptions{
		seed:        rngSeed,
		maxTicks:    *maxTicks,
		matches:     *matches,
		outputDir:   *outputDir,
		logStats:    *logStats,
		statsWindow: *statsWindow,
		autopilot:   *autopilot,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts)
	} else {
		err = runWindow(cfg, opts)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
