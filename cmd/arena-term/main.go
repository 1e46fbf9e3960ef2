// Command arena-term plays the arena in a terminal. The autopilot steers
// by default; arrow keys take over.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gobble/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	bots := flag.Int("bots", -1, "Override bot count (-1 = use config)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *bots >= 0 {
		cfg.Bots.Count = *bots
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	t, err := newTerminal(screen, cfg, rngSeed)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start match: %v\n", err)
		os.Exit(1)
	}
	if !*mute {
		if err := t.sound.Init(); err != nil {
			// Non-fatal, the game runs without sound
			slog.Warn("audio initialization failed", "error", err)
		}
	}
	defer t.cleanup()

	t.run()
}
