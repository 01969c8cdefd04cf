package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tatianab/mansion/internal/config"
	"github.com/tatianab/mansion/internal/engine"
	"github.com/tatianab/mansion/internal/logger"
	"github.com/tatianab/mansion/internal/narrator"
	"github.com/tatianab/mansion/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat, out)

	eng := engine.New(
		engine.WithRoller(engine.NewRoller(cfg.Seed)),
		engine.WithLogger(log),
	)

	var describer tui.Describer
	if cfg.GeminiAPIKey != "" {
		narr, err := narrator.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			fmt.Printf("Error creating narrator: %v\n", err)
			os.Exit(1)
		}
		defer narr.Close()
		describer = narr
	}

	if err := tui.Run(eng, describer, cfg.RecordsDir); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
