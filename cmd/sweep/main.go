// Package main runs a fixed population through one season per noise level
// and reports how each strategy kind's fitness responds to noise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/game"
	"github.com/pthm-cable/dilemma/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// unsetWorkers leaves parallel.workers at its config value.
const unsetWorkers = -1

// interrupted reports whether err only means the run was cancelled, so
// partial results are still worth printing.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// resolveSeed picks the flag seed, then the config seed, then the clock,
// and stores the result in cfg so the written snapshot reproduces the run.
func resolveSeed(cfg *config.Config, flagSeed int64, now func() time.Time) int64 {
	seed := flagSeed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = now().UnixNano()
	}
	cfg.Simulation.Seed = seed
	return seed
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	pointsFlag := flag.String("points", "", "Comma-separated noise points, or start:end:step (empty = use config)")
	outputDir := flag.String("output", "", "Output directory for sweep.csv (empty = stdout only)")
	workers := flag.Int("workers", unsetWorkers, "Match workers per season (-1 = use config, 0 = GOMAXPROCS)")
	flag.Parse()

	// Sweep progress goes to stderr; the table goes to stdout.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	cfg.Telemetry.LogStandings = false
	if *workers != unsetWorkers {
		cfg.Parallel.Workers = *workers
	}

	points, err := parsePoints(*pointsFlag)
	if err != nil {
		log.Fatalf("invalid --points: %v", err)
	}
	if len(points) == 0 {
		points = cfg.Noise.SweepPoints
	}

	rngSeed := resolveSeed(cfg, *seed, time.Now)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.SetupTracing(ctx, "dilemma-sweep")
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("failed to flush traces: %v", err)
		}
	}()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		log.Printf("failed to write config: %v", err)
	}

	g, err := game.New(game.Options{Config: cfg, Seed: rngSeed, Output: output})
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}

	fmt.Printf("Sweeping %d noise points over %d players (seed %d)\n", len(points), g.Population(), rngSeed)

	startTime := time.Now()
	table, err := g.Sweep(ctx, points)
	if err != nil {
		if !interrupted(err) {
			log.Fatalf("sweep failed: %v", err)
		}
		log.Printf("sweep interrupted: %v", err)
	}

	fmt.Printf("\nSweep complete after %d points in %s\n\n", len(table.Points), formatDuration(time.Since(startTime)))
	printTable(os.Stdout, table)

	if output != nil {
		fmt.Printf("\nResults saved to: %s\n", output.Dir())
	}
}
