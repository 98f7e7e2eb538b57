package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/game"
	"github.com/pthm-cable/dilemma/telemetry"
)

// unset marks an integer flag left at its "use config" default.
const unset = -1

// cliOverrides holds flag values that replace config fields.
type cliOverrides struct {
	seasons, noise, workers int
	outputDir               string
	quiet                   bool
}

// apply copies every set flag into cfg. Only unset itself means "keep the
// config value"; any other negative value is copied so Validate rejects it.
func (o cliOverrides) apply(cfg *config.Config) {
	if o.seasons != unset {
		cfg.Simulation.Seasons = o.seasons
	}
	if o.noise != unset {
		cfg.Noise.Probability = o.noise
	}
	if o.workers != unset {
		cfg.Parallel.Workers = o.workers
	}
	if o.outputDir != "" {
		cfg.Telemetry.OutputDir = o.outputDir
	}
	if o.quiet {
		cfg.Telemetry.LogStandings = false
	}
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	seasons := flag.Int("seasons", unset, "Seasons to evolve (-1 = use config)")
	noise := flag.Int("noise", unset, "Noise probability in percent (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	workers := flag.Int("workers", unset, "Match workers per season (-1 = use config, 0 = GOMAXPROCS)")
	quiet := flag.Bool("quiet", false, "Skip per-player standing logs")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	cliOverrides{
		seasons:   *seasons,
		noise:     *noise,
		workers:   *workers,
		outputDir: *outputDir,
		quiet:     *quiet,
	}.apply(cfg)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	cfg.Simulation.Seed = rngSeed

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.SetupTracing(ctx, "dilemma")
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("failed to flush traces", "error", err)
		}
	}()

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g, err := game.New(game.Options{
		Config: cfg,
		Seed:   rngSeed,
		Logger: logger,
		Output: output,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	slog.Info("starting evolution",
		"seed", rngSeed,
		"seasons", cfg.Simulation.Seasons,
		"noise", cfg.Noise.Probability,
		"founders", g.Population(),
	)

	start := time.Now()
	reports, err := g.Evolve(ctx, cfg.Simulation.Seasons)
	if err != nil {
		slog.Warn("evolution stopped early", "error", err, "completed", len(reports))
	}

	if err := output.WriteHallOfFame(g.HallOfFame()); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}

	for _, kind := range g.HallOfFame().Kinds() {
		top, _ := g.HallOfFame().Top(kind)
		slog.Info("hall of fame",
			"kind", kind,
			"name", top.Name,
			"fitness", top.Fitness,
			"season", top.Season,
		)
	}

	slog.Info("evolution complete",
		"seasons", len(reports),
		"population", g.Population(),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"output_dir", output.Dir(),
	)
}
