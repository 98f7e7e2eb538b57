package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/round"
	"github.com/pthm-cable/dilemma/telemetry"
)

const tracerName = "github.com/pthm-cable/dilemma/game"

// Options configures game creation.
type Options struct {
	Config *config.Config           // nil = embedded defaults
	Seed   int64                    // 0 = Config.Simulation.Seed
	Logger *slog.Logger             // nil = slog.Default()
	Output *telemetry.OutputManager // nil = no file output
}

// Game holds the population and drives seasons over it.
type Game struct {
	world *ecs.World

	// One entity per player.
	playerMapper *ecs.Map3[
		components.Identity,
		components.Strategy,
		components.Lineage,
	]
	playerFilter *ecs.Filter3[
		components.Identity,
		components.Strategy,
		components.Lineage,
	]

	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
	noise  round.NoiseChannel

	// Random sources
	seed    int64
	rng     *rand.Rand // season seeds
	nameRng *rand.Rand // cosmetic player names

	// State
	nextID     uint32
	population int
	season     int // index of the next season to play

	// Telemetry
	perf   *PerfStats
	hof    *telemetry.HallOfFame
	output *telemetry.OutputManager
}

// New creates a game with the founding population from opts.Config.
// Configuration errors are returned before any player is created.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}

	noise, err := round.NewNoiseChannel(cfg.Noise.Probability)
	if err != nil {
		return nil, fmt.Errorf("noise.probability: %w", err)
	}
	if cfg.FounderCount() < 1 {
		return nil, ErrEmptyPopulation
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	world := ecs.NewWorld()
	g := &Game{
		world: world,
		playerMapper: ecs.NewMap3[
			components.Identity,
			components.Strategy,
			components.Lineage,
		](world),
		playerFilter: ecs.NewFilter3[
			components.Identity,
			components.Strategy,
			components.Lineage,
		](world),
		cfg:     cfg,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		noise:   noise,
		seed:    seed,
		rng:     rng,
		nameRng: rand.New(rand.NewSource(rng.Int63())),
		perf:    NewPerfStats(),
		hof:     telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		output:  opts.Output,
	}

	if err := g.spawnFounders(cfg.Population.Founders); err != nil {
		return nil, err
	}
	if g.population == 0 {
		return nil, ErrEmptyPopulation
	}

	g.logger.Info("population founded",
		"seed", seed,
		"players", g.population,
		"noise", noise.Probability,
	)
	return g, nil
}

// PlaySeason runs one season over the current population at the given noise
// level. It does not spawn players or advance the season counter.
func (g *Game) PlaySeason(ctx context.Context, noise round.NoiseChannel) ([]Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := round.ValidateProbability(noise.Probability); err != nil {
		return nil, err
	}

	players := g.snapshot()
	if len(players) == 0 {
		return nil, ErrEmptyPopulation
	}

	jobs := pairings(len(players), g.rng.Int63())

	_, span := g.tracer.Start(ctx, "game.PlaySeason", trace.WithAttributes(
		attribute.Int("noise", noise.Probability),
		attribute.Int("players", len(players)),
		attribute.Int("matches", len(jobs)),
	))
	defer span.End()

	var scores []matchScore
	g.perf.Time(PhaseMatches, func() {
		scores = runMatches(players, jobs, noise, g.cfg.Parallel.Workers)
	})

	var standings []Standing
	g.perf.Time(PhaseRanking, func() {
		standings = rank(players, jobs, scores)
	})
	return standings, nil
}

// Population returns the current number of players.
func (g *Game) Population() int {
	return g.population
}

// Players returns a snapshot of the population ordered by ID.
func (g *Game) Players() []Player {
	return g.snapshot()
}

// Season returns the index of the next season Evolve will play.
func (g *Game) Season() int {
	return g.season
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Noise returns the configured noise channel used by Evolve.
func (g *Game) Noise() round.NoiseChannel {
	return g.noise
}

// HallOfFame returns the best season performances seen so far.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hof
}

// Perf returns phase timing for recent seasons.
func (g *Game) Perf() *PerfStats {
	return g.perf
}
