package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pthm-cable/dilemma/strategy"
	"github.com/pthm-cable/dilemma/telemetry"
)

// SeasonReport summarizes one evolution season.
type SeasonReport struct {
	Season           int
	PopulationBefore int
	PopulationAfter  int
	Standings        []Standing // ascending by fitness
	Spawned          []strategy.Kind
	Stats            telemetry.SeasonStats
}

// Evolve plays the given number of seasons at the configured noise level.
// After each season every player whose fitness exceeds a spawn threshold
// adds one player of its kind per threshold exceeded. Players are never
// removed. The context is checked between seasons; reports for completed
// seasons are returned alongside any error.
func (g *Game) Evolve(ctx context.Context, seasons int) ([]SeasonReport, error) {
	ctx, span := g.tracer.Start(ctx, "game.Evolve", trace.WithAttributes(
		attribute.Int("seasons", seasons),
		attribute.Int("noise", g.noise.Probability),
	))
	defer span.End()

	reports := make([]SeasonReport, 0, max(seasons, 0))
	for i := 0; i < seasons; i++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return reports, err
		}

		report, err := g.evolveSeason(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return reports, err
		}
		reports = append(reports, report)
	}

	span.SetAttributes(attribute.Int("population", g.population))
	return reports, nil
}

// evolveSeason plays the next season, applies growth and records telemetry.
func (g *Game) evolveSeason(ctx context.Context) (SeasonReport, error) {
	season := g.season
	before := g.population

	standings, err := g.PlaySeason(ctx, g.noise)
	if err != nil {
		return SeasonReport{}, err
	}

	// Growth is applied only after the whole season is ranked.
	var spawned []strategy.Kind
	g.perf.Time(PhaseSpawning, func() {
		reqs := spawnRequests(standings, g.cfg.Evolution.SpawnThresholds)
		spawned = g.spawnOffspring(reqs, season+1)
	})
	g.season++

	report := SeasonReport{
		Season:           season,
		PopulationBefore: before,
		PopulationAfter:  g.population,
		Standings:        standings,
		Spawned:          spawned,
		Stats:            seasonStats(season, g.noise.Probability, standings, len(spawned)),
	}

	g.perf.Time(PhaseOutput, func() {
		g.recordSeason(report)
	})
	return report, nil
}

// seasonStats builds the telemetry summary of a season's standings.
func seasonStats(season, noise int, standings []Standing, spawned int) telemetry.SeasonStats {
	kinds := make([]string, len(standings))
	fitness := make([]float64, len(standings))
	for i, s := range standings {
		kinds[i] = s.Player.Kind.String()
		fitness[i] = s.Fitness
	}
	n := len(standings)
	return telemetry.NewSeasonStats(season, noise, n*(n+1)/2, spawned, kinds, fitness)
}
