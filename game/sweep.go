package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pthm-cable/dilemma/round"
	"github.com/pthm-cable/dilemma/strategy"
	"github.com/pthm-cable/dilemma/telemetry"
)

// SweepTable holds the mean fitness of each strategy kind at each noise point.
type SweepTable struct {
	Points  []int                       // noise percentages, in visit order
	Fitness map[strategy.Kind][]float64 // one value per point
	Players map[strategy.Kind]int       // players of each kind in the fixed population
}

// Kinds returns the kinds present in the table in declaration order.
func (t SweepTable) Kinds() []strategy.Kind {
	var kinds []strategy.Kind
	for _, k := range strategy.All() {
		if _, ok := t.Fitness[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Records flattens the table into long-format CSV rows.
func (t SweepTable) Records() []telemetry.SweepRecord {
	var records []telemetry.SweepRecord
	for i, p := range t.Points {
		records = append(records, t.pointRecords(i, p)...)
	}
	return records
}

func (t SweepTable) pointRecords(i, point int) []telemetry.SweepRecord {
	kinds := t.Kinds()
	records := make([]telemetry.SweepRecord, 0, len(kinds))
	for _, k := range kinds {
		records = append(records, telemetry.SweepRecord{
			Kind:    k.String(),
			Noise:   point,
			Fitness: t.Fitness[k][i],
			Players: t.Players[k],
		})
	}
	return records
}

// Sweep plays one season per noise point on the current population without
// spawning, and records each kind's mean fitness. Empty points means the
// configured sweep points. All points are validated before any season runs.
func (g *Game) Sweep(ctx context.Context, points []int) (SweepTable, error) {
	if len(points) == 0 {
		points = g.cfg.Noise.SweepPoints
	}
	for _, p := range points {
		if err := round.ValidateProbability(p); err != nil {
			return SweepTable{}, fmt.Errorf("sweep point: %w", err)
		}
	}

	ctx, span := g.tracer.Start(ctx, "game.Sweep", trace.WithAttributes(
		attribute.IntSlice("points", points),
		attribute.Int("players", g.population),
	))
	defer span.End()

	table := SweepTable{
		Points:  make([]int, 0, len(points)),
		Fitness: make(map[strategy.Kind][]float64),
		Players: make(map[strategy.Kind]int),
	}

	for _, p := range points {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		standings, err := g.PlaySeason(ctx, round.NoiseChannel{Probability: p})
		if err != nil {
			return table, err
		}

		table.Points = append(table.Points, p)
		g.addSweepPoint(&table, standings)

		i := len(table.Points) - 1
		if err := g.output.WriteSweep(table.pointRecords(i, p)); err != nil {
			g.logger.Error("failed to write sweep", "error", err)
		}
		g.logger.Info("sweep point complete",
			"noise", p,
			"stats", seasonStats(g.season, p, standings, 0),
		)
	}
	return table, nil
}

// addSweepPoint appends each kind's mean fitness for one season.
func (g *Game) addSweepPoint(table *SweepTable, standings []Standing) {
	kinds := make([]string, len(standings))
	fitness := make([]float64, len(standings))
	byName := make(map[string]strategy.Kind)
	for i, s := range standings {
		name := s.Player.Kind.String()
		kinds[i] = name
		fitness[i] = s.Fitness
		byName[name] = s.Player.Kind
	}

	for _, ks := range telemetry.SummarizeKinds(kinds, fitness) {
		k := byName[ks.Kind]
		table.Fitness[k] = append(table.Fitness[k], ks.MeanFitness)
		table.Players[k] = ks.Count
	}
}
