package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SeasonStats holds aggregated statistics for one season.
type SeasonStats struct {
	Season     int `csv:"season"`
	Noise      int `csv:"noise"`
	Population int `csv:"population"` // Players who played this season
	Matches    int `csv:"matches"`
	Spawned    int `csv:"spawned"` // Players added for the next season

	// Fitness distribution
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
	FitnessMax  float64 `csv:"fitness_max"`

	// Strategy diversity
	ActiveKinds int    `csv:"active_kinds"`
	LeaderKind  string `csv:"leader_kind"` // Kind with the highest mean fitness
}

// FitnessStats summarizes a set of fitness values.
type FitnessStats struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// ComputeFitnessStats calculates mean, population std, extremes and
// percentiles. Returns zeros for an empty slice.
func ComputeFitnessStats(values []float64) FitnessStats {
	if len(values) == 0 {
		return FitnessStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return FitnessStats{
		Mean: mean,
		Std:  std,
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// KindSummary is the per-strategy-kind view of a season.
type KindSummary struct {
	Kind        string
	Count       int
	MeanFitness float64
}

// SummarizeKinds groups fitness values by kind. kinds and fitness are
// parallel slices. Results are sorted by kind name.
func SummarizeKinds(kinds []string, fitness []float64) []KindSummary {
	grouped := make(map[string][]float64)
	for i, k := range kinds {
		grouped[k] = append(grouped[k], fitness[i])
	}

	out := make([]KindSummary, 0, len(grouped))
	for k, vals := range grouped {
		out = append(out, KindSummary{
			Kind:        k,
			Count:       len(vals),
			MeanFitness: stat.Mean(vals, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Kind < out[j].Kind
	})
	return out
}

// NewSeasonStats builds season stats from parallel kind/fitness slices.
func NewSeasonStats(season, noise, matches, spawned int, kinds []string, fitness []float64) SeasonStats {
	fs := ComputeFitnessStats(fitness)
	summary := SummarizeKinds(kinds, fitness)

	var leader string
	best := -1.0
	for _, ks := range summary {
		if ks.MeanFitness > best {
			best = ks.MeanFitness
			leader = ks.Kind
		}
	}

	return SeasonStats{
		Season:      season,
		Noise:       noise,
		Population:  len(fitness),
		Matches:     matches,
		Spawned:     spawned,
		FitnessMean: fs.Mean,
		FitnessStd:  fs.Std,
		FitnessMin:  fs.Min,
		FitnessP10:  fs.P10,
		FitnessP50:  fs.P50,
		FitnessP90:  fs.P90,
		FitnessMax:  fs.Max,
		ActiveKinds: len(summary),
		LeaderKind:  leader,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s SeasonStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("season", s.Season),
		slog.Int("noise", s.Noise),
		slog.Int("population", s.Population),
		slog.Int("matches", s.Matches),
		slog.Int("spawned", s.Spawned),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Int("active_kinds", s.ActiveKinds),
		slog.String("leader_kind", s.LeaderKind),
	)
}
