package game

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/pthm-cable/dilemma/round"
)

// ErrEmptyPopulation is returned when a season is asked to run with no players.
var ErrEmptyPopulation = errors.New("population is empty")

// Standing is a player's result for one season.
type Standing struct {
	Player  Player
	Fitness float64 // Average points per round over every side played
	Total   int     // Sum of match scores
	Sides   int     // Match sides played; a self-pairing counts twice
}

// pairings enumerates every unordered pair with repetition (i <= j),
// each exactly once, and draws one seed per pairing from seed.
func pairings(n int, seed int64) []matchJob {
	rng := rand.New(rand.NewSource(seed))
	jobs := make([]matchJob, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			jobs = append(jobs, matchJob{a: i, b: j, seed: rng.Int63()})
		}
	}
	return jobs
}

// RunSeason plays every pairing of players (self-pairings included) and
// returns standings sorted ascending by fitness. Ties keep player order.
func RunSeason(players []Player, noise round.NoiseChannel, seed int64, workers int) ([]Standing, error) {
	if len(players) == 0 {
		return nil, ErrEmptyPopulation
	}
	if err := round.ValidateProbability(noise.Probability); err != nil {
		return nil, err
	}

	jobs := pairings(len(players), seed)
	scores := runMatches(players, jobs, noise, workers)

	return rank(players, jobs, scores), nil
}

// rank reduces match scores into per-player fitness.
func rank(players []Player, jobs []matchJob, scores []matchScore) []Standing {
	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i].Player = p
	}

	for i, job := range jobs {
		standings[job.a].Total += scores[i].a
		standings[job.a].Sides++
		standings[job.b].Total += scores[i].b
		standings[job.b].Sides++
	}

	for i := range standings {
		s := &standings[i]
		if s.Sides > 0 {
			s.Fitness = float64(s.Total) / float64(MatchRounds*s.Sides)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Fitness < standings[j].Fitness
	})
	return standings
}
