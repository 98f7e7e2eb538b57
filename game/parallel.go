package game

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/pthm-cable/dilemma/round"
)

// parallelThreshold is the minimum match count to use the worker pool.
// Below this, running inline is faster than spinning up goroutines.
const parallelThreshold = 8

// matchJob is one pairing of a season, with its pre-drawn seed.
type matchJob struct {
	a, b int // indices into the season snapshot
	seed int64
}

// matchScore is what a season keeps from a match; round histories are
// dropped as soon as the match finishes.
type matchScore struct {
	a, b int
}

// runMatches plays every job and returns scores in job order.
// Each job writes only its own slot, so no locking is needed; the caller
// reduces the slice single-threaded.
func runMatches(players []Player, jobs []matchJob, noise round.NoiseChannel, workers int) []matchScore {
	scores := make([]matchScore, len(jobs))

	play := func(i int) {
		job := jobs[i]
		res := PlayMatch(players[job.a], players[job.b], noise, job.seed)
		scores[i] = matchScore{a: res.ScoreA, b: res.ScoreB}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(jobs) < parallelThreshold {
		for i := range jobs {
			play(i)
		}
		return scores
	}

	p := pool.New().WithMaxGoroutines(workers)
	for i := range jobs {
		p.Go(func() {
			play(i)
		})
	}
	p.Wait()

	return scores
}
