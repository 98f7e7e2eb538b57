package game

import (
	"math/rand"

	"github.com/pthm-cable/dilemma/round"
)

// MatchRounds is the fixed length of every match.
const MatchRounds = 200

// MatchResult holds the recorded rounds and the true scores of a match.
type MatchResult struct {
	Rounds []round.PrivateRound
	ScoreA int
	ScoreB int
}

// matchStreams holds the independent random streams used by one match.
type matchStreams struct {
	noise   *rand.Rand
	policyA *rand.Rand
	policyB *rand.Rand
}

func newMatchStreams(seed int64) matchStreams {
	root := rand.New(rand.NewSource(seed))
	return matchStreams{
		noise:   rand.New(rand.NewSource(root.Int63())),
		policyA: rand.New(rand.NewSource(root.Int63())),
		policyB: rand.New(rand.NewSource(root.Int63())),
	}
}

// PlayMatch runs MatchRounds rounds between a and b. Each policy sees only
// its own view of completed rounds. The result depends only on the players,
// the noise channel and seed.
func PlayMatch(a, b Player, noise round.NoiseChannel, seed int64) MatchResult {
	streams := newMatchStreams(seed)

	rounds := make([]round.PrivateRound, 0, MatchRounds)
	histA := make([]round.Outcome, 0, MatchRounds)
	histB := make([]round.Outcome, 0, MatchRounds)
	var scoreA, scoreB int

	for i := 0; i < MatchRounds; i++ {
		choiceA := a.Policy.Decide(histA, streams.policyA)
		choiceB := b.Policy.Decide(histB, streams.policyB)

		truth := round.NewOutcome(choiceA, choiceB)
		pr := noise.Observe(truth, streams.noise)
		rounds = append(rounds, pr)

		// Histories grow by one view per completed round; the slices
		// handed to policies above never include the current round.
		histA = append(histA, pr.ViewA())
		histB = append(histB, pr.ViewB())

		pa, pb := round.Payoff(truth)
		scoreA += pa
		scoreB += pb
	}

	return MatchResult{
		Rounds: rounds,
		ScoreA: scoreA,
		ScoreB: scoreB,
	}
}
