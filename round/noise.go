package round

import (
	"errors"
	"fmt"
)

// ErrNoiseOutOfRange is returned when a noise probability is outside [0, 100].
var ErrNoiseOutOfRange = errors.New("noise probability out of range")

// Rand is the random capability used for noise draws and randomized
// strategies. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PrivateRound is a round as recorded for the two observers: the true
// outcome plus, when Noisy is set, a random outcome whose slots replace
// what each observer believes the opponent did.
type PrivateRound struct {
	Truth Outcome
	Noisy bool
	Noise Outcome
}

// ViewA returns the round as player A remembers it (self first).
func (r PrivateRound) ViewA() Outcome {
	if r.Noisy {
		return Outcome{A: r.Truth.A, B: r.Noise.B}
	}
	return r.Truth
}

// ViewB returns the round as player B remembers it (self first).
func (r PrivateRound) ViewB() Outcome {
	if r.Noisy {
		return Outcome{A: r.Truth.B, B: r.Noise.A}
	}
	return r.Truth.Flip()
}

// HistoryA returns A's view of every round, oldest first.
func HistoryA(rounds []PrivateRound) []Outcome {
	h := make([]Outcome, len(rounds))
	for i, r := range rounds {
		h[i] = r.ViewA()
	}
	return h
}

// HistoryB returns B's view of every round, oldest first.
func HistoryB(rounds []PrivateRound) []Outcome {
	h := make([]Outcome, len(rounds))
	for i, r := range rounds {
		h[i] = r.ViewB()
	}
	return h
}

// Truths returns the true outcome of every round.
func Truths(rounds []PrivateRound) []Outcome {
	t := make([]Outcome, len(rounds))
	for i, r := range rounds {
		t[i] = r.Truth
	}
	return t
}

// ValidateProbability checks that p is a percentage in [0, 100].
func ValidateProbability(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("noise %d: %w", p, ErrNoiseOutOfRange)
	}
	return nil
}

// NoiseChannel corrupts what players observe, never what happened.
type NoiseChannel struct {
	// Probability is the chance, in percent, that a round is corrupted.
	Probability int
}

// NewNoiseChannel validates p and returns a channel for it.
func NewNoiseChannel(p int) (NoiseChannel, error) {
	if err := ValidateProbability(p); err != nil {
		return NoiseChannel{}, err
	}
	return NoiseChannel{Probability: p}, nil
}

// Observe records truth, injecting noise when a draw in [0,100) falls
// below the channel probability.
func (n NoiseChannel) Observe(truth Outcome, rng Rand) PrivateRound {
	pr := PrivateRound{Truth: truth}
	if rng.Intn(100) < n.Probability {
		pr.Noisy = true
		pr.Noise = Outcome{A: RandomChoice(rng), B: RandomChoice(rng)}
	}
	return pr
}

// RandomChoice returns Cooperate or Steal with equal probability.
func RandomChoice(rng Rand) Choice {
	if rng.Intn(2) == 0 {
		return Cooperate
	}
	return Steal
}
