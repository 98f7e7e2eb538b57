package strategy

import "github.com/pthm-cable/dilemma/round"

// Constant always plays the same choice.
type Constant round.Choice

func (c Constant) Decide(_ []round.Outcome, _ round.Rand) round.Choice {
	return round.Choice(c)
}

// Chance steals with the given percent probability each round, regardless
// of history.
type Chance int

func (c Chance) Decide(_ []round.Outcome, rng round.Rand) round.Choice {
	if rng.Intn(100) < int(c) {
		return round.Steal
	}
	return round.Cooperate
}

// Mirror repeats the opponent's last move, cooperating first.
type Mirror struct{}

func (Mirror) Decide(history []round.Outcome, _ round.Rand) round.Choice {
	return lastOpponent(history)
}

// Grudge cooperates until the opponent steals once, then steals for the
// rest of the match.
type Grudge struct{}

func (Grudge) Decide(history []round.Outcome, _ round.Rand) round.Choice {
	for _, o := range history {
		if o.B == round.Steal {
			return round.Steal
		}
	}
	return round.Cooperate
}

// Forgiving steals while the opponent has stolen in any of the last Memory
// rounds.
type Forgiving struct {
	Memory int
}

func (f Forgiving) Decide(history []round.Outcome, _ round.Rand) round.Choice {
	start := len(history) - f.Memory
	if start < 0 {
		start = 0
	}
	for _, o := range history[start:] {
		if o.B == round.Steal {
			return round.Steal
		}
	}
	return round.Cooperate
}

// Retaliate answers an opponent's steal in the previous round with a steal
// of its own, with the given percent probability.
type Retaliate int

func (r Retaliate) Decide(history []round.Outcome, rng round.Rand) round.Choice {
	if lastOpponent(history) == round.Steal && rng.Intn(100) < int(r) {
		return round.Steal
	}
	return round.Cooperate
}

// lastOpponent returns the opponent's most recent choice, assuming good
// faith before the first round.
func lastOpponent(history []round.Outcome) round.Choice {
	if len(history) == 0 {
		return round.Cooperate
	}
	return history[len(history)-1].B
}
