// Package round defines the per-round data model: choices, outcomes, the
// payoff matrix and the noisy private observations each player sees.
package round

import "fmt"

// Choice is a single decision made by one player in one round.
type Choice uint8

const (
	Cooperate Choice = iota
	Steal
)

// Valid reports whether c is one of the two choice values.
func (c Choice) Valid() bool {
	return c == Cooperate || c == Steal
}

// Opposite returns the other choice.
func (c Choice) Opposite() Choice {
	switch c {
	case Cooperate:
		return Steal
	case Steal:
		return Cooperate
	}
	panic(fmt.Sprintf("round: invalid choice %d", uint8(c)))
}

func (c Choice) String() string {
	switch c {
	case Cooperate:
		return "cooperate"
	case Steal:
		return "steal"
	}
	return fmt.Sprintf("choice(%d)", uint8(c))
}

// Outcome is the pair of choices made simultaneously in one round.
// A is the first slot, B the second.
type Outcome struct {
	A, B Choice
}

// Canonical outcomes, first slot = player A.
var (
	BothCooperate = Outcome{A: Cooperate, B: Cooperate}
	FirstSteals   = Outcome{A: Steal, B: Cooperate}
	SecondSteals  = Outcome{A: Cooperate, B: Steal}
	BothSteal     = Outcome{A: Steal, B: Steal}
)

// NewOutcome builds an outcome from two choices.
// Panics if either choice is not a valid Choice value.
func NewOutcome(a, b Choice) Outcome {
	if !a.Valid() || !b.Valid() {
		panic(fmt.Sprintf("round: invalid outcome (%d, %d)", uint8(a), uint8(b)))
	}
	return Outcome{A: a, B: b}
}

// Flip swaps the two slots.
func (o Outcome) Flip() Outcome {
	return Outcome{A: o.B, B: o.A}
}

func (o Outcome) String() string {
	return o.A.String() + "/" + o.B.String()
}

// MaxPayoff is the largest number of points a player can earn in one round.
const MaxPayoff = 5

// Payoff returns the points (a, b) earned by each slot for the outcome.
// Panics if o is not one of the four canonical outcomes.
func Payoff(o Outcome) (a, b int) {
	switch o {
	case BothCooperate:
		return 3, 3
	case FirstSteals:
		return 5, 0
	case SecondSteals:
		return 0, 5
	case BothSteal:
		return 1, 1
	}
	panic(fmt.Sprintf("round: payoff for invalid outcome %v", o))
}

// Score sums the true payoffs over a sequence of outcomes.
func Score(outcomes []Outcome) (a, b int) {
	for _, o := range outcomes {
		pa, pb := Payoff(o)
		a += pa
		b += pb
	}
	return a, b
}
