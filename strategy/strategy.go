// Package strategy provides the decision policies players use, one type per
// strategy kind.
package strategy

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/dilemma/round"
)

// ErrUnknownKind is returned when a strategy name does not match any kind.
var ErrUnknownKind = errors.New("unknown strategy kind")

// Policy decides a player's next choice from that player's own view of the
// match so far. In each history entry slot A is the player itself and slot
// B is the opponent. Policies must be stateless so they can be shared by
// concurrent matches; randomness comes only from rng.
type Policy interface {
	Decide(history []round.Outcome, rng round.Rand) round.Choice
}

// Kind identifies a category of policy.
type Kind uint8

const (
	AlwaysCooperate Kind = iota
	Random
	AlwaysSteal
	TitForTat
	OnceBittenTwiceShy
	TakesTimeToForgive
	MostlyGood
	MaybeRetaliate
	MainlyRetaliate
	RarelyRetaliate

	numKinds
)

var kindNames = [numKinds]string{
	AlwaysCooperate:    "always_cooperate",
	Random:             "random",
	AlwaysSteal:        "always_steal",
	TitForTat:          "tit_for_tat",
	OnceBittenTwiceShy: "once_bitten_twice_shy",
	TakesTimeToForgive: "takes_time_to_forgive",
	MostlyGood:         "mostly_good",
	MaybeRetaliate:     "maybe_retaliate",
	MainlyRetaliate:    "mainly_retaliate",
	RarelyRetaliate:    "rarely_retaliate",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

// All returns every kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// New returns the policy for kind. Panics on an unknown kind; callers
// resolving user input should go through ParseKind first.
func New(kind Kind) Policy {
	switch kind {
	case AlwaysCooperate:
		return Constant(round.Cooperate)
	case Random:
		return Chance(50)
	case AlwaysSteal:
		return Constant(round.Steal)
	case TitForTat:
		return Mirror{}
	case OnceBittenTwiceShy:
		return Grudge{}
	case TakesTimeToForgive:
		return Forgiving{Memory: 2}
	case MostlyGood:
		return Chance(10)
	case MaybeRetaliate:
		return Retaliate(50)
	case MainlyRetaliate:
		return Retaliate(90)
	case RarelyRetaliate:
		return Retaliate(10)
	}
	panic(fmt.Sprintf("strategy: no policy for %v", kind))
}
