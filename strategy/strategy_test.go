package strategy

import (
	"errors"
	"testing"

	"github.com/pthm-cable/dilemma/round"
)

// fixedRand returns the same draw every time.
type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func hist(opp ...round.Choice) []round.Outcome {
	h := make([]round.Outcome, len(opp))
	for i, c := range opp {
		h[i] = round.Outcome{A: round.Cooperate, B: c}
	}
	return h
}

const (
	c = round.Cooperate
	s = round.Steal
)

func TestPolicies(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		history []round.Outcome
		draw    int
		want    round.Choice
	}{
		{"always cooperate", AlwaysCooperate, hist(s, s), 0, c},
		{"always steal", AlwaysSteal, hist(c, c), 99, s},
		{"random low draw", Random, nil, 49, s},
		{"random high draw", Random, nil, 50, c},
		{"tit for tat opens", TitForTat, nil, 0, c},
		{"tit for tat mirrors steal", TitForTat, hist(c, s), 0, s},
		{"tit for tat mirrors cooperate", TitForTat, hist(s, c), 0, c},
		{"grudge clean", OnceBittenTwiceShy, hist(c, c, c), 0, c},
		{"grudge holds", OnceBittenTwiceShy, hist(s, c, c, c), 0, s},
		{"forgive after two", TakesTimeToForgive, hist(s, c, c), 0, c},
		{"still unforgiven", TakesTimeToForgive, hist(c, s, c), 0, s},
		{"mostly good steals", MostlyGood, nil, 9, s},
		{"mostly good cooperates", MostlyGood, nil, 10, c},
		{"maybe retaliate yes", MaybeRetaliate, hist(s), 49, s},
		{"maybe retaliate no", MaybeRetaliate, hist(s), 50, c},
		{"maybe retaliate calm", MaybeRetaliate, hist(c), 0, c},
		{"mainly retaliate", MainlyRetaliate, hist(s), 89, s},
		{"mainly retaliate spared", MainlyRetaliate, hist(s), 90, c},
		{"rarely retaliate", RarelyRetaliate, hist(s), 9, s},
		{"rarely retaliate spared", RarelyRetaliate, hist(s), 10, c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.kind).Decide(tt.history, fixedRand(tt.draw))
			if got != tt.want {
				t.Errorf("%v.Decide = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("nice_guy")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestAllKindsHavePolicies(t *testing.T) {
	if len(All()) != 10 {
		t.Errorf("expected 10 kinds, got %d", len(All()))
	}
	for _, k := range All() {
		if New(k) == nil {
			t.Errorf("no policy for %v", k)
		}
	}
}

func TestNewUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind")
		}
	}()
	New(Kind(200))
}
