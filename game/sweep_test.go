package game

import (
	"context"
	"errors"
	"testing"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/round"
	"github.com/pthm-cable/dilemma/strategy"
)

func constantsConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Population.Founders = []config.FounderConfig{
		{Kind: "always_cooperate", Count: 1},
		{Kind: "always_steal", Count: 1},
	}
	cfg.Telemetry.LogStandings = false
	return cfg
}

func TestSweepConstantPolicies(t *testing.T) {
	g := newTestGame(t, constantsConfig())

	table, err := g.Sweep(context.Background(), []int{0, 50, 100})
	if err != nil {
		t.Fatal(err)
	}

	// Noise never changes what constant policies play.
	want := map[strategy.Kind]float64{
		strategy.AlwaysCooperate: 2.0,
		strategy.AlwaysSteal:     1400.0 / 600.0,
	}
	if got := table.Kinds(); len(got) != 2 || got[0] != strategy.AlwaysCooperate || got[1] != strategy.AlwaysSteal {
		t.Fatalf("kinds = %v", got)
	}
	for k, w := range want {
		vals := table.Fitness[k]
		if len(vals) != 3 {
			t.Fatalf("%s: %d values, want 3", k, len(vals))
		}
		for i, v := range vals {
			if v != w {
				t.Errorf("%s at noise %d: %v, want %v", k, table.Points[i], v, w)
			}
		}
		if table.Players[k] != 1 {
			t.Errorf("%s: %d players, want 1", k, table.Players[k])
		}
	}

	if g.Population() != 2 || g.Season() != 0 {
		t.Errorf("sweep changed the population: %d players, season %d", g.Population(), g.Season())
	}
}

func TestSweepDefaultPoints(t *testing.T) {
	g := newTestGame(t, constantsConfig())

	table, err := g.Sweep(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	want := config.Defaults().Noise.SweepPoints
	if len(table.Points) != len(want) {
		t.Fatalf("visited %d points, want %d", len(table.Points), len(want))
	}
	for i := range want {
		if table.Points[i] != want[i] {
			t.Errorf("point %d = %d, want %d", i, table.Points[i], want[i])
		}
	}

	records := table.Records()
	if len(records) != len(want)*2 {
		t.Errorf("%d records, want %d", len(records), len(want)*2)
	}
}

func TestSweepFitnessBounds(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.LogStandings = false
	g := newTestGame(t, cfg)

	table, err := g.Sweep(context.Background(), []int{0, 30, 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Kinds()) != len(strategy.All()) {
		t.Fatalf("got %d kinds, want %d", len(table.Kinds()), len(strategy.All()))
	}
	for _, r := range table.Records() {
		if r.Fitness < 0 || r.Fitness > round.MaxPayoff {
			t.Errorf("%s at noise %d: fitness %v out of [0, 5]", r.Kind, r.Noise, r.Fitness)
		}
	}
}

func TestSweepInvalidPoint(t *testing.T) {
	g := newTestGame(t, constantsConfig())

	table, err := g.Sweep(context.Background(), []int{0, 110})
	if !errors.Is(err, round.ErrNoiseOutOfRange) {
		t.Errorf("err = %v, want ErrNoiseOutOfRange", err)
	}
	if len(table.Points) != 0 {
		t.Errorf("invalid sweep ran %d points", len(table.Points))
	}
}

func TestSweepCancelled(t *testing.T) {
	g := newTestGame(t, constantsConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Sweep(ctx, []int{0, 10}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
