package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/game"
	"github.com/pthm-cable/dilemma/round"
	"github.com/pthm-cable/dilemma/strategy"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"0,50,100", []int{0, 50, 100}, false},
		{" 5 , 15 ", []int{5, 15}, false},
		{"0:100:10", []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, false},
		{"10:30:15", []int{10, 25}, false},
		{"0:100", nil, true},
		{"0:100:0", nil, true},
		{"a,b", nil, true},
		{"0,150", nil, true},
		{"-5", nil, true},
		{"0:100000000000:1", nil, true},
		{"-10:50:10", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoints(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePointsOutOfRange(t *testing.T) {
	for _, in := range []string{"0,150", "-5", "90:101:1", "-1:10:1", "0:100000000:1"} {
		t.Run(in, func(t *testing.T) {
			_, err := parsePoints(in)
			if !errors.Is(err, round.ErrNoiseOutOfRange) {
				t.Errorf("parsePoints(%q) = %v, want ErrNoiseOutOfRange", in, err)
			}
		})
	}
}

func TestInterrupted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"cancelled", fmt.Errorf("season 3: %w", context.Canceled), true},
		{"bad point", fmt.Errorf("sweep point: %w", round.ErrNoiseOutOfRange), false},
		{"other", errors.New("disk full"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interrupted(tt.err); got != tt.want {
				t.Errorf("interrupted(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	clock := func() time.Time { return time.Unix(0, 777) }
	tests := []struct {
		name     string
		flagSeed int64
		cfgSeed  int64
		wantSeed int64
	}{
		{"flag wins", 5, 9, 5},
		{"config when flag unset", 0, 9, 9},
		{"clock when both unset", 0, 0, 777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Simulation.Seed = tt.cfgSeed

			got := resolveSeed(cfg, tt.flagSeed, clock)
			if got != tt.wantSeed {
				t.Errorf("seed = %d, want %d", got, tt.wantSeed)
			}
			if cfg.Simulation.Seed != tt.wantSeed {
				t.Errorf("cfg.Simulation.Seed = %d, want %d", cfg.Simulation.Seed, tt.wantSeed)
			}
		})
	}
}

func TestPrintTable(t *testing.T) {
	table := game.SweepTable{
		Points: []int{0, 100},
		Fitness: map[strategy.Kind][]float64{
			strategy.AlwaysSteal: {2.333, 2.333},
			strategy.TitForTat:   {3.0, 2.25},
		},
	}

	var buf bytes.Buffer
	printTable(&buf, table)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "always_steal") || !strings.HasPrefix(lines[2], "tit_for_tat") {
		t.Errorf("rows out of order:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "2.250") {
		t.Errorf("missing value in %q", lines[2])
	}
}
