package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pthm-cable/dilemma/game"
	"github.com/pthm-cable/dilemma/round"
)

// parsePoints accepts "0,25,50" or "start:end:step" (end inclusive).
// An empty string yields no points. Every point, and both ends of a range,
// must be a valid noise percentage; out-of-range values wrap
// round.ErrNoiseOutOfRange.
func parsePoints(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("range %q must be start:end:step", s)
		}
		var bounds [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", s, err)
			}
			bounds[i] = v
		}
		start, end, step := bounds[0], bounds[1], bounds[2]
		if step <= 0 {
			return nil, fmt.Errorf("range %q: step must be positive", s)
		}
		for _, v := range []int{start, end} {
			if err := round.ValidateProbability(v); err != nil {
				return nil, fmt.Errorf("range %q: %w", s, err)
			}
		}
		var points []int
		for p := start; p <= end; p += step {
			points = append(points, p)
		}
		return points, nil
	}

	var points []int
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", p, err)
		}
		if err := round.ValidateProbability(v); err != nil {
			return nil, err
		}
		points = append(points, v)
	}
	return points, nil
}

// printTable writes one row per kind and one column per noise point.
func printTable(w io.Writer, table game.SweepTable) {
	fmt.Fprintf(w, "%-24s", "kind")
	for _, p := range table.Points {
		fmt.Fprintf(w, " %6s", fmt.Sprintf("%d%%", p))
	}
	fmt.Fprintln(w)

	for _, k := range table.Kinds() {
		fmt.Fprintf(w, "%-24s", k)
		for _, v := range table.Fitness[k] {
			fmt.Fprintf(w, " %6.3f", v)
		}
		fmt.Fprintln(w)
	}
}
