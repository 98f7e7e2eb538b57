package game

import (
	"cmp"
	"log/slog"
	"slices"
	"time"
)

// Season phase names.
const (
	PhaseMatches  = "matches"
	PhaseRanking  = "ranking"
	PhaseSpawning = "spawning"
	PhaseOutput   = "output"
)

// perfWindow is the default number of seasons each phase mean covers.
const perfWindow = 32

// phaseTimes is a fixed ring of recent durations with a running sum.
type phaseTimes struct {
	ring []time.Duration
	head int // next slot to write
	n    int
	sum  time.Duration
}

func (t *phaseTimes) add(d time.Duration) {
	if t.n == len(t.ring) {
		t.sum -= t.ring[t.head]
	} else {
		t.n++
	}
	t.ring[t.head] = d
	t.sum += d
	t.head = (t.head + 1) % len(t.ring)
}

func (t *phaseTimes) last() time.Duration {
	return t.ring[(t.head+len(t.ring)-1)%len(t.ring)]
}

func (t *phaseTimes) mean() time.Duration {
	return t.sum / time.Duration(t.n)
}

// PerfStats keeps a sliding mean of wall time per season phase.
// It is not safe for concurrent use; the season loop owns it.
type PerfStats struct {
	window int
	phases map[string]*phaseTimes
	order  []string // first-seen order
}

// NewPerfStats returns a tracker averaging over the last perfWindow samples.
func NewPerfStats() *PerfStats {
	return &PerfStats{window: perfWindow, phases: make(map[string]*phaseTimes)}
}

// Record adds a duration sample for the named phase, evicting the oldest
// once the window is full.
func (p *PerfStats) Record(name string, d time.Duration) {
	t, ok := p.phases[name]
	if !ok {
		t = &phaseTimes{ring: make([]time.Duration, p.window)}
		p.phases[name] = t
		p.order = append(p.order, name)
	}
	t.add(d)
}

// Time runs fn and records its duration under name.
func (p *PerfStats) Time(name string, fn func()) {
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Last returns the newest sample for name, or 0 if none was recorded.
func (p *PerfStats) Last(name string) time.Duration {
	if t, ok := p.phases[name]; ok {
		return t.last()
	}
	return 0
}

// Avg returns the windowed mean for name, or 0 if none was recorded.
func (p *PerfStats) Avg(name string) time.Duration {
	if t, ok := p.phases[name]; ok {
		return t.mean()
	}
	return 0
}

// Total is the mean wall time of a whole season: the sum of phase means.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for _, t := range p.phases {
		total += t.mean()
	}
	return total
}

// SortedNames lists phases slowest first. Ties keep first-seen order.
func (p *PerfStats) SortedNames() []string {
	names := slices.Clone(p.order)
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(p.Avg(b), p.Avg(a))
	})
	return names
}

// LogValue implements slog.LogValuer with the latest sample of each phase.
func (p *PerfStats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(p.order))
	for _, name := range p.SortedNames() {
		attrs = append(attrs, slog.Duration(name, p.Last(name)))
	}
	return slog.GroupValue(attrs...)
}
