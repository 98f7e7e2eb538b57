package game

import (
	"testing"
	"time"
)

func TestPerfStats(t *testing.T) {
	p := NewPerfStats()
	p.Record(PhaseMatches, 30*time.Millisecond)
	p.Record(PhaseMatches, 10*time.Millisecond)
	p.Record(PhaseRanking, time.Millisecond)

	if got := p.Avg(PhaseMatches); got != 20*time.Millisecond {
		t.Errorf("Avg(matches) = %v, want 20ms", got)
	}
	if got := p.Last(PhaseMatches); got != 10*time.Millisecond {
		t.Errorf("Last(matches) = %v, want 10ms", got)
	}
	if got := p.Total(); got != 21*time.Millisecond {
		t.Errorf("Total = %v, want 21ms", got)
	}
	if got := p.Avg(PhaseSpawning); got != 0 {
		t.Errorf("Avg of unseen phase = %v, want 0", got)
	}
	if got := p.Last(PhaseSpawning); got != 0 {
		t.Errorf("Last of unseen phase = %v, want 0", got)
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseMatches || names[1] != PhaseRanking {
		t.Errorf("SortedNames = %v", names)
	}
}

func TestPerfStatsWindow(t *testing.T) {
	p := NewPerfStats()
	for i := 0; i < p.window; i++ {
		p.Record(PhaseOutput, time.Second)
	}
	p.Record(PhaseOutput, 0)

	want := time.Second * time.Duration(p.window-1) / time.Duration(p.window)
	if got := p.Avg(PhaseOutput); got != want {
		t.Errorf("Avg = %v, want %v", got, want)
	}
	if got := p.Last(PhaseOutput); got != 0 {
		t.Errorf("Last = %v, want 0", got)
	}
}

func TestPerfStatsWindowWrapsRepeatedly(t *testing.T) {
	p := NewPerfStats()
	const n = 100
	for i := 1; i <= n; i++ {
		p.Record(PhaseMatches, time.Duration(i)*time.Millisecond)
	}

	// Mean of the last window samples: (n-window+1 .. n) ms.
	lo := n - p.window + 1
	want := time.Duration(lo+n) * time.Millisecond / 2
	if got := p.Avg(PhaseMatches); got != want {
		t.Errorf("Avg = %v, want %v", got, want)
	}
	if got := p.Last(PhaseMatches); got != n*time.Millisecond {
		t.Errorf("Last = %v, want %v", got, n*time.Millisecond)
	}
}

func TestPerfStatsSortedNamesTies(t *testing.T) {
	p := NewPerfStats()
	p.Record(PhaseSpawning, time.Millisecond)
	p.Record(PhaseOutput, time.Millisecond)
	p.Record(PhaseMatches, 5*time.Millisecond)

	want := []string{PhaseMatches, PhaseSpawning, PhaseOutput}
	got := p.SortedNames()
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("SortedNames = %v, want %v", got, want)
		}
	}
}

func TestPerfStatsTime(t *testing.T) {
	p := NewPerfStats()
	ran := false
	p.Time(PhaseSpawning, func() { ran = true })

	if !ran {
		t.Error("Time did not run fn")
	}
	if len(p.SortedNames()) != 1 {
		t.Error("Time did not record a sample")
	}
}
