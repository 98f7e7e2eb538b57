package telemetry

import (
	"encoding/json"
	"testing"
)

func entry(id uint32, kind string, fitness float64) HallEntry {
	return HallEntry{PlayerID: id, Kind: kind, Fitness: fitness}
}

func TestHallOfFameOrderAndBound(t *testing.T) {
	hof := NewHallOfFame(3)

	for i, f := range []float64{2.0, 3.5, 1.0, 2.8, 4.1} {
		hof.Consider(entry(uint32(i+1), "tit_for_tat", f))
	}

	got := hof.Entries("tit_for_tat")
	want := []float64{4.1, 3.5, 2.8}
	if len(got) != len(want) {
		t.Fatalf("hall has %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Fitness != w {
			t.Errorf("entry %d fitness = %v, want %v", i, got[i].Fitness, w)
		}
	}
}

func TestHallOfFameConsider(t *testing.T) {
	hof := NewHallOfFame(2)

	tests := []struct {
		e    HallEntry
		want bool
	}{
		{entry(1, "random", 2.0), true},  // room
		{entry(2, "random", 1.0), true},  // room
		{entry(3, "random", 0.5), false}, // full, lowest
		{entry(4, "random", 3.0), true},  // displaces 1.0
		{entry(5, "always_steal", 0.1), true},
	}
	for _, tt := range tests {
		if got := hof.Consider(tt.e); got != tt.want {
			t.Errorf("Consider(%+v) = %v, want %v", tt.e, got, tt.want)
		}
	}

	top, ok := hof.Top("random")
	if !ok || top.PlayerID != 4 {
		t.Errorf("Top(random) = %+v, %v; want player 4", top, ok)
	}
	if _, ok := hof.Top("tit_for_tat"); ok {
		t.Error("Top on an empty hall reported an entry")
	}

	kinds := hof.Kinds()
	if len(kinds) != 2 || kinds[0] != "always_steal" || kinds[1] != "random" {
		t.Errorf("Kinds() = %v", kinds)
	}
}

func TestHallOfFameMarshalJSON(t *testing.T) {
	hof := NewHallOfFame(5)
	hof.Consider(HallEntry{PlayerID: 7, Name: "mostly_good-abc1234", Kind: "mostly_good", Fitness: 2.9, Season: 3, Noise: 10})

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string][]HallEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	got := decoded["mostly_good"]
	if len(got) != 1 || got[0].Name != "mostly_good-abc1234" || got[0].Season != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}
