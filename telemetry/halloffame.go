package telemetry

import (
	"encoding/json"
	"sort"
)

// HallEntry records one strong season performance.
type HallEntry struct {
	PlayerID uint32  `json:"player_id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Fitness  float64 `json:"fitness"`
	Season   int     `json:"season"`
	Noise    int     `json:"noise"`
}

// HallOfFame keeps the best season performances of each strategy kind.
// Halls are indexed by kind name.
type HallOfFame struct {
	halls   map[string][]HallEntry
	maxSize int
}

// NewHallOfFame creates a new hall of fame with the given capacity per kind.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		halls:   make(map[string][]HallEntry),
		maxSize: maxSize,
	}
}

// Consider evaluates an entry for its kind's hall.
// Returns true if the entry was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	hall := hof.halls[entry.Kind]
	before := len(hall)
	updated := hof.insertEntry(hall, entry)
	hof.halls[entry.Kind] = updated

	if len(updated) > before {
		return true
	}
	// Full hall: the entry got in only if it displaced someone.
	for _, e := range updated {
		if e == entry {
			return true
		}
	}
	return false
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall
}

// Top returns the best entry for kind, or false if its hall is empty.
func (hof *HallOfFame) Top(kind string) (HallEntry, bool) {
	hall := hof.halls[kind]
	if len(hall) == 0 {
		return HallEntry{}, false
	}
	return hall[0], true
}

// Entries returns a copy of the hall for kind, best first.
func (hof *HallOfFame) Entries(kind string) []HallEntry {
	hall := hof.halls[kind]
	out := make([]HallEntry, len(hall))
	copy(out, hall)
	return out
}

// Kinds returns the kinds that have at least one entry, sorted by name.
func (hof *HallOfFame) Kinds() []string {
	kinds := make([]string, 0, len(hof.halls))
	for k, hall := range hof.halls {
		if len(hall) > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// MarshalJSON serializes the halls keyed by kind.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.halls, "", "  ")
}
