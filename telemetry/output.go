package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dilemma/config"
)

// StandingRecord is one row of standings.csv.
type StandingRecord struct {
	Season   int     `csv:"season"`
	Rank     int     `csv:"rank"` // 1 = best
	PlayerID uint32  `csv:"player_id"`
	Name     string  `csv:"name"`
	Kind     string  `csv:"kind"`
	Fitness  float64 `csv:"fitness"`
	Total    int     `csv:"total"`
	Sides    int     `csv:"sides"`
	Born     int     `csv:"born"`
	ParentID uint32  `csv:"parent_id"`
}

// SweepRecord is one row of sweep.csv: a kind's mean fitness at one noise level.
type SweepRecord struct {
	Kind    string  `csv:"kind"`
	Noise   int     `csv:"noise"`
	Fitness float64 `csv:"fitness"`
	Players int     `csv:"players"`
}

// csvStream appends gocsv records to a file, writing the header once.
type csvStream struct {
	path          string
	file          *os.File
	headerWritten bool
}

func (c *csvStream) write(records any) error {
	if c.file == nil {
		f, err := os.Create(c.path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(c.path), err)
		}
		c.file = f
	}

	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.file); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(c.path), err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.file); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(c.path), err)
	}
	return nil
}

func (c *csvStream) close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}

// OutputManager handles structured run output with CSV logging.
// Files are created on first write.
type OutputManager struct {
	dir       string
	standings *csvStream
	seasons   *csvStream
	sweep     *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{
		dir:       dir,
		standings: &csvStream{path: filepath.Join(dir, "standings.csv")},
		seasons:   &csvStream{path: filepath.Join(dir, "seasons.csv")},
		sweep:     &csvStream{path: filepath.Join(dir, "sweep.csv")},
	}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStandings appends one season's standings to standings.csv.
func (om *OutputManager) WriteStandings(records []StandingRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.standings.write(records)
}

// WriteSeason appends a season stats record to seasons.csv.
func (om *OutputManager) WriteSeason(stats SeasonStats) error {
	if om == nil {
		return nil
	}
	return om.seasons.write([]SeasonStats{stats})
}

// WriteSweep appends noise sweep rows to sweep.csv.
func (om *OutputManager) WriteSweep(records []SweepRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.sweep.write(records)
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvStream{om.standings, om.seasons, om.sweep} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
