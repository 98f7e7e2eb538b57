// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Noise      NoiseConfig      `yaml:"noise"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Population PopulationConfig `yaml:"population"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// SimulationConfig holds run-level parameters.
type SimulationConfig struct {
	Seed    int64 `yaml:"seed" env:"DILEMMA_SEED"`       // 0 = time-based
	Seasons int   `yaml:"seasons" env:"DILEMMA_SEASONS"` // Number of seasons to evolve
}

// NoiseConfig holds observation noise parameters.
type NoiseConfig struct {
	Probability int   `yaml:"probability" env:"DILEMMA_NOISE"` // Percent, 0-100
	SweepPoints []int `yaml:"sweep_points"`                    // Noise values visited by the sweep
}

// EvolutionConfig holds population growth parameters.
type EvolutionConfig struct {
	SpawnThresholds []float64 `yaml:"spawn_thresholds"`                            // One spawn per threshold exceeded
	MaxPopulation   int       `yaml:"max_population" env:"DILEMMA_MAX_POPULATION"` // 0 = unbounded
}

// FounderConfig describes a group of identical founding players.
type FounderConfig struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// PopulationConfig holds the founding population.
type PopulationConfig struct {
	Founders []FounderConfig `yaml:"founders"`
}

// ParallelConfig holds worker pool parameters.
type ParallelConfig struct {
	Workers int `yaml:"workers" env:"DILEMMA_WORKERS"` // 0 = GOMAXPROCS
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	LogStandings   bool   `yaml:"log_standings"`
	OutputDir      string `yaml:"output_dir" env:"DILEMMA_OUTPUT_DIR"`
	HallOfFameSize int    `yaml:"hall_of_fame_size"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies DILEMMA_* environment overrides and validates the result.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
// Strategy names are resolved later, by the game package.
func (c *Config) Validate() error {
	if c.Noise.Probability < 0 || c.Noise.Probability > 100 {
		return fmt.Errorf("noise.probability %d outside [0, 100]: %w", c.Noise.Probability, ErrInvalid)
	}
	for _, p := range c.Noise.SweepPoints {
		if p < 0 || p > 100 {
			return fmt.Errorf("noise.sweep_points value %d outside [0, 100]: %w", p, ErrInvalid)
		}
	}
	if c.Simulation.Seasons < 0 {
		return fmt.Errorf("simulation.seasons %d is negative: %w", c.Simulation.Seasons, ErrInvalid)
	}
	if c.Evolution.MaxPopulation < 0 {
		return fmt.Errorf("evolution.max_population %d is negative: %w", c.Evolution.MaxPopulation, ErrInvalid)
	}
	if c.Parallel.Workers < 0 {
		return fmt.Errorf("parallel.workers %d is negative: %w", c.Parallel.Workers, ErrInvalid)
	}

	total := 0
	for _, f := range c.Population.Founders {
		if f.Count < 0 {
			return fmt.Errorf("population.founders %q has negative count: %w", f.Kind, ErrInvalid)
		}
		total += f.Count
	}
	if total < 1 {
		return fmt.Errorf("population.founders must contain at least one player: %w", ErrInvalid)
	}
	return nil
}

// FounderCount returns the total number of founding players.
func (c *Config) FounderCount() int {
	n := 0
	for _, f := range c.Population.Founders {
		n += f.Count
	}
	return n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
