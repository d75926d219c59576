// Package config loads model assumptions, the sweep grid and output settings
// from YAML, overlaid on built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/aipower-model/internal/engine"
)

// Environment variables that override file values.
const (
	EnvWarnThreshold = "AIPOWER_WARN_THRESHOLD"
	EnvWorkers       = "AIPOWER_WORKERS"
	EnvOutputDir     = "AIPOWER_OUTPUT_DIR"
)

// DefaultFiles are searched in order when no path is given.
var DefaultFiles = []string{"aipower.yaml", "aipower.yml"}

//go:embed grid.yaml
var defaultGridYAML []byte

// Config is the full configuration of the aipower CLI.
type Config struct {
	Assumptions engine.Assumptions `yaml:"assumptions"`
	Grid        Grid               `yaml:"grid"`
	Output      Output             `yaml:"output"`

	// Workers bounds concurrent evaluations during a sweep.
	Workers int `yaml:"workers"`
}

// Grid is the sweep definition in user-facing units.
type Grid struct {
	PowerGW []float64  `yaml:"power_gw"`
	Years   []int      `yaml:"years"`
	Mixes   []NamedMix `yaml:"mixes"`
}

// NamedMix is an energy mix with a display name.
type NamedMix struct {
	Name   string           `yaml:"name"`
	Shares engine.EnergyMix `yaml:"shares"`
}

// Output controls where sweep results are written.
type Output struct {
	Dir   string `yaml:"dir"`
	CSV   string `yaml:"csv"`
	JSONL string `yaml:"jsonl"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Assumptions: engine.DefaultAssumptions(),
		Grid:        DefaultGrid(),
		Output: Output{
			Dir:   ".",
			CSV:   "scenarios.csv",
			JSONL: "scenarios.jsonl",
		},
		Workers: 4,
	}
}

// DefaultGrid returns the embedded reference scenario matrix.
func DefaultGrid() Grid {
	var g Grid
	if err := yaml.Unmarshal(defaultGridYAML, &g); err != nil {
		panic("config: embedded grid.yaml is invalid: " + err.Error())
	}
	return g
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file is found, the default configuration is returned.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", name, err)
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg from the environment. Invalid values are logged
// and the current value is kept.
func (c *Config) ApplyEnv(logger zerolog.Logger) {
	if v := os.Getenv(EnvWarnThreshold); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Assumptions.Thresholds.Warn = parsed
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvWarnThreshold + ", using configured value")
		}
	}

	if v := os.Getenv(EnvWorkers); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvWorkers + ", using configured value")
		}
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}

	logger.Debug().
		Float64("warn_threshold", c.Assumptions.Thresholds.Warn).
		Int("workers", c.Workers).
		Str("output_dir", c.Output.Dir).
		Msg("environment overrides applied")
}

// Validate checks the grid and settings. Assumptions are validated by
// engine.New.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	names := make(map[string]bool, len(c.Grid.Mixes))
	for i, m := range c.Grid.Mixes {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("grid.mixes[%d]: name is required", i))
			continue
		}
		if names[m.Name] {
			errs = append(errs, fmt.Errorf("grid.mixes[%d]: duplicate mix name %q", i, m.Name))
		}
		names[m.Name] = true
	}
	if c.Output.CSV == "" && c.Output.JSONL == "" {
		errs = append(errs, errors.New("output: at least one of csv or jsonl is required"))
	}
	return errors.Join(errs...)
}

// PowersWatts returns the grid power levels in watts.
func (g Grid) PowersWatts() []float64 {
	out := make([]float64, len(g.PowerGW))
	for i, p := range g.PowerGW {
		out[i] = p * 1e9
	}
	return out
}

// EnergyMixes returns the grid mixes without their names.
func (g Grid) EnergyMixes() []engine.EnergyMix {
	out := make([]engine.EnergyMix, len(g.Mixes))
	for i, m := range g.Mixes {
		out[i] = m.Shares
	}
	return out
}

// Mix returns the named mix and whether it exists.
func (g Grid) Mix(name string) (NamedMix, bool) {
	for _, m := range g.Mixes {
		if m.Name == name {
			return m, true
		}
	}
	return NamedMix{}, false
}

// MixName returns the name of the grid mix matching shares, or "" when
// none matches.
func (g Grid) MixName(mix []engine.MixShare) string {
	for _, m := range g.Mixes {
		if sameShares(m.Shares, mix) {
			return m.Name
		}
	}
	return ""
}

func sameShares(named engine.EnergyMix, mix []engine.MixShare) bool {
	for _, s := range mix {
		if named[s.Source] != s.Share {
			return false
		}
	}
	for source := range named {
		found := false
		for _, s := range mix {
			if s.Source == source {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
