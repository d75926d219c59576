package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/aipower-model/internal/engine"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, engine.DefaultAssumptions(), cfg.Assumptions)
	assert.Equal(t, []float64{10, 30, 100, 300, 1000, 2000}, cfg.Grid.PowerGW)
	assert.Equal(t, []int{2025, 2030, 2035, 2040}, cfg.Grid.Years)
	require.Len(t, cfg.Grid.Mixes, 4)
	assert.Equal(t, "Pure Solar", cfg.Grid.Mixes[0].Name)
	assert.Equal(t, engine.EnergyMix{"solar": 0.7, "gas": 0.3}, cfg.Grid.Mixes[3].Shares)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.yaml", `
workers: 8
assumptions:
  capex:
    per_watt: 20
  thresholds:
    warn: 0.2
grid:
  years: [2030]
output:
  dir: out
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	defaults := engine.DefaultAssumptions()
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 20.0, cfg.Assumptions.Capex.PerWatt)
	assert.Equal(t, defaults.Capex.Mode, cfg.Assumptions.Capex.Mode, "unspecified keys keep defaults")
	assert.Equal(t, 0.2, cfg.Assumptions.Thresholds.Warn)
	assert.Equal(t, defaults.Thresholds.Infeasible, cfg.Assumptions.Thresholds.Infeasible)
	assert.Equal(t, defaults.Curves, cfg.Assumptions.Curves)
	assert.Equal(t, defaults.Sources, cfg.Assumptions.Sources)
	assert.Equal(t, []int{2030}, cfg.Grid.Years)
	assert.Equal(t, DefaultGrid().PowerGW, cfg.Grid.PowerGW)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "scenarios.csv", cfg.Output.CSV)
}

func TestLoad_ReplacesSources(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sources.yaml", `
assumptions:
  sources:
    - name: solar
      capacity_factor: 0.2
    - name: gas
      capacity_factor: 0.9
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []engine.EnergySource{
		{Name: "solar", CapacityFactor: 0.2},
		{Name: "gas", CapacityFactor: 0.9},
	}, cfg.Assumptions.Sources)
	assert.NoError(t, cfg.Assumptions.Validate())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "workers: [1, 2\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoad_SearchesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "no file found yields defaults")

	writeConfig(t, dir, "aipower.yml", "workers: 2\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	writeConfig(t, dir, "aipower.yaml", "workers: 3\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers, "aipower.yaml wins over aipower.yml")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvWarnThreshold, "0.25")
	t.Setenv(EnvWorkers, "16")
	t.Setenv(EnvOutputDir, "/tmp/results")

	cfg := DefaultConfig()
	cfg.ApplyEnv(zerolog.Nop())

	assert.Equal(t, 0.25, cfg.Assumptions.Thresholds.Warn)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, "/tmp/results", cfg.Output.Dir)
}

func TestApplyEnv_InvalidKeepsValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric threshold", EnvWarnThreshold, "high"},
		{"negative threshold", EnvWarnThreshold, "-0.1"},
		{"non-numeric workers", EnvWorkers, "many"},
		{"zero workers", EnvWorkers, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg := DefaultConfig()
			cfg.ApplyEnv(zerolog.Nop())
			assert.Equal(t, DefaultConfig(), cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"unnamed mix", func(c *Config) { c.Grid.Mixes[0].Name = "" }, "name is required"},
		{"duplicate mix", func(c *Config) { c.Grid.Mixes[1].Name = c.Grid.Mixes[0].Name }, "duplicate mix name"},
		{"no outputs", func(c *Config) { c.Output.CSV, c.Output.JSONL = "", "" }, "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGrid_Conversions(t *testing.T) {
	g := DefaultGrid()

	watts := g.PowersWatts()
	require.Len(t, watts, 6)
	assert.Equal(t, 10e9, watts[0])
	assert.Equal(t, 2000e9, watts[5])

	mixes := g.EnergyMixes()
	require.Len(t, mixes, 4)
	assert.Equal(t, engine.EnergyMix{"solar": 0.5, "gas": 0.5}, mixes[2])

	m, ok := g.Mix("Balanced")
	require.True(t, ok)
	assert.Equal(t, 0.5, m.Shares["gas"])
	_, ok = g.Mix("Nuclear")
	assert.False(t, ok)
}

func TestGrid_MixName(t *testing.T) {
	g := DefaultGrid()

	assert.Equal(t, "Solar Heavy", g.MixName([]engine.MixShare{{Source: "solar", Share: 0.7}, {Source: "gas", Share: 0.3}}))
	assert.Equal(t, "Pure Gas", g.MixName([]engine.MixShare{{Source: "solar", Share: 0}, {Source: "gas", Share: 1}}))
	assert.Empty(t, g.MixName([]engine.MixShare{{Source: "solar", Share: 0.3}, {Source: "gas", Share: 0.7}}))
}

func TestDefaultGrid_EvaluatesCleanly(t *testing.T) {
	g := DefaultGrid()
	s, err := engine.Default().Sweep(g.PowersWatts(), g.Years, g.EnergyMixes())
	require.NoError(t, err)
	assert.Equal(t, 96, s.Len())
}
