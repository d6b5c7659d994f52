package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Packing.BoxesPerTrolley)
	assert.Equal(t, 90, cfg.Packing.StandardDensity)
	assert.Equal(t, 70, cfg.Packing.ReducedDensity)
	assert.Equal(t, 6, cfg.Packing.ReducedEvery)
	assert.Equal(t, 82.0, cfg.Fertility.BadBelowPercent)
	assert.Equal(t, 90.0, cfg.Fertility.WarnBelowPercent)
	assert.Equal(t, 3520, cfg.Fertility.DefaultCapacity)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := writeConfig(t, `
packing:
  boxes_per_trolley: 24
fertility:
  warn_below_percent: 92.5
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Packing.BoxesPerTrolley)
	assert.Equal(t, 90, cfg.Packing.StandardDensity, "unset values keep defaults")
	assert.Equal(t, 92.5, cfg.Fertility.WarnBelowPercent)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidConstants(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{"zero boxes", "packing:\n  boxes_per_trolley: 0\n", "boxes per trolley must be positive"},
		{"negative density", "packing:\n  standard_density: -90\n", "standard density must be positive"},
		{"zero reduced density", "packing:\n  reduced_density: 0\n", "reduced density must be positive"},
		{"zero interval", "packing:\n  reduced_every: 0\n", "reduced density interval must be at least 1"},
		{"thresholds out of order", "fertility:\n  bad_below_percent: 95\n", "cannot exceed warn threshold"},
		{"zero capacity", "fertility:\n  default_capacity: 0\n", "default trolley capacity must be positive"},
		{"bad level", "logging:\n  level: loud\n", "invalid logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")

	_, err = Load(writeConfig(t, "packing: [not, a, map"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Packing.ReducedEvery = 4
	path := filepath.Join(t.TempDir(), "engine.yaml")

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Builders(t *testing.T) {
	cfg := DefaultConfig()

	packing := cfg.PackingConfig()
	assert.Equal(t, 32, packing.BoxesPerTrolley)
	assert.NoError(t, packing.Validate())
	assert.NotNil(t, cfg.Classifier())
}
