package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/hatchery/pkg/application/services"
	domainservices "github.com/vsinha/hatchery/pkg/domain/services"
)

// Config holds the engine configuration loaded from engine.yaml
type Config struct {
	Packing   PackingConfig   `yaml:"packing"`
	Fertility FertilityConfig `yaml:"fertility"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PackingConfig configures the chick packing engine
type PackingConfig struct {
	BoxesPerTrolley int `yaml:"boxes_per_trolley"`
	StandardDensity int `yaml:"standard_density"`
	ReducedDensity  int `yaml:"reduced_density"`
	// ReducedEvery: every n-th box-trolley of a run uses the reduced density
	ReducedEvery int `yaml:"reduced_every"`
}

// FertilityConfig configures the fertility classifier
type FertilityConfig struct {
	BadBelowPercent  float64 `yaml:"bad_below_percent"`
	WarnBelowPercent float64 `yaml:"warn_below_percent"`
	DefaultCapacity  int     `yaml:"default_capacity"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() *Config {
	packing := services.DefaultPackingConfig()
	return &Config{
		Packing: PackingConfig{
			BoxesPerTrolley: packing.BoxesPerTrolley,
			StandardDensity: packing.StandardDensity,
			ReducedDensity:  packing.ReducedDensity,
			ReducedEvery:    packing.ReducedEvery,
		},
		Fertility: FertilityConfig{
			BadBelowPercent:  domainservices.DefaultBadBelowPercent,
			WarnBelowPercent: domainservices.DefaultWarnBelowPercent,
			DefaultCapacity:  domainservices.DefaultTrolleyCapacity,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// An empty path returns the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate fails fast on constants the engine cannot run with
func (c *Config) Validate() error {
	if err := c.PackingConfig().Validate(); err != nil {
		return err
	}

	f := c.Fertility
	if f.BadBelowPercent < 0 || f.WarnBelowPercent > 100 {
		return fmt.Errorf("fertility thresholds must lie within 0-100, got bad<%v warn<%v", f.BadBelowPercent, f.WarnBelowPercent)
	}
	if f.BadBelowPercent > f.WarnBelowPercent {
		return fmt.Errorf("bad threshold (%v) cannot exceed warn threshold (%v)", f.BadBelowPercent, f.WarnBelowPercent)
	}
	if f.DefaultCapacity <= 0 {
		return fmt.Errorf("default trolley capacity must be positive, got %d", f.DefaultCapacity)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}

// PackingConfig converts the packing section for the packing engine
func (c *Config) PackingConfig() services.PackingConfig {
	return services.PackingConfig{
		BoxesPerTrolley: c.Packing.BoxesPerTrolley,
		StandardDensity: c.Packing.StandardDensity,
		ReducedDensity:  c.Packing.ReducedDensity,
		ReducedEvery:    c.Packing.ReducedEvery,
	}
}

// Classifier builds the fertility classifier for the fertility section
func (c *Config) Classifier() *domainservices.FertilityClassifier {
	return domainservices.NewFertilityClassifierWithThresholds(
		c.Fertility.BadBelowPercent,
		c.Fertility.WarnBelowPercent,
		c.Fertility.DefaultCapacity,
	)
}
