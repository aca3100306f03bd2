// Package config holds the engine's tunables: sampling sizes, seeds, the
// capacity strategy and presentation limits. Seeds are explicit inputs so
// every analysis run is reproducible.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the package-wide validator instance.
var validate = validator.New()

// CentralityConfig tunes the betweenness computations.
type CentralityConfig struct {
	// Pivots is the source-sampling size k; 0 computes the exact result.
	Pivots int   `yaml:"pivots" validate:"gte=0"`
	Seed   int64 `yaml:"seed"`
}

// RobustnessConfig tunes the percolation runs.
type RobustnessConfig struct {
	// Targets is the attack length N, shared by the targeted and random
	// runs so their curves compare step for step.
	Targets int   `yaml:"targets" validate:"gt=0"`
	Seed    int64 `yaml:"seed"`
}

// CommunityConfig tunes community detection.
type CommunityConfig struct {
	Seed int64 `yaml:"seed"`
}

// CapacityConfig selects the min-cut capacity strategy.
type CapacityConfig struct {
	Model string `yaml:"model" validate:"oneof=inverse-length unit"`
}

// Config is the full engine configuration.
type Config struct {
	LogLevel    string           `yaml:"log_level" validate:"oneof=debug info warn error"`
	TopHubs     int              `yaml:"top_hubs" validate:"gt=0"`
	Centrality  CentralityConfig `yaml:"centrality"`
	Robustness  RobustnessConfig `yaml:"robustness"`
	Communities CommunityConfig  `yaml:"communities"`
	Capacity    CapacityConfig   `yaml:"capacity"`
}

// Default returns the production defaults: 1000 centrality pivots, 30 attack
// targets, seed 42 throughout, inverse-length capacities.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		TopHubs:     10,
		Centrality:  CentralityConfig{Pivots: 1000, Seed: 42},
		Robustness:  RobustnessConfig{Targets: 30, Seed: 42},
		Communities: CommunityConfig{Seed: 42},
		Capacity:    CapacityConfig{Model: "inverse-length"},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
