// Package config loads wordgen settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

// Config holds persistent wordgen settings.
type Config struct {
	Generate Generate `yaml:"generate"`
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
}

// Generate mirrors generator.Options.
type Generate struct {
	Count               int     `yaml:"count"`
	Seed                uint64  `yaml:"seed"`
	ContinueProbability float64 `yaml:"continue_probability"`
	FailureFactor       int     `yaml:"failure_factor"`
	MaxStartAttempts    int     `yaml:"max_start_attempts"`
	MaxWalkSteps        int     `yaml:"max_walk_steps"`
}

// Log selects the logger level and handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Server configures `wordgen serve`.
type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generate: Generate{
			Count:               1,
			ContinueProbability: generator.DefaultContinueProbability,
			FailureFactor:       generator.DefaultFailureFactor,
			MaxStartAttempts:    generator.DefaultMaxStartAttempts,
			MaxWalkSteps:        generator.DefaultMaxWalkSteps,
		},
		Log:    Log{Level: "info", Format: "text"},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordgen.yaml"
	}
	return filepath.Join(home, ".wordgen.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the generator cannot work with.
func (c Config) Validate() error {
	g := c.Generate
	if g.Count < 1 {
		return fmt.Errorf("generate.count must be greater than zero, got %d", g.Count)
	}
	if g.ContinueProbability < 0 || g.ContinueProbability >= 1 {
		return fmt.Errorf("generate.continue_probability must be in [0, 1), got %v", g.ContinueProbability)
	}
	if g.FailureFactor < 1 {
		return fmt.Errorf("generate.failure_factor must be positive, got %d", g.FailureFactor)
	}
	if g.MaxStartAttempts < 1 || g.MaxWalkSteps < 1 {
		return fmt.Errorf("generate limits must be positive")
	}
	return nil
}

// Options converts the generate section into generator options.
func (g Generate) Options() generator.Options {
	o := generator.DefaultOptions()
	o.Seed = g.Seed
	o.ContinueProbability = g.ContinueProbability
	o.FailureFactor = g.FailureFactor
	o.MaxStartAttempts = g.MaxStartAttempts
	o.MaxWalkSteps = g.MaxWalkSteps
	return o
}
