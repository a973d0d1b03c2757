// Package config provides Viper-based configuration loading for the
// simulator CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cifi-tools/huntersim/internal/sim/runner"
)

// SimulationConfig holds batch execution settings.
type SimulationConfig struct {
	// Runs is the number of independent runs per build.
	Runs int `mapstructure:"runs"`
	// Workers bounds parallel dispatch; 0 or negative runs sequentially.
	Workers int `mapstructure:"workers"`
	// Seed is the batch seed; 0 draws a fresh seed per batch.
	Seed uint64 `mapstructure:"seed"`
	// StageCeiling caps each run's stage count; 0 means defeat-only.
	StageCeiling int `mapstructure:"stage_ceiling"`
	// MaxEvents bounds a single encounter; 0 uses the engine default.
	MaxEvents int `mapstructure:"max_events"`
}

// BatchConfig maps the simulation settings onto a runner batch.
//
// Postcondition: Returns a BatchConfig the runner can validate and run.
func (s SimulationConfig) BatchConfig() runner.BatchConfig {
	return runner.BatchConfig{
		Runs:      s.Runs,
		Workers:   s.Workers,
		Seed:      s.Seed,
		Ceiling:   s.StageCeiling,
		MaxEvents: s.MaxEvents,
	}
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Trace enables per-event combat trace logging at debug level.
	Trace bool `mapstructure:"trace"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Runs < 1 {
		errs = append(errs, fmt.Sprintf("simulation.runs must be >= 1, got %d", s.Runs))
	}
	if s.Workers > runner.MaxWorkers {
		errs = append(errs, fmt.Sprintf("simulation.workers must not exceed %d, got %d", runner.MaxWorkers, s.Workers))
	}
	if s.StageCeiling < 0 {
		errs = append(errs, fmt.Sprintf("simulation.stage_ceiling must be >= 0, got %d", s.StageCeiling))
	}
	if s.MaxEvents < 0 {
		errs = append(errs, fmt.Sprintf("simulation.max_events must be >= 0, got %d", s.MaxEvents))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with HUNTERSIM_ prefix
	v.SetEnvPrefix("HUNTERSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns a Viper instance preloaded with the default settings,
// ready for flag binding.
func Default() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HUNTERSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.runs", 100)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.stage_ceiling", 0)
	v.SetDefault("simulation.max_events", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.trace", false)
}
