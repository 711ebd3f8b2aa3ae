package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Clean   CleanConfig   `yaml:"clean" envconfig:"CLEAN"`
	Macro   MacroConfig   `yaml:"macro" envconfig:"MACRO"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// CleanConfig contains the return outlier bounds applied by the REIT
// cleaning stage. Both bounds are inclusive: a return equal to either
// bound is retained.
type CleanConfig struct {
	ReturnMin float64 `yaml:"return_min" envconfig:"RETURN_MIN"`
	ReturnMax float64 `yaml:"return_max" envconfig:"RETURN_MAX" validate:"gtfield=ReturnMin"`
}

// MacroConfig controls the macro stage: which series to load and the
// deterministic synthetic fallback used when no raw series file exists.
type MacroConfig struct {
	Series         []string `yaml:"series" envconfig:"SERIES" validate:"min=1"`
	AllowSynthetic bool     `yaml:"allow_synthetic" envconfig:"ALLOW_SYNTHETIC"`
	SyntheticSeed  uint64   `yaml:"synthetic_seed" envconfig:"SYNTHETIC_SEED"`
	SyntheticStart string   `yaml:"synthetic_start" envconfig:"SYNTHETIC_START" validate:"datetime=2006-01"`
	SyntheticEnd   string   `yaml:"synthetic_end" envconfig:"SYNTHETIC_END" validate:"datetime=2006-01"`
}

// SyntheticPeriod parses the configured synthetic coverage into first-of-
// month timestamps. Validation guarantees the layout, so errors only occur
// on hand-built configs.
func (m MacroConfig) SyntheticPeriod() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", m.SyntheticStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid synthetic start: %w", err)
	}
	end, err := time.Parse("2006-01", m.SyntheticEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid synthetic end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("synthetic end %s before start %s", m.SyntheticEnd, m.SyntheticStart)
	}
	return start, end, nil
}

// Load loads configuration in precedence order: built-in defaults, then an
// optional YAML config file, then REITETL_* environment variables.
func Load() (*Config, error) {
	cfg := *Default()

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	// Environment variables override file values
	if err := envconfig.Process("REITETL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate normalizes the few free-form fields and runs struct validation
func (c *Config) validate() error {
	// Only JSON logs are supported; coerce rather than fail
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/pipeline.log"
	}

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, _, err := c.Macro.SyntheticPeriod(); err != nil {
		return err
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/pipeline.log",
		},
		Clean: CleanConfig{
			ReturnMin: -1.0,
			ReturnMax: 5.0,
		},
		Macro: MacroConfig{
			Series:         []string{"FEDFUNDS", "MORTGAGE30US", "CPIAUCSL", "UNRATE"},
			AllowSynthetic: true,
			SyntheticSeed:  42,
			SyntheticStart: "2004-01",
			SyntheticEnd:   "2024-12",
		},
	}
}
