// =============================================================================
// txcompare - Configuration Module
// =============================================================================
//
// Optional YAML configuration for the CLI shell. Everything has a working
// default, so the tool runs without any config file; an explicitly passed
// path that does not exist is an error, while a missing file at the default
// location silently falls back to the defaults.
//
// The format registry is deliberately not configurable: the supported format
// set is fixed at build time.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ypbank/txcompare/internal/record"
)

// DefaultPath is the config location probed when --config is not given.
const DefaultPath = "config.yaml"

// Config holds the application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Compare  CompareConfig  `yaml:"compare"`
	Currency CurrencyConfig `yaml:"currency"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". The --verbose flag
	// overrides it to "debug".
	Level string `yaml:"level"`
}

// CompareConfig controls the comparison pipeline.
type CompareConfig struct {
	// Sequential disables the concurrent decode of the two inputs. Purely a
	// scheduling choice; results are identical either way.
	Sequential bool `yaml:"sequential"`

	// ReportAll makes compare report every divergence instead of only the
	// first, as if --all were always passed.
	ReportAll bool `yaml:"report_all"`

	// Format1 and Format2 are the per-side format identifiers assumed when
	// --format1/--format2 are not passed on the command line.
	Format1 string `yaml:"format1"`
	Format2 string `yaml:"format2"`
}

// CurrencyConfig controls canonicalization of formats without a currency
// column.
type CurrencyConfig struct {
	// Default overrides the currency assumed for records decoded from
	// formats that carry no currency of their own. Empty keeps the built-in
	// default.
	Default string `yaml:"default"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration from path. When path is DefaultPath and the
// file does not exist, the defaults are returned instead of an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}

	if c.Currency.Default != "" {
		if _, err := record.NormalizeCurrency(c.Currency.Default); err != nil {
			return fmt.Errorf("invalid default currency: %w", err)
		}
	}
	return nil
}
