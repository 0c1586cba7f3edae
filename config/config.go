// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Jobs is the number of parallel parse and compare workers.
	Jobs int `envconfig:"LAAST_JOBS" yaml:"jobs"`

	// MaxBytes skips source files larger than this. Negative disables the limit.
	MaxBytes int64 `envconfig:"LAAST_MAX_BYTES" yaml:"max_bytes"`

	// Strict rejects source files that contain syntax errors.
	Strict bool `envconfig:"LAAST_STRICT" yaml:"strict"`

	TED      TEDConfig      `yaml:"ted"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy" ignored:"true"`
}

// TEDConfig selects the tree edit distance implementation.
type TEDConfig struct {
	// Binary is an external tree edit distance executable. When empty the
	// in-process implementation is used.
	Binary  string        `envconfig:"LAAST_TED_BINARY" yaml:"binary"`
	Timeout time.Duration `envconfig:"LAAST_TED_TIMEOUT" yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LAAST_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"LAAST_LOG_FORMAT" yaml:"format"`
}

// OutputConfig holds result formatting settings.
type OutputConfig struct {
	Format  string `envconfig:"LAAST_OUTPUT_FORMAT" yaml:"format"`
	Compact bool   `envconfig:"LAAST_OUTPUT_COMPACT" yaml:"compact"`
}

// TaxonomyConfig extends the built-in taxonomy. It is only read from the
// config file.
type TaxonomyConfig struct {
	Types map[string]string `yaml:"types"`
	Noise []string          `yaml:"noise"`
}

// Load loads configuration from defaults, an optional YAML file and the
// environment, in increasing order of priority.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Jobs = runtime.NumCPU()
	cfg.MaxBytes = 2 * 1024 * 1024
	cfg.TED = TEDConfig{
		Timeout: 30 * time.Second,
	}
	cfg.Log = LogConfig{
		Level:  "warn",
		Format: "text",
	}
	cfg.Output = OutputConfig{
		Format: "json",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.TED.Timeout < 0 {
		return fmt.Errorf("ted timeout must not be negative, got %s", c.TED.Timeout)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}

	for raw, canonical := range c.Taxonomy.Types {
		if raw == "" || canonical == "" {
			return fmt.Errorf("taxonomy type mapping %q -> %q has an empty side", raw, canonical)
		}
	}
	for _, kind := range c.Taxonomy.Noise {
		if kind == "" {
			return fmt.Errorf("taxonomy noise kind must not be empty")
		}
	}
	return nil
}
