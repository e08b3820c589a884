package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level bankcore.yaml configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Interest InterestConfig `yaml:"interest"`
	Log      LogConfig      `yaml:"log"`
}

// Duration wraps time.Duration so YAML can use "5s" syntax.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML emits a Go duration string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// StoreConfig selects and parameterizes the ledger store.
type StoreConfig struct {
	Driver  string   `yaml:"driver"` // "postgres" or "memory"
	DSN     string   `yaml:"dsn,omitempty"`
	Timeout Duration `yaml:"timeout"`
}

// InterestConfig holds interest accrual policy.
type InterestConfig struct {
	SavingsRate string `yaml:"savings_rate"` // decimal string, e.g. "0.02"
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a bankcore.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Store.Timeout <= 0 {
		cfg.Store.Timeout = Duration(5 * time.Second)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:  "memory",
			Timeout: Duration(5 * time.Second),
		},
		Interest: InterestConfig{
			SavingsRate: "0.02",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
