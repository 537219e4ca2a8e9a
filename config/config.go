package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/logging"
)

// Config represents the complete run configuration
type Config struct {
	Input   InputConfig   `json:"input" yaml:"input"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// InputConfig controls how the instruction source is read
type InputConfig struct {
	Compression string `json:"compression" yaml:"compression"` // "auto", "none" or "xz"
}

// OutputConfig controls the account report
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "csv" or "org"
	// Precision is the number of fractional digits printed; -1 prints
	// amounts exactly as computed.
	Precision int  `json:"precision" yaml:"precision"`
	Summary   bool `json:"summary" yaml:"summary"`
}

// JournalConfig contains audit journal parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

const maxPrecision = 28

// LoadFromFile loads configuration from a file (JSON or YAML). Fields
// missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Input.Compression {
	case feed.CompressionAuto, feed.CompressionNone, feed.CompressionXZ:
	default:
		return fmt.Errorf("input.compression must be 'auto', 'none' or 'xz'")
	}
	if c.Output.Format != "csv" && c.Output.Format != "org" {
		return fmt.Errorf("output.format must be 'csv' or 'org'")
	}
	if c.Output.Precision < -1 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("output.precision must be between -1 and %d", maxPrecision)
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal dir required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Compression: feed.CompressionAuto,
		},
		Output: OutputConfig{
			Format:    "csv",
			Precision: 4,
		},
		Journal: JournalConfig{
			Type:   "none",
			Dir:    "./journal",
			DBPath: "./payments.sqlite",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
