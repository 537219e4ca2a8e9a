package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown compression",
			mutate:  func(c *Config) { c.Input.Compression = "zip" },
			wantErr: true,
			errMsg:  "input.compression must be",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Output.Format = "json" },
			wantErr: true,
			errMsg:  "output.format must be 'csv' or 'org'",
		},
		{
			name:    "negative precision",
			mutate:  func(c *Config) { c.Output.Precision = -2 },
			wantErr: true,
			errMsg:  "output.precision must be between -1 and 28",
		},
		{
			name:   "exact precision",
			mutate: func(c *Config) { c.Output.Precision = -1 },
		},
		{
			name:    "unknown journal",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name: "csv journal without dir",
			mutate: func(c *Config) {
				c.Journal.Type = "csv"
				c.Journal.Dir = ""
			},
			wantErr: true,
			errMsg:  "journal dir required for CSV type",
		},
		{
			name: "sqlite journal without path",
			mutate: func(c *Config) {
				c.Journal.Type = "sqlite"
				c.Journal.DBPath = ""
			},
			wantErr: true,
			errMsg:  "journal db_path required for SQLite type",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
			errMsg:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Output.Format = "org"
			cfg.Journal.Type = "sqlite"
			cfg.Journal.DBPath = "runs.db"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			// Save
			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			// Verify file exists
			_, err = os.Stat(path)
			require.NoError(t, err)

			// Load
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: org\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "org", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: mongo\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}
