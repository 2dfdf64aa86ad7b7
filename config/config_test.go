package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Extraction.HeaderRows)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 50.0, cfg.OCR.MinConfidence)
	assert.Equal(t, 0.5, cfg.Borderless.MinConfidence)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
workers = 4

[extraction]
implicit_rows = true
borderless_tables = true

[borderless]
min_confidence = 0.7

[ocr]
enabled = true
language = "eng+fra"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Extraction.ImplicitRows)
	assert.True(t, cfg.Extraction.BorderlessTables)
	assert.False(t, cfg.Extraction.BorderlessHeaders)
	assert.Equal(t, 1, cfg.Extraction.HeaderRows, "absent keys keep their default")
	assert.Equal(t, 0.7, cfg.Borderless.MinConfidence)
	assert.Equal(t, 2.0, cfg.Borderless.MinGap)
	assert.Equal(t, "eng+fra", cfg.OCR.Language)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
log_level: debug
extraction:
  borderless_headers: true
  header_rows: 2
ocr:
  min_confidence: 75
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Extraction.BorderlessHeaders)
	assert.Equal(t, 2, cfg.Extraction.HeaderRows)
	assert.Equal(t, 75.0, cfg.OCR.MinConfidence)
	assert.Equal(t, "eng", cfg.OCR.Language)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.ini", "workers=2"))
		assert.True(t, errors.Is(err, ErrUnknownFormat), "got %v", err)
	})
	t.Run("bad TOML", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.toml", "workers = ["))
		assert.Error(t, err)
	})
	t.Run("bad YAML", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.yaml", "workers: [1"))
		assert.Error(t, err)
	})
	t.Run("out of range", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.toml", "[borderless]\nmin_confidence = 2.0\n"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative header rows", func(c *Config) { c.Extraction.HeaderRows = -1 }},
		{"ocr confidence above 100", func(c *Config) { c.OCR.MinConfidence = 101 }},
		{"negative gap", func(c *Config) { c.Borderless.MinGap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTables(t *testing.T) {
	cfg := Default()
	cfg.Borderless.MinConfidence = 0.8
	cfg.Borderless.MinGap = 3

	tc := cfg.Tables()
	assert.Equal(t, 0.8, tc.MinConfidence)
	assert.Equal(t, 3.0, tc.MinBorderlessGap)
	assert.Equal(t, 2, tc.MinRows)
}

func TestDefaultPath(t *testing.T) {
	// Only the shape of the result can be checked without touching the
	// user's configuration directories
	if path := DefaultPath(); path != "" {
		assert.True(t, filepath.IsAbs(path), path)
	}
}
