// Package config loads gridscan settings from TOML or YAML files.
//
// A missing file is not an error: the defaults apply. Keys absent from a
// file keep their default value.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/gridscan/ocr"
	"github.com/tsawler/gridscan/tables"
)

const appName = "gridscan"

// ErrUnknownFormat is returned for a file that is neither TOML nor YAML
var ErrUnknownFormat = errors.New("unknown configuration format")

// Config holds every setting of a gridscan run
type Config struct {
	Extraction ExtractionConfig `toml:"extraction" yaml:"extraction"`
	Borderless BorderlessConfig `toml:"borderless" yaml:"borderless"`
	OCR        OCRConfig        `toml:"ocr" yaml:"ocr"`

	// Workers is the number of pages processed in parallel, 0 for one per CPU
	Workers  int    `toml:"workers" yaml:"workers"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// ExtractionConfig selects the extraction passes
type ExtractionConfig struct {
	ImplicitRows      bool `toml:"implicit_rows" yaml:"implicit_rows"`
	BorderlessTables  bool `toml:"borderless_tables" yaml:"borderless_tables"`
	BorderlessHeaders bool `toml:"borderless_headers" yaml:"borderless_headers"`
	HeaderRows        int  `toml:"header_rows" yaml:"header_rows"`
}

// BorderlessConfig holds the borderless detector settings. MinGap is the
// narrowest whitespace column separating two table columns, in characters.
type BorderlessConfig struct {
	MinConfidence      float64 `toml:"min_confidence" yaml:"min_confidence"`
	AlignmentTolerance float64 `toml:"alignment_tolerance" yaml:"alignment_tolerance"`
	MinGap             float64 `toml:"min_gap" yaml:"min_gap"`
}

// OCRConfig holds the text recognition settings. Words with a confidence
// below MinConfidence (0 to 100) are ignored.
type OCRConfig struct {
	Enabled       bool    `toml:"enabled" yaml:"enabled"`
	Language      string  `toml:"language" yaml:"language"`
	MinConfidence float64 `toml:"min_confidence" yaml:"min_confidence"`
}

// Default returns the default configuration
func Default() *Config {
	t := tables.DefaultConfig()
	return &Config{
		Extraction: ExtractionConfig{
			HeaderRows: 1,
		},
		Borderless: BorderlessConfig{
			MinConfidence:      t.MinConfidence,
			AlignmentTolerance: t.AlignmentTolerance,
			MinGap:             t.MinBorderlessGap,
		},
		OCR: OCRConfig{
			Language:      "eng",
			MinConfidence: ocr.DefaultMinConfidence,
		},
		LogLevel: "info",
	}
}

// Load reads a configuration file over the defaults. The format follows
// the extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the first configuration file found in the XDG
// config directories, or "" when there is none.
func DefaultPath() string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		if path, err := xdg.SearchConfigFile(filepath.Join(appName, name)); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks that every setting is in range
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Extraction.HeaderRows < 0 {
		return fmt.Errorf("header_rows must be >= 0, got %d", c.Extraction.HeaderRows)
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 100 {
		return fmt.Errorf("ocr min_confidence must be between 0 and 100, got %g", c.OCR.MinConfidence)
	}
	return c.Tables().Validate()
}

// Tables returns the borderless detection settings
func (c *Config) Tables() tables.Config {
	t := tables.DefaultConfig()
	t.MinConfidence = c.Borderless.MinConfidence
	t.AlignmentTolerance = c.Borderless.AlignmentTolerance
	t.MinBorderlessGap = c.Borderless.MinGap
	return t
}
