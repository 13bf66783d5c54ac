package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/fourd/internal/model"
)

// ConfigYAMLRepository loads the engine configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads an engine configuration from a YAML file and returns a validated domain model.
// Missing settings use the defaults.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.EngineConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.EngineConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.EngineConfig{}, ctx.Err()
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.EngineConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m, err := cfg.toModel()
	if err != nil {
		return model.EngineConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := m.Validate(); err != nil {
		return model.EngineConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// EngineConfig represents the YAML structure for the engine configuration.
type EngineConfig struct {
	Playback PlaybackConfig `yaml:"playback"`
	Layout   LayoutConfig   `yaml:"layout"`
	Import   ImportConfig   `yaml:"import"`
}

// PlaybackConfig represents the YAML structure for the playback configuration.
type PlaybackConfig struct {
	Interval    string    `yaml:"interval"`
	Theming     *bool     `yaml:"theming"`
	ActiveColor []float64 `yaml:"active_color"`
}

// LayoutConfig represents the YAML structure for the timeline geometry.
type LayoutConfig struct {
	Width     float64 `yaml:"width"`
	RowHeight float64 `yaml:"row_height"`
	BarHeight float64 `yaml:"bar_height"`
}

// ImportConfig represents the YAML structure for the importer column names.
type ImportConfig struct {
	Columns map[string][]string `yaml:"columns"`
}

func (c EngineConfig) toModel() (model.EngineConfig, error) {
	cfg := model.DefaultEngineConfig()

	if c.Playback.Interval != "" {
		d, err := time.ParseDuration(c.Playback.Interval)
		if err != nil {
			return cfg, fmt.Errorf("playback interval: %w", err)
		}
		cfg.Playback.Interval = d
	}
	if c.Playback.Theming != nil {
		cfg.Playback.Theming = *c.Playback.Theming
	}
	if c.Playback.ActiveColor != nil {
		if len(c.Playback.ActiveColor) != 4 {
			return cfg, fmt.Errorf("playback active color requires 4 components (rgba), got %d", len(c.Playback.ActiveColor))
		}
		copy(cfg.Playback.ActiveColor[:], c.Playback.ActiveColor)
	}

	if c.Layout.Width != 0 {
		cfg.Layout.Width = c.Layout.Width
	}
	if c.Layout.RowHeight != 0 {
		cfg.Layout.RowHeight = c.Layout.RowHeight
	}
	if c.Layout.BarHeight != 0 {
		cfg.Layout.BarHeight = c.Layout.BarHeight
	}

	if len(c.Import.Columns) > 0 {
		cfg.Import.Columns = c.Import.Columns
	}

	return cfg, nil
}
