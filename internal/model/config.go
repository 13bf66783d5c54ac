package model

import (
	"fmt"
	"time"
)

// EngineConfig is the tunable configuration of the layout, import and playback engine.
type EngineConfig struct {
	Playback PlaybackConfig
	Layout   LayoutConfig
	Import   ImportConfig
}

// PlaybackConfig configures the schedule playback.
type PlaybackConfig struct {
	Interval    time.Duration
	Theming     bool
	ActiveColor [4]float64
}

// LayoutConfig configures the pixel geometry of the timeline.
type LayoutConfig struct {
	Width     float64
	RowHeight float64
	BarHeight float64
}

// ImportConfig configures the schedule importer. Each column has the list of
// header names that are accepted for it, in priority order.
type ImportConfig struct {
	Columns map[string][]string
}

// DefaultEngineConfig returns the engine configuration used when none is provided.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Playback: PlaybackConfig{
			Interval:    500 * time.Millisecond,
			Theming:     true,
			ActiveColor: [4]float64{0.0, 0.55, 1.0, 0.7},
		},
		Layout: LayoutConfig{
			Width:     1000,
			RowHeight: 28,
			BarHeight: 18,
		},
	}
}

// Validate validates the engine configuration.
func (c EngineConfig) Validate() error {
	if c.Playback.Interval <= 0 {
		return fmt.Errorf("playback interval must be positive: %w", ErrNotValid)
	}
	for _, v := range c.Playback.ActiveColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("playback color components must be between 0 and 1: %w", ErrNotValid)
		}
	}
	if c.Layout.Width <= 0 || c.Layout.RowHeight <= 0 || c.Layout.BarHeight <= 0 {
		return fmt.Errorf("layout sizes must be positive: %w", ErrNotValid)
	}
	if c.Layout.BarHeight > c.Layout.RowHeight {
		return fmt.Errorf("bar height can't be bigger than row height: %w", ErrNotValid)
	}
	return nil
}
