// Package config provides YAML-based configuration loading for Chain
// Reaction: seat limits, board presets and cascade pacing.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/chain-reaction/internal/core"
)

// PresetAuto picks the largest preset that fits the terminal.
const PresetAuto = "auto"

// ChainReactionConfig contains all configuration for Chain Reaction.
type ChainReactionConfig struct {
	Players PlayersConfig `yaml:"players"`
	Grid    GridConfig    `yaml:"grid"`
	Pacing  PacingConfig  `yaml:"pacing"`
}

// PlayersConfig bounds the number of hot-seat players.
type PlayersConfig struct {
	Default int `yaml:"default"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
}

// GridConfig defines the board size and the terminal cell geometry.
type GridConfig struct {
	Preset     string       `yaml:"preset"` // "auto" or a preset name
	Presets    []GridPreset `yaml:"presets"`
	CellWidth  int          `yaml:"cell_width"`
	CellHeight int          `yaml:"cell_height"`
}

// GridPreset is a named board size.
type GridPreset struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PacingConfig defines how fast a cascade plays out on screen.
type PacingConfig struct {
	ExplosionDelayMs int `yaml:"explosion_delay_ms"`
	FlashMs          int `yaml:"flash_ms"`
}

// ExplosionDelay returns the delay between two explosions.
func (p PacingConfig) ExplosionDelay() time.Duration {
	return time.Duration(p.ExplosionDelayMs) * time.Millisecond
}

// FlashDuration returns how long an exploded cell stays highlighted.
func (p PacingConfig) FlashDuration() time.Duration {
	return time.Duration(p.FlashMs) * time.Millisecond
}

var (
	// ErrUnknownPreset is returned when a grid preset name is not configured.
	ErrUnknownPreset = errors.New("unknown grid preset")
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// Validate checks the configuration for values the game cannot run with.
func (c ChainReactionConfig) Validate() error {
	p := c.Players
	switch {
	case p.Min < 2:
		return fmt.Errorf("%w: players.min must be at least 2, got %d", ErrInvalidConfig, p.Min)
	case p.Max > 9:
		return fmt.Errorf("%w: players.max must be at most 9, got %d", ErrInvalidConfig, p.Max)
	case p.Min > p.Max:
		return fmt.Errorf("%w: players.min %d exceeds players.max %d", ErrInvalidConfig, p.Min, p.Max)
	case p.Default < p.Min || p.Default > p.Max:
		return fmt.Errorf("%w: players.default %d outside [%d, %d]", ErrInvalidConfig, p.Default, p.Min, p.Max)
	}

	if c.Grid.CellWidth < 3 || c.Grid.CellHeight < 1 {
		return fmt.Errorf("%w: cell size %dx%d is too small", ErrInvalidConfig, c.Grid.CellWidth, c.Grid.CellHeight)
	}
	if len(c.Grid.Presets) == 0 {
		return fmt.Errorf("%w: no grid presets", ErrInvalidConfig)
	}
	for _, gp := range c.Grid.Presets {
		if gp.Name == "" || gp.Name == PresetAuto {
			return fmt.Errorf("%w: grid preset name %q is reserved or empty", ErrInvalidConfig, gp.Name)
		}
		if gp.Width < 1 || gp.Height < 1 || gp.Width*gp.Height < 2 {
			return fmt.Errorf("%w: grid preset %s is %dx%d", ErrInvalidConfig, gp.Name, gp.Width, gp.Height)
		}
	}
	if c.Grid.Preset != PresetAuto {
		if _, err := c.Preset(c.Grid.Preset); err != nil {
			return fmt.Errorf("%w: grid.preset: %w", ErrInvalidConfig, err)
		}
	}

	if c.Pacing.ExplosionDelayMs < 0 || c.Pacing.FlashMs < 0 {
		return fmt.Errorf("%w: pacing values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Preset looks a grid preset up by name.
func (c ChainReactionConfig) Preset(name string) (GridPreset, error) {
	for _, gp := range c.Grid.Presets {
		if gp.Name == name {
			return gp, nil
		}
	}
	return GridPreset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetFor returns the largest preset whose board, plus chromeH lines of
// HUD and footer, fits a screen of the given size. It reports false when
// no preset fits.
func (c ChainReactionConfig) PresetFor(screenW, screenH, chromeH int) (GridPreset, bool) {
	var best GridPreset
	found := false
	for _, gp := range c.Grid.Presets {
		layout := core.GridLayout{Rows: gp.Height, Cols: gp.Width, CellW: c.Grid.CellWidth, CellH: c.Grid.CellHeight}
		b := layout.Bounds()
		if b.W > screenW || b.H+chromeH > screenH {
			continue
		}
		if !found || gp.Width*gp.Height > best.Width*best.Height {
			best, found = gp, true
		}
	}
	return best, found
}

// Session is the set of values that start one game.
type Session struct {
	Players int
	Width   int
	Height  int
}

// Runtime builds the platform runtime config for a session.
func (c ChainReactionConfig) Runtime(s Session, screenW, screenH, tickRate int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = screenW, screenH
	if tickRate > 0 {
		rc.TickRate = tickRate
	}
	rc.Players = s.Players
	rc.GridW, rc.GridH = s.Width, s.Height
	rc.CellW, rc.CellH = c.Grid.CellWidth, c.Grid.CellHeight
	rc.ExplosionDelay = c.Pacing.ExplosionDelay()
	rc.FlashDuration = c.Pacing.FlashDuration()
	return rc
}
