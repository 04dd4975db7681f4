// Package config provides YAML-based configuration loading and difficulty
// presets for blockfall.
package config

import (
	"errors"
	"fmt"
)

// BlockfallConfig contains all configuration for a blockfall game.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`      // visible rows
	BufferRows int `yaml:"buffer_rows"` // hidden spawn rows above the visible area
}

// TimingConfig defines lock delay and animation timing.
type TimingConfig struct {
	LockDelay        float64 `yaml:"lock_delay"`         // seconds
	MaxLockResets    int     `yaml:"max_lock_resets"`    // resets allowed while grounded
	MaxPieceLifetime float64 `yaml:"max_piece_lifetime"` // seconds, 0 disables
	LineClearTicks   int     `yaml:"line_clear_ticks"`   // frames the clear animation lasts
}

// ScoringConfig defines drop points.
type ScoringConfig struct {
	SoftDropPoints int `yaml:"soft_drop_points"`
	HardDropPoints int `yaml:"hard_drop_points"`
}

// GameplayConfig defines level progression and rule toggles.
type GameplayConfig struct {
	StartLevel     int  `yaml:"start_level"`
	LinesPerLevel  int  `yaml:"lines_per_level"`
	TSpinDetection bool `yaml:"tspin_detection"`
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// StartLevelForPreset returns the starting level for a difficulty preset.
// Fixed and unknown presets return 0, meaning "keep the configured level".
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
	}
}

// Validate rejects settings the engine cannot run with.
func (c BlockfallConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("%w: board.width %d is below 4", ErrInvalidConfig, c.Board.Width)
	case c.Board.Height < 4:
		return fmt.Errorf("%w: board.height %d is below 4", ErrInvalidConfig, c.Board.Height)
	case c.Board.BufferRows < 1:
		return fmt.Errorf("%w: board.buffer_rows %d is below 1", ErrInvalidConfig, c.Board.BufferRows)
	case c.Timing.LockDelay <= 0:
		return fmt.Errorf("%w: timing.lock_delay must be positive", ErrInvalidConfig)
	case c.Timing.MaxLockResets < 0:
		return fmt.Errorf("%w: timing.max_lock_resets %d is negative", ErrInvalidConfig, c.Timing.MaxLockResets)
	case c.Timing.MaxPieceLifetime < 0:
		return fmt.Errorf("%w: timing.max_piece_lifetime is negative", ErrInvalidConfig)
	case c.Timing.LineClearTicks < 0:
		return fmt.Errorf("%w: timing.line_clear_ticks %d is negative", ErrInvalidConfig, c.Timing.LineClearTicks)
	case c.Scoring.SoftDropPoints < 0 || c.Scoring.HardDropPoints < 0:
		return fmt.Errorf("%w: drop points must not be negative", ErrInvalidConfig)
	case c.Gameplay.StartLevel < 1:
		return fmt.Errorf("%w: gameplay.start_level %d is below 1", ErrInvalidConfig, c.Gameplay.StartLevel)
	case c.Gameplay.LinesPerLevel < 0:
		return fmt.Errorf("%w: gameplay.lines_per_level %d is negative", ErrInvalidConfig, c.Gameplay.LinesPerLevel)
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			return err
		}
	}
	return nil
}
