package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:      10,
			Height:     20,
			BufferRows: 2,
		},
		Timing: TimingConfig{
			LockDelay:        0.5,
			MaxLockResets:    15,
			MaxPieceLifetime: 30,
			LineClearTicks:   18, // 0.3s at 60fps
		},
		Scoring: ScoringConfig{
			SoftDropPoints: 1,
			HardDropPoints: 2,
		},
		Gameplay: GameplayConfig{
			StartLevel:     1,
			LinesPerLevel:  10,
			TSpinDetection: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlockfallYAML
}
