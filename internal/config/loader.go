package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "blockfall.yaml"

// Load loads blockfall configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml -> ./configs/blockfall.yaml -> embedded default
//
// Files only need to set the keys they change; everything else keeps its
// default. A preset named in the file is applied before returning.
func Load(customPath string) (BlockfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults and validates the result.
func parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, err
	}
	if cfg.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(cfg.Difficulty.Preset)); err != nil {
			return BlockfallConfig{}, err
		}
		ApplyPreset(&cfg, cfg.Difficulty.Preset)
	}
	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if IsFixedPreset(preset) {
		cfg.Gameplay.LinesPerLevel = 0
		return
	}
	if lvl := StartLevelForPreset(preset); lvl > 0 {
		cfg.Gameplay.StartLevel = lvl
	}

	// Harder presets also shorten the lock delay.
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelay = 0.75
	case DifficultyHard:
		cfg.Timing.LockDelay = 0.4
	}
}
