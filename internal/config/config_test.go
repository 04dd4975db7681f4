package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error = %v", err)
	}
	if cfg != DefaultBlockfallConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultBlockfallConfig())
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultBlockfallConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".blockfall", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blockfall.yaml"), []byte("board:\n  width: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("Board.Width = %d, want 12", cfg.Board.Width)
	}
}

func TestLoadCustomPathMergesDefaults(t *testing.T) {
	path := writeConfig(t, "gameplay:\n  start_level: 4\n  tspin_detection: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gameplay.StartLevel != 4 {
		t.Errorf("StartLevel = %d, want 4", cfg.Gameplay.StartLevel)
	}
	if cfg.Gameplay.TSpinDetection {
		t.Error("TSpinDetection = true, want false")
	}
	if cfg.Board != DefaultBlockfallConfig().Board {
		t.Errorf("Board = %+v, want defaults", cfg.Board)
	}
}

func TestLoadCustomPathAppliesPreset(t *testing.T) {
	path := writeConfig(t, "difficulty:\n  preset: hard\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gameplay.StartLevel != 10 {
		t.Errorf("StartLevel = %d, want 10", cfg.Gameplay.StartLevel)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		invalid bool
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), false},
		{"bad yaml", writeConfig(t, "board: [1, 2"), false},
		{"bad value", writeConfig(t, "board:\n  width: 2\n"), true},
		{"bad preset", writeConfig(t, "difficulty:\n  preset: insane\n"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", got, tc.invalid, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockfallConfig)
	}{
		{"narrow board", func(c *BlockfallConfig) { c.Board.Width = 3 }},
		{"short board", func(c *BlockfallConfig) { c.Board.Height = 0 }},
		{"no buffer", func(c *BlockfallConfig) { c.Board.BufferRows = 0 }},
		{"zero lock delay", func(c *BlockfallConfig) { c.Timing.LockDelay = 0 }},
		{"negative resets", func(c *BlockfallConfig) { c.Timing.MaxLockResets = -1 }},
		{"negative lifetime", func(c *BlockfallConfig) { c.Timing.MaxPieceLifetime = -1 }},
		{"negative clear ticks", func(c *BlockfallConfig) { c.Timing.LineClearTicks = -1 }},
		{"negative drop points", func(c *BlockfallConfig) { c.Scoring.HardDropPoints = -2 }},
		{"level zero", func(c *BlockfallConfig) { c.Gameplay.StartLevel = 0 }},
		{"negative lines per level", func(c *BlockfallConfig) { c.Gameplay.LinesPerLevel = -1 }},
		{"unknown preset", func(c *BlockfallConfig) { c.Difficulty.Preset = "brutal" }},
	}

	if err := DefaultBlockfallConfig().Validate(); err != nil {
		t.Fatalf("defaults Validate() error = %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		startLevel    int
		linesPerLevel int
	}{
		{DifficultyEasy, 1, 10},
		{DifficultyNormal, 5, 10},
		{DifficultyHard, 10, 10},
		{DifficultyFixed, 3, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			cfg.Gameplay.StartLevel = 3
			ApplyPreset(&cfg, tc.preset)
			if cfg.Gameplay.StartLevel != tc.startLevel {
				t.Errorf("StartLevel = %d, want %d", cfg.Gameplay.StartLevel, tc.startLevel)
			}
			if cfg.Gameplay.LinesPerLevel != tc.linesPerLevel {
				t.Errorf("LinesPerLevel = %d, want %d", cfg.Gameplay.LinesPerLevel, tc.linesPerLevel)
			}
		})
	}
}

func TestLevelProgression(t *testing.T) {
	p := NewLevelProgression(GameplayConfig{StartLevel: 3, LinesPerLevel: 10})

	tests := []struct {
		lines, level, toNext int
	}{
		{0, 3, 10},
		{9, 3, 1},
		{10, 4, 10},
		{25, 5, 5},
	}
	for _, tc := range tests {
		if got := p.Level(tc.lines); got != tc.level {
			t.Errorf("Level(%d) = %d, want %d", tc.lines, got, tc.level)
		}
		if got := p.LinesToNext(tc.lines); got != tc.toNext {
			t.Errorf("LinesToNext(%d) = %d, want %d", tc.lines, got, tc.toNext)
		}
	}

	fixed := NewLevelProgression(GameplayConfig{StartLevel: 0, LinesPerLevel: 0})
	if fixed.Enabled() || fixed.Level(100) != 1 || fixed.LinesToNext(5) != 0 {
		t.Errorf("fixed progression = %+v, want level 1 without progression", fixed)
	}
}
