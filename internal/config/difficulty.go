package config

// LevelProgression maps cleared lines to a level.
type LevelProgression struct {
	StartLevel    int
	LinesPerLevel int // 0 keeps the level fixed
}

// NewLevelProgression creates a progression from gameplay settings.
func NewLevelProgression(cfg GameplayConfig) LevelProgression {
	start := cfg.StartLevel
	if start < 1 {
		start = 1
	}
	return LevelProgression{StartLevel: start, LinesPerLevel: cfg.LinesPerLevel}
}

// Enabled reports whether the level advances with cleared lines.
func (p LevelProgression) Enabled() bool {
	return p.LinesPerLevel > 0
}

// Level returns the level after the given number of cleared lines.
func (p LevelProgression) Level(lines int) int {
	if !p.Enabled() || lines < 0 {
		return p.StartLevel
	}
	return p.StartLevel + lines/p.LinesPerLevel
}

// LinesToNext returns how many more lines are needed for the next level,
// or 0 when progression is disabled.
func (p LevelProgression) LinesToNext(lines int) int {
	if !p.Enabled() {
		return 0
	}
	if lines < 0 {
		lines = 0
	}
	return p.LinesPerLevel - lines%p.LinesPerLevel
}
