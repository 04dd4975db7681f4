package blockfall

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateClearing    GameStateType = "clearing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Mode       string
	State      GameStateType
	ClearTicks int
	Engine     engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.screenTooSmall:
		state = StatePausedSmall
	case g.ctrl.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.clearTicks > 0:
		state = StateClearing
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       g.ID(),
		State:      state,
		ClearTicks: g.clearTicks,
		Engine:     g.ctrl.Snapshot(),
	}
}

// saveVersion is bumped when the saved game layout changes incompatibly.
const saveVersion = 1

// ErrIncompatibleSave is returned by LoadState for saves this game cannot
// continue.
var ErrIncompatibleSave = errors.New("blockfall: incompatible saved game")

// savedGame is the JSON document written by SaveState.
type savedGame struct {
	Version    int             `json:"version"`
	Mode       string          `json:"mode"`
	Tick       uint64          `json:"tick"`
	Seed       int64           `json:"seed"`
	BufferRows int             `json:"buffer_rows"`
	ClearTicks int             `json:"clear_ticks"`
	Engine     engine.Snapshot `json:"engine"`
}

// SaveState serializes the running game.
func (g *Game) SaveState() ([]byte, error) {
	if g.ctrl == nil {
		return nil, errors.New("blockfall: save state: game not started")
	}
	data, err := json.Marshal(savedGame{
		Version:    saveVersion,
		Mode:       g.ID(),
		Tick:       g.tick,
		Seed:       g.runtime.Seed,
		BufferRows: g.board.BufferRows(),
		ClearTicks: g.clearTicks,
		Engine:     g.ctrl.Snapshot(),
	})
	if err != nil {
		return nil, fmt.Errorf("blockfall: save state: %w", err)
	}
	return data, nil
}

// LoadState replaces the running game with a saved one. Reset must have
// been called first. The loaded game starts paused.
//
// Piece order is not saved: pieces after the queued one come from a fresh
// generator seeded from the saved seed and tick.
func (g *Game) LoadState(data []byte) error {
	var s savedGame
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("blockfall: load state: %w", err)
	}
	if s.Version != saveVersion {
		return fmt.Errorf("%w: version %d", ErrIncompatibleSave, s.Version)
	}
	if s.Mode != g.ID() {
		return fmt.Errorf("%w: saved mode %q, running %q", ErrIncompatibleSave, s.Mode, g.ID())
	}
	if s.Engine.Width < 1 || s.Engine.Height < 1 {
		return fmt.Errorf("%w: board %dx%d", ErrIncompatibleSave, s.Engine.Width, s.Engine.Height)
	}
	if s.BufferRows < 1 || s.BufferRows >= s.Engine.Height {
		return fmt.Errorf("%w: buffer rows %d", ErrIncompatibleSave, s.BufferRows)
	}

	board, ctrl, progression := g.board, g.ctrl, g.progression
	g.newEngine(s.Engine.Width, s.Engine.Height, s.BufferRows, s.Seed+int64(s.Tick))
	if err := g.ctrl.Restore(s.Engine); err != nil {
		g.board, g.ctrl, g.progression = board, ctrl, progression
		return fmt.Errorf("blockfall: load state: %w", err)
	}
	g.progression.StartLevel = s.Engine.StartLevel

	g.tick = s.Tick
	g.clearTicks = s.ClearTicks
	g.flashRows = nil
	if pending, ok := g.ctrl.Pending(); ok {
		g.flashRows = pending.Rows
		if g.clearTicks <= 0 {
			g.clearTicks = 1
		}
	}
	g.paused = true
	g.event = ""
	g.eventTicks = 0

	g.Resize(g.runtime.ScreenW, g.runtime.ScreenH)
	return nil
}
