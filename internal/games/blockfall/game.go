// Package blockfall adapts the falling-block rule engine to the platform's
// registry.Game interface: fixed-tick stepping, input mapping, the line clear
// animation, rendering and save/resume.
package blockfall

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-blockfall/internal/config"
	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
)

// Mode selects the rule set.
type Mode int

const (
	ModeMarathon Mode = iota // guideline rules with T-spin detection
	ModeClassic              // no T-spin detection
)

// Registered game IDs.
const (
	IDMarathon = "blockfall"
	IDClassic  = "blockfall_classic"
)

// eventTicks is how long a clear label stays in the HUD.
const eventTicks = 120

// Package-level settings from the CLI and menus.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel overrides the configured start level. 0 keeps the config.
func SetStartLevel(level int) {
	if level < 0 {
		level = 0
	}
	startLevel = level
}

// Game is one blockfall session.
type Game struct {
	mode       Mode
	startLevel int // per-instance override, wins over the package setting
	runtime    core.RuntimeConfig
	cfg        config.BlockfallConfig

	board       *engine.Grid
	ctrl        *engine.Controller
	progression config.LevelProgression
	dt          float64
	tick        uint64

	paused     bool
	clearTicks int   // remaining line clear animation ticks
	flashRows  []int // rows being cleared

	event      string
	eventTicks int

	layout         layout
	screenTooSmall bool
}

// New creates a Marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewClassic creates a game without T-spin detection.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register(IDMarathon, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return IDClassic
	}
	return IDMarathon
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Blockfall (Classic)"
	}
	return "Blockfall"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeClassic {
		return "Line clears only, no T-spin bonuses"
	}
	return "SRS rotation, T-spins, combos and back-to-back"
}

// SetStartLevel overrides the start level for this game only. Used by
// sessions that share the process, where the package setter would race.
func (g *Game) SetStartLevel(level int) {
	if level < 0 {
		level = 0
	}
	g.startLevel = level
}

// Resize recenters the game on a new screen size without restarting it.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	if g.board == nil {
		return
	}
	g.layout = computeLayout(g.board.Width(), g.board.Height()-g.board.BufferRows())
	g.screenTooSmall = width < g.layout.minW || height < g.layout.minH
	g.layout.center(width, height)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	level := g.startLevel
	if level == 0 {
		level = startLevel
	}
	g.cfg = loadConfig(g.mode, level)
	g.dt = 1 / float64(runtime.TickRate)

	g.newEngine(g.cfg.Board.Width, g.cfg.Board.Height+g.cfg.Board.BufferRows, g.cfg.Board.BufferRows,
		runtime.Seed)

	g.tick = 0
	g.paused = false
	g.clearTicks = 0
	g.flashRows = nil
	g.event = ""
	g.eventTicks = 0

	g.layout = computeLayout(g.board.Width(), g.cfg.Board.Height)
	g.screenTooSmall = runtime.ScreenW < g.layout.minW || runtime.ScreenH < g.layout.minH
	g.layout.center(runtime.ScreenW, runtime.ScreenH)
}

// loadConfig reads the config file and applies CLI overrides. A broken
// config file falls back to the defaults.
func loadConfig(mode Mode, level int) config.BlockfallConfig {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultBlockfallConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	if level > 0 {
		cfg.Gameplay.StartLevel = level
	}
	if mode == ModeClassic {
		cfg.Gameplay.TSpinDetection = false
	}
	return cfg
}

// newEngine builds a fresh board and controller.
func (g *Game) newEngine(width, height, buffer int, seed int64) {
	g.board = engine.NewGrid(width, height, buffer)
	g.progression = config.NewLevelProgression(g.cfg.Gameplay)
	g.ctrl = engine.NewController(
		g.board,
		engine.NewSRS(g.cfg.Gameplay.TSpinDetection),
		rand.New(rand.NewSource(seed)),
		engineOptions(g.cfg),
	)
}

func engineOptions(cfg config.BlockfallConfig) engine.Options {
	return engine.Options{
		Timing: engine.Timing{
			LockDelay:        cfg.Timing.LockDelay,
			MaxLockResets:    cfg.Timing.MaxLockResets,
			MaxPieceLifetime: cfg.Timing.MaxPieceLifetime,
		},
		StartLevel:     cfg.Gameplay.StartLevel,
		LinesPerLevel:  cfg.Gameplay.LinesPerLevel,
		SoftDropPoints: cfg.Scoring.SoftDropPoints,
		HardDropPoints: cfg.Scoring.HardDropPoints,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.ctrl.GameOver() {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.eventTicks > 0 {
		g.eventTicks--
	}

	var event string
	if g.clearTicks > 0 {
		g.clearTicks--
		if g.clearTicks == 0 {
			event = g.finishClear()
		}
		return core.StepResult{State: g.State(), Event: event}
	}

	g.applyInput(in)

	if _, ok := g.ctrl.Pending(); ok {
		event = g.startClear()
	}
	return core.StepResult{State: g.State(), Event: event}
}

// applyInput maps actions to controller calls. Timers only advance when the
// frame did not hard drop, so the next piece starts with clean timers.
func (g *Game) applyInput(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.ctrl.Move(-1, 0)
	}
	if in.Has(core.ActionRight) {
		g.ctrl.Move(1, 0)
	}
	if in.Has(core.ActionRotateCW) {
		g.ctrl.RotateClockwise()
	}
	if in.Has(core.ActionRotateCCW) {
		g.ctrl.RotateCounterClockwise()
	}
	if in.Has(core.ActionSoftDrop) {
		g.ctrl.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		g.ctrl.HardDrop()
		return
	}
	g.ctrl.Update(g.dt)
}

// startClear begins the flash animation for a pending clear. With animation
// disabled the clear completes at once.
func (g *Game) startClear() string {
	pending, _ := g.ctrl.Pending()
	if g.cfg.Timing.LineClearTicks <= 0 {
		return g.finishClear()
	}
	g.flashRows = pending.Rows
	g.clearTicks = g.cfg.Timing.LineClearTicks
	return ""
}

func (g *Game) finishClear() string {
	g.flashRows = nil
	ev, ok := g.ctrl.CompleteLineClear()
	if !ok {
		return ""
	}
	label := clearLabel(ev, g.ctrl.Level())
	if label != "" {
		g.event = label
		g.eventTicks = eventTicks
	}
	return label
}

// clearLabel describes a finished clear for the HUD, e.g.
// "B2B T-Spin Double + Combo 2".
func clearLabel(ev engine.ClearEvent, level int) string {
	var parts []string
	if ev.Classified {
		name := ev.Type.String()
		if ev.Score.BackToBackBonus > 0 {
			name = "B2B " + name
		}
		parts = append(parts, name)
		if ev.Score.ComboCount > 1 {
			parts = append(parts, fmt.Sprintf("Combo %d", ev.Score.ComboCount-1))
		}
		if ev.PerfectClear != nil {
			parts = append(parts, ev.PerfectClear.String())
		}
	}
	if ev.LevelUp {
		parts = append(parts, fmt.Sprintf("Level %d", level))
	}
	return strings.Join(parts, " + ")
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.ctrl.Score(),
		Level:    g.ctrl.Level(),
		Lines:    g.ctrl.Lines(),
		GameOver: g.ctrl.GameOver(),
		Paused:   g.paused,
	}
}

// Config returns the effective configuration of the current game.
func (g *Game) Config() config.BlockfallConfig {
	return g.cfg
}
