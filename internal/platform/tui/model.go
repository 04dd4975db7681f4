package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

// statusTicks is how long a status line such as "Game saved" stays visible.
const statusTicks = 90

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	slot       string // saved game slot
	inSession  bool   // "b" returns to the menu instead of doing nothing
	started    bool   // Reset already ran, Init must not reset again
	hasSave    bool   // slot holds a save of this run
	status     string
	statusLeft int

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSlot sets the saved game slot used by ctrl+s and quit-to-save.
func WithSlot(slot string) Option {
	return func(m *Model) {
		if slot != "" {
			m.slot = slot
		}
	}
}

// WithSession lets the player leave a paused or finished game with "b".
func WithSession() Option {
	return func(m *Model) {
		m.inSession = true
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		slot:       storage.DefaultSlot,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewResumedModel creates a model that continues a saved game. The game must
// implement registry.StateSaver.
func NewResumedModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, state []byte, opts ...Option) (Model, error) {
	saver, ok := game.(registry.StateSaver)
	if !ok {
		return Model{}, fmt.Errorf("tui: game %q cannot resume saved games", game.ID())
	}

	m := NewModel(game, store, cfg, opts...)
	m.game.Reset(m.config)
	if err := saver.LoadState(state); err != nil {
		return Model{}, fmt.Errorf("tui: resume %s: %w", game.ID(), err)
	}
	m.started = true
	m.hasSave = true
	m.gameState = m.game.State()
	return m, nil
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if !m.started {
		m.game.Reset(m.config)
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)

	switch {
	case isQuit:
		if !m.gameState.GameOver {
			m.saveGame("quit")
		}
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionSave:
		m.saveGame("manual")
		return m, nil

	case action == core.ActionBack:
		if m.inSession && (m.gameState.GameOver || m.gameState.Paused) {
			if !m.gameState.GameOver {
				m.saveGame("menu")
			}
			m.backToMenu = true
		}
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot follow a resize start over.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.statusLeft > 0 {
		m.statusLeft--
	}

	// Restart with a fresh seed so the next game deals different pieces.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.logger.Debug("game restarted", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Event != "" {
		m.logger.Debug("clear", "game", m.game.ID(), "event", result.Event, "score", result.State.Score)
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishGame()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishGame records the score and drops the saved game this run came from,
// so a finished game cannot be resumed.
func (m *Model) finishGame() {
	st := m.gameState
	m.logger.Info("game over", "game", m.game.ID(), "score", st.Score, "level", st.Level, "lines", st.Lines)

	if m.store == nil {
		return
	}
	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score, st.Level, st.Lines); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}
	if m.hasSave {
		if err := m.store.DeleteGame(m.slot); err != nil {
			m.logger.Warn("could not delete saved game", "slot", m.slot, "error", err)
		}
		m.hasSave = false
	}
}

// saveGame writes the running game to the model's slot. Games without
// StateSaver support are skipped silently.
func (m *Model) saveGame(reason string) {
	saver, ok := m.game.(registry.StateSaver)
	if !ok || m.store == nil {
		if reason == "manual" {
			m.setStatus("Saving is not available")
		}
		return
	}

	data, err := saver.SaveState()
	if err == nil {
		err = m.store.SaveGame(m.slot, m.game.ID(), m.game.State().Score, data)
	}
	if err != nil {
		m.logger.Warn("could not save game", "game", m.game.ID(), "slot", m.slot, "error", err)
		m.setStatus("Save failed")
		return
	}

	m.hasSave = true
	m.logger.Debug("game saved", "game", m.game.ID(), "slot", m.slot, "reason", reason, "bytes", len(data))
	m.setStatus("Game saved")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusLeft > 0 && m.status != "" {
		m.screen.DrawTextCenteredColor(m.screen.Height()-1, m.status, core.ColorYellow)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
