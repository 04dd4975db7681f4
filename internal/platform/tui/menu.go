package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

// MaxStartLevel is the highest level offered by the menu.
const MaxStartLevel = 20

type menuEntry int

const (
	entryGame menuEntry = iota
	entryLevel
	entryResume
	entryScores
	entryQuit
)

// menuItem is one selectable row.
type menuItem struct {
	kind   menuEntry
	gameID string
	title  string
	desc   string
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ModeMenuModel lets the player pick a mode and start level, resume a saved
// game or open the scoreboard.
type ModeMenuModel struct {
	items     []menuItem
	cursor    int
	level     int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	saved     *storage.SavedGame

	selected       *menuItem
	openScoreboard bool
	quitting       bool
}

// NewModeMenuModel creates a new menu. The resume entry appears only when
// slot holds a saved game.
func NewModeMenuModel(store *storage.Store, cfg core.RuntimeConfig, slot string) ModeMenuModel {
	m := ModeMenuModel{
		level:     1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	if store != nil {
		if sg, err := store.LoadGame(slot); err == nil {
			m.saved = sg
			m.items = append(m.items, menuItem{
				kind:   entryResume,
				gameID: sg.GameID,
				title:  "Resume saved game",
				desc:   fmt.Sprintf("%s, score %d", gameTitle(sg.GameID), sg.Score),
			})
		}
	}

	for _, g := range registry.List() {
		m.items = append(m.items, menuItem{
			kind:   entryGame,
			gameID: g.ID,
			title:  g.Title,
			desc:   g.Description,
		})
	}

	m.items = append(m.items,
		menuItem{kind: entryLevel, title: "Start level"},
		menuItem{kind: entryScores, title: "High scores"},
		menuItem{kind: entryQuit, title: "Quit"},
	)
	return m
}

func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// Init initializes the menu model.
func (m ModeMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m ModeMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m ModeMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.items[m.cursor].kind == entryLevel {
			m.level = core.Max(m.level-1, 1)
		}

	case MenuActionRight:
		if m.items[m.cursor].kind == entryLevel {
			m.level = core.Min(m.level+1, MaxStartLevel)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.kind {
		case entryGame, entryResume:
			m.selected = &item
			return m, tea.Quit
		case entryLevel:
			// Enter on the level row cycles it.
			m.level = m.level%MaxStartLevel + 1
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m ModeMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L O C K F A L L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.title
		if item.kind == entryLevel {
			line = fmt.Sprintf("%s: < %d >", item.title, m.level)
		}

		if i == m.cursor {
			line = menuCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := m.items[m.cursor].desc; desc != "" {
		b.WriteString(centerText(menuDimStyle.Render(desc), m.width))
	}
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Level  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Result reports what the player chose.
func (m ModeMenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}

	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.selected != nil && m.selected.kind == entryResume:
		result.GameID = m.selected.gameID
		result.Resume = m.saved
	case m.selected != nil:
		result.GameID = m.selected.gameID
		result.Level = m.level
	default:
		result.Quit = true
	}
	return result
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int
	Resume          *storage.SavedGame // set when the player picked the saved game
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, slot string) (MenuResult, error) {
	p := tea.NewProgram(
		NewModeMenuModel(store, cfg, slot),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(ModeMenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, errors.New("tui: unexpected menu model")
	}
	return m.Result(), nil
}
