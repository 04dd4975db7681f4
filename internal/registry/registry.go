// Package registry keeps the playable game modes. Modes register a factory
// from init(), so the platform can list and start them by ID without
// importing every game package by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-blockfall/internal/core"
)

// Game is the interface every mode implements. Games hold pure logic; the
// platform handles input mapping, timing and terminal output.
type Game interface {
	// ID is the stable identifier used by the CLI and the score table.
	ID() string

	// Title is the human-readable mode name.
	Title() string

	// Reset starts a fresh game. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// StateSaver is implemented by games that can be suspended and resumed.
type StateSaver interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// Resizer is implemented by games that can follow a terminal resize without
// restarting.
type Resizer interface {
	Resize(width, height int)
}

// Leveler is implemented by games whose start level can be picked per
// instance. It must be called before Reset.
type Leveler interface {
	SetStartLevel(level int)
}

// Describer is implemented by games that carry a one-line description for
// menus and the list command.
type Describer interface {
	Description() string
}

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
