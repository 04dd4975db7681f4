package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blockfall/internal/config"
	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall"
	"github.com/vovakirdan/tui-blockfall/internal/platform/tui"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. Without a mode the mode menu opens first; after a game
ends you return to the menu.

Controls:
  Left/Right, H/L  - Move
  Down, J          - Soft drop
  Space            - Hard drop
  Up, X, K         - Rotate clockwise
  Z                - Rotate counterclockwise
  P/Esc            - Pause
  Ctrl+S           - Save game
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit (a running game is saved)

Difficulty options:
  easy   - Start at level 1 with a longer lock delay
  normal - Start at level 5
  hard   - Start at level 10 with a shorter lock delay
  fixed  - Stay at the configured start level

Examples:
  blockfall play
  blockfall play blockfall --difficulty hard
  blockfall play blockfall_classic --level 8
  blockfall play blockfall --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (0 = from config)")
}

func runPlay(_ *cobra.Command, args []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	cfg := runtimeConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		return runMenuLoop(store, cfg)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blockfall list' to see available modes", gameID)
	}
	return playGame(gameID, 0, store, cfg)
}

// applyGameFlags validates the game flags and hands them to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	if flagLevel < 0 {
		return fmt.Errorf("--level must be positive, got %d", flagLevel)
	}
	// Fail early on a broken config file instead of silently using defaults.
	if _, err := config.Load(flagConfig); err != nil {
		return err
	}

	blockfall.SetConfigPath(flagConfig)
	blockfall.SetDifficultyPreset(flagDifficulty)
	blockfall.SetStartLevel(flagLevel)
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

// playGame runs one game. level overrides the start level when positive.
func playGame(gameID string, level int, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if l, ok := game.(registry.Leveler); ok && level > 0 {
		l.SetStartLevel(level)
	}

	logger.Debug("starting game", "game", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)
	return tui.Run(tui.NewModel(game, store, cfg, tui.WithLogger(logger)))
}

// resumeGame continues a saved game.
func resumeGame(saved *storage.SavedGame, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(saved.GameID)
	if err != nil {
		return err
	}
	model, err := tui.NewResumedModel(game, store, cfg, saved.State, tui.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("resuming game", "game", saved.GameID, "score", saved.Score, "saved", saved.UpdatedAt)
	return tui.Run(model)
}

// runMenuLoop shows the mode menu until the player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		result, err := tui.RunMenu(store, cfg, storage.DefaultSlot)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue

		case result.Resume != nil:
			if err := resumeGame(result.Resume, store, cfg); err != nil {
				logger.Error("cannot resume saved game", "error", err)
				if errors.Is(err, blockfall.ErrIncompatibleSave) && store != nil {
					// The save can never load; drop it so the menu stops offering it.
					if delErr := store.DeleteGame(storage.DefaultSlot); delErr != nil {
						logger.Warn("could not delete saved game", "error", delErr)
					}
				}
			}
			continue
		}

		// A new seed for every game unless one was given.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playGame(result.GameID, result.Level, store, cfg); err != nil {
			logger.Error("game failed", "game", result.GameID, "error", err)
		}
	}
}
