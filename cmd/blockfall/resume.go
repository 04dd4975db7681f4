package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Continue the saved game",
	Long: `Load the game saved with Ctrl+S (or on quit) and continue it.
The game starts paused; press P to continue.

Examples:
  blockfall resume
  blockfall resume --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runResume,
}

func runResume(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.LoadGame(storage.DefaultSlot)
	if errors.Is(err, storage.ErrNoSavedGame) {
		return errors.New("no saved game, start one with 'blockfall play'")
	}
	if err != nil {
		return err
	}

	return resumeGame(saved, store, runtimeConfig())
}
