package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/platform/gfx"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with real key up/down state.

Controls are the same as 'starfall play'; Esc or Q closes the window.

Examples:
  starfall window
  starfall window --fps 144 --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	game, err := gameFromArgs(args)
	if err != nil {
		return err
	}
	scene, ok := game.(gfx.Scene)
	if !ok {
		return fmt.Errorf("%s cannot be drawn in a window", game.ID())
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	return gfx.Run(scene, cfg, windowRecorder(store), logger)
}

// windowRecorder saves each finished round of a window session once.
func windowRecorder(store *storage.Store) gfx.Recorder {
	if store == nil {
		return nil
	}
	var saved string
	return func(g registry.Game, st core.GameState) {
		if !st.GameOver {
			return
		}
		s, ok := g.(registry.Summarizer)
		if !ok {
			return
		}
		sum, ok := s.Summary()
		if !ok || sum.ID == saved {
			return
		}
		saved = sum.ID
		if sum.Score > 0 {
			if _, err := store.SaveScore(g.ID(), sum.Score); err != nil {
				logger.Warn("could not save score", "err", err)
			}
		}
		if err := store.SaveRound("", sum); err != nil {
			logger.Warn("could not save round", "err", err)
		}
	}
}
