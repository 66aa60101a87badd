package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to pick a difficulty and
Enter to play. Quitting a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Difficulty
  Enter/Space  - Play
  Tab          - Scores
  Q            - Quit

Examples:
  starfall menu
  starfall menu --fps 30
  starfall menu --db ./scores.db`,
	RunE: runMenu,
}

var menuPresets = []string{
	string(config.DifficultyNormal),
	string(config.DifficultyEasy),
	string(config.DifficultyHard),
	string(config.DifficultyFixed),
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	starfall.SetConfigPath(flagConfig)

	for {
		res, err := tui.RunMenu(cfg, menuPresets)
		if err != nil {
			return err
		}
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if res.GameID == "" {
			return nil
		}

		starfall.SetDifficultyPreset(res.Difficulty)
		game, err := registry.Create(res.GameID)
		if err != nil {
			return fmt.Errorf("error creating game: %w", err)
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, logger); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
	}
}
