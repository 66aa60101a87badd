package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. The game defaults to starfall.

Controls:
  Left/Right, A/D   - Run
  Up, W, Space      - Jump (only when standing on something)
  P                 - Pause
  R                 - Restart the round
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 20 second rounds, slower bombs
  normal - Config values as-is
  hard   - 7 second rounds, faster bombs
  fixed  - Config values as-is

Examples:
  starfall play
  starfall play --difficulty hard
  starfall play --config ./my-starfall.yaml
  starfall play --config ./my-starfall.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, windowCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// gameFromArgs resolves the game to play and applies the game flags.
func gameFromArgs(args []string) (registry.Game, error) {
	gameID := starfall.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	starfall.SetConfigPath(flagConfig)
	starfall.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'starfall list' to see available games)", err)
	}
	return game, nil
}

// openStore opens the scores database. A failure is logged, not fatal.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
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

func runPlay(_ *cobra.Command, args []string) error {
	game, err := gameFromArgs(args)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
