package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

var (
	flagRounds int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and round history",
	Long: `Display the top 10 high scores, round statistics and the most recent
rounds for a game (default: starfall).

Examples:
  starfall scores
  starfall scores --rounds 20
  starfall scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRounds, "rounds", 5, "Number of recent rounds to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and rounds for the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := starfall.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'starfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetRoundStats(gameID); err == nil && stats.Rounds > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  (time up: %d, bombed: %d)  Batches cleared: %d  Played: %s\n",
			stats.Rounds, stats.TimeUps, stats.Hazards, stats.Batches, stats.PlayTime.Round(time.Second))
	}

	rounds, err := store.RecentRounds(gameID, flagRounds)
	if err != nil || len(rounds) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println("Recent rounds:")
	for _, r := range rounds {
		fmt.Printf("  #%-4d  %5d pts  %-8s  %6s  %s\n",
			r.Number, r.Score, r.Reason, r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
