// starfall is a star-collecting platformer for the terminal, a desktop
// window, or remote play over SSH.
//
// Usage:
//
//	starfall list              - List available games
//	starfall play              - Play in the terminal
//	starfall window            - Play in a desktop window
//	starfall menu              - Start menu with difficulty picker
//	starfall serve             - Start SSH server for remote play
//	starfall scores            - Show high scores and round history
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//	--log <file>    - Write logs to a file (interactive commands log nowhere otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/games/starfall"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starfall",
	Short: "Starfall - collect the stars, dodge the bombs",
	Long: `Starfall is a small platformer. Run and jump across the platforms
collecting stars before the countdown runs out. Every cleared batch of
stars drops another bouncing bomb; touching one ends the round.

Available commands:
  list     - Show all available games
  play     - Play in the terminal
  window   - Play in a desktop window
  menu     - Interactive menu with difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and round history

Examples:
  starfall play
  starfall play --difficulty easy
  starfall window --fps 120
  starfall serve --ssh :2222
  starfall scores`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// logger is shared by every subcommand once setupLogging has run.
var logger = log.Default()

// setupLogging configures the shared logger. The alternate screen owns the
// terminal during play, so only serve logs to stderr by default.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = io.Discard
	if cmd == serveCmd || cmd == scoresCmd || cmd == listCmd {
		out = os.Stderr
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	starfall.SetLogger(logger.WithPrefix("starfall"))
	return nil
}
