// popquiz is a terminal puzzle game: launch colored spheres into a hex
// grid, and answer a trivia question to pop every cluster you complete.
//
// Usage:
//
//	popquiz list                 - List difficulty presets
//	popquiz play <difficulty>    - Play one difficulty
//	popquiz menu                 - Pick a difficulty interactively
//	popquiz serve                - Start the SSH server for remote play
//	popquiz scores <difficulty>  - Show high scores
//	popquiz questions            - Show the question bank
//	popquiz config               - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.popquiz/scores.db)
//	--config <path>      - Use a custom game config YAML
//	--questions <path>   - Use a custom question bank YAML
//	--trivia-url <url>   - Fetch questions from an HTTP source first
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the difficulty presets
	_ "github.com/vovakirdan/popquiz/internal/games/popquiz"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagQuestions string
	flagTriviaURL string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "popquiz",
	Short: "PopQuiz - pop sphere clusters by answering trivia",
	Long: `PopQuiz is a terminal puzzle game. Aim the launcher, fire spheres into
the grid and connect three or more of the same color. Every cluster asks a
trivia question: answer it right to pop the cluster and drop whatever
hangs below it.

Available commands:
  list       - Show difficulty presets
  play       - Play a difficulty directly
  menu       - Interactive menu with the leaderboard
  serve      - Start the SSH server for remote play
  scores     - View high scores
  questions  - Show the question bank
  config     - Print the default configuration

Examples:
  popquiz list
  popquiz play normal
  popquiz menu --name ana
  popquiz serve --ssh :2222 --feed :8080
  popquiz scores hard`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.popquiz/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", "", "Path to custom question bank YAML")
	rootCmd.PersistentFlags().StringVar(&flagTriviaURL, "trivia-url", "", "HTTP question source tried before the bank")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(configCmd)
}
