package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/platform/tui"
	"github.com/vovakirdan/popquiz/internal/storage"
)

var (
	flagScoreLimit  int
	flagInteractive bool
	flagPlayer      string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the best rounds of a difficulty, a player's recent rounds,
or the interactive leaderboard.

Examples:
  popquiz scores normal
  popquiz scores hard --limit 20
  popquiz scores hard --limit 0
  popquiz scores --player ana
  popquiz scores -i
  popquiz scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of rounds to show (0 shows every round)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive leaderboard")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show a player's recent rounds instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every round of the difficulty")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagPlayer != "" {
		rounds, err := store.RecentRounds(flagPlayer, flagScoreLimit)
		if err != nil {
			return fmt.Errorf("retrieving rounds: %w", err)
		}
		fmt.Printf("Recent rounds - %s\n\n", flagPlayer)
		printRounds(rounds, true)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("difficulty required (run 'popquiz list' to see difficulties)")
	}
	preset, err := config.ParsePreset(args[0])
	if err != nil {
		return err
	}
	difficulty := string(preset)

	if flagClear {
		if err := store.ClearScores(difficulty); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", difficulty)
		return nil
	}

	scores, err := rankedScores(store, difficulty, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", difficulty)
	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'popquiz play %s' to set the first high score!\n", difficulty)
		return nil
	}
	printRounds(scores, false)

	if t, err := store.Totals(difficulty); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Rounds: %d  Won: %d  Trivia: %d/%d\n",
			t.Best, t.Rounds, t.Wins, t.Correct, t.Questions)
	}
	return nil
}

// rankedScores returns the best limit rounds of a difficulty, or all of them
// when limit is not positive.
func rankedScores(store *storage.Store, difficulty string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return store.AllScores(difficulty)
	}
	return store.TopScores(difficulty, limit)
}

func printRounds(rounds []storage.ScoreEntry, withDifficulty bool) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	if withDifficulty {
		fmt.Fprintln(w, "  #\tDifficulty\tScore\tResult\tTrivia\tDate")
	} else {
		fmt.Fprintln(w, "  Rank\tPlayer\tScore\tResult\tTrivia\tDate")
	}
	for i, e := range rounds {
		who := e.Player
		if withDifficulty {
			who = e.Difficulty
		}
		if who == "" {
			who = "-"
		}
		fmt.Fprintf(w, "  %d\t%s\t%d\t%s\t%d/%d\t%s\n",
			i+1, who, e.Score, e.Outcome, e.Correct, e.Questions, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
