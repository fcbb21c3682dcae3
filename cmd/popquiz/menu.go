package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty from a menu",
	Long: `Start PopQuiz in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play and Tab for the
leaderboard. After a round you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  popquiz menu
  popquiz menu --name ana --fps 30
  popquiz menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagName, "name", "", "Player name on the leaderboard (default: login name)")
	menuCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	quiz, err := loadQuiz()
	if err != nil {
		return err
	}

	logOut, closeLog := sessionLog()
	defer closeLog()
	logger := newLogger(logOut, "popquiz")

	gate, err := buildGate(quiz, logger)
	if err != nil {
		return err
	}

	store := openStore(flagDBPath)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.SessionOptions{
		Store:  store,
		Gate:   gate,
		Quiz:   quiz,
		Sink:   startFeed(ctx, flagFeedAddr, store, nil, nil, logger),
		Player: playerName(flagName),
	}
	if err := tui.RunSession(opts, runtimeConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	tui.LogGateStats(logger, gate)
	return nil
}
