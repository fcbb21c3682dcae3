package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/games/popquiz"
	"github.com/vovakirdan/popquiz/internal/platform/tui"
)

var (
	flagName     string
	flagFeedAddr string
)

var playCmd = &cobra.Command{
	Use:   "play <difficulty>",
	Short: "Play a difficulty",
	Long: `Start a round at the given difficulty.

Controls:
  Left/Right  - Aim
  Up/Down     - Shorter/longer pull
  Mouse drag  - Aim and pull, release to fire
  Space       - Fire
  Tab/X       - Swap loaded and next sphere
  Enter       - Submit answer
  Ctrl+S      - Skip question
  P/Esc       - Pause
  R           - Restart (after game over)
  F2          - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulties:
  easy    - Few colors, slow rows
  normal  - The standard round
  hard    - More colors, fast rows
  endless - No target score

Examples:
  popquiz play normal
  popquiz play hard --name ana
  popquiz play easy --feed :8080
  popquiz play normal --trivia-url http://localhost:9000/question`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name on the leaderboard (default: login name)")
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'popquiz list' to see difficulties)", err)
	}

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

	player := playerName(flagName)
	game := popquiz.NewWithConfig(quiz, preset)
	if sink := startFeed(ctx, flagFeedAddr, store, nil, nil, logger); sink != nil {
		game.SetEventHook(sink(player, string(preset)))
	}

	if err := tui.Run(game, store, gate, player, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	tui.LogGateStats(logger, gate)
	return nil
}
