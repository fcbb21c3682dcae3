package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/feed"
	"github.com/vovakirdan/popquiz/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeFeed   string
	flagCORSOrigins []string
	flagFeedSecret  string
	flagFeedURL     string
	flagQR          bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PopQuiz SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the difficulty menu.
Scores are stored per server (all users share the same leaderboard) and
the SSH user name is the player name.

With --feed, an HTTP server streams every round live over websockets
(/ws), serves the leaderboard (/api/scores/<difficulty>) and exposes
Prometheus metrics (/metrics).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.popquiz/host_key

Examples:
  popquiz serve                           # Listen on :23234 with auto-generated key
  popquiz serve --ssh :2222               # Listen on port 2222
  popquiz serve --feed :8080              # Also serve the spectator feed
  popquiz serve --feed :8080 --feed-secret s3cret --qr
  popquiz serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeFeed, "feed", "", "Spectator feed address (e.g. :8080)")
	serveCmd.Flags().StringSliceVar(&flagCORSOrigins, "cors-origin", nil, "Origins allowed to use the feed (default: any)")
	serveCmd.Flags().StringVar(&flagFeedSecret, "feed-secret", "", "Require spectators to present a token signed with this secret")
	serveCmd.Flags().StringVar(&flagFeedURL, "feed-url", "", "Public websocket URL of the feed, for the printed link")
	serveCmd.Flags().BoolVar(&flagQR, "qr", false, "Print the spectator link as a QR code")
}

func runServe(_ *cobra.Command, _ []string) error {
	quiz, err := loadQuiz()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "popquiz")
	gate, err := buildGate(quiz, logger)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Quiz = quiz
	cfg.Gate = gate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The feed reads scores from its own handle; SQLite serializes writers.
	feedStore := openStore(flagDBPath)
	if feedStore != nil {
		defer feedStore.Close()
	}
	cfg.Sink = startFeed(ctx, flagServeFeed, feedStore, flagCORSOrigins, []byte(flagFeedSecret), logger)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting PopQuiz SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	if flagServeFeed != "" {
		link, err := spectatorLink(flagServeFeed)
		if err != nil {
			return err
		}
		fmt.Printf("Spectator feed: %s\n", link)
		if flagQR {
			qr, err := qrcode.New(link, qrcode.Medium)
			if err != nil {
				return fmt.Errorf("encoding QR code: %w", err)
			}
			fmt.Println(qr.ToSmallString(false))
		}
	}
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}

// spectatorLink is the websocket URL spectators connect to, with a day-long
// token when the feed is private.
func spectatorLink(addr string) (string, error) {
	link := flagFeedURL
	if link == "" {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return "", fmt.Errorf("feed address %q: %w", addr, err)
		}
		if host == "" {
			host = "localhost"
		}
		link = "ws://" + net.JoinHostPort(host, port) + "/ws"
	}
	if flagFeedSecret == "" {
		return link, nil
	}
	token, err := feed.IssueToken([]byte(flagFeedSecret), "spectator", 24*time.Hour)
	if err != nil {
		return "", err
	}
	return link + "?token=" + token, nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
