package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/feed"
	"github.com/vovakirdan/popquiz/internal/games/popquiz"
	"github.com/vovakirdan/popquiz/internal/platform/tui"
	"github.com/vovakirdan/popquiz/internal/storage"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

// runtimeConfig sizes the round to the current terminal.
func runtimeConfig() core.RuntimeConfig {
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

// loadQuiz loads the game config and points registry-created games at it.
func loadQuiz() (config.PopQuizConfig, error) {
	quiz, err := config.LoadPopQuiz(flagConfig)
	if err != nil {
		return config.PopQuizConfig{}, err
	}
	popquiz.SetConfigPath(flagConfig)
	return quiz, nil
}

// openStore opens the scores database. Play continues without one.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// loadBank returns the custom bank if one is given, else the embedded one.
func loadBank() (*trivia.Bank, error) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return trivia.LoadBank(flagQuestions, seed)
}

// buildGate wires the question bank and the optional HTTP source.
func buildGate(quiz config.PopQuizConfig, logger *log.Logger) (*trivia.Gate, error) {
	bank, err := loadBank()
	if err != nil {
		return nil, err
	}

	opts := []trivia.GateOption{trivia.WithLogger(logger)}
	if quiz.Trivia.Timeout > 0 {
		opts = append(opts, trivia.WithTimeout(quiz.Trivia.Timeout))
	}

	url := flagTriviaURL
	if url == "" {
		url = quiz.Trivia.SourceURL
	}
	if url != "" {
		src, err := trivia.NewHTTPSource(url, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return nil, err
		}
		opts = append(opts, trivia.WithPrimary(src))
	}

	return trivia.NewGate(bank, opts...), nil
}

// newLogger logs to w with timestamps.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// sessionLog opens ~/.popquiz/popquiz.log so background logging does not
// draw over the game. The returned closer is never nil.
func sessionLog() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}
	dir := filepath.Join(home, ".popquiz")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "popquiz.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

// startFeed serves the spectator feed on addr until ctx is done. An empty
// addr disables it and returns a nil sink.
func startFeed(ctx context.Context, addr string, store *storage.Store, origins []string, secret []byte, logger *log.Logger) tui.EventSink {
	if addr == "" {
		return nil
	}

	cfg := feed.ServerConfig{
		Addr:        addr,
		Limits:      feed.DefaultLimitConfig(),
		CORSOrigins: origins,
		Secret:      secret,
		Logger:      logger,
	}
	if store != nil {
		cfg.Scores = store
	}
	srv := feed.NewServer(cfg)

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil {
			logger.Error("feed stopped", "err", err)
		}
	}()
	return srv.Hub().Sink
}

// playerName defaults to the login name.
func playerName(name string) string {
	if name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
