package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/popquiz/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)

// ScoreSource is the leaderboard the API reads from.
type ScoreSource interface {
	TopScores(difficulty string, limit int) ([]storage.ScoreEntry, error)
	Totals(difficulty string) (storage.Totals, error)
}

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Hub         *Hub
	Scores      ScoreSource // Optional; score routes answer 503 without it
	Limiter     *IPLimiter  // Optional; built from DefaultLimitConfig when nil
	CORSOrigins []string
	Logger      *log.Logger
}

// NewRouter builds the HTTP routes. It starts no goroutines.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	limiter := cfg.Limiter
	if limiter == nil {
		d := DefaultLimitConfig()
		limiter = NewIPLimiter(d.RequestsPerSecond, d.Burst)
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(limiter.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.ServeWS)
	}

	h := apiHandlers{scores: cfg.Scores, hub: cfg.Hub}
	r.Route("/api", func(r chi.Router) {
		r.Get("/scores/{difficulty}", h.topScores)
		r.Get("/totals/{difficulty}", h.totals)
		r.Get("/spectators", h.spectators)
	})
	return r
}

// requestLogger logs each request at debug level with its status.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"dur", time.Since(start),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type apiHandlers struct {
	scores ScoreSource
	hub    *Hub
}

func (h apiHandlers) topScores(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no score store")
		return
	}
	limit := defaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScoreLimit)
	}

	entries, err := h.scores.TopScores(chi.URLParam(r, "difficulty"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h apiHandlers) totals(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no score store")
		return
	}
	t, err := h.scores.Totals(chi.URLParam(r, "difficulty"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h apiHandlers) spectators(w http.ResponseWriter, _ *http.Request) {
	n := 0
	if h.hub != nil {
		n = h.hub.SpectatorCount()
	}
	writeJSON(w, http.StatusOK, map[string]int{"spectators": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ServerConfig configures a feed server.
type ServerConfig struct {
	Addr        string
	Scores      ScoreSource
	Limits      LimitConfig
	CORSOrigins []string
	Secret      []byte // When set, spectators need a token from IssueToken
	Logger      *log.Logger
}

// Server serves the spectator feed, the leaderboard API and metrics.
type Server struct {
	hub     *Hub
	limiter *IPLimiter
	limits  LimitConfig
	http    *http.Server
	logger  *log.Logger
}

// NewServer creates a server. Nothing listens until ListenAndServe.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Limits == (LimitConfig{}) {
		cfg.Limits = DefaultLimitConfig()
	}

	hub := NewHub(cfg.Limits, cfg.CORSOrigins, logger)
	hub.RequireToken(cfg.Secret)
	limiter := NewIPLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)
	router := NewRouter(RouterConfig{
		Hub:         hub,
		Scores:      cfg.Scores,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	return &Server{
		hub:     hub,
		limiter: limiter,
		limits:  cfg.Limits,
		logger:  logger,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Hub returns the server's hub for publishing frames.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe runs until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.Run(ctx)
	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting feed server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("feed: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping feed server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("feed: shutdown: %w", err)
	}
	return nil
}

// pruneLoop forgets idle rate limiters.
func (s *Server) pruneLoop(ctx context.Context) {
	idle := s.limits.IdleAfter
	if idle <= 0 {
		idle = DefaultLimitConfig().IdleAfter
	}
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Prune(idle)
		}
	}
}
