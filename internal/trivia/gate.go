package trivia

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Source produces a question for a request.
type Source interface {
	Fetch(ctx context.Context, req Request) (Question, error)
}

// GateStats counts questions asked through a gate.
type GateStats struct {
	Asked     int
	Remote    int // Served by the primary source
	Fallbacks int // Primary failed or was absent
	Answered  int
	Correct   int
}

// Gate picks the question for each pending match. It tries the primary
// source within a timeout and falls back to the bank, so Ask always returns
// an answerable question.
type Gate struct {
	primary Source
	bank    *Bank
	timeout time.Duration
	logger  *log.Logger

	mu    sync.Mutex
	stats GateStats
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithPrimary sets the source tried before the bank.
func WithPrimary(src Source) GateOption {
	return func(g *Gate) {
		g.primary = src
	}
}

// WithTimeout bounds each primary fetch.
func WithTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		g.timeout = d
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *log.Logger) GateOption {
	return func(g *Gate) {
		g.logger = l
	}
}

// NewGate creates a gate backed by bank.
func NewGate(bank *Bank, opts ...GateOption) *Gate {
	g := &Gate{
		bank:    bank,
		timeout: 4 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "trivia",
		})
	}
	return g
}

// Ask returns a question for req. It never fails.
func (g *Gate) Ask(ctx context.Context, req Request) Question {
	q, remote := g.ask(ctx, req)

	g.mu.Lock()
	g.stats.Asked++
	if remote {
		g.stats.Remote++
	} else {
		g.stats.Fallbacks++
	}
	g.mu.Unlock()

	return q
}

func (g *Gate) ask(ctx context.Context, req Request) (Question, bool) {
	if g.primary != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
		q, err := g.primary.Fetch(fetchCtx, req)
		cancel()
		switch {
		case err != nil:
			g.logger.Warn("primary source failed, using bank", "match", req.Match, "error", err)
		case !q.Valid():
			g.logger.Warn("primary source returned an unusable question, using bank", "match", req.Match, "id", q.ID)
		default:
			return q, true
		}
	}

	if g.bank == nil {
		return fallbackQuestion, false
	}
	return g.bank.Pick(req.Category), false
}

// Record counts an answer and returns whether it was correct.
func (g *Gate) Record(q Question, answer string) bool {
	ok := q.Check(answer)

	g.mu.Lock()
	g.stats.Answered++
	if ok {
		g.stats.Correct++
	}
	g.mu.Unlock()

	return ok
}

// Stats returns a copy of the gate counters.
func (g *Gate) Stats() GateStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}
