package feed

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimitConfig bounds how fast a single address may call the HTTP endpoints
// and how many spectator sockets it may hold.
type LimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	MaxSocketsPerIP   int
	MaxSockets        int
	IdleAfter         time.Duration // Limiters unused this long are dropped
}

// DefaultLimitConfig returns limits suitable for a public feed.
func DefaultLimitConfig() LimitConfig {
	return LimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		MaxSocketsPerIP:   4,
		MaxSockets:        256,
		IdleAfter:         5 * time.Minute,
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter applies a token bucket per client address.
type IPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPLimiter creates a limiter allowing rps requests per second per
// address with the given burst.
func NewIPLimiter(rps float64, burst int) *IPLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	e, ok := l.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = l.now()
	l.mu.Unlock()

	return e.limiter.Allow()
}

// Prune drops limiters not seen within idle and returns how many remain.
func (l *IPLimiter) Prune(idle time.Duration) int {
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
	return len(l.limiters)
}

// Middleware rejects requests over the limit with 429.
func (l *IPLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r)) {
			rejectedTotal.WithLabelValues("rate_limit").Inc()
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller address, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// socketCounter tracks open sockets per address.
type socketCounter struct {
	mu       sync.Mutex
	open     map[string]int
	maxPerIP int
}

func newSocketCounter(maxPerIP int) *socketCounter {
	return &socketCounter{open: make(map[string]int), maxPerIP: maxPerIP}
}

// acquire reserves a slot for ip. A non-positive limit means unlimited.
func (c *socketCounter) acquire(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxPerIP > 0 && c.open[ip] >= c.maxPerIP {
		return false
	}
	c.open[ip]++
	return true
}

func (c *socketCounter) release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open[ip] <= 1 {
		delete(c.open, ip)
		return
	}
	c.open[ip]--
}
