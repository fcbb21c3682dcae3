package feed

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
	broadcastQueue = 256
)

// spectator is one connected websocket.
type spectator struct {
	conn *websocket.Conn
	send chan []byte
	ip   string
}

// Hub fans frames out to every connected spectator. Publishing never blocks
// the game: frames are dropped when the queue or a spectator falls behind.
type Hub struct {
	mu         sync.RWMutex
	spectators map[*spectator]struct{}
	broadcast  chan []byte
	register   chan *spectator
	unregister chan *spectator
	done       chan struct{}
	sockets    *socketCounter
	limits     LimitConfig
	origins    []string
	secret     []byte
	upgrader   websocket.Upgrader
	logger     *log.Logger
}

// NewHub creates a hub. Call Run before accepting sockets.
func NewHub(limits LimitConfig, origins []string, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	h := &Hub{
		spectators: make(map[*spectator]struct{}),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *spectator),
		unregister: make(chan *spectator),
		done:       make(chan struct{}),
		sockets:    newSocketCounter(limits.MaxSocketsPerIP),
		limits:     limits,
		origins:    origins,
		logger:     logger.WithPrefix("feed"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// RequireToken makes sockets present a token signed with secret.
// An empty secret leaves the feed open.
func (h *Hub) RequireToken(secret []byte) {
	h.secret = secret
}

// checkOrigin accepts clients without an Origin header, same-host pages and
// the configured origins.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Run owns the spectator set until ctx is done, then closes every socket.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for s := range h.spectators {
				h.drop(s)
			}
			h.mu.Unlock()
			return

		case s := <-h.register:
			h.mu.Lock()
			h.spectators[s] = struct{}{}
			count := len(h.spectators)
			h.mu.Unlock()
			socketsActive.Set(float64(count))
			h.logger.Debug("spectator connected", "ip", s.ip, "total", count)

		case s := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.spectators[s]; ok {
				h.drop(s)
			}
			count := len(h.spectators)
			h.mu.Unlock()
			socketsActive.Set(float64(count))
			h.logger.Debug("spectator left", "ip", s.ip, "total", count)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for s := range h.spectators {
				select {
				case s.send <- msg:
				default:
					framesDropped.Inc()
					h.drop(s)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes s. Callers hold mu.
func (h *Hub) drop(s *spectator) {
	delete(h.spectators, s)
	close(s.send)
	h.sockets.release(s.ip)
}

// Publish queues a frame for every spectator.
func (h *Hub) Publish(f Frame) {
	observe(f)

	b, err := Encode(f)
	if err != nil {
		h.logger.Warn("dropping frame", "err", err)
		return
	}
	select {
	case h.broadcast <- b:
	default:
		framesDropped.Inc()
	}
}

// Sink returns an event hook that publishes a player's events.
func (h *Hub) Sink(player, mode string) func(engine.Event) {
	return func(ev engine.Event) {
		h.Publish(FromEvent(player, mode, ev))
	}
}

// SpectatorCount returns the number of connected spectators.
func (h *Hub) SpectatorCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

// ServeWS upgrades a spectator connection after admission checks.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)

	if len(h.secret) > 0 {
		if _, err := VerifyToken(h.secret, tokenFrom(r)); err != nil {
			rejectedTotal.WithLabelValues("auth").Inc()
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	if h.limits.MaxSockets > 0 && h.SpectatorCount() >= h.limits.MaxSockets {
		rejectedTotal.WithLabelValues("ws_limit").Inc()
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.sockets.acquire(ip) {
		rejectedTotal.WithLabelValues("ws_ip_limit").Inc()
		http.Error(w, "Too many connections from your address", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.sockets.release(ip)
		h.logger.Debug("upgrade failed", "ip", ip, "err", err)
		return
	}

	s := &spectator{conn: conn, send: make(chan []byte, sendBuffer), ip: ip}
	select {
	case h.register <- s:
	case <-h.done:
		h.sockets.release(ip)
		conn.Close()
		return
	}

	go h.writePump(s)
	go h.readPump(s)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(s *spectator) {
	defer func() {
		select {
		case h.unregister <- s:
		case <-h.done:
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Read errors end the pump
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump writes queued frames and keeps the connection alive.
func (h *Hub) writePump(s *spectator) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			//nolint:errcheck // Write errors are reported by the write below
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Closing anyway
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
			messagesTotal.Inc()

		case <-ticker.C:
			//nolint:errcheck // Write errors are reported by the ping below
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
