package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"igdb-games-service/internal/app/search"
	"igdb-games-service/internal/logging"
	"igdb-games-service/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Options configures a Hub.
type Options struct {
	Debounce    time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CheckOrigin func(r *http.Request) bool
}

// Hub upgrades live-search connections and tracks the connected clients. Each client owns
// one search session.
type Hub struct {
	searcher search.Searcher
	debounce time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub constructs a Hub running searches through searcher.
func NewHub(searcher search.Searcher, opts Options) *Hub {
	return &Hub{
		searcher: searcher,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		clients: make(map[*Client]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the client until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	client := &Client{
		hub:    h,
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}
	client.logger = logging.FromContext(r.Context(), h.logger)
	if client.logger != nil {
		client.logger = client.logger.With(slog.String(logging.FieldClientID, client.id))
	}
	client.session = search.NewSession(h.searcher, nil, search.Options{
		Debounce: h.debounce,
		Logger:   client.logger,
		Metrics:  h.metrics,
	})

	h.register(client)
	defer h.unregister(client)

	go client.writePump()
	client.readPump()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Used on server shutdown; hijacked connections are not
// tracked by http.Server.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.close()
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.metrics.RecordLiveSession(1)
	h.mu.Unlock()

	logging.Info(c.logger, "live client connected", logging.FieldCount, total)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		h.metrics.RecordLiveSession(-1)
	}
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	if ok {
		logging.Info(c.logger, "live client disconnected", logging.FieldCount, total)
	}
}
