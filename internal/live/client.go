package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	appgames "igdb-games-service/internal/app/games"
	"igdb-games-service/internal/app/search"
	"igdb-games-service/internal/logging"
)

// Client is one live-search connection.
type Client struct {
	hub     *Hub
	id      string
	conn    *websocket.Conn
	send    chan []byte
	session *search.Session
	logger  *slog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// ID returns the client's connection id.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logging.Warn(c.logger, "websocket read error", "error", err)
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Warn(c.logger, "invalid live message", "error", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.cancel()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg Inbound) {
	switch msg.Type {
	case TypePing:
		c.enqueue(Outbound{Type: TypePong})
	case TypeSearch:
		var payload SearchPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				logging.Warn(c.logger, "invalid search payload", "error", err)
				return
			}
		}
		run := c.session.Begin(c.ctx, payload.Term)
		go c.runSearch(payload.Term, run)
	default:
		logging.Warn(c.logger, "unknown live message type", "type", msg.Type)
	}
}

// runSearch runs a search already begun on the session. Superseded and cancelled searches
// send nothing.
func (c *Client) runSearch(term string, run func() (appgames.Outcome, bool)) {
	out, published := run()
	if !published {
		return
	}

	term = strings.TrimSpace(term)
	if games, ok := out.Value(); ok {
		c.enqueue(Outbound{Type: TypeResults, Payload: ResultsPayload{Term: term, Games: games}})
		return
	}
	c.enqueue(Outbound{Type: TypeError, Payload: ErrorPayload{
		Term:    term,
		Kind:    out.Kind.String(),
		Message: ErrorText,
	}})
}

func (c *Client) enqueue(msg Outbound) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error(c.logger, "encode live message failed", err, "type", msg.Type)
		return
	}

	select {
	case <-c.ctx.Done():
	case c.send <- data:
	default:
		logging.Warn(c.logger, "live client send buffer full, dropping message", "type", msg.Type)
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.session.Close()
		c.cancel()
	})
}
