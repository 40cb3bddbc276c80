// Package ws streams order and location events to WebSocket clients.
// A connection subscribes to topics named in the query string and receives
// every message published on them, JSON-encoded, until either side closes.
package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/p-thanks/RouteX/internal/adapters/out/broadcast"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Handler upgrades HTTP requests to WebSocket connections fed by the hub.
type Handler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a WebSocket handler on top of the broadcast hub.
func NewHandler(hub *broadcast.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// Serve handles GET /ws?topics=order:{id},admin - subscribes the connection
// to the named topics and streams their messages.
func (h *Handler) Serve(ctx echo.Context) error {
	topics := parseTopics(ctx.QueryParam("topics"))
	if len(topics) == 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "at least one topic is required",
		})
	}

	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	sub := h.hub.Subscribe(topics...)
	h.logger.Debug("subscriber attached", "topics", topics)

	go h.readLoop(conn, sub)
	h.writeLoop(conn, sub)
	return nil
}

// readLoop drains inbound frames so close and pong frames are processed.
// Any read error means the client is gone.
func (h *Handler) readLoop(conn *websocket.Conn, sub *broadcast.Subscription) {
	defer sub.Close()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeLoop(conn *websocket.Conn, sub *broadcast.Subscription) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case msg := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("subscriber write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.Done():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func parseTopics(raw string) []string {
	topics := make([]string, 0)
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			topics = append(topics, name)
		}
	}
	return topics
}
