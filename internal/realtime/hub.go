package realtime

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gastropro/backoffice/pkg/logger"
	"github.com/gastropro/backoffice/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10 // 64 KiB

	defaultBufferSize = 64
)

// Message represents a JSON payload delivered to feed subscribers.
type Message struct {
	Event string    `json:"event"`
	Data  any       `json:"data,omitempty"`
	Sent  time.Time `json:"sent_at"`
}

type controlMessage struct {
	Action string `json:"action"`
}

// Hub fans notification events out to connected websocket clients.
// A client bound to a user receives that user's notifications plus
// broadcasts; an unbound client (the back-office console) receives all.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*connection]struct{}
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHub constructs a realtime hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*connection]struct{}),
		log:     logger.WithModule("realtime"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Allow same-origin requests and explicit localhost development.
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				originHost := hostWithoutPort(origin)
				requestHost := hostWithoutPort(r.Host)
				return originHost == requestHost || isLoopback(originHost)
			},
		},
	}
}

// Serve upgrades the HTTP connection to a WebSocket and streams events until
// the client disconnects. userID nil subscribes to every notification.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID *uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	client := newConnection(h, conn, userID)
	h.register(client)

	go client.writeLoop()
	client.readLoop()
}

// Publish delivers an event to every interested client without blocking.
// A nil userID addresses all clients.
func (h *Hub) Publish(event string, userID *uint, payload any) {
	message := Message{Event: event, Data: payload, Sent: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.wants(userID) {
			h.enqueue(client, message)
		}
	}
}

// ConnectionCount reports the number of connected clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(client *connection) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeConnections.Inc()
}

func (h *Hub) unregister(client *connection) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if ok {
		metrics.RealtimeConnections.Dec()
	}
}

// sendTo enqueues a message for one client if it is still registered.
func (h *Hub) sendTo(client *connection, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[client]; ok {
		h.enqueue(client, message)
	}
}

func (h *Hub) enqueue(client *connection, message Message) {
	select {
	case client.send <- message:
	default:
		h.log.Warn("dropping backpressure client", zap.Stringer("client", client))
		go client.close()
	}
}

type connection struct {
	hub    *Hub
	socket *websocket.Conn
	userID *uint
	send   chan Message
	once   sync.Once
}

func newConnection(hub *Hub, conn *websocket.Conn, userID *uint) *connection {
	return &connection{
		hub:    hub,
		socket: conn,
		userID: userID,
		send:   make(chan Message, defaultBufferSize),
	}
}

func (c *connection) wants(target *uint) bool {
	if c.userID == nil || target == nil {
		return true
	}
	return *c.userID == *target
}

func (c *connection) String() string {
	if c.userID == nil {
		return "console@" + c.socket.RemoteAddr().String()
	}
	return "user:" + strconv.FormatUint(uint64(*c.userID), 10) + "@" + c.socket.RemoteAddr().String()
}

func (c *connection) readLoop() {
	defer c.close()

	c.socket.SetReadLimit(maxMessageSize)
	_ = c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		_ = c.socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("unexpected close", zap.Stringer("client", c), zap.Error(err))
			}
			break
		}

		if len(payload) == 0 {
			continue
		}

		var ctrl controlMessage
		if err := json.Unmarshal(payload, &ctrl); err != nil {
			c.hub.log.Debug("invalid control payload", zap.Stringer("client", c), zap.Error(err))
			continue
		}

		switch strings.ToLower(strings.TrimSpace(ctrl.Action)) {
		case "ping":
			c.hub.sendTo(c, Message{Event: "pong", Sent: time.Now().UTC()})
		default:
			c.hub.log.Debug("unsupported control action", zap.String("action", ctrl.Action), zap.Stringer("client", c))
		}
	}
}

func (c *connection) writeLoop() {
	defer c.close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.socket.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *connection) close() {
	c.once.Do(func() {
		c.hub.unregister(c)
		// Hold the write lock so no publisher is mid-send on the channel.
		c.hub.mu.Lock()
		close(c.send)
		c.hub.mu.Unlock()
		_ = c.socket.Close()
	})
}

func hostWithoutPort(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}

	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		parsed, err := http.NewRequest(http.MethodGet, host, nil)
		if err == nil {
			return hostWithoutPort(parsed.URL.Host)
		}
	}

	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isLoopback(host string) bool {
	ip := net.ParseIP(host)
	if ip != nil {
		return ip.IsLoopback()
	}
	return strings.EqualFold(host, "localhost")
}
