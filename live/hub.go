// Package live pushes trade events to connected websocket clients.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	EventTradeCreated = "trade.created"
	EventTradeUpdated = "trade.updated"
	EventTradeDeleted = "trade.deleted"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

type TradePayload struct {
	TradeID uuid.UUID `json:"trade_id"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
	broadcastQueue = 256
)

// UserRoom is the room every connection of a user joins.
func UserRoom(userID uuid.UUID) string {
	return "user:" + userID.String()
}

type envelope struct {
	room string
	data []byte
}

// Hub fans messages out to clients grouped in rooms. Publishing never
// blocks the caller; Run delivers queued messages until its context ends.
type Hub struct {
	mu        sync.RWMutex
	rooms     map[string]map[*Client]bool
	closed    bool
	broadcast chan envelope
	logger    zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:     make(map[string]map[*Client]bool),
		broadcast: make(chan envelope, broadcastQueue),
		logger:    logger.With().Str("component", "live_hub").Logger(),
	}
}

// Run delivers broadcasts. When ctx is cancelled every client is
// disconnected and later registrations are refused.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for room, clients := range h.rooms {
		for c := range clients {
			close(c.send)
		}
		delete(h.rooms, room)
	}
	h.logger.Info().Msg("hub stopped")
}

func (h *Hub) deliver(msg envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[msg.room] {
		select {
		case c.send <- msg.data:
		default:
			h.logger.Warn().Str("room", msg.room).Msg("client send buffer full, message dropped")
		}
	}
}

// Register adds c to its room. It reports false when the hub has stopped,
// in which case c's send channel is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(c.send)
		return false
	}
	if _, ok := h.rooms[c.room]; !ok {
		h.rooms[c.room] = make(map[*Client]bool)
	}
	h.rooms[c.room][c] = true
	h.logger.Debug().Str("room", c.room).Int("clients", len(h.rooms[c.room])).Msg("client registered")
	return true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok || !clients[c] {
		return
	}
	close(c.send)
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
	h.logger.Debug().Str("room", c.room).Msg("client unregistered")
}

// BroadcastToRoom queues message for every client in room.
func (h *Hub) BroadcastToRoom(room string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("room", room).Msg("failed to marshal message")
		return
	}

	select {
	case h.broadcast <- envelope{room: room, data: data}:
	default:
		h.logger.Warn().Str("room", room).Msg("broadcast queue full, message dropped")
	}
}

// PublishTradeEvent notifies the owner's connections about a trade change.
func (h *Hub) PublishTradeEvent(userID uuid.UUID, eventType string, tradeID uuid.UUID) {
	room := UserRoom(userID)
	h.BroadcastToRoom(room, Message{
		Type:    eventType,
		Payload: TradePayload{TradeID: tradeID},
		RoomID:  room,
	})
}

// Client is one websocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}
}

// ReadPump consumes control frames until the peer goes away. Incoming
// messages are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn().Err(err).Str("room", c.room).Msg("unexpected websocket close")
			}
			return
		}
	}
}

// WritePump writes queued messages and pings until the send channel is
// closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug().Err(err).Str("room", c.room).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
