package server

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/hailam/chessvariant/internal/board"
	"github.com/hailam/chessvariant/internal/game"
)

// broadcastBuffer holds a full reset (65 events) several times over.
const broadcastBuffer = 512

// Hub fans game events out to every connected WebSocket client.
// It implements game.Listener and game.ResultListener.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan wsMessage
}

// Client is one WebSocket connection registered with a Hub.
type Client struct {
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type piecePayload struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Piece int `json:"piece"`
}

type selectionPayload struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Selected bool `json:"selected"`
}

type gameOverPayload struct {
	Status string `json:"status"`
}

// NewHub creates a hub without clients. Call Run to start delivery.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan wsMessage, broadcastBuffer),
	}
}

// Run delivers published messages until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(msg)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues msg for every client. It never blocks; a message that does
// not fit the buffer is dropped, and nothing is queued while no client is
// connected since new clients start from a state snapshot.
func (h *Hub) Publish(msgType string, payload any) {
	if !h.HasClients() {
		return
	}
	msg := wsMessage{Type: msgType}
	if payload != nil {
		msg.Payload = mustMarshal(payload)
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("[server] Warning: broadcast buffer full, dropping %s", msgType)
	}
}

// Register adds c to the clients receiving broadcasts.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes c and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// HasClients returns true if at least one client is connected.
func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

// OnBoardReset broadcasts a "reset" message.
func (h *Hub) OnBoardReset() {
	h.Publish("reset", nil)
}

// OnPieceChanged broadcasts a "piece" message.
func (h *Hub) OnPieceChanged(pos board.Position, piece board.Piece) {
	h.Publish("piece", piecePayload{X: pos.X, Y: pos.Y, Piece: int(piece)})
}

// OnSelectionChanged broadcasts a "selection" message.
func (h *Hub) OnSelectionChanged(pos board.Position, selected bool) {
	h.Publish("selection", selectionPayload{X: pos.X, Y: pos.Y, Selected: selected})
}

// OnGameOver broadcasts a "gameover" message.
func (h *Hub) OnGameOver(status game.Status) {
	h.Publish("gameover", gameOverPayload{Status: status.String()})
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
