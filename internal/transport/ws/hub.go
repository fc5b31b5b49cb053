package ws

import (
	"encoding/json"
	"log"
	"sync"

	"samvad/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAnalysisCompleted MessageType = "analysis_completed"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections and fans out completed-analysis
// events to all of them.
type Hub struct {
	conns map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// Connection represents a dashboard WebSocket connection
type Connection struct {
	HostID string
	Send   chan []byte
	Hub    *Hub
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = true
			h.mu.Unlock()
			log.Printf("Dashboard client %s connected", conn.HostID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
				log.Printf("Dashboard client %s disconnected", conn.HostID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg)
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastAnalysisCompleted fans a completed-analysis event out to every
// dashboard client (implements service.Broadcaster).
func (h *Hub) BroadcastAnalysisCompleted(event model.DashboardEvent) {
	payload, _ := json.Marshal(event)
	h.broadcast <- &Message{
		Type:    MsgAnalysisCompleted,
		Payload: payload,
	}
}
