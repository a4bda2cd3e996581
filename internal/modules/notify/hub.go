package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is the envelope pushed to connected admin sessions.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// session wraps a websocket connection with a write lock. gorilla allows at
// most one concurrent writer per connection, and both the hub broadcast and
// the keepalive pings write to it.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

func (s *session) close() {
	_ = s.conn.Close()
}

// Hub fans domain events out to every connected admin. It satisfies the
// EventPublisher interfaces of the catalog and contact modules.
type Hub struct {
	connections map[int64]*session
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*session),
	}
}

// Register adopts the connection and returns its session; all further
// writes go through it.
func (h *Hub) Register(adminID int64, conn *websocket.Conn) *session {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[adminID]; exists && old != nil {
		old.close()
	}
	s := &session{conn: conn}
	h.connections[adminID] = s
	return s
}

func (h *Hub) Unregister(adminID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if s, exists := h.connections[adminID]; exists && s != nil {
		s.close()
		delete(h.connections, adminID)
	}
}

// Publish broadcasts an event to every connected admin. Writes that fail
// drop the connection.
func (h *Hub) Publish(event string, payload any) {
	msg := Event{Type: event, Payload: payload, SentAt: time.Now()}

	h.mutex.RLock()
	targets := make(map[int64]*session, len(h.connections))
	for id, s := range h.connections {
		targets[id] = s
	}
	h.mutex.RUnlock()

	for id, s := range targets {
		if s == nil {
			continue
		}
		if err := s.writeJSON(msg); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, s := range h.connections {
		if s != nil {
			s.close()
		}
		delete(h.connections, id)
	}
}
