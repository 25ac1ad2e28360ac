// Package realtime carries live events between the server and connected
// clients over websockets: presence, proximity results, pairing requests and
// emergency alerts.
package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// sendBufferSize bounds the per-session outbound queue. A slow consumer
// drops events instead of blocking the hub.
const sendBufferSize = 64

// ErrSessionUnknown is returned by Send when no session matches the handle.
var ErrSessionUnknown = errors.New("unknown session")

// Event is one outbound websocket frame.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Session is one connected websocket client.
type Session struct {
	ID string

	conn   *websocket.Conn
	send   chan Event
	mu     sync.Mutex
	closed bool
	logger *zap.Logger
}

// Hub owns the set of live sessions and fans events out to them. Delivery is
// best-effort and at-most-once per session per call.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewHub creates an empty session hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Register wraps a websocket connection in a session, starts its writer and
// returns it.
func (h *Hub) Register(conn *websocket.Conn) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		send:   make(chan Event, sendBufferSize),
		logger: h.logger,
	}

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	go session.writePump()

	h.logger.Info("session connected", zap.String("session_id", session.ID))
	return session
}

// Unregister removes and closes a session. Safe to call more than once.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	session, ok := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if !ok {
		return
	}
	session.close()
	h.logger.Info("session disconnected", zap.String("session_id", sessionID))
}

// Send delivers one event to one session. A full outbound queue counts as a
// delivery failure: logged and dropped, never blocking.
func (h *Hub) Send(sessionID, event string, payload any) error {
	h.mu.RLock()
	session, ok := h.sessions[sessionID]
	h.mu.RUnlock()

	if !ok {
		return ErrSessionUnknown
	}
	session.enqueue(Event{Event: event, Data: payload})
	return nil
}

// Broadcast fans an event out to every session except excludeSessionID
// (empty to reach all). The session set is snapshotted at dispatch time, so
// connects and disconnects during the fan-out do not affect it.
func (h *Hub) Broadcast(event string, payload any, excludeSessionID string) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for id, session := range h.sessions {
		if id == excludeSessionID {
			continue
		}
		targets = append(targets, session)
	}
	h.mu.RUnlock()

	ev := Event{Event: event, Data: payload}
	for _, session := range targets {
		session.enqueue(ev)
	}
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close tears down every session.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
}

// enqueue queues an event for delivery, dropping it when the session's
// buffer is full or the session already closed.
func (s *Session) enqueue(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- ev:
	default:
		s.logger.Warn("dropping event for slow session",
			zap.String("session_id", s.ID),
			zap.String("event", ev.Event),
		)
	}
}

// writePump serializes all writes to the connection. One failed write closes
// the session; pending events for it are discarded.
func (s *Session) writePump() {
	for ev := range s.send {
		if err := s.conn.WriteJSON(ev); err != nil {
			s.logger.Warn("session write failed",
				zap.String("session_id", s.ID),
				zap.String("event", ev.Event),
				zap.Error(err),
			)
			s.close()
			return
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	s.mu.Unlock()

	s.conn.Close()
}
