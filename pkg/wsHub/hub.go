package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub tracks every active WebSocket connection, one per
// session id.
type ConnectionHub struct {
	clients map[string]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[string]*Conn),
		l:       l,
	}
}

// Add registers a new connection. An existing connection for the same
// session is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.sessionID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"session_id", existing.sessionID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"session_id", existing.sessionID,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.sessionID] = newConn
	h.wg.Add(1)

	return nil
}

// Delete closes and removes the connection for a session id.
func (h *ConnectionHub) Delete(sessionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[sessionID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown session",
			"session_id", sessionID,
		)
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"session_id", conn.sessionID,
			"err", err.Error(),
		)
	}

	delete(h.clients, sessionID)
	h.wg.Done()

	return nil
}

// SendTo delivers a message to one session's connection. Returns
// ErrConnIsNotFound when the session has no live connection.
func (h *ConnectionHub) SendTo(sessionID string, msg any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.clients[sessionID]; ok {
		return conn.Send(msg)
	}
	return ErrConnIsNotFound
}

// Close shuts down every tracked connection and waits for them.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// snapshot under lock, close outside of it
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		_ = h.Delete(conn.sessionID)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

// GetConn returns the connection registered for a session id.
func (h *ConnectionHub) GetConn(sessionID string) (*Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[sessionID]
	if !ok {
		return nil, ErrConnIsNotFound
	}
	return conn, nil
}
