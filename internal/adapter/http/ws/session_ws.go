package wshandler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	ws "github.com/travelswift/booking-system/pkg/wsHub"
)

// SessionWsHandler upgrades session WebSocket connections and pushes
// asynchronous frames (search results, payment outcomes, issued
// tickets) to them.
type SessionWsHandler struct {
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader
	log         logger.Logger
}

func NewSessionWsHandler(connections *ws.ConnectionHub, log logger.Logger) *SessionWsHandler {
	return &SessionWsHandler{
		connections: connections,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// Serve handles GET /ws/sessions/{session_id}. The channel is
// push-only: inbound frames are read and discarded to keep the
// connection's control frames flowing.
func (h *SessionWsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_session_connect")

	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(ctx, "websocket upgrade failed", err, "session_id", sessionID)
		return
	}

	conn := ws.NewConn(context.Background(), sessionID, wsConn)
	if err := h.connections.Add(conn); err != nil {
		h.log.Error(ctx, "failed to register connection", err, "session_id", sessionID)
		_ = conn.Close()
		return
	}

	h.log.Info(ctx, "session websocket connected", "session_id", sessionID)

	if err := conn.Listen(func(map[string]any) error { return nil }); err != nil {
		h.log.Debug(ctx, "session websocket closed", "session_id", sessionID, "reason", err.Error())
	}

	_ = h.connections.Delete(sessionID)
}

// Notify implements the orchestrator's notifier contract. A session
// without a live connection drops the frame silently: the state is
// still reachable by polling.
func (h *SessionWsHandler) Notify(sessionID string, frame any) {
	if err := h.connections.SendTo(sessionID, frame); err != nil {
		ctx := wrap.WithAction(context.Background(), "ws_notify")
		h.log.Debug(ctx, "frame not delivered", "session_id", sessionID, "reason", err.Error())
	}
}
