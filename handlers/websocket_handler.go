package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/marchalgreen/rundeklar/scheduler"
	"github.com/marchalgreen/rundeklar/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the board runs on club hardware behind the access code; any
		// origin may subscribe
		return true
	},
}

type WebSocketHandler struct {
	hub    *scheduler.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *scheduler.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs handles GET /ws/sessions/{sessionID}: one room per training
// session, every club screen in the hall subscribes to it.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		h.logger.Error("websocket upgrade failed", slog.Int("session_id", sessionID), slog.Any("error", err))
		return
	}

	client := &scheduler.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.SessionRoomID(sessionID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
